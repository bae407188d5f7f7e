package cli

import (
	"github.com/spf13/cobra"

	"convoset/internal/model"
	"convoset/internal/pipeline"
)

var (
	visionLogsDir string
	visionOutDir  string
)

// visionCmd represents the vision command
var visionCmd = &cobra.Command{
	Use:   "vision",
	Short: "Convert the vision log into a two-column parquet table",
	Long: `Vision mode processes vision_logs.csv (columns image_path, text) and
emits a simple two-column parquet table. It bypasses the conversation
pipeline entirely: no scrubbing, deduplication, or filtering is applied.

Example:
  convoset vision
  convoset vision --logs-dir ./logs --out ./data`,
	RunE: runVision,
}

func init() {
	rootCmd.AddCommand(visionCmd)

	defaults := model.DefaultConfig()
	visionCmd.Flags().StringVar(&visionLogsDir, "logs-dir", defaults.Sources.LogsDir, "directory containing the CSV log files")
	visionCmd.Flags().StringVar(&visionOutDir, "out", defaults.Output.Dir, "output directory for the parquet file")
}

func runVision(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := model.DefaultConfig()
	cfg.Sources.LogsDir = visionLogsDir
	cfg.Output.Dir = visionOutDir
	cfg.Output.Verbose = verbose

	p := pipeline.New(cfg, nil, nil, nil, logger)
	outPath, entries, err := p.RunVision()
	if err != nil {
		return err
	}

	logger.Info().Int("entries", entries).Str("file", outPath).Msg("vision output complete")
	return nil
}
