package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"convoset/internal/model"
	"convoset/internal/names"
	"convoset/internal/output"
	"convoset/internal/pipeline"
)

var (
	logsDir        string
	outDir         string
	candidatesFile string
	originalsFile  string
	denylistFile   string
	tokenizerID    string
	doTokenize     bool
	doLargest      bool
	codeOnly       bool
	codeRatio      float64
	seed           int64
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert CSV chat logs into a parquet conversation dataset",
	Long: `Convert reads normal_logs.csv and reasoning_logs.csv from the logs
directory, normalizes each row into a conversation, scrubs original names
with per-conversation pseudonyms, drops malformed and denylisted rows,
deduplicates the corpus, optionally rebalances by code content, and writes
the result as parquet.

Example:
  convoset convert
  convoset convert --logs-dir ./logs --out ./data --code-only
  convoset convert --tokenize --tokenizer gpt2
  convoset convert --names names.yaml --originals originals.yaml --seed 42`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	defaults := model.DefaultConfig()

	convertCmd.Flags().StringVar(&logsDir, "logs-dir", defaults.Sources.LogsDir, "directory containing the CSV log files")
	convertCmd.Flags().StringVar(&outDir, "out", defaults.Output.Dir, "output directory for the parquet file")
	convertCmd.Flags().StringVar(&candidatesFile, "names", "", "YAML file listing replacement pseudonyms")
	convertCmd.Flags().StringVar(&originalsFile, "originals", "", "YAML file listing original names to scrub")
	convertCmd.Flags().StringVar(&denylistFile, "denylist", "", "YAML file listing bad-output substrings")
	convertCmd.Flags().StringVar(&tokenizerID, "tokenizer", defaults.Tokenizer.ID, "tokenizer identifier for token counting")
	convertCmd.Flags().BoolVar(&doTokenize, "tokenize", false, "report total and average token counts")
	convertCmd.Flags().BoolVar(&doLargest, "tokenize-largest", false, "report the largest conversations by token count")
	convertCmd.Flags().BoolVar(&codeOnly, "code-only", false, "rebalance the corpus toward code-bearing conversations")
	convertCmd.Flags().Float64Var(&codeRatio, "code-ratio", defaults.Filter.CodeRatio, "non-coding examples kept per coding example")
	convertCmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible runs (0 = from clock)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := buildConfig(cmd.Flags())

	candidates, originals, denylist := loadNameLists(cfg, logger)

	p := pipeline.New(cfg, candidates, originals, denylist, logger)
	summary, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	output.RenderSummary(os.Stderr, summary)
	return nil
}

// buildConfig merges defaults, the viper config file/environment, and CLI
// flags, in increasing priority.
func buildConfig(flags *pflag.FlagSet) *model.Config {
	cfg := model.DefaultConfig()

	fromViper := func(key, flag string, assign func()) {
		if viper.IsSet(key) && !flags.Changed(flag) {
			assign()
		}
	}
	fromViper("sources.logs_dir", "logs-dir", func() { logsDir = viper.GetString("sources.logs_dir") })
	fromViper("output.dir", "out", func() { outDir = viper.GetString("output.dir") })
	fromViper("names.candidates_file", "names", func() { candidatesFile = viper.GetString("names.candidates_file") })
	fromViper("names.originals_file", "originals", func() { originalsFile = viper.GetString("names.originals_file") })
	fromViper("names.denylist_file", "denylist", func() { denylistFile = viper.GetString("names.denylist_file") })
	fromViper("tokenizer.id", "tokenizer", func() { tokenizerID = viper.GetString("tokenizer.id") })
	fromViper("filter.code_ratio", "code-ratio", func() { codeRatio = viper.GetFloat64("filter.code_ratio") })

	cfg.Sources.LogsDir = logsDir
	cfg.Output.Dir = outDir
	cfg.Output.Seed = seed
	cfg.Output.Verbose = verbose
	cfg.Names.CandidatesFile = candidatesFile
	cfg.Names.OriginalsFile = originalsFile
	cfg.Names.DenylistFile = denylistFile
	cfg.Tokenizer.ID = tokenizerID
	cfg.Tokenizer.CountAll = doTokenize
	cfg.Tokenizer.CountLargest = doLargest
	cfg.Filter.CodeOnly = codeOnly
	cfg.Filter.CodeRatio = codeRatio
	return cfg
}

// loadNameLists reads the configured name lists. Missing or invalid lists
// degrade: candidates fall back to the pool's generated defaults, originals
// to no scrubbing, and the denylist to the built-in entries.
func loadNameLists(cfg *model.Config, logger zerolog.Logger) (candidates, originals, denylist []string) {
	load := func(path, kind string) []string {
		entries, err := names.LoadList(path)
		if err != nil {
			logger.Warn().Err(err).Str("kind", kind).Msg("cannot load name list, using defaults")
			return nil
		}
		return entries
	}

	candidates = load(cfg.Names.CandidatesFile, "candidates")
	originals = load(cfg.Names.OriginalsFile, "originals")
	if len(originals) == 0 {
		logger.Warn().Msg("no original names configured, name scrubbing is disabled")
	}

	denylist = load(cfg.Names.DenylistFile, "denylist")
	if len(denylist) == 0 {
		denylist = model.DefaultDenylist()
	}
	return candidates, originals, denylist
}
