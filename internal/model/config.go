package model

import (
	"runtime"
	"time"
)

// Config holds the complete converter configuration
type Config struct {
	Sources   SourcesConfig   `yaml:"sources"`
	Names     NamesConfig     `yaml:"names"`
	Filter    FilterConfig    `yaml:"filter"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Output    OutputConfig    `yaml:"output"`
}

// SourcesConfig describes where raw log files are found
type SourcesConfig struct {
	LogsDir   string `yaml:"logs_dir"`   // Directory containing the CSV logs
	Normal    string `yaml:"normal"`     // Normal conversation log filename
	Reasoning string `yaml:"reasoning"`  // Reasoning conversation log filename
	Vision    string `yaml:"vision"`     // Vision log filename (separate mode)
}

// NamesConfig describes the privacy-scrubbing inputs
type NamesConfig struct {
	CandidatesFile string `yaml:"candidates_file"` // YAML list of replacement pseudonyms
	OriginalsFile  string `yaml:"originals_file"`  // YAML list of names to scrub
	DenylistFile   string `yaml:"denylist_file"`   // YAML list of bad-output substrings
	GeneratedPool  int    `yaml:"generated_pool"`  // Size of the generated fallback pool
}

// FilterConfig controls category rebalancing
type FilterConfig struct {
	CodeOnly  bool    `yaml:"code_only"`  // Rebalance to mostly code-bearing conversations
	CodeRatio float64 `yaml:"code_ratio"` // Non-coding examples kept per coding example
}

// TokenizerConfig controls the optional token-count analysis
type TokenizerConfig struct {
	ID           string        `yaml:"id"`            // gpt_bpe tokenizer identifier
	CountAll     bool          `yaml:"count_all"`     // Report total/average token counts
	CountLargest bool          `yaml:"count_largest"` // Report the largest conversations
	TopN         int           `yaml:"top_n"`         // How many largest conversations to report
	Workers      int           `yaml:"workers"`       // Concurrent counting workers
	CacheTTL     time.Duration `yaml:"cache_ttl"`     // Token-count cache entry lifetime
}

// OutputConfig controls the output location and run behavior
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // Output directory for parquet files
	Seed    int64  `yaml:"seed"`    // RNG seed; 0 seeds from the clock
	Verbose bool   `yaml:"verbose"` // Debug logging
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			LogsDir:   "./logs",
			Normal:    "normal_logs.csv",
			Reasoning: "reasoning_logs.csv",
			Vision:    "vision_logs.csv",
		},
		Names: NamesConfig{
			GeneratedPool: 1000,
		},
		Filter: FilterConfig{
			CodeOnly:  false,
			CodeRatio: 0.15,
		},
		Tokenizer: TokenizerConfig{
			ID:       "gpt2",
			TopN:     5,
			Workers:  runtime.NumCPU(),
			CacheTTL: 30 * time.Minute,
		},
		Output: OutputConfig{
			Dir: ".",
		},
	}
}

// DefaultDenylist returns the built-in list of known-bad model outputs.
// A row whose output contains any of these (case-insensitive) is rejected.
// Configuration data, overridable via NamesConfig.DenylistFile.
func DefaultDenylist() []string {
	return []string{
		"My brain just kinda stopped working. Try again.",
		"My brain disconnected, try again.",
		"I thought too hard, sorry, try again.",
		"*no response*",
		"No response received.",
		"No response data.",
		"Vision is only supported",
	}
}
