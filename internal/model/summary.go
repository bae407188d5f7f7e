package model

// Summary reports per-stage counts for one conversion run. Informational
// only; the numbers are not a machine-readable contract.
type Summary struct {
	SourceFiles  []string       // Processed log files, in order
	PerFile      map[string]int // Conversations contributed per file
	Extracted    int            // Conversations before deduplication
	AfterDedup   int            // Conversations after deduplication
	Duplicates   int            // Conversations removed as duplicates
	Final        int            // Conversations written to the output
	Replacements int            // Conversations with at least one name replaced
	PoolSize     int            // Unique pseudonyms available
	PoolDropped  int            // Duplicate/empty entries dropped from the candidate list
	OutputPath   string         // Written parquet file

	// Token analysis, populated only when tokenization is enabled.
	TotalTokens   int
	AvgTokens     float64
	LargestTokens []int
}
