package output

import (
	"fmt"
	"io"

	"convoset/internal/model"
)

// RenderSummary writes a human-readable per-stage report of a conversion
// run. Informational only.
func RenderSummary(w io.Writer, s *model.Summary) {
	line := "======================================================================"

	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "  Conversation Conversion Summary")
	fmt.Fprintln(w, line)
	for _, file := range s.SourceFiles {
		fmt.Fprintf(w, "  %-34s %d conversations\n", file+":", s.PerFile[file])
	}
	fmt.Fprintf(w, "  Initial conversations extracted:   %d\n", s.Extracted)
	fmt.Fprintf(w, "  After deduplication:               %d (removed %d)\n", s.AfterDedup, s.Duplicates)
	fmt.Fprintf(w, "  Final conversations:               %d\n", s.Final)
	fmt.Fprintln(w, "  --------------------------------------------------------------------")
	fmt.Fprintf(w, "  Conversations with name scrubbing: %d\n", s.Replacements)
	fmt.Fprintf(w, "  Unique pseudonyms available:       %d (dropped %d duplicates/empty)\n", s.PoolSize, s.PoolDropped)
	if s.TotalTokens > 0 {
		fmt.Fprintln(w, "  --------------------------------------------------------------------")
		fmt.Fprintf(w, "  Total tokens:                      %d (avg %.2f per conversation)\n", s.TotalTokens, s.AvgTokens)
		for i, n := range s.LargestTokens {
			fmt.Fprintf(w, "  Largest #%d:                        %d tokens\n", i+1, n)
		}
	}
	fmt.Fprintln(w, "  --------------------------------------------------------------------")
	fmt.Fprintf(w, "  Output file:                       %s\n", s.OutputPath)
	fmt.Fprintln(w, line)
}
