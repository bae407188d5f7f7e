package output

import (
	"strings"
	"testing"

	"convoset/internal/model"
)

func TestRenderSummary(t *testing.T) {
	s := &model.Summary{
		SourceFiles:  []string{"normal_logs.csv"},
		PerFile:      map[string]int{"normal_logs.csv": 10},
		Extracted:    10,
		AfterDedup:   8,
		Duplicates:   2,
		Final:        8,
		Replacements: 3,
		PoolSize:     500,
		OutputPath:   "conversations.parquet",
	}

	var buf strings.Builder
	RenderSummary(&buf, s)
	out := buf.String()

	for _, want := range []string{"normal_logs.csv", "10", "removed 2", "conversations.parquet"} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary should mention %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Total tokens") {
		t.Error("Token section should be absent when tokenization was skipped")
	}
}

func TestRenderSummary_WithTokens(t *testing.T) {
	s := &model.Summary{
		PerFile:       map[string]int{},
		TotalTokens:   1234,
		AvgTokens:     61.7,
		LargestTokens: []int{400, 300},
	}

	var buf strings.Builder
	RenderSummary(&buf, s)
	out := buf.String()

	if !strings.Contains(out, "1234") || !strings.Contains(out, "400") {
		t.Errorf("Token analysis missing from summary:\n%s", out)
	}
}
