package pipeline

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"convoset/internal/model"
)

// ExtractStats reports per-file extraction counts.
type ExtractStats struct {
	Rows    int // Data rows read
	Skipped int // Rows that did not yield a conversation
}

// Extractor reads a tabular log file and drives the builder per row.
type Extractor struct {
	ctx     *Context
	builder *Builder
}

// NewExtractor creates an extractor bound to the run context.
func NewExtractor(ctx *Context, builder *Builder) *Extractor {
	return &Extractor{ctx: ctx, builder: builder}
}

// ExtractFile reads one CSV log and returns the conversations it yields.
// A file that cannot be opened or lacks the required header columns is
// rejected wholesale: empty result, error logged. Row-level problems are
// logged, counted as skips, and never abort the rest of the file.
func (e *Extractor) ExtractFile(path string) (model.Corpus, ExtractStats) {
	var stats ExtractStats

	f, err := os.Open(path)
	if err != nil {
		e.ctx.Logger.Error().Err(err).Str("file", path).Msg("cannot open log file, skipping it")
		return nil, stats
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		e.ctx.Logger.Error().Err(err).Str("file", path).Msg("cannot read CSV header, skipping file")
		return nil, stats
	}

	inputIdx, outputIdx := -1, -1
	for i, h := range header {
		switch strings.TrimPrefix(strings.TrimSpace(h), "\ufeff") {
		case "input":
			inputIdx = i
		case "output":
			outputIdx = i
		}
	}
	if inputIdx < 0 || outputIdx < 0 {
		e.ctx.Logger.Error().Str("file", path).Strs("header", header).
			Msg("log file missing required input/output columns, skipping file")
		return nil, stats
	}

	name := filepath.Base(path)
	e.ctx.Logger.Info().Str("file", name).Msg("reading conversations")

	var corpus model.Corpus
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			e.ctx.Logger.Warn().Err(err).Str("file", name).Msg("skipping malformed row")
			stats.Rows++
			stats.Skipped++
			continue
		}
		stats.Rows++

		conv, ok := e.builder.Build(cleanField(record, inputIdx), cleanField(record, outputIdx))
		if !ok {
			stats.Skipped++
			continue
		}
		corpus = append(corpus, conv)
	}

	e.ctx.Logger.Info().Str("file", name).
		Int("conversations", len(corpus)).Int("rows", stats.Rows).Int("skipped", stats.Skipped).
		Msg("finished log file")
	return corpus, stats
}

// cleanField returns the record field at idx with NUL bytes stripped, or ""
// when the row is short.
func cleanField(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return strings.ReplaceAll(record[idx], "\x00", "")
}
