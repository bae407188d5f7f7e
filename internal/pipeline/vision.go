package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"convoset/internal/model"
)

// ExtractVision reads the vision log, which bypasses the conversation
// pipeline entirely: rows of (image_path, text), both required per row.
// Unlike conversation extraction, vision mode has no other source to fall
// back on, so an unreadable file or bad header is returned as an error.
func ExtractVision(path string, logger zerolog.Logger) ([]model.VisionSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vision log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read vision log header: %w", err)
	}

	pathIdx, textIdx := -1, -1
	for i, h := range header {
		switch strings.TrimPrefix(strings.TrimSpace(h), "\ufeff") {
		case "image_path":
			pathIdx = i
		case "text":
			textIdx = i
		}
	}
	if pathIdx < 0 || textIdx < 0 {
		return nil, fmt.Errorf("vision log %s missing image_path/text columns (found: %v)", path, header)
	}

	var samples []model.VisionSample
	skipped := 0
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Msg("skipping malformed vision row")
			skipped++
			continue
		}
		img := strings.TrimSpace(cleanField(record, pathIdx))
		text := strings.TrimSpace(cleanField(record, textIdx))
		if img == "" || text == "" {
			skipped++
			continue
		}
		samples = append(samples, model.VisionSample{ImagePath: img, Text: text})
	}

	logger.Info().Int("samples", len(samples)).Int("skipped", skipped).
		Msg("extracted vision entries")
	return samples, nil
}
