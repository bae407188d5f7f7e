// Package output serializes the final corpus to parquet and renders the
// run summary.
package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"convoset/internal/model"
)

// conversationRow is one output row: a single column whose cell is the
// ordered list of {from, value} pairs of one conversation.
type conversationRow struct {
	Conversations []message `parquet:"conversations,list"`
}

type message struct {
	From  string `parquet:"from"`
	Value string `parquet:"value"`
}

// visionRow is one row of the vision-mode output table.
type visionRow struct {
	ImagePath string `parquet:"image_path"`
	Text      string `parquet:"text"`
}

// Writer persists corpora as parquet files.
type Writer struct {
	logger zerolog.Logger
}

// NewWriter creates a parquet writer.
func NewWriter(logger zerolog.Logger) *Writer {
	return &Writer{logger: logger}
}

// WriteConversations writes the corpus to path. On failure the partial file
// is removed.
func (w *Writer) WriteConversations(path string, corpus model.Corpus) error {
	rows := make([]conversationRow, len(corpus))
	for i, conv := range corpus {
		msgs := make([]message, len(conv))
		for j, turn := range conv {
			msgs[j] = message{From: string(turn.From), Value: turn.Value}
		}
		rows[i].Conversations = msgs
	}

	w.logger.Info().Int("conversations", len(rows)).Str("file", path).Msg("writing parquet output")
	return writeRows(path, rows)
}

// WriteVision writes the vision samples to path as a two-column table.
func (w *Writer) WriteVision(path string, samples []model.VisionSample) error {
	rows := make([]visionRow, len(samples))
	for i, s := range samples {
		rows[i] = visionRow{ImagePath: s.ImagePath, Text: s.Text}
	}

	w.logger.Info().Int("entries", len(rows)).Str("file", path).Msg("writing vision parquet output")
	return writeRows(path, rows)
}

func writeRows[T any](path string, rows []T) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	pw := parquet.NewGenericWriter[T](f, parquet.Compression(&parquet.Snappy))
	if _, err = pw.Write(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = pw.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
