package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"convoset/internal/model"
)

var testLogger = zerolog.New(nil).Level(zerolog.Disabled)

func TestWriteConversations_RoundTrip(t *testing.T) {
	corpus := model.Corpus{
		{
			{From: model.SpeakerHuman, Value: "hi"},
			{From: model.SpeakerAssistant, Value: "hello!"},
		},
		{
			{From: model.SpeakerHuman, Value: "q"},
			{From: model.SpeakerAssistant, Value: "a"},
		},
	}

	path := filepath.Join(t.TempDir(), "conversations.parquet")
	if err := NewWriter(testLogger).WriteConversations(path, corpus); err != nil {
		t.Fatalf("WriteConversations failed: %v", err)
	}

	rows, err := parquet.ReadFile[conversationRow](path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if len(rows[0].Conversations) != 2 {
		t.Fatalf("Expected 2 messages in first row, got %d", len(rows[0].Conversations))
	}
	if rows[0].Conversations[0].From != "human" || rows[0].Conversations[0].Value != "hi" {
		t.Errorf("First message wrong: %+v", rows[0].Conversations[0])
	}
	if rows[0].Conversations[1].From != "gpt" {
		t.Errorf("Assistant turns must serialize as 'gpt', got %q", rows[0].Conversations[1].From)
	}
}

func TestWriteVision_RoundTrip(t *testing.T) {
	samples := []model.VisionSample{
		{ImagePath: "img/001.png", Text: "a tree"},
		{ImagePath: "img/002.png", Text: "a river"},
	}

	path := filepath.Join(t.TempDir(), "vision.parquet")
	if err := NewWriter(testLogger).WriteVision(path, samples); err != nil {
		t.Fatalf("WriteVision failed: %v", err)
	}

	rows, err := parquet.ReadFile[visionRow](path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[1].ImagePath != "img/002.png" || rows[1].Text != "a river" {
		t.Errorf("Second row wrong: %+v", rows[1])
	}
}

func TestWriteConversations_BadPathLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.parquet")
	err := NewWriter(testLogger).WriteConversations(path, model.Corpus{})
	if err == nil {
		t.Fatal("Expected an error for an unwritable path")
	}
	if _, statErr := os.Stat(path); statErr == nil {
		t.Error("No partial output file should remain")
	}
}
