package pipeline

import (
	"reflect"
	"testing"

	"convoset/internal/model"
)

func conv(pairs ...string) model.Conversation {
	var c model.Conversation
	for i := 0; i+1 < len(pairs); i += 2 {
		c = append(c, model.Turn{From: model.Speaker(pairs[i]), Value: pairs[i+1]})
	}
	return c
}

func TestDeduplicate_RemovesDuplicates(t *testing.T) {
	corpus := model.Corpus{
		conv("human", "q1", "gpt", "a1"),
		conv("human", "q2", "gpt", "a2"),
		conv("human", "q1", "gpt", "a1"), // duplicate of the first
	}

	unique, removed := Deduplicate(corpus, testLogger)
	if removed != 1 {
		t.Errorf("Expected 1 duplicate removed, got %d", removed)
	}
	if len(unique) != 2 {
		t.Fatalf("Expected 2 conversations, got %d", len(unique))
	}
}

func TestDeduplicate_SameFirstHumanLastAssistant(t *testing.T) {
	// Different middles, same first human + last assistant: duplicates.
	corpus := model.Corpus{
		conv("human", "q", "gpt", "middle a", "gpt", "final"),
		conv("human", "q", "gpt", "other middle", "gpt", "final"),
	}

	unique, removed := Deduplicate(corpus, testLogger)
	if removed != 1 || len(unique) != 1 {
		t.Errorf("Expected the second conversation dropped, got %d kept, %d removed", len(unique), removed)
	}
}

func TestDeduplicate_PreservesFirstOccurrenceOrder(t *testing.T) {
	first := conv("human", "a", "gpt", "1")
	second := conv("human", "b", "gpt", "2")
	third := conv("human", "c", "gpt", "3")
	corpus := model.Corpus{first, second, first, third, second}

	unique, _ := Deduplicate(corpus, testLogger)
	want := model.Corpus{first, second, third}
	if !reflect.DeepEqual(unique, want) {
		t.Errorf("Order of first occurrence not preserved: %+v", unique)
	}
}

func TestDeduplicate_DropsEmptyConversations(t *testing.T) {
	corpus := model.Corpus{
		model.Conversation{},
		conv("human", "q", "gpt", "a"),
		nil,
	}

	unique, removed := Deduplicate(corpus, testLogger)
	if len(unique) != 1 {
		t.Errorf("Empty conversations should be dropped, got %d", len(unique))
	}
	if removed != 0 {
		t.Errorf("Empty conversations are not duplicates, removed=%d", removed)
	}
}

func TestDeduplicate_Idempotent(t *testing.T) {
	corpus := model.Corpus{
		conv("human", "q1", "gpt", "a1"),
		conv("human", "q2", "gpt", "a2"),
		conv("human", "q1", "gpt", "a1"),
	}

	once, _ := Deduplicate(corpus, testLogger)
	twice, removed := Deduplicate(once, testLogger)
	if removed != 0 {
		t.Errorf("Second pass should remove nothing, removed %d", removed)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Error("Deduplication must be idempotent")
	}
}
