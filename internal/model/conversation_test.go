package model

import (
	"strings"
	"testing"
)

func TestConversation_HasSpeaker(t *testing.T) {
	conv := Conversation{
		{From: SpeakerHuman, Value: "hi"},
		{From: SpeakerAssistant, Value: "hello"},
	}

	if !conv.HasSpeaker(SpeakerHuman) || !conv.HasSpeaker(SpeakerAssistant) {
		t.Error("Expected both speakers present")
	}
	if (Conversation{{From: SpeakerHuman, Value: "hi"}}).HasSpeaker(SpeakerAssistant) {
		t.Error("Assistant should be absent")
	}
}

func TestConversation_Text(t *testing.T) {
	conv := Conversation{
		{From: SpeakerHuman, Value: "one"},
		{From: SpeakerAssistant, Value: "two"},
		{From: SpeakerHuman, Value: ""},
	}

	if got := conv.Text(); got != "one\ntwo" {
		t.Errorf("Expected joined text 'one\\ntwo', got %q", got)
	}
}

func TestConversation_DedupKey_PairForm(t *testing.T) {
	a := Conversation{
		{From: SpeakerHuman, Value: "question"},
		{From: SpeakerAssistant, Value: "answer"},
	}
	b := Conversation{
		{From: SpeakerHuman, Value: "question"},
		{From: SpeakerHuman, Value: "different middle"},
		{From: SpeakerAssistant, Value: "answer"},
	}

	if a.DedupKey() != b.DedupKey() {
		t.Error("Conversations sharing first human and last assistant text should share a key")
	}
	if !strings.HasPrefix(a.DedupKey(), "pair:") {
		t.Errorf("Expected pair-form key, got %q", a.DedupKey())
	}
}

func TestConversation_DedupKey_HashFallback(t *testing.T) {
	onlyHuman := Conversation{{From: SpeakerHuman, Value: "hi"}}
	if !strings.HasPrefix(onlyHuman.DedupKey(), "hash:") {
		t.Errorf("Missing assistant turn should use the hash form, got %q", onlyHuman.DedupKey())
	}

	other := Conversation{{From: SpeakerHuman, Value: "bye"}}
	if onlyHuman.DedupKey() == other.DedupKey() {
		t.Error("Different content should hash to different keys")
	}
}

func TestConversation_DedupKey_Stable(t *testing.T) {
	conv := Conversation{
		{From: SpeakerHuman, Value: "q"},
		{From: SpeakerAssistant, Value: "a"},
	}
	if conv.DedupKey() != conv.DedupKey() {
		t.Error("DedupKey must be deterministic")
	}
}
