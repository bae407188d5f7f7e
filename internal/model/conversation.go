package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Speaker identifies who produced a turn. The values match the wire format
// of the output dataset ("human" / "gpt").
type Speaker string

const (
	SpeakerHuman     Speaker = "human"
	SpeakerAssistant Speaker = "gpt"
)

// Turn is one message attributed to a speaker within a conversation.
type Turn struct {
	From  Speaker `json:"from"`
	Value string  `json:"value"`
}

// Conversation is an ordered sequence of turns derived from one log row.
type Conversation []Turn

// Corpus is the full collection of conversations at some pipeline stage.
type Corpus []Conversation

// HasSpeaker reports whether any turn is attributed to s.
func (c Conversation) HasSpeaker(s Speaker) bool {
	for _, t := range c {
		if t.From == s {
			return true
		}
	}
	return false
}

// Text joins all turn texts with newlines, in order. Used for token counting.
func (c Conversation) Text() string {
	parts := make([]string, 0, len(c))
	for _, t := range c {
		if t.Value != "" {
			parts = append(parts, t.Value)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

// DedupKey derives the signature used for duplicate detection: the pair of
// first human turn and last assistant turn, or, when either is missing, a
// hash over all (speaker, text) pairs. The key is only used for
// set-membership and is never persisted.
func (c Conversation) DedupKey() string {
	var firstHuman, lastAssistant string
	for _, t := range c {
		if t.From == SpeakerHuman && strings.TrimSpace(t.Value) != "" {
			firstHuman = strings.TrimSpace(t.Value)
			break
		}
	}
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].From == SpeakerAssistant && strings.TrimSpace(c[i].Value) != "" {
			lastAssistant = strings.TrimSpace(c[i].Value)
			break
		}
	}

	if firstHuman == "" || lastAssistant == "" {
		h := sha256.New()
		for _, t := range c {
			if strings.TrimSpace(t.Value) == "" {
				continue
			}
			h.Write([]byte(t.From))
			h.Write([]byte{0})
			h.Write([]byte(strings.TrimSpace(t.Value)))
			h.Write([]byte{0})
		}
		return "hash:" + hex.EncodeToString(h.Sum(nil))
	}
	return "pair:" + firstHuman + "\x00" + lastAssistant
}

// VisionSample is one row of the vision log, passed through untouched by the
// conversation pipeline.
type VisionSample struct {
	ImagePath string `json:"image_path"`
	Text      string `json:"text"`
}
