// Package parse turns the raw input column of a log row into an ordered
// list of typed turns. The column should hold a JSON-encoded list of
// {role, content} objects but is frequently plain text, double-encoded
// JSON, or malformed JSON; parsing degrades rather than fails.
package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"convoset/internal/model"
)

// roleSpeaker maps source roles onto output speakers (case-insensitive).
// Unknown roles default to human.
var roleSpeaker = map[string]model.Speaker{
	"system":    model.SpeakerHuman,
	"user":      model.SpeakerHuman,
	"assistant": model.SpeakerAssistant,
	"model":     model.SpeakerAssistant,
}

// Messages parses one raw input-column value into turns. Parse failures
// never propagate: anything that cannot be understood as a message list
// degrades to a single human turn carrying the original raw string.
func Messages(raw string, logger zerolog.Logger) []model.Turn {
	if raw == "" {
		return nil
	}

	text := undoDoubleEncoding(raw)

	var data any
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		logger.Debug().Err(err).Str("input", truncate(raw, 100)).
			Msg("input column is not valid JSON, treating as single human message")
		return []model.Turn{{From: model.SpeakerHuman, Value: raw}}
	}

	list, ok := data.([]any)
	if !ok {
		logger.Warn().Str("type", fmt.Sprintf("%T", data)).
			Msg("unexpected JSON structure in input column (expected list), treating as single human message")
		return []model.Turn{{From: model.SpeakerHuman, Value: raw}}
	}

	var turns []model.Turn
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			logger.Debug().Msg("skipping non-object item in input JSON list")
			continue
		}
		role, hasRole := obj["role"]
		content, hasContent := obj["content"]
		if !hasRole || !hasContent {
			logger.Debug().Msg("skipping input item without role and content")
			continue
		}

		from := model.SpeakerHuman
		if mapped, known := roleSpeaker[strings.ToLower(stringify(role))]; known {
			from = mapped
		}

		turns = append(turns, model.Turn{From: from, Value: contentText(content)})
	}
	return turns
}

// undoDoubleEncoding attempts one level of JSON-string decoding on a
// quote-wrapped value, falling back to naive outer-quote stripping with
// doubled-quote unescaping. Best-effort heuristic: a JSON string containing
// literal quote characters cannot always be told apart from doubly-encoded
// JSON.
func undoDoubleEncoding(text string) string {
	if len(text) < 2 || !strings.HasPrefix(text, `"`) || !strings.HasSuffix(text, `"`) {
		return text
	}
	var inner string
	if err := json.Unmarshal([]byte(text), &inner); err == nil {
		return inner
	}
	return strings.ReplaceAll(text[1:len(text)-1], `""`, `"`)
}

// contentText extracts message text from a content value. Part lists keep
// only the parts tagged as plain text, joined by a single space; scalars are
// stringified.
func contentText(content any) string {
	parts, isList := content.([]any)
	if !isList {
		return stringify(content)
	}

	var texts []string
	for _, part := range parts {
		switch p := part.(type) {
		case map[string]any:
			if stringify(p["type"]) == "text" {
				texts = append(texts, stringify(p["text"]))
			}
		case string:
			texts = append(texts, p)
		}
	}
	return strings.TrimSpace(strings.Join(texts, " "))
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; print integers without a decimal point
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
