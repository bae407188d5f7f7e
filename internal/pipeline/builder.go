package pipeline

import (
	"regexp"
	"strings"

	"convoset/internal/model"
	"convoset/internal/names"
	"convoset/internal/parse"
)

var thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// Builder combines the parsed input turns and the output turn of one log
// row into a validated conversation, applying name scrubbing and quality
// filters.
type Builder struct {
	ctx      *Context
	denylist []string
}

// NewBuilder creates a builder using the run context and a denylist of
// known-bad output substrings (matched case-insensitively).
func NewBuilder(ctx *Context, denylist []string) *Builder {
	lowered := make([]string, 0, len(denylist))
	for _, d := range denylist {
		if d != "" {
			lowered = append(lowered, strings.ToLower(d))
		}
	}
	return &Builder{ctx: ctx, denylist: lowered}
}

// Build converts one raw log row into a conversation. Returns false when
// the row is rejected: blank input or output, unparseable input, denylisted
// output, output emptied by think-block stripping, or a conversation left
// without both a human and an assistant turn.
func (b *Builder) Build(input, output string) (model.Conversation, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, false
	}

	parsed := parse.Messages(input, b.ctx.Logger)
	if len(parsed) == 0 {
		return nil, false
	}

	// One assignment spans the whole conversation so a name maps to the
	// same pseudonym in input and output alike.
	asg := names.NewAssignment()
	scrubbed := false

	var conv model.Conversation
	for _, turn := range parsed {
		if strings.TrimSpace(turn.Value) == "" {
			continue
		}
		value, replaced := b.ctx.Scrubber.Scrub(turn.Value, asg)
		scrubbed = scrubbed || replaced
		conv = append(conv, model.Turn{From: turn.From, Value: strings.TrimSpace(value)})
	}

	output = strings.TrimSpace(output)
	if output == "" {
		return nil, false
	}
	if b.isDenylisted(output) {
		b.ctx.Logger.Debug().Str("output", truncate(output, 60)).
			Msg("skipping row with known-bad output")
		return nil, false
	}

	value, replaced := b.ctx.Scrubber.Scrub(output, asg)
	scrubbed = scrubbed || replaced

	cleaned := stripThinkBlocks(value)
	if cleaned == "" {
		b.ctx.Logger.Debug().Msg("skipping row whose output became empty after cleaning")
		return nil, false
	}
	conv = append(conv, model.Turn{From: model.SpeakerAssistant, Value: cleaned})

	filtered := conv[:0]
	for _, turn := range conv {
		if strings.TrimSpace(turn.Value) != "" {
			filtered = append(filtered, turn)
		}
	}
	conv = filtered

	if !conv.HasSpeaker(model.SpeakerHuman) || !conv.HasSpeaker(model.SpeakerAssistant) {
		return nil, false
	}

	if scrubbed {
		b.ctx.ScrubbedConversations++
	}
	return conv, true
}

func (b *Builder) isDenylisted(output string) bool {
	lowered := strings.ToLower(output)
	for _, bad := range b.denylist {
		if strings.Contains(lowered, bad) {
			return true
		}
	}
	return false
}

// stripThinkBlocks removes degenerate thinking placeholders from a model
// response: the literal empty-think artifact first, then truncation at an
// unmatched opening marker, then any remaining well-formed think block.
func stripThinkBlocks(text string) string {
	text = strings.ReplaceAll(text, "<think>\nundefined</think>\n", "")
	text = strings.ReplaceAll(text, "<think>\nundefined</think>", "")
	text = strings.TrimSpace(text)

	if strings.Contains(text, "<think>") && !strings.Contains(text, "</think>") {
		text = strings.TrimSpace(text[:strings.Index(text, "<think>")])
	}

	return strings.TrimSpace(thinkBlockRe.ReplaceAllString(text, ""))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
