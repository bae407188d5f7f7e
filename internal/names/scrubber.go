package names

import (
	"strings"

	"github.com/rs/zerolog"
)

// Assignment maps original names to pseudonyms for the lifetime of exactly
// one conversation. Created empty, populated lazily on first encounter of
// each original name, and discarded once the conversation is finalized.
type Assignment struct {
	byOriginal map[string]string
}

// NewAssignment creates an empty per-conversation assignment.
func NewAssignment() *Assignment {
	return &Assignment{byOriginal: make(map[string]string)}
}

// Used returns the set of pseudonyms already issued in this assignment.
func (a *Assignment) Used() map[string]struct{} {
	used := make(map[string]struct{}, len(a.byOriginal))
	for _, p := range a.byOriginal {
		used[p] = struct{}{}
	}
	return used
}

// Len returns the number of originals mapped so far.
func (a *Assignment) Len() int { return len(a.byOriginal) }

// Scrubber replaces known original names with pseudonyms drawn from a Pool.
type Scrubber struct {
	originals []string
	pool      *Pool
	logger    zerolog.Logger
}

// NewScrubber creates a scrubber for the given original names.
func NewScrubber(originals []string, pool *Pool, logger zerolog.Logger) *Scrubber {
	kept := make([]string, 0, len(originals))
	for _, o := range originals {
		if strings.TrimSpace(o) != "" {
			kept = append(kept, o)
		}
	}
	return &Scrubber{originals: kept, pool: pool, logger: logger}
}

// Scrub replaces every literal occurrence of a known original name in text
// with its conversation-scoped pseudonym, assigning one from the pool on
// first encounter. Plain substring substitution: matching inside longer
// words is an accepted limitation. Returns the new text and whether at
// least one occurrence was substituted.
func (s *Scrubber) Scrub(text string, asg *Assignment) (string, bool) {
	if len(s.originals) == 0 || text == "" {
		return text, false
	}

	replaced := false
	for _, orig := range s.originals {
		if !strings.Contains(text, orig) {
			continue
		}
		pseudonym, ok := asg.byOriginal[orig]
		if !ok {
			pseudonym, ok = s.pool.Next(asg.Used())
			if !ok {
				s.logger.Warn().Str("name", orig).
					Msg("no replacement pseudonym available, leaving name unreplaced")
				continue
			}
			asg.byOriginal[orig] = pseudonym
			s.logger.Debug().Str("name", orig).Str("pseudonym", pseudonym).
				Msg("assigned pseudonym for this conversation")
		}
		text = strings.ReplaceAll(text, orig, pseudonym)
		replaced = true
	}
	return text, replaced
}
