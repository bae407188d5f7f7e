package pipeline

import (
	"github.com/rs/zerolog"

	"convoset/internal/model"
)

// Deduplicate removes conversations whose dedup key was already seen,
// keeping the first occurrence and preserving order. Empty conversations
// are dropped before key computation. Returns the filtered corpus and the
// number of duplicates removed.
func Deduplicate(corpus model.Corpus, logger zerolog.Logger) (model.Corpus, int) {
	seen := make(map[string]struct{}, len(corpus))
	unique := make(model.Corpus, 0, len(corpus))
	removed := 0

	for _, conv := range corpus {
		if len(conv) == 0 {
			continue
		}
		key := conv.DedupKey()
		if _, dup := seen[key]; dup {
			removed++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, conv)
	}

	logger.Info().Int("removed", removed).Int("remaining", len(unique)).
		Msg("deduplicated conversations")
	return unique, removed
}
