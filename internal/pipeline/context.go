// Package pipeline implements the conversation normalization pipeline:
// row extraction, conversation building, deduplication, category filtering,
// and orchestration of the tokenization and output stages.
package pipeline

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"convoset/internal/model"
	"convoset/internal/names"
)

// Context carries the shared mutable state of one conversion run: the
// pseudonym pool, the scrubber, the random source, and the replacement
// counter. Explicitly passed to each stage instead of living in package
// globals. Single-threaded use only.
type Context struct {
	Logger   zerolog.Logger
	Rand     *rand.Rand
	Pool     *names.Pool
	Scrubber *names.Scrubber

	// ScrubbedConversations counts conversations with at least one name
	// replacement, across the whole run.
	ScrubbedConversations int
}

// NewContext builds a run context. A zero seed seeds the random source from
// the clock; any other value makes the run reproducible.
func NewContext(cfg *model.Config, candidates, originals []string, logger zerolog.Logger) *Context {
	seed := cfg.Output.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pool := names.NewPool(candidates, cfg.Names.GeneratedPool, rng, logger)
	return &Context{
		Logger:   logger,
		Rand:     rng,
		Pool:     pool,
		Scrubber: names.NewScrubber(originals, pool, logger),
	}
}
