// Package names implements privacy scrubbing: a pool of candidate
// pseudonyms and a scrubber that substitutes them for known original names
// with per-conversation consistency.
package names

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// Pool holds a deduplicated, shuffled set of candidate pseudonyms.
// Pseudonyms are never removed on issuance: the same pseudonym may be reused
// across different conversations, only within-conversation collisions matter.
// Not safe for concurrent callers without external locking.
type Pool struct {
	candidates []string
	dropped    int // duplicate/empty entries removed from the source list
	generated  bool
	rng        *rand.Rand
	logger     zerolog.Logger
}

// NewPool builds a pool from the candidate list. Duplicates and empty
// entries are dropped and the remainder shuffled. When the list is missing
// or yields nothing, a generated default sequence is used instead and a
// warning logged once.
func NewPool(candidates []string, generatedSize int, rng *rand.Rand, logger zerolog.Logger) *Pool {
	p := &Pool{rng: rng, logger: logger}

	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if c == "" {
			p.dropped++
			continue
		}
		if _, dup := seen[c]; dup {
			p.dropped++
			continue
		}
		seen[c] = struct{}{}
		p.candidates = append(p.candidates, c)
	}

	if len(p.candidates) == 0 {
		logger.Warn().Int("generated", generatedSize).
			Msg("no usable pseudonym candidates, falling back to generated default names")
		for i := 0; i < generatedSize; i++ {
			p.candidates = append(p.candidates, fmt.Sprintf("Player%03d", i))
		}
		p.generated = true
		p.dropped = 0
	}

	p.Reshuffle()
	return p
}

// Next returns a uniformly random pseudonym not present in exclude. If every
// candidate is excluded it falls back to any random candidate, allowing
// reuse within the conversation rather than failing. Returns false only when
// the pool is entirely empty.
func (p *Pool) Next(exclude map[string]struct{}) (string, bool) {
	if len(p.candidates) == 0 {
		p.logger.Warn().Msg("pseudonym pool is empty, cannot replace")
		return "", false
	}

	available := make([]string, 0, len(p.candidates))
	for _, c := range p.candidates {
		if _, used := exclude[c]; !used {
			available = append(available, c)
		}
	}

	if len(available) == 0 {
		pick := p.candidates[p.rng.Intn(len(p.candidates))]
		p.logger.Debug().Str("pseudonym", pick).
			Msg("all candidates already used in this conversation, reusing")
		return pick, true
	}
	return available[p.rng.Intn(len(available))], true
}

// Reshuffle randomizes the candidate order.
func (p *Pool) Reshuffle() {
	p.rng.Shuffle(len(p.candidates), func(i, j int) {
		p.candidates[i], p.candidates[j] = p.candidates[j], p.candidates[i]
	})
}

// Size returns the number of unique candidates.
func (p *Pool) Size() int { return len(p.candidates) }

// Dropped returns how many duplicate or empty entries were removed from the
// configured candidate list.
func (p *Pool) Dropped() int { return p.dropped }

// Generated reports whether the pool fell back to generated default names.
func (p *Pool) Generated() bool { return p.generated }
