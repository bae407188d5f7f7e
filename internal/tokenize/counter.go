// Package tokenize counts tokens per conversation using a BPE tokenizer.
// The tokenizer is an opaque collaborator: text in, token count out.
package tokenize

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/wbrown/gpt_bpe"
	"github.com/wbrown/gpt_bpe/resources"

	"convoset/internal/cache"
	"convoset/internal/model"
	"convoset/internal/worker"
)

// Counter wraps a gpt_bpe encoder with a memoizing count cache.
type Counter struct {
	encoder *gpt_bpe.GPTEncoder
	counts  cache.Cache
	logger  zerolog.Logger
}

// NewCounter loads the tokenizer identified by id, preferring an embedded
// tokenizer directory when one exists for the id.
func NewCounter(id string, ttl time.Duration, logger zerolog.Logger) (*Counter, error) {
	var encoder *gpt_bpe.GPTEncoder
	var err error

	embedded := id + "-tokenizer"
	if ok, _ := resources.EmbeddedDirExists(embedded); ok {
		encoder, err = gpt_bpe.NewEncoder(embedded)
	} else {
		encoder, err = gpt_bpe.NewEncoder(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %q: %w", id, err)
	}

	logger.Info().Str("tokenizer", id).Msg("tokenizer loaded")
	return &Counter{
		encoder: encoder,
		counts:  cache.NewMemoryCache(ttl, ttl/3),
		logger:  logger,
	}, nil
}

// Count returns the token count of text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	key := cache.Key(text)
	if n, found := c.counts.Get(key); found {
		return n
	}
	n := len(*c.encoder.Encode(&text))
	c.counts.Set(key, n)
	return n
}

// CountCorpus counts tokens for every conversation concurrently, returning
// counts positionally aligned with the corpus. The encoder is read-only
// after construction and each job writes a distinct index, so no further
// synchronization is needed.
func (c *Counter) CountCorpus(ctx context.Context, corpus model.Corpus, workers int) []int {
	counts := make([]int, len(corpus))
	jobs := make([]worker.Job, len(corpus))
	for i, conv := range corpus {
		i, text := i, conv.Text()
		jobs[i] = func(context.Context) {
			counts[i] = c.Count(text)
		}
	}
	worker.NewPool(workers).Run(ctx, jobs)
	return counts
}

// Analysis summarizes token counts across a corpus.
type Analysis struct {
	Total   int
	Average float64
	Largest []int // Top-N counts, descending
}

// Analyze computes the total, average, and top-N largest counts.
func Analyze(counts []int, topN int) Analysis {
	a := Analysis{}
	for _, n := range counts {
		a.Total += n
	}
	if len(counts) > 0 {
		a.Average = float64(a.Total) / float64(len(counts))
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	if topN > len(sorted) {
		topN = len(sorted)
	}
	a.Largest = sorted[:topN]
	return a
}
