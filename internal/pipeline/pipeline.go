package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"convoset/internal/model"
	"convoset/internal/output"
	"convoset/internal/tokenize"
)

// Fatal stage errors. Row-level and field-level problems degrade locally;
// these surface and terminate the run.
var (
	ErrNoSources   = errors.New("no usable log files found")
	ErrEmptyCorpus = errors.New("no conversations remaining")
)

// Pipeline orchestrates the complete conversion: extraction, deduplication,
// optional token analysis, optional category rebalancing, and output.
type Pipeline struct {
	ctx       *Context
	cfg       *model.Config
	extractor *Extractor
	writer    *output.Writer
	counter   *tokenize.Counter // nil when tokenization is disabled
}

// New creates a pipeline from the configuration and the loaded name lists.
// A tokenizer that fails to load disables the tokenization stages with a
// warning rather than failing the run.
func New(cfg *model.Config, candidates, originals, denylist []string, logger zerolog.Logger) *Pipeline {
	ctx := NewContext(cfg, candidates, originals, logger)
	builder := NewBuilder(ctx, denylist)

	var counter *tokenize.Counter
	if cfg.Tokenizer.CountAll || cfg.Tokenizer.CountLargest {
		c, err := tokenize.NewCounter(cfg.Tokenizer.ID, cfg.Tokenizer.CacheTTL, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("tokenizer failed to load, skipping tokenization steps")
		} else {
			counter = c
		}
	}

	return &Pipeline{
		ctx:       ctx,
		cfg:       cfg,
		extractor: NewExtractor(ctx, builder),
		writer:    output.NewWriter(logger),
		counter:   counter,
	}
}

// Run executes every stage in order and returns the run summary. The
// returned error is fatal: no output file exists when it is non-nil.
func (p *Pipeline) Run(ctx context.Context) (*model.Summary, error) {
	logger := p.ctx.Logger

	sources := p.discoverSources()
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSources, p.cfg.Sources.LogsDir)
	}

	summary := &model.Summary{PerFile: make(map[string]int)}

	var corpus model.Corpus
	for _, src := range sources {
		convs, _ := p.extractor.ExtractFile(src)
		name := filepath.Base(src)
		summary.SourceFiles = append(summary.SourceFiles, name)
		summary.PerFile[name] = len(convs)
		corpus = append(corpus, convs...)
	}
	summary.Extracted = len(corpus)
	if summary.Extracted == 0 {
		return nil, fmt.Errorf("%w: extraction yielded nothing", ErrEmptyCorpus)
	}

	corpus, summary.Duplicates = Deduplicate(corpus, logger)
	summary.AfterDedup = len(corpus)
	if summary.AfterDedup == 0 {
		return nil, fmt.Errorf("%w after deduplication", ErrEmptyCorpus)
	}

	if p.counter != nil {
		counts := p.counter.CountCorpus(ctx, corpus, p.cfg.Tokenizer.Workers)
		analysis := tokenize.Analyze(counts, p.cfg.Tokenizer.TopN)
		if p.cfg.Tokenizer.CountAll {
			summary.TotalTokens = analysis.Total
			summary.AvgTokens = analysis.Average
			logger.Info().Int("total", analysis.Total).Float64("avg", analysis.Average).
				Msg("token counts across unique conversations")
		}
		if p.cfg.Tokenizer.CountLargest {
			summary.LargestTokens = analysis.Largest
			for i, n := range analysis.Largest {
				logger.Info().Int("rank", i+1).Int("tokens", n).Msg("largest conversation")
			}
		}
	}

	p.ctx.Rand.Shuffle(len(corpus), func(i, j int) {
		corpus[i], corpus[j] = corpus[j], corpus[i]
	})

	outName := "conversations.parquet"
	if p.cfg.Filter.CodeOnly {
		corpus = FilterByCategory(corpus, p.cfg.Filter.CodeRatio, p.ctx.Rand, logger)
		if len(corpus) == 0 {
			return nil, fmt.Errorf("%w after category filtering", ErrEmptyCorpus)
		}
		outName = "conversations_codeonly.parquet"
	}
	summary.Final = len(corpus)

	outPath := filepath.Join(p.cfg.Output.Dir, outName)
	if err := p.writer.WriteConversations(outPath, corpus); err != nil {
		return nil, fmt.Errorf("write output: %w", err)
	}

	summary.OutputPath = outPath
	summary.Replacements = p.ctx.ScrubbedConversations
	summary.PoolSize = p.ctx.Pool.Size()
	summary.PoolDropped = p.ctx.Pool.Dropped()
	return summary, nil
}

// RunVision executes the dedicated vision mode, which bypasses the
// conversation pipeline entirely.
func (p *Pipeline) RunVision() (string, int, error) {
	src := filepath.Join(p.cfg.Sources.LogsDir, p.cfg.Sources.Vision)
	samples, err := ExtractVision(src, p.ctx.Logger)
	if err != nil {
		return "", 0, err
	}
	if len(samples) == 0 {
		return "", 0, fmt.Errorf("%w: no valid vision entries in %s", ErrEmptyCorpus, src)
	}

	outPath := filepath.Join(p.cfg.Output.Dir, "vision.parquet")
	if err := p.writer.WriteVision(outPath, samples); err != nil {
		return "", 0, fmt.Errorf("write vision output: %w", err)
	}
	return outPath, len(samples), nil
}

// discoverSources returns the conversation log files that exist. The vision
// log is never part of conversation extraction; its presence is only noted.
func (p *Pipeline) discoverSources() []string {
	var sources []string
	for _, name := range []string{p.cfg.Sources.Normal, p.cfg.Sources.Reasoning} {
		path := filepath.Join(p.cfg.Sources.LogsDir, name)
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
		}
	}

	visionPath := filepath.Join(p.cfg.Sources.LogsDir, p.cfg.Sources.Vision)
	if _, err := os.Stat(visionPath); err == nil {
		p.ctx.Logger.Info().Str("file", p.cfg.Sources.Vision).
			Msg("vision log present, not included in conversation output (use the vision command)")
	}
	return sources
}
