package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Options configures the summarization pipeline. All values come from
// configuration, not code.
type Options struct {
	// DirectThresholdTokens routes transcripts estimated below it to a
	// single completion call; larger ones go through split->map->reduce.
	DirectThresholdTokens int

	// MaxTokensPerChunk bounds each chunk's estimated size.
	MaxTokensPerChunk int

	// OverlapTokens carried from one chunk's tail into the next.
	OverlapTokens int

	// MaxConcurrent bounds parallel map-stage completion calls.
	MaxConcurrent int
}

func (o *Options) applyDefaults() {
	if o.DirectThresholdTokens <= 0 {
		o.DirectThresholdTokens = 8000
	}
	if o.MaxTokensPerChunk <= 0 {
		o.MaxTokensPerChunk = 3000
	}
	if o.OverlapTokens < 0 {
		o.OverlapTokens = 0
	}
	if o.MaxConcurrent <= 0 {
		o.MaxConcurrent = 4
	}
}

// Summarizer turns a transcript into a structured summary.
type Summarizer struct {
	completer Completer
	opts      Options
	logger    *slog.Logger
}

// New creates a Summarizer over the given completion backend.
func New(completer Completer, opts Options, logger *slog.Logger) *Summarizer {
	opts.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{
		completer: completer,
		opts:      opts,
		logger:    logger,
	}
}

// Summarize produces the final summary for a transcript. Short transcripts
// go through one direct completion; long ones through the chunked pipeline.
// Callers get either a complete summary or a single explicit error naming
// the failed stage; there is no partial output.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty transcript")
	}

	estimate := EstimateTokens(text)
	if estimate <= float64(s.opts.DirectThresholdTokens) {
		s.logger.Debug("direct summarization",
			slog.Float64("token_estimate", estimate))
		out, err := s.completer.Complete(ctx, directPrompt, text, directTemperature, directMaxTokens)
		if err != nil {
			return "", fmt.Errorf("direct summarization: %w", err)
		}
		return strings.TrimSpace(out), nil
	}

	return s.summarizeChunked(ctx, text, 0)
}

// summarizeChunked runs the full split->map->reduce pipeline. depth tracks
// reduce recursion for oversized chunk-summary sets.
func (s *Summarizer) summarizeChunked(ctx context.Context, text string, depth int) (string, error) {
	chunks := Split(text, s.opts.MaxTokensPerChunk, s.opts.OverlapTokens)
	if len(chunks) == 0 {
		return "", fmt.Errorf("transcript produced no chunks")
	}

	s.logger.Info("chunked summarization",
		slog.Int("chunks", len(chunks)),
		slog.Int("depth", depth),
		slog.Float64("token_estimate", EstimateTokens(text)))

	summaries, err := s.mapChunks(ctx, chunks)
	if err != nil {
		return "", err
	}

	return s.reduce(ctx, summaries, depth)
}
