package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Completion budgets per stage.
const (
	mapTemperature = 0.2
	mapMaxTokens   = 500

	reduceTemperature = 0.3
	reduceMaxTokens   = 1500

	directTemperature = 0.3
	directMaxTokens   = 1500
)

// maxReduceDepth bounds the recursive reduce for pathological inputs.
const maxReduceDepth = 3

// ChunkSummary is one chunk's compressed form. The map stage produces
// these concurrently; merge order is restored by ChunkIndex, never by
// completion time.
type ChunkSummary struct {
	ChunkIndex int
	Text       string
}

// mapChunks summarizes every chunk concurrently, bounded by maxConcurrent.
// Policy is fail-fast: the first failing chunk cancels the rest and the
// whole batch errors with a ChunkBatchError; partial results are discarded.
func (s *Summarizer) mapChunks(ctx context.Context, chunks []Chunk) ([]ChunkSummary, error) {
	summaries := make([]ChunkSummary, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.MaxConcurrent)

	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			text, err := s.completer.Complete(ctx, mapPrompt, chunk.Text, mapTemperature, mapMaxTokens)
			if err != nil {
				return &ChunkBatchError{ChunkIndex: chunk.Index, Err: err}
			}
			// indexed slot: ordering by chunk index regardless of
			// which call finishes first
			summaries[chunk.Index] = ChunkSummary{ChunkIndex: chunk.Index, Text: strings.TrimSpace(text)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// reduce merges the ordered chunk summaries in one completion call. When
// the concatenated summaries are themselves too large for a single call,
// the whole split->map->reduce cycle recurses on the concatenation.
func (s *Summarizer) reduce(ctx context.Context, summaries []ChunkSummary, depth int) (string, error) {
	var sb strings.Builder
	for _, cs := range summaries {
		fmt.Fprintf(&sb, "--- Part %d ---\n%s\n\n", cs.ChunkIndex+1, cs.Text)
	}
	combined := sb.String()

	if EstimateTokens(combined) > float64(s.opts.DirectThresholdTokens) {
		if depth >= maxReduceDepth {
			return "", fmt.Errorf("reduce stage: combined summaries still too large at depth %d", depth)
		}
		s.logger.Info("combined chunk summaries exceed context budget, recursing",
			slog.Int("depth", depth+1),
			slog.Int("parts", len(summaries)))
		return s.summarizeChunked(ctx, combined, depth+1)
	}

	out, err := s.completer.Complete(ctx, reducePrompt, combined, reduceTemperature, reduceMaxTokens)
	if err != nil {
		return "", fmt.Errorf("reduce stage: %w", err)
	}
	return strings.TrimSpace(out), nil
}
