// Package acquire turns a video reference into a transcript, trying a
// prioritized chain of acquisition strategies until one yields text.
package acquire

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkotlyar/vidbrief/internal/core/captions"
)

// Transcript is the result of a successful acquisition.
type Transcript struct {
	VideoID  string
	Title    string
	Text     string
	Segments []captions.Segment // empty for strategies that only yield flat text
	Language string

	// NeedsTranslation is set when no preferred-language caption track
	// existed and an arbitrary track was taken instead.
	NeedsTranslation bool

	// Strategy names the acquisition strategy that produced the text.
	Strategy string
}

// Strategy is one concrete method of obtaining a transcript.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error)
}

// Acquirer drives the ordered strategy chain.
type Acquirer struct {
	strategies []Strategy
	logger     *slog.Logger
	timeout    time.Duration
}

// NewAcquirer builds an Acquirer over an explicit strategy order.
// The timeout is the overall acquisition deadline; each strategy gets a
// slice of it so one hung call cannot starve the rest of the chain.
func NewAcquirer(strategies []Strategy, timeout time.Duration, logger *slog.Logger) *Acquirer {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &Acquirer{
		strategies: strategies,
		logger:     logger,
		timeout:    timeout,
	}
}

// Acquire runs the strategies in order and returns the first non-empty
// transcript. Strategy-level failures are logged and recorded; only full
// exhaustion is surfaced, as an *ExhaustedError listing every attempt.
func (a *Acquirer) Acquire(ctx context.Context, ref VideoRef, langs []string) (*Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var attempts []Attempt
	for i, strategy := range a.strategies {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, Attempt{Strategy: strategy.Name(), Err: err})
			break
		}

		stepCtx, stepCancel := context.WithTimeout(ctx, a.deadlineSlice(ctx, len(a.strategies)-i))
		transcript, err := strategy.Attempt(stepCtx, ref, langs)
		stepCancel()

		if err == nil && transcript != nil && transcript.Text != "" {
			transcript.Strategy = strategy.Name()
			a.logger.Info("transcript acquired",
				slog.String("video_id", ref.ID),
				slog.String("strategy", strategy.Name()),
				slog.Int("chars", len(transcript.Text)))
			return transcript, nil
		}
		if err == nil {
			err = captions.ErrNoTranscriptFound
		}

		a.logger.Warn("acquisition strategy failed",
			slog.String("video_id", ref.ID),
			slog.String("strategy", strategy.Name()),
			slog.Any("err", err))
		attempts = append(attempts, Attempt{Strategy: strategy.Name(), Err: err})
	}

	return nil, &ExhaustedError{VideoID: ref.ID, Attempts: attempts}
}

// deadlineSlice divides the remaining budget across the strategies left.
func (a *Acquirer) deadlineSlice(ctx context.Context, remaining int) time.Duration {
	if remaining < 1 {
		remaining = 1
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return a.timeout / time.Duration(remaining)
	}
	return time.Until(deadline) / time.Duration(remaining)
}
