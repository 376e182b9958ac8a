// Package summarize condenses transcripts into short structured summaries,
// using direct completion for short texts and a chunked map-reduce pipeline
// for long ones.
package summarize

import (
	"context"
	"fmt"
)

// Completer is a chat-completion backend. The map, reduce, and direct
// stages all go through this one call with different prompts and budgets.
type Completer interface {
	// Complete sends one system+user exchange and returns the reply text.
	Complete(ctx context.Context, system, user string, temperature float64, maxTokens int64) (string, error)

	// Name returns the provider name.
	Name() string
}

// NewCompleter creates a Completer for the given provider. The backend is
// selected once here; callers never branch on provider again.
func NewCompleter(provider, model, apiKey string) (Completer, error) {
	switch provider {
	case "openai":
		return NewOpenAI(model, apiKey)
	case "anthropic":
		return NewAnthropic(model, apiKey)
	default:
		return nil, fmt.Errorf("unsupported summarization provider: %s", provider)
	}
}

// ChunkBatchError wraps the first chunk failure when the map stage's
// fail-fast policy triggers. Already-computed sibling summaries are
// discarded with it.
type ChunkBatchError struct {
	ChunkIndex int
	Err        error
}

func (e *ChunkBatchError) Error() string {
	return fmt.Sprintf("chunk %d summarization failed: %v", e.ChunkIndex, e.Err)
}

func (e *ChunkBatchError) Unwrap() error {
	return e.Err
}
