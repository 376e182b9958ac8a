// Package transcribe provides speech-to-text transcription.
package transcribe

import (
	"context"
	"errors"
	"fmt"
)

// MaxAudioSize is the provider's hard input ceiling (25 MB for Whisper).
const MaxAudioSize = 25 * 1024 * 1024

// ErrAudioTooLarge indicates the audio exceeds the provider's size ceiling.
// Surfaced before the API call; not retryable.
var ErrAudioTooLarge = errors.New("audio file exceeds transcription size limit")

// Transcriber converts an audio file to text.
type Transcriber interface {
	// Transcribe converts the audio file at path to plain text.
	// languageHint may be empty for auto-detection.
	Transcribe(ctx context.Context, path string, languageHint string) (string, error)

	// Name returns the provider name.
	Name() string
}

// New creates a Transcriber for the given provider.
func New(provider, apiKey string) (Transcriber, error) {
	switch provider {
	case "openai":
		return NewWhisper(apiKey)
	default:
		return nil, fmt.Errorf("unsupported transcription provider: %s", provider)
	}
}
