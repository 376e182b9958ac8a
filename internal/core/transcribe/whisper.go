package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cenkalti/backoff/v4"
	openai "github.com/sashabaranov/go-openai"
)

// Whisper implements Transcriber using the OpenAI Whisper API.
type Whisper struct {
	client *openai.Client
	model  string
}

// NewWhisper creates a Whisper transcriber.
func NewWhisper(apiKey string) (*Whisper, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}
	return &Whisper{
		client: openai.NewClient(apiKey),
		model:  openai.Whisper1,
	}, nil
}

// Name returns the provider name.
func (w *Whisper) Name() string {
	return "openai"
}

// Transcribe converts an audio file to text. Files over MaxAudioSize are
// rejected up front rather than attempted.
func (w *Whisper) Transcribe(ctx context.Context, path string, languageHint string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat audio file: %w", err)
	}
	if info.Size() > MaxAudioSize {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrAudioTooLarge, info.Size(), int64(MaxAudioSize))
	}

	req := openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
		Language: languageHint,
		Format:   openai.AudioResponseFormatText,
	}

	operation := func() (string, error) {
		resp, err := w.client.CreateTranscription(ctx, req)
		if err != nil {
			return "", fmt.Errorf("transcription API error: %w", err)
		}
		return resp.Text, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	text, err := backoff.RetryWithData(operation, policy)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty transcription result")
	}
	return text, nil
}
