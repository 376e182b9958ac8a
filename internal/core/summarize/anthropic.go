package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/cenkalti/backoff/v4"
)

// Anthropic implements Completer using Anthropic Claude.
type Anthropic struct {
	client *anthropic.Client
	model  string
}

// NewAnthropic creates an Anthropic completer.
func NewAnthropic(model, apiKey string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key not provided")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	return &Anthropic{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider name.
func (a *Anthropic) Name() string {
	return "anthropic"
}

// Complete sends one message request, retrying transient failures with
// exponential backoff before escalating.
func (a *Anthropic) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int64) (string, error) {
	operation := func() (string, error) {
		message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     anthropic.Model(a.model),
			MaxTokens: maxTokens,
			System: []anthropic.TextBlockParam{
				{Text: system},
			},
			Temperature: anthropic.Float(temperature),
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
			},
		})
		if err != nil {
			return "", fmt.Errorf("completion API error: %w", err)
		}

		var content string
		for _, block := range message.Content {
			if block.Type == "text" {
				content += block.Text
			}
		}
		if content == "" {
			return "", backoff.Permanent(fmt.Errorf("no response from API"))
		}
		return content, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	return backoff.RetryWithData(operation, policy)
}
