package summarize

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements Completer using OpenAI chat completions.
type OpenAI struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAI creates an OpenAI completer.
func NewOpenAI(model, apiKey string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not provided")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	chatModel := openai.ChatModel(model)
	if model == "" {
		chatModel = openai.ChatModelGPT4o
	}

	return &OpenAI{
		client: client,
		model:  chatModel,
	}, nil
}

// Name returns the provider name.
func (o *OpenAI) Name() string {
	return "openai"
}

// Complete sends one chat completion request, retrying transient failures
// with exponential backoff before escalating.
func (o *OpenAI) Complete(ctx context.Context, system, user string, temperature float64, maxTokens int64) (string, error) {
	operation := func() (string, error) {
		resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: o.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			MaxTokens:   openai.Int(maxTokens),
			Temperature: openai.Float(temperature),
		})
		if err != nil {
			return "", fmt.Errorf("completion API error: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", backoff.Permanent(fmt.Errorf("no response from API"))
		}
		return resp.Choices[0].Message.Content, nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	return backoff.RetryWithData(operation, policy)
}
