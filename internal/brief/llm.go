package brief

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/account-brief/pkg/anthropic"
	"github.com/sells-group/account-brief/pkg/openai"
)

// CompletionRequest is a single-turn completion.
type CompletionRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer is an LLM backend that turns one prompt into text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Provider() string
}

// OpenAICompleter adapts the OpenAI chat completions client.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter creates a completer. An empty model uses the client default.
func NewOpenAICompleter(client openai.Client, model string) *OpenAICompleter {
	return &OpenAICompleter{client: client, model: model}
}

// Provider implements Completer.
func (c *OpenAICompleter) Provider() string { return "openai" }

// Complete implements Completer.
func (c *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	temp := req.Temperature
	maxTokens := req.MaxTokens
	resp, err := c.client.ChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    []openai.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "brief: openai completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("brief: openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnthropicCompleter adapts the Anthropic messages client.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropicCompleter creates a completer. An empty model uses the client default.
func NewAnthropicCompleter(client anthropic.Client, model string) *AnthropicCompleter {
	return &AnthropicCompleter{client: client, model: model}
}

// Provider implements Completer.
func (c *AnthropicCompleter) Provider() string { return "anthropic" }

// Complete implements Completer.
func (c *AnthropicCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	temp := req.Temperature
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   int64(req.MaxTokens),
		Messages:    []anthropic.Message{{Role: "user", Content: req.Prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", eris.Wrap(err, "brief: anthropic completion")
	}
	return resp.Text(), nil
}
