// Package openai wraps the OpenAI chat completions API for single-shot completions.
package openai

import (
	"context"
	"errors"
	"net/http"
	"time"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rotisserie/eris"

	"github.com/sells-group/account-brief/internal/apperr"
)

// DefaultModel is used when a request leaves Model empty.
const DefaultModel = "gpt-4o-mini"

// Client performs chat completions against the OpenAI API.
type Client interface {
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)
}

// ChatCompletionRequest is our own request type for ChatCompletion. Nil
// sampling parameters are left to the API defaults.
type ChatCompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature *float64
	MaxTokens   *int
}

// Message represents a single message in the conversation.
type Message struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// ChatCompletionResponse is our own response type from ChatCompletion.
type ChatCompletionResponse struct {
	ID      string
	Model   string
	Choices []Choice
	Usage   Usage
}

// Choice is a single completion choice.
type Choice struct {
	Index        int
	Message      Message
	FinishReason string
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// sdkClient implements Client using the official openai-go SDK.
type sdkClient struct {
	client sdk.Client
}

// NewClient creates an OpenAI client backed by the SDK. Retries are disabled;
// every call is a single attempt.
func NewClient(apiKey string, opts ...option.RequestOption) Client {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		}),
	}
	return &sdkClient{
		client: sdk.NewClient(append(base, opts...)...),
	}
}

func (c *sdkClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	params := sdk.ChatCompletionNewParams{
		Model:    sdk.ChatModel(model),
		Messages: toSDKMessages(req.Messages),
	}
	if req.Temperature != nil {
		params.Temperature = sdk.Float(*req.Temperature)
	}
	if req.MaxTokens != nil {
		params.MaxTokens = sdk.Int(int64(*req.MaxTokens))
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return nil, eris.Wrap(apperr.NewProviderError("OpenAI", apiErr.StatusCode, []byte(apiErr.Error())), "openai: chat completion")
		}
		return nil, eris.Wrap(err, "openai: chat completion")
	}

	return fromSDKCompletion(completion), nil
}

func toSDKMessages(msgs []Message) []sdk.ChatCompletionMessageParamUnion {
	out := make([]sdk.ChatCompletionMessageParamUnion, len(msgs))
	for i, m := range msgs {
		switch m.Role {
		case "system":
			out[i] = sdk.SystemMessage(m.Content)
		case "assistant":
			out[i] = sdk.AssistantMessage(m.Content)
		default:
			out[i] = sdk.UserMessage(m.Content)
		}
	}
	return out
}

func fromSDKCompletion(c *sdk.ChatCompletion) *ChatCompletionResponse {
	choices := make([]Choice, 0, len(c.Choices))
	for _, ch := range c.Choices {
		choices = append(choices, Choice{
			Index: int(ch.Index),
			Message: Message{
				Role:    string(ch.Message.Role),
				Content: ch.Message.Content,
			},
			FinishReason: ch.FinishReason,
		})
	}

	return &ChatCompletionResponse{
		ID:      c.ID,
		Model:   c.Model,
		Choices: choices,
		Usage: Usage{
			PromptTokens:     int(c.Usage.PromptTokens),
			CompletionTokens: int(c.Usage.CompletionTokens),
			TotalTokens:      int(c.Usage.TotalTokens),
		},
	}
}
