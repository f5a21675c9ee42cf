package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// DefaultOpenAIModel is the chat model used when none is configured.
const DefaultOpenAIModel = openai.ChatModelGPT4oMini

// OpenAIClient implements ClientInterface using OpenAI chat completions.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient initializes a new OpenAI client using the OPENAI_API_KEY
// environment variable. An optional model overrides the default.
func NewOpenAIClient(model string) (*OpenAIClient, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	slog.Debug("OpenAIClient.New: creating client", "model", model)
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

// ProviderName returns the provider identifier.
func (c *OpenAIClient) ProviderName() string { return "openai" }

// Generate runs a chat completion and returns the generated text.
func (c *OpenAIClient) Generate(ctx context.Context, params GenerationParams) GenerationResult {
	slog.Debug("OpenAIClient.Generate: invoking chat completion",
		"model", c.model,
		"promptLength", len(params.Prompt),
		"responseFormat", params.ResponseFormat)

	messages := []openai.ChatCompletionMessageParamUnion{}
	if params.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(params.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(params.Prompt))

	req := openai.ChatCompletionNewParams{
		Model:       c.model,
		Messages:    messages,
		Temperature: openai.Float(params.Temperature),
	}
	if params.ResponseFormat == ResponseFormatJSON {
		req.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, req)
	if err != nil {
		slog.Error("OpenAIClient.Generate: chat completion failed", "error", err)
		return failureResult(err.Error(), c.ProviderName())
	}
	if len(resp.Choices) == 0 {
		slog.Error("OpenAIClient.Generate: no choices returned")
		return failureResult("no choices returned", c.ProviderName())
	}

	content := resp.Choices[0].Message.Content
	slog.Debug("OpenAIClient.Generate: completion succeeded", "contentLength", len(content))
	return successResult(content, c.ProviderName())
}
