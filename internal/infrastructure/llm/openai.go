package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"intelhub/internal/config"
	"intelhub/internal/ports"
)

const systemPrompt = "You are a competitive-intelligence analyst. " +
	"Answer with JSON only, no surrounding prose and no markdown fences."

// OpenAIClient implements ports.Enricher against the OpenAI chat API.
type OpenAIClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

var _ ports.Enricher = (*OpenAIClient)(nil)

// NewOpenAIClient builds a client from configuration.
func NewOpenAIClient(cfg config.OpenAIConfig) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	model := openai.ChatModel(cfg.Model)
	if cfg.Model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIClient{
		client:    &client,
		model:     model,
		modelName: string(model),
	}
}

// Complete submits the prompt and returns the raw completion text. The
// caller treats the result as untrusted and parses it defensively.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return resp.Choices[0].Message.Content, nil
}

// Model reports the configured model name, for logging.
func (c *OpenAIClient) Model() string {
	return c.modelName
}
