package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"coverletter/internal/config"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIClient ходит в Chat Completions через официальный SDK.
type OpenAIClient struct {
	client       openai.Client
	defaultModel string
	store        bool
	logger       *slog.Logger
}

func NewOpenAIClient(cfg config.OpenAIConfig, httpClient *http.Client, logger *slog.Logger) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		// Повторов нет: ошибка сразу уходит вызывающему.
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:       openai.NewClient(opts...),
		defaultModel: cfg.Model,
		store:        cfg.Store,
		logger:       logger,
	}
}

func (c *OpenAIClient) ChatCompletion(ctx context.Context, prompt string, model string) (string, error) {
	if model == "" {
		model = c.defaultModel
	}
	if model == "" {
		return "", ErrInvalidModel
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if c.store {
		params.Store = openai.Bool(true)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	if c.logger != nil {
		c.logger.Debug("openai completion",
			slog.String("model", resp.Model),
			slog.Int64("prompt_tokens", resp.Usage.PromptTokens),
			slog.Int64("completion_tokens", resp.Usage.CompletionTokens))
	}
	return resp.Choices[0].Message.Content, nil
}
