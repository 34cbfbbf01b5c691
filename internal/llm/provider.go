package llm

import (
	"fmt"
	"log/slog"
	"net/http"

	"coverletter/internal/config"
)

// New выбирает реализацию Client по cfg.Provider.
func New(cfg config.Config, httpClient *http.Client, logger *slog.Logger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAI, httpClient, logger), nil
	case config.ProviderOpenRouter:
		return NewOpenRouterClient(cfg.OpenRouter, httpClient, logger), nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
