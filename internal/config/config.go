package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

type Config struct {
	HTTPAddr       string
	LogLevel       string
	RequestTimeout time.Duration
	Provider       string
	OpenAI         OpenAIConfig
	OpenRouter     OpenRouterConfig
	UI             UIConfig
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Store   bool
}

type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type UIConfig struct {
	// APIBaseURL пустой, если страница обращается к API в этом же процессе.
	APIBaseURL string
}

// Load читает конфигурацию из окружения; .env подхватывается, если он есть.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	reqTimeout, err := parseDuration(getEnv("HTTP_CLIENT_TIMEOUT", "0s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_CLIENT_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = reqTimeout

	cfg.Provider = strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))

	store, err := parseBoolDefault(getEnv("OPENAI_STORE", ""), true)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_STORE: %w", err)
	}
	cfg.OpenAI = OpenAIConfig{
		APIKey:  getEnv("OPENAI_API_KEY", ""),
		BaseURL: getEnv("OPENAI_BASE_URL", ""),
		Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		Store:   store,
	}

	cfg.OpenRouter = OpenRouterConfig{
		APIKey:  getEnv("OPENROUTER_API_KEY", ""),
		BaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		Model:   getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),
	}

	cfg.UI = UIConfig{
		APIBaseURL: strings.TrimRight(getEnv("UI_API_BASE_URL", ""), "/"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Provider {
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.Provider)
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for provider %q", c.Provider)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.Provider)
	}
	return nil
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("duration is empty")
	}
	return time.ParseDuration(value)
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

// parseBoolDefault parses optional boolean with default value.
func parseBoolDefault(value string, def bool) (bool, error) {
	if value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, err
	}
	return parsed, nil
}
