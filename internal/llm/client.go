package llm

import (
	"context"
	"errors"
)

var (
	ErrInvalidModel    = errors.New("model is required")
	ErrEmptyCompletion = errors.New("empty response from model")
)

// Client минимальный публичный интерфейс LLM клиента: один промпт от роли user,
// в ответ текст первого варианта. Пустая модель означает модель по умолчанию.
type Client interface {
	ChatCompletion(ctx context.Context, prompt string, model string) (string, error)
}
