package coverletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"coverletter/internal/lettercheck"
	"coverletter/internal/llm"
)

type ServiceConfig struct {
	Client llm.Client
	// Model пустая строка означает модель клиента по умолчанию.
	Model  string
	Logger *slog.Logger
}

// Service строит промпт и получает письмо от модели. Состояния между вызовами нет.
type Service struct {
	client llm.Client
	model  string
	logger *slog.Logger
}

func NewService(cfg ServiceConfig) *Service {
	return &Service{
		client: cfg.Client,
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Generate возвращает обрезанный по краям текст первого варианта ответа.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	if missing := req.Missing(); len(missing) > 0 {
		return "", fmt.Errorf("%w: missing %s", ErrMissingFields, strings.Join(missing, ", "))
	}
	if s.client == nil {
		return "", errors.New("llm client is not configured")
	}

	answer, err := s.client.ChatCompletion(ctx, BuildPrompt(req), s.model)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	letter := strings.TrimSpace(answer)
	if letter == "" {
		return "", llm.ErrEmptyCompletion
	}

	s.check(letter, req)
	return letter, nil
}

// check только логирует расхождения с тем, что просили в промпте.
func (s *Service) check(letter string, req Request) {
	if s.logger == nil {
		return
	}
	res := lettercheck.Validate(letter, lettercheck.Expectations{
		Name:        req.Name,
		CompanyName: req.CompanyName,
	})
	if !res.IsValid {
		s.logger.Warn("cover letter violates contract", slog.Any("errors", res.Errors))
	}
	if len(res.Warnings) > 0 {
		s.logger.Debug("cover letter warnings", slog.Any("warnings", res.Warnings))
	}
}
