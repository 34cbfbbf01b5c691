package coverletter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"coverletter/internal/httpserver"
	"coverletter/internal/middleware"
)

// Route путь API генерации.
const Route = "/api/generate-cover-letter"

const maxBodyBytes = 64 << 10

// Generator то, что нужно обработчику от Service.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type HandlerDeps struct {
	Generator Generator
	Logger    *slog.Logger
}

type Handler struct {
	generator Generator
	logger    *slog.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		generator: deps.Generator,
		logger:    deps.Logger,
	}
}

// ServeHTTP отвечает 200 {"coverLetter": ...} либо 500 {"error": GenericFailure}.
// Причина ошибки только логируется.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	letter, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	httpserver.WriteJSON(w, http.StatusOK, Result{CoverLetter: letter})
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (Request, error) {
	var req Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(&req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	// После объекта допускаются только пробелы.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Request{}, errors.New("decode request: unexpected data after JSON object")
	}
	return req, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if h.logger != nil {
		h.logger.Error("error generating cover letter",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r)))
	}
	httpserver.WriteJSONError(w, http.StatusInternalServerError, GenericFailure)
}
