package httpserver

import (
	"encoding/json"
	"net/http"

	"coverletter/internal/middleware"

	"log/slog"

	"github.com/go-chi/chi/v5"
)

// Pages страницы формы и экспорта.
type Pages interface {
	Form(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Static() http.Handler
}

type RouterDeps struct {
	Logger *slog.Logger
	// APIRoute путь, на котором висит API.
	APIRoute   string
	APIHandler http.Handler
	// FailureMessage тело ответа при panic.
	FailureMessage string
	Pages          Pages
}

// NewRouter собирает chi-роутер с общими middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	failure, _ := json.Marshal(errorBody{Error: deps.FailureMessage})

	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(deps.Logger, failure))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	if deps.APIHandler != nil {
		r.Post(deps.APIRoute, deps.APIHandler.ServeHTTP)
	}

	if deps.Pages != nil {
		r.Get("/", deps.Pages.Form)
		r.Post("/", deps.Pages.Submit)
		r.Post("/export", deps.Pages.Export)
		r.Handle("/static/*", deps.Pages.Static())
	}

	return r
}
