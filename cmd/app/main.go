package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coverletter/internal/config"
	"coverletter/internal/coverletter"
	"coverletter/internal/httpserver"
	"coverletter/internal/llm"
	"coverletter/internal/pdfexport"
	"coverletter/internal/transport"
	"coverletter/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.LogLevel)

	httpClient := transport.NewHTTPClient(cfg.RequestTimeout)
	llmClient, err := llm.New(cfg, httpClient, logger)
	if err != nil {
		log.Fatalf("failed to init llm client: %v", err)
	}

	service := coverletter.NewService(coverletter.ServiceConfig{
		Client: llmClient,
		Logger: logger,
	})
	apiHandler := coverletter.NewHandler(coverletter.HandlerDeps{
		Generator: service,
		Logger:    logger,
	})

	// Страница ходит в API по HTTP, как браузер; по умолчанию в этот же процесс.
	apiBaseURL := cfg.UI.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = localURL(cfg.HTTPAddr)
	}
	pages, err := ui.NewPages(ui.PagesDeps{
		Generator: ui.NewAPIClient(apiBaseURL, httpClient),
		Logger:    logger,
		Export:    pdfexport.DefaultOptions(),
	})
	if err != nil {
		log.Fatalf("failed to init pages: %v", err)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Logger:         logger,
		APIRoute:       coverletter.Route,
		APIHandler:     apiHandler,
		FailureMessage: coverletter.GenericFailure,
		Pages:          pages,
	})

	server := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Ответ модели может идти дольше минуты.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("provider", cfg.Provider),
			slog.String("api_base_url", apiBaseURL))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}

// localURL превращает адрес прослушивания (":8080", "0.0.0.0:8080") в URL для
// обращения к самому себе.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func newLogger(level string) *slog.Logger {
	slogLevel := slog.LevelInfo
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel}))
}
