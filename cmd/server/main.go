package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docshape/internal/api"
	"github.com/dgallion1/docshape/internal/config"
	"github.com/dgallion1/docshape/internal/generate"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize the generation backend.
	stats := generate.NewLatencyStats(cfg.LLMStatsWindow)
	var (
		backend generate.Generator
		closeFn = func() {}
	)
	switch cfg.Generator {
	case config.GeneratorOllama:
		ollama, err := generate.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel, stats)
		if err != nil {
			log.Error("init ollama client", "error", err)
			os.Exit(1)
		}
		backend = ollama
	default:
		claude := generate.NewClaudeClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, stats)
		backend = claude
		closeFn = claude.Close
	}
	gen := generate.NewRetrying(backend, log)

	// Initialize HTTP server.
	srv := api.NewServer(gen, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 330 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		closeFn()
	}()

	log.Info("starting docshape", "port", cfg.Port, "generator", cfg.Generator, "model", gen.Model())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
