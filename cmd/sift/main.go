package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/opensight/sift/api"
	"github.com/opensight/sift/cleaner"
	"github.com/opensight/sift/config"
	"github.com/opensight/sift/engine"
	"github.com/opensight/sift/llm"
	"github.com/opensight/sift/scraper"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("sift starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"textMode", cfg.Cleaner.TextMode,
		"maxTextChars", cfg.Cleaner.MaxTextChars,
	)

	// ── 3. Fetch pipeline ───────────────────────────────────────────
	sc := scraper.NewScraper(engine.NewHTTPEngine(cfg.Fetch))
	cl := cleaner.NewCleaner(cfg.Cleaner)

	// ── 4. Summarization backend ────────────────────────────────────
	var chat llm.ChatClient
	if cfg.LLM.APIKey != "" {
		chat = llm.NewOpenAIClient(cfg.LLM)
		slog.Info("API key found", "baseURL", cfg.LLM.BaseURL, "model", cfg.LLM.Model)
	} else {
		slog.Warn("no API key found; summaries will return a fixed notice",
			"env", "OPENAI_API_KEY",
		)
	}
	sum := llm.NewSummarizer(cfg.LLM, chat)

	// ── 5. Setup router ─────────────────────────────────────────────
	router := api.NewRouter(sc, cl, sum, cfg)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// In-flight requests may still be waiting on the summarizer.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Fetch.Timeout+cfg.LLM.Timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("sift stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
