package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/travelbestbets/travelbot/internal/anthropic"
	"github.com/travelbestbets/travelbot/internal/api"
	"github.com/travelbestbets/travelbot/internal/config"
	"github.com/travelbestbets/travelbot/internal/events"
	"github.com/travelbestbets/travelbot/internal/google"
	"github.com/travelbestbets/travelbot/internal/knowledge"
	"github.com/travelbestbets/travelbot/internal/memory"
	"github.com/travelbestbets/travelbot/internal/router"
	"github.com/travelbestbets/travelbot/internal/store"
	"github.com/travelbestbets/travelbot/internal/weather"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("travelbot starting", "port", cfg.Port)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Conversation log
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	// Collaborators
	llm := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	slog.Info("anthropic client ready", "model", cfg.AnthropicModel)

	retriever, err := knowledge.New(cfg.WeaviateURL, cfg.WeaviateAPIKey)
	if err != nil {
		slog.Error("failed to build weaviate client", "error", err)
		os.Exit(1)
	}
	slog.Info("weaviate client ready", "url", cfg.WeaviateURL)

	search := google.NewClient(cfg.GoogleAPIKey, cfg.GoogleCSEID)
	owm := weather.NewClient(cfg.WeatherAPIKey)

	// Event publisher (optional — travelbot works without NATS, downstream
	// consumers just see nothing)
	var publisher api.TurnPublisher
	if cfg.NatsURL != "" {
		nc, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer nc.Close()
		publisher = nc
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — turn events disabled")
	}

	// Router + per-session memory
	bot := router.New(llm, retriever, search, owm, router.Config{
		DealsCorpus:     cfg.DealsCorpus,
		GenericCorpus:   cfg.GenericCorpus,
		DealsDocCount:   cfg.DealsDocCount,
		GenericDocCount: cfg.GenericDocCount,
		ApprovedDomain:  cfg.ApprovedDomain,
	}, slog.Default())

	sessions := memory.NewManager(cfg.HistoryCount)
	stop := make(chan struct{})
	go sessions.RunSweeper(15*time.Minute, stop)

	// HTTP API
	srv := api.NewServer(cfg.Port, bot, sessions, db, publisher,
		time.Duration(cfg.RequestTimeout)*time.Second, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("travelbot ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	close(stop)
	cancel()
	slog.Info("travelbot stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
