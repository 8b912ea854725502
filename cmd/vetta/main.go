package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vettalabs/vetta/internal/config"
	"github.com/vettalabs/vetta/internal/interview"
	"github.com/vettalabs/vetta/internal/llm"
	"github.com/vettalabs/vetta/internal/questionbank"
	"github.com/vettalabs/vetta/internal/server"
	"github.com/vettalabs/vetta/internal/store"
	"github.com/vettalabs/vetta/internal/store/postgres"
	redisstore "github.com/vettalabs/vetta/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("VETTA_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("VETTA_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL.
	pg, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer pg.Close()

	// Connect to Redis for the hot-session cache.
	cache, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.CacheTTL)
	if err != nil {
		return err
	}
	defer cache.Close()

	// Open the question bank vector store.
	bank, err := questionbank.New(questionbank.Config{
		Path:             cfg.QuestionBank.Path,
		Collection:       cfg.QuestionBank.Collection,
		EmbeddingBaseURL: cfg.Embedding.BaseURL,
		EmbeddingAPIKey:  cfg.Embedding.APIKey,
		EmbeddingModel:   cfg.Embedding.Model,
	})
	if err != nil {
		return err
	}

	// Create the LLM interviewer: generator, evaluator, and summarizer.
	interviewer := llm.NewInterviewer(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	})

	// Create the interview orchestrator over the two-tier session store.
	sessions := store.NewSessionStore(pg.Sessions(), cache)
	orchestrator := interview.NewOrchestrator(
		sessions,
		interviewer,
		interviewer,
		interviewer,
		questionbank.NewSource(bank),
	)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, orchestrator, bank)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}
