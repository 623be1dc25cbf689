// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sonix-engine/internal/config"
	"sonix-engine/internal/domain/ports/repository"
	"sonix-engine/internal/infra/adapters/sim"
	"sonix-engine/internal/infra/contextstore"
	"sonix-engine/internal/infra/logging"
	"sonix-engine/internal/infra/metrics"
	red "sonix-engine/internal/infra/redis"
	"sonix-engine/internal/infra/web"
	"sonix-engine/internal/intent"
	"sonix-engine/internal/synth"
	"sonix-engine/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, relaxed auth)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Context store ----
	var contexts repository.ContextRepository
	switch cfg.Store.Backend {
	case "redis":
		client, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer client.Close()
		contexts = red.NewContextStore(client, cfg.Redis.TTL)
		logger.Info().Str("backend", "redis").Str("url", cfg.Redis.URL).Msg("context store ready")
	default:
		contexts = contextstore.NewMemoryStore()
		logger.Info().Str("backend", "memory").Msg("context store ready")
	}

	// ---- Engine ----
	rnd := sim.NewLockedRand()
	sleeper := sim.NewTimerSleeper()
	classifier := intent.NewClassifier()
	text := synth.NewTextSynthesizer(rnd)
	image := synth.NewImageSynthesizer(rnd, sleeper, cfg.Engine.ImageDelay, cfg.Engine.FailureChance, logger)

	responses := usecase.NewLimitedResponses(
		usecase.NewResponseUseCase(contexts, classifier, text, image, rnd, sleeper, cfg.Engine, logger),
		cfg.Engine.ConcurrentLimit,
	)
	suggestions := usecase.NewSuggestionUseCase()

	// ---- HTTP ----
	secret := cfg.Server.SessionSecret
	if secret == "" {
		logger.Warn().Msg("server.session_secret not set; using dev secret (INSECURE)")
		secret = "sonix-dev-secret"
	}
	auth := web.NewAuthManager(secret, !cfg.Runtime.Dev, cfg.Server.SessionTTL)
	srv := web.NewServer(responses, suggestions, auth, logger)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	cancel()
}
