package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"telegram-football-fixtures/internal/application"
	"telegram-football-fixtures/internal/config"
	"telegram-football-fixtures/internal/domain/ports/adapter"
	tele "telegram-football-fixtures/internal/infra/adapters/telegram"
	"telegram-football-fixtures/internal/infra/adapters/translate"
	pg "telegram-football-fixtures/internal/infra/db/postgres"
	"telegram-football-fixtures/internal/infra/logging"
	red "telegram-football-fixtures/internal/infra/redis"
	"telegram-football-fixtures/internal/infra/sched"
	"telegram-football-fixtures/internal/infra/web"
	"telegram-football-fixtures/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging)")
	flag.Parse()

	// .env is optional and only fills missing environment variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)
	stateRepo := red.NewPromptStateRepo(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	fixtureRepo := pg.NewFixtureRepo(pool)
	referenceRepo := pg.NewReferenceRepo(pool)
	prefsRepo := pg.NewPrefsRepo(pool)
	txManager := pg.NewTxManager(pool)

	// ---- Use cases ----
	fixtureUC := usecase.NewFixtureUseCase(fixtureRepo, referenceRepo, prefsRepo, cfg.Notifier.ExcludeStatuses, logger)
	prefsUC := usecase.NewPrefsUseCase(prefsRepo, referenceRepo, txManager, logger)
	subUC := usecase.NewSubscriptionUseCase(prefsRepo, txManager, logger)

	// ---- Facade + Telegram ----
	facade := application.NewBotFacade(fixtureUC, prefsUC, subUC)
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, rateLimiter, stateRepo, logger, cfg.Bot.Workers)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}
	if strings.ToLower(cfg.Bot.Mode) != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented, falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Notification workers ----
	var translator adapter.Translator
	if cfg.Translate.BaseURL != "" {
		translator = translate.NewClient(cfg.Translate, logger)
	}
	notifUC := usecase.NewNotifierUseCase(fixtureRepo, prefsRepo, botAdapter, translator, cfg.Notifier.ExcludeStatuses, logger)

	digestWorker := sched.NewDigestWorker(cfg.Notifier.DigestInterval, notifUC, logger)
	approachWorker := sched.NewApproachWorker(cfg.Notifier.ApproachInterval, notifUC, logger)
	playedWorker := sched.NewPlayedWorker(cfg.Notifier.PlayedInterval, notifUC, logger)
	go func() { _ = digestWorker.Run(ctx) }()
	go func() { _ = approachWorker.Run(ctx) }()
	go func() { _ = playedWorker.Run(ctx) }()

	// ---- Ops server (health + metrics) ----
	opsServer := web.NewServer(fmt.Sprintf(":%d", cfg.Ops.Port), pool, redisClient, logger)
	go func() {
		if err := opsServer.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("ops server stopped")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	botAdapter.StopPolling()
	cancel()
}
