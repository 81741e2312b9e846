package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/learning-galaxy/internal/config"
	"github.com/aliskhannn/learning-galaxy/internal/delivery/httpapi"
	"github.com/aliskhannn/learning-galaxy/internal/delivery/telegram"
	"github.com/aliskhannn/learning-galaxy/internal/infra/cache"
	"github.com/aliskhannn/learning-galaxy/internal/infra/postgres"
	"github.com/aliskhannn/learning-galaxy/internal/infra/sheet"
	"github.com/aliskhannn/learning-galaxy/internal/infra/sqlite"
	"github.com/aliskhannn/learning-galaxy/internal/logger"
	"github.com/aliskhannn/learning-galaxy/internal/repository"
	"github.com/aliskhannn/learning-galaxy/internal/service"
	"github.com/aliskhannn/learning-galaxy/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal("application stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			lg.Warn("failed to close storage", zap.Error(err))
		}
	}()
	lg.Info("storage ready", zap.String("backend", cfg.Storage.Backend))

	// Initialize repositories and services.
	var textCache service.TextCache
	if cfg.Sheets.CacheText {
		textCache = store
	}
	bank := service.NewQuestionBank(sheet.NewClient(cfg.Sheets.Timeout), textCache, cfg.Sheets.CacheTTL, lg)

	app := service.NewAppState(
		repository.NewSettingsRepository(store),
		repository.NewLeaderboardRepository(store),
		lg,
	)

	builder := service.NewSessionBuilder()
	registry := service.NewSessionRegistry(builder, bank, app.OnGameEnd, cfg.Sessions.IdleTimeout, lg)

	g, ctx := errgroup.WithContext(ctx)

	if cfg.Sheets.RefreshSchedule != "" {
		g.Go(func() error {
			return bank.Start(ctx, cfg.Sheets.RefreshSchedule)
		})
	}

	g.Go(func() error {
		registry.Run(ctx, cfg.Sessions.EvictInterval)
		return nil
	})

	if cfg.HTTP.Addr != "" {
		if cfg.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		router := httpapi.NewRouter(httpapi.NewHandler(app, bank, builder, lg), lg)
		server := httpapi.NewServer(cfg.HTTP.Addr, router, cfg.HTTP.ShutdownTimeout, lg)

		g.Go(func() error {
			return server.Run(ctx)
		})
	}

	if cfg.TelegramAPIToken != "" {
		bot, err := newBot(cfg, lg)
		if err != nil {
			return err
		}

		handler := telegram.NewHandler(bot, lg, app, registry, storage.NewMessageTracker())

		g.Go(func() error {
			if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("telegram: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// openStore connects the configured key-value backend.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return storage.NewMemoryStore(), noop, nil

	case config.StorageRedis:
		s, err := cache.NewRedisStore(ctx, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.StorageSQLite:
		s, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case config.StoragePostgres:
		dsn, err := cfg.DB.DSN()
		if err != nil {
			return nil, nil, err
		}
		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, postgres.NewTransactor(pool)); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return postgres.NewStore(pool), closerFunc(pool.Close), nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func closerFunc(f func()) func() error {
	return func() error {
		f()
		return nil
	}
}

func newBot(cfg *config.Config, lg *zap.Logger) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	bot.Debug = cfg.Env == "local"

	if err := tgbotapi.SetLogger(zap.NewStdLog(lg.Named("tgbotapi"))); err != nil {
		lg.Warn("failed to set telegram logger", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Start the bot",
		},
		{
			Command:     "games",
			Description: "List the games",
		},
		{
			Command:     "play",
			Description: "Start a game (usage: /play space-math easy)",
		},
		{
			Command:     "leaderboard",
			Description: "Best scores",
		},
		{
			Command:     "settings",
			Description: "Settings",
		},
		{
			Command:     "help",
			Description: "Help",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	return bot, nil
}
