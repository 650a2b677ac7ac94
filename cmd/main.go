package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/RyoWakabayashi/pm-study/internal/bot"
	"github.com/RyoWakabayashi/pm-study/internal/client"
	"github.com/RyoWakabayashi/pm-study/internal/config"
	"github.com/RyoWakabayashi/pm-study/internal/repository"
	"github.com/RyoWakabayashi/pm-study/internal/service"
	"github.com/RyoWakabayashi/pm-study/internal/storage"
	"github.com/RyoWakabayashi/pm-study/internal/storage/cache"
	"github.com/RyoWakabayashi/pm-study/internal/storage/db"
	"github.com/RyoWakabayashi/pm-study/internal/storage/redisstore"

	"go.uber.org/zap"
)

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger
}

// initStorage returns the progress backend chosen by cfg.Storage.Driver and a
// func releasing its connection.
func initStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Backend, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		conn, err := db.InitDB(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed init db: %w", err)
		}

		repos := repository.NewRepository(conn)
		if err := repos.Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}

		logger.Info("using postgres progress storage", zap.String("dsn", db.Redacted(cfg.DB.Conn)))
		return limited(repos.KeyValueR, cfg.Storage.MaxBytes), func() { conn.Close() }, nil

	case config.DriverRedis:
		rdb, err := redisstore.InitClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}

		logger.Info("using redis progress storage", zap.String("addr", cfg.Redis.Addr))
		return limited(redisstore.NewStore(rdb, cfg.Redis.Prefix), cfg.Storage.MaxBytes), func() { rdb.Close() }, nil

	default:
		logger.Warn("using in-memory progress storage, progress is lost on restart")
		return cache.NewCache(cfg.Storage.MaxBytes), func() {}, nil
	}
}

func limited(b storage.Backend, maxBytes int) storage.Backend {
	if maxBytes <= 0 {
		return b
	}
	return storage.NewLimited(b, maxBytes)
}

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatal("failed load config " + err.Error())
		return
	}

	logger := setupLogger(cfg.Env)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := initStorage(ctx, *cfg, logger)
	if err != nil {
		logger.Fatal("failed init storage", zap.Error(err))
	}
	defer closeStore()

	source, err := client.InitSource(cfg.ExamData)
	if err != nil {
		logger.Fatal("failed init exam source", zap.Error(err))
	}

	services := service.InitServices(source, store, *cfg, logger)

	handler, err := bot.NewTelegramAPI(*cfg, services, logger)
	if err != nil {
		logger.Fatal("failed init telegram bot", zap.Error(err))
	}

	handler.Start(ctx, cfg.App.AutosaveInterval)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := handler.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to save progress on shutdown", zap.Error(err))
		return
	}
	logger.Info("shutdown complete")
}
