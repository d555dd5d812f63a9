package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"duty-roster-backend/config"
	"duty-roster-backend/internal/database"
	"duty-roster-backend/internal/lock"
	"duty-roster-backend/internal/middleware"
	"duty-roster-backend/internal/routes"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat, "duty-roster-api")
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	locker, closeLocker, err := newLocker(cfg, logger)
	if err != nil {
		logger.Fatal("lock backend unavailable", zap.Error(err))
	}
	defer closeLocker()

	app := fiber.New(fiber.Config{
		AppName:      "duty-roster",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: strings.Join(cfg.CORSOrigins, ",")}))
	app.Use(middleware.RequestLogger(logger))

	routes.Setup(app, routes.Deps{
		DB:          db,
		Logger:      logger,
		Locker:      locker,
		LockTimeout: cfg.LockTimeout,
		JWTSecret:   cfg.JWTSecret,
	})

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

// newLocker picks Redis when enabled so several API instances share hierarchy
// locks. A single instance is fine with the in-process locker.
func newLocker(cfg *config.Config, logger *zap.Logger) (lock.Locker, func(), error) {
	if !cfg.Redis.Enabled {
		logger.Info("using in-process hierarchy locks")
		return lock.NewMemoryLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	logger.Info("using redis hierarchy locks", zap.String("addr", cfg.Redis.Addr))
	return lock.NewRedisLocker(client, "duty-roster:lock:", cfg.LockTTL, logger), func() { _ = client.Close() }, nil
}
