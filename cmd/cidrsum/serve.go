package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cidrsum/internal/config"
	"cidrsum/internal/handler"
	"cidrsum/internal/repository"
	"cidrsum/internal/service"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the collapse form and API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address (env SERVER_PORT)")
	_ = viper.BindPFlag("SERVER_PORT", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting up server...", zap.String("addr", cfg.ServerPort))

	var cache service.Cache
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("Failed to parse Redis URL", zap.Error(err))
		}

		redisClient := redis.NewClient(opt)
		defer redisClient.Close()

		redisCache := repository.NewRedisCache(redisClient, cfg.CacheTTL, logger)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			// Requests still work without the cache; every lookup just misses.
			logger.Warn("Redis unreachable at startup", zap.Error(err))
		}
		cancel()

		cache = redisCache
	} else {
		logger.Info("REDIS_URL not set, result cache disabled")
	}

	aggregateService := service.NewAggregateService(cache, cfg, logger)

	app := fiber.New(fiber.Config{
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(handler.RequestLogger(logger))

	h := handler.NewHandler(aggregateService, logger)
	h.RegisterRoutes(app)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.Listen(cfg.ServerPort); err != nil {
			return fmt.Errorf("listening on %s: %w", cfg.ServerPort, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	return nil
}
