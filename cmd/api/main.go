package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fabiobufalari/communication-service/internal/auth"
	"github.com/fabiobufalari/communication-service/internal/config"
	"github.com/fabiobufalari/communication-service/internal/handler"
	"github.com/fabiobufalari/communication-service/internal/infra/postgresql"
	"github.com/fabiobufalari/communication-service/internal/infra/postgresql/migrations"
	infraredis "github.com/fabiobufalari/communication-service/internal/infra/redis"
	"github.com/fabiobufalari/communication-service/internal/mail"
	"github.com/fabiobufalari/communication-service/internal/observability"
	"github.com/fabiobufalari/communication-service/internal/provider"
	"github.com/fabiobufalari/communication-service/internal/repository"
	"github.com/fabiobufalari/communication-service/internal/service"
	"github.com/fabiobufalari/communication-service/internal/transport"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal("failed to initialize logger", zap.Error(err))
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	cache, err := infraredis.NewNotificationCache(rdb, cfg.CacheTTL())
	if err != nil {
		logger.Fatal("notification cache init failed", zap.Error(err))
	}

	mailTransport, err := mail.NewPostmarkTransport(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	if err != nil {
		logger.Fatal("postmark transport init failed", zap.Error(err))
	}

	emailSender, err := provider.NewEmailSender(mailTransport, cfg.MailSenderAddress)
	if err != nil {
		logger.Fatal("email sender init failed", zap.Error(err))
	}
	registry := provider.NewRegistry(emailSender, provider.NewSMSSender(), provider.NewInAppSender())

	repo := repository.NewGormNotificationRepo(db)

	notificationService, err := service.NewNotificationService(repo, registry, cache, cfg.SendTimeout(), logger)
	if err != nil {
		logger.Fatal("notification service init failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	notificationService.SetMetrics(metrics)

	tokens, err := auth.NewTokenService(cfg.JWTSigningSecret)
	if err != nil {
		logger.Fatal("token service init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(transport.RequestID())
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	if err := handler.RegisterNotificationRoutes(app, notificationService, tokens); err != nil {
		logger.Fatal("route registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, groupCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("communication-service api started", zap.Int("port", cfg.APIPort))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutdown signal received")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			return fmt.Errorf("api shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("api terminated", zap.Error(err))
	}

	logger.Info("communication-service api stopped")
}
