package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apiHttp "github.com/nira-system/backend/internal/api/http"
	"github.com/nira-system/backend/internal/cache"
	"github.com/nira-system/backend/internal/config"
	"github.com/nira-system/backend/internal/db"
	"github.com/nira-system/backend/internal/queue/asynqserver"
	queueClient "github.com/nira-system/backend/internal/queue/client"
	"github.com/nira-system/backend/internal/repository"
	"github.com/nira-system/backend/internal/server"
	"github.com/nira-system/backend/internal/service"
	"github.com/nira-system/backend/internal/storage"
	"github.com/nira-system/backend/internal/worker"
	"github.com/nira-system/backend/pkg/auth"
	"github.com/nira-system/backend/pkg/email/smtp"
	"github.com/nira-system/backend/pkg/hash"
	"github.com/nira-system/backend/pkg/logger"
	"github.com/nira-system/backend/pkg/pdf"

	"go.uber.org/zap"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env, cfg.LogLevel)

	appLogger.Info("starting nira backend", zap.String("env", cfg.Env))

	// Init database
	dbMySQL, err := db.New(cfg.Database)
	if err != nil {
		appLogger.Error("mysql connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := dbMySQL.Close(); err != nil {
			appLogger.Error("error when closing", zap.Error(err))
		}
	}()
	appLogger.Info("mysql connection done")

	redisClient, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}

	hasher := hash.NewSHA256Hasher(cfg.Auth.PasswordSalt)

	tokenManager, err := auth.NewManager(cfg.Auth.JWT)
	if err != nil {
		appLogger.Error("auth manager creation err", zap.Error(err))
		return
	}

	fileStore, err := storage.NewLocalStore(cfg.Uploads)
	if err != nil {
		appLogger.Error("file store creation err", zap.Error(err))
		return
	}

	enqueuer := queueClient.NewEnqueuer(asynqserver.RedisOptions(cfg.Cache))
	defer func() {
		if err := enqueuer.Close(); err != nil {
			appLogger.Error("error when closing queue client", zap.Error(err))
		}
	}()

	// Services, Repos & API Handlers
	repos := repository.NewRepositories(dbMySQL)
	services := service.NewServices(service.Deps{
		Config:       cfg,
		Hasher:       hasher,
		TokenManager: tokenManager,
		Repos:        repos,
		Files:        fileStore,
		PDF:          pdf.NewGenerator(),
		Notifier:     enqueuer,
		Cache:        redisClient,
	})
	handlers := apiHttp.NewHandlers(services, tokenManager, cfg, fileStore)

	// Notification worker
	emailSender, err := smtp.NewSMTPSender(cfg.SMTP.From, cfg.SMTP.Pass, cfg.SMTP.Host, cfg.SMTP.Port)
	if err != nil && cfg.Email.Enabled {
		appLogger.Error("smtp sender creation failed", zap.Error(err))
		return
	}
	workers := worker.NewWorkers(worker.Deps{
		EmailProvider: emailSender,
		Config:        cfg,
	})
	taskServer, taskMux := asynqserver.New(cfg.Cache, workers)
	go func() {
		if err := taskServer.Run(taskMux); err != nil {
			appLogger.Error("task server stopped", zap.Error(err))
		}
	}()

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started")

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	taskServer.Shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
