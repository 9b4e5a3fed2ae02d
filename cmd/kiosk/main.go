package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/example/wingkiosk/pkg/auth"
	"github.com/example/wingkiosk/pkg/config"
	"github.com/example/wingkiosk/pkg/ordering"
	"github.com/example/wingkiosk/pkg/repository"
	"github.com/example/wingkiosk/pkg/server"
	"github.com/example/wingkiosk/pkg/session"
)

func main() {
	// Load config
	cfg, err := config.Load("config/kiosk.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Setup logger
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	logger.Info("Starting kiosk service",
		zap.String("name", cfg.Server.Name),
		zap.Int("port", cfg.Server.Port))

	ctx := context.Background()

	// Connect to MongoDB
	mongo, err := repository.NewMongo(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongo.Close(ctx)

	if err := mongo.Ping(ctx); err != nil {
		logger.Fatal("MongoDB ping failed", zap.Error(err))
	}
	logger.Info("MongoDB connected successfully")

	// Connect to Redis for session storage
	sessions := session.NewRedisStore(&cfg.Redis)
	defer sessions.Close()

	if err := sessions.Ping(ctx); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	} else {
		logger.Info("Redis connected successfully")
	}

	gate := session.NewGate(sessions, cfg.Session.Window)

	orderRepo := mongo.Orders()
	catalogRepo := mongo.Catalog()

	reconciler := ordering.NewReconciler(catalogRepo, logger)
	srv := server.New(cfg, logger, server.Deps{
		Orders:     ordering.NewService(orderRepo, gate, logger),
		Lifecycle:  ordering.NewLifecycle(orderRepo, reconciler, logger),
		Reconciler: reconciler,
		Gate:       gate,
		Auth:       auth.NewService(mongo.Users(), logger),
		Catalog:    catalogRepo,
		OrderStore: orderRepo,
		Flavors:    mongo.Flavors(),
	})

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("Received shutdown signal")
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Service stopped")
}
