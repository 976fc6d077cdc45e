package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/config"
	"github.com/shajib07/storefront/fakestore/database"
	"github.com/shajib07/storefront/fakestore/repository"
	"github.com/shajib07/storefront/fakestore/routes"
	"github.com/shajib07/storefront/fakestore/services"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "fakestore-dev-secret"
		logger.Log.Warn("JWT_SECRET not set, using development secret")
	}

	var users repository.UserRepository
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			logger.Log.Fatal("Database connection failed", zap.Error(err))
		}
		users = repository.NewGormUserRepository(db)
	} else {
		users = repository.NewMemoryUserRepository()
		logger.Log.Info("DATABASE_URL not set, using in-memory users")
	}

	if err := repository.SeedDemoUser(context.Background(), users); err != nil {
		logger.Log.Fatal("Seeding demo user failed", zap.Error(err))
	}

	router := routes.NewRouter(users, services.NewTokenService(secret))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("Fakestore API is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Log.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Shutdown error", zap.Error(err))
	}
	logger.Log.Info("Server shutdown complete")
}
