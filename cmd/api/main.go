package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/recipeshare/backend/config"
	"github.com/recipeshare/backend/internal/api"
	"github.com/recipeshare/backend/internal/database"
	"github.com/recipeshare/backend/internal/router"
	"github.com/recipeshare/backend/internal/server"
	"github.com/recipeshare/backend/internal/service"
)

func main() {
	if config.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to redis")
	}

	ctx := context.Background()
	s3cfg, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure object storage")
	}
	if err := s3cfg.SetupBucketPolicies(ctx); err != nil {
		logrus.WithError(err).Warn("failed to apply bucket policies")
	}

	sessions := service.NewRedisSessionStore(redisClient)
	authService := service.NewAuthService(db, cfg.JWTSecret, sessions)
	recipeService := service.NewRecipeService(db)
	favoriteService := service.NewFavoriteService(db)
	profileService := service.NewProfileService(db)
	storageService := service.NewStorageService(s3cfg)

	handlers := router.Handlers{
		Auth:     api.NewAuthHandler(authService),
		Recipe:   api.NewRecipeHandler(recipeService, favoriteService, storageService, authService),
		Favorite: api.NewFavoriteHandler(favoriteService, authService),
		Profile:  api.NewProfileHandler(profileService, authService, storageService),
	}

	var origins []string
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}

	engine := router.Setup(handlers, origins)
	srv := server.New(engine, cfg.ServerHost+":"+cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		logrus.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server shutdown error")
	}
	logrus.Info("server stopped")
}
