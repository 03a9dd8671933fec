package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/davidmnz/textclassify/internal/adapter/http/router"
	"github.com/davidmnz/textclassify/internal/adapter/model"
	"github.com/davidmnz/textclassify/internal/infrastructure/cache"
	"github.com/davidmnz/textclassify/internal/infrastructure/config"
	"github.com/davidmnz/textclassify/internal/infrastructure/logger"
	"github.com/davidmnz/textclassify/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load the classifier model before accepting any traffic. A load
	// failure is fatal: the process must not become ready to serve.
	classifier := model.NewTextClassifier(cfg.Model.Path, log)
	log.Info("Loading classification model", zap.String("path", cfg.Model.Path))
	if err := classifier.Load(); err != nil {
		log.Error("Failed to load classification model", zap.Error(err))
		return fmt.Errorf("failed to load classification model: %w", err)
	}
	log.Info("Classification model ready", zap.Int("features", classifier.Info().Features))

	// Initialize Redis prediction cache (optional, continue without it)
	var redisClient *redis.Client
	var predictionCache usecase.PredictionCache
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
			predictionCache = cache.NewPredictionCache(redisClient, time.Hour)
		}
	}

	// Initialize usecase and router
	predictionUC := usecase.NewPredictionUsecase(classifier, predictionCache)
	r := router.Setup(predictionUC, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
