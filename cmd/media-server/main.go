package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"socialhub/internal/config"
	"socialhub/internal/dbmongo"
	"socialhub/internal/logger"
	"socialhub/internal/media"
)

func main() {
	cfg := config.LoadConfig()
	if err := logger.Initialize(cfg.Logging.Level, cfg.Logging.OutputPath); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	mongoClient, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Close(context.Background())

	server := &http.Server{
		Addr:        ":" + cfg.Server.MediaPort,
		Handler:     media.NewHTTPServer(dbmongo.NewMediaStorage(mongoClient)),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info("Media server starting",
			zap.String("addr", server.Addr),
			zap.String("base_url", cfg.Server.MediaBaseURL),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Media server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("Media server forced to shutdown", zap.Error(err))
	}
}
