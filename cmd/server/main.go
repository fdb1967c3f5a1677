package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/data-question-api/internal/completion"
	"github.com/BerylCAtieno/data-question-api/internal/config"
	"github.com/BerylCAtieno/data-question-api/internal/handlers"
	"github.com/BerylCAtieno/data-question-api/internal/router"
	"github.com/BerylCAtieno/data-question-api/internal/services"
	"github.com/BerylCAtieno/data-question-api/internal/storage"
	"github.com/BerylCAtieno/data-question-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	scratch, err := storage.NewScratch(cfg.ScratchDir)
	if err != nil {
		logger.Fatal("Failed to initialize scratch storage", "error", err)
	}

	completer := completion.NewOpenAICompleter(completion.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.CompletionTimeout,
		Logger:  logger,
	})

	answerService := services.NewService(completer, scratch, logger,
		services.WithExtractLimit(cfg.MaxExtractSize))

	// Setup HTTP router
	handler := router.NewRouter(answerService, logger, handlers.Options{
		MaxUploadSize: cfg.MaxUploadSize,
		TypedStatus:   cfg.ErrorStatusMode == config.ErrorStatusTyped,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "completion_url", cfg.OpenAIBaseURL, "model", completion.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
