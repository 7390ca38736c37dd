package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tubelens/youtube-insights-go/internal/comments"
	"github.com/tubelens/youtube-insights-go/internal/config"
	"github.com/tubelens/youtube-insights-go/internal/handler"
	"github.com/tubelens/youtube-insights-go/internal/middleware"
	"github.com/tubelens/youtube-insights-go/internal/service"
	"github.com/tubelens/youtube-insights-go/internal/ytapi"
	"github.com/tubelens/youtube-insights-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	apiClient, err := ytapi.NewHTTPClient(cfg.YouTube.APIKey, ytapi.WithBaseURL(cfg.YouTube.BaseURL))
	if err != nil {
		logger.Log.Fatal("failed to create YouTube API client", zap.Error(err))
	}

	fetcher := comments.NewFetcher(apiClient,
		comments.WithPageSize(cfg.YouTube.PageSize),
		comments.WithPageDelay(cfg.YouTube.PageDelay),
	)
	extractor := service.NewExtractor(apiClient, fetcher, logger.Log)

	if len(cfg.Auth.APIKeys) == 0 {
		logger.Log.Warn("no client API keys configured, /api/v1 endpoints will reject all requests")
	}

	router := handler.NewRouter(handler.RouterDeps{
		Channel:  handler.NewChannelHandler(apiClient, logger.Log),
		Video:    handler.NewVideoHandler(apiClient, logger.Log),
		Comments: handler.NewCommentsHandler(extractor, logger.Log),
		Auth:     middleware.NewAPIKeyAuth(cfg.Auth.APIKeys, logger.Log),
		Logger:   logger.Log,
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server starting", zap.Int("port", cfg.Server.Port))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Log.Fatal("server error", zap.Error(err))
	case sig := <-shutdown:
		logger.Log.Info("shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Log.Error("failed to close server", zap.Error(err))
			}
			os.Exit(1)
		}

		logger.Log.Info("server stopped gracefully")
	}
}
