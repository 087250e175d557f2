package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lunch-roulette/internal/config"
	"lunch-roulette/internal/handlers"
	"lunch-roulette/internal/kinesis"
	"lunch-roulette/internal/places"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	kinesisService "github.com/aws/aws-sdk-go-v2/service/kinesis"
	"github.com/gorilla/mux"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("Failed to load .env file", "error", err)
		os.Exit(1)
	}

	cfg := config.LoadProxyConfig()

	// Setup structured JSON logging
	config.SetupLogging(os.Stdout, cfg.LogLevel)

	// Pick the upstream places provider
	var provider places.Provider
	switch cfg.Provider {
	case "google":
		provider = places.NewGoogleProvider(cfg.GoogleAPIKey, "ko")
		slog.Info("Using Google places provider")
	default:
		if cfg.KakaoAPIKey == "" {
			slog.Warn("KAKAO_REST_API_KEY not set, upstream searches will be rejected")
		}
		provider = places.NewKakaoClient(cfg.KakaoBaseURL, cfg.KakaoAPIKey, cfg.UpstreamTimeout)
		slog.Info("Using Kakao places provider", "base_url", cfg.KakaoBaseURL)
	}

	searchService := places.NewSearchService(provider)

	// Stream search events if a stream name is provided
	if cfg.EventStream != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			slog.Error("Failed to load AWS config", "error", err)
			os.Exit(1)
		}
		kinesisClient := kinesisService.NewFromConfig(awsCfg)
		searchService.SetKinesisStreamer(kinesis.NewStreamer(kinesisClient, cfg.EventStream))
		slog.Info("Streaming search events", "stream", cfg.EventStream)
	}

	httpHandler := handlers.NewHTTPHandler(searchService)

	// Setup routes
	router := mux.NewRouter()

	// Use path prefix if running behind load balancer
	if cfg.PathPrefix != "" {
		httpHandler.RegisterRoutes(router.PathPrefix(cfg.PathPrefix).Subrouter())
	} else {
		httpHandler.RegisterRoutes(router)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.CORSMiddleware(handlers.RequestIDMiddleware(router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Search proxy starting", "port", cfg.Port, "path_prefix", cfg.PathPrefix)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Search proxy failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down search proxy")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
