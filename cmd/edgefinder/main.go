package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mpetrov/edgefinder/internal/engine"
	"github.com/mpetrov/edgefinder/internal/oddsapi"
	"github.com/mpetrov/edgefinder/internal/pkg/config"
	"github.com/mpetrov/edgefinder/internal/pkg/logging"
	"github.com/mpetrov/edgefinder/internal/pkg/performance"
)

const defaultConfigPath = "configs/production.yaml"

func main() {
	fmt.Println("Starting EdgeFinder dashboard service...")

	// .env is optional; real deployments inject env vars directly.
	_ = godotenv.Load()

	var configPath string

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}

	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file (can be set via CONFIG_PATH env var)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if _, err := logging.SetupLogger(&cfg.Logging, "edgefinder"); err != nil {
		log.Printf("Warning: failed to setup logging: %v, continuing with default logger", err)
	} else {
		slog.Info("Logging initialized", "service", "edgefinder")
	}

	var provider engine.GameFeedProvider
	if cfg.OddsAPI.UseSample {
		slog.Info("Using sample feed provider, no HTTP calls will be made")
		provider = oddsapi.NewSampleProvider()
	} else {
		slog.Info("Using The Odds API feed",
			"base_url", cfg.OddsAPI.BaseURL,
			"bookmaker", cfg.OddsAPI.Bookmaker,
			"sports", len(cfg.OddsAPI.Sports))
		provider = oddsapi.NewClient(cfg.OddsAPI, cfg.Engine.VigFactor)
	}

	eng := engine.New(cfg.Engine, cfg.OddsAPI.WindowDays, provider)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Received shutdown signal, stopping service...")
		cancel()
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("pong\n"))
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(performance.GetTracker().GetMetrics()); err != nil {
			http.Error(w, fmt.Sprintf("failed to encode metrics: %v", err), http.StatusInternalServerError)
		}
	})
	eng.RegisterHTTP(mux)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeoutDuration(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	slog.Info("HTTP server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("HTTP server error", "error", err)
		log.Fatalf("edgefinder: http server error: %v", err)
	}

	slog.Info("EdgeFinder dashboard service stopped")
}
