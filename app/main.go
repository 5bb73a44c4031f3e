package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/api"
	"github.com/nzhazard/hazardwatch/app/cfg"
	"github.com/nzhazard/hazardwatch/app/feed"
	"github.com/nzhazard/hazardwatch/app/geonet"
	"github.com/nzhazard/hazardwatch/app/tasks"
	"github.com/nzhazard/hazardwatch/app/weather"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting HazardWatch server", "version", appCfg.Version)

	registry := feed.NewRegistry()
	if err := registry.LoadOverrides(appCfg.SourcesDir); err != nil {
		slog.Error("Failed to load source overrides", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}

	httpClient := &http.Client{Timeout: 15 * time.Second}
	clock := clockwork.NewRealClock()

	fetcher := feed.NewFetcher(httpClient, feed.DefaultProxies,
		time.Duration(appCfg.ProxyTimeout)*time.Second, appCfg.UserAgent)
	aggregator := feed.NewAggregator(registry, fetcher)
	geonetClient := geonet.NewClient(geonet.DefaultBaseURL, httpClient, appCfg.UserAgent)
	weatherClient := weather.NewClient(weather.DefaultBaseURL, httpClient, appCfg.UserAgent)

	snapshot := tasks.NewSnapshot()
	tracker := tasks.NewRecencyTracker()

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "tick", appCfg.SchedulerTick)
	scheduler := tasks.NewScheduler(aggregator, geonetClient, weatherClient, snapshot, tracker, clock)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(snapshot, tracker, scheduler, httpClient, clock, appCfg.Version)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
