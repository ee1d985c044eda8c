package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/market-comb/app/api"
	"github.com/lysyi3m/market-comb/app/cfg"
	"github.com/lysyi3m/market-comb/app/database"
	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
	"github.com/lysyi3m/market-comb/app/watch"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	slog.Info("Starting Market Comb server", "version", appCfg.Version)

	// Database connection and schema
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	inventoryRepo := database.NewInventoryRepository(db)

	// Scraped products store with file shadow
	var persistence listing.Persistence
	if appCfg.ProductsFile != "" {
		persistence = listing.NewFilePersistence(appCfg.ProductsFile)
	} else {
		slog.Warn("No products file configured, scraped products are in-memory only")
		persistence = listing.NewMemoryPersistence()
	}
	store := listing.NewStore(persistence)
	slog.Info("Products store loaded", "entries", store.Len())

	// Marketplace client and normalizer
	client := marketplace.NewHTTPClient(appCfg.MarketplaceURL, appCfg.UserAgent,
		time.Duration(appCfg.Timeout)*time.Second)
	normalizer := listing.NewNormalizer(client)

	// Watch configurations and monitors
	configCache := watch.NewConfigCache(appCfg.WatchesDir)
	if err := configCache.Run(); err != nil {
		log.Fatalf("Failed to load watch configurations: %v", err)
	}
	slog.Info("Watch configurations loaded", "count", configCache.GetConfigCount())

	hub := watch.NewHub(client, normalizer, store, appCfg.RetentionWindow())
	for name, watchConfig := range configCache.GetEnabledConfigs() {
		if err := hub.Start(watchConfig); err != nil {
			slog.Warn("Failed to start watch", "watch", name, "error", err)
		}
	}
	defer hub.StopAll()

	// HTTP server
	handler := api.NewHandler(inventoryRepo, client, normalizer, store, hub, configCache)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Monitors are stopped via defer
	slog.Info("Shutdown complete")
}
