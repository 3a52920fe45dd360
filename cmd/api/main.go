package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menusync/internal/api"
	"menusync/internal/cache"
	"menusync/internal/config"
	"menusync/internal/events"
	"menusync/internal/fetcher"
	"menusync/internal/logger"
	"menusync/internal/menu"
	"menusync/internal/normalizer"
	"menusync/internal/registry"
	"menusync/internal/signer"
	"menusync/internal/syncer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logg := logger.New(cfg.LogLevel)

	// Provider registry and the sync pipeline
	providers := registry.New(config.Providers())
	productCache := cache.New(providers)
	adapters := normalizer.NewRegistry(providers)
	catalogFetcher := fetcher.New(signer.New())

	var publisher events.Publisher = events.Noop{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	orchestrator := syncer.New(providers, catalogFetcher, adapters, productCache, publisher, logg)
	menuService := menu.NewService(productCache, logg, cfg.MaxPerCategory, cfg.MaxFeatured)

	// Regenerate the menu after every successful provider sync
	orchestrator.OnSync(func(providerID string) {
		if _, err := menuService.Generate(); err != nil {
			logg.WithError(err).Error("menu regeneration after sync failed")
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orchestrator.StartAll(ctx)

	// Initialize API server
	server := api.New(cfg, logg, providers, productCache, menuService, orchestrator)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logg.WithError(err).Fatal("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	orchestrator.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logg.WithError(err).Error("server shutdown failed")
	}
}
