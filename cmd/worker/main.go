package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"menusync/internal/config"
	"menusync/internal/logger"
	"menusync/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if cfg.KafkaBrokers == "" {
		log.Fatal("KAFKA_BROKERS must be set for the worker")
	}

	// Initialize logger
	logg := logger.New(cfg.LogLevel)

	// Initialize worker
	w := worker.New(cfg, logg)

	// Start worker
	logg.Info("starting worker")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down worker")
	w.Stop()
}
