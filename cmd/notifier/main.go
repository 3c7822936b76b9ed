package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/events"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment only: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	appLogger.Info("Starting notifier service...")

	consumer, err := events.NewConsumer(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create NATS consumer", err)
	}
	defer consumer.Close()

	if err := consumer.Subscribe(domain.ProductEventsSubject, events.LoggingHandler(appLogger)); err != nil {
		appLogger.Fatal("Failed to subscribe to product events", err)
	}

	appLogger.Info("Notifier service listening for product events")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down notifier service...")
}
