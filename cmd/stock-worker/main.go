package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/events"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/database"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/worker"
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
	appLogger.Info("Starting stock worker...")

	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()

	checker := worker.NewStockChecker(db, appLogger)
	monitor := worker.NewStockMonitor(checker, cfg.Worker.DebounceWindow, appLogger)

	nc, err := nats.Connect(cfg.NATS.URL, nats.Name("stock-worker"), nats.MaxReconnects(-1))
	if err != nil {
		appLogger.Fatal("Failed to connect to NATS", err)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		appLogger.Fatal("Failed to create JetStream context", err)
	}

	streams := events.NewStreamConfig(js, appLogger)
	if err := streams.EnsureStream(); err != nil {
		appLogger.Fatal("Failed to ensure stream", err)
	}
	if err := streams.EnsureConsumer(); err != nil {
		appLogger.Fatal("Failed to ensure consumer", err)
	}

	sub, err := js.PullSubscribe(domain.ProductEventsSubject, events.ConsumerName,
		nats.Bind(events.StreamName, events.ConsumerName), nats.ManualAck())
	if err != nil {
		appLogger.Fatal("Failed to subscribe to JetStream consumer", err)
	}

	appLogger.WithFields(map[string]interface{}{
		"stream":          events.StreamName,
		"consumer":        events.ConsumerName,
		"debounce_window": cfg.Worker.DebounceWindow.String(),
	}).Info("Subscribed to JetStream consumer")

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		worker.Consume(ctx, sub, monitor, appLogger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Received shutdown signal")
	stop()
	<-done

	if err := sub.Unsubscribe(); err != nil {
		appLogger.Warnf("Failed to unsubscribe from JetStream: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := monitor.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Error during shutdown", err)
	}

	appLogger.Info("Stock worker stopped")
}
