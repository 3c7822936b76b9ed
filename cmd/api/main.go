package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/events"
	httpDelivery "github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/handler"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/cache"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/database"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	cacheRepo "github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/repository/cache"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/repository/postgres"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/usecase/product"

	_ "github.com/xnatnat/NewGo-Back-End-02-ProductAPI/docs"
)

// @title Product Catalog API
// @version 1.0
// @description Product catalog with batch price and stock adjustments, caching and product events.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @tag.name Products
// @tag.description Product management endpoints

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded, using environment only: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	logger.SetGlobalLogger(appLogger)
	appLogger.Info("Starting Product Catalog API...")

	appLogger.Info("Connecting to PostgreSQL...")
	db, err := database.WaitForDB(cfg, 10, 2*time.Second)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL successfully")

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(context.Background(), db); err != nil {
			appLogger.Fatal("Failed to run migrations", err)
		}
		appLogger.Info("Database migrations applied")
	}

	var productRepo domain.ProductRepository = postgres.NewProductRepository(db)

	if cfg.Cache.Enabled {
		appLogger.Info("Connecting to Redis...")
		redisClient, err := cache.WaitForRedis(cfg, 10, 2*time.Second)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
		productRepo = cacheRepo.NewProductRepository(productRepo, redisClient, cfg.Cache.ProductTTL, appLogger)
		appLogger.Info("Connected to Redis successfully")
	}

	var publisher product.EventPublisher
	if cfg.NATS.Enabled {
		appLogger.Info("Connecting to NATS...")
		natsPublisher, err := events.NewPublisher(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create NATS publisher", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	productService := product.NewService(productRepo, publisher, appLogger)
	productHandler := handler.NewProductHandler(productService, appLogger)

	router := httpDelivery.NewRouter(productHandler, cfg, appLogger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		appLogger.Infof("HTTP server listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server stopped gracefully")
}
