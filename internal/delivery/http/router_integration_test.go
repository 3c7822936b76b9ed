//go:build integration

package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/config"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/events"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/delivery/http/handler"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/cache"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/database"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	cacheRepo "github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/repository/cache"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/repository/postgres"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/usecase/product"
)

// setupIntegrationServer wires the real stack; needs PostgreSQL, Redis and NATS
func setupIntegrationServer(t *testing.T) http.Handler {
	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.New(cfg.Env)

	db, err := database.WaitForDB(cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(context.Background(), db))

	redisClient, err := cache.WaitForRedis(cfg, 5, 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { redisClient.Close() })

	publisher, err := events.NewPublisher(cfg, log)
	require.NoError(t, err)
	t.Cleanup(publisher.Close)

	repo := cacheRepo.NewProductRepository(postgres.NewProductRepository(db), redisClient, cfg.Cache.ProductTTL, log)
	service := product.NewService(repo, publisher, log)

	return NewRouter(handler.NewProductHandler(service, log), cfg, log).Setup()
}

func TestIntegration_ProductCreateActivateAndGet(t *testing.T) {
	server := setupIntegrationServer(t)
	suffix := uuid.NewString()[:8]

	body := fmt.Sprintf(`{"nome":"Lamp %s","descricao":"Desk lamp","ean13":"%s","preco":99.99,"quantidade":3,"estoqueMin":1}`,
		suffix, suffix)
	code, resp := do(t, server, http.MethodPost, "/api/v1/products", body)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, resp["success"].(bool))

	hash := resp["data"].(map[string]interface{})["hash"].(string)
	path := "/api/v1/products/" + hash

	code, _ = do(t, server, http.MethodPut, path+"/status", `{"lativo":true}`)
	require.Equal(t, http.StatusOK, code)

	code, resp = do(t, server, http.MethodGet, path+"/active", "")
	require.Equal(t, http.StatusOK, code)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 99.99, data["preco"])
	assert.Equal(t, true, data["lativo"])

	code, _ = do(t, server, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, code)
}

func TestIntegration_HealthCheck(t *testing.T) {
	server := setupIntegrationServer(t)

	code, resp := do(t, server, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", resp["status"])
}
