package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// ProductRepository decorates a domain.ProductRepository with a Redis
// cache-aside layer for single product lookups. Writes invalidate the cached
// entry before returning. List queries always go to the inner repository.
type ProductRepository struct {
	domain.ProductRepository

	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewProductRepository wraps inner with a Redis cache
func NewProductRepository(inner domain.ProductRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *ProductRepository {
	return &ProductRepository{
		ProductRepository: inner,
		client:            client,
		ttl:               ttl,
		logger:            log,
	}
}

func productKey(hash uuid.UUID) string {
	return fmt.Sprintf("product:%s", hash.String())
}

// FindByHash serves from cache when possible and fills it on a miss
func (r *ProductRepository) FindByHash(ctx context.Context, hash uuid.UUID) (*domain.Product, error) {
	key := productKey(hash)

	val, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product domain.Product
		if jsonErr := unmarshalProduct(val, &product); jsonErr == nil {
			return &product, nil
		}
		r.logger.Warnf("Discarding unreadable cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		r.logger.Warnf("Cache read failed for %s: %v", key, err)
	}

	product, err := r.ProductRepository.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	data, err := marshalProduct(product)
	if err != nil {
		r.logger.Warnf("Failed to encode product %s for cache: %v", hash, err)
		return product, nil
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		r.logger.Warnf("Cache write failed for %s: %v", key, err)
	}

	return product, nil
}

// Update persists through the inner repository and drops the cached entry
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := r.ProductRepository.Update(ctx, product); err != nil {
		return err
	}
	r.invalidate(ctx, product.Hash)
	return nil
}

// UpdateStatus persists through the inner repository and drops the cached entry
func (r *ProductRepository) UpdateStatus(ctx context.Context, hash uuid.UUID, active bool) (bool, error) {
	changed, err := r.ProductRepository.UpdateStatus(ctx, hash, active)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, hash)
	return changed, nil
}

// Delete removes through the inner repository and drops the cached entry
func (r *ProductRepository) Delete(ctx context.Context, hash uuid.UUID) (bool, error) {
	deleted, err := r.ProductRepository.Delete(ctx, hash)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, hash)
	return deleted, nil
}

func (r *ProductRepository) invalidate(ctx context.Context, hash uuid.UUID) {
	if err := r.client.Del(ctx, productKey(hash)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		r.logger.Warnf("Failed to invalidate cache for product %s: %v", hash, err)
	}
}

// cachedProduct carries the internal id, which the API representation omits
type cachedProduct struct {
	ID int64 `json:"id"`
	*domain.Product
}

func marshalProduct(p *domain.Product) ([]byte, error) {
	return json.Marshal(cachedProduct{ID: p.ID, Product: p})
}

func unmarshalProduct(data []byte, p *domain.Product) error {
	wrapper := cachedProduct{Product: p}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}
	p.ID = wrapper.ID
	return nil
}
