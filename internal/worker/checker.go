package worker

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
)

// StockChecker re-reads stock from the database and reports shortages
type StockChecker struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewStockChecker creates a new stock checker
func NewStockChecker(db *sqlx.DB, logger *logger.Logger) *StockChecker {
	return &StockChecker{
		db:     db,
		logger: logger,
	}
}

// Check loads the stock columns of a product and logs a warning when it is low.
// A missing product is not an error and yields nil.
func (c *StockChecker) Check(ctx context.Context, hash uuid.UUID) (*domain.Product, error) {
	query := `
		SELECT hash, nome, quantidade, estoque_min, lativo
		FROM products
		WHERE hash = $1
	`

	var product domain.Product
	err := c.db.GetContext(ctx, &product, query, hash)
	if errors.Is(err, sql.ErrNoRows) {
		c.logger.WithFields(map[string]interface{}{
			"hash": hash.String(),
		}).Info("Product not found, skipping stock check")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stock of product %s: %w", hash, err)
	}

	if product.IsLowStock() {
		c.logger.WithFields(map[string]interface{}{
			"hash":        hash.String(),
			"nome":        product.Name,
			"quantidade":  product.Quantity,
			"estoque_min": product.StockMinimum,
		}).Warn("Low stock detected")
	}

	return &product, nil
}
