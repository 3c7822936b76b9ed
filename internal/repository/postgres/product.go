package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index conflict
const uniqueViolation = pq.ErrorCode("23505")

const productColumns = `id, hash, nome, descricao, ean13, preco, quantidade, estoque_min, dtcreate, dtupdate, lativo`

// ProductRepository implements domain.ProductRepository for PostgreSQL
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new PostgreSQL product repository
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Save inserts a product and returns the hash generated by the database
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (uuid.UUID, error) {
	query := `
		INSERT INTO products (nome, descricao, ean13, preco, quantidade, estoque_min, dtcreate, dtupdate, lativo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING hash
	`

	var hash uuid.UUID
	err := r.db.QueryRowxContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Ean13,
		product.Price,
		product.Quantity,
		product.StockMinimum,
		product.CreatedAt,
		product.UpdatedAt,
		product.Active,
	).Scan(&hash)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return uuid.Nil, fmt.Errorf("insert of product %q hit %s: %w", product.Name, pqErr.Constraint, domain.ErrConflict)
		}
		return uuid.Nil, err
	}

	return hash, nil
}

// ExistsByNameOrEan13 reports whether any product uses the name or the ean13
func (r *ProductRepository) ExistsByNameOrEan13(ctx context.Context, name, ean13 string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM products WHERE nome = $1 OR ean13 = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name, ean13); err != nil {
		return false, err
	}

	return exists, nil
}

// FindByHash retrieves a product by hash
func (r *ProductRepository) FindByHash(ctx context.Context, hash uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE hash = $1`

	var product domain.Product
	err := r.db.GetContext(ctx, &product, query, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	return &product, nil
}

// FindAll retrieves every product
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.selectProducts(ctx, query)
}

// FindAllByStatus retrieves products by active flag
func (r *ProductRepository) FindAllByStatus(ctx context.Context, active bool) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lativo = $1 ORDER BY id`
	return r.selectProducts(ctx, query, active)
}

// FindAllLowStock retrieves active products whose quantity is below the minimum
func (r *ProductRepository) FindAllLowStock(ctx context.Context) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lativo = TRUE AND quantidade < estoque_min ORDER BY id`
	return r.selectProducts(ctx, query)
}

func (r *ProductRepository) selectProducts(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	products := []*domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateStatus sets the active flag and touches dtupdate
func (r *ProductRepository) UpdateStatus(ctx context.Context, hash uuid.UUID, active bool) (bool, error) {
	query := `UPDATE products SET lativo = $1, dtupdate = NOW() WHERE hash = $2`

	result, err := r.db.ExecContext(ctx, query, active, hash)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

// Update persists the mutable fields of a product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET descricao = $1, preco = $2, quantidade = $3, estoque_min = $4, dtupdate = $5
		WHERE hash = $6
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Description,
		product.Price,
		product.Quantity,
		product.StockMinimum,
		product.UpdatedAt,
		product.Hash,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("update of product %s affected no rows: %w", product.Hash, domain.ErrNotFound)
	}

	return nil
}

// Delete hard-deletes a product
func (r *ProductRepository) Delete(ctx context.Context, hash uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE hash = $1`, hash)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
