package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog product
type Product struct {
	ID           int64     `json:"-" db:"id"`
	Hash         uuid.UUID `json:"hash" db:"hash"`
	Name         string    `json:"nome" db:"nome"`
	Description  string    `json:"descricao" db:"descricao"`
	Ean13        string    `json:"ean13" db:"ean13"`
	Price        float64   `json:"preco" db:"preco"`
	Quantity     float64   `json:"quantidade" db:"quantidade"`
	StockMinimum float64   `json:"estoqueMin" db:"estoque_min"`
	CreatedAt    time.Time `json:"dtCreate" db:"dtcreate"`
	UpdatedAt    time.Time `json:"dtUpdate" db:"dtupdate"`
	Active       bool      `json:"lativo" db:"lativo"`
}

// IsLowStock reports whether an active product is below its minimum stock
func (p *Product) IsLowStock() bool {
	return p.Active && p.Quantity < p.StockMinimum
}

// Batch operation codes for price adjustment
const (
	OperationFixed           = "fixo"
	OperationIncreaseValue   = "aumentar-valor"
	OperationDecreaseValue   = "diminuir-valor"
	OperationIncreasePercent = "aumentar-percentualmente"
	OperationDecreasePercent = "diminuir-percentualmente"
)

// BatchAdjustment is one item of a batch price or stock request
type BatchAdjustment struct {
	Hash      string  `json:"hash"`
	Operation string  `json:"operacao,omitempty"`
	Value     float64 `json:"valor"`
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	// Save inserts a new product and returns its generated hash
	Save(ctx context.Context, product *Product) (uuid.UUID, error)

	// ExistsByNameOrEan13 reports whether any product already uses the name or the ean13
	ExistsByNameOrEan13(ctx context.Context, name, ean13 string) (bool, error)

	// FindByHash retrieves a product by hash, ErrNotFound when absent
	FindByHash(ctx context.Context, hash uuid.UUID) (*Product, error)

	// FindAll retrieves every product
	FindAll(ctx context.Context) ([]*Product, error)

	// FindAllByStatus retrieves products with the given active flag
	FindAllByStatus(ctx context.Context, active bool) ([]*Product, error)

	// FindAllLowStock retrieves active products whose quantity is below the minimum
	FindAllLowStock(ctx context.Context) ([]*Product, error)

	// UpdateStatus sets the active flag, true iff a row changed
	UpdateStatus(ctx context.Context, hash uuid.UUID, active bool) (bool, error)

	// Update persists description, price, quantity and minimum stock
	Update(ctx context.Context, product *Product) error

	// Delete hard-deletes a product, true iff a row was removed
	Delete(ctx context.Context, hash uuid.UUID) (bool, error)
}
