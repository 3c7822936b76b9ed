package product

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/validator"
)

// CreateInput is a decoded required-create field map
type CreateInput struct {
	Name         string  `json:"nome"`
	Description  string  `json:"descricao"`
	Ean13        string  `json:"ean13"`
	Price        float64 `json:"preco" validate:"gte=0"`
	Quantity     float64 `json:"quantidade" validate:"gte=0"`
	StockMinimum float64 `json:"estoqueMin" validate:"gte=0"`
}

// UpdateInput is a decoded updatable field map. Nil means the field was absent.
type UpdateInput struct {
	Description  *string  `json:"descricao"`
	Price        *float64 `json:"preco" validate:"omitempty,gte=0"`
	Quantity     *float64 `json:"quantidade" validate:"omitempty,gte=0"`
	StockMinimum *float64 `json:"estoqueMin" validate:"omitempty,gte=0"`
}

// RulesValidator enforces business rules that need more than the field map itself
type RulesValidator struct {
	repo domain.ProductRepository
}

// NewRulesValidator creates a rules validator backed by the repository for uniqueness checks
func NewRulesValidator(repo domain.ProductRepository) *RulesValidator {
	return &RulesValidator{repo: repo}
}

// ValidateCreate checks a new product: name and ean13 present, neither already
// in use, numeric fields non-negative. Repository errors are returned unchanged.
func (v *RulesValidator) ValidateCreate(ctx context.Context, in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidationError("attribute `%s` is empty", domain.FieldName)
	}
	if strings.TrimSpace(in.Ean13) == "" {
		return domain.NewValidationError("attribute `%s` is empty", domain.FieldEan13)
	}

	exists, err := v.repo.ExistsByNameOrEan13(ctx, in.Name, in.Ean13)
	if err != nil {
		return err
	}
	if exists {
		return domain.NewValidationError("a product with the same name or ean13 already exists")
	}

	return validator.Struct(in)
}

// ValidateUpdate checks every supplied numeric field is non-negative
func (v *RulesValidator) ValidateUpdate(in UpdateInput) error {
	return validator.Struct(in)
}

// ParseHash validates the external identifier format
func ParseHash(raw string) (uuid.UUID, error) {
	hash, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, domain.NewValidationError("invalid hash format")
	}
	return hash, nil
}

// EnsureActive rejects mutations of an inactive product
func EnsureActive(p *domain.Product) error {
	if !p.Active {
		return domain.NewStateError(domain.ErrInactive.Error())
	}
	return nil
}

// ValidatePriceOperand rejects a negative batch price operand before any computation
func ValidatePriceOperand(value float64) error {
	if value < 0 {
		return domain.NewValidationError("attribute `%s` cannot be negative", domain.FieldValue)
	}
	return nil
}

// ValidateStockOperand rejects a zero stock delta
func ValidateStockOperand(value float64) error {
	if value == 0 {
		return domain.NewValidationError("attribute `%s` cannot be zero", domain.FieldValue)
	}
	return nil
}
