package product

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/domain"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/logger"
	"github.com/xnatnat/NewGo-Back-End-02-ProductAPI/internal/pkg/validator"
)

// Batch item outcome statuses
const (
	BatchStatusSuccess = "success"
	BatchStatusError   = "error"
)

const msgProductNotFound = "product not found"

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// BatchResult is the outcome of one batch item. Data holds the resulting
// product on success and the original input on failure.
type BatchResult struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Succeeded reports whether the item was applied
func (r BatchResult) Succeeded() bool {
	return r.Status == BatchStatusSuccess
}

// Service handles product business logic
type Service struct {
	repo      domain.ProductRepository
	rules     *RulesValidator
	publisher EventPublisher
	logger    *logger.Logger
	now       func() time.Time
}

// NewService creates a new product service. publisher may be nil.
func NewService(repo domain.ProductRepository, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		rules:     NewRulesValidator(repo),
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}
}

// Create validates and stores a new, inactive product
func (s *Service) Create(ctx context.Context, fields domain.FieldMap) (*domain.Product, error) {
	if err := validator.Fields(fields, domain.RequiredCreate); err != nil {
		s.logger.Debugf("Product create rejected: %v", err)
		return nil, err
	}

	in, err := decodeCreate(fields)
	if err != nil {
		return nil, err
	}

	if err := s.rules.ValidateCreate(ctx, in); err != nil {
		s.logFailure("Product create rejected", err)
		return nil, err
	}

	now := s.now()
	product := &domain.Product{
		Name:         in.Name,
		Description:  in.Description,
		Ean13:        in.Ean13,
		Price:        in.Price,
		Quantity:     in.Quantity,
		StockMinimum: in.StockMinimum,
		CreatedAt:    now,
		UpdatedAt:    now,
		Active:       false,
	}

	hash, err := s.repo.Save(ctx, product)
	if errors.Is(err, domain.ErrConflict) {
		s.logger.Warnf("Product create lost a uniqueness race: %v", err)
		return nil, domain.NewValidationError("a product with the same name or ean13 already exists")
	}
	if err != nil {
		s.logger.Error("Failed to create product", err)
		return nil, err
	}

	created, err := s.find(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, domain.EventProductCreated, created.Hash, created)

	s.logger.WithFields(map[string]interface{}{
		"hash": created.Hash,
		"name": created.Name,
	}).Info("Product created successfully")

	return created, nil
}

// CreateBatch creates each item in order; failures are reported per item
func (s *Service) CreateBatch(ctx context.Context, items []domain.FieldMap) []BatchResult {
	return s.runBatch(ctx, items, "product created", s.Create)
}

// GetByHash retrieves a product by its external hash
func (s *Service) GetByHash(ctx context.Context, rawHash string) (*domain.Product, error) {
	hash, err := ParseHash(rawHash)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, hash)
}

// GetActiveByHash retrieves a product and rejects it when inactive
func (s *Service) GetActiveByHash(ctx context.Context, rawHash string) (*domain.Product, error) {
	product, err := s.GetByHash(ctx, rawHash)
	if err != nil {
		return nil, err
	}
	if err := EnsureActive(product); err != nil {
		return nil, err
	}
	return product, nil
}

// List retrieves every product
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", err)
		return nil, err
	}
	return products, nil
}

// ListByStatus retrieves products with the given active flag
func (s *Service) ListByStatus(ctx context.Context, active bool) ([]*domain.Product, error) {
	products, err := s.repo.FindAllByStatus(ctx, active)
	if err != nil {
		s.logger.Error("Failed to list products by status", err)
		return nil, err
	}
	return products, nil
}

// ListLowStock retrieves active products below their minimum stock
func (s *Service) ListLowStock(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.FindAllLowStock(ctx)
	if err != nil {
		s.logger.Error("Failed to list low stock products", err)
		return nil, err
	}
	return products, nil
}

// Update applies a partial update to an active product. Only supplied fields
// that differ from the stored value are changed.
func (s *Service) Update(ctx context.Context, rawHash string, fields domain.FieldMap) (*domain.Product, error) {
	hash, err := ParseHash(rawHash)
	if err != nil {
		return nil, err
	}

	product, err := s.find(ctx, hash)
	if err != nil {
		return nil, err
	}

	if err := EnsureActive(product); err != nil {
		return nil, err
	}

	if err := validator.Fields(fields, domain.Updatable); err != nil {
		s.logger.Debugf("Product update rejected: %v", err)
		return nil, err
	}

	in, err := decodeUpdate(fields)
	if err != nil {
		return nil, err
	}

	if err := s.rules.ValidateUpdate(in); err != nil {
		s.logger.Debugf("Product update rejected: %v", err)
		return nil, err
	}

	if !merge(product, in) {
		s.logger.Debugf("Product %s update carried no changes", hash)
		return product, nil
	}

	product.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, err
	}

	updated, err := s.find(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, domain.EventProductUpdated, hash, updated)

	s.logger.WithFields(map[string]interface{}{
		"hash": hash,
		"name": updated.Name,
	}).Info("Product updated successfully")

	return updated, nil
}

// UpdateStatus sets the active flag. Inactive products may be reactivated.
func (s *Service) UpdateStatus(ctx context.Context, rawHash string, fields domain.FieldMap) (*domain.Product, error) {
	hash, err := ParseHash(rawHash)
	if err != nil {
		return nil, err
	}

	if err := validator.Fields(fields, domain.Status); err != nil {
		s.logger.Debugf("Product status change rejected: %v", err)
		return nil, err
	}

	active, _, err := fields.Bool(domain.FieldActive)
	if err != nil {
		return nil, err
	}

	return s.setStatus(ctx, hash, active)
}

// Deactivate marks a product inactive
func (s *Service) Deactivate(ctx context.Context, rawHash string) (*domain.Product, error) {
	hash, err := ParseHash(rawHash)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, hash, false)
}

func (s *Service) setStatus(ctx context.Context, hash uuid.UUID, active bool) (*domain.Product, error) {
	if _, err := s.find(ctx, hash); err != nil {
		return nil, err
	}

	changed, err := s.repo.UpdateStatus(ctx, hash, active)
	if err != nil {
		s.logger.Error("Failed to update product status", err)
		return nil, err
	}
	if !changed {
		return nil, domain.NewNotFoundError(msgProductNotFound)
	}

	updated, err := s.find(ctx, hash)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, domain.EventProductStatusChanged, hash, updated)

	s.logger.WithFields(map[string]interface{}{
		"hash":   hash,
		"active": active,
	}).Info("Product status updated successfully")

	return updated, nil
}

// AdjustPrice applies one batch-price item
func (s *Service) AdjustPrice(ctx context.Context, fields domain.FieldMap) (*domain.Product, error) {
	if err := validator.Fields(fields, domain.BatchPrice); err != nil {
		return nil, err
	}

	product, err := s.findActive(ctx, fields)
	if err != nil {
		return nil, err
	}

	value, _, err := fields.Float(domain.FieldValue)
	if err != nil {
		return nil, err
	}
	if err := ValidatePriceOperand(value); err != nil {
		return nil, err
	}

	operation, _, err := fields.String(domain.FieldOperation)
	if err != nil {
		return nil, err
	}

	price, err := ComputeNewPrice(product.Price, operation, value)
	if err != nil {
		return nil, err
	}

	previous := product.Price
	product.Price = price

	updated, err := s.persist(ctx, product, domain.EventProductPriceAdjusted)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"hash":      updated.Hash,
		"operation": operation,
		"from":      previous,
		"to":        updated.Price,
	}).Info("Product price adjusted")

	return updated, nil
}

// AdjustPriceBatch applies each batch-price item in order
func (s *Service) AdjustPriceBatch(ctx context.Context, items []domain.FieldMap) []BatchResult {
	return s.runBatch(ctx, items, "price adjusted", s.AdjustPrice)
}

// AdjustStock applies one batch-stock item; valor is a signed delta
func (s *Service) AdjustStock(ctx context.Context, fields domain.FieldMap) (*domain.Product, error) {
	if err := validator.Fields(fields, domain.BatchStock); err != nil {
		return nil, err
	}

	product, err := s.findActive(ctx, fields)
	if err != nil {
		return nil, err
	}

	value, _, err := fields.Float(domain.FieldValue)
	if err != nil {
		return nil, err
	}
	if err := ValidateStockOperand(value); err != nil {
		return nil, err
	}

	quantity, err := ComputeNewStock(product.Quantity, value)
	if err != nil {
		return nil, err
	}

	previous := product.Quantity
	product.Quantity = quantity

	updated, err := s.persist(ctx, product, domain.EventProductStockAdjusted)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"hash": updated.Hash,
		"from": previous,
		"to":   updated.Quantity,
	}).Info("Product stock adjusted")

	return updated, nil
}

// AdjustStockBatch applies each batch-stock item in order
func (s *Service) AdjustStockBatch(ctx context.Context, items []domain.FieldMap) []BatchResult {
	return s.runBatch(ctx, items, "stock adjusted", s.AdjustStock)
}

// Delete hard-deletes a product
func (s *Service) Delete(ctx context.Context, rawHash string) error {
	hash, err := ParseHash(rawHash)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, hash)
	if err != nil {
		s.logger.Error("Failed to delete product", err)
		return err
	}
	if !deleted {
		return domain.NewNotFoundError(msgProductNotFound)
	}

	s.publishEvent(ctx, domain.EventProductDeleted, hash, nil)

	s.logger.WithFields(map[string]interface{}{
		"hash": hash,
	}).Info("Product deleted successfully")

	return nil
}

// find looks a product up and turns a missing row into a NotFoundError
func (s *Service) find(ctx context.Context, hash uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debugf("Product not found: %s", hash)
			return nil, domain.NewNotFoundError(msgProductNotFound)
		}
		s.logger.Error("Failed to get product", err)
		return nil, err
	}
	return product, nil
}

// findActive resolves the hash field of a batch item to an active product
func (s *Service) findActive(ctx context.Context, fields domain.FieldMap) (*domain.Product, error) {
	raw, _, err := fields.String(domain.FieldHash)
	if err != nil {
		return nil, err
	}

	hash, err := ParseHash(raw)
	if err != nil {
		return nil, err
	}

	product, err := s.find(ctx, hash)
	if err != nil {
		return nil, err
	}

	if err := EnsureActive(product); err != nil {
		return nil, err
	}
	return product, nil
}

// persist writes a mutated product, re-reads it and publishes the event
func (s *Service) persist(ctx context.Context, product *domain.Product, eventType string) (*domain.Product, error) {
	product.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.Error("Failed to update product", err)
		return nil, err
	}

	updated, err := s.find(ctx, product.Hash)
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, eventType, updated.Hash, updated)
	return updated, nil
}

// runBatch processes items sequentially and never aborts on an item failure
func (s *Service) runBatch(
	ctx context.Context,
	items []domain.FieldMap,
	successMsg string,
	apply func(context.Context, domain.FieldMap) (*domain.Product, error),
) []BatchResult {
	results := make([]BatchResult, 0, len(items))
	failed := 0

	for _, item := range items {
		product, err := apply(ctx, item)
		if err != nil {
			failed++
			results = append(results, BatchResult{
				Status:  BatchStatusError,
				Message: err.Error(),
				Data:    item,
			})
			continue
		}

		results = append(results, BatchResult{
			Status:  BatchStatusSuccess,
			Message: successMsg,
			Data:    product,
		})
	}

	s.logger.WithFields(map[string]interface{}{
		"items":  len(items),
		"failed": failed,
	}).Info("Batch processed")

	return results
}

// publishEvent publishes a product event. Failures are logged and never
// affect the outcome of the operation.
func (s *Service) publishEvent(ctx context.Context, eventType string, hash uuid.UUID, product *domain.Product) {
	if s.publisher == nil {
		return
	}

	event := domain.ProductEvent{
		EventType: eventType,
		Timestamp: s.now(),
		Hash:      hash,
		Product:   product,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for product %s", hash)
		return
	}

	if err := s.publisher.Publish(ctx, domain.ProductEventsSubject, data); err != nil {
		s.logger.Warnf("Failed to publish %s event for product %s: %v", eventType, hash, err)
	}
}

func (s *Service) logFailure(msg string, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		s.logger.Debugf("%s: %v", msg, err)
		return
	}
	s.logger.Error(msg, err)
}

func decodeCreate(fields domain.FieldMap) (CreateInput, error) {
	var in CreateInput
	var err error

	if in.Name, _, err = fields.String(domain.FieldName); err != nil {
		return in, err
	}
	if in.Description, _, err = fields.String(domain.FieldDescription); err != nil {
		return in, err
	}
	if in.Ean13, _, err = fields.String(domain.FieldEan13); err != nil {
		return in, err
	}
	if in.Price, _, err = fields.Float(domain.FieldPrice); err != nil {
		return in, err
	}
	if in.Quantity, _, err = fields.Float(domain.FieldQuantity); err != nil {
		return in, err
	}
	if in.StockMinimum, _, err = fields.Float(domain.FieldStockMinimum); err != nil {
		return in, err
	}
	return in, nil
}

func decodeUpdate(fields domain.FieldMap) (UpdateInput, error) {
	var in UpdateInput

	if v, ok, err := fields.String(domain.FieldDescription); err != nil {
		return in, err
	} else if ok {
		in.Description = &v
	}

	numeric := []struct {
		name string
		dst  **float64
	}{
		{domain.FieldPrice, &in.Price},
		{domain.FieldQuantity, &in.Quantity},
		{domain.FieldStockMinimum, &in.StockMinimum},
	}
	for _, f := range numeric {
		v, ok, err := fields.Float(f.name)
		if err != nil {
			return in, err
		}
		if ok {
			val := v
			*f.dst = &val
		}
	}

	return in, nil
}

// merge copies supplied fields that differ from the current state and reports
// whether anything changed
func merge(p *domain.Product, in UpdateInput) bool {
	changed := false

	if in.Description != nil && *in.Description != p.Description {
		p.Description = *in.Description
		changed = true
	}
	if in.Price != nil && *in.Price != p.Price {
		p.Price = *in.Price
		changed = true
	}
	if in.Quantity != nil && *in.Quantity != p.Quantity {
		p.Quantity = *in.Quantity
		changed = true
	}
	if in.StockMinimum != nil && *in.StockMinimum != p.StockMinimum {
		p.StockMinimum = *in.StockMinimum
		changed = true
	}

	return changed
}
