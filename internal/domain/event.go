package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProductEventsSubject is the subject every product event is published on
const ProductEventsSubject = "products.events"

// Product event types published after successful mutations
const (
	EventProductCreated       = "product.created"
	EventProductUpdated       = "product.updated"
	EventProductStatusChanged = "product.status_changed"
	EventProductPriceAdjusted = "product.price_adjusted"
	EventProductStockAdjusted = "product.stock_adjusted"
	EventProductDeleted       = "product.deleted"
)

// ProductEvent is the message body on the products subject.
// Product is nil for deletions.
type ProductEvent struct {
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Hash      uuid.UUID `json:"hash"`
	Product   *Product  `json:"product,omitempty"`
}
