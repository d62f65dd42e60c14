package orders

import (
	"encoding/json"
	"time"

	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/price"
)

const (
	EventOrderSubmitted = "OrderSubmitted"
	EventProductCreated = "ProductCreated"
	EventProductUpdated = "ProductUpdated"
	EventProductDeleted = "ProductDeleted"
)

// Envelope wraps every event published to Kafka.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

type OrderSubmittedPayload struct {
	OrderID    string          `json:"order_id"`
	UserID     string          `json:"user_id,omitempty"`
	Customer   Customer        `json:"customer"`
	Items      []cart.LineItem `json:"items"`
	TotalCents price.Cents     `json:"total_cents"`
}

type ProductChangedPayload struct {
	ProductID string `json:"product_id"`
	Action    string `json:"action"` // created | updated | deleted
}
