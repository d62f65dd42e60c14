package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/luxefashion/go-storefront/internal/price"
)

// NewLineItem builds a cart line for a chosen product variant. Quantity
// is clamped to at least 1 up front so a malformed form can never create
// an empty line.
func NewLineItem(productID, name string, unitPrice price.Cents, image, color, size string, quantity int) LineItem {
	return LineItem{
		ID:            uuid.NewString(),
		ProductID:     productID,
		Name:          name,
		Price:         unitPrice,
		Image:         image,
		SelectedColor: color,
		SelectedSize:  size,
		Quantity:      max(1, quantity),
		AddedAt:       time.Now().UTC(),
	}
}
