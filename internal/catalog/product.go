package catalog

import (
	"time"

	"github.com/luxefashion/go-storefront/internal/price"
)

// Badge values surfaced on product cards.
const (
	BadgeNew        = "new"
	BadgeBestseller = "bestseller"
)

// Product is the canonical product schema. The two app variants disagreed
// on field names (name vs title, category vs categoryId, badge vs status);
// this follows the backend-backed variant, and the client normalizes the
// other shapes at the JSON boundary.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       price.Cents `json:"price"`
	OldPrice    price.Cents `json:"old_price,omitempty"`
	Images      []string    `json:"images"`
	Badge       string      `json:"badge,omitempty"`
	Rating      float64     `json:"rating"`
	Colors      []string    `json:"colors,omitempty"`
	Sizes       []string    `json:"sizes,omitempty"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt,omitempty"`
}

// Image returns the primary image, if any.
func (p Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
