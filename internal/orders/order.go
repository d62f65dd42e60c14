package orders

import (
	"errors"
	"strings"

	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/price"
)

// Delivery pricing from the original checkout page: flat $5, waived when
// the subtotal exceeds $200.
const (
	DeliveryFee      = price.Cents(500)
	FreeDeliveryOver = price.Cents(20000)
)

var (
	ErrMissingCustomer = errors.New("iltimos, barcha majburiy maydonlarni to'ldiring")
	ErrEmptyCart       = errors.New("savat bo'sh")
)

type Customer struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Comments string `json:"comments,omitempty"`
}

// Validate checks the required checkout fields; comments stay optional.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" ||
		strings.TrimSpace(c.Phone) == "" ||
		strings.TrimSpace(c.Address) == "" {
		return ErrMissingCustomer
	}
	return nil
}

type Totals struct {
	Subtotal    price.Cents `json:"subtotal"`
	DeliveryFee price.Cents `json:"deliveryFee"`
	Total       price.Cents `json:"total"`
}

// ComputeTotals derives the checkout totals from the cart lines.
func ComputeTotals(items []cart.LineItem) Totals {
	var subtotal price.Cents
	for _, it := range items {
		subtotal += it.Price * price.Cents(it.Quantity)
	}
	fee := DeliveryFee
	if subtotal > FreeDeliveryOver {
		fee = 0
	}
	return Totals{Subtotal: subtotal, DeliveryFee: fee, Total: subtotal + fee}
}

// Order is the payload submitted to the remote order endpoint.
type Order struct {
	Customer Customer        `json:"customer"`
	Items    []cart.LineItem `json:"items"`
	Totals   Totals          `json:"totals"`
}
