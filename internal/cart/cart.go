package cart

import (
	"context"
	"sync"
	"time"

	"github.com/luxefashion/go-storefront/internal/kvstore"
	"github.com/luxefashion/go-storefront/internal/price"
)

// LineItem is one cart entry: a product plus its selected variant and
// quantity. Two line items are the same line iff product id, color and
// size all match.
type LineItem struct {
	ID            string      `json:"id"`
	ProductID     string      `json:"productId"`
	Name          string      `json:"name"`
	Price         price.Cents `json:"price"`
	Image         string      `json:"image"`
	SelectedColor string      `json:"selectedColor,omitempty"`
	SelectedSize  string      `json:"selectedSize,omitempty"`
	Quantity      int         `json:"quantity"`
	AddedAt       time.Time   `json:"addedAt"`
}

func (it LineItem) sameLine(other LineItem) bool {
	return it.ProductID == other.ProductID &&
		it.SelectedColor == other.SelectedColor &&
		it.SelectedSize == other.SelectedSize
}

// Cart is the reducer over line items for exactly one identity. Every
// mutation runs to completion and persists the resulting list under the
// identity-scoped key before returning; there is no pending state.
type Cart struct {
	store kvstore.Store

	mu         sync.Mutex
	userID     string
	items      []LineItem
	totalItems int
}

func New(store kvstore.Store) *Cart {
	return &Cart{store: store}
}

// SwitchUser reloads the cart from the key scoped to the given identity.
// Called on login and logout; an empty id selects the anonymous cart.
func (c *Cart) SwitchUser(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	return c.load(ctx)
}

// Load replaces the in-memory state wholesale from the persisted list.
func (c *Cart) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Cart) load(ctx context.Context) error {
	var items []LineItem
	if _, err := kvstore.GetJSON(ctx, c.store, kvstore.CartKey(c.userID), &items); err != nil {
		return err
	}
	c.setState(items)
	return nil
}

// Add merges the incoming item into an existing line with the same
// (product, color, size) triple, summing quantities, or appends it as a
// new line.
func (c *Cart) Add(ctx context.Context, item LineItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	next := make([]LineItem, len(c.items))
	copy(next, c.items)
	for i := range next {
		if next[i].sameLine(item) {
			next[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, item)
	}
	return c.persist(ctx, next)
}

// UpdateQuantity sets the matching line's quantity, clamped to at least 1.
// Dropping a line is an explicit Remove, never a side effect of a zero or
// negative quantity.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]LineItem, len(c.items))
	copy(next, c.items)
	for i := range next {
		if next[i].ID == id {
			next[i].Quantity = max(1, quantity)
		}
	}
	return c.persist(ctx, next)
}

// Remove filters out the line with the given id.
func (c *Cart) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]LineItem, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return c.persist(ctx, next)
}

// Clear empties the cart and deletes the persisted key entirely, not just
// an empty array. Used on checkout completion and explicit clears.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.store.Remove(ctx, kvstore.CartKey(c.userID)); err != nil {
		return err
	}
	c.setState(nil)
	return nil
}

func (c *Cart) persist(ctx context.Context, items []LineItem) error {
	if err := kvstore.SetJSON(ctx, c.store, kvstore.CartKey(c.userID), items); err != nil {
		return err
	}
	c.setState(items)
	return nil
}

func (c *Cart) setState(items []LineItem) {
	c.items = items
	c.totalItems = 0
	for _, it := range items {
		c.totalItems += it.Quantity
	}
}

// Items returns a copy of the current lines.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalItems
}

// Total is the cart total in cents.
func (c *Cart) Total() price.Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum price.Cents
	for _, it := range c.items {
		sum += it.Price * price.Cents(it.Quantity)
	}
	return sum
}

// UserID reports which identity currently owns the cart.
func (c *Cart) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}
