package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// Cache holds the product list in memory. It is loaded once from the
// remote service on startup, with the bundled static list substituted
// when the remote yields nothing, and kept in sync with admin CRUD calls:
// the cache only changes after the remote call succeeds, so a failed call
// leaves it untouched.
type Cache struct {
	remote *Client
	log    zerolog.Logger

	mu       sync.RWMutex
	products []Product
	loading  bool
	subs     []func()
}

func NewCache(remote *Client, log zerolog.Logger) *Cache {
	return &Cache{remote: remote, log: log, loading: true}
}

// Load fetches the full product list. Any failure or an empty result
// falls back to the static catalog; either way the loading flag clears.
func (c *Cache) Load(ctx context.Context) {
	products, err := c.remote.GetAll(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("product service unavailable, using static catalog")
		products = nil
	}
	if len(products) == 0 {
		products = StaticProducts()
	}

	c.mu.Lock()
	c.products = products
	c.loading = false
	c.mu.Unlock()
	c.log.Info().Int("products", len(products)).Msg("catalog loaded")
}

// Reload refetches from the remote. Triggered by product-change events,
// replacing the original window-wide broadcast with an explicit call.
func (c *Cache) Reload(ctx context.Context) {
	products, err := c.remote.GetAll(ctx)
	if err != nil || len(products) == 0 {
		c.log.Warn().Err(err).Msg("catalog reload skipped")
		return
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	c.notify()
}

// Loading reports whether the initial load is still in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// All returns a copy of the cached list.
func (c *Cache) All() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// NewCollection is the catalog sorted by creation time, newest first,
// truncated to four. The sort is unstable and no secondary key is
// defined, so equal timestamps break ties arbitrarily; this mirrors the
// original selection logic.
func (c *Cache) NewCollection() []Product {
	out := c.All()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return truncate(out, 4)
}

// Bestsellers is the catalog sorted by ascending price, truncated to
// four. Same arbitrary tie-breaking as NewCollection.
func (c *Cache) Bestsellers() []Product {
	out := c.All()
	sort.Slice(out, func(i, j int) bool {
		return out[i].Price < out[j].Price
	})
	return truncate(out, 4)
}

// ByID is a linear scan over the cached list.
func (c *Cache) ByID(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Create delegates to the remote service and appends the stored record on
// success.
func (c *Cache) Create(ctx context.Context, p Product) (Product, error) {
	created, err := c.remote.Create(ctx, p)
	if err != nil {
		return Product{}, err
	}
	c.mu.Lock()
	c.products = append(c.products, created)
	c.mu.Unlock()
	c.notify()
	return created, nil
}

// Update delegates to the remote service and replaces the record by id on
// success.
func (c *Cache) Update(ctx context.Context, id string, p Product) (Product, error) {
	updated, err := c.remote.Update(ctx, id, p)
	if err != nil {
		return Product{}, err
	}
	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = updated
		}
	}
	c.mu.Unlock()
	c.notify()
	return updated, nil
}

// Delete delegates to the remote service and drops the record on success.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.remote.Delete(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	next := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			next = append(next, p)
		}
	}
	c.products = next
	c.mu.Unlock()
	c.notify()
	return nil
}

// Subscribe registers a callback invoked after every successful catalog
// change. This replaces the original app's implicit productsUpdated
// window event with an explicit subscription.
func (c *Cache) Subscribe(fn func()) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Cache) notify() {
	c.mu.RLock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func truncate(ps []Product, n int) []Product {
	if len(ps) > n {
		return ps[:n]
	}
	return ps
}
