package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/luxefashion/go-storefront/internal/auth"
	"github.com/luxefashion/go-storefront/internal/cart"
	"github.com/luxefashion/go-storefront/internal/catalog"
	"github.com/luxefashion/go-storefront/internal/kvstore"
	"github.com/luxefashion/go-storefront/internal/price"
)

// storefront test fixture: memory store, admin/admin123, catalog with one
// $10.00 product served by a fake remote.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]catalog.Product{{
			ID:     "1",
			Name:   "Classic White Shirt",
			Price:  price.Cents(1000),
			Images: []string{"https://example.com/shirt.jpg"},
			Colors: []string{"red", "white"},
			Sizes:  []string{"M", "L"},
		}})
	}))
	t.Cleanup(remote.Close)

	store := kvstore.NewMemory()
	registry := auth.NewRegistry(store)
	sessions := auth.NewManager(store, registry, "admin", "admin123")
	userCart := cart.New(store)
	cache := catalog.NewCache(catalog.NewClient(remote.URL), zerolog.Nop())
	cache.Load(context.Background())

	router := NewRouter("")
	(&AuthHandler{Sessions: sessions, Registry: registry, Cart: userCart}).Register(router)
	(&CartHandler{Cart: userCart, Catalog: cache}).Register(router)
	(&CatalogHandler{Catalog: cache, Sessions: sessions}).Register(router)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := http.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestLoginScenario(t *testing.T) {
	ts := newTestServer(t)

	// login("admin","admin123") -> success, role=admin
	resp := postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"username": "admin", "password": "admin123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login status %d", resp.StatusCode)
	}
	s := decode[auth.Session](t, resp)
	if s.Role != auth.RoleAdmin || !s.Authenticated {
		t.Fatalf("session = %+v", s)
	}

	// login("admin","wrong") -> AuthError
	resp = postJSON(t, ts.URL+"/api/auth/login", map[string]string{
		"username": "admin", "password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestRegisterScenario(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"username": "a", "email": "a@x.com", "password": "abcdef",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register status %d", resp.StatusCode)
	}
	resp.Body.Close()

	// same username, different email -> UsernameTaken
	resp = postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"username": "a", "email": "b@x.com", "password": "abcdef",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate register status %d", resp.StatusCode)
	}
	resp.Body.Close()

	// short password rejected by the form layer
	resp = postJSON(t, ts.URL+"/api/auth/register", map[string]string{
		"username": "c", "email": "c@x.com", "password": "abc",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short password status %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAddToCartScenario(t *testing.T) {
	ts := newTestServer(t)

	// add product 1 ($10.00), red / M, qty 2
	resp := postJSON(t, ts.URL+"/api/cart/items", map[string]any{
		"productId": "1", "selectedColor": "red", "selectedSize": "M", "quantity": 2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add status %d", resp.StatusCode)
	}
	resp.Body.Close()

	// same variant again, qty 1 -> one line, quantity 3, total $30.00
	resp = postJSON(t, ts.URL+"/api/cart/items", map[string]any{
		"productId": "1", "selectedColor": "red", "selectedSize": "M", "quantity": 1,
	})
	view := decode[cartView](t, resp)

	if len(view.Items) != 1 {
		t.Fatalf("want one line, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", view.Items[0].Quantity)
	}
	if view.Total != "$30.00" {
		t.Fatalf("total = %s, want $30.00", view.Total)
	}
	if view.TotalItems != 3 {
		t.Fatalf("totalItems = %d", view.TotalItems)
	}

	// unknown product -> 404, cart unchanged
	resp = postJSON(t, ts.URL+"/api/cart/items", map[string]any{"productId": "zzz", "quantity": 1})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product status %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminCRUDRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/products", map[string]any{"name": "X", "price": "$10.00"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("anonymous create status %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()
}
