package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testCache(t *testing.T, handler http.Handler) (*Cache, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewCache(NewClient(ts.URL), zerolog.Nop()), ts
}

func TestLoadFallsBackOnEmptyRemote(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Product{})
	}))

	c.Load(context.Background())
	if c.Loading() {
		t.Fatal("loading flag must clear")
	}
	if got := len(c.All()); got != 8 {
		t.Fatalf("want the 8 static products, got %d", got)
	}
}

func TestLoadFallsBackOnRemoteFailure(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	c.Load(context.Background())
	if got := len(c.All()); got != 8 {
		t.Fatalf("want static fallback, got %d products", got)
	}
}

func TestLoadUsesRemoteProducts(t *testing.T) {
	remote := []Product{
		{ID: "x1", Name: "Remote Coat", Price: 9900, CreatedAt: time.Now()},
	}
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(remote)
	}))

	c.Load(context.Background())
	all := c.All()
	if len(all) != 1 || all[0].ID != "x1" {
		t.Fatalf("got %+v", all)
	}
}

func TestNewCollectionNewestFirstTruncated(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Product{})
	}))
	c.Load(context.Background())

	nc := c.NewCollection()
	if len(nc) != 4 {
		t.Fatalf("new collection must hold 4, got %d", len(nc))
	}
	for i := 1; i < len(nc); i++ {
		if nc[i].CreatedAt.After(nc[i-1].CreatedAt) {
			t.Fatalf("not sorted newest-first: %s before %s", nc[i-1].Name, nc[i].Name)
		}
	}
	if nc[0].ID != "1" {
		t.Fatalf("newest static product is id 1, got %s", nc[0].ID)
	}
}

func TestBestsellersCheapestFirstTruncated(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Product{})
	}))
	c.Load(context.Background())

	bs := c.Bestsellers()
	if len(bs) != 4 {
		t.Fatalf("bestsellers must hold 4, got %d", len(bs))
	}
	for i := 1; i < len(bs); i++ {
		if bs[i].Price < bs[i-1].Price {
			t.Fatalf("not sorted by ascending price at %d", i)
		}
	}
}

func TestByID(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Product{})
	}))
	c.Load(context.Background())

	p, ok := c.ByID("5")
	if !ok || p.Name != "Classic White Shirt" {
		t.Fatalf("ByID(5) = (%+v, %v)", p, ok)
	}
	if _, ok := c.ByID("nope"); ok {
		t.Fatal("unknown id must miss")
	}
}

func TestCreateUpdatesCacheOnlyOnSuccess(t *testing.T) {
	fail := true
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode([]Product{})
		case fail:
			http.Error(w, "down", http.StatusInternalServerError)
		default:
			var p Product
			_ = json.NewDecoder(r.Body).Decode(&p)
			p.ID = "new1"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(p)
		}
	}))
	c.Load(context.Background())
	before := len(c.All())

	_, err := c.Create(context.Background(), Product{Name: "Trench", Price: 15900})
	if err == nil {
		t.Fatal("remote failure must surface")
	}
	if len(c.All()) != before {
		t.Fatal("failed create must leave the cache untouched")
	}

	fail = false
	created, err := c.Create(context.Background(), Product{Name: "Trench", Price: 15900})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != "new1" {
		t.Fatalf("created id = %s", created.ID)
	}
	if len(c.All()) != before+1 {
		t.Fatal("successful create must append to the cache")
	}
}

func TestDeleteRemovesFromCache(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode([]Product{})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	c.Load(context.Background())

	if err := c.Delete(context.Background(), "3"); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.ByID("3"); ok {
		t.Fatal("deleted product still cached")
	}
	if len(c.All()) != 7 {
		t.Fatalf("got %d products", len(c.All()))
	}
}

func TestSubscribeNotifiedOnChange(t *testing.T) {
	c, _ := testCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode([]Product{})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	}))
	c.Load(context.Background())

	calls := 0
	c.Subscribe(func() { calls++ })

	if err := c.Delete(context.Background(), "1"); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("subscriber called %d times, want 1", calls)
	}
}
