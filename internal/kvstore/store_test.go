package kvstore

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	if b, err := s.Get(ctx, "missing"); err != nil || b != nil {
		t.Fatalf("Get missing = (%v, %v), want (nil, nil)", b, err)
	}

	type rec struct {
		Name string `json:"name"`
		N    int    `json:"n"`
	}
	if err := SetJSON(ctx, s, "k", rec{Name: "a", N: 2}); err != nil {
		t.Fatal(err)
	}

	var got rec
	ok, err := GetJSON(ctx, s, "k", &got)
	if err != nil || !ok {
		t.Fatalf("GetJSON = (%v, %v)", ok, err)
	}
	if got.Name != "a" || got.N != 2 {
		t.Fatalf("got %+v", got)
	}

	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := GetJSON(ctx, s, "k", &got); ok {
		t.Fatal("key should be gone after Remove")
	}
}

func TestGetJSONCorruptValueTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	if err := s.Set(ctx, "k", []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	var out map[string]any
	ok, err := GetJSON(ctx, s, "k", &out)
	if err != nil {
		t.Fatalf("corrupt value must not surface an error, got %v", err)
	}
	if ok {
		t.Fatal("corrupt value must read as absent")
	}
	// and the poisoned key is purged
	if b, _ := s.Get(ctx, "k"); b != nil {
		t.Fatal("corrupt key should have been removed")
	}
}

func TestCartKey(t *testing.T) {
	if got := CartKey(""); got != "cart" {
		t.Errorf("anonymous key = %q", got)
	}
	if got := CartKey("1712000000000"); got != "cart_1712000000000" {
		t.Errorf("scoped key = %q", got)
	}
}
