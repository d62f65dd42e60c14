package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/luxefashion/go-storefront/internal/kvstore"
)

func newTestManager(store kvstore.Store) *Manager {
	reg := NewRegistry(store)
	m := NewManager(store, reg, "admin", "admin123")
	return m
}

func TestLoginAdmin(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)

	s, err := m.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if s.Role != RoleAdmin || !s.Authenticated || s.Identity.ID != "admin" {
		t.Fatalf("bad session: %+v", s)
	}

	// persisted under the admin key
	var stored Session
	ok, _ := kvstore.GetJSON(ctx, store, kvstore.KeyAdminAuth, &stored)
	if !ok || stored.Role != RoleAdmin {
		t.Fatal("admin_auth record not written")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kvstore.NewMemory())

	_, err := m.Login(ctx, "admin", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("failed login must not activate a session")
	}
}

func TestLoginRegisteredUser(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)
	if _, err := m.registry.Register(ctx, "zulfiya", "z@x.com", "abcdef"); err != nil {
		t.Fatal(err)
	}

	s, err := m.Login(ctx, "zulfiya", "abcdef")
	if err != nil {
		t.Fatalf("user login: %v", err)
	}
	if s.Role != RoleUser || s.Identity.Username != "zulfiya" || s.Identity.Email != "z@x.com" {
		t.Fatalf("bad session: %+v", s)
	}
}

func TestRestoreExpiredSessionPurged(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)

	issued := time.Now().Add(-25 * time.Hour)
	expired := Session{
		Authenticated:  true,
		Role:           RoleUser,
		Identity:       Identity{ID: "1", Username: "old"},
		IssuedAtMillis: issued.UnixMilli(),
	}
	if err := kvstore.SetJSON(ctx, store, kvstore.KeyUserAuth, expired); err != nil {
		t.Fatal(err)
	}

	_, ok, err := m.Restore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("25h-old session must not restore")
	}
	if _, active := m.Current(); active {
		t.Fatal("login state must be false after expired restore")
	}
	if b, _ := store.Get(ctx, kvstore.KeyUserAuth); b != nil {
		t.Fatal("expired record must be removed from the store")
	}
}

func TestRestoreValidSession(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)
	if _, err := m.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	// a fresh manager simulating app restart
	m2 := newTestManager(store)
	s, ok, err := m2.Restore(ctx)
	if err != nil || !ok {
		t.Fatalf("Restore = (%v, %v)", ok, err)
	}
	if s.Role != RoleAdmin {
		t.Fatalf("restored role = %s", s.Role)
	}
}

func TestRestoreAdminPrecedence(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)

	now := time.Now().UnixMilli()
	_ = kvstore.SetJSON(ctx, store, kvstore.KeyUserAuth, Session{
		Authenticated: true, Role: RoleUser,
		Identity: Identity{ID: "1", Username: "u"}, IssuedAtMillis: now,
	})
	_ = kvstore.SetJSON(ctx, store, kvstore.KeyAdminAuth, Session{
		Authenticated: true, Role: RoleAdmin,
		Identity: Identity{ID: "admin", Username: "admin"}, IssuedAtMillis: now,
	})

	s, ok, _ := m.Restore(ctx)
	if !ok || s.Role != RoleAdmin {
		t.Fatalf("admin record must win, got %+v", s)
	}
}

func TestRestoreCorruptRecordTreatedAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)
	_ = store.Set(ctx, kvstore.KeyAdminAuth, []byte("garbage{{"))

	_, ok, err := m.Restore(ctx)
	if err != nil {
		t.Fatalf("corrupt record must not error: %v", err)
	}
	if ok {
		t.Fatal("corrupt record must not restore")
	}
	if b, _ := store.Get(ctx, kvstore.KeyAdminAuth); b != nil {
		t.Fatal("corrupt key should be deleted")
	}
}

func TestLogoutRemovesRoleKey(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	m := newTestManager(store)
	if _, err := m.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	if err := m.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Current(); ok {
		t.Fatal("identity must be cleared")
	}
	if b, _ := store.Get(ctx, kvstore.KeyAdminAuth); b != nil {
		t.Fatal("admin_auth must be deleted on logout")
	}

	// double logout is a no-op
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("second logout: %v", err)
	}
}

func TestUnboundedRetryAllowed(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(kvstore.NewMemory())

	for i := 0; i < 50; i++ {
		if _, err := m.Login(ctx, "admin", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	// still no lockout
	if _, err := m.Login(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("correct password rejected after retries: %v", err)
	}
}
