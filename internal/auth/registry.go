package auth

import (
	"context"
	"strconv"
	"time"

	"github.com/luxefashion/go-storefront/internal/kvstore"
)

// User is a registered account. Records are append-only: never mutated,
// never deleted.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Registry keeps all registered users as one JSON array under the "users"
// key. Username and email are each unique across the registry.
type Registry struct {
	store kvstore.Store
	now   func() time.Time
}

func NewRegistry(store kvstore.Store) *Registry {
	return &Registry{store: store, now: time.Now}
}

func (r *Registry) all(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := kvstore.GetJSON(ctx, r.store, kvstore.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Register appends a new user after checking uniqueness. Password length
// and confirmation checks belong to the form layer and happen before this
// call. The id is time-derived (milliseconds), like the original.
func (r *Registry) Register(ctx context.Context, username, email, password string) (User, error) {
	users, err := r.all(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return User{}, ErrUsernameTaken
		}
	}
	for _, u := range users {
		if u.Email == email {
			return User{}, ErrEmailTaken
		}
	}

	u := User{
		ID:           strconv.FormatInt(r.now().UnixMilli(), 10),
		Username:     username,
		Email:        email,
		PasswordHash: HashPassword(password),
		CreatedAt:    r.now().UTC(),
	}
	users = append(users, u)
	if err := kvstore.SetJSON(ctx, r.store, kvstore.KeyUsers, users); err != nil {
		return User{}, err
	}
	return u, nil
}

// FindByCredentials scans for a username plus matching password hash.
func (r *Registry) FindByCredentials(ctx context.Context, username, password string) (User, bool, error) {
	users, err := r.all(ctx)
	if err != nil {
		return User{}, false, err
	}
	hash := HashPassword(password)
	for _, u := range users {
		if u.Username == username && u.PasswordHash == hash {
			return u, true, nil
		}
	}
	return User{}, false, nil
}
