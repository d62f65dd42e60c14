package kvstore

import "fmt"

const (
	// Admin session record: {authenticated, role, identity, issued_at_millis}
	KeyAdminAuth = "admin_auth"

	// Registered-user session record, same shape as admin_auth
	KeyUserAuth = "user_auth"

	// Registered users, one JSON array under a single key
	KeyUsers = "users"

	// Anonymous cart
	KeyCartAnon = "cart"

	// Per-user cart: cart_{user_id}
	KeyCartUser = "cart_%s"

	// Local product overrides kept by the storage-only app variant
	KeyAdminProducts = "admin_products"
)

// CartKey scopes the cart to its owning identity. An empty userID means
// the shared anonymous cart.
func CartKey(userID string) string {
	if userID == "" {
		return KeyCartAnon
	}
	return fmt.Sprintf(KeyCartUser, userID)
}
