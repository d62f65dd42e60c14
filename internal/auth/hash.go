package auth

import "strconv"

// HashPassword is the demo credential hash carried over from the original
// storefront: fold each character into a 32-bit signed integer via
// hash = hash*31 + code, with wraparound, rendered as a decimal string.
//
// This is NOT a cryptographic hash and offers no real protection; it is
// preserved only for compatibility with existing stored user records.
// Anything production-facing must replace it.
func HashPassword(password string) string {
	var h int32
	for _, r := range password {
		h = (h << 5) - h + int32(r)
	}
	return strconv.FormatInt(int64(h), 10)
}
