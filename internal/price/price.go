package price

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is the single money representation used everywhere past the
// ingestion boundary. Product feeds are inconsistent about prices
// (29.99 vs "$29.99" depending on source), so coercion happens once,
// here, at parse time.
type Cents int64

// Parse accepts a textual price with or without a leading dollar sign.
func Parse(s string) (Cents, error) {
	t := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if t == "" {
		return 0, fmt.Errorf("parse price %q: empty", s)
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return FromFloat(f), nil
}

// FromFloat converts a dollar amount to cents, rounding half away from zero.
func FromFloat(f float64) Cents {
	return Cents(math.Round(f * 100))
}

// Dollars returns the amount as a float dollar value.
func (c Cents) Dollars() float64 { return float64(c) / 100 }

// String formats like the storefront displays prices: "$30.00".
func (c Cents) String() string {
	return fmt.Sprintf("$%.2f", c.Dollars())
}

// MarshalJSON emits the canonical numeric form (cents).
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(c), 10)), nil
}

// UnmarshalJSON accepts the three shapes seen in the wild:
// integer cents (our own persisted form), a float dollar amount, and a
// "$"-prefixed decimal string.
func (c *Cents) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if len(s) > 0 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		v, err := Parse(str)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("parse price %s: %w", s, err)
		}
		*c = Cents(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse price %s: %w", s, err)
	}
	*c = FromFloat(f)
	return nil
}
