package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a non-negative decimal amount with an explicit absent state.
// Unparseable input decodes as absent so field validation can report it.
type Price struct {
	value decimal.Decimal
	set   bool
}

// NewPrice returns a set price.
func NewPrice(v decimal.Decimal) Price {
	return Price{value: v, set: true}
}

// PriceFromFloat converts f; NaN and infinities yield an absent price.
func PriceFromFloat(f float64) Price {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Price{}
	}
	return NewPrice(decimal.NewFromFloat(f))
}

// ParsePrice parses a textual amount; empty or malformed input yields an absent price.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	if s == "" {
		return Price{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}
	}
	return NewPrice(d)
}

// Decimal returns the amount and whether it is set.
func (p Price) Decimal() (decimal.Decimal, bool) { return p.value, p.set }

// IsSet reports whether the price holds a value.
func (p Price) IsSet() bool { return p.set }

// Negative reports whether a set price is below zero.
func (p Price) Negative() bool { return p.set && p.value.IsNegative() }

// Valid reports a set, non-negative price.
func (p Price) Valid() bool { return p.set && !p.value.IsNegative() }

// Equal compares two prices including the absent state.
func (p Price) Equal(other Price) bool {
	if p.set != other.set {
		return false
	}
	return !p.set || p.value.Equal(other.value)
}

func (p Price) String() string {
	if !p.set {
		return ""
	}
	return p.value.String()
}

// MarshalJSON writes a JSON number, or null when absent.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return []byte(p.value.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings; anything else is absent.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		return nil
	}
	*p = ParsePrice(string(data))
	return nil
}
