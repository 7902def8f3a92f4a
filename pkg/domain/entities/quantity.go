package entities

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAvailableQty parses a supply-side quantity cell. Blank or unparseable
// cells yield an invalid NullDecimal; they still count as supply presence but
// contribute nothing to aggregated quantities.
func ParseAvailableQty(cell string) decimal.NullDecimal {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		// Tolerant-comparison policy: non-numeric quantities are absent,
		// never an error.
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// ParseRequestedQty parses a demand-side quantity cell. Blank or unparseable
// cells coerce to zero.
func ParseRequestedQty(cell string) decimal.Decimal {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// QuantityAbsent is the one canonical "no usable quantity" predicate: true
// for missing, blank and numerically zero quantities.
func QuantityAbsent(q decimal.NullDecimal) bool {
	return !q.Valid || q.Decimal.IsZero()
}
