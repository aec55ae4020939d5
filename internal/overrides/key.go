package overrides

import (
	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Key addresses one overridable cell. A typed composite key rather
// than a concatenated string: the compiler catches a swapped vendor
// and field, string keys do not.
type Key struct {
	VendorID string
	DayIndex int
	Field    enums.OverrideField
}

// Set is an in-memory view of the stored overrides, loaded once per
// pipeline run and consulted by pure computation code.
type Set map[Key]decimal.Decimal

// Get returns the override for a cell, if any.
func (s Set) Get(vendorID string, dayIndex int, field enums.OverrideField) (decimal.Decimal, bool) {
	value, ok := s[Key{VendorID: vendorID, DayIndex: dayIndex, Field: field}]
	return value, ok
}

// Effective returns the stored override when present, else the
// computed value.
func (s Set) Effective(vendorID string, dayIndex int, field enums.OverrideField, computed decimal.Decimal) decimal.Decimal {
	if value, ok := s.Get(vendorID, dayIndex, field); ok {
		return value
	}
	return computed
}
