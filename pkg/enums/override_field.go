package enums

import "fmt"

// OverrideField names the bucket cells an operator may override. The
// derived total is never stored, only recomputed from effective channels.
type OverrideField string

const (
	OverrideFieldCheque OverrideField = "cheque"
	OverrideFieldCard   OverrideField = "card"
	OverrideFieldCash   OverrideField = "cash"
	OverrideFieldSalary OverrideField = "salary"
)

var validOverrideFields = []OverrideField{
	OverrideFieldCheque,
	OverrideFieldCard,
	OverrideFieldCash,
	OverrideFieldSalary,
}

// String implements fmt.Stringer.
func (o OverrideField) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OverrideField.
func (o OverrideField) IsValid() bool {
	for _, candidate := range validOverrideFields {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsChannel reports whether the field is one of the payment channel cells.
func (o OverrideField) IsChannel() bool {
	return o == OverrideFieldCheque || o == OverrideFieldCard || o == OverrideFieldCash
}

// ParseOverrideField converts raw input into an OverrideField.
func ParseOverrideField(value string) (OverrideField, error) {
	for _, candidate := range validOverrideFields {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid override field %q", value)
}
