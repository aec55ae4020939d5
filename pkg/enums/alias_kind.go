package enums

import "fmt"

// AliasKind selects how a vendor alias pattern is matched against a
// normalized raw name. Explicit lists beat fuzzy distance here: two
// visually close vendor names must never flip on edit-distance ties.
type AliasKind string

const (
	AliasKindExact     AliasKind = "exact"
	AliasKindPrefix    AliasKind = "prefix"
	AliasKindSubstring AliasKind = "substring"
)

var validAliasKinds = []AliasKind{
	AliasKindExact,
	AliasKindPrefix,
	AliasKindSubstring,
}

// String implements fmt.Stringer.
func (a AliasKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AliasKind.
func (a AliasKind) IsValid() bool {
	for _, candidate := range validAliasKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAliasKind converts raw input into an AliasKind.
func ParseAliasKind(value string) (AliasKind, error) {
	for _, candidate := range validAliasKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid alias kind %q", value)
}
