package enums

import "fmt"

// SourceOrigin identifies which ledger produced a transaction.
type SourceOrigin string

const (
	SourceOriginLocal    SourceOrigin = "local"
	SourceOriginSynced   SourceOrigin = "synced"
	SourceOriginExternal SourceOrigin = "external"
)

var validSourceOrigins = []SourceOrigin{
	SourceOriginLocal,
	SourceOriginSynced,
	SourceOriginExternal,
}

// String implements fmt.Stringer.
func (s SourceOrigin) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SourceOrigin.
func (s SourceOrigin) IsValid() bool {
	for _, candidate := range validSourceOrigins {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSourceOrigin converts raw input into a SourceOrigin.
func ParseSourceOrigin(value string) (SourceOrigin, error) {
	for _, candidate := range validSourceOrigins {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid source origin %q", value)
}
