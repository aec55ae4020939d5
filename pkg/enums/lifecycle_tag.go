package enums

import "fmt"

// LifecycleTag marks which stage of a session a snapshot belongs to.
type LifecycleTag string

const (
	LifecycleTagOpening LifecycleTag = "opening"
	LifecycleTagClosing LifecycleTag = "closing"
	LifecycleTagManual  LifecycleTag = "manual"
)

var validLifecycleTags = []LifecycleTag{
	LifecycleTagOpening,
	LifecycleTagClosing,
	LifecycleTagManual,
}

// String implements fmt.Stringer.
func (l LifecycleTag) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LifecycleTag.
func (l LifecycleTag) IsValid() bool {
	for _, candidate := range validLifecycleTags {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLifecycleTag converts raw input into a LifecycleTag.
func ParseLifecycleTag(value string) (LifecycleTag, error) {
	for _, candidate := range validLifecycleTags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lifecycle tag %q", value)
}
