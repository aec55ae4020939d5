package vendors

import (
	"context"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/julienmorel/caisse-backend/pkg/enums"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
)

// Identity is one canonical vendor with its ordered alias matchers.
type Identity struct {
	ID            string
	CanonicalName string
	Aliases       []Alias
}

// Alias is a single matcher tested against normalized raw names.
type Alias struct {
	Pattern string
	Kind    enums.AliasKind
}

// ResolverParams configures a Resolver.
type ResolverParams struct {
	Identities      []Identity
	DefaultVendorID string
	Logger          *logger.Logger
	Metrics         *metrics.PipelineMetrics
}

// Resolver maps free-text vendor names to canonical vendor ids.
// Resolution is total: a name that matches nothing resolves to the
// default vendor, never to an error. Mis-attributed revenue can be
// corrected later; silently dropped revenue cannot.
type Resolver struct {
	identities []Identity
	defaultID  string
	logg       *logger.Logger
	metrics    *metrics.PipelineMetrics
}

// NewResolver builds a Resolver. Identities keep their given order;
// the first matching alias wins.
func NewResolver(params ResolverParams) *Resolver {
	return &Resolver{
		identities: params.Identities,
		defaultID:  params.DefaultVendorID,
		logg:       params.Logger,
		metrics:    params.Metrics,
	}
}

// Resolve returns the vendor id for a raw name. fallback is true when
// the default vendor was used; those hits are logged for manual
// reconciliation.
func (r *Resolver) Resolve(ctx context.Context, rawName string) (string, bool) {
	normalized := NormalizeName(rawName)
	if normalized != "" {
		for _, identity := range r.identities {
			for _, alias := range identity.Aliases {
				if alias.matches(normalized) {
					return identity.ID, false
				}
			}
		}
	}

	r.metrics.IncVendorFallback()
	if r.logg != nil {
		fields := map[string]any{"raw_name": rawName, "default_vendor": r.defaultID}
		r.logg.Warn(r.logg.WithFields(ctx, fields), "vendor name did not match any alias")
	}
	return r.defaultID, true
}

func (a Alias) matches(normalized string) bool {
	pattern := NormalizeName(a.Pattern)
	if pattern == "" {
		return false
	}
	switch a.Kind {
	case enums.AliasKindExact:
		return normalized == pattern
	case enums.AliasKindPrefix:
		return strings.HasPrefix(normalized, pattern)
	case enums.AliasKindSubstring:
		return strings.Contains(normalized, pattern)
	default:
		return false
	}
}

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// NormalizeName lowercases, strips diacritics and collapses interior
// whitespace so "Sylvié " and "sylvie" compare equal.
func NormalizeName(raw string) string {
	stripped, _, err := transform.String(diacriticStripper, raw)
	if err != nil {
		stripped = raw
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
