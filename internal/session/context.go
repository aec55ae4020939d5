package session

import (
	"time"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Context carries everything one pipeline run needs: the session
// window, the reset checkpoint, commission rules and the override set.
// It is built once per run and passed explicitly; computation code
// never reads ambient state.
type Context struct {
	SessionID   string
	SessionName string
	Start       *time.Time
	End         *time.Time
	Dates       []time.Time
	Checkpoint  *time.Time
	Rules       map[string]models.CommissionRule
	Names       map[string]string
	Overrides   overrides.Set
}

// NameFor returns the vendor's canonical display name, falling back
// to the id when the vendor is not in the registry.
func (c Context) NameFor(vendorID string) string {
	if name, ok := c.Names[vendorID]; ok && name != "" {
		return name
	}
	return vendorID
}

// Window returns the inclusive session window, or nil when the
// session has no configured range.
func (c Context) Window() *ingest.Window {
	if c.Start == nil || c.End == nil {
		return nil
	}
	start := startOfDay(*c.Start)
	end := startOfDay(*c.End).Add(24*time.Hour - time.Nanosecond)
	return &ingest.Window{Start: start, End: end}
}

// DayIndexOf returns the zero-based position of ts's calendar day in
// the session range, or false when it falls outside.
func (c Context) DayIndexOf(ts time.Time) (int, bool) {
	for i, date := range c.Dates {
		if sameDay(ts, date) {
			return i, true
		}
	}
	return 0, false
}

// RuleFor returns the commission rule for a vendor, or a zero rule
// when none is configured.
func (c Context) RuleFor(vendorID string) models.CommissionRule {
	if rule, ok := c.Rules[vendorID]; ok {
		return rule
	}
	return models.CommissionRule{VendorID: vendorID}
}

// DatesBetween expands an inclusive date range into one entry per
// calendar day, normalized to midnight.
func DatesBetween(start, end time.Time) []time.Time {
	first := startOfDay(start)
	last := startOfDay(end)
	if last.Before(first) {
		return nil
	}
	var out []time.Time
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

func startOfDay(ts time.Time) time.Time {
	year, month, day := ts.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, ts.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
