package session

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

func day(dayOfMonth int) time.Time {
	return time.Date(2025, 9, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

func TestDatesBetweenExpandsInclusiveRange(t *testing.T) {
	dates := DatesBetween(day(5), day(8))
	if len(dates) != 4 {
		t.Fatalf("expected 4 dates, got %d", len(dates))
	}
	for i, d := range dates {
		if !d.Equal(day(5 + i)) {
			t.Fatalf("date %d: expected %v, got %v", i, day(5+i), d)
		}
	}
}

func TestDatesBetweenSingleDay(t *testing.T) {
	dates := DatesBetween(day(5), day(5))
	if len(dates) != 1 || !dates[0].Equal(day(5)) {
		t.Fatalf("expected [%v], got %v", day(5), dates)
	}
}

func TestDatesBetweenNormalizesTimestamps(t *testing.T) {
	start := time.Date(2025, 9, 5, 14, 30, 0, 0, time.UTC)
	end := time.Date(2025, 9, 6, 9, 0, 0, 0, time.UTC)
	dates := DatesBetween(start, end)
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
	if !dates[0].Equal(day(5)) || !dates[1].Equal(day(6)) {
		t.Fatalf("expected midnight dates, got %v", dates)
	}
}

func TestDatesBetweenInvertedRangeIsEmpty(t *testing.T) {
	if dates := DatesBetween(day(8), day(5)); dates != nil {
		t.Fatalf("expected nil for inverted range, got %v", dates)
	}
}

func TestWindowCoversFullLastDay(t *testing.T) {
	start, end := day(5), day(7)
	c := Context{Start: &start, End: &end}

	w := c.Window()
	if w == nil {
		t.Fatal("expected a window")
	}
	lastMoment := time.Date(2025, 9, 7, 23, 59, 59, 0, time.UTC)
	if !w.Contains(lastMoment) {
		t.Fatal("expected the last day to be included up to midnight")
	}
	if w.Contains(day(8)) {
		t.Fatal("expected the day after the range to be excluded")
	}
	if w.Contains(day(5).Add(-time.Second)) {
		t.Fatal("expected the moment before the range to be excluded")
	}
}

func TestWindowIsNilWithoutRange(t *testing.T) {
	start := day(5)
	if (Context{}).Window() != nil {
		t.Fatal("expected nil window for empty context")
	}
	if (Context{Start: &start}).Window() != nil {
		t.Fatal("expected nil window with only a start date")
	}
}

func TestDayIndexOfMatchesCalendarDay(t *testing.T) {
	c := Context{Dates: DatesBetween(day(5), day(7))}

	idx, ok := c.DayIndexOf(time.Date(2025, 9, 6, 18, 45, 0, 0, time.UTC))
	if !ok || idx != 1 {
		t.Fatalf("expected index 1, got %d (ok=%v)", idx, ok)
	}
	if _, ok := c.DayIndexOf(day(9)); ok {
		t.Fatal("expected a day outside the range to miss")
	}
}

func TestRuleForFallsBackToZeroRule(t *testing.T) {
	c := Context{Rules: map[string]models.CommissionRule{
		"sylvie": {VendorID: "sylvie", RatePercent: decimal.NewFromInt(17)},
	}}

	if got := c.RuleFor("sylvie"); !got.RatePercent.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected stored rule, got %+v", got)
	}
	zero := c.RuleFor("unknown")
	if zero.VendorID != "unknown" || !zero.RatePercent.IsZero() {
		t.Fatalf("expected zero rule for unknown vendor, got %+v", zero)
	}
}
