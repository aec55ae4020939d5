package ingest

import (
	"testing"
	"time"
)

func TestCheckpointIsStrict(t *testing.T) {
	checkpoint := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	transactions := []Transaction{
		txn("at-checkpoint", checkpoint, 10),
		txn("after", checkpoint.Add(time.Millisecond), 20),
		txn("before", checkpoint.Add(-time.Second), 30),
	}

	got := FilterAfterCheckpoint(transactions, &checkpoint, nil)

	if len(got) != 1 {
		t.Fatalf("expected only the strictly-after transaction, got %d", len(got))
	}
	if got[0].ID != "after" {
		t.Fatalf("expected transaction after checkpoint, got %s", got[0].ID)
	}
}

func TestNoCheckpointPassesEverything(t *testing.T) {
	transactions := []Transaction{
		txn("a", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 1),
		txn("b", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 2),
	}

	got := FilterAfterCheckpoint(transactions, nil, nil)

	if len(got) != 2 {
		t.Fatalf("expected all transactions without a checkpoint, got %d", len(got))
	}
}

func TestWindowBoundsAreInclusive(t *testing.T) {
	start := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 16, 23, 59, 59, 0, time.UTC)
	window := &Window{Start: start, End: end}
	transactions := []Transaction{
		txn("on-start", start, 1),
		txn("on-end", end, 2),
		txn("before", start.Add(-time.Second), 3),
		txn("after", end.Add(time.Second), 4),
	}

	got := FilterAfterCheckpoint(transactions, nil, window)

	if len(got) != 2 {
		t.Fatalf("expected inclusive window bounds, got %d transactions", len(got))
	}
	if got[0].ID != "on-start" || got[1].ID != "on-end" {
		t.Fatalf("unexpected survivors: %v", got)
	}
}

func TestCheckpointAndWindowCompose(t *testing.T) {
	checkpoint := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	window := &Window{
		Start: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC),
	}
	transactions := []Transaction{
		txn("in-window-before-checkpoint", checkpoint.Add(-time.Hour), 1),
		txn("in-window-after-checkpoint", checkpoint.Add(time.Hour), 2),
		txn("after-checkpoint-out-of-window", checkpoint.Add(24*time.Hour), 3),
	}

	got := FilterAfterCheckpoint(transactions, &checkpoint, window)

	if len(got) != 1 || got[0].ID != "in-window-after-checkpoint" {
		t.Fatalf("expected only the in-window post-checkpoint transaction, got %v", got)
	}
}
