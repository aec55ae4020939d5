package ingest

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

func txn(id string, ts time.Time, amount float64) Transaction {
	return Transaction{
		ID:          id,
		Timestamp:   ts,
		TotalAmount: decimal.NewFromFloat(amount),
		Channel:     enums.PaymentChannelCard,
	}
}

func TestMergeSyncedBeatsLocal(t *testing.T) {
	base := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	local := []Transaction{txn("t1", base, 100)}
	synced := []Transaction{txn("t1", base, 120)}

	result := Merge(local, synced, nil)

	if len(result.Transactions) != 1 {
		t.Fatalf("expected one survivor, got %d", len(result.Transactions))
	}
	got := result.Transactions[0]
	if !got.TotalAmount.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected synced amount to win, got %s", got.TotalAmount)
	}
	if got.Origin != enums.SourceOriginSynced {
		t.Fatalf("expected synced origin, got %s", got.Origin)
	}
	if result.DuplicatesDropped != 1 {
		t.Fatalf("expected one duplicate drop, got %d", result.DuplicatesDropped)
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	base := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	local := []Transaction{txn("a", base, 10), txn("b", base.Add(time.Minute), 20)}
	synced := []Transaction{txn("b", base.Add(time.Minute), 25)}
	external := []Transaction{txn("INV-1", base.Add(2*time.Minute), 30)}

	first := Merge(local, synced, external)
	second := Merge(first.Transactions, synced, external)

	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("merge not idempotent: %d vs %d", len(first.Transactions), len(second.Transactions))
	}
	ids := map[string]int{}
	for _, tx := range second.Transactions {
		ids[tx.ID]++
	}
	for id, count := range ids {
		if count != 1 {
			t.Fatalf("id %s appears %d times after re-merge", id, count)
		}
	}
}

func TestMergeOrdersByTimestampThenID(t *testing.T) {
	base := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	local := []Transaction{txn("z", base, 1), txn("a", base, 2)}
	external := []Transaction{txn("m", base.Add(-time.Hour), 3)}

	result := Merge(local, nil, external)

	gotIDs := make([]string, 0, len(result.Transactions))
	for _, tx := range result.Transactions {
		gotIDs = append(gotIDs, tx.ID)
	}
	want := []string{"m", "a", "z"}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("unexpected order %v, want %v", gotIDs, want)
		}
	}
}

func TestMergeExternalSameIDNotDuplicated(t *testing.T) {
	base := time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	synced := []Transaction{txn("x", base, 10)}
	external := []Transaction{txn("x", base, 99)}

	result := Merge(nil, synced, external)

	if len(result.Transactions) != 1 {
		t.Fatalf("expected dedup across namespaces on identical id, got %d rows", len(result.Transactions))
	}
}
