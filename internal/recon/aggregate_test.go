package recon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

func day(dayOfJune int) time.Time {
	return time.Date(2025, 6, dayOfJune, 0, 0, 0, 0, time.UTC)
}

func sale(id string, dayOfJune int, amount float64, channel enums.PaymentChannel) ingest.Transaction {
	return ingest.Transaction{
		ID:          id,
		VendorID:    "sylvie",
		Timestamp:   time.Date(2025, 6, dayOfJune, 14, 30, 0, 0, time.UTC),
		TotalAmount: decimal.NewFromFloat(amount),
		Channel:     channel,
	}
}

func TestAggregateSplitsByChannelAndDay(t *testing.T) {
	dates := []time.Time{day(14), day(15)}
	transactions := []ingest.Transaction{
		sale("a", 14, 100, enums.PaymentChannelCheque),
		sale("b", 14, 250, enums.PaymentChannelCard),
		sale("c", 14, 50, enums.PaymentChannelCash),
		sale("d", 15, 300, enums.PaymentChannelCard),
	}

	buckets := Aggregate(transactions, "sylvie", dates)

	if len(buckets) != 2 {
		t.Fatalf("expected one bucket per session date, got %d", len(buckets))
	}
	first := buckets[0]
	if !first.Cheque.Equal(decimal.NewFromInt(100)) || !first.Card.Equal(decimal.NewFromInt(250)) || !first.Cash.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected day-one channels: %+v", first)
	}
	if first.ChequeCount != 1 {
		t.Fatalf("expected one cheque counted, got %d", first.ChequeCount)
	}
	if !buckets[1].Card.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected day-two card sum: %s", buckets[1].Card)
	}
}

func TestAggregateUnknownChannelGoesToCard(t *testing.T) {
	dates := []time.Time{day(14)}
	transactions := []ingest.Transaction{
		sale("a", 14, 80, enums.PaymentChannelOther),
	}

	buckets := Aggregate(transactions, "sylvie", dates)

	if !buckets[0].Card.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unrecognized channel must be attributed to card, got card=%s", buckets[0].Card)
	}
	if !buckets[0].Cheque.IsZero() || !buckets[0].Cash.IsZero() {
		t.Fatalf("other channels must stay zero: %+v", buckets[0])
	}
}

func TestAggregateExcludesCanceledAndOtherVendors(t *testing.T) {
	dates := []time.Time{day(14)}
	canceled := sale("a", 14, 500, enums.PaymentChannelCard)
	canceled.Canceled = true
	otherVendor := sale("b", 14, 200, enums.PaymentChannelCard)
	otherVendor.VendorID = "marc"
	transactions := []ingest.Transaction{canceled, otherVendor, sale("c", 14, 90, enums.PaymentChannelCard)}

	buckets := Aggregate(transactions, "sylvie", dates)

	if !buckets[0].Card.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("canceled and foreign transactions must not count, got %s", buckets[0].Card)
	}
}

func TestAggregateRoundsSumsNotLines(t *testing.T) {
	dates := []time.Time{day(14)}
	transactions := []ingest.Transaction{
		sale("a", 14, 10.004, enums.PaymentChannelCash),
		sale("b", 14, 10.004, enums.PaymentChannelCash),
	}

	buckets := Aggregate(transactions, "sylvie", dates)

	// Per-line rounding would give 10.00 + 10.00 = 20.00; summing
	// first gives 20.008, which rounds to 20.01.
	if !buckets[0].Cash.Equal(decimal.NewFromFloat(20.01)) {
		t.Fatalf("amounts must only round at the aggregate, got %s", buckets[0].Cash)
	}
}

func TestAggregateIgnoresTransactionsOutsideDates(t *testing.T) {
	dates := []time.Time{day(14)}
	transactions := []ingest.Transaction{sale("a", 20, 999, enums.PaymentChannelCard)}

	buckets := Aggregate(transactions, "sylvie", dates)

	if !buckets[0].Card.IsZero() {
		t.Fatalf("out-of-range transaction leaked into bucket: %s", buckets[0].Card)
	}
}
