package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Aggregate groups a vendor's transactions into one bucket per session
// date and splits amounts by payment channel. Canceled transactions
// never count. A transaction on an unrecognized channel lands in card;
// the register's card terminal is the catch-all in practice, though
// whether that is policy or accident is an open product question.
//
// Channel sums round to the cent here, at the aggregate level;
// individual transaction amounts are never pre-rounded.
func Aggregate(transactions []ingest.Transaction, vendorID string, dates []time.Time) []DailyBucket {
	buckets := make([]DailyBucket, len(dates))
	for i, date := range dates {
		buckets[i] = DailyBucket{
			VendorID: vendorID,
			DayIndex: i,
			Date:     date,
			Cheque:   decimal.Zero,
			Card:     decimal.Zero,
			Cash:     decimal.Zero,
		}
	}

	for _, txn := range transactions {
		if txn.Canceled || txn.VendorID != vendorID {
			continue
		}
		idx, ok := dayIndexOf(txn.Timestamp, dates)
		if !ok {
			continue
		}
		bucket := &buckets[idx]
		switch txn.Channel {
		case enums.PaymentChannelCheque:
			bucket.Cheque = bucket.Cheque.Add(txn.TotalAmount)
			bucket.ChequeCount++
		case enums.PaymentChannelCash:
			bucket.Cash = bucket.Cash.Add(txn.TotalAmount)
		default:
			bucket.Card = bucket.Card.Add(txn.TotalAmount)
		}
	}

	for i := range buckets {
		buckets[i].Cheque = buckets[i].Cheque.Round(2)
		buckets[i].Card = buckets[i].Card.Round(2)
		buckets[i].Cash = buckets[i].Cash.Round(2)
	}
	return buckets
}

func dayIndexOf(ts time.Time, dates []time.Time) (int, bool) {
	ty, tm, td := ts.Date()
	for i, date := range dates {
		dy, dm, dd := date.Date()
		if ty == dy && tm == dm && td == dd {
			return i, true
		}
	}
	return 0, false
}
