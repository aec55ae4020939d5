package pushqueue

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/internal/recon"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

const dayFormat = "2006-01-02"

// RulesPayload mirrors the reporting endpoint's rule object.
type RulesPayload struct {
	Rate         decimal.Decimal `json:"rate"`
	Threshold    decimal.Decimal `json:"threshold"`
	FixedIfUnder decimal.Decimal `json:"fixedIfUnder"`
	Transport    decimal.Decimal `json:"transport"`
	Housing      decimal.Decimal `json:"housing"`
}

// LinePayload is one computed daily bucket.
type LinePayload struct {
	Date   string          `json:"date"`
	Cheque decimal.Decimal `json:"cheque"`
	Card   decimal.Decimal `json:"card"`
	Cash   decimal.Decimal `json:"cash"`
	Total  decimal.Decimal `json:"total"`
	Salary decimal.Decimal `json:"salary"`
}

// SalePayload is one underlying sale line.
type SalePayload struct {
	Date        string          `json:"date"`
	Product     string          `json:"product,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Payment     string          `json:"payment"`
	ChecksCount int             `json:"checksCount"`
	CheckAmount decimal.Decimal `json:"checkAmount"`
}

// VendorPayload is one vendor's slice of the daily summary.
type VendorPayload struct {
	Name  string        `json:"name"`
	Rules RulesPayload  `json:"rules"`
	Lines []LinePayload `json:"lines"`
	Sales []SalePayload `json:"sales"`
}

// SyncPayload is the envelope delivered to the reporting endpoint.
type SyncPayload struct {
	SessionID      string          `json:"sessionId"`
	Date           string          `json:"date"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Vendors        []VendorPayload `json:"vendors"`
}

// IdempotencyKey derives the deterministic delivery key for one
// session day. Same session, same day, same key, always.
func IdempotencyKey(sessionID string, day time.Time) string {
	return sessionID + "_" + day.Format(dayFormat)
}

// BuildSyncPayload assembles the summary for one session day from the
// computed tables.
func BuildSyncPayload(sctx session.Context, tables []recon.VendorTable, day time.Time) SyncPayload {
	payload := SyncPayload{
		SessionID:      sctx.SessionID,
		Date:           day.Format(dayFormat),
		IdempotencyKey: IdempotencyKey(sctx.SessionID, day),
	}

	for _, table := range tables {
		vendor := VendorPayload{
			Name: table.VendorName,
			Rules: RulesPayload{
				Rate:         table.Rule.RatePercent,
				Threshold:    table.Rule.Threshold,
				FixedIfUnder: table.Rule.FixedFloor,
				Transport:    table.Rule.TransportFee,
				Housing:      table.Rule.HousingFee,
			},
		}
		for _, bucket := range table.Buckets {
			vendor.Lines = append(vendor.Lines, LinePayload{
				Date:   bucket.Date.Format(dayFormat),
				Cheque: bucket.Cheque,
				Card:   bucket.Card,
				Cash:   bucket.Cash,
				Total:  bucket.Total,
				Salary: bucket.Salary,
			})
		}
		for _, sale := range table.Sales {
			line := SalePayload{
				Date:    sale.Date.Format(dayFormat),
				Product: sale.Label,
				Amount:  sale.Amount,
				Payment: sale.Channel.String(),
			}
			if sale.Channel == enums.PaymentChannelCheque {
				line.ChecksCount = 1
				line.CheckAmount = sale.Amount
			}
			vendor.Sales = append(vendor.Sales, line)
		}
		payload.Vendors = append(payload.Vendors, vendor)
	}
	return payload
}
