package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// DailyBucket is the per-vendor, per-day aggregate the commission
// calculation runs on. Total always equals cheque+card+cash as
// currently in effect, never a stored figure of its own.
type DailyBucket struct {
	VendorID       string          `json:"vendor_id"`
	DayIndex       int             `json:"day_index"`
	Date           time.Time       `json:"date"`
	Cheque         decimal.Decimal `json:"cheque"`
	Card           decimal.Decimal `json:"card"`
	Cash           decimal.Decimal `json:"cash"`
	Total          decimal.Decimal `json:"total"`
	AboveThreshold bool            `json:"above_threshold"`
	Salary         decimal.Decimal `json:"salary"`
	ChequeCount    int             `json:"cheque_count"`
}

// SaleLine is one merged transaction attributed to a vendor, carried
// alongside the buckets for the daily summary payload.
type SaleLine struct {
	Date    time.Time            `json:"date"`
	Label   string               `json:"label,omitempty"`
	Amount  decimal.Decimal      `json:"amount"`
	Channel enums.PaymentChannel `json:"channel"`
}

// VendorTable is the fully computed sheet for one vendor: the rule in
// effect, one bucket per session day, and the underlying sale lines.
type VendorTable struct {
	VendorID   string                `json:"vendor_id"`
	VendorName string                `json:"vendor_name"`
	Rule       models.CommissionRule `json:"rule"`
	Buckets    []DailyBucket         `json:"buckets"`
	Sales      []SaleLine            `json:"sales"`
}
