package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRule stores the tiered salary parameters for one vendor.
// Mutable during a session; rate edits never touch stored overrides.
type CommissionRule struct {
	VendorID     string          `gorm:"column:vendor_id;primaryKey"`
	RatePercent  decimal.Decimal `gorm:"column:rate_percent;type:numeric;not null"`
	Threshold    decimal.Decimal `gorm:"column:threshold;type:numeric;not null"`
	FixedFloor   decimal.Decimal `gorm:"column:fixed_floor;type:numeric;not null"`
	HousingFee   decimal.Decimal `gorm:"column:housing_fee;type:numeric;not null"`
	TransportFee decimal.Decimal `gorm:"column:transport_fee;type:numeric;not null"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
