package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Override is one operator-entered cell correction. Uniqueness on the
// (vendor, day, field) triple gives last-write-wins at cell granularity.
type Override struct {
	ID        uint                `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID  string              `gorm:"column:vendor_id;not null;uniqueIndex:ux_overrides_cell,priority:1"`
	DayIndex  int                 `gorm:"column:day_index;not null;uniqueIndex:ux_overrides_cell,priority:2"`
	Field     enums.OverrideField `gorm:"column:field;not null;uniqueIndex:ux_overrides_cell,priority:3"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:numeric;not null"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
