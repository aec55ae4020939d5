package models

import (
	"time"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Vendor is a canonical salesperson identity configured for the shop.
type Vendor struct {
	ID            string    `gorm:"column:id;primaryKey"`
	CanonicalName string    `gorm:"column:canonical_name;not null"`
	IsManager     bool      `gorm:"column:is_manager;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`

	Aliases []VendorAlias `gorm:"foreignKey:VendorID"`
}

// VendorAlias is one matcher in a vendor's ordered alias list. Lower
// priority values are tested first; the first match wins.
type VendorAlias struct {
	ID       uint            `gorm:"column:id;primaryKey;autoIncrement"`
	VendorID string          `gorm:"column:vendor_id;not null;index"`
	Pattern  string          `gorm:"column:pattern;not null"`
	Kind     enums.AliasKind `gorm:"column:kind;not null"`
	Priority int             `gorm:"column:priority;not null;default:0"`
}

// TableName overrides the default pluralization.
func (VendorAlias) TableName() string {
	return "vendor_aliases"
}
