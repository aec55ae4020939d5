package vendors

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julienmorel/caisse-backend/internal/repo"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Repository manages persistence for vendor configuration.
type Repository interface {
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	GetRule(ctx context.Context, vendorID string) (*models.CommissionRule, error)
	ListRules(ctx context.Context) ([]models.CommissionRule, error)
	UpsertRule(ctx context.Context, rule *models.CommissionRule) error
}

type repository struct {
	base repo.Base
}

// NewRepository returns a vendor repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	err := r.base.DB(ctx).
		Preload("Aliases", func(db *gorm.DB) *gorm.DB {
			return db.Order("priority ASC, id ASC")
		}).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) GetRule(ctx context.Context, vendorID string) (*models.CommissionRule, error) {
	var rule models.CommissionRule
	err := r.base.DB(ctx).
		Where("vendor_id = ?", vendorID).
		First(&rule).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *repository) ListRules(ctx context.Context) ([]models.CommissionRule, error) {
	var out []models.CommissionRule
	if err := r.base.DB(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpsertRule(ctx context.Context, rule *models.CommissionRule) error {
	return r.base.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vendor_id"}},
			UpdateAll: true,
		}).
		Create(rule).Error
}
