package overrides

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Repository manages persistence for operator cell overrides.
type Repository interface {
	Upsert(ctx context.Context, override *models.Override) error
	Delete(ctx context.Context, key Key) error
	List(ctx context.Context) ([]models.Override, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an override repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert writes one cell. The conflict target is the full composite
// key, so concurrent edits to different cells never clobber each
// other; the same cell is last-write-wins.
func (r *repository) Upsert(ctx context.Context, override *models.Override) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "vendor_id"},
				{Name: "day_index"},
				{Name: "field"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(override).Error
}

func (r *repository) Delete(ctx context.Context, key Key) error {
	return r.db.WithContext(ctx).
		Where("vendor_id = ? AND day_index = ? AND field = ?", key.VendorID, key.DayIndex, key.Field).
		Delete(&models.Override{}).Error
}

func (r *repository) List(ctx context.Context) ([]models.Override, error) {
	var out []models.Override
	if err := r.db.WithContext(ctx).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
