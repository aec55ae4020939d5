package snapshots

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Repository manages persistence for archived vendor tables.
type Repository interface {
	Upsert(ctx context.Context, snapshot *models.Snapshot) error
	FindBySessionAndTag(ctx context.Context, sessionID string, tag enums.LifecycleTag) (*models.Snapshot, error)
	ListBySession(ctx context.Context, sessionID string) ([]models.Snapshot, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a snapshot repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert archives a snapshot. Re-archiving the same (session, tag)
// pair updates the existing row rather than inserting a second one,
// so retrieval never has to disambiguate duplicates.
func (r *repository) Upsert(ctx context.Context, snapshot *models.Snapshot) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "session_id"},
				{Name: "lifecycle_tag"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"session_name", "session_start", "session_end", "archived_at", "tables",
			}),
		}).
		Create(snapshot).Error
}

func (r *repository) FindBySessionAndTag(ctx context.Context, sessionID string, tag enums.LifecycleTag) (*models.Snapshot, error) {
	var snapshot models.Snapshot
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND lifecycle_tag = ?", sessionID, tag).
		Order("archived_at DESC").
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID string) ([]models.Snapshot, error) {
	var out []models.Snapshot
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("archived_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
