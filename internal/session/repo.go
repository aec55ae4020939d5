package session

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Repository manages persistence for sessions and their reset checkpoints.
type Repository interface {
	GetActive(ctx context.Context) (*models.Session, error)
	Upsert(ctx context.Context, session *models.Session) error
	GetCheckpoint(ctx context.Context, sessionID string) (*models.Checkpoint, error)
	SetCheckpoint(ctx context.Context, sessionID string, resetAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a session repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetActive(ctx context.Context) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) Upsert(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(session).Error
}

func (r *repository) GetCheckpoint(ctx context.Context, sessionID string) (*models.Checkpoint, error) {
	var checkpoint models.Checkpoint
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&checkpoint).Error
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}

func (r *repository) SetCheckpoint(ctx context.Context, sessionID string, resetAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"reset_at", "updated_at"}),
		}).
		Create(&models.Checkpoint{SessionID: sessionID, ResetAt: resetAt}).Error
}
