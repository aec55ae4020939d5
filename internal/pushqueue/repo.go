package pushqueue

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

// Repository manages the durable queue rows.
type Repository interface {
	Insert(ctx context.Context, item *models.PushQueueItem) error
	ListPending(ctx context.Context) ([]models.PushQueueItem, error)
	Delete(ctx context.Context, idempotencyKey string) error
	RecordFailure(ctx context.Context, idempotencyKey string, attemptErr error, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a queue repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Insert adds an item unless its idempotency key is already queued.
// The conflict clause makes re-enqueue a no-op instead of an error.
func (r *repository) Insert(ctx context.Context, item *models.PushQueueItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *repository) ListPending(ctx context.Context) ([]models.PushQueueItem, error) {
	var out []models.PushQueueItem
	err := r.db.WithContext(ctx).
		Order("enqueued_at ASC, idempotency_key ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Delete(ctx context.Context, idempotencyKey string) error {
	return r.db.WithContext(ctx).
		Where("idempotency_key = ?", idempotencyKey).
		Delete(&models.PushQueueItem{}).Error
}

func (r *repository) RecordFailure(ctx context.Context, idempotencyKey string, attemptErr error, at time.Time) error {
	msg := attemptErr.Error()
	return r.db.WithContext(ctx).
		Model(&models.PushQueueItem{}).
		Where("idempotency_key = ?", idempotencyKey).
		Updates(map[string]any{
			"attempt_count":   gorm.Expr("attempt_count + 1"),
			"last_error":      msg,
			"last_attempt_at": at,
		}).Error
}

func (r *repository) Count(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PushQueueItem{}).
		Count(&count).Error
	return int(count), err
}
