package models

import (
	"encoding/json"
	"time"
)

// PushQueueItem is one buffered daily-summary payload awaiting delivery.
// The idempotency key is the primary key, so a second enqueue of the
// same key cannot create a duplicate row. Delivered items are deleted.
type PushQueueItem struct {
	IdempotencyKey string          `gorm:"column:idempotency_key;primaryKey"`
	Payload        json.RawMessage `gorm:"column:payload;not null"`
	EnqueuedAt     time.Time       `gorm:"column:enqueued_at;not null"`
	AttemptCount   int             `gorm:"column:attempt_count;not null;default:0"`
	LastError      *string         `gorm:"column:last_error"`
	LastAttemptAt  *time.Time      `gorm:"column:last_attempt_at"`
}
