package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Snapshot is an archived copy of the fully computed vendor tables for
// one session stage. Re-archiving the same (session, tag) pair updates
// the row in place; the newest archive is always authoritative.
type Snapshot struct {
	ID           uuid.UUID          `gorm:"column:id;primaryKey"`
	SessionID    string             `gorm:"column:session_id;not null;uniqueIndex:ux_snapshots_session_tag,priority:1"`
	SessionName  string             `gorm:"column:session_name"`
	SessionStart *time.Time         `gorm:"column:session_start"`
	SessionEnd   *time.Time         `gorm:"column:session_end"`
	LifecycleTag enums.LifecycleTag `gorm:"column:lifecycle_tag;not null;uniqueIndex:ux_snapshots_session_tag,priority:2"`
	ArchivedAt   time.Time          `gorm:"column:archived_at;not null"`
	Tables       json.RawMessage    `gorm:"column:tables;not null"`
}
