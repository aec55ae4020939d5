package models

import "time"

// Session is one operator working period (typically a market or a
// multi-day fair). Its date range drives the daily bucket layout.
type Session struct {
	ID        string     `gorm:"column:id;primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	StartDate *time.Time `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
	Active    bool       `gorm:"column:active;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

// Checkpoint records the last "remise à zéro" for a session. Only
// transactions strictly after ResetAt count toward current figures.
type Checkpoint struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	ResetAt   time.Time `gorm:"column:reset_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
