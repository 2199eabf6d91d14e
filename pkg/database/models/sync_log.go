package models

import "time"

// Sync log entry types.
const (
	SyncLogSuccess = "sync_success"
	SyncLogPartial = "sync_partial"
	SyncLogFailure = "sync_failure"
	SyncLogEmpty   = "sync_empty"
	SyncLogRace    = "race_transition"
)

// SyncLog is an append-only record of one pipeline cycle. Diagnostic only,
// never read back into the pipeline's decision logic.
type SyncLog struct {
	ID uint `gorm:"primaryKey"`

	Type       string `gorm:"type:varchar(20);index"`
	Message    string
	DurationMs int64

	CreatedAt time.Time
}
