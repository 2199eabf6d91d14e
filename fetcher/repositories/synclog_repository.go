package repositories

import (
	"context"
	"goatedvips/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// SyncLogRepository is the public interface for the append-only pipeline log.
type SyncLogRepository interface {
	Record(ctx context.Context, logType string, message string, duration time.Duration) error
}

// syncLogRepository is the repository instance.
type syncLogRepository struct {
	db *gorm.DB
}

// NewSyncLogRepository creates the sync log repository.
func NewSyncLogRepository(db *gorm.DB) SyncLogRepository {
	return &syncLogRepository{db: db}
}

// Record appends one cycle outcome. Diagnostic only, the pipeline never
// reads these rows back.
func (sr *syncLogRepository) Record(ctx context.Context, logType string, message string, duration time.Duration) error {
	entry := models.SyncLog{
		Type:       logType,
		Message:    message,
		DurationMs: duration.Milliseconds(),
	}
	return sr.db.WithContext(ctx).Create(&entry).Error
}
