package repositories

import (
	"context"
	"fmt"
	"goatedvips/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// LeaderboardRepository is the read side of the persisted leaderboard cache.
type LeaderboardRepository interface {
	GetAllUsers(ctx context.Context) ([]models.LeaderboardUser, error)
	LastSynced(ctx context.Context) (time.Time, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates a new leaderboard repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// GetAllUsers returns every cached leaderboard row.
func (lr *leaderboardRepository) GetAllUsers(ctx context.Context) ([]models.LeaderboardUser, error) {
	var users []models.LeaderboardUser
	if err := lr.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("couldn't get the leaderboard users: %w", err)
	}
	return users, nil
}

// LastSynced returns the most recent sync timestamp across all rows.
func (lr *leaderboardRepository) LastSynced(ctx context.Context) (time.Time, error) {
	var last *time.Time
	err := lr.db.WithContext(ctx).
		Model(&models.LeaderboardUser{}).
		Select("MAX(last_synced)").
		Scan(&last).Error
	if err != nil {
		return time.Time{}, fmt.Errorf("couldn't get the last sync time: %w", err)
	}
	if last == nil {
		return time.Time{}, nil
	}
	return *last, nil
}
