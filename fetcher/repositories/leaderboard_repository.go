package repositories

import (
	"context"
	"fmt"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/wager"
	"time"

	"gorm.io/gorm"
)

// UpsertResult aggregates what one sync pass actually wrote.
type UpsertResult struct {
	Created int
	Updated int
	Skipped int
}

// Writes reports whether the pass touched any row.
func (r UpsertResult) Writes() int {
	return r.Created + r.Updated
}

// LeaderboardRepository is the public interface for the persisted leaderboard cache.
type LeaderboardRepository interface {
	GetAll(ctx context.Context) ([]models.LeaderboardUser, error)
	GetAllKeyedByUID(ctx context.Context) (map[string]*models.LeaderboardUser, error)
	UpsertChangedBatch(ctx context.Context, records []wager.Record, now time.Time) (UpsertResult, error)
}

// leaderboardRepository is the repository instance.
type leaderboardRepository struct {
	db *gorm.DB
}

// NewLeaderboardRepository creates the leaderboard cache repository.
func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

// GetAll returns every cached leaderboard row.
func (lr *leaderboardRepository) GetAll(ctx context.Context) ([]models.LeaderboardUser, error) {
	var users []models.LeaderboardUser
	if err := lr.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("couldn't load the leaderboard cache: %w", err)
	}
	return users, nil
}

// GetAllKeyedByUID returns the cache keyed by the external uid.
func (lr *leaderboardRepository) GetAllKeyedByUID(ctx context.Context) (map[string]*models.LeaderboardUser, error) {
	users, err := lr.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	keyed := make(map[string]*models.LeaderboardUser, len(users))
	for i := range users {
		keyed[users[i].UID] = &users[i]
	}
	return keyed, nil
}

// UpsertChangedBatch inserts first-sighted uids and updates rows whose wager
// fields actually differ. Unchanged rows are skipped entirely, including
// their last_synced timestamp, which makes a repeated sync with identical
// upstream data a true no-op.
func (lr *leaderboardRepository) UpsertChangedBatch(ctx context.Context, records []wager.Record, now time.Time) (UpsertResult, error) {
	var result UpsertResult
	if len(records) == 0 {
		return result, nil
	}

	existing, err := lr.GetAllKeyedByUID(ctx)
	if err != nil {
		return result, err
	}

	var toCreate []*models.LeaderboardUser
	for _, record := range records {
		// Rows are keyed by the external uid, anonymous entries can't be stored.
		if record.UID == "" {
			result.Skipped++
			continue
		}

		row, found := existing[record.UID]
		if !found {
			fresh := &models.LeaderboardUser{UID: record.UID}
			fresh.ApplyRecord(record, now)
			toCreate = append(toCreate, fresh)
			continue
		}

		if !row.NeedsUpdate(record) {
			result.Skipped++
			continue
		}

		row.ApplyRecord(record, now)
		if err := lr.db.WithContext(ctx).Save(row).Error; err != nil {
			return result, fmt.Errorf("couldn't update leaderboard user %s: %w", record.UID, err)
		}
		result.Updated++
	}

	if len(toCreate) > 0 {
		if err := lr.db.WithContext(ctx).CreateInBatches(&toCreate, 500).Error; err != nil {
			return result, fmt.Errorf("couldn't insert %d new leaderboard users: %w", len(toCreate), err)
		}
		result.Created = len(toCreate)
	}

	return result, nil
}
