package repositories

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/pkg/database/models"

	"gorm.io/gorm"
)

// RaceRepository is the read side of the race tables.
type RaceRepository interface {
	GetLiveRace(ctx context.Context) (*models.WagerRace, error)
	GetLatestCompletedRace(ctx context.Context) (*models.WagerRace, error)
	GetParticipantsByRaceID(ctx context.Context, raceID uint) ([]models.RaceParticipant, error)
}

type raceRepository struct {
	db *gorm.DB
}

// NewRaceRepository creates a new race repository.
func NewRaceRepository(db *gorm.DB) RaceRepository {
	return &raceRepository{db: db}
}

// GetLiveRace returns the currently live monthly race, nil when none is live.
func (rr *raceRepository) GetLiveRace(ctx context.Context) (*models.WagerRace, error) {
	var race models.WagerRace
	err := rr.db.WithContext(ctx).
		Where("type = ? AND status = ?", models.RaceTypeMonthly, models.RaceStatusLive).
		Order("start_date DESC").
		First(&race).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the live race: %w", err)
	}
	return &race, nil
}

// GetLatestCompletedRace returns the most recently finished monthly race.
func (rr *raceRepository) GetLatestCompletedRace(ctx context.Context) (*models.WagerRace, error) {
	var race models.WagerRace
	err := rr.db.WithContext(ctx).
		Where("type = ? AND status = ?", models.RaceTypeMonthly, models.RaceStatusCompleted).
		Order("end_date DESC").
		First(&race).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the latest completed race: %w", err)
	}
	return &race, nil
}

// GetParticipantsByRaceID returns the final standings of a completed race.
func (rr *raceRepository) GetParticipantsByRaceID(ctx context.Context, raceID uint) ([]models.RaceParticipant, error) {
	var participants []models.RaceParticipant
	err := rr.db.WithContext(ctx).
		Where("race_id = ?", raceID).
		Order("final_rank ASC").
		Find(&participants).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the participants for the race %d: %w", raceID, err)
	}
	return participants, nil
}
