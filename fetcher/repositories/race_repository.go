package repositories

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

// RaceRepository is the public interface for handling wager races and their
// completion snapshots.
type RaceRepository interface {
	CreateRace(ctx context.Context, race *models.WagerRace) error
	GetLiveRace(ctx context.Context, raceType string) (*models.WagerRace, error)
	GetRaceByTypeAndStart(ctx context.Context, raceType string, start time.Time) (*models.WagerRace, error)
	UpdateRaceStatus(ctx context.Context, raceID uint, status string) error
	CreateParticipantSnapshot(ctx context.Context, participant *models.RaceParticipant) error
	GetParticipantsByRaceID(ctx context.Context, raceID uint) ([]models.RaceParticipant, error)
}

// raceRepository is the repository instance.
type raceRepository struct {
	db *gorm.DB
}

// NewRaceRepository creates the race repository.
func NewRaceRepository(db *gorm.DB) RaceRepository {
	return &raceRepository{db: db}
}

// CreateRace inserts a new race row.
func (rr *raceRepository) CreateRace(ctx context.Context, race *models.WagerRace) error {
	if err := rr.db.WithContext(ctx).Create(race).Error; err != nil {
		return fmt.Errorf("couldn't create the race: %w", err)
	}
	return nil
}

// GetLiveRace returns the live race of the given type, or nil when none exists.
func (rr *raceRepository) GetLiveRace(ctx context.Context, raceType string) (*models.WagerRace, error) {
	var race models.WagerRace
	err := rr.db.WithContext(ctx).
		Where("type = ? AND status = ?", raceType, models.RaceStatusLive).
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

// GetRaceByTypeAndStart returns the race for one period, or nil when missing.
func (rr *raceRepository) GetRaceByTypeAndStart(ctx context.Context, raceType string, start time.Time) (*models.WagerRace, error) {
	var race models.WagerRace
	err := rr.db.WithContext(ctx).
		Where("type = ? AND start_date = ?", raceType, start).
		First(&race).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't get the race: %w", err)
	}
	return &race, nil
}

// UpdateRaceStatus moves a race to a new lifecycle status.
func (rr *raceRepository) UpdateRaceStatus(ctx context.Context, raceID uint, status string) error {
	return rr.db.WithContext(ctx).
		Model(&models.WagerRace{}).
		Where("id = ?", raceID).
		Update("status", status).Error
}

// CreateParticipantSnapshot writes one immutable final-standings row.
func (rr *raceRepository) CreateParticipantSnapshot(ctx context.Context, participant *models.RaceParticipant) error {
	if err := rr.db.WithContext(ctx).Create(participant).Error; err != nil {
		return fmt.Errorf("couldn't snapshot participant %s: %w", participant.UID, err)
	}
	return nil
}

// GetParticipantsByRaceID returns the snapshots ordered by final rank.
func (rr *raceRepository) GetParticipantsByRaceID(ctx context.Context, raceID uint) ([]models.RaceParticipant, error) {
	var participants []models.RaceParticipant
	err := rr.db.WithContext(ctx).
		Where("race_id = ?", raceID).
		Order("final_rank ASC").
		Find(&participants).Error

	if err != nil {
		return nil, fmt.Errorf("couldn't load the race participants: %w", err)
	}
	return participants, nil
}
