package raceservice

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/api/dto"
	"goatedvips/api/repositories"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/races"
	"goatedvips/pkg/wager"
	"strconv"
	"time"
)

// ErrParticipantNotFound is returned when a uid has no standing in the race.
var ErrParticipantNotFound = errors.New("participant not found in the current race")

// RaceService serves the race endpoints. When no race row exists yet it
// synthesizes one from the calendar window and the configured defaults, so
// clients always get a usable payload.
type RaceService struct {
	RaceRepository        repositories.RaceRepository
	LeaderboardRepository repositories.LeaderboardRepository

	raceConfig config.RaceConfig

	// Injectable for deterministic window tests.
	now func() time.Time
}

// RaceServiceDeps are the dependencies to create the service.
type RaceServiceDeps struct {
	RaceRepo        repositories.RaceRepository
	LeaderboardRepo repositories.LeaderboardRepository
	RaceConfig      config.RaceConfig
}

// NewRaceService creates a service for serving the races.
func NewRaceService(deps *RaceServiceDeps) *RaceService {
	return &RaceService{
		RaceRepository:        deps.RaceRepo,
		LeaderboardRepository: deps.LeaderboardRepo,
		raceConfig:            deps.RaceConfig,
		now:                   time.Now,
	}
}

// GetCurrentRace returns the live race with its standings built from the
// monthly leaderboard.
func (rs *RaceService) GetCurrentRace(ctx context.Context) (*dto.RaceResponse, error) {
	race, err := rs.RaceRepository.GetLiveRace(ctx)
	if err != nil {
		return nil, err
	}
	if race == nil {
		race = rs.fallbackRace(races.CurrentMonthly(rs.now()), models.RaceStatusLive)
	}

	standings, err := rs.currentStandings(ctx, race)
	if err != nil {
		return nil, err
	}

	response := rs.toResponse(race)
	response.Participants = standings
	return response, nil
}

// GetPreviousRace returns the last completed race with its frozen standings.
func (rs *RaceService) GetPreviousRace(ctx context.Context) (*dto.RaceResponse, error) {
	race, err := rs.RaceRepository.GetLatestCompletedRace(ctx)
	if err != nil {
		return nil, err
	}
	if race == nil {
		fallback := rs.fallbackRace(races.PreviousMonthly(rs.now()), models.RaceStatusCompleted)
		return rs.toResponse(fallback), nil
	}

	participants, err := rs.RaceRepository.GetParticipantsByRaceID(ctx, race.ID)
	if err != nil {
		return nil, err
	}

	response := rs.toResponse(race)
	for _, p := range participants {
		response.Participants = append(response.Participants, dto.RaceParticipantEntry{
			UID:      p.UID,
			Name:     p.Name,
			Position: p.FinalRank,
			Wagered:  p.WageredAmount,
			Prize:    p.PrizeWonAmount,
		})
	}
	return response, nil
}

// GetPosition returns one user's standing inside the live race.
func (rs *RaceService) GetPosition(ctx context.Context, uid string) (*dto.RacePositionResponse, error) {
	race, err := rs.RaceRepository.GetLiveRace(ctx)
	if err != nil {
		return nil, err
	}
	if race == nil {
		race = rs.fallbackRace(races.CurrentMonthly(rs.now()), models.RaceStatusLive)
	}

	records, err := rs.monthlyRecords(ctx)
	if err != nil {
		return nil, err
	}

	for _, entry := range wager.Rank(records, wager.PeriodThisMonth) {
		if entry.UID != uid {
			continue
		}

		prize := race.PrizeForRank(entry.Rank)
		return &dto.RacePositionResponse{
			RaceID:          raceID(race),
			RaceType:        race.Type,
			UID:             entry.UID,
			Name:            entry.Name,
			Position:        entry.Rank,
			WagerAmount:     entry.Wagered.ThisMonth,
			ProjectedPrize:  prize,
			InMoney:         prize > 0,
			EndDate:         race.EndDate,
			ParticipantsLen: len(records),
		}, nil
	}

	return nil, ErrParticipantNotFound
}

// currentStandings ranks the monthly leaderboard and prices the top slots.
func (rs *RaceService) currentStandings(ctx context.Context, race *models.WagerRace) ([]dto.RaceParticipantEntry, error) {
	records, err := rs.monthlyRecords(ctx)
	if err != nil {
		return nil, err
	}

	var standings []dto.RaceParticipantEntry
	for _, entry := range wager.Rank(records, wager.PeriodThisMonth) {
		if entry.Rank > rs.raceConfig.TopN {
			break
		}
		standings = append(standings, dto.RaceParticipantEntry{
			UID:      entry.UID,
			Name:     entry.Name,
			Position: entry.Rank,
			Wagered:  entry.Wagered.ThisMonth,
			Prize:    race.PrizeForRank(entry.Rank),
		})
	}
	return standings, nil
}

func (rs *RaceService) monthlyRecords(ctx context.Context) ([]wager.Record, error) {
	users, err := rs.LeaderboardRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]wager.Record, len(users))
	for i := range users {
		records[i] = users[i].ToRecord()
	}
	return records, nil
}

// fallbackRace builds an in-memory race for the window when no row exists.
func (rs *RaceService) fallbackRace(window races.Window, status string) *models.WagerRace {
	return &models.WagerRace{
		Type:              models.RaceTypeMonthly,
		Status:            status,
		PrizePool:         rs.raceConfig.DefaultPrizePool,
		DistributionType:  models.DistributionPercent,
		PrizeDistribution: models.DefaultPrizeDistribution,
		StartDate:         window.Start,
		EndDate:           window.End,
	}
}

func (rs *RaceService) toResponse(race *models.WagerRace) *dto.RaceResponse {
	return &dto.RaceResponse{
		ID:        raceID(race),
		Status:    race.Status,
		StartDate: race.StartDate,
		EndDate:   race.EndDate,
		PrizePool: race.PrizePool,
		Metadata:  dto.RaceMetadata{PrizeDistribution: distributionMetadata(race)},
	}
}

// distributionMetadata exposes the prize table with the rank keys as the
// strings clients got from the original JSON payloads.
func distributionMetadata(race *models.WagerRace) map[string]float64 {
	distribution := race.DistributionMap()
	metadata := make(map[string]float64, len(distribution))
	for rank, share := range distribution {
		metadata[strconv.Itoa(rank)] = share
	}
	return metadata
}

// raceID derives a stable client-facing identifier from the race window.
func raceID(race *models.WagerRace) string {
	return fmt.Sprintf("%s-%d%02d", race.Type, race.StartDate.Year(), int(race.StartDate.Month()))
}
