package raceservice

import (
	"context"
	"fmt"
	"goatedvips/fetcher/repositories"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/races"
	"goatedvips/pkg/wager"
	"log"
	"time"
)

// RaceService manages the monthly race lifecycle: making sure a live race
// exists for the current calendar window and completing it at month end.
type RaceService struct {
	RaceRepository repositories.RaceRepository

	raceConfig config.RaceConfig

	// Injectable for deterministic window tests.
	now func() time.Time
}

// TransitionResult describes what one completion pass did.
type TransitionResult struct {
	CompletedRaceID uint
	Snapshots       int
	Failed          int
	NextRaceID      uint
}

// NewRaceService creates a new race service.
func NewRaceService(raceRepo repositories.RaceRepository, raceConfig config.RaceConfig) *RaceService {
	return &RaceService{
		RaceRepository: raceRepo,
		raceConfig:     raceConfig,
		now:            time.Now,
	}
}

// EnsureLiveRace returns the live monthly race, promoting or creating one for
// the current calendar window when none is live yet.
func (rs *RaceService) EnsureLiveRace(ctx context.Context) (*models.WagerRace, error) {
	live, err := rs.RaceRepository.GetLiveRace(ctx, models.RaceTypeMonthly)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the live race: %w", err)
	}
	if live != nil {
		return live, nil
	}

	window := races.CurrentMonthly(rs.now())

	existing, err := rs.RaceRepository.GetRaceByTypeAndStart(ctx, models.RaceTypeMonthly, window.Start)
	if err != nil {
		return nil, fmt.Errorf("couldn't look up the race for the current window: %w", err)
	}

	if existing != nil {
		if existing.Status == models.RaceStatusCompleted {
			return existing, nil
		}
		if err := rs.RaceRepository.UpdateRaceStatus(ctx, existing.ID, models.RaceStatusLive); err != nil {
			return nil, fmt.Errorf("couldn't promote the upcoming race: %w", err)
		}
		existing.Status = models.RaceStatusLive
		return existing, nil
	}

	race := rs.newMonthlyRace(window, models.RaceStatusLive)
	if err := rs.RaceRepository.CreateRace(ctx, race); err != nil {
		return nil, fmt.Errorf("couldn't create the race for the current window: %w", err)
	}
	return race, nil
}

// CompleteCurrentRace closes the live monthly race: flips it to completed,
// snapshots the top standings with their prizes, then creates the next
// window's race. A failed participant snapshot is logged and skipped so one
// bad row never loses the rest of the standings.
func (rs *RaceService) CompleteCurrentRace(ctx context.Context, records []wager.Record) (*TransitionResult, error) {
	live, err := rs.RaceRepository.GetLiveRace(ctx, models.RaceTypeMonthly)
	if err != nil {
		return nil, fmt.Errorf("couldn't get the live race: %w", err)
	}
	if live == nil {
		return nil, nil
	}

	if err := rs.RaceRepository.UpdateRaceStatus(ctx, live.ID, models.RaceStatusCompleted); err != nil {
		return nil, fmt.Errorf("couldn't complete the race %d: %w", live.ID, err)
	}

	result := &TransitionResult{CompletedRaceID: live.ID}

	ranked := wager.Rank(records, wager.PeriodThisMonth)
	for _, entry := range ranked {
		if entry.Rank > rs.raceConfig.TopN {
			break
		}

		participant := &models.RaceParticipant{
			RaceID:         live.ID,
			UID:            entry.UID,
			Name:           entry.Name,
			FinalRank:      entry.Rank,
			WageredAmount:  entry.Wagered.ThisMonth,
			PrizeWonAmount: live.PrizeForRank(entry.Rank),
		}

		if err := rs.RaceRepository.CreateParticipantSnapshot(ctx, participant); err != nil {
			log.Printf("Couldn't snapshot the participant %s for the race %d: %v", entry.UID, live.ID, err)
			result.Failed++
			continue
		}
		result.Snapshots++
	}

	next := rs.newMonthlyRace(races.NextMonthly(rs.now()), models.RaceStatusUpcoming)
	if err := rs.RaceRepository.CreateRace(ctx, next); err != nil {
		return result, fmt.Errorf("couldn't create the next race: %w", err)
	}
	result.NextRaceID = next.ID

	return result, nil
}

// newMonthlyRace builds a race for the given window with the default prizes.
func (rs *RaceService) newMonthlyRace(window races.Window, status string) *models.WagerRace {
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
