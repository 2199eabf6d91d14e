package profileservice

import (
	"context"
	"fmt"
	"goatedvips/fetcher/repositories"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/wager"
	"log"

	"github.com/google/uuid"
)

// ProfileService mirrors the adjusted leaderboard onto local user accounts.
type ProfileService struct {
	UserRepository repositories.UserRepository
}

// SyncResult aggregates what one profile pass did.
type SyncResult struct {
	Created  int
	Updated  int
	Existing int
	Failed   int
}

// NewProfileService creates a new profile service.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{
		UserRepository: userRepo,
	}
}

// SyncProfiles reconciles each ranked record against the users table.
// Missing users are created as externally linked placeholder accounts with a
// random secret, so they can never authenticate until a real signup claims
// them. A single bad record never aborts the pass.
func (p *ProfileService) SyncProfiles(ctx context.Context, records []wager.Record) (SyncResult, error) {
	var result SyncResult
	if len(records) == 0 {
		return result, nil
	}

	ranks := rankAllPeriods(records)

	var uids []string
	for _, record := range records {
		if record.UID != "" {
			uids = append(uids, record.UID)
		}
	}

	existing, err := p.UserRepository.GetUsersByGoatedUIDs(ctx, uids)
	if err != nil {
		return result, fmt.Errorf("couldn't load the users for the profile sync: %w", err)
	}

	for _, record := range records {
		if record.UID == "" {
			continue
		}

		periodRanks := ranks[record.UID]
		user, found := existing[record.UID]
		if !found {
			user = &models.User{
				GoatedUID:         record.UID,
				ExternallyLinked:  true,
				PlaceholderSecret: uuid.NewString(),
			}
			user.ApplyRecord(record, periodRanks)

			if err := p.UserRepository.CreateUser(ctx, user); err != nil {
				log.Printf("Couldn't create the profile for %s: %v", record.UID, err)
				result.Failed++
				continue
			}
			result.Created++
			continue
		}

		if !user.NeedsUpdate(record, periodRanks) {
			result.Existing++
			continue
		}

		user.ApplyRecord(record, periodRanks)
		if err := p.UserRepository.SaveUser(ctx, user); err != nil {
			log.Printf("Couldn't update the profile for %s: %v", record.UID, err)
			result.Failed++
			continue
		}
		result.Updated++
	}

	return result, nil
}

// rankAllPeriods resolves each user's competition rank in all four windows.
func rankAllPeriods(records []wager.Record) map[string]models.PeriodRanks {
	daily := wager.RankPositions(records, wager.PeriodToday)
	weekly := wager.RankPositions(records, wager.PeriodThisWeek)
	monthly := wager.RankPositions(records, wager.PeriodThisMonth)
	allTime := wager.RankPositions(records, wager.PeriodAllTime)

	ranks := make(map[string]models.PeriodRanks, len(records))
	for _, record := range records {
		if record.UID == "" {
			continue
		}
		ranks[record.UID] = models.PeriodRanks{
			Daily:   daily[record.UID],
			Weekly:  weekly[record.UID],
			Monthly: monthly[record.UID],
			AllTime: allTime[record.UID],
		}
	}
	return ranks
}
