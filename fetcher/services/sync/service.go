package syncservice

import (
	"context"
	"errors"
	"fmt"
	"goatedvips/fetcher/goated"
	"goatedvips/fetcher/repositories"
	profileservice "goatedvips/fetcher/services/profile"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/messages"
	"goatedvips/pkg/wager"
	"log"
	"sync"
	"time"
)

// ErrSyncInProgress is returned when a cycle is already running.
var ErrSyncInProgress = errors.New(messages.SyncInProgress)

// ReferralFetcher is the external API surface the sync needs.
type ReferralFetcher interface {
	FetchReferralData(ctx context.Context, forceFresh bool) (*goated.APIResponse, error)
}

// RecordAdjuster applies overrides and the rank boost to a fetched dataset.
type RecordAdjuster interface {
	Apply(ctx context.Context, records []wager.Record) ([]wager.Record, error)
}

// ProfileSyncer mirrors the adjusted records onto user accounts.
type ProfileSyncer interface {
	SyncProfiles(ctx context.Context, records []wager.Record) (profileservice.SyncResult, error)
}

// EventPublisher notifies subscribers after a cycle wrote changes.
type EventPublisher interface {
	PublishLeaderboardUpdate(ctx context.Context, totalUsers int, updatedAt time.Time) error
}

// SyncService runs the full leaderboard cycle: fetch, extract, adjust,
// persist, mirror profiles, publish. Only one cycle runs at a time.
type SyncService struct {
	fetcher   ReferralFetcher
	adjuster  RecordAdjuster
	profiles  ProfileSyncer
	publisher EventPublisher

	LeaderboardRepository repositories.LeaderboardRepository
	SyncLogRepository     repositories.SyncLogRepository

	// Injectable for deterministic timing tests.
	now func() time.Time

	running sync.Mutex
}

// CycleResult aggregates everything one sync cycle did.
type CycleResult struct {
	Total    int
	Upserts  repositories.UpsertResult
	Profiles profileservice.SyncResult
}

// NewSyncService creates the sync orchestrator.
func NewSyncService(
	fetcher ReferralFetcher,
	adjuster RecordAdjuster,
	profiles ProfileSyncer,
	publisher EventPublisher,
	leaderboardRepo repositories.LeaderboardRepository,
	syncLogRepo repositories.SyncLogRepository,
) *SyncService {
	return &SyncService{
		fetcher:               fetcher,
		adjuster:              adjuster,
		profiles:              profiles,
		publisher:             publisher,
		LeaderboardRepository: leaderboardRepo,
		SyncLogRepository:     syncLogRepo,
		now:                   time.Now,
	}
}

// Run executes one sync cycle. A concurrent call while a cycle is running
// returns ErrSyncInProgress instead of queueing, so scheduler ticks and
// manual triggers can never stack.
func (s *SyncService) Run(ctx context.Context, forceFresh bool) (*CycleResult, error) {
	if !s.running.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer s.running.Unlock()

	start := s.now()

	response, err := s.fetcher.FetchReferralData(ctx, forceFresh)
	if err != nil {
		s.recordLog(ctx, models.SyncLogFailure, fmt.Sprintf("fetch failed: %v", err), start)
		return nil, fmt.Errorf("couldn't fetch the referral data: %w", err)
	}

	records := goated.ExtractRecords(response)
	if len(records) == 0 {
		s.recordLog(ctx, models.SyncLogEmpty, "no records in the response", start)
		return &CycleResult{}, nil
	}

	adjusted, err := s.adjuster.Apply(ctx, records)
	if err != nil {
		s.recordLog(ctx, models.SyncLogFailure, fmt.Sprintf("adjustment failed: %v", err), start)
		return nil, fmt.Errorf("couldn't adjust the records: %w", err)
	}

	upserts, err := s.LeaderboardRepository.UpsertChangedBatch(ctx, adjusted, s.now())
	if err != nil {
		s.recordLog(ctx, models.SyncLogFailure, fmt.Sprintf("upsert failed: %v", err), start)
		return nil, fmt.Errorf("couldn't persist the leaderboard: %w", err)
	}

	result := &CycleResult{
		Total:   len(adjusted),
		Upserts: upserts,
	}

	logType := models.SyncLogSuccess
	profiles, err := s.profiles.SyncProfiles(ctx, adjusted)
	if err != nil {
		// The leaderboard itself is already persisted, keep going.
		log.Printf("Couldn't sync the profiles: %v", err)
		logType = models.SyncLogPartial
	}
	result.Profiles = profiles
	if profiles.Failed > 0 {
		logType = models.SyncLogPartial
	}

	if upserts.Writes() > 0 {
		if err := s.publisher.PublishLeaderboardUpdate(ctx, len(adjusted), s.now()); err != nil {
			log.Printf("Couldn't publish the leaderboard update: %v", err)
		}
	}

	message := fmt.Sprintf(
		"synced %d users (%d created, %d updated, %d unchanged, %d profiles created)",
		result.Total, upserts.Created, upserts.Updated, upserts.Skipped, profiles.Created,
	)
	s.recordLog(ctx, logType, message, start)

	return result, nil
}

// recordLog writes one audit row, failures here only cost the audit trail.
func (s *SyncService) recordLog(ctx context.Context, logType string, message string, start time.Time) {
	if err := s.SyncLogRepository.Record(ctx, logType, message, s.now().Sub(start)); err != nil {
		log.Printf("Couldn't record the sync log: %v", err)
	}
}
