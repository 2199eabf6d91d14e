package dto

import (
	"goatedvips/pkg/wager"
	"time"
)

// LeaderboardEntry is one ranked row served to clients.
type LeaderboardEntry struct {
	UID     string          `json:"uid"`
	Name    string          `json:"name"`
	Wagered wager.Breakdown `json:"wagered"`
	Rank    int             `json:"rank"`
}

// LeaderboardPeriod wraps one ranked view of the dataset.
type LeaderboardPeriod struct {
	Data []LeaderboardEntry `json:"data"`
}

// LeaderboardData groups the four ranked views of the same dataset.
type LeaderboardData struct {
	Today   LeaderboardPeriod `json:"today"`
	Weekly  LeaderboardPeriod `json:"weekly"`
	Monthly LeaderboardPeriod `json:"monthly"`
	AllTime LeaderboardPeriod `json:"all_time"`
}

// LeaderboardMetadata describes the dataset behind the ranked views.
type LeaderboardMetadata struct {
	TotalUsers  int       `json:"totalUsers"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// LeaderboardResponse is the full affiliate stats payload.
type LeaderboardResponse struct {
	Status   string              `json:"status"`
	Metadata LeaderboardMetadata `json:"metadata"`
	Data     LeaderboardData     `json:"data"`
}
