package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Race lifecycle states. Transitions are one-directional.
const (
	RaceStatusUpcoming  = "upcoming"
	RaceStatusLive      = "live"
	RaceStatusCompleted = "completed"
)

// Race types.
const (
	RaceTypeMonthly = "monthly"
	RaceTypeWeekly  = "weekly"
)

// Prize distribution modes. Percent shares are relative to the prize pool,
// fixed shares are absolute amounts.
const (
	DistributionPercent = "percent"
	DistributionFixed   = "fixed"
)

// DefaultPrizeDistribution is the percent split used when a race is created
// without an explicit prize table. Shares sum to 100 across the top ten.
const DefaultPrizeDistribution = `{"1":25,"2":15,"3":10,"4":8,"5":7,"6":7,"7":7,"8":7,"9":7,"10":7}`

// WagerRace is one calendar race period with its prize configuration.
type WagerRace struct {
	ID uint `gorm:"primaryKey"`

	Type   string `gorm:"type:varchar(10);index:idx_race_type_start,priority:1;default:monthly"`
	Status string `gorm:"type:varchar(10);default:upcoming"`

	PrizePool         float64
	DistributionType  string `gorm:"type:varchar(10);default:percent"`
	PrizeDistribution string `gorm:"type:jsonb;default:'{}'"`

	StartDate time.Time `gorm:"index:idx_race_type_start,priority:2"`
	EndDate   time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Participants []RaceParticipant `gorm:"foreignKey:RaceID"`
}

// DistributionMap decodes the stored prize distribution, a JSON map of
// 1-based rank to share.
func (r *WagerRace) DistributionMap() map[int]float64 {
	distribution := make(map[int]float64)
	if r.PrizeDistribution == "" {
		return distribution
	}

	var raw map[string]float64
	if err := json.Unmarshal([]byte(r.PrizeDistribution), &raw); err != nil {
		return distribution
	}

	for key, share := range raw {
		var rank int
		if _, err := fmt.Sscanf(key, "%d", &rank); err == nil && rank > 0 {
			distribution[rank] = share
		}
	}

	return distribution
}

// PrizeForRank computes the prize amount for a final rank, honoring the
// race's distribution mode.
func (r *WagerRace) PrizeForRank(rank int) float64 {
	share, ok := r.DistributionMap()[rank]
	if !ok {
		return 0
	}

	if r.DistributionType == DistributionFixed {
		return share
	}
	return r.PrizePool * share / 100
}

// RaceParticipant is the immutable final-standings snapshot row, written once
// at race completion and never updated.
type RaceParticipant struct {
	ID uint `gorm:"primaryKey"`

	RaceID uint   `gorm:"uniqueIndex:idx_race_participant,priority:1;not null"`
	UID    string `gorm:"uniqueIndex:idx_race_participant,priority:2;not null"`
	Name   string

	FinalRank      int
	WageredAmount  float64
	PrizeWonAmount float64

	CreatedAt time.Time
}

// TableName keeps the historical snapshot table name.
func (RaceParticipant) TableName() string {
	return "wager_race_participant_snapshots"
}
