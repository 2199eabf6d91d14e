package models

import (
	"goatedvips/pkg/wager"
	"time"
)

// LeaderboardUser is the persisted cache row for one external uid.
// Rows are inserted on first sighting and updated in place, never deleted.
type LeaderboardUser struct {
	ID uint `gorm:"primaryKey"`

	UID  string `gorm:"uniqueIndex;not null"`
	Name string

	WagerToday     float64
	WagerThisWeek  float64
	WagerThisMonth float64
	WagerAllTime   float64

	LastSynced time.Time
	CreatedAt  time.Time
}

// ToRecord converts the cached row back into a wager record.
func (u *LeaderboardUser) ToRecord() wager.Record {
	return wager.Record{
		UID:  u.UID,
		Name: u.Name,
		Wagered: wager.Breakdown{
			Today:     u.WagerToday,
			ThisWeek:  u.WagerThisWeek,
			ThisMonth: u.WagerThisMonth,
			AllTime:   u.WagerAllTime,
		},
	}
}

// NeedsUpdate reports whether any wager field differs from the record.
func (u *LeaderboardUser) NeedsUpdate(record wager.Record) bool {
	return u.WagerToday != record.Wagered.Today ||
		u.WagerThisWeek != record.Wagered.ThisWeek ||
		u.WagerThisMonth != record.Wagered.ThisMonth ||
		u.WagerAllTime != record.Wagered.AllTime ||
		u.Name != record.Name
}

// ApplyRecord copies the record's fields onto the row.
func (u *LeaderboardUser) ApplyRecord(record wager.Record, now time.Time) {
	u.Name = record.Name
	u.WagerToday = record.Wagered.Today
	u.WagerThisWeek = record.Wagered.ThisWeek
	u.WagerThisMonth = record.Wagered.ThisMonth
	u.WagerAllTime = record.Wagered.AllTime
	u.LastSynced = now
}
