package models

import (
	"goatedvips/pkg/wager"
	"time"
)

// User is a local platform account. Profiles created by the sync pipeline are
// flagged externally linked and carry a placeholder secret; they only mirror
// display data and never authenticate against the external platform.
type User struct {
	ID uint `gorm:"primaryKey"`

	GoatedUID string `gorm:"uniqueIndex;not null"`
	Username  string `gorm:"index"`

	ExternallyLinked  bool   `gorm:"default:false"`
	PlaceholderSecret string `gorm:"type:varchar(64)"`

	WagerToday     float64
	WagerThisWeek  float64
	WagerThisMonth float64
	WagerAllTime   float64

	RankDaily   int
	RankWeekly  int
	RankMonthly int
	RankAllTime int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NeedsUpdate reports whether the mirrored wager or rank fields differ.
func (u *User) NeedsUpdate(record wager.Record, ranks PeriodRanks) bool {
	return u.Username != record.Name ||
		u.WagerToday != record.Wagered.Today ||
		u.WagerThisWeek != record.Wagered.ThisWeek ||
		u.WagerThisMonth != record.Wagered.ThisMonth ||
		u.WagerAllTime != record.Wagered.AllTime ||
		u.RankDaily != ranks.Daily ||
		u.RankWeekly != ranks.Weekly ||
		u.RankMonthly != ranks.Monthly ||
		u.RankAllTime != ranks.AllTime
}

// ApplyRecord copies the mirrored fields onto the user.
func (u *User) ApplyRecord(record wager.Record, ranks PeriodRanks) {
	u.Username = record.Name
	u.WagerToday = record.Wagered.Today
	u.WagerThisWeek = record.Wagered.ThisWeek
	u.WagerThisMonth = record.Wagered.ThisMonth
	u.WagerAllTime = record.Wagered.AllTime
	u.RankDaily = ranks.Daily
	u.RankWeekly = ranks.Weekly
	u.RankMonthly = ranks.Monthly
	u.RankAllTime = ranks.AllTime
}

// PeriodRanks carries a user's rank in each time window.
type PeriodRanks struct {
	Daily   int
	Weekly  int
	Monthly int
	AllTime int
}
