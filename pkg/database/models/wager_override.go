package models

import (
	"goatedvips/pkg/wager"
	"strings"
	"time"
)

// WagerOverride is an admin-authored replacement for a user's wager figures.
// At most one active override may exist per username; expired rows are flipped
// inactive lazily by the adjustment pass and never hard-deleted.
type WagerOverride struct {
	ID uint `gorm:"primaryKey"`

	Username string  `gorm:"index;not null"`
	GoatedID *string `gorm:"index"`

	TodayOverride     *float64
	ThisWeekOverride  *float64
	ThisMonthOverride *float64
	AllTimeOverride   *float64

	Active    bool `gorm:"default:true"`
	ExpiresAt *time.Time
	CreatedBy string
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the override has passed its expiry.
func (o *WagerOverride) Expired(now time.Time) bool {
	return o.ExpiresAt != nil && o.ExpiresAt.Before(now)
}

// Matches reports whether the override targets the given record, either by
// goated id or by case-insensitive username.
func (o *WagerOverride) Matches(record wager.Record) bool {
	if o.GoatedID != nil && *o.GoatedID != "" && *o.GoatedID == record.UID {
		return true
	}
	return strings.EqualFold(o.Username, record.Name)
}

// ApplyTo replaces any wager field that has a non-nil override value.
func (o *WagerOverride) ApplyTo(record *wager.Record) {
	if o.TodayOverride != nil {
		record.Wagered.Today = *o.TodayOverride
	}
	if o.ThisWeekOverride != nil {
		record.Wagered.ThisWeek = *o.ThisWeekOverride
	}
	if o.ThisMonthOverride != nil {
		record.Wagered.ThisMonth = *o.ThisMonthOverride
	}
	if o.AllTimeOverride != nil {
		record.Wagered.AllTime = *o.AllTimeOverride
	}
}
