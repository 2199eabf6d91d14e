package dto

import "time"

// CreateOverridePayload is the admin request to pin a user's wager figures.
// Nil fields keep the fetched value.
type CreateOverridePayload struct {
	Username  string     `json:"username" binding:"required"`
	GoatedID  *string    `json:"goatedId"`
	Today     *float64   `json:"today"`
	ThisWeek  *float64   `json:"thisWeek"`
	ThisMonth *float64   `json:"thisMonth"`
	AllTime   *float64   `json:"allTime"`
	ExpiresAt *time.Time `json:"expiresAt"`
	CreatedBy string     `json:"createdBy"`
	Notes     string     `json:"notes"`
}
