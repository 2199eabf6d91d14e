package filters

// Query parameters for the affiliate stats endpoint.
type LeaderboardQueryParams struct {
	Limit int `form:"limit,default=0" binding:"omitempty,min=0"`
}

// Query parameters for the race position endpoint.
type RacePositionParams struct {
	UID string `form:"uid" binding:"required"`
}
