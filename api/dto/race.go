package dto

import "time"

// RaceParticipantEntry is one row in a race standings payload.
type RaceParticipantEntry struct {
	UID      string  `json:"uid"`
	Name     string  `json:"name"`
	Position int     `json:"position"`
	Wagered  float64 `json:"wagered"`
	Prize    float64 `json:"prize"`
}

// RaceMetadata carries the prize table of the race, keyed by final rank.
type RaceMetadata struct {
	PrizeDistribution map[string]float64 `json:"prizeDistribution"`
}

// RaceResponse is the payload for the current or previous race endpoints.
// Clients always get a well-formed race object, even when no row exists yet.
type RaceResponse struct {
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	StartDate    time.Time              `json:"startDate"`
	EndDate      time.Time              `json:"endDate"`
	PrizePool    float64                `json:"prizePool"`
	Participants []RaceParticipantEntry `json:"participants"`
	Metadata     RaceMetadata           `json:"metadata"`
}

// RacePositionResponse is one user's standing inside the live race.
type RacePositionResponse struct {
	RaceID          string    `json:"raceId"`
	RaceType        string    `json:"raceType"`
	UID             string    `json:"uid"`
	Name            string    `json:"name"`
	Position        int       `json:"position"`
	WagerAmount     float64   `json:"wagerAmount"`
	ProjectedPrize  float64   `json:"projectedPrize"`
	InMoney         bool      `json:"inMoney"`
	EndDate         time.Time `json:"endDate"`
	ParticipantsLen int       `json:"totalParticipants"`
}
