package events

import (
	"context"
	"encoding/json"
	"time"
)

// Channel that leaderboard updates are broadcast on.
const LeaderboardChannel = "leaderboard:updates"

// Event types.
const TypeLeaderboardUpdate = "LEADERBOARD_UPDATE"

// LeaderboardUpdate is broadcast whenever a sync cycle produced fresh ranked data.
type LeaderboardUpdate struct {
	Type       string    `json:"type"`
	TotalUsers int       `json:"totalUsers"`
	UpdatedAt  time.Time `json:"lastUpdated"`
}

// Broker is the pub/sub surface the publisher needs, satisfied by the redis client.
type Broker interface {
	Publish(ctx context.Context, channel string, payload any) error
}

// Publisher fans out pipeline events to connected listeners.
type Publisher struct {
	broker Broker
}

// NewPublisher creates an event publisher on the given broker.
func NewPublisher(broker Broker) *Publisher {
	return &Publisher{broker: broker}
}

// PublishLeaderboardUpdate broadcasts a LEADERBOARD_UPDATE event.
func (p *Publisher) PublishLeaderboardUpdate(ctx context.Context, totalUsers int, updatedAt time.Time) error {
	event := LeaderboardUpdate{
		Type:       TypeLeaderboardUpdate,
		TotalUsers: totalUsers,
		UpdatedAt:  updatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.broker.Publish(ctx, LeaderboardChannel, payload)
}
