package adjust

import (
	"context"
	"fmt"
	"goatedvips/pkg/config"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/wager"
	"log"
	"time"
)

// OverrideStore is the persistence surface the adjuster needs.
type OverrideStore interface {
	GetActiveOverrides(ctx context.Context) ([]models.WagerOverride, error)
	DeactivateOverrides(ctx context.Context, ids []uint) error
}

// Adjuster applies every post-hoc wager modification before ranking: admin
// overrides first, then the targeted rank boost. Both run on every cycle so
// all downstream consumers see one consistent adjusted dataset.
type Adjuster struct {
	overrides OverrideStore
	boost     config.BoostConfig

	// Injectable for deterministic expiry tests.
	now func() time.Time
}

// NewAdjuster creates the adjustment layer.
func NewAdjuster(overrides OverrideStore, boost config.BoostConfig) *Adjuster {
	return &Adjuster{
		overrides: overrides,
		boost:     boost,
		now:       time.Now,
	}
}

// Apply runs both adjustments on a copy of the records. A failure to load
// overrides aborts the cycle, keeping adjusted and unadjusted data from
// ever mixing downstream.
func (a *Adjuster) Apply(ctx context.Context, records []wager.Record) ([]wager.Record, error) {
	adjusted := make([]wager.Record, len(records))
	copy(adjusted, records)

	if err := a.applyOverrides(ctx, adjusted); err != nil {
		return nil, err
	}

	return ApplyRankBoost(adjusted, a.boost), nil
}

// applyOverrides replaces wager fields from active overrides and lazily
// deactivates any override whose expiry has passed.
func (a *Adjuster) applyOverrides(ctx context.Context, records []wager.Record) error {
	overrides, err := a.overrides.GetActiveOverrides(ctx)
	if err != nil {
		return fmt.Errorf("couldn't load the wager overrides: %w", err)
	}

	now := a.now()
	var expired []uint
	for i := range overrides {
		override := &overrides[i]

		if override.Expired(now) {
			expired = append(expired, override.ID)
			continue
		}

		for j := range records {
			if override.Matches(records[j]) {
				override.ApplyTo(&records[j])
			}
		}
	}

	if len(expired) > 0 {
		// Lazy cleanup, a failure here only delays the deactivation.
		if err := a.overrides.DeactivateOverrides(ctx, expired); err != nil {
			log.Printf("Couldn't deactivate %d expired overrides: %v", len(expired), err)
		}
	}

	return nil
}
