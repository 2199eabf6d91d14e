package adjust

import (
	"goatedvips/pkg/config"
	"goatedvips/pkg/wager"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boostPolicy(username string, targetRank int, maxBoost float64) config.BoostConfig {
	return config.BoostConfig{Username: username, TargetRank: targetRank, MaxBoost: maxBoost}
}

func monthly(uid string, name string, amount float64) wager.Record {
	return wager.Record{UID: uid, Name: name, Wagered: wager.Breakdown{ThisMonth: amount}}
}

func TestApplyRankBoostReachesTargetRank(t *testing.T) {
	records := []wager.Record{
		monthly("1", "First", 100),
		monthly("2", "Second", 90),
		monthly("3", "Third", 80),
		monthly("r", "RuffRollr", 75),
	}

	boosted := ApplyRankBoost(records, boostPolicy("ruffrollr", 3, 10))

	ranked := wager.Rank(boosted, wager.PeriodThisMonth)
	positions := map[string]int{}
	for _, r := range ranked {
		positions[r.UID] = r.Rank
	}

	assert.Equal(t, 3, positions["r"], "matching the third amount ties for third place")
	assert.Equal(t, 80.0, boosted[3].Wagered.ThisMonth)
}

func TestApplyRankBoostAppliesDeltaToAllPeriods(t *testing.T) {
	records := []wager.Record{
		{UID: "1", Name: "First", Wagered: wager.Breakdown{ThisMonth: 100}},
		{UID: "r", Name: "Target", Wagered: wager.Breakdown{Today: 1, ThisWeek: 2, ThisMonth: 95, AllTime: 400}},
	}

	boosted := ApplyRankBoost(records, boostPolicy("Target", 1, 10))

	// Delta of 5 lands on every window, not only the monthly one.
	assert.Equal(t, 6.0, boosted[1].Wagered.Today)
	assert.Equal(t, 7.0, boosted[1].Wagered.ThisWeek)
	assert.Equal(t, 100.0, boosted[1].Wagered.ThisMonth)
	assert.Equal(t, 405.0, boosted[1].Wagered.AllTime)
}

func TestApplyRankBoostNeverExceedsCap(t *testing.T) {
	records := []wager.Record{
		monthly("1", "First", 1000),
		monthly("2", "Second", 900),
		monthly("3", "Third", 800),
		monthly("r", "Target", 10),
	}

	boosted := ApplyRankBoost(records, boostPolicy("Target", 3, 10))

	require.Equal(t, 20.0, boosted[3].Wagered.ThisMonth, "the gap exceeds the cap, only the cap is applied")

	ranked := wager.Rank(boosted, wager.PeriodThisMonth)
	assert.Equal(t, "r", ranked[3].UID)
	assert.Equal(t, 4, ranked[3].Rank, "the account may stay below the target rank")
}

func TestApplyRankBoostNoopWhenAlreadyAtTarget(t *testing.T) {
	records := []wager.Record{
		monthly("r", "Target", 500),
		monthly("2", "Second", 100),
	}

	boosted := ApplyRankBoost(records, boostPolicy("Target", 3, 10))

	assert.Equal(t, 500.0, boosted[0].Wagered.ThisMonth)
}

func TestApplyRankBoostDisabledPolicy(t *testing.T) {
	records := []wager.Record{monthly("a", "Alice", 1)}

	boosted := ApplyRankBoost(records, config.BoostConfig{})

	assert.Equal(t, records, boosted)
}

func TestApplyRankBoostMissingAccount(t *testing.T) {
	records := []wager.Record{monthly("a", "Alice", 1)}

	boosted := ApplyRankBoost(records, boostPolicy("Nobody", 3, 10))

	assert.Equal(t, 1.0, boosted[0].Wagered.ThisMonth)
}

func TestApplyRankBoostFewerRecordsThanTarget(t *testing.T) {
	records := []wager.Record{
		monthly("1", "First", 100),
		monthly("r", "Target", 5),
	}

	boosted := ApplyRankBoost(records, boostPolicy("Target", 3, 10))

	assert.Equal(t, 5.0, boosted[1].Wagered.ThisMonth, "already inside the top three")
}
