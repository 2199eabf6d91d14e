package adjust

import (
	"goatedvips/pkg/config"
	"goatedvips/pkg/wager"
	"sort"
	"strings"
)

// ApplyRankBoost nudges the configured account towards the target rank on the
// monthly leaderboard. The minimal monthly delta needed to reach the target
// rank is computed, capped by MaxBoost, and the same absolute delta is added
// to all four wager fields. When the natural gap exceeds the cap, the account
// legitimately stays below the target rank.
func ApplyRankBoost(records []wager.Record, policy config.BoostConfig) []wager.Record {
	if policy.Username == "" || policy.TargetRank < 1 {
		return records
	}

	target := -1
	for i := range records {
		if strings.EqualFold(records[i].Name, policy.Username) {
			target = i
			break
		}
	}
	if target < 0 {
		return records
	}

	delta := boostDelta(records, target, policy.TargetRank)
	if delta <= 0 {
		return records
	}
	if delta > policy.MaxBoost {
		delta = policy.MaxBoost
	}

	records[target].AddToAll(delta)
	return records
}

// boostDelta computes the minimal monthly increase that places the record at
// or above the target competition rank. Matching the amount of the current
// holder of the target position is enough, ties share the rank.
func boostDelta(records []wager.Record, target int, targetRank int) float64 {
	others := make([]float64, 0, len(records)-1)
	for i := range records {
		if i == target {
			continue
		}
		others = append(others, records[i].Wagered.ThisMonth)
	}

	// Fewer competitors than the target rank, nothing to chase.
	if len(others) < targetRank {
		return 0
	}

	sort.Sort(sort.Reverse(sort.Float64Slice(others)))

	needed := others[targetRank-1]
	return needed - records[target].Wagered.ThisMonth
}
