package wager

import "sort"

// RankedRecord is a record annotated with its competition rank for one period.
type RankedRecord struct {
	Record
	Rank int `json:"rank"`
}

// Rank sorts the records descending by the period's wagered amount and assigns
// competition ranks: equal amounts share a rank, and the next distinct amount
// takes the rank of its 1-based position, so [100, 100, 80] ranks as [1, 1, 3].
func Rank(records []Record, period Period) []RankedRecord {
	sorted := make([]Record, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount(period) > sorted[j].Amount(period)
	})

	ranked := make([]RankedRecord, 0, len(sorted))
	currentRank := 1
	for i, record := range sorted {
		if i > 0 && record.Amount(period) != sorted[i-1].Amount(period) {
			currentRank = i + 1
		}
		ranked = append(ranked, RankedRecord{Record: record, Rank: currentRank})
	}

	return ranked
}

// RankPositions returns a uid to rank map for the given period.
func RankPositions(records []Record, period Period) map[string]int {
	ranked := Rank(records, period)
	positions := make(map[string]int, len(ranked))
	for _, r := range ranked {
		positions[r.UID] = r.Rank
	}
	return positions
}
