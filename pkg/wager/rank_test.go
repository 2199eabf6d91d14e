package wager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func monthlyRecord(uid string, name string, amount float64) Record {
	return Record{
		UID:     uid,
		Name:    name,
		Wagered: Breakdown{ThisMonth: amount},
	}
}

func TestRankCompetitionTies(t *testing.T) {
	records := []Record{
		monthlyRecord("a", "Alice", 100),
		monthlyRecord("b", "Bob", 100),
		monthlyRecord("c", "Carol", 80),
	}

	ranked := Rank(records, PeriodThisMonth)

	assert.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
	assert.Equal(t, 3, ranked[2].Rank, "rank after a tie must skip past the tied group")
}

func TestRankOrdersDescending(t *testing.T) {
	records := []Record{
		monthlyRecord("a", "Alice", 50),
		monthlyRecord("b", "Bob", 80),
	}

	ranked := Rank(records, PeriodThisMonth)

	assert.Equal(t, "b", ranked[0].UID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, "a", ranked[1].UID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankIsStableForTies(t *testing.T) {
	records := []Record{
		monthlyRecord("first", "First", 10),
		monthlyRecord("second", "Second", 10),
	}

	ranked := Rank(records, PeriodThisMonth)

	assert.Equal(t, "first", ranked[0].UID)
	assert.Equal(t, "second", ranked[1].UID)
}

func TestRankPerPeriodIndependence(t *testing.T) {
	records := []Record{
		{UID: "a", Name: "Alice", Wagered: Breakdown{Today: 100, AllTime: 10}},
		{UID: "b", Name: "Bob", Wagered: Breakdown{Today: 5, AllTime: 500}},
	}

	today := Rank(records, PeriodToday)
	allTime := Rank(records, PeriodAllTime)

	assert.Equal(t, "a", today[0].UID)
	assert.Equal(t, "b", allTime[0].UID)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	records := []Record{
		monthlyRecord("a", "Alice", 1),
		monthlyRecord("b", "Bob", 2),
	}

	Rank(records, PeriodThisMonth)

	assert.Equal(t, "a", records[0].UID)
}

func TestRankPositions(t *testing.T) {
	records := []Record{
		monthlyRecord("a", "Alice", 50),
		monthlyRecord("b", "Bob", 80),
	}

	positions := RankPositions(records, PeriodThisMonth)

	assert.Equal(t, 1, positions["b"])
	assert.Equal(t, 2, positions["a"])
}

func TestRankEmptyInput(t *testing.T) {
	assert.Empty(t, Rank(nil, PeriodThisMonth))
}
