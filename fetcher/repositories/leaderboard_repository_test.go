package repositories

import (
	"context"
	"goatedvips/pkg/wager"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var leaderboardColumns = []string{
	"id", "uid", "name",
	"wager_today", "wager_this_week", "wager_this_month", "wager_all_time",
	"last_synced", "created_at",
}

func TestUpsertChangedBatchSkipsIdenticalData(t *testing.T) {
	db, mock := newMockDB(t)
	repository := NewLeaderboardRepository(db)

	firstSynced := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(leaderboardColumns).
		AddRow(1, "u1", "Alice", 10.0, 20.0, 30.0, 40.0, firstSynced, firstSynced)
	mock.ExpectQuery(`SELECT \* FROM "leaderboard_users"`).WillReturnRows(rows)

	records := []wager.Record{
		{UID: "u1", Name: "Alice", Wagered: wager.Breakdown{Today: 10, ThisWeek: 20, ThisMonth: 30, AllTime: 40}},
	}

	result, err := repository.UpsertChangedBatch(context.Background(), records, firstSynced.Add(time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Writes())
	// No UPDATE was expected, so an unchanged row also keeps its last_synced.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertChangedBatchUpdatesChangedRow(t *testing.T) {
	db, mock := newMockDB(t)
	repository := NewLeaderboardRepository(db)

	firstSynced := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	now := firstSynced.Add(time.Hour)

	rows := sqlmock.NewRows(leaderboardColumns).
		AddRow(1, "u1", "Alice", 10.0, 20.0, 30.0, 40.0, firstSynced, firstSynced)
	mock.ExpectQuery(`SELECT \* FROM "leaderboard_users"`).WillReturnRows(rows)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leaderboard_users" SET`).
		WithArgs("u1", "Alice", 10.0, 20.0, 35.0, 45.0, now, sqlmock.AnyArg(), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	records := []wager.Record{
		{UID: "u1", Name: "Alice", Wagered: wager.Breakdown{Today: 10, ThisWeek: 20, ThisMonth: 35, AllTime: 45}},
	}

	result, err := repository.UpsertChangedBatch(context.Background(), records, now)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Writes())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertChangedBatchCreatesFirstSighted(t *testing.T) {
	db, mock := newMockDB(t)
	repository := NewLeaderboardRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "leaderboard_users"`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "leaderboard_users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	records := []wager.Record{
		{UID: "u9", Name: "Carol", Wagered: wager.Breakdown{ThisMonth: 5}},
	}

	result, err := repository.UpsertChangedBatch(context.Background(), records, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertChangedBatchSkipsAnonymousRecords(t *testing.T) {
	db, mock := newMockDB(t)
	repository := NewLeaderboardRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "leaderboard_users"`).
		WillReturnRows(sqlmock.NewRows(leaderboardColumns))

	records := []wager.Record{
		{UID: "", Name: "NoUID", Wagered: wager.Breakdown{Today: 1}},
	}

	result, err := repository.UpsertChangedBatch(context.Background(), records, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Writes())
	assert.NoError(t, mock.ExpectationsWereMet())
}
