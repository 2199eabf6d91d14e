package races

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentMonthly(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 30, 0, 0, time.UTC)

	window := CurrentMonthly(now)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), window.End)
	assert.True(t, window.Contains(now))
}

func TestPreviousMonthlyAcrossYearBoundary(t *testing.T) {
	now := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	window := PreviousMonthly(now)

	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), window.End)
}

func TestNextMonthly(t *testing.T) {
	now := time.Date(2025, 2, 10, 8, 0, 0, 0, time.UTC)

	window := NextMonthly(now)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), window.Start)
	assert.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), window.End)
}

func TestCurrentMonthlyFebruaryLeapYear(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)

	window := CurrentMonthly(now)

	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), window.End)
}

func TestIsLastDayOfMonth(t *testing.T) {
	assert.True(t, IsLastDayOfMonth(time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.True(t, IsLastDayOfMonth(time.Date(2024, 2, 29, 1, 0, 0, 0, time.UTC)))
	assert.False(t, IsLastDayOfMonth(time.Date(2025, 3, 30, 23, 59, 0, 0, time.UTC)))
}
