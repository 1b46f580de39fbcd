package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 12, 29, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(start, start.Add(30*time.Minute)))
	assert.Equal(t, 1, DaysBetween(start, start.Add(2*time.Hour)))
	assert.Equal(t, 4, DaysBetween(start, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	end := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(start, end))
}

func TestParseOptionalDate(t *testing.T) {
	d, err := ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseOptionalDate("1990-06-15")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "1990-06-15", DayKey(*d))

	d, err = ParseOptionalDate("1990-06-15T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "1990-06-15", DayKey(*d))

	_, err = ParseOptionalDate("15/06/1990")
	assert.Error(t, err)
}
