package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalDays(t *testing.T) {
	testCases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"same day", date(2025, time.October, 10), date(2025, time.October, 10), 1},
		{"three days inclusive", date(2025, time.October, 1), date(2025, time.October, 3), 3},
		{"month boundary", date(2025, time.October, 30), date(2025, time.November, 2), 4},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TotalDays(tc.start, tc.end))
		})
	}
}

func TestCalculatePrice(t *testing.T) {
	// 3 полки x 3 дня x 2.50 = 22.50
	price, err := CalculatePrice(3, 3, 2.50)
	require.NoError(t, err)
	assert.InDelta(t, 22.50, price, 1e-9)

	price, err = CalculatePrice(1, 1, 6.99)
	require.NoError(t, err)
	assert.InDelta(t, 6.99, price, 1e-9)
}

func TestCalculatePrice_InvalidQuantity(t *testing.T) {
	_, err := CalculatePrice(0, 3, 2.50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = CalculatePrice(-1, 3, 2.50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = CalculatePrice(3, 0, 2.50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestLocationByArea(t *testing.T) {
	loc, ok := LocationByArea("TPY")
	require.True(t, ok)
	assert.Equal(t, "TPY", loc.Area)
	assert.Greater(t, loc.PricePerDay, 0.0)

	_, ok = LocationByArea("XXX")
	assert.False(t, ok)
}
