package domain

import (
	"fmt"
	"time"
)

// TotalDays returns the number of days between start and end, inclusive
// of both boundary dates. A booking from day 1 to day 3 lasts 3 days.
func TotalDays(start, end time.Time) int {
	return int(dateOnly(end).Sub(dateOnly(start)).Hours()/24) + 1
}

// CalculatePrice computes the total price of renting shelfCount shelves
// for the given number of days at the given per-shelf daily rate.
// Pure; no rounding is applied beyond float arithmetic.
func CalculatePrice(shelfCount, days int, ratePerShelfPerDay float64) (float64, error) {
	if shelfCount < 1 {
		return 0, fmt.Errorf("%w: shelf count must be at least 1, got %d", ErrInvalidQuantity, shelfCount)
	}
	if days < 1 {
		return 0, fmt.Errorf("%w: day count must be at least 1, got %d", ErrInvalidQuantity, days)
	}
	return float64(shelfCount) * ratePerShelfPerDay * float64(days), nil
}
