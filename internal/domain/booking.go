package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusBooked    BookingStatus = "BOOKED"
	StatusActive    BookingStatus = "ACTIVE"
	StatusPast      BookingStatus = "PAST"
	StatusCancelled BookingStatus = "CANCELLED"
)

// bookingTransitions задаёт таблицу допустимых переходов статуса.
// BOOKED -> PAST допустим для бронирований, чей период истёк до того,
// как их успели перевести в ACTIVE (обновление по дате пропускает шаг).
var bookingTransitions = map[BookingStatus][]BookingStatus{
	StatusBooked:    {StatusActive, StatusPast, StatusCancelled},
	StatusActive:    {StatusPast, StatusCancelled},
	StatusPast:      {},
	StatusCancelled: {},
}

// IsValid returns true if the status is a defined booking status
func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

// IsTerminal returns true if no transition leads out of the status
func (s BookingStatus) IsTerminal() bool {
	return s == StatusPast || s == StatusCancelled
}

// IsHolding returns true if a booking in this status holds its shelves
func (s BookingStatus) IsHolding() bool {
	return s == StatusBooked || s == StatusActive
}

// CanTransition reports whether the lifecycle permits moving to target.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Booking represents a reservation of a contiguous shelf block within a
// rack for a date range. The booking does not own its shelves; ShelfIDs
// lists exactly the allocated block, in shelf position order.
type Booking struct {
	ID        int64
	LesseeID  int64
	SpaceID   int64
	RackID    int64
	StartDate time.Time
	EndDate   time.Time // inclusive, EndDate >= StartDate

	NumShelves int
	ShelfIDs   []int64
	TotalPrice float64

	Status BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition validates and applies a status change.
func (b *Booking) Transition(target BookingStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}
	if !b.Status.CanTransition(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidBookingTransition, b.Status, target)
	}
	b.Status = target
	return nil
}

// Overlaps reports whether the booking's date range intersects
// [start, end]. Both ranges are inclusive on both boundaries.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !dateOnly(b.StartDate).After(dateOnly(end)) &&
		!dateOnly(b.EndDate).Before(dateOnly(start))
}

// RefreshedStatus returns the status the booking should have as of the
// given date. Pure function of dates; terminal statuses never change,
// so repeated calls with the same date are idempotent.
func (b *Booking) RefreshedStatus(asOf time.Time) BookingStatus {
	if b.Status.IsTerminal() {
		return b.Status
	}
	day := dateOnly(asOf)
	switch {
	case day.After(dateOnly(b.EndDate)):
		return StatusPast
	case !day.Before(dateOnly(b.StartDate)):
		return StatusActive
	default:
		return StatusBooked
	}
}

// TotalDays returns the booking duration in days, inclusive of both
// boundary dates.
func (b *Booking) TotalDays() int {
	return TotalDays(b.StartDate, b.EndDate)
}

// dateOnly truncates a timestamp to its calendar date
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
