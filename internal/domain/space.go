package domain

import (
	"fmt"
	"time"
)

// SpaceStatus represents the listing status of a space
type SpaceStatus string

const (
	SpaceStatusPending  SpaceStatus = "PENDING"
	SpaceStatusApproved SpaceStatus = "APPROVED"
	SpaceStatusRejected SpaceStatus = "REJECTED"
	SpaceStatusOnHold   SpaceStatus = "ON_HOLD"
)

// EnvironmentConditions represents the storage environment of a space
type EnvironmentConditions string

const (
	EnvironmentAC      EnvironmentConditions = "AC"      // Air-conditioned (indoor)
	EnvironmentIndoor  EnvironmentConditions = "INDOOR"  // Indoor, not air-conditioned
	EnvironmentOutdoor EnvironmentConditions = "OUTDOOR" // Outdoor, sheltered
)

// spaceTransitions задаёт таблицу допустимых переходов статуса площадки.
// Правила: возврат в PENDING запрещён, из APPROVED и ON_HOLD нельзя уйти
// в REJECTED, переход в тот же статус не считается переходом.
var spaceTransitions = map[SpaceStatus][]SpaceStatus{
	SpaceStatusPending:  {SpaceStatusApproved, SpaceStatusRejected, SpaceStatusOnHold},
	SpaceStatusApproved: {SpaceStatusOnHold},
	SpaceStatusOnHold:   {SpaceStatusApproved},
	SpaceStatusRejected: {SpaceStatusApproved, SpaceStatusOnHold},
}

// IsValid returns true if the status is a defined space status
func (s SpaceStatus) IsValid() bool {
	_, ok := spaceTransitions[s]
	return ok
}

// CanTransition reports whether the lifecycle permits moving to target.
func (s SpaceStatus) CanTransition(target SpaceStatus) bool {
	for _, allowed := range spaceTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValidEnvironment returns true if the value is a defined environment code
func IsValidEnvironment(e EnvironmentConditions) bool {
	switch e {
	case EnvironmentAC, EnvironmentIndoor, EnvironmentOutdoor:
		return true
	}
	return false
}

// Space represents a rentable storage unit composed of multiple racks.
// Racks are owned exclusively by their space and referenced by id.
type Space struct {
	ID                    int64
	RenterID              int64
	Area                  string // 3-letter location area code
	EnvironmentConditions EnvironmentConditions
	Status                SpaceStatus
	PricePerDay           float64 // daily price for a single shelf
	Description           string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition validates and applies a status change.
func (s *Space) Transition(target SpaceStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}
	if !s.Status.CanTransition(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidSpaceTransition, s.Status, target)
	}
	s.Status = target
	return nil
}

// IsBookable returns true if the space accepts new bookings
func (s *Space) IsBookable() bool {
	return s.Status == SpaceStatusApproved
}

// SpaceFilter фильтр для выборки площадок
type SpaceFilter struct {
	RenterID     *int64       // Фильтр по владельцу (опционально)
	Status       *SpaceStatus // Фильтр по статусу (опционально)
	AreaContains *string      // Подстрочный поиск по коду района (опционально)
}

// Rack represents a vertical shelving unit within a space.
// Position indices are contiguous from 0 and stable; contiguity checks
// for shelf allocation rely on that ordering.
type Rack struct {
	ID       int64
	SpaceID  int64
	Position int
}

// Shelf represents a single rentable unit within a rack.
// ActiveBookingID is a non-owning reference to one of the BOOKED or
// ACTIVE bookings currently holding the shelf.
type Shelf struct {
	ID              int64
	RackID          int64
	Position        int
	IsOccupied      bool
	ActiveBookingID *int64
}
