package domain

import (
	"fmt"
	"time"
)

// InstallationStatus represents the review status of an installation request
type InstallationStatus string

const (
	InstallationPending   InstallationStatus = "PENDING"
	InstallationApproved  InstallationStatus = "APPROVED"
	InstallationRejected  InstallationStatus = "REJECTED"
	InstallationCompleted InstallationStatus = "COMPLETED"
)

// installationTransitions задаёт таблицу допустимых переходов.
// COMPLETED достижим только из APPROVED, REJECTED только из PENDING;
// из терминальных статусов переходов нет.
var installationTransitions = map[InstallationStatus][]InstallationStatus{
	InstallationPending:   {InstallationApproved, InstallationRejected},
	InstallationApproved:  {InstallationCompleted},
	InstallationRejected:  {},
	InstallationCompleted: {},
}

// IsValid returns true if the status is a defined installation status
func (s InstallationStatus) IsValid() bool {
	_, ok := installationTransitions[s]
	return ok
}

// IsTerminal returns true if no transition leads out of the status
func (s InstallationStatus) IsTerminal() bool {
	return s == InstallationRejected || s == InstallationCompleted
}

// CanTransition reports whether the lifecycle permits moving to target.
func (s InstallationStatus) CanTransition(target InstallationStatus) bool {
	for _, allowed := range installationTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// InstallationRequest represents a renter's request to install shelving
// at a location. Once completed it is converted into a live Space and
// the request itself is deleted; the two never coexist.
type InstallationRequest struct {
	ID                    int64
	RenterID              int64
	Area                  string // 3-letter location area code
	EnvironmentConditions EnvironmentConditions
	Status                InstallationStatus

	NumRacks          int
	NumShelvesPerRack int

	PricePerDay float64
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Transition validates and applies a status change.
func (r *InstallationRequest) Transition(target InstallationStatus) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}
	if !r.Status.CanTransition(target) {
		return fmt.Errorf("%w: from %s to %s", ErrInvalidInstallationTransition, r.Status, target)
	}
	r.Status = target
	return nil
}

// TotalShelves returns the total shelf count the request would install
func (r *InstallationRequest) TotalShelves() int {
	return r.NumRacks * r.NumShelvesPerRack
}
