package domain

import "errors"

var (
	// ErrInvalidBookingTransition is returned when a booking status change
	// is not permitted by the booking lifecycle.
	ErrInvalidBookingTransition = errors.New("domain: invalid booking status transition")

	// ErrInvalidInstallationTransition is returned when an installation
	// request status change is not permitted by the request lifecycle.
	ErrInvalidInstallationTransition = errors.New("domain: invalid installation request status transition")

	// ErrInvalidSpaceTransition is returned when a space status change is
	// not permitted by the space lifecycle.
	ErrInvalidSpaceTransition = errors.New("domain: invalid space status transition")

	// ErrInvalidQuantity is returned when a shelf count or day count is
	// below one. Checked before any store mutation.
	ErrInvalidQuantity = errors.New("domain: invalid quantity")

	// ErrUnknownStatus is returned when a status string does not match any
	// defined status code.
	ErrUnknownStatus = errors.New("domain: unknown status")
)
