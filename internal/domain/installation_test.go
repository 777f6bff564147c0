package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallationStatus_CanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    InstallationStatus
		to      InstallationStatus
		allowed bool
	}{
		{"pending to approved", InstallationPending, InstallationApproved, true},
		{"pending to rejected", InstallationPending, InstallationRejected, true},
		{"pending straight to completed", InstallationPending, InstallationCompleted, false},
		{"approved to completed", InstallationApproved, InstallationCompleted, true},
		{"approved back to pending", InstallationApproved, InstallationPending, false},
		{"approved to rejected", InstallationApproved, InstallationRejected, false},
		{"rejected is terminal", InstallationRejected, InstallationApproved, false},
		{"completed is terminal", InstallationCompleted, InstallationApproved, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestInstallationRequest_Transition(t *testing.T) {
	r := &InstallationRequest{Status: InstallationPending}

	require.NoError(t, r.Transition(InstallationApproved))
	assert.Equal(t, InstallationApproved, r.Status)

	require.NoError(t, r.Transition(InstallationCompleted))
	assert.Equal(t, InstallationCompleted, r.Status)
}

func TestInstallationRequest_Transition_Invalid(t *testing.T) {
	r := &InstallationRequest{Status: InstallationPending}

	err := r.Transition(InstallationCompleted)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInstallationTransition)
	assert.Equal(t, InstallationPending, r.Status)
}

func TestInstallationRequest_TotalShelves(t *testing.T) {
	r := &InstallationRequest{NumRacks: 3, NumShelvesPerRack: 4}
	assert.Equal(t, 12, r.TotalShelves())
}
