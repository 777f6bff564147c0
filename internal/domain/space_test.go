package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpaceStatus_CanTransition(t *testing.T) {
	testCases := []struct {
		name    string
		from    SpaceStatus
		to      SpaceStatus
		allowed bool
	}{
		{"pending to approved", SpaceStatusPending, SpaceStatusApproved, true},
		{"pending to rejected", SpaceStatusPending, SpaceStatusRejected, true},
		{"pending to on hold", SpaceStatusPending, SpaceStatusOnHold, true},
		{"approved to on hold", SpaceStatusApproved, SpaceStatusOnHold, true},
		{"approved to rejected", SpaceStatusApproved, SpaceStatusRejected, false},
		{"on hold back to approved", SpaceStatusOnHold, SpaceStatusApproved, true},
		{"rejected to approved", SpaceStatusRejected, SpaceStatusApproved, true},
		{"approved back to pending", SpaceStatusApproved, SpaceStatusPending, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to))
		})
	}
}

func TestSpace_Transition(t *testing.T) {
	s := &Space{Status: SpaceStatusPending}

	require.NoError(t, s.Transition(SpaceStatusApproved))
	assert.Equal(t, SpaceStatusApproved, s.Status)

	err := s.Transition(SpaceStatusRejected)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSpaceTransition)
	assert.Equal(t, SpaceStatusApproved, s.Status)
}

func TestSpace_IsBookable(t *testing.T) {
	assert.True(t, (&Space{Status: SpaceStatusApproved}).IsBookable())
	assert.False(t, (&Space{Status: SpaceStatusPending}).IsBookable())
	assert.False(t, (&Space{Status: SpaceStatusOnHold}).IsBookable())
	assert.False(t, (&Space{Status: SpaceStatusRejected}).IsBookable())
}

func TestIsValidEnvironment(t *testing.T) {
	assert.True(t, IsValidEnvironment(EnvironmentAC))
	assert.True(t, IsValidEnvironment(EnvironmentIndoor))
	assert.True(t, IsValidEnvironment(EnvironmentOutdoor))
	assert.False(t, IsValidEnvironment(EnvironmentConditions("HEATED")))
}
