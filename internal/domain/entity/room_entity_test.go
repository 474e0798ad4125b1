package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHousekeepingTransitions(t *testing.T) {
	tests := []struct {
		from, to HousekeepingStatus
		ok       bool
	}{
		{HKClean, HKDirty, true},
		{HKDirty, HKInProgress, true},
		{HKInProgress, HKClean, true},
		{HKClean, HKInspected, true},
		{HKInspected, HKDirty, true},
		{HKDirty, HKOutOfService, true},
		{HKOutOfService, HKDirty, true},
		{HKDirty, HKClean, false},
		{HKOutOfService, HKClean, false},
		{HKOutOfService, HKOutOfService, false},
		{HKInspected, HKInProgress, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRoomBookable(t *testing.T) {
	r := &Room{Available: true, HousekeepingStatus: HKDirty}
	assert.True(t, r.Bookable())
	r.HousekeepingStatus = HKOutOfService
	assert.False(t, r.Bookable())
	r.HousekeepingStatus = HKClean
	r.Available = false
	assert.False(t, r.Bookable())
}
