package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
)

func ptr[T any](v T) *T { return &v }

func TestRoomCreateValidation(t *testing.T) {
	h := newHarness(t)

	r, err := h.roomSvc.Create(ctxBG, admin, RoomInput{
		Number: ptr(" 201 "), Type: ptr(entity.RoomSuite), Price: ptr(int64(30000)), Capacity: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "201", r.Number)
	assert.True(t, r.Available)
	assert.Equal(t, entity.HKClean, r.HousekeepingStatus)
	assert.Equal(t, []string{}, r.Amenities)

	_, err = h.roomSvc.Create(ctxBG, admin, RoomInput{Number: ptr("201"), Type: ptr(entity.RoomSuite), Price: ptr(int64(1)), Capacity: ptr(1)})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	_, err = h.roomSvc.Create(ctxBG, admin, RoomInput{Number: ptr("301"), Type: ptr(entity.RoomType("cabin")), Price: ptr(int64(1)), Capacity: ptr(1)})
	assert.ErrorIs(t, err, ErrInvalidRoom)

	_, err = h.roomSvc.Update(ctxBG, admin, r.ID, RoomInput{Capacity: ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidRoom)

	r, err = h.roomSvc.Update(ctxBG, admin, r.ID, RoomInput{Price: ptr(int64(35000)), Available: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(35000), r.Price)
	assert.False(t, r.Available)
}

func TestAvailabilityCalendar(t *testing.T) {
	h := newHarness(t)
	h.bookings = newFakeBookings(
		&entity.Booking{ID: "b-1", UserID: "u-guest", RoomID: "r-101", CheckIn: date("2026-03-10"), CheckOut: date("2026-03-12"), Status: entity.BookingConfirmed},
		&entity.Booking{ID: "b-2", RoomID: "r-101", CheckIn: date("2026-03-12"), CheckOut: date("2026-03-13"), Status: entity.BookingCancelled},
	)
	h.roomSvc.Bookings = h.bookings

	days, err := h.roomSvc.Availability(ctxBG, admin, "r-101", date("2026-03-09"), date("2026-03-13"))
	require.NoError(t, err)
	require.Len(t, days, 5)

	states := make([]entity.DayState, 0, len(days))
	for _, d := range days {
		states = append(states, d.State)
	}
	assert.Equal(t, []entity.DayState{
		entity.DayAvailable, entity.DayBooked, entity.DayBooked, entity.DayAvailable, entity.DayAvailable,
	}, states)
	assert.Equal(t, "2026-03-10", days[1].Date)
	assert.Equal(t, "b-1", days[1].BookingID)

	for _, who := range []Actor{{}, {UserID: "u-other", Role: entity.RoleUser}} {
		days, err = h.roomSvc.Availability(ctxBG, who, "r-101", date("2026-03-10"), date("2026-03-10"))
		require.NoError(t, err)
		assert.Equal(t, entity.DayBooked, days[0].State)
		assert.Empty(t, days[0].BookingID, "other guests' bookings stay anonymous")
	}
	days, err = h.roomSvc.Availability(ctxBG, guest, "r-101", date("2026-03-10"), date("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, "b-1", days[0].BookingID)

	days, err = h.roomSvc.Availability(ctxBG, admin, "r-102", date("2026-03-09"), date("2026-03-10"))
	require.NoError(t, err)
	for _, d := range days {
		assert.Equal(t, entity.DayUnavailable, d.State)
	}

	_, err = h.roomSvc.Availability(ctxBG, admin, "r-101", date("2026-03-10"), date("2026-03-09"))
	assert.ErrorIs(t, err, ErrInvalidDates)
	_, err = h.roomSvc.Availability(ctxBG, admin, "r-101", date("2026-01-01"), date("2026-04-03"))
	assert.ErrorIs(t, err, ErrRangeTooLong)
	days, err = h.roomSvc.Availability(ctxBG, admin, "r-101", date("2026-01-01"), date("2026-04-02"))
	require.NoError(t, err)
	assert.Len(t, days, 92)
	_, err = h.roomSvc.Availability(ctxBG, admin, "nope", date("2026-03-09"), date("2026-03-10"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestHousekeepingTransitions(t *testing.T) {
	h := newHarness(t)

	_, err := h.roomSvc.SetHousekeeping(ctxBG, admin, "r-101", entity.HKInProgress)
	assert.ErrorIs(t, err, ErrInvalidHousekeeping)

	for _, next := range []entity.HousekeepingStatus{entity.HKDirty, entity.HKInProgress, entity.HKClean, entity.HKInspected, entity.HKOutOfService, entity.HKDirty} {
		r, err := h.roomSvc.SetHousekeeping(ctxBG, admin, "r-101", next)
		require.NoError(t, err, next)
		assert.Equal(t, next, r.HousekeepingStatus)
	}

	_, err = h.roomSvc.SetHousekeeping(ctxBG, admin, "r-101", "sparkling")
	assert.ErrorIs(t, err, ErrInvalidHousekeeping)
}

func TestCheckOutFollowsHousekeepingStateMachine(t *testing.T) {
	tests := []struct {
		from, want entity.HousekeepingStatus
	}{
		{entity.HKClean, entity.HKDirty},
		{entity.HKInspected, entity.HKDirty},
		{entity.HKDirty, entity.HKDirty},
		{entity.HKInProgress, entity.HKInProgress},
		{entity.HKOutOfService, entity.HKOutOfService},
	}
	for _, tt := range tests {
		t.Run(string(tt.from), func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.rooms.UpdateHousekeeping(ctxBG, "r-101", tt.from))
			require.NoError(t, h.roomSvc.markDirty(ctxBG, "r-101"))
			r, err := h.rooms.GetByID(ctxBG, "r-101")
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.HousekeepingStatus)
		})
	}
}

func TestRoomDeleteRefusesActiveBookings(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")

	assert.ErrorIs(t, h.roomSvc.Delete(ctxBG, admin, "r-101"), ErrRoomInUse)

	_, err := h.booking.Cancel(ctxBG, admin, b.ID, "")
	require.NoError(t, err)
	require.NoError(t, h.roomSvc.Delete(ctxBG, admin, "r-101"))
	assert.ErrorIs(t, h.roomSvc.Delete(ctxBG, admin, "r-101"), ErrRoomNotFound)
}

func TestRoomSearchFallsBackToDatabase(t *testing.T) {
	h := newHarness(t)
	rooms, err := h.roomSvc.Search(ctxBG, "102")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "r-102", rooms[0].ID)
}

func TestRoomImageUpload(t *testing.T) {
	h := newHarness(t)
	r, err := h.roomSvc.UploadImage(ctxBG, admin, "r-101", "view.JPG", "image/jpeg", []byte("jpg"))
	require.NoError(t, err)
	assert.Contains(t, r.ImageURL, "rooms/r-101/")

	stored, err := h.rooms.GetByID(ctxBG, "r-101")
	require.NoError(t, err)
	assert.Equal(t, r.ImageURL, stored.ImageURL)

	h.roomSvc.Storage = nil
	_, err = h.roomSvc.UploadImage(ctxBG, admin, "r-101", "a.png", "image/png", nil)
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
