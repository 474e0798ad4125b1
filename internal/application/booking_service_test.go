package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	mailtpl "github.com/oksasatya/hotel-management/pkg/mailer/templates"
)

func TestCreateBooking(t *testing.T) {
	h := newHarness(t)

	b := h.book(t, "2026-03-10", "2026-03-13")
	assert.Equal(t, int64(3*12000), b.Amount)
	assert.Equal(t, entity.BookingPending, b.Status)
	assert.Equal(t, entity.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "Gina Guest", b.GuestName)
	assert.Equal(t, "guest@example.com", b.GuestEmail)
	assert.Equal(t, "101", b.RoomNumber)

	assert.Equal(t, []string{"Booking for room 101 received"}, h.notifs.forUser("u-guest"))
	assert.Len(t, h.notifs.forUser("u-admin"), 1)
	assert.Len(t, h.notifs.forUser("u-super"), 1)
	assert.Contains(t, h.activity.actions(), "booking.create")
}

func TestCreateBookingRejections(t *testing.T) {
	h := newHarness(t)
	h.book(t, "2026-03-10", "2026-03-13")

	cases := []struct {
		name string
		in   CreateBookingInput
		err  error
	}{
		{"overlap", CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-03-12"), CheckOut: date("2026-03-14")}, ErrBookingConflict},
		{"enclosing", CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-03-09"), CheckOut: date("2026-03-20")}, ErrBookingConflict},
		{"check-out before check-in", CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-03-20"), CheckOut: date("2026-03-20")}, ErrInvalidDates},
		{"in the past", CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-02-20"), CheckOut: date("2026-02-22")}, ErrInvalidDates},
		{"too many guests", CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-04-01"), CheckOut: date("2026-04-02"), Guests: 3}, ErrCapacityExceeded},
		{"room unavailable", CreateBookingInput{RoomID: "r-102", CheckIn: date("2026-04-01"), CheckOut: date("2026-04-02")}, ErrRoomUnavailable},
		{"unknown room", CreateBookingInput{RoomID: "r-999", CheckIn: date("2026-04-01"), CheckOut: date("2026-04-02")}, ErrRoomNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.booking.Create(ctxBG, guest, tc.in)
			assert.ErrorIs(t, err, tc.err)
		})
	}

	// arrival on the departure day of the previous stay
	_, err := h.booking.Create(ctxBG, guest, CreateBookingInput{RoomID: "r-101", CheckIn: date("2026-03-13"), CheckOut: date("2026-03-15")})
	assert.NoError(t, err)
}

func TestBookingLifecycle(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")

	_, err := h.booking.CheckIn(ctxBG, admin, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	b, err = h.booking.Confirm(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, b.Status)
	assert.Equal(t, []string{mailtpl.BookingConfirmed}, h.sentTemplates())

	_, err = h.booking.Confirm(ctxBG, admin, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = h.booking.CheckIn(ctxBG, admin, b.ID)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	stored, _ := h.bookings.GetByID(ctxBG, b.ID)
	expect := repo.StateOf(stored)
	stored.PaymentStatus = entity.PaymentPaid
	require.NoError(t, h.bookings.UpdateState(ctxBG, stored, expect))

	b, err = h.booking.CheckIn(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCheckedIn, b.Status)

	b, err = h.booking.CheckOut(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCheckedOut, b.Status)

	room, err := h.rooms.GetByID(ctxBG, "r-101")
	require.NoError(t, err)
	assert.Equal(t, entity.HKDirty, room.HousekeepingStatus)

	assert.Subset(t, h.activity.actions(), []string{"booking.confirmed", "booking.checked_in", "booking.checked_out"})
	assert.Len(t, h.notifs.forUser("u-guest"), 4)
}

func TestCancellationRequestFlow(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")
	_, err := h.booking.Confirm(ctxBG, admin, b.ID)
	require.NoError(t, err)

	other := Actor{UserID: "u-other", Role: entity.RoleUser}
	_, err = h.booking.RequestCancel(ctxBG, other, b.ID, "nope")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	b, err = h.booking.RequestCancel(ctxBG, guest, b.ID, " plans changed ")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelRequested, b.Status)
	assert.Equal(t, entity.BookingConfirmed, b.PreviousStatus)
	assert.Equal(t, "plans changed", b.CancelReason)

	b, err = h.booking.DeclineCancel(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, b.Status)
	assert.Empty(t, b.CancelReason)

	_, err = h.booking.DeclineCancel(ctxBG, admin, b.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, _ := h.bookings.GetByID(ctxBG, b.ID)
	expect := repo.StateOf(stored)
	stored.PaymentStatus = entity.PaymentPaid
	require.NoError(t, h.bookings.UpdateState(ctxBG, stored, expect))

	_, err = h.booking.RequestCancel(ctxBG, guest, b.ID, "really")
	require.NoError(t, err)
	b, err = h.booking.ApproveCancel(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, b.Status)
	assert.Equal(t, entity.PaymentRefunded, b.PaymentStatus)

	payments, err := h.payments.List(ctxBG, "u-guest")
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentRefunded, payments[0].Status)
	assert.Equal(t, b.Amount, payments[0].Amount)

	assert.Equal(t, []string{mailtpl.BookingConfirmed, mailtpl.BookingCancelled}, h.sentTemplates())
}

func TestDirectCancelOnlyWhilePending(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")
	c := h.book(t, "2026-03-20", "2026-03-22")

	b, err := h.booking.Cancel(ctxBG, admin, b.ID, "overbooked")
	require.NoError(t, err)
	assert.Equal(t, entity.BookingCancelled, b.Status)
	assert.Equal(t, "overbooked", b.CancelReason)
	assert.Equal(t, entity.PaymentPending, b.PaymentStatus)

	_, err = h.booking.Confirm(ctxBG, admin, c.ID)
	require.NoError(t, err)
	_, err = h.booking.Cancel(ctxBG, admin, c.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestBookingVisibilityAndDelete(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")

	other := Actor{UserID: "u-other", Role: entity.RoleUser}
	_, err := h.booking.Get(ctxBG, other, b.ID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = h.booking.Get(ctxBG, admin, b.ID)
	assert.NoError(t, err)

	mine, err := h.booking.List(ctxBG, other, repo.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, mine)
	all, err := h.booking.List(ctxBG, admin, repo.BookingFilter{Status: entity.BookingPending})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, h.booking.Delete(ctxBG, admin, b.ID), ErrBookingNotDeletable)
	_, err = h.booking.Cancel(ctxBG, admin, b.ID, "")
	require.NoError(t, err)
	require.NoError(t, h.booking.Delete(ctxBG, admin, b.ID))
	assert.ErrorIs(t, h.booking.Delete(ctxBG, admin, b.ID), ErrBookingNotFound)
}

func TestCancelRequestLosesToPaymentInBetween(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")
	_, err := h.booking.Confirm(ctxBG, admin, b.ID)
	require.NoError(t, err)
	cs, err := h.payment.Checkout(ctxBG, guest, b.ID)
	require.NoError(t, err)

	h.bookings.beforeWrite = func() {
		_, err := h.payment.Confirm(ctxBG, guest, cs.ID)
		require.NoError(t, err)
	}
	_, err = h.booking.RequestCancel(ctxBG, guest, b.ID, "plans changed")
	assert.ErrorIs(t, err, ErrBookingChanged)

	stored, err := h.bookings.GetByID(ctxBG, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, stored.Status)
	assert.Equal(t, entity.PaymentPaid, stored.PaymentStatus)

	_, err = h.booking.RequestCancel(ctxBG, guest, b.ID, "plans changed")
	require.NoError(t, err)
	b, err = h.booking.ApproveCancel(ctxBG, admin, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, b.PaymentStatus)

	payments, err := h.payments.List(ctxBG, "u-guest")
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, entity.PaymentRefunded, payments[1].Status)
}

func TestTransitionOnStaleSnapshotConflicts(t *testing.T) {
	h := newHarness(t)
	b := h.book(t, "2026-03-10", "2026-03-12")

	stale, err := h.bookings.GetByID(ctxBG, b.ID)
	require.NoError(t, err)
	_, err = h.booking.Confirm(ctxBG, admin, b.ID)
	require.NoError(t, err)

	stale.Status = entity.BookingCancelled
	err = h.bookings.UpdateState(ctxBG, stale, repo.BookingState{Status: entity.BookingPending, PaymentStatus: entity.PaymentPending})
	assert.ErrorIs(t, err, repo.ErrConflict)

	stored, err := h.bookings.GetByID(ctxBG, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingConfirmed, stored.Status)
}
