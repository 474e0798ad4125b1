package entity

import (
	"errors"
	"time"
)

type BookingStatus string

const (
	BookingPending         BookingStatus = "pending"
	BookingConfirmed       BookingStatus = "confirmed"
	BookingCheckedIn       BookingStatus = "checked_in"
	BookingCheckedOut      BookingStatus = "checked_out"
	BookingCancelRequested BookingStatus = "cancel_requested"
	BookingCancelled       BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:         {BookingConfirmed, BookingCancelRequested, BookingCancelled},
	BookingConfirmed:       {BookingCheckedIn, BookingCancelRequested},
	BookingCheckedIn:       {BookingCheckedOut},
	BookingCancelRequested: {BookingCancelled, BookingPending, BookingConfirmed},
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelRequested, BookingCancelled:
		return true
	}
	return false
}

func (s BookingStatus) CanTransition(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Active bookings hold their room for the stay.
func (s BookingStatus) Active() bool {
	return s != BookingCancelled && s != BookingCheckedOut
}

// Booking dates are calendar days; CheckOut is the departure day and is
// not an occupied night.
type Booking struct {
	ID             string
	UserID         string
	RoomID         string
	RoomNumber     string
	GuestName      string
	GuestEmail     string
	CheckIn        time.Time
	CheckOut       time.Time
	Guests         int
	Amount         int64
	Status         BookingStatus
	PreviousStatus BookingStatus
	PaymentStatus  PaymentStatus
	CancelReason   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Nights returns the number of occupied nights.
func (b *Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

// Transition moves the booking to next or returns ErrInvalidTransition.
// A cancel request remembers the status to return to if it is declined.
func (b *Booking) Transition(next BookingStatus) error {
	if !b.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	if b.Status == BookingCancelRequested && next != BookingCancelled && next != b.PreviousStatus {
		return ErrInvalidTransition
	}
	if next == BookingCancelRequested {
		b.PreviousStatus = b.Status
	} else if b.Status == BookingCancelRequested {
		b.PreviousStatus = ""
	}
	b.Status = next
	return nil
}

// Overlaps reports whether the stay shares a night with [in, out).
func (b *Booking) Overlaps(in, out time.Time) bool {
	return b.CheckIn.Before(out) && b.CheckOut.After(in)
}

// NightsBetween counts calendar days between two dates, ignoring time of day.
func NightsBetween(in, out time.Time) int {
	a := DateOnly(in)
	z := DateOnly(out)
	return int(z.Sub(a).Hours() / 24)
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
