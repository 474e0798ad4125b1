package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
	"github.com/oksasatya/hotel-management/pkg/helpers"
)

type BookingService struct {
	Bookings      repo.BookingRepository
	Rooms         *RoomService
	Users         repo.UserRepository
	Payments      repo.PaymentRepository
	Notifications *NotificationService
	Mail          *Mailer
	Activity      *ActivityService
	Logger        *logrus.Logger
	Currency      string

	now func() time.Time
}

func NewBookingService(bookings repo.BookingRepository, rooms *RoomService, users repo.UserRepository, payments repo.PaymentRepository, logger *logrus.Logger) *BookingService {
	return &BookingService{
		Bookings: bookings,
		Rooms:    rooms,
		Users:    users,
		Payments: payments,
		Logger:   logger,
		Currency: "usd",
		now:      time.Now,
	}
}

type CreateBookingInput struct {
	RoomID     string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	GuestName  string
	GuestEmail string
}

func bookingLink(id string) string { return "/bookings?id=" + id }

func (s *BookingService) today() time.Time {
	if s.now == nil {
		return entity.DateOnly(time.Now())
	}
	return entity.DateOnly(s.now())
}

func (s *BookingService) Create(ctx context.Context, actor Actor, in CreateBookingInput) (*entity.Booking, error) {
	in.CheckIn, in.CheckOut = entity.DateOnly(in.CheckIn), entity.DateOnly(in.CheckOut)
	if !in.CheckOut.After(in.CheckIn) || in.CheckIn.Before(s.today()) {
		return nil, ErrInvalidDates
	}
	if in.Guests < 1 {
		in.Guests = 1
	}
	room, err := s.Rooms.Get(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.Bookable() {
		return nil, ErrRoomUnavailable
	}
	if in.Guests > room.Capacity {
		return nil, ErrCapacityExceeded
	}
	if strings.TrimSpace(in.GuestName) == "" || strings.TrimSpace(in.GuestEmail) == "" {
		u, err := s.Users.GetByID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if strings.TrimSpace(in.GuestName) == "" {
			in.GuestName = u.Name
		}
		if strings.TrimSpace(in.GuestEmail) == "" {
			in.GuestEmail = u.Email
		}
	}

	b := &entity.Booking{
		UserID:        actor.UserID,
		RoomID:        room.ID,
		RoomNumber:    room.Number,
		GuestName:     helpers.NormalizeName(in.GuestName),
		GuestEmail:    normalizeEmail(in.GuestEmail),
		CheckIn:       in.CheckIn,
		CheckOut:      in.CheckOut,
		Guests:        in.Guests,
		Status:        entity.BookingPending,
		PaymentStatus: entity.PaymentPending,
	}
	b.Amount = int64(b.Nights()) * room.Price
	if err := s.Bookings.CreateIfAvailable(ctx, b); err != nil {
		switch {
		case errors.Is(err, repo.ErrConflict):
			return nil, ErrBookingConflict
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	b.RoomNumber = room.Number

	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Booking for room %s received", b.RoomNumber), entity.NotifyInfo, bookingLink(b.ID))
	s.Notifications.NotifyAdmins(ctx, fmt.Sprintf("New booking for room %s (%s to %s)", b.RoomNumber,
		b.CheckIn.Format(entity.DateLayout), b.CheckOut.Format(entity.DateLayout)), entity.NotifyInfo, "/admin/bookings")
	s.Activity.Record(ctx, actor, "booking.create", "booking", b.ID, map[string]any{
		"room_id": b.RoomID, "check_in": b.CheckIn.Format(entity.DateLayout), "check_out": b.CheckOut.Format(entity.DateLayout), "amount": b.Amount,
	})
	return b, nil
}

func (s *BookingService) load(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// Get returns a booking to its owner or an admin. Others get not-found.
func (s *BookingService) Get(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Can(b.UserID) {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// List returns the caller's bookings, or every booking for admins.
func (s *BookingService) List(ctx context.Context, actor Actor, f repo.BookingFilter) ([]*entity.Booking, error) {
	if !actor.IsAdmin() {
		f.UserID = actor.UserID
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidTransition
	}
	return s.Bookings.List(ctx, f)
}

// transition moves the booking to the status chosen by step, persists it
// and records the activity entry. step sees the booking before the change
// and may adjust other fields.
func (s *BookingService) transition(ctx context.Context, actor Actor, id string, step func(*entity.Booking) (entity.BookingStatus, error)) (*entity.Booking, error) {
	b, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	expect := repo.StateOf(b)
	next, err := step(b)
	if err != nil {
		return nil, err
	}
	prev := b.Status
	if err := b.Transition(next); err != nil {
		return nil, err
	}
	if err := s.Bookings.UpdateState(ctx, b, expect); err != nil {
		return nil, stateErr(err)
	}
	s.Activity.Record(ctx, actor, "booking."+string(next), "booking", b.ID, map[string]any{"from": prev, "to": next})
	return b, nil
}

func stateErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return ErrBookingNotFound
	case errors.Is(err, repo.ErrConflict):
		return ErrBookingChanged
	}
	return err
}

func moveTo(next entity.BookingStatus) func(*entity.Booking) (entity.BookingStatus, error) {
	return func(*entity.Booking) (entity.BookingStatus, error) { return next, nil }
}

func (s *BookingService) Confirm(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.transition(ctx, actor, id, func(b *entity.Booking) (entity.BookingStatus, error) {
		if b.Status != entity.BookingPending {
			return "", ErrInvalidTransition
		}
		return entity.BookingConfirmed, nil
	})
	if err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Your booking for room %s is confirmed", b.RoomNumber), entity.NotifySuccess, bookingLink(b.ID))
	s.Mail.BookingConfirmed(ctx, b)
	return b, nil
}

func (s *BookingService) CheckIn(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.transition(ctx, actor, id, func(b *entity.Booking) (entity.BookingStatus, error) {
		if b.Status == entity.BookingConfirmed && b.PaymentStatus != entity.PaymentPaid {
			return "", ErrPaymentRequired
		}
		return entity.BookingCheckedIn, nil
	})
	if err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Welcome! You are checked in to room %s", b.RoomNumber), entity.NotifySuccess, bookingLink(b.ID))
	return b, nil
}

// CheckOut closes the stay and sends the room to housekeeping.
func (s *BookingService) CheckOut(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.transition(ctx, actor, id, moveTo(entity.BookingCheckedOut))
	if err != nil {
		return nil, err
	}
	if err := s.Rooms.markDirty(ctx, b.RoomID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("room_id", b.RoomID).Error("mark room dirty after check-out failed")
	}
	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("You have checked out of room %s. Thank you for staying with us", b.RoomNumber), entity.NotifyInfo, bookingLink(b.ID))
	return b, nil
}

// RequestCancel is the guest's side of cancellation; an admin approves or
// declines it.
func (s *BookingService) RequestCancel(ctx context.Context, actor Actor, id, reason string) (*entity.Booking, error) {
	b, err := s.transition(ctx, actor, id, func(b *entity.Booking) (entity.BookingStatus, error) {
		if b.UserID != actor.UserID {
			return "", ErrBookingNotFound
		}
		b.CancelReason = strings.TrimSpace(reason)
		return entity.BookingCancelRequested, nil
	})
	if err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Cancellation requested for room %s", b.RoomNumber), entity.NotifyInfo, bookingLink(b.ID))
	s.Notifications.NotifyAdmins(ctx, fmt.Sprintf("Cancellation requested for booking of room %s", b.RoomNumber), entity.NotifyWarning, "/admin/bookings")
	return b, nil
}

func (s *BookingService) ApproveCancel(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	return s.cancel(ctx, actor, id, entity.BookingCancelRequested, "")
}

// Cancel is the admin's direct cancellation of a pending booking.
func (s *BookingService) Cancel(ctx context.Context, actor Actor, id, reason string) (*entity.Booking, error) {
	return s.cancel(ctx, actor, id, entity.BookingPending, reason)
}

// cancel ends a booking that is currently in status from. A paid booking is
// refunded.
func (s *BookingService) cancel(ctx context.Context, actor Actor, id string, from entity.BookingStatus, reason string) (*entity.Booking, error) {
	refund := false
	b, err := s.transition(ctx, actor, id, func(b *entity.Booking) (entity.BookingStatus, error) {
		if b.Status != from {
			return "", ErrInvalidTransition
		}
		if r := strings.TrimSpace(reason); r != "" {
			b.CancelReason = r
		}
		if b.PaymentStatus == entity.PaymentPaid {
			b.PaymentStatus = entity.PaymentRefunded
			refund = true
		}
		return entity.BookingCancelled, nil
	})
	if err != nil {
		return nil, err
	}
	if refund {
		s.recordRefund(ctx, b)
	}
	msg := fmt.Sprintf("Your booking for room %s was cancelled", b.RoomNumber)
	if refund {
		msg += " and refunded"
	}
	s.Notifications.Notify(ctx, b.UserID, msg, entity.NotifyWarning, bookingLink(b.ID))
	s.Mail.BookingCancelled(ctx, b, refund)
	return b, nil
}

func (s *BookingService) recordRefund(ctx context.Context, b *entity.Booking) {
	if s.Payments == nil {
		return
	}
	p := &entity.Payment{
		BookingID: b.ID,
		UserID:    b.UserID,
		SessionID: "refund-" + b.ID,
		Amount:    b.Amount,
		Currency:  s.Currency,
		Status:    entity.PaymentRefunded,
	}
	if err := s.Payments.Create(context.WithoutCancel(ctx), p); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("booking_id", b.ID).Error("record refund failed")
	}
}

// DeclineCancel returns the booking to the status it had before the request.
func (s *BookingService) DeclineCancel(ctx context.Context, actor Actor, id string) (*entity.Booking, error) {
	b, err := s.transition(ctx, actor, id, func(b *entity.Booking) (entity.BookingStatus, error) {
		if b.Status != entity.BookingCancelRequested || b.PreviousStatus == "" {
			return "", ErrInvalidTransition
		}
		b.CancelReason = ""
		return b.PreviousStatus, nil
	})
	if err != nil {
		return nil, err
	}
	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Your cancellation request for room %s was declined", b.RoomNumber), entity.NotifyInfo, bookingLink(b.ID))
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, actor Actor, id string) error {
	b, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if b.Status.Active() {
		return ErrBookingNotDeletable
	}
	if err := s.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	s.Activity.Record(ctx, actor, "booking.delete", "booking", id, map[string]any{"status": b.Status})
	return nil
}
