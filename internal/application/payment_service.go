package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	repo "github.com/oksasatya/hotel-management/internal/domain/repository"
)

type PaymentService struct {
	Payments      repo.PaymentRepository
	Checkouts     repo.CheckoutStore
	Bookings      repo.BookingRepository
	Notifications *NotificationService
	Mail          *Mailer
	Activity      *ActivityService
	Logger        *logrus.Logger

	CheckoutURL string
	Currency    string
	SessionTTL  time.Duration

	now func() time.Time
}

func NewPaymentService(payments repo.PaymentRepository, checkouts repo.CheckoutStore, bookings repo.BookingRepository, logger *logrus.Logger) *PaymentService {
	return &PaymentService{
		Payments:   payments,
		Checkouts:  checkouts,
		Bookings:   bookings,
		Logger:     logger,
		Currency:   "usd",
		SessionTTL: 30 * time.Minute,
		now:        time.Now,
	}
}

func (s *PaymentService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func checkoutURL(base, id string) string {
	u, err := url.Parse(base)
	if err != nil || base == "" {
		return base + "?session_id=" + url.QueryEscape(id)
	}
	q := u.Query()
	q.Set("session_id", id)
	u.RawQuery = q.Encode()
	return u.String()
}

func payable(b *entity.Booking) bool {
	return (b.Status == entity.BookingPending || b.Status == entity.BookingConfirmed) && b.PaymentStatus == entity.PaymentPending
}

// Checkout opens a checkout session for an unpaid booking of the caller.
func (s *PaymentService) Checkout(ctx context.Context, actor Actor, bookingID string) (*entity.CheckoutSession, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != actor.UserID {
		return nil, ErrBookingNotFound
	}
	if !payable(b) {
		return nil, ErrNotPayable
	}
	now := s.clock().UTC()
	id := uuid.NewString()
	cs := &entity.CheckoutSession{
		ID:        id,
		BookingID: b.ID,
		UserID:    b.UserID,
		Amount:    b.Amount,
		Currency:  s.Currency,
		Status:    entity.CheckoutOpen,
		URL:       checkoutURL(s.CheckoutURL, id),
		ExpiresAt: now.Add(s.SessionTTL),
		CreatedAt: now,
	}
	if err := s.Checkouts.Save(ctx, cs); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, actor, "payment.checkout", "booking", b.ID, map[string]any{"session_id": id, "amount": b.Amount})
	return cs, nil
}

// Confirm settles a checkout session. Confirming an already settled session
// returns the recorded payment again.
func (s *PaymentService) Confirm(ctx context.Context, actor Actor, sessionID string) (*entity.Payment, error) {
	if p, err := s.Payments.GetBySession(ctx, sessionID); err == nil {
		if !actor.Can(p.UserID) {
			return nil, ErrCheckoutNotFound
		}
		return p, nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	cs, err := s.Checkouts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCheckoutNotFound
		}
		return nil, err
	}
	if !actor.Can(cs.UserID) {
		return nil, ErrCheckoutNotFound
	}
	if cs.Status != entity.CheckoutOpen {
		return nil, ErrCheckoutNotFound
	}
	if s.clock().After(cs.ExpiresAt) {
		return nil, ErrCheckoutExpired
	}

	b, err := s.Bookings.GetByID(ctx, cs.BookingID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !payable(b) {
		return nil, ErrNotPayable
	}

	p := &entity.Payment{
		BookingID: b.ID,
		UserID:    b.UserID,
		SessionID: cs.ID,
		Amount:    cs.Amount,
		Currency:  cs.Currency,
		Status:    entity.PaymentPaid,
	}
	expect := repo.StateOf(b)
	b.PaymentStatus = entity.PaymentPaid
	autoConfirmed := false
	if b.Status == entity.BookingPending {
		if err := b.Transition(entity.BookingConfirmed); err == nil {
			autoConfirmed = true
		}
	}
	if err := s.Bookings.MarkPaid(ctx, b, expect, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// a concurrent confirm won the race
			return s.Payments.GetBySession(ctx, sessionID)
		}
		return nil, fmt.Errorf("mark booking paid: %w", stateErr(err))
	}

	cs.Status = entity.CheckoutCompleted
	cs.PaymentID = p.ID
	if err := s.Checkouts.Save(ctx, cs); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("session_id", cs.ID).Warn("mark checkout completed failed")
	}

	s.Notifications.Notify(ctx, b.UserID, fmt.Sprintf("Payment received for room %s", b.RoomNumber), entity.NotifySuccess, bookingLink(b.ID))
	s.Mail.PaymentReceipt(ctx, b)
	if autoConfirmed {
		s.Mail.BookingConfirmed(ctx, b)
	}
	s.Activity.Record(ctx, actor, "payment.confirm", "payment", p.ID, map[string]any{
		"booking_id": b.ID, "session_id": cs.ID, "amount": p.Amount, "auto_confirmed": autoConfirmed,
	})
	return p, nil
}

// List returns every payment for admins and the caller's own otherwise.
func (s *PaymentService) List(ctx context.Context, actor Actor) ([]*entity.Payment, error) {
	if actor.IsAdmin() {
		return s.Payments.List(ctx, "")
	}
	return s.Payments.List(ctx, actor.UserID)
}
