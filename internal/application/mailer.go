package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hotel-management/config"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/mailer"
	mailtpl "github.com/oksasatya/hotel-management/pkg/mailer/templates"
)

// Mailer enqueues templated emails for the email worker.
type Mailer struct {
	Queue  provider.EmailQueue
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewMailer(queue provider.EmailQueue, cfg *config.Config, logger *logrus.Logger) *Mailer {
	return &Mailer{Queue: queue, Cfg: cfg, Logger: logger}
}

func (m *Mailer) enqueue(ctx context.Context, to, template string, data map[string]any) {
	if m == nil || m.Queue == nil || to == "" {
		return
	}
	if m.Cfg != nil && !m.Cfg.MailSendEnabled {
		return
	}
	job := helpers.NewTemplateJob(to, template, data)
	if err := m.Queue.PublishJSON(context.WithoutCancel(ctx), job); err != nil && m.Logger != nil {
		m.Logger.WithError(err).WithFields(logrus.Fields{"template": template, "to": to}).Warn("enqueue email failed")
	}
}

// Send enqueues a prepared job. It reports false without error when sending
// is switched off.
func (m *Mailer) Send(ctx context.Context, job mailer.EmailJob) (bool, error) {
	if m == nil || m.Queue == nil {
		return false, nil
	}
	if m.Cfg != nil && !m.Cfg.MailSendEnabled {
		return false, nil
	}
	if job.Template != "" {
		helpers.EnsureRecipient(&job)
	}
	if err := job.Validate(); err != nil {
		return false, err
	}
	if err := m.Queue.PublishJSON(ctx, job); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Mailer) currency() string {
	if m.Cfg == nil || m.Cfg.PaymentCurrency == "" {
		return "usd"
	}
	return m.Cfg.PaymentCurrency
}

func (m *Mailer) bookingInfo(b *entity.Booking) mailtpl.BookingInfo {
	return mailtpl.BookingInfo{
		ID:         b.ID,
		RoomNumber: b.RoomNumber,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Nights:     b.Nights(),
		Amount:     b.Amount,
		Currency:   m.currency(),
	}
}

func (m *Mailer) BookingConfirmed(ctx context.Context, b *entity.Booking) {
	if m == nil || m.Cfg == nil {
		return
	}
	m.enqueue(ctx, b.GuestEmail, mailtpl.BookingConfirmed,
		mailtpl.NewBookingConfirmedData(m.Cfg, b.GuestName, b.GuestEmail, m.bookingInfo(b)))
}

func (m *Mailer) BookingCancelled(ctx context.Context, b *entity.Booking, refunded bool) {
	if m == nil || m.Cfg == nil {
		return
	}
	m.enqueue(ctx, b.GuestEmail, mailtpl.BookingCancelled,
		mailtpl.NewBookingCancelledData(m.Cfg, b.GuestName, b.GuestEmail, m.bookingInfo(b), b.CancelReason, refunded))
}

func (m *Mailer) PaymentReceipt(ctx context.Context, b *entity.Booking) {
	if m == nil || m.Cfg == nil {
		return
	}
	m.enqueue(ctx, b.GuestEmail, mailtpl.PaymentReceipt,
		mailtpl.NewPaymentReceiptData(m.Cfg, b.GuestName, b.GuestEmail, m.bookingInfo(b)))
}

func (m *Mailer) VerifyEmail(ctx context.Context, u *entity.User, token string) {
	if m == nil || m.Cfg == nil {
		return
	}
	m.enqueue(ctx, u.Email, mailtpl.VerifyEmail,
		mailtpl.NewVerifyEmailData(m.Cfg, u.Name, u.Email, token, m.Cfg.VerifyTokenTTL))
}

func (m *Mailer) ResetPassword(ctx context.Context, u *entity.User, token string) {
	if m == nil || m.Cfg == nil {
		return
	}
	m.enqueue(ctx, u.Email, mailtpl.ResetPassword,
		mailtpl.NewResetPasswordData(m.Cfg, u.Name, u.Email, token, m.Cfg.ResetTokenTTL))
}
