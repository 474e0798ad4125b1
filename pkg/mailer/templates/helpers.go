package templates

import (
	"fmt"
	"strings"
	"time"

	"github.com/oksasatya/hotel-management/config"
)

// Option pattern
type Option func(*EmailData)

func WithVerifyURL(url string) Option { return func(d *EmailData) { d.VerifyURL = url } }
func WithResetURL(url string) Option  { return func(d *EmailData) { d.ResetURL = url } }

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		d.ExpiresAtText = time.Now().Add(dur).UTC().Format("02 January 2006, 15:04")
	}
}

func WithCancelReason(reason string) Option {
	return func(d *EmailData) { d.CancelReason = strings.TrimSpace(reason) }
}

func WithRefund(refunded bool) Option { return func(d *EmailData) { d.Refunded = refunded } }

// BookingInfo is the booking slice of EmailData, kept separate so callers
// don't have to depend on the entity package.
type BookingInfo struct {
	ID         string
	RoomNumber string
	CheckIn    time.Time
	CheckOut   time.Time
	Nights     int
	Amount     int64
	Currency   string
}

func WithBooking(b BookingInfo) Option {
	return func(d *EmailData) {
		d.BookingID = b.ID
		d.RoomNumber = b.RoomNumber
		d.CheckIn = b.CheckIn.Format("Mon 02 Jan 2006")
		d.CheckOut = b.CheckOut.Format("Mon 02 Jan 2006")
		d.Nights = b.Nights
		d.Amount = FormatAmount(b.Amount, b.Currency)
	}
}

// FormatAmount renders minor units as "12.50 USD".
func FormatAmount(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, minor/100, minor%100, strings.ToUpper(currency))
}

// NewBaseEmailData fills the hotel-wide fields from config, then applies opts
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		HotelName:    cfg.HotelName,
		HotelAddress: cfg.HotelAddress,
		AppName:      cfg.AppName,

		LogoURL:      cfg.LogoURL,
		SupportURL:   cfg.SupportURL,
		DashboardURL: cfg.DashboardURL,

		ResetURL:  cfg.ResetPasswordURL,
		VerifyURL: cfg.VerifyEmailURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerifyEmailData(cfg *config.Config, name, email, token string, ttl time.Duration) map[string]any {
	d := NewBaseEmailData(cfg, VerifyEmail, name, email,
		WithVerifyURL(withToken(cfg.VerifyEmailURL, token)), WithExpiresIn(ttl))
	return ToMap(d)
}

func NewResetPasswordData(cfg *config.Config, name, email, token string, ttl time.Duration) map[string]any {
	d := NewBaseEmailData(cfg, ResetPassword, name, email,
		WithResetURL(withToken(cfg.ResetPasswordURL, token)), WithExpiresIn(ttl))
	return ToMap(d)
}

func NewBookingConfirmedData(cfg *config.Config, name, email string, b BookingInfo) map[string]any {
	return ToMap(NewBaseEmailData(cfg, BookingConfirmed, name, email, WithBooking(b)))
}

func NewBookingCancelledData(cfg *config.Config, name, email string, b BookingInfo, reason string, refunded bool) map[string]any {
	return ToMap(NewBaseEmailData(cfg, BookingCancelled, name, email,
		WithBooking(b), WithCancelReason(reason), WithRefund(refunded)))
}

func NewPaymentReceiptData(cfg *config.Config, name, email string, b BookingInfo) map[string]any {
	return ToMap(NewBaseEmailData(cfg, PaymentReceipt, name, email, WithBooking(b)))
}

func withToken(base, token string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + token
}
