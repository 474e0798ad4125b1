package entity

import "time"

type CheckoutStatus string

const (
	CheckoutOpen      CheckoutStatus = "open"
	CheckoutCompleted CheckoutStatus = "completed"
)

// CheckoutSession is a short-lived payment intent for one booking.
type CheckoutSession struct {
	ID        string         `json:"id"`
	BookingID string         `json:"booking_id"`
	UserID    string         `json:"user_id"`
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	Status    CheckoutStatus `json:"status"`
	URL       string         `json:"url"`
	PaymentID string         `json:"payment_id,omitempty"`
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// Payment is a settled charge (or refund) against a booking.
type Payment struct {
	ID        string
	BookingID string
	UserID    string
	SessionID string
	Amount    int64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
}
