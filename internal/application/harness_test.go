package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/hotel-management/config"
	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/pkg/helpers"
	"github.com/oksasatya/hotel-management/pkg/mailer"
)

var ctxBG = context.Background()

func date(s string) time.Time {
	t, err := time.Parse(entity.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	guest = Actor{UserID: "u-guest", Role: entity.RoleUser, IP: "10.0.0.1", UserAgent: "test"}
	admin = Actor{UserID: "u-admin", Role: entity.RoleAdmin, IP: "10.0.0.2"}
	super = Actor{UserID: "u-super", Role: entity.RoleSuperAdmin, IP: "10.0.0.3"}
)

type harness struct {
	users     *fakeUsers
	sessions  *fakeSessions
	tokens    *fakeTokens
	rooms     *fakeRooms
	bookings  *fakeBookings
	payments  *fakePayments
	checkouts *fakeCheckouts
	notifs    *fakeNotifications
	bus       *fakeBus
	activity  *fakeActivity
	store     *fakeStore
	queue     *mockQueue

	auth     *AuthService
	userSvc  *UserService
	notify   *NotificationService
	roomSvc  *RoomService
	booking  *BookingService
	payment  *PaymentService
	feedback *FeedbackService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	hash, err := helpers.HashPassword("Passw0rd!")
	require.NoError(t, err)

	h := &harness{
		users: newFakeUsers(
			&entity.User{ID: "u-guest", Email: "guest@example.com", Name: "Gina Guest", Password: hash, Role: entity.RoleUser},
			&entity.User{ID: "u-admin", Email: "admin@example.com", Name: "Ada Admin", Password: hash, Role: entity.RoleAdmin},
			&entity.User{ID: "u-super", Email: "super@example.com", Name: "Sam Super", Password: hash, Role: entity.RoleSuperAdmin},
		),
		sessions: newFakeSessions(),
		tokens:   newFakeTokens(),
		rooms: newFakeRooms(
			&entity.Room{ID: "r-101", Number: "101", Type: entity.RoomDouble, Price: 12000, Capacity: 2, Available: true, HousekeepingStatus: entity.HKClean},
			&entity.Room{ID: "r-102", Number: "102", Type: entity.RoomSingle, Price: 8000, Capacity: 1, Available: false, HousekeepingStatus: entity.HKClean},
		),
		bookings:  newFakeBookings(),
		payments:  &fakePayments{},
		checkouts: newFakeCheckouts(),
		notifs:    &fakeNotifications{},
		bus:       &fakeBus{},
		activity:  &fakeActivity{},
		store:     newFakeStore(),
		queue:     &mockQueue{},
	}
	h.bookings.payments = h.payments
	h.queue.On("PublishJSON", mock.Anything, mock.Anything).Return(nil)

	log := quietLogger()
	cfg := &config.Config{
		AppName:          "hotel",
		HotelName:        "Grand Hotel",
		MailSendEnabled:  true,
		PaymentCurrency:  "usd",
		VerifyEmailURL:   "http://app.test/verify-email",
		ResetPasswordURL: "http://app.test/reset-password",
		ResetTokenTTL:    30 * time.Minute,
		VerifyTokenTTL:   24 * time.Hour,
	}
	mail := NewMailer(h.queue, cfg, log)
	act := NewActivityService(h.activity, log)
	h.notify = NewNotificationService(h.notifs, h.users, h.bus, log)

	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	h.auth = NewAuthService(h.users, h.sessions, h.tokens, jwt, log)
	h.auth.Mail, h.auth.Activity, h.auth.Storage = mail, act, h.store

	h.userSvc = NewUserService(h.users, h.sessions, nil, log)
	h.userSvc.Notifications, h.userSvc.Activity = h.notify, act

	h.roomSvc = NewRoomService(h.rooms, h.bookings, log)
	h.roomSvc.Activity, h.roomSvc.Storage = act, h.store

	h.booking = NewBookingService(h.bookings, h.roomSvc, h.users, h.payments, log)
	h.booking.Notifications, h.booking.Mail, h.booking.Activity = h.notify, mail, act
	h.booking.now = func() time.Time { return date("2026-03-01") }

	h.payment = NewPaymentService(h.payments, h.checkouts, h.bookings, log)
	h.payment.Notifications, h.payment.Mail, h.payment.Activity = h.notify, mail, act
	h.payment.CheckoutURL = "http://app.test/payments/checkout"

	h.feedback = NewFeedbackService(&fakeFeedback{}, newFakeReviews(), h.rooms, log)
	h.feedback.Activity = act
	return h
}

// sentTemplates lists the email templates enqueued so far, in order.
func (h *harness) sentTemplates() []string {
	var out []string
	for _, c := range h.queue.Calls {
		if job, ok := c.Arguments.Get(1).(mailer.EmailJob); ok {
			out = append(out, job.Template)
		}
	}
	return out
}

func (h *harness) book(t *testing.T, in, out string) *entity.Booking {
	t.Helper()
	b, err := h.booking.Create(ctxBG, guest, CreateBookingInput{RoomID: "r-101", CheckIn: date(in), CheckOut: date(out), Guests: 2})
	require.NoError(t, err)
	return b
}
