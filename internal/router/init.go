package router

import (
	"fmt"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/internal/container"
	"github.com/oksasatya/hotel-management/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/hotel-management/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/hotel-management/internal/interface/http"
	"github.com/oksasatya/hotel-management/internal/router/modules"
)

// Services is the application layer wired against the container's infrastructure.
type Services struct {
	Auth          *app.AuthService
	Users         *app.UserService
	Rooms         *app.RoomService
	Bookings      *app.BookingService
	Payments      *app.PaymentService
	Feedback      *app.FeedbackService
	Notifications *app.NotificationService
	Reports       *app.ReportService
	Backup        *app.BackupService
	Activity      *app.ActivityService
	Mail          *app.Mailer
}

func buildServices() (*Services, error) {
	cfg := container.GetConfig()
	log := container.GetLogger()
	pool := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(pool)
	rooms := pginfra.NewRoomRepository(pool)
	bookings := pginfra.NewBookingRepository(pool)
	payments := pginfra.NewPaymentRepository(pool)
	sessions := cache.NewSessionStore(rdb)

	activity := app.NewActivityService(pginfra.NewActivityRepository(container.GetSQLX()), log)
	mail := app.NewMailer(container.GetEmailQueue(), cfg, log)
	notifications := app.NewNotificationService(pginfra.NewNotificationRepository(pool), users, container.GetBus(), log)

	auth := app.NewAuthService(users, sessions, cache.NewTokenStore(rdb), container.GetJWT(), log)
	auth.Search = container.GetSearch()
	auth.Storage = container.GetObjectStore()
	auth.Mail = mail
	auth.Activity = activity
	auth.SessionTTL = cfg.SessionTTL
	auth.ResetTokenTTL = cfg.ResetTokenTTL
	auth.VerifyTokenTTL = cfg.VerifyTokenTTL

	userSvc := app.NewUserService(users, sessions, container.GetSearch(), log)
	userSvc.Notifications = notifications
	userSvc.Activity = activity

	roomSvc := app.NewRoomService(rooms, bookings, log)
	roomSvc.Index = container.GetSearch()
	roomSvc.Storage = container.GetObjectStore()
	roomSvc.Activity = activity
	roomSvc.MaxCalendarDays = cfg.MaxCalendarDays

	bookingSvc := app.NewBookingService(bookings, roomSvc, users, payments, log)
	bookingSvc.Notifications = notifications
	bookingSvc.Mail = mail
	bookingSvc.Activity = activity
	bookingSvc.Currency = cfg.PaymentCurrency

	paymentSvc := app.NewPaymentService(payments, cache.NewCheckoutStore(rdb), bookings, log)
	paymentSvc.Notifications = notifications
	paymentSvc.Mail = mail
	paymentSvc.Activity = activity
	paymentSvc.CheckoutURL = cfg.PaymentCheckoutURL
	paymentSvc.Currency = cfg.PaymentCurrency
	paymentSvc.SessionTTL = cfg.PaymentSessionTTL

	feedbackSvc := app.NewFeedbackService(pginfra.NewFeedbackRepository(pool), pginfra.NewReviewRepository(pool), rooms, log)
	feedbackSvc.Activity = activity

	backupSvc, err := app.NewBackupService(pginfra.NewBackupRepository(pool), container.GetObjectStore(), cfg.BackupPrefix, log)
	if err != nil {
		return nil, fmt.Errorf("backup service: %w", err)
	}
	backupSvc.Activity = activity

	return &Services{
		Auth:          auth,
		Users:         userSvc,
		Rooms:         roomSvc,
		Bookings:      bookingSvc,
		Payments:      paymentSvc,
		Feedback:      feedbackSvc,
		Notifications: notifications,
		Reports:       app.NewReportService(pginfra.NewReportRepository(container.GetSQLX())),
		Backup:        backupSvc,
		Activity:      activity,
		Mail:          mail,
	}, nil
}

// InitModules builds every service and registers the feature modules with
// the router registry. Call once during startup, after the container is filled.
func InitModules(r *Registry) error {
	svc, err := buildServices()
	if err != nil {
		return err
	}
	cfg := container.GetConfig()
	log := container.GetLogger()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, log, cfg.CookieDomain, cfg.CookieSecure), svc.Auth))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(svc.Auth, svc.Users, log), svc.Auth))
	r.Add(modules.NewRoomModule(handlers.NewRoomHandler(svc.Rooms, log), handlers.NewFeedbackHandler(svc.Feedback, log), svc.Auth))
	r.Add(modules.NewBookingModule(handlers.NewBookingHandler(svc.Bookings, log), svc.Auth))
	r.Add(modules.NewPaymentModule(handlers.NewPaymentHandler(svc.Payments, log), svc.Auth))
	r.Add(modules.NewFeedbackModule(handlers.NewFeedbackHandler(svc.Feedback, log), svc.Auth))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, log, cfg.NotifyHeartbeat), svc.Auth))
	r.Add(modules.NewReportModule(handlers.NewReportHandler(svc.Reports, svc.Activity, log), svc.Auth))
	r.Add(modules.NewBackupModule(handlers.NewBackupHandler(svc.Backup, log), svc.Auth))
	r.Add(modules.NewEmailModule(handlers.NewEmailHandler(svc.Mail, svc.Activity, log), svc.Auth))
	r.Add(modules.NewNavigationModule(handlers.NewNavigationHandler(container.GetNavigation()), svc.Auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return nil
}
