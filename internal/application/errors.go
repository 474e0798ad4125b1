package application

import (
	"errors"

	"github.com/oksasatya/hotel-management/internal/domain/entity"
	"github.com/oksasatya/hotel-management/internal/domain/provider"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfDemotion       = errors.New("superadmin cannot demote themself")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownPermission  = errors.New("unknown permission")

	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNumberTaken  = errors.New("room number already exists")
	ErrRoomInUse        = errors.New("room has bookings")
	ErrRoomUnavailable  = errors.New("room is not available")
	ErrCapacityExceeded = errors.New("guests exceed room capacity")
	ErrInvalidRoom      = errors.New("invalid room")
	ErrInvalidDates     = errors.New("invalid dates")
	ErrRangeTooLong     = errors.New("date range too long")

	ErrBookingNotFound     = errors.New("booking not found")
	ErrBookingConflict     = errors.New("room already booked for these dates")
	ErrBookingChanged      = errors.New("booking was changed by another request, reload and retry")
	ErrInvalidTransition   = entity.ErrInvalidTransition
	ErrInvalidHousekeeping = entity.ErrInvalidHousekeepingTransition
	ErrPaymentRequired     = errors.New("booking must be paid before check-in")
	ErrBookingNotDeletable = errors.New("only cancelled or checked-out bookings can be deleted")

	ErrCheckoutNotFound = errors.New("checkout session not found")
	ErrCheckoutExpired  = errors.New("checkout session expired")
	ErrNotPayable       = errors.New("booking cannot be paid")

	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrReviewExists         = errors.New("you already reviewed this room")
	ErrReviewNotFound       = errors.New("review not found")
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupInvalid   = errors.New("backup document is invalid")
	ErrStorageDisabled = provider.ErrStorageDisabled
)
