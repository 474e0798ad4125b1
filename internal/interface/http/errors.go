package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	app "github.com/oksasatya/hotel-management/internal/application"
	"github.com/oksasatya/hotel-management/pkg/response"
	"github.com/oksasatya/hotel-management/pkg/validation"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{app.ErrInvalidCredentials, http.StatusUnauthorized},
	{app.ErrForbidden, http.StatusForbidden},
	{app.ErrSelfDemotion, http.StatusForbidden},

	{app.ErrUserNotFound, http.StatusNotFound},
	{app.ErrRoomNotFound, http.StatusNotFound},
	{app.ErrBookingNotFound, http.StatusNotFound},
	{app.ErrCheckoutNotFound, http.StatusNotFound},
	{app.ErrReviewNotFound, http.StatusNotFound},
	{app.ErrFeedbackNotFound, http.StatusNotFound},
	{app.ErrNotificationNotFound, http.StatusNotFound},
	{app.ErrBackupNotFound, http.StatusNotFound},

	{app.ErrEmailTaken, http.StatusConflict},
	{app.ErrAlreadyVerified, http.StatusConflict},
	{app.ErrRoomNumberTaken, http.StatusConflict},
	{app.ErrRoomInUse, http.StatusConflict},
	{app.ErrRoomUnavailable, http.StatusConflict},
	{app.ErrBookingConflict, http.StatusConflict},
	{app.ErrBookingChanged, http.StatusConflict},
	{app.ErrInvalidTransition, http.StatusConflict},
	{app.ErrInvalidHousekeeping, http.StatusConflict},
	{app.ErrPaymentRequired, http.StatusConflict},
	{app.ErrBookingNotDeletable, http.StatusConflict},
	{app.ErrNotPayable, http.StatusConflict},
	{app.ErrReviewExists, http.StatusConflict},
	{app.ErrCheckoutExpired, http.StatusGone},

	{app.ErrInvalidToken, http.StatusBadRequest},
	{app.ErrUnknownRole, http.StatusBadRequest},
	{app.ErrUnknownPermission, http.StatusBadRequest},
	{app.ErrInvalidRoom, http.StatusBadRequest},
	{app.ErrInvalidDates, http.StatusBadRequest},
	{app.ErrRangeTooLong, http.StatusBadRequest},
	{app.ErrCapacityExceeded, http.StatusBadRequest},
	{app.ErrInvalidRating, http.StatusBadRequest},
	{app.ErrBackupInvalid, http.StatusUnprocessableEntity},

	{app.ErrStorageDisabled, http.StatusServiceUnavailable},
}

// StatusFor maps a service error to its HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// fail renders err with its mapped status. Internal errors are logged and
// answered with a generic message.
func fail(c *gin.Context, log *logrus.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("request failed")
		}
		response.Error[any](c, status, "internal server error", nil)
		return
	}
	response.Error[any](c, status, err.Error(), nil)
}

func badPayload(c *gin.Context, err error) {
	response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
