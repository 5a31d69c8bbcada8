package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/handler/httperr"
	"table-reservation/internal/handler/middleware"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/commands"
	"table-reservation/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var validationMessages = map[reservation.ValidationCode]string{
	reservation.CodeMissingField:        "Please fill in all required fields",
	reservation.CodeInvalidFormat:       "Please check the format of the highlighted field",
	reservation.CodePartySizeOutOfRange: "Party size is outside the allowed range",
	reservation.CodePastDateTime:        "Reservations cannot be made for a past date or time",
	reservation.CodeSameDayNotAllowed:   "Same-day reservations are not available",
	reservation.CodeTooFarInAdvance:     "Reservations cannot be made that far in advance",
	reservation.CodeDateBlocked:         "The restaurant is not taking reservations on this date",
	reservation.CodeRestaurantClosed:    "The restaurant is closed on this day",
	reservation.CodeInvalidTimeSlot:     "Please choose one of the available time slots",
	reservation.CodeDuplicateBooking:    "You already have a reservation close to this time",
}

type validationDetail struct {
	Code  reservation.ValidationCode `json:"code"`
	Field string                     `json:"field,omitempty"`
	Value any                        `json:"value,omitempty"`
}

// abortWithReservationError maps usecase errors to HTTP responses. Anything not
// recognized is logged with stack lines and reported as a generic 500.
func abortWithReservationError(c *gin.Context, err error) {
	var verr *reservation.ValidationError
	switch {
	case errors.As(err, &verr):
		status := http.StatusUnprocessableEntity
		if verr.Code == reservation.CodeMissingField || verr.Code == reservation.CodeInvalidFormat {
			status = http.StatusBadRequest
		}
		httperr.AbortWithError(c, status, err, validationMessages[verr.Code], validationDetail{
			Code:  verr.Code,
			Field: verr.Field,
			Value: verr.Value,
		})
	case errs.Is(err, commands.ErrSlotConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "This time slot just filled up, please pick a different time", nil)
	case errs.Is(err, commands.ErrReservationNotFound), errs.Is(err, queries.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
	case errs.Is(err, commands.ErrNotReservationOwner):
		httperr.AbortWithError(c, http.StatusForbidden, err, "You cannot modify this reservation", nil)
	case errs.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation status cannot be changed", nil)
	case errs.Is(err, reservation.ErrInvalidStatus):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation status", nil)
	case errs.Is(err, reservation.ErrInvalidSettings):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation settings", nil)
	case errs.Is(err, commands.ErrSettingsUnavailable):
		logUnexpected(c, err)
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservations are temporarily unavailable", nil)
	case errs.Is(err, commands.ErrStorageUnavailable), errs.Is(err, queries.ErrStorageUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		logUnexpected(c, err)
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Reservations are temporarily unavailable", nil)
	default:
		logUnexpected(c, err)
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func logUnexpected(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "reservation request failed",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("path", c.Request.URL.Path),
		slog.Any("error", err),
		slog.Any("stack", errs.ExtractStackLines(err, 8)))
}
