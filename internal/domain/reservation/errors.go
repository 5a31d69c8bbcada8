package reservation

import (
	"fmt"

	"table-reservation/internal/pkg/errs"
)

var (
	ErrInvalidStatus     = errs.New("invalid reservation status")
	ErrInvalidTransition = errs.New("invalid reservation status transition")
	ErrInvalidSettings   = errs.New("invalid reservation settings")
)

type ValidationCode string

const (
	CodeMissingField        ValidationCode = "MISSING_FIELD"
	CodeInvalidFormat       ValidationCode = "INVALID_FORMAT"
	CodePartySizeOutOfRange ValidationCode = "PARTY_SIZE_OUT_OF_RANGE"
	CodePastDateTime        ValidationCode = "PAST_DATE_TIME"
	CodeSameDayNotAllowed   ValidationCode = "SAME_DAY_NOT_ALLOWED"
	CodeTooFarInAdvance     ValidationCode = "TOO_FAR_IN_ADVANCE"
	CodeDateBlocked         ValidationCode = "DATE_BLOCKED"
	CodeRestaurantClosed    ValidationCode = "RESTAURANT_CLOSED"
	CodeInvalidTimeSlot     ValidationCode = "INVALID_TIME_SLOT"
	CodeDuplicateBooking    ValidationCode = "DUPLICATE_BOOKING"
)

// ValidationError is a caller-correctable rejection of a reservation request.
// errors.Is matches any ValidationError against the sentinel of the same code.
type ValidationError struct {
	Code  ValidationCode
	Field string
	Value any
}

var (
	ErrMissingField        = &ValidationError{Code: CodeMissingField}
	ErrInvalidFormat       = &ValidationError{Code: CodeInvalidFormat}
	ErrPartySizeOutOfRange = &ValidationError{Code: CodePartySizeOutOfRange}
	ErrPastDateTime        = &ValidationError{Code: CodePastDateTime}
	ErrSameDayNotAllowed   = &ValidationError{Code: CodeSameDayNotAllowed}
	ErrTooFarInAdvance     = &ValidationError{Code: CodeTooFarInAdvance}
	ErrDateBlocked         = &ValidationError{Code: CodeDateBlocked}
	ErrRestaurantClosed    = &ValidationError{Code: CodeRestaurantClosed}
	ErrInvalidTimeSlot     = &ValidationError{Code: CodeInvalidTimeSlot}
	ErrDuplicateBooking    = &ValidationError{Code: CodeDuplicateBooking}
)

func newValidationError(code ValidationCode, field string, value any) *ValidationError {
	return &ValidationError{Code: code, Field: field, Value: value}
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Value != nil:
		return fmt.Sprintf("reservation validation failed: %s (%s=%v)", e.Code, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("reservation validation failed: %s (%s)", e.Code, e.Field)
	default:
		return "reservation validation failed: " + string(e.Code)
	}
}

func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}
