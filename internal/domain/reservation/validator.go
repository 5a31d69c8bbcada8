package reservation

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
)

// BookingLookup is the read the validator needs for duplicate detection.
// Results may be stale; the repository enforces the window again on insert.
type BookingLookup interface {
	ListCallerBookings(ctx context.Context, caller CallerIdentity, date Date) ([]Booking, error)
}

type Validator struct {
	lookup BookingLookup
	loc    *time.Location
	logger *slog.Logger
}

// NewValidator evaluates dates in loc, the restaurant's time zone.
func NewValidator(lookup BookingLookup, loc *time.Location, logger *slog.Logger) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{lookup: lookup, loc: loc, logger: logger}
}

func (v *Validator) Location() *time.Location { return v.loc }

// Today returns the current calendar date in the restaurant's time zone.
func (v *Validator) Today(now time.Time) Date {
	return DateOf(now.In(v.loc))
}

// Validate runs the booking checks in order and returns the first failure.
func (v *Validator) Validate(ctx context.Context, s *Settings, req Request, now time.Time) (*ValidatedReservation, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := NormalizeEmail(req.CustomerEmail)
	phone := strings.TrimSpace(req.CustomerPhone)
	rawDate := strings.TrimSpace(req.Date)
	rawTime := strings.TrimSpace(req.Time)

	switch {
	case name == "":
		return nil, newValidationError(CodeMissingField, "customerName", nil)
	case email == "":
		return nil, newValidationError(CodeMissingField, "customerEmail", nil)
	case phone == "":
		return nil, newValidationError(CodeMissingField, "customerPhone", nil)
	case rawDate == "":
		return nil, newValidationError(CodeMissingField, "date", nil)
	case rawTime == "":
		return nil, newValidationError(CodeMissingField, "time", nil)
	case req.PartySize == nil:
		return nil, newValidationError(CodeMissingField, "partySize", nil)
	}

	if !emailPattern.MatchString(email) {
		return nil, newValidationError(CodeInvalidFormat, "customerEmail", req.CustomerEmail)
	}
	if !phonePattern.MatchString(phone) {
		return nil, newValidationError(CodeInvalidFormat, "customerPhone", req.CustomerPhone)
	}
	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, newValidationError(CodeInvalidFormat, "date", req.Date)
	}
	tod, err := ParseTimeOfDay(rawTime)
	if err != nil || !tod.IsValid() {
		return nil, newValidationError(CodeInvalidFormat, "time", req.Time)
	}

	partySize := *req.PartySize
	if !s.PartySizeAllowed(partySize) {
		return nil, newValidationError(CodePartySizeOutOfRange, "partySize", partySize)
	}

	localNow := now.In(v.loc)
	if !date.At(tod, v.loc).After(localNow) {
		return nil, newValidationError(CodePastDateTime, "date", date.String()+" "+tod.Short())
	}

	today := DateOf(localNow)
	if date == today && !s.AllowSameDayBooking() {
		return nil, newValidationError(CodeSameDayNotAllowed, "date", date.String())
	}
	if date.After(today.AddDays(s.AdvanceBookingDays())) {
		return nil, newValidationError(CodeTooFarInAdvance, "date", date.String())
	}
	if s.IsBlocked(date) {
		return nil, newValidationError(CodeDateBlocked, "date", date.String())
	}
	if !s.IsOperatingDay(date) {
		return nil, newValidationError(CodeRestaurantClosed, "date", date.String())
	}
	if !IsSlot(s, date, tod) {
		return nil, newValidationError(CodeInvalidTimeSlot, "time", tod.Short())
	}

	caller := req.Caller
	if caller.IsZero() {
		caller = Guest(email)
	}

	if err := v.checkDuplicate(ctx, caller, date, tod); err != nil {
		return nil, err
	}

	return &ValidatedReservation{
		caller:          caller,
		customerName:    name,
		customerEmail:   email,
		customerPhone:   phone,
		date:            date,
		time:            tod,
		partySize:       partySize,
		specialRequests: strings.TrimSpace(req.SpecialRequests),
		occasion:        strings.TrimSpace(req.Occasion),
		tablePreference: strings.TrimSpace(req.TablePreference),
		slotCapacity:    s.MaxCapacityPerSlot(),
	}, nil
}

func (v *Validator) checkDuplicate(ctx context.Context, caller CallerIdentity, date Date, t TimeOfDay) error {
	if v.lookup == nil {
		return nil
	}

	bookings, err := v.lookup.ListCallerBookings(ctx, caller, date)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		v.logger.WarnContext(ctx, "duplicate booking lookup failed, deferring to insert-time check",
			slog.String("caller", caller.Key()),
			slog.String("date", date.String()),
			slog.Any("error", err))
		return nil
	}

	if HasDuplicate(bookings, date, t) {
		return newValidationError(CodeDuplicateBooking, "time", t.Short())
	}
	return nil
}
