package queries

import (
	"context"
	"log/slog"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrStorageUnavailable  = errs.New("reservation storage unavailable")
)

type ReservationQueries interface {
	// GetByID returns any reservation; authorization is enforced by the caller.
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	// GetForCaller hides reservations the caller does not own.
	GetForCaller(ctx context.Context, id uuid.UUID, caller reservation.CallerIdentity) (*ReservationView, error)
	ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*ReservationView, error)
	Availability(ctx context.Context, date reservation.Date, partySize int) (*AvailabilityView, error)
	Settings(ctx context.Context) (*SettingsView, error)
}

type ReservationReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*reservation.Reservation, error)
	ListBookingsForDate(ctx context.Context, date reservation.Date) ([]reservation.Booking, error)
}

type SettingsReader interface {
	Get(ctx context.Context) (*reservation.Settings, error)
}

type reservationQueriesImpl struct {
	reader   ReservationReader
	settings SettingsReader
	clock    clock.Clock
	loc      *time.Location
	logger   *slog.Logger
}

func NewReservationQueries(reader ReservationReader, settings SettingsReader, clk clock.Clock, loc *time.Location, logger *slog.Logger) ReservationQueries {
	if loc == nil {
		loc = time.UTC
	}
	return &reservationQueriesImpl{
		reader:   reader,
		settings: settings,
		clock:    clk,
		loc:      loc,
		logger:   logger,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	res, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrStorageUnavailable)
	}
	return toReservationView(res), nil
}

func (q *reservationQueriesImpl) GetForCaller(ctx context.Context, id uuid.UUID, caller reservation.CallerIdentity) (*ReservationView, error) {
	res, err := q.reader.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrStorageUnavailable)
	}
	if !res.IsOwnedBy(caller) {
		return nil, ErrReservationNotFound
	}
	return toReservationView(res), nil
}

func (q *reservationQueriesImpl) ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*ReservationView, error) {
	if caller.IsZero() {
		return []*ReservationView{}, nil
	}
	rows, err := q.reader.ListByCaller(ctx, caller)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageUnavailable)
	}

	views := make([]*ReservationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, toReservationView(r))
	}
	return views, nil
}

// Availability is display-only. Unreadable settings fall back to defaults and
// unreadable bookings fall back to optimistic availability; both are flagged.
func (q *reservationQueriesImpl) Availability(ctx context.Context, date reservation.Date, partySize int) (*AvailabilityView, error) {
	settings, fallback := q.loadSettings(ctx)
	if partySize <= 0 {
		partySize = settings.MinPartySize()
	}

	view := &AvailabilityView{
		Date:             date.String(),
		PartySize:        partySize,
		SettingsFallback: fallback,
		CapacityKnown:    true,
		Slots:            []SlotAvailabilityView{},
	}

	now := q.clock.Now().In(q.loc)
	today := reservation.DateOf(now)
	if reason, closed := closedReason(settings, date, today, partySize); closed {
		view.ClosedReason = string(reason)
		return view, nil
	}
	view.Open = true

	bookings, err := q.reader.ListBookingsForDate(ctx, date)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errs.Mark(ctxErr, ErrStorageUnavailable)
		}
		q.logger.WarnContext(ctx, "availability read failed, showing optimistic capacity",
			slog.String("date", date.String()),
			slog.Any("error", err))
		view.CapacityKnown = false
	}

	for _, slot := range reservation.GenerateSlots(settings, date) {
		candidate := reservation.SlotRequest{Date: date, Time: slot, PartySize: partySize}
		availability := reservation.UnknownAvailability(settings)
		if err == nil {
			availability = reservation.CheckAvailability(settings, bookings, candidate)
		}
		if !date.At(slot, q.loc).After(now) {
			availability.Available = false
		}
		view.Slots = append(view.Slots, SlotAvailabilityView{
			Time:              slot.Short(),
			Available:         availability.Available,
			RemainingCapacity: availability.RemainingCapacity,
		})
	}
	return view, nil
}

func (q *reservationQueriesImpl) Settings(ctx context.Context) (*SettingsView, error) {
	settings, fallback := q.loadSettings(ctx)
	view := toSettingsView(settings)
	view.Fallback = fallback
	return view, nil
}

func (q *reservationQueriesImpl) loadSettings(ctx context.Context) (*reservation.Settings, bool) {
	settings, err := q.settings.Get(ctx)
	if err != nil {
		q.logger.WarnContext(ctx, "settings read failed, displaying defaults", slog.Any("error", err))
		return reservation.DefaultSettings(), true
	}
	return settings, false
}

// closedReason applies the date-level booking rules in validator order.
func closedReason(s *reservation.Settings, date, today reservation.Date, partySize int) (reservation.ValidationCode, bool) {
	switch {
	case !s.PartySizeAllowed(partySize):
		return reservation.CodePartySizeOutOfRange, true
	case date.Before(today):
		return reservation.CodePastDateTime, true
	case date == today && !s.AllowSameDayBooking():
		return reservation.CodeSameDayNotAllowed, true
	case date.After(today.AddDays(s.AdvanceBookingDays())):
		return reservation.CodeTooFarInAdvance, true
	case s.IsBlocked(date):
		return reservation.CodeDateBlocked, true
	case !s.IsOperatingDay(date):
		return reservation.CodeRestaurantClosed, true
	}
	return "", false
}

func toReservationView(r *reservation.Reservation) *ReservationView {
	return &ReservationView{
		ID:              r.ID(),
		UserID:          r.UserID(),
		CustomerName:    r.CustomerName(),
		CustomerEmail:   r.CustomerEmail(),
		CustomerPhone:   r.CustomerPhone(),
		Date:            r.Date().String(),
		Time:            r.Time().Short(),
		PartySize:       r.PartySize(),
		Status:          r.Status().String(),
		SpecialRequests: r.SpecialRequests(),
		Occasion:        r.Occasion(),
		TablePreference: r.TablePreference(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func toSettingsView(s *reservation.Settings) *SettingsView {
	days := make([]int, 0, 7)
	for _, d := range s.OperatingDays() {
		days = append(days, int(d))
	}
	blocked := make([]string, 0)
	for _, d := range s.BlockedDates() {
		blocked = append(blocked, d.String())
	}
	slots := make([]string, 0)
	for _, t := range reservation.GenerateSlots(s, reservation.Date{}) {
		slots = append(slots, t.Short())
	}

	return &SettingsView{
		OpeningTime:         s.OpeningTime().Short(),
		ClosingTime:         s.ClosingTime().Short(),
		SlotIntervalMinutes: s.SlotIntervalMinutes(),
		MaxCapacityPerSlot:  s.MaxCapacityPerSlot(),
		MinPartySize:        s.MinPartySize(),
		MaxPartySize:        s.MaxPartySize(),
		OperatingDays:       days,
		AllowSameDayBooking: s.AllowSameDayBooking(),
		AdvanceBookingDays:  s.AdvanceBookingDays(),
		BlockedDates:        blocked,
		TimeSlots:           slots,
		UpdatedAt:           s.UpdatedAt(),
	}
}
