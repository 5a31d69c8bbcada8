// Package memstore keeps reservations and settings in process memory. It backs the
// "memory" storage driver and concurrency tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReservationStore guards all state with one mutex so InsertIfValid's checks and
// write form a single critical section.
type ReservationStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*reservation.Reservation
	byDate   map[reservation.Date][]*reservation.Reservation
	settings *SettingsStore
	clock    clock.Clock
}

// NewReservationStore reads the current slot capacity from settings at insert time.
// settings may be nil, in which case the validated capacity is used.
func NewReservationStore(clk clock.Clock, settings *SettingsStore) *ReservationStore {
	return &ReservationStore{
		byID:     make(map[uuid.UUID]*reservation.Reservation),
		byDate:   make(map[reservation.Date][]*reservation.Reservation),
		settings: settings,
		clock:    clk,
	}
}

var _ shared.ReservationRepository = (*ReservationStore)(nil)

func (s *ReservationStore) InsertIfValid(ctx context.Context, v *reservation.ValidatedReservation) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, infra.WrapRepoErr("insert cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sameDate := s.bookingsLocked(v.Date())

	booked := reservation.BookedPartySize(sameDate, v.Date(), v.Time())
	if booked+v.PartySize() > s.slotCapacity(v) {
		return uuid.Nil, infra.NewRepoErr(infra.KindConflict, "slot capacity exceeded")
	}

	if reservation.HasDuplicate(s.callerBookingsLocked(v.Caller(), v.Date()), v.Date(), v.Time()) {
		return uuid.Nil, infra.NewRepoErr(infra.KindConflict, "caller already holds a booking within the duplicate window")
	}

	res := reservation.NewReservation(uuid.New(), v, s.clock.Now())
	s.byID[res.ID()] = res
	s.byDate[res.Date()] = append(s.byDate[res.Date()], res)

	return res.ID(), nil
}

func (s *ReservationStore) slotCapacity(v *reservation.ValidatedReservation) int {
	if s.settings == nil {
		return v.SlotCapacity()
	}
	s.settings.mu.RLock()
	defer s.settings.mu.RUnlock()
	if s.settings.settings == nil {
		return v.SlotCapacity()
	}
	return s.settings.settings.MaxCapacityPerSlot()
}

func (s *ReservationStore) ListCallerBookings(ctx context.Context, caller reservation.CallerIdentity, date reservation.Date) ([]reservation.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callerBookingsLocked(caller, date), nil
}

func (s *ReservationStore) ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*reservation.Reservation
	for _, res := range s.byID {
		if res.IsOwnedBy(caller) {
			cp := *res
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Date() != b.Date() {
			return a.Date().After(b.Date())
		}
		if a.Time() != b.Time() {
			return a.Time() > b.Time()
		}
		return a.CreatedAt().After(b.CreatedAt())
	})
	return out, nil
}

func (s *ReservationStore) ListBookingsForSlot(ctx context.Context, date reservation.Date, t reservation.TimeOfDay) ([]reservation.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []reservation.Booking
	for _, b := range s.bookingsLocked(date) {
		if b.Time == t {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *ReservationStore) ListBookingsForDate(ctx context.Context, date reservation.Date) ([]reservation.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookingsLocked(date), nil
}

func (s *ReservationStore) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	cp := *res
	return &cp, nil
}

func (s *ReservationStore) UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.byID[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	if err := res.TransitionTo(next, s.clock.Now()); err != nil {
		return infra.WrapRepoErr("illegal status transition", err, infra.KindInvalidTransition)
	}
	return nil
}

func (s *ReservationStore) bookingsLocked(date reservation.Date) []reservation.Booking {
	list := s.byDate[date]
	out := make([]reservation.Booking, 0, len(list))
	for _, res := range list {
		out = append(out, res.Booking())
	}
	return out
}

func (s *ReservationStore) callerBookingsLocked(caller reservation.CallerIdentity, date reservation.Date) []reservation.Booking {
	var out []reservation.Booking
	for _, res := range s.byDate[date] {
		if res.IsOwnedBy(caller) {
			out = append(out, res.Booking())
		}
	}
	return out
}
