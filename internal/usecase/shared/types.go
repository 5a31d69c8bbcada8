package shared

import (
	"context"

	"table-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

// SettingsStore holds the single restaurant settings document.
type SettingsStore interface {
	// Get returns an infra.KindNotFound error when no document has been stored yet.
	Get(ctx context.Context) (*reservation.Settings, error)
	Save(ctx context.Context, s *reservation.Settings) error
	// SaveIfAbsent stores s only when no document exists and reports whether it did.
	SaveIfAbsent(ctx context.Context, s *reservation.Settings) (bool, error)
}

// ReservationRepository is the persistence boundary for reservations.
type ReservationRepository interface {
	reservation.BookingLookup

	// InsertIfValid re-checks slot capacity and the caller's duplicate window in the
	// same atomic unit as the write. A lost race is reported as infra.KindConflict.
	InsertIfValid(ctx context.Context, v *reservation.ValidatedReservation) (uuid.UUID, error)
	ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*reservation.Reservation, error)
	ListBookingsForSlot(ctx context.Context, date reservation.Date, t reservation.TimeOfDay) ([]reservation.Booking, error)
	ListBookingsForDate(ctx context.Context, date reservation.Date) ([]reservation.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// UpdateStatus applies next only if the stored status may transition to it.
	UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error
}

// Notifier is told about committed reservations. Delivery happens elsewhere.
type Notifier interface {
	ReservationCreated(ctx context.Context, res *reservation.Reservation) error
}
