package reservation

import (
	"time"

	"github.com/google/uuid"
)

// DuplicateWindow is the minimum distance between two bookings of the same caller on
// the same date. Bookings on different dates never collide, including around midnight.
const DuplicateWindow = 60 * time.Minute

// Request is the raw, unvalidated booking input.
type Request struct {
	// Caller may be left zero for guest bookings; the guest key is then the email.
	Caller          CallerIdentity
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            string
	Time            string
	PartySize       *int
	SpecialRequests string
	Occasion        string
	TablePreference string
}

// ValidatedReservation carries normalized fields that passed every validator check.
// It can only be produced by Validator.Validate.
type ValidatedReservation struct {
	caller          CallerIdentity
	customerName    string
	customerEmail   string
	customerPhone   string
	date            Date
	time            TimeOfDay
	partySize       int
	specialRequests string
	occasion        string
	tablePreference string
	slotCapacity    int
}

func (v *ValidatedReservation) Caller() CallerIdentity  { return v.caller }
func (v *ValidatedReservation) CustomerName() string    { return v.customerName }
func (v *ValidatedReservation) CustomerEmail() string   { return v.customerEmail }
func (v *ValidatedReservation) CustomerPhone() string   { return v.customerPhone }
func (v *ValidatedReservation) Date() Date              { return v.date }
func (v *ValidatedReservation) Time() TimeOfDay         { return v.time }
func (v *ValidatedReservation) PartySize() int          { return v.partySize }
func (v *ValidatedReservation) SpecialRequests() string { return v.specialRequests }
func (v *ValidatedReservation) Occasion() string        { return v.occasion }
func (v *ValidatedReservation) TablePreference() string { return v.tablePreference }

// SlotCapacity is the capacity snapshot the request was validated against.
func (v *ValidatedReservation) SlotCapacity() int { return v.slotCapacity }

func (v *ValidatedReservation) SlotRequest() SlotRequest {
	return SlotRequest{Date: v.date, Time: v.time, PartySize: v.partySize}
}

type Reservation struct {
	id              uuid.UUID
	caller          CallerIdentity
	customerName    string
	customerEmail   string
	customerPhone   string
	date            Date
	time            TimeOfDay
	partySize       int
	status          Status
	specialRequests string
	occasion        string
	tablePreference string
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation builds a pending reservation from validated input.
func NewReservation(id uuid.UUID, v *ValidatedReservation, now time.Time) *Reservation {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Reservation{
		id:              id,
		caller:          v.caller,
		customerName:    v.customerName,
		customerEmail:   v.customerEmail,
		customerPhone:   v.customerPhone,
		date:            v.date,
		time:            v.time,
		partySize:       v.partySize,
		status:          StatusPending,
		specialRequests: v.specialRequests,
		occasion:        v.occasion,
		tablePreference: v.tablePreference,
		createdAt:       now,
		updatedAt:       now,
	}
}

type ReconstructParams struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            Date
	Time            TimeOfDay
	PartySize       int
	Status          Status
	SpecialRequests string
	Occasion        string
	TablePreference string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructReservation rebuilds a reservation loaded from storage.
func ReconstructReservation(p ReconstructParams) *Reservation {
	caller := Guest(p.CustomerEmail)
	if p.UserID != nil && *p.UserID != uuid.Nil {
		caller = Authenticated(*p.UserID)
	}
	return &Reservation{
		id:              p.ID,
		caller:          caller,
		customerName:    p.CustomerName,
		customerEmail:   p.CustomerEmail,
		customerPhone:   p.CustomerPhone,
		date:            p.Date,
		time:            p.Time,
		partySize:       p.PartySize,
		status:          p.Status,
		specialRequests: p.SpecialRequests,
		occasion:        p.Occasion,
		tablePreference: p.TablePreference,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) Caller() CallerIdentity  { return r.caller }
func (r *Reservation) CustomerName() string    { return r.customerName }
func (r *Reservation) CustomerEmail() string   { return r.customerEmail }
func (r *Reservation) CustomerPhone() string   { return r.customerPhone }
func (r *Reservation) Date() Date              { return r.date }
func (r *Reservation) Time() TimeOfDay         { return r.time }
func (r *Reservation) PartySize() int          { return r.partySize }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) SpecialRequests() string { return r.specialRequests }
func (r *Reservation) Occasion() string        { return r.occasion }
func (r *Reservation) TablePreference() string { return r.tablePreference }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }

// UserID is nil for guest reservations.
func (r *Reservation) UserID() *uuid.UUID {
	if !r.caller.IsAuthenticated() {
		return nil
	}
	id := r.caller.UserID()
	return &id
}

// IsOwnedBy matches authenticated callers by user id and guests by email on guest bookings.
func (r *Reservation) IsOwnedBy(caller CallerIdentity) bool {
	switch {
	case caller.IsAuthenticated():
		return r.caller.IsAuthenticated() && r.caller.UserID() == caller.UserID()
	case caller.IsGuest():
		return r.caller.IsGuest() && r.caller.Email() == caller.Email()
	default:
		return false
	}
}

func (r *Reservation) TransitionTo(next Status, now time.Time) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.status = next
	r.updatedAt = now
	return nil
}

func (r *Reservation) Booking() Booking {
	return Booking{
		ID:        r.id.String(),
		Date:      r.date,
		Time:      r.time,
		PartySize: r.partySize,
		Status:    r.status,
	}
}

// WithinDuplicateWindow reports whether two times on the same date are closer than
// DuplicateWindow.
func WithinDuplicateWindow(a, b TimeOfDay) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d < DuplicateWindow
}

// HasDuplicate reports whether any of the caller's bookings collides with (date, t).
func HasDuplicate(callerBookings []Booking, date Date, t TimeOfDay) bool {
	for _, b := range callerBookings {
		if b.Date != date || !b.Status.BlocksDuplicate() {
			continue
		}
		if WithinDuplicateWindow(b.Time, t) {
			return true
		}
	}
	return false
}
