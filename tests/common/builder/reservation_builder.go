//go:build unit || e2e

package builder

import (
	"time"

	"table-reservation/internal/domain/reservation"
	reqdto "table-reservation/internal/handler/dto/request"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/infra/repository/converter"
	"table-reservation/internal/pkg/pgconv"
	"table-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	Date            reservation.Date
	Time            reservation.TimeOfDay
	PartySize       int
	Status          reservation.Status
	SpecialRequests string
	Occasion        string
	TablePreference string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewReservationBuilder defaults to a guest booking for two at 18:00 tomorrow (UTC).
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now()
	return &ReservationBuilder{
		ID:              uuid.New(),
		CustomerName:    "Hanako Yamada",
		CustomerEmail:   "hanako@example.com",
		CustomerPhone:   "+81 90-1234-5678",
		Date:            reservation.DateOf(now.UTC()).AddDays(1),
		Time:            reservation.NewTimeOfDay(18, 0),
		PartySize:       2,
		Status:          reservation.StatusPending,
		SpecialRequests: "Window seat if possible",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithUser(id uuid.UUID) *ReservationBuilder {
	r.UserID = &id
	return r
}

func (r *ReservationBuilder) WithEmail(email string) *ReservationBuilder {
	r.CustomerEmail = email
	return r
}

func (r *ReservationBuilder) WithSlot(date reservation.Date, t reservation.TimeOfDay) *ReservationBuilder {
	r.Date = date
	r.Time = t
	return r
}

func (r *ReservationBuilder) WithPartySize(n int) *ReservationBuilder {
	r.PartySize = n
	return r
}

func (r *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	r.Status = s
	return r
}

// Caller is the identity that owns the built reservation.
func (r *ReservationBuilder) Caller() reservation.CallerIdentity {
	if r.UserID != nil {
		return reservation.Authenticated(*r.UserID)
	}
	return reservation.Guest(r.CustomerEmail)
}

// Build methods
func (r *ReservationBuilder) BuildRequest() reservation.Request {
	partySize := r.PartySize
	var caller reservation.CallerIdentity
	if r.UserID != nil {
		caller = reservation.Authenticated(*r.UserID)
	}
	return reservation.Request{
		Caller:          caller,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date.String(),
		Time:            r.Time.Short(),
		PartySize:       &partySize,
		SpecialRequests: r.SpecialRequests,
		Occasion:        r.Occasion,
		TablePreference: r.TablePreference,
	}
}

func (r *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:              r.ID,
		UserID:          r.UserID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date,
		Time:            r.Time,
		PartySize:       r.PartySize,
		Status:          r.Status,
		SpecialRequests: r.SpecialRequests,
		Occasion:        r.Occasion,
		TablePreference: r.TablePreference,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	})
}

func (r *ReservationBuilder) BuildBooking() reservation.Booking {
	return reservation.Booking{
		ID:        r.ID.String(),
		Date:      r.Date,
		Time:      r.Time,
		PartySize: r.PartySize,
		Status:    r.Status,
	}
}

func (r *ReservationBuilder) BuildInfra() pgsql.Reservation {
	return pgsql.Reservation{
		ID:              r.ID,
		UserID:          pgconv.UUIDPtrToPgtype(r.UserID),
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		ReservationDate: converter.DateToPg(r.Date),
		ReservationTime: converter.TimeOfDayToPg(r.Time),
		PartySize:       int32(r.PartySize), // #nosec G115 -- test data
		Status:          r.Status.String(),
		SpecialRequests: pgconv.StringToPgtype(r.SpecialRequests),
		Occasion:        pgconv.StringToPgtype(r.Occasion),
		TablePreference: pgconv.StringToPgtype(r.TablePreference),
		CreatedAt:       pgconv.TimeToPgtype(r.CreatedAt),
		UpdatedAt:       pgconv.TimeToPgtype(r.UpdatedAt),
	}
}

func (r *ReservationBuilder) BuildBookingRow() pgsql.BookingRow {
	return pgsql.BookingRow{
		ID:              r.ID,
		ReservationDate: converter.DateToPg(r.Date),
		ReservationTime: converter.TimeOfDayToPg(r.Time),
		PartySize:       int32(r.PartySize), // #nosec G115 -- test data
		Status:          r.Status.String(),
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	partySize := r.PartySize
	return reqdto.CreateReservationRequest{
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date.String(),
		Time:            r.Time.Short(),
		PartySize:       &partySize,
		SpecialRequests: r.SpecialRequests,
		Occasion:        r.Occasion,
		TablePreference: r.TablePreference,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              r.ID,
		UserID:          r.UserID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Date:            r.Date.String(),
		Time:            r.Time.Short(),
		PartySize:       r.PartySize,
		Status:          r.Status.String(),
		SpecialRequests: r.SpecialRequests,
		Occasion:        r.Occasion,
		TablePreference: r.TablePreference,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
