package pgsql

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Reservation struct {
	ID              uuid.UUID
	UserID          pgtype.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ReservationDate pgtype.Date
	ReservationTime pgtype.Time
	PartySize       int32
	Status          string
	SpecialRequests pgtype.Text
	Occasion        pgtype.Text
	TablePreference pgtype.Text
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// BookingRow is the narrow projection used by capacity and duplicate checks.
type BookingRow struct {
	ID              uuid.UUID
	ReservationDate pgtype.Date
	ReservationTime pgtype.Time
	PartySize       int32
	Status          string
}

type ReservationSetting struct {
	OpeningTime         pgtype.Time
	ClosingTime         pgtype.Time
	SlotIntervalMinutes int32
	MaxCapacityPerSlot  int32
	MinPartySize        int32
	MaxPartySize        int32
	OperatingDays       []int16
	AllowSameDayBooking bool
	AdvanceBookingDays  int32
	BlockedDates        []pgtype.Date
	UpdatedAt           pgtype.Timestamptz
}

type NotificationJob struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     pgtype.Timestamptz
	Attempts  int32
	Status    string
	LastError pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
