package pgsql

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const reservationColumns = `id, user_id, customer_name, customer_email, customer_phone,
	reservation_date, reservation_time, party_size, status,
	special_requests, occasion, table_preference, created_at, updated_at`

const bookingColumns = `id, reservation_date, reservation_time, party_size, status`

func scanReservation(row pgx.Row) (Reservation, error) {
	var r Reservation
	err := row.Scan(
		&r.ID,
		&r.UserID,
		&r.CustomerName,
		&r.CustomerEmail,
		&r.CustomerPhone,
		&r.ReservationDate,
		&r.ReservationTime,
		&r.PartySize,
		&r.Status,
		&r.SpecialRequests,
		&r.Occasion,
		&r.TablePreference,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func collectReservations(rows pgx.Rows, err error) ([]Reservation, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

func collectBookings(rows pgx.Rows, err error) ([]BookingRow, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BookingRow
	for rows.Next() {
		var b BookingRow
		if err := rows.Scan(&b.ID, &b.ReservationDate, &b.ReservationTime, &b.PartySize, &b.Status); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	return items, rows.Err()
}

const lockReservationDate = `SELECT pg_advisory_xact_lock(hashtext('reservations:' || $1::date::text))`

// LockReservationDate serializes writers for one reservation date until the
// surrounding transaction ends.
func (q *Queries) LockReservationDate(ctx context.Context, db DBTX, date pgtype.Date) error {
	_, err := db.Exec(ctx, lockReservationDate, date)
	return err
}

const sumSlotPartySize = `SELECT COALESCE(SUM(party_size), 0)::bigint
FROM reservations
WHERE reservation_date = $1 AND reservation_time = $2 AND status = ANY($3::text[])`

type SumSlotPartySizeParams struct {
	ReservationDate pgtype.Date
	ReservationTime pgtype.Time
	Statuses        []string
}

func (q *Queries) SumSlotPartySize(ctx context.Context, db DBTX, arg SumSlotPartySizeParams) (int64, error) {
	var total int64
	err := db.QueryRow(ctx, sumSlotPartySize, arg.ReservationDate, arg.ReservationTime, arg.Statuses).Scan(&total)
	return total, err
}

const listUserBookingsForDate = `SELECT ` + bookingColumns + `
FROM reservations
WHERE user_id = $1 AND reservation_date = $2
ORDER BY reservation_time`

func (q *Queries) ListUserBookingsForDate(ctx context.Context, db DBTX, userID uuid.UUID, date pgtype.Date) ([]BookingRow, error) {
	return collectBookings(db.Query(ctx, listUserBookingsForDate, userID, date))
}

const listGuestBookingsForDate = `SELECT ` + bookingColumns + `
FROM reservations
WHERE user_id IS NULL AND lower(customer_email) = lower($1) AND reservation_date = $2
ORDER BY reservation_time`

func (q *Queries) ListGuestBookingsForDate(ctx context.Context, db DBTX, email string, date pgtype.Date) ([]BookingRow, error) {
	return collectBookings(db.Query(ctx, listGuestBookingsForDate, email, date))
}

const listBookingsForSlot = `SELECT ` + bookingColumns + `
FROM reservations
WHERE reservation_date = $1 AND reservation_time = $2`

func (q *Queries) ListBookingsForSlot(ctx context.Context, db DBTX, date pgtype.Date, t pgtype.Time) ([]BookingRow, error) {
	return collectBookings(db.Query(ctx, listBookingsForSlot, date, t))
}

const listBookingsForDate = `SELECT ` + bookingColumns + `
FROM reservations
WHERE reservation_date = $1
ORDER BY reservation_time`

func (q *Queries) ListBookingsForDate(ctx context.Context, db DBTX, date pgtype.Date) ([]BookingRow, error) {
	return collectBookings(db.Query(ctx, listBookingsForDate, date))
}

const createReservation = `INSERT INTO reservations (
	id, user_id, customer_name, customer_email, customer_phone,
	reservation_date, reservation_time, party_size, status,
	special_requests, occasion, table_preference, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`

type CreateReservationParams struct {
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
}

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg CreateReservationParams) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID,
		arg.UserID,
		arg.CustomerName,
		arg.CustomerEmail,
		arg.CustomerPhone,
		arg.ReservationDate,
		arg.ReservationTime,
		arg.PartySize,
		arg.Status,
		arg.SpecialRequests,
		arg.Occasion,
		arg.TablePreference,
		arg.CreatedAt,
	)
	return err
}

const getReservationByID = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservationByID(ctx context.Context, db DBTX, id uuid.UUID) (Reservation, error) {
	return scanReservation(db.QueryRow(ctx, getReservationByID, id))
}

const listReservationsByUser = `SELECT ` + reservationColumns + `
FROM reservations
WHERE user_id = $1
ORDER BY reservation_date DESC, reservation_time DESC, created_at DESC`

func (q *Queries) ListReservationsByUser(ctx context.Context, db DBTX, userID uuid.UUID) ([]Reservation, error) {
	return collectReservations(db.Query(ctx, listReservationsByUser, userID))
}

const listReservationsByGuestEmail = `SELECT ` + reservationColumns + `
FROM reservations
WHERE user_id IS NULL AND lower(customer_email) = lower($1)
ORDER BY reservation_date DESC, reservation_time DESC, created_at DESC`

func (q *Queries) ListReservationsByGuestEmail(ctx context.Context, db DBTX, email string) ([]Reservation, error) {
	return collectReservations(db.Query(ctx, listReservationsByGuestEmail, email))
}

const updateReservationStatus = `UPDATE reservations
SET status = $2, updated_at = $4
WHERE id = $1 AND status = ANY($3::text[])`

type UpdateReservationStatusParams struct {
	ID           uuid.UUID
	Status       string
	FromStatuses []string
	UpdatedAt    pgtype.Timestamptz
}

// UpdateReservationStatus is a compare-and-set: it only updates rows currently in one of
// FromStatuses and returns the affected row count.
func (q *Queries) UpdateReservationStatus(ctx context.Context, db DBTX, arg UpdateReservationStatusParams) (int64, error) {
	tag, err := db.Exec(ctx, updateReservationStatus, arg.ID, arg.Status, arg.FromStatuses, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getReservationStatus = `SELECT status FROM reservations WHERE id = $1`

func (q *Queries) GetReservationStatus(ctx context.Context, db DBTX, id uuid.UUID) (string, error) {
	var status string
	err := db.QueryRow(ctx, getReservationStatus, id).Scan(&status)
	return status, err
}
