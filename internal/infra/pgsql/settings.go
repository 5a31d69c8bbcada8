package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getReservationSettings = `SELECT opening_time, closing_time, slot_interval_minutes, max_capacity_per_slot,
	min_party_size, max_party_size, operating_days, allow_same_day_booking,
	advance_booking_days, blocked_dates, updated_at
FROM reservation_settings
WHERE id = 1`

func (q *Queries) GetReservationSettings(ctx context.Context, db DBTX) (ReservationSetting, error) {
	var s ReservationSetting
	err := db.QueryRow(ctx, getReservationSettings).Scan(
		&s.OpeningTime,
		&s.ClosingTime,
		&s.SlotIntervalMinutes,
		&s.MaxCapacityPerSlot,
		&s.MinPartySize,
		&s.MaxPartySize,
		&s.OperatingDays,
		&s.AllowSameDayBooking,
		&s.AdvanceBookingDays,
		&s.BlockedDates,
		&s.UpdatedAt,
	)
	return s, err
}

const getSlotCapacity = `SELECT max_capacity_per_slot FROM reservation_settings WHERE id = 1`

func (q *Queries) GetSlotCapacity(ctx context.Context, db DBTX) (int32, error) {
	var capacity int32
	err := db.QueryRow(ctx, getSlotCapacity).Scan(&capacity)
	return capacity, err
}

type UpsertReservationSettingsParams struct {
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

func (p UpsertReservationSettingsParams) args() []interface{} {
	return []interface{}{
		p.OpeningTime,
		p.ClosingTime,
		p.SlotIntervalMinutes,
		p.MaxCapacityPerSlot,
		p.MinPartySize,
		p.MaxPartySize,
		p.OperatingDays,
		p.AllowSameDayBooking,
		p.AdvanceBookingDays,
		p.BlockedDates,
		p.UpdatedAt,
	}
}

const insertReservationSettingsColumns = `INSERT INTO reservation_settings (
	id, opening_time, closing_time, slot_interval_minutes, max_capacity_per_slot,
	min_party_size, max_party_size, operating_days, allow_same_day_booking,
	advance_booking_days, blocked_dates, updated_at
) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

const upsertReservationSettings = insertReservationSettingsColumns + `
ON CONFLICT (id) DO UPDATE SET
	opening_time = EXCLUDED.opening_time,
	closing_time = EXCLUDED.closing_time,
	slot_interval_minutes = EXCLUDED.slot_interval_minutes,
	max_capacity_per_slot = EXCLUDED.max_capacity_per_slot,
	min_party_size = EXCLUDED.min_party_size,
	max_party_size = EXCLUDED.max_party_size,
	operating_days = EXCLUDED.operating_days,
	allow_same_day_booking = EXCLUDED.allow_same_day_booking,
	advance_booking_days = EXCLUDED.advance_booking_days,
	blocked_dates = EXCLUDED.blocked_dates,
	updated_at = EXCLUDED.updated_at`

func (q *Queries) UpsertReservationSettings(ctx context.Context, db DBTX, arg UpsertReservationSettingsParams) error {
	_, err := db.Exec(ctx, upsertReservationSettings, arg.args()...)
	return err
}

const insertReservationSettingsIfAbsent = insertReservationSettingsColumns + `
ON CONFLICT (id) DO NOTHING`

// InsertReservationSettingsIfAbsent returns 0 when a settings row already exists.
func (q *Queries) InsertReservationSettingsIfAbsent(ctx context.Context, db DBTX, arg UpsertReservationSettingsParams) (int64, error) {
	tag, err := db.Exec(ctx, insertReservationSettingsIfAbsent, arg.args()...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
