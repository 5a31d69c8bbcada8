//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type ReservationFixture struct {
	UserID    *uuid.UUID
	Name      string
	Email     string
	Phone     string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	PartySize int
	Status    string
}

func CreateTestReservation(t *testing.T, db DBLike, f ReservationFixture) uuid.UUID {
	t.Helper()

	if f.Name == "" {
		f.Name = "Test Guest"
	}
	if f.Phone == "" {
		f.Phone = "+81 90-1234-5678"
	}
	if f.Status == "" {
		f.Status = "pending"
	}
	if f.PartySize == 0 {
		f.PartySize = 2
	}

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, user_id, customer_name, customer_email, customer_phone,
			reservation_date, reservation_time, party_size, status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9)`,
		id, f.UserID, f.Name, f.Email, f.Phone, f.Date, f.Time, f.PartySize, f.Status)
	require.NoError(t, err)
	return id
}

func ReservationStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM reservations WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountReservations(t *testing.T, db DBLike, date, slot string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM reservations WHERE reservation_date = $1::date AND reservation_time = $2::time",
		date, slot).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// SetCapacity narrows the slot capacity for capacity tests.
func SetCapacity(t *testing.T, db DBLike, capacity int) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE reservation_settings SET max_capacity_per_slot = $1 WHERE id = 1", capacity)
	require.NoError(t, err)
}

// inserts the default settings document the application would bootstrap
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO reservation_settings (id, opening_time, closing_time, slot_interval_minutes,
			max_capacity_per_slot, min_party_size, max_party_size, operating_days,
			allow_same_day_booking, advance_booking_days, blocked_dates)
		VALUES (1, '11:00', '23:00', 30, 10, 1, 20, '{}', TRUE, 30, '{}')
		ON CONFLICT (id) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
