package repository

import (
	"context"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/infra/repository/converter"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/pgconv"
	"table-reservation/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationQueries interface {
	LockReservationDate(ctx context.Context, db pgsql.DBTX, date pgtype.Date) error
	GetSlotCapacity(ctx context.Context, db pgsql.DBTX) (int32, error)
	SumSlotPartySize(ctx context.Context, db pgsql.DBTX, arg pgsql.SumSlotPartySizeParams) (int64, error)
	ListUserBookingsForDate(ctx context.Context, db pgsql.DBTX, userID uuid.UUID, date pgtype.Date) ([]pgsql.BookingRow, error)
	ListGuestBookingsForDate(ctx context.Context, db pgsql.DBTX, email string, date pgtype.Date) ([]pgsql.BookingRow, error)
	ListBookingsForSlot(ctx context.Context, db pgsql.DBTX, date pgtype.Date, t pgtype.Time) ([]pgsql.BookingRow, error)
	ListBookingsForDate(ctx context.Context, db pgsql.DBTX, date pgtype.Date) ([]pgsql.BookingRow, error)
	CreateReservation(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateReservationParams) error
	GetReservationByID(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (pgsql.Reservation, error)
	ListReservationsByUser(ctx context.Context, db pgsql.DBTX, userID uuid.UUID) ([]pgsql.Reservation, error)
	ListReservationsByGuestEmail(ctx context.Context, db pgsql.DBTX, email string) ([]pgsql.Reservation, error)
	UpdateReservationStatus(ctx context.Context, db pgsql.DBTX, arg pgsql.UpdateReservationStatusParams) (int64, error)
	GetReservationStatus(ctx context.Context, db pgsql.DBTX, id uuid.UUID) (string, error)
}

type ReservationRepository struct {
	queries ReservationQueries
	uow     shared.UnitOfWork
	clock   clock.Clock
}

func NewReservationRepository(queries ReservationQueries, uow shared.UnitOfWork, clk clock.Clock) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		uow:     uow,
		clock:   clk,
	}
}

var _ shared.ReservationRepository = (*ReservationRepository)(nil)

// InsertIfValid holds a per-date advisory lock for the transaction, so concurrent inserts
// for the same date observe each other's committed rows before the capacity and
// duplicate checks run. Capacity is re-read inside the transaction so a limit lowered
// after validation still applies.
func (r *ReservationRepository) InsertIfValid(ctx context.Context, v *reservation.ValidatedReservation) (uuid.UUID, error) {
	res := reservation.NewReservation(uuid.New(), v, r.clock.Now())
	date := converter.DateToPg(v.Date())

	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		db := tx.DB()

		if err := r.queries.LockReservationDate(ctx, db, date); err != nil {
			return infra.WrapRepoErr("failed to lock reservation date", err)
		}

		capacity, err := r.slotCapacity(ctx, db, v)
		if err != nil {
			return err
		}

		booked, err := r.queries.SumSlotPartySize(ctx, db, pgsql.SumSlotPartySizeParams{
			ReservationDate: date,
			ReservationTime: converter.TimeOfDayToPg(v.Time()),
			Statuses:        converter.StatusesToInfra(reservation.CapacityStatuses()),
		})
		if err != nil {
			return infra.WrapRepoErr("failed to sum slot party size", err)
		}
		if int(booked)+v.PartySize() > capacity {
			return infra.NewRepoErr(infra.KindConflict, "slot capacity exceeded")
		}

		existing, err := r.callerBookings(ctx, db, v.Caller(), date)
		if err != nil {
			return err
		}
		if reservation.HasDuplicate(existing, v.Date(), v.Time()) {
			return infra.NewRepoErr(infra.KindConflict, "caller already holds a booking within the duplicate window")
		}

		if err := r.queries.CreateReservation(ctx, db, converter.ReservationToCreateParams(res)); err != nil {
			return infra.WrapRepoErr("failed to create reservation", err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return res.ID(), nil
}

// slotCapacity falls back to the validated capacity when no settings row exists yet.
func (r *ReservationRepository) slotCapacity(ctx context.Context, db pgsql.DBTX, v *reservation.ValidatedReservation) (int, error) {
	capacity, err := r.queries.GetSlotCapacity(ctx, db)
	switch {
	case pgconv.IsNoRows(err):
		return v.SlotCapacity(), nil
	case err != nil:
		return 0, infra.WrapRepoErr("failed to read slot capacity", err)
	}
	return int(capacity), nil
}

func (r *ReservationRepository) ListCallerBookings(ctx context.Context, caller reservation.CallerIdentity, date reservation.Date) ([]reservation.Booking, error) {
	var out []reservation.Booking
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		bookings, err := r.callerBookings(ctx, db, caller, converter.DateToPg(date))
		out = bookings
		return err
	})
	return out, err
}

func (r *ReservationRepository) callerBookings(ctx context.Context, db pgsql.DBTX, caller reservation.CallerIdentity, date pgtype.Date) ([]reservation.Booking, error) {
	var (
		rows []pgsql.BookingRow
		err  error
	)
	switch {
	case caller.IsAuthenticated():
		rows, err = r.queries.ListUserBookingsForDate(ctx, db, caller.UserID(), date)
	case caller.IsGuest():
		rows, err = r.queries.ListGuestBookingsForDate(ctx, db, caller.Email(), date)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list caller bookings", err)
	}

	bookings, err := converter.BookingsFromInfra(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert caller bookings", err)
	}
	return bookings, nil
}

func (r *ReservationRepository) ListByCaller(ctx context.Context, caller reservation.CallerIdentity) ([]*reservation.Reservation, error) {
	var rows []pgsql.Reservation
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		var err error
		switch {
		case caller.IsAuthenticated():
			rows, err = r.queries.ListReservationsByUser(ctx, db, caller.UserID())
		case caller.IsGuest():
			rows, err = r.queries.ListReservationsByGuestEmail(ctx, db, caller.Email())
		}
		return err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by caller", err)
	}

	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationFromInfra(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation", err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *ReservationRepository) ListBookingsForSlot(ctx context.Context, date reservation.Date, t reservation.TimeOfDay) ([]reservation.Booking, error) {
	var rows []pgsql.BookingRow
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		var err error
		rows, err = r.queries.ListBookingsForSlot(ctx, db, converter.DateToPg(date), converter.TimeOfDayToPg(t))
		return err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slot bookings", err)
	}
	return r.toBookings(rows)
}

func (r *ReservationRepository) ListBookingsForDate(ctx context.Context, date reservation.Date) ([]reservation.Booking, error) {
	var rows []pgsql.BookingRow
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		var err error
		rows, err = r.queries.ListBookingsForDate(ctx, db, converter.DateToPg(date))
		return err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list date bookings", err)
	}
	return r.toBookings(rows)
}

func (r *ReservationRepository) toBookings(rows []pgsql.BookingRow) ([]reservation.Booking, error) {
	bookings, err := converter.BookingsFromInfra(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert bookings", err)
	}
	return bookings, nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	var row pgsql.Reservation
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		var err error
		row, err = r.queries.GetReservationByID(ctx, db, id)
		return err
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, next reservation.Status) error {
	from := reservation.PredecessorsOf(next)
	if len(from) == 0 {
		return infra.WrapRepoErr("status is not reachable", reservation.ErrInvalidTransition, infra.KindInvalidTransition)
	}

	return r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		affected, err := r.queries.UpdateReservationStatus(ctx, db, pgsql.UpdateReservationStatusParams{
			ID:           id,
			Status:       next.String(),
			FromStatuses: converter.StatusesToInfra(from),
			UpdatedAt:    pgconv.TimeToPgtype(r.clock.Now()),
		})
		if err != nil {
			return infra.WrapRepoErr("failed to update reservation status", err)
		}
		if affected > 0 {
			return nil
		}

		// Nothing matched: either the row is missing or its status does not allow next.
		if _, err := r.queries.GetReservationStatus(ctx, db, id); err != nil {
			if pgconv.IsNoRows(err) {
				return infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
			}
			return infra.WrapRepoErr("failed to get reservation status", err)
		}
		return infra.WrapRepoErr("illegal status transition", reservation.ErrInvalidTransition, infra.KindInvalidTransition)
	})
}
