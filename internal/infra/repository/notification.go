package repository

import (
	"context"
	"encoding/json"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/pgconv"
	"table-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	NotificationKindEmail        = "email"
	NotificationTopicReservation = "reservation_created"
	NotificationStatusQueued     = "queued"
)

type NotificationWriteQueries interface {
	CreateNotificationJob(ctx context.Context, db pgsql.DBTX, arg pgsql.CreateNotificationJobParams) error
}

// NotificationRepository is an outbox: it enqueues jobs for an external delivery worker.
type NotificationRepository struct {
	queries NotificationWriteQueries
	uow     shared.UnitOfWork
	clock   clock.Clock
}

func NewNotificationRepository(queries NotificationWriteQueries, uow shared.UnitOfWork, clk clock.Clock) *NotificationRepository {
	return &NotificationRepository{
		queries: queries,
		uow:     uow,
		clock:   clk,
	}
}

var _ shared.Notifier = (*NotificationRepository)(nil)

type reservationCreatedPayload struct {
	ReservationID string `json:"reservationId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"partySize"`
	Status        string `json:"status"`
}

func (r *NotificationRepository) ReservationCreated(ctx context.Context, res *reservation.Reservation) error {
	payload, err := json.Marshal(reservationCreatedPayload{
		ReservationID: res.ID().String(),
		CustomerName:  res.CustomerName(),
		CustomerEmail: res.CustomerEmail(),
		Date:          res.Date().String(),
		Time:          res.Time().String(),
		PartySize:     res.PartySize(),
		Status:        res.Status().String(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to encode notification payload", err)
	}

	params := pgsql.CreateNotificationJobParams{
		ID:      uuid.New(),
		Kind:    NotificationKindEmail,
		Topic:   NotificationTopicReservation,
		Payload: payload,
		RunAt:   pgconv.TimeToPgtype(r.clock.Now()),
		Status:  NotificationStatusQueued,
	}

	return r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		if err := r.queries.CreateNotificationJob(ctx, db, params); err != nil {
			return infra.WrapRepoErr("failed to create notification job", err)
		}
		return nil
	})
}
