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
)

type SettingsQueries interface {
	GetReservationSettings(ctx context.Context, db pgsql.DBTX) (pgsql.ReservationSetting, error)
	UpsertReservationSettings(ctx context.Context, db pgsql.DBTX, arg pgsql.UpsertReservationSettingsParams) error
	InsertReservationSettingsIfAbsent(ctx context.Context, db pgsql.DBTX, arg pgsql.UpsertReservationSettingsParams) (int64, error)
}

type SettingsRepository struct {
	queries SettingsQueries
	uow     shared.UnitOfWork
	clock   clock.Clock
}

func NewSettingsRepository(queries SettingsQueries, uow shared.UnitOfWork, clk clock.Clock) *SettingsRepository {
	return &SettingsRepository{
		queries: queries,
		uow:     uow,
		clock:   clk,
	}
}

var _ shared.SettingsStore = (*SettingsRepository)(nil)

func (r *SettingsRepository) Get(ctx context.Context) (*reservation.Settings, error) {
	var row pgsql.ReservationSetting
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		var err error
		row, err = r.queries.GetReservationSettings(ctx, db)
		return err
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation settings not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reservation settings", err)
	}

	s, err := converter.SettingsFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("stored reservation settings are invalid", err)
	}
	return s, nil
}

// Save replaces the settings document; the last writer wins.
func (r *SettingsRepository) Save(ctx context.Context, s *reservation.Settings) error {
	params := converter.SettingsToInfra(s, r.clock.Now())
	return r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		if err := r.queries.UpsertReservationSettings(ctx, db, params); err != nil {
			return infra.WrapRepoErr("failed to save reservation settings", err)
		}
		return nil
	})
}

func (r *SettingsRepository) SaveIfAbsent(ctx context.Context, s *reservation.Settings) (bool, error) {
	params := converter.SettingsToInfra(s, r.clock.Now())
	var inserted bool
	err := r.uow.WithDB(ctx, func(ctx context.Context, db pgsql.DBTX) error {
		affected, err := r.queries.InsertReservationSettingsIfAbsent(ctx, db, params)
		if err != nil {
			return infra.WrapRepoErr("failed to seed reservation settings", err)
		}
		inserted = affected > 0
		return nil
	})
	return inserted, err
}
