package components

import (
	"context"
	"log/slog"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra/amqpnotify"
	"table-reservation/internal/infra/memstore"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/infra/repository"
	"table-reservation/internal/infra/settingsfile"
	"table-reservation/internal/infra/uow"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/config"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/queries"
	"table-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewStores,
		func(r shared.ReservationRepository) queries.ReservationReader { return r },
		func(s shared.SettingsStore) queries.SettingsReader { return s },
	),
	fx.Invoke(BootstrapSettings),
)

type Stores struct {
	fx.Out

	Reservations shared.ReservationRepository
	Settings     shared.SettingsStore
	Notifier     shared.Notifier
}

// NewStores selects the storage implementation. pool is nil for the memory driver.
func NewStores(lc fx.Lifecycle, cfg config.Config, pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) (Stores, error) {
	var stores Stores
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		settings := memstore.NewSettingsStore()
		stores = Stores{
			Reservations: memstore.NewReservationStore(clk, settings),
			Settings:     settings,
			Notifier:     memstore.NewLogNotifier(logger),
		}
	case config.StorageDriverPostgres:
		if pool == nil {
			return Stores{}, errs.New("postgres storage selected without a connection pool")
		}
		q := pgsql.New()
		unitOfWork := uow.NewPostgresUoW(pool)
		stores = Stores{
			Reservations: repository.NewReservationRepository(q, unitOfWork, clk),
			Settings:     repository.NewSettingsRepository(q, unitOfWork, clk),
			Notifier:     repository.NewNotificationRepository(q, unitOfWork, clk),
		}
	default:
		return Stores{}, errs.New("unknown storage driver " + cfg.Storage.Driver)
	}

	if cfg.Notifier.Driver == config.NotifierDriverAMQP {
		notifier, err := newAMQPNotifier(lc, cfg.Notifier, clk, logger)
		if err != nil {
			return Stores{}, err
		}
		stores.Notifier = notifier
	}
	return stores, nil
}

func newAMQPNotifier(lc fx.Lifecycle, cfg config.NotifierConfig, clk clock.Clock, logger *slog.Logger) (shared.Notifier, error) {
	conn, ch, err := amqpnotify.Dial(cfg.AMQPURL, cfg.Queue)
	if err != nil {
		return nil, err
	}
	logger.Info("publishing reservation events to message broker", "queue", cfg.Queue)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return conn.Close()
		},
	})
	return amqpnotify.NewPublisher(ch, cfg.Queue, clk), nil
}

// BootstrapSettings seeds the settings document on first start. An existing
// document is never overwritten.
func BootstrapSettings(lc fx.Lifecycle, cfg config.Config, store shared.SettingsStore, clk clock.Clock, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params := reservation.DefaultSettingsParams()
			source := "defaults"
			if path := cfg.Restaurant.SettingsFile; path != "" {
				loaded, err := settingsfile.Load(path)
				if err != nil {
					return errs.Wrap(err, "failed to load restaurant settings file")
				}
				params = loaded
				source = path
			}
			params.UpdatedAt = clk.Now()

			settings, err := reservation.NewSettings(params)
			if err != nil {
				return errs.Wrap(err, "restaurant settings are invalid")
			}

			stored, err := store.SaveIfAbsent(ctx, settings)
			if err != nil {
				return errs.Wrap(err, "failed to bootstrap restaurant settings")
			}
			if stored {
				logger.Info("restaurant settings initialized", "source", source)
			}
			return nil
		},
	})
}
