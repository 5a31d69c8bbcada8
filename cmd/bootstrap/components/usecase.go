package components

import (
	"log/slog"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/usecase"
	"table-reservation/internal/usecase/commands"
	"table-reservation/internal/usecase/queries"
	"table-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationCommands,
		commands.NewSettingsCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
		NewReservationValidator,
	),
)

func NewReservationValidator(repo shared.ReservationRepository, loc *time.Location, logger *slog.Logger) *reservation.Validator {
	return reservation.NewValidator(repo, loc, logger)
}
