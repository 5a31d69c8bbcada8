package components

import (
	"table-reservation/internal/handler"
	"table-reservation/internal/handler/api"
	"table-reservation/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		api.NewSettingsHandler,
		api.NewAdminReservationHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(r *api.ReservationHandler, s *api.SettingsHandler, a *api.AdminReservationHandler) handler.Handlers {
	return handler.Handlers{Reservation: r, Settings: s, AdminReservation: a}
}
