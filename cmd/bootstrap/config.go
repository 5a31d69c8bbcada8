package bootstrap

import (
	"time"

	"table-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewRestaurantLocation,
	),
)

// NewRestaurantLocation is the zone in which "today" and past-time checks are evaluated.
func NewRestaurantLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Restaurant.Location()
}
