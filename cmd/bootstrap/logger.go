package bootstrap

import (
	"log/slog"

	"table-reservation/internal/handler/middleware"
	"table-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		newLogConfig,
		middleware.NewLogger,
		NewSlogLogger,
	),
)

func NewSlogLogger(l *middleware.Logger) *slog.Logger {
	return l.GetSlogLogger()
}

func newLogConfig(cfg config.Config) config.LogConfig {
	return cfg.Log
}
