package memstore

import (
	"context"
	"log/slog"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/usecase/shared"
)

// LogNotifier records reservation events in the log instead of an outbox.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ shared.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) ReservationCreated(ctx context.Context, res *reservation.Reservation) error {
	n.logger.InfoContext(ctx, "reservation created",
		slog.String("reservation_id", res.ID().String()),
		slog.String("date", res.Date().String()),
		slog.String("time", res.Time().Short()),
		slog.Int("party_size", res.PartySize()))
	return nil
}
