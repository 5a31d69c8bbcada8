package commands

import (
	"context"
	"log/slog"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/pkg/ptr"
	"table-reservation/internal/usecase/shared"
)

var ErrInvalidSettings = reservation.ErrInvalidSettings

// SettingsPatch changes only the non-nil fields.
type SettingsPatch struct {
	OpeningTime         *reservation.TimeOfDay
	ClosingTime         *reservation.TimeOfDay
	SlotIntervalMinutes *int
	MaxCapacityPerSlot  *int
	MinPartySize        *int
	MaxPartySize        *int
	OperatingDays       *[]reservation.Weekday
	AllowSameDayBooking *bool
	AdvanceBookingDays  *int
	BlockedDates        *[]reservation.Date
}

type SettingsCommands interface {
	Replace(ctx context.Context, params reservation.SettingsParams) (*reservation.Settings, error)
	Patch(ctx context.Context, p SettingsPatch) (*reservation.Settings, error)
}

type settingsCommandsImpl struct {
	store  shared.SettingsStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewSettingsCommands(store shared.SettingsStore, clk clock.Clock, logger *slog.Logger) SettingsCommands {
	return &settingsCommandsImpl{store: store, clock: clk, logger: logger}
}

func (uc *settingsCommandsImpl) Replace(ctx context.Context, params reservation.SettingsParams) (*reservation.Settings, error) {
	params.UpdatedAt = uc.clock.Now()
	settings, err := reservation.NewSettings(params)
	if err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, settings); err != nil {
		return nil, errs.Mark(err, ErrStorageUnavailable)
	}
	uc.logger.InfoContext(ctx, "reservation settings replaced")
	return settings, nil
}

// Patch reads the current document and writes the merged result; concurrent admin
// writes are last-writer-wins.
func (uc *settingsCommandsImpl) Patch(ctx context.Context, p SettingsPatch) (*reservation.Settings, error) {
	current, err := uc.store.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrSettingsUnavailable)
	}

	base := current.Params()
	merged := reservation.SettingsParams{
		OpeningTime:         ptr.Or(p.OpeningTime, base.OpeningTime),
		ClosingTime:         ptr.Or(p.ClosingTime, base.ClosingTime),
		SlotIntervalMinutes: ptr.Or(p.SlotIntervalMinutes, base.SlotIntervalMinutes),
		MaxCapacityPerSlot:  ptr.Or(p.MaxCapacityPerSlot, base.MaxCapacityPerSlot),
		MinPartySize:        ptr.Or(p.MinPartySize, base.MinPartySize),
		MaxPartySize:        ptr.Or(p.MaxPartySize, base.MaxPartySize),
		OperatingDays:       ptr.Or(p.OperatingDays, base.OperatingDays),
		AllowSameDayBooking: ptr.Or(p.AllowSameDayBooking, base.AllowSameDayBooking),
		AdvanceBookingDays:  ptr.Or(p.AdvanceBookingDays, base.AdvanceBookingDays),
		BlockedDates:        ptr.Or(p.BlockedDates, base.BlockedDates),
	}

	return uc.Replace(ctx, merged)
}
