//go:build unit || e2e

package builder

import (
	"time"

	"table-reservation/internal/domain/reservation"
	reqdto "table-reservation/internal/handler/dto/request"
)

type SettingsBuilder struct {
	Params reservation.SettingsParams
}

// NewSettingsBuilder starts from the restaurant defaults: 11:00-23:00 every 30 minutes,
// ten covers per slot, parties of 1-20, same-day allowed, 30 days ahead.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{Params: reservation.DefaultSettingsParams()}
}

func (b *SettingsBuilder) With(mutate func(*reservation.SettingsParams)) *SettingsBuilder {
	mutate(&b.Params)
	return b
}

func (b *SettingsBuilder) WithHours(opening, closing reservation.TimeOfDay) *SettingsBuilder {
	b.Params.OpeningTime = opening
	b.Params.ClosingTime = closing
	return b
}

func (b *SettingsBuilder) WithCapacity(n int) *SettingsBuilder {
	b.Params.MaxCapacityPerSlot = n
	return b
}

func (b *SettingsBuilder) WithSameDay(allowed bool) *SettingsBuilder {
	b.Params.AllowSameDayBooking = allowed
	return b
}

func (b *SettingsBuilder) WithAdvanceDays(n int) *SettingsBuilder {
	b.Params.AdvanceBookingDays = n
	return b
}

func (b *SettingsBuilder) WithBlockedDates(dates ...reservation.Date) *SettingsBuilder {
	b.Params.BlockedDates = dates
	return b
}

func (b *SettingsBuilder) WithOperatingDays(days ...reservation.Weekday) *SettingsBuilder {
	b.Params.OperatingDays = days
	return b
}

func (b *SettingsBuilder) BuildDomain() *reservation.Settings {
	s, err := reservation.NewSettings(b.Params)
	if err != nil {
		panic("settings builder produced invalid settings: " + err.Error())
	}
	return s
}

func (b *SettingsBuilder) BuildReplaceRequestDTO() reqdto.ReplaceSettingsRequest {
	days := make([]int, 0, len(b.Params.OperatingDays))
	for _, d := range b.Params.OperatingDays {
		days = append(days, int(d))
	}
	blocked := make([]string, 0, len(b.Params.BlockedDates))
	for _, d := range b.Params.BlockedDates {
		blocked = append(blocked, d.String())
	}
	return reqdto.ReplaceSettingsRequest{
		OpeningTime:         b.Params.OpeningTime.Short(),
		ClosingTime:         b.Params.ClosingTime.Short(),
		SlotIntervalMinutes: b.Params.SlotIntervalMinutes,
		MaxCapacityPerSlot:  b.Params.MaxCapacityPerSlot,
		MinPartySize:        b.Params.MinPartySize,
		MaxPartySize:        b.Params.MaxPartySize,
		OperatingDays:       days,
		AllowSameDayBooking: b.Params.AllowSameDayBooking,
		AdvanceBookingDays:  b.Params.AdvanceBookingDays,
		BlockedDates:        blocked,
	}
}

// Fixed instants used across tests; 2030-06-10 is a Monday.
var (
	BaseDate = reservation.NewDate(2030, time.June, 10)
	BaseNow  = time.Date(2030, time.June, 10, 9, 0, 0, 0, time.UTC)
)
