package request

import (
	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/pkg/ptr"
	"table-reservation/internal/usecase/commands"
)

type ReplaceSettingsRequest struct {
	OpeningTime         string   `json:"openingTime" binding:"required"`
	ClosingTime         string   `json:"closingTime" binding:"required"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes" binding:"required,oneof=15 30 60"`
	MaxCapacityPerSlot  int      `json:"maxCapacityPerSlot" binding:"required,gt=0"`
	MinPartySize        int      `json:"minPartySize" binding:"required,gt=0"`
	MaxPartySize        int      `json:"maxPartySize" binding:"required,gt=0,lte=20"`
	OperatingDays       []int    `json:"operatingDays" binding:"dive,min=0,max=6"`
	AllowSameDayBooking bool     `json:"allowSameDayBooking"`
	AdvanceBookingDays  int      `json:"advanceBookingDays" binding:"gte=0"`
	BlockedDates        []string `json:"blockedDates" binding:"dive,datetime=2006-01-02"`
}

func (r ReplaceSettingsRequest) ToParams() (reservation.SettingsParams, error) {
	opening, err := parseTime("openingTime", r.OpeningTime)
	if err != nil {
		return reservation.SettingsParams{}, err
	}
	closing, err := parseTime("closingTime", r.ClosingTime)
	if err != nil {
		return reservation.SettingsParams{}, err
	}
	blocked, err := parseDates(r.BlockedDates)
	if err != nil {
		return reservation.SettingsParams{}, err
	}

	return reservation.SettingsParams{
		OpeningTime:         opening,
		ClosingTime:         closing,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		MaxCapacityPerSlot:  r.MaxCapacityPerSlot,
		MinPartySize:        r.MinPartySize,
		MaxPartySize:        r.MaxPartySize,
		OperatingDays:       toWeekdays(r.OperatingDays),
		AllowSameDayBooking: r.AllowSameDayBooking,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		BlockedDates:        blocked,
	}, nil
}

type PatchSettingsRequest struct {
	OpeningTime         *string   `json:"openingTime,omitempty"`
	ClosingTime         *string   `json:"closingTime,omitempty"`
	SlotIntervalMinutes *int      `json:"slotIntervalMinutes,omitempty" binding:"omitempty,oneof=15 30 60"`
	MaxCapacityPerSlot  *int      `json:"maxCapacityPerSlot,omitempty" binding:"omitempty,gt=0"`
	MinPartySize        *int      `json:"minPartySize,omitempty" binding:"omitempty,gt=0"`
	MaxPartySize        *int      `json:"maxPartySize,omitempty" binding:"omitempty,gt=0,lte=20"`
	OperatingDays       *[]int    `json:"operatingDays,omitempty" binding:"omitempty,dive,min=0,max=6"`
	AllowSameDayBooking *bool     `json:"allowSameDayBooking,omitempty"`
	AdvanceBookingDays  *int      `json:"advanceBookingDays,omitempty" binding:"omitempty,gte=0"`
	BlockedDates        *[]string `json:"blockedDates,omitempty" binding:"omitempty,dive,datetime=2006-01-02"`
}

func (r PatchSettingsRequest) ToPatch() (commands.SettingsPatch, error) {
	p := commands.SettingsPatch{
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		MaxCapacityPerSlot:  r.MaxCapacityPerSlot,
		MinPartySize:        r.MinPartySize,
		MaxPartySize:        r.MaxPartySize,
		AllowSameDayBooking: r.AllowSameDayBooking,
		AdvanceBookingDays:  r.AdvanceBookingDays,
	}

	if r.OpeningTime != nil {
		t, err := parseTime("openingTime", *r.OpeningTime)
		if err != nil {
			return commands.SettingsPatch{}, err
		}
		p.OpeningTime = ptr.Of(t)
	}
	if r.ClosingTime != nil {
		t, err := parseTime("closingTime", *r.ClosingTime)
		if err != nil {
			return commands.SettingsPatch{}, err
		}
		p.ClosingTime = ptr.Of(t)
	}
	if r.OperatingDays != nil {
		p.OperatingDays = ptr.Of(toWeekdays(*r.OperatingDays))
	}
	if r.BlockedDates != nil {
		dates, err := parseDates(*r.BlockedDates)
		if err != nil {
			return commands.SettingsPatch{}, err
		}
		p.BlockedDates = ptr.Of(dates)
	}
	return p, nil
}

func parseTime(field, raw string) (reservation.TimeOfDay, error) {
	t, err := reservation.ParseTimeOfDay(raw)
	if err != nil || !t.IsValid() {
		return 0, errs.Mark(errs.New("invalid "+field), reservation.ErrInvalidSettings)
	}
	return t, nil
}

func parseDates(raw []string) ([]reservation.Date, error) {
	out := make([]reservation.Date, 0, len(raw))
	for _, s := range raw {
		d, err := reservation.ParseDate(s)
		if err != nil {
			return nil, errs.Mark(errs.New("invalid blocked date "+s), reservation.ErrInvalidSettings)
		}
		out = append(out, d)
	}
	return out, nil
}

func toWeekdays(days []int) []reservation.Weekday {
	out := make([]reservation.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, reservation.Weekday(d))
	}
	return out
}
