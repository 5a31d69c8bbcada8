// Package settingsfile reads the bootstrap settings document used when the store is empty.
package settingsfile

import (
	"os"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Document struct {
	OpeningTime         string   `yaml:"opening_time" validate:"required"`
	ClosingTime         string   `yaml:"closing_time" validate:"required"`
	SlotIntervalMinutes int      `yaml:"slot_interval_minutes" validate:"required,oneof=15 30 60"`
	MaxCapacityPerSlot  int      `yaml:"max_capacity_per_slot" validate:"required,gt=0"`
	MinPartySize        int      `yaml:"min_party_size" validate:"required,gt=0"`
	MaxPartySize        int      `yaml:"max_party_size" validate:"required,gtefield=MinPartySize,lte=20"`
	OperatingDays       []int    `yaml:"operating_days" validate:"dive,min=0,max=6"`
	AllowSameDayBooking *bool    `yaml:"allow_same_day_booking"`
	AdvanceBookingDays  int      `yaml:"advance_booking_days" validate:"gte=0"`
	BlockedDates        []string `yaml:"blocked_dates" validate:"dive,datetime=2006-01-02"`
}

func Load(path string) (reservation.SettingsParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reservation.SettingsParams{}, errs.Wrap(err, "failed to read settings file")
	}
	return Parse(data)
}

func Parse(data []byte) (reservation.SettingsParams, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return reservation.SettingsParams{}, errs.Wrap(err, "failed to unmarshal settings YAML")
	}
	if err := validator.New().Struct(doc); err != nil {
		return reservation.SettingsParams{}, errs.Wrap(err, "settings file validation failed")
	}
	return doc.Params()
}

func (d Document) Params() (reservation.SettingsParams, error) {
	opening, err := reservation.ParseTimeOfDay(d.OpeningTime)
	if err != nil {
		return reservation.SettingsParams{}, errs.Wrap(err, "invalid opening_time")
	}
	closing, err := reservation.ParseTimeOfDay(d.ClosingTime)
	if err != nil {
		return reservation.SettingsParams{}, errs.Wrap(err, "invalid closing_time")
	}

	days := make([]reservation.Weekday, 0, len(d.OperatingDays))
	for _, day := range d.OperatingDays {
		days = append(days, reservation.Weekday(day))
	}

	blocked := make([]reservation.Date, 0, len(d.BlockedDates))
	for _, raw := range d.BlockedDates {
		date, err := reservation.ParseDate(raw)
		if err != nil {
			return reservation.SettingsParams{}, errs.Wrap(err, "invalid blocked date "+raw)
		}
		blocked = append(blocked, date)
	}

	sameDay := true
	if d.AllowSameDayBooking != nil {
		sameDay = *d.AllowSameDayBooking
	}

	return reservation.SettingsParams{
		OpeningTime:         opening,
		ClosingTime:         closing,
		SlotIntervalMinutes: d.SlotIntervalMinutes,
		MaxCapacityPerSlot:  d.MaxCapacityPerSlot,
		MinPartySize:        d.MinPartySize,
		MaxPartySize:        d.MaxPartySize,
		OperatingDays:       days,
		AllowSameDayBooking: sameDay,
		AdvanceBookingDays:  d.AdvanceBookingDays,
		BlockedDates:        blocked,
	}, nil
}
