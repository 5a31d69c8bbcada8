package reservation

import (
	"sort"
	"time"

	"table-reservation/internal/pkg/errs"
)

const MaxPartySizeLimit = 20

var validSlotIntervals = map[int]bool{15: true, 30: true, 60: true}

type SettingsParams struct {
	OpeningTime         TimeOfDay
	ClosingTime         TimeOfDay
	SlotIntervalMinutes int
	MaxCapacityPerSlot  int
	MinPartySize        int
	MaxPartySize        int
	OperatingDays       []Weekday
	AllowSameDayBooking bool
	AdvanceBookingDays  int
	BlockedDates        []Date
	UpdatedAt           time.Time
}

// Settings is the restaurant-wide booking configuration. Values are immutable once built;
// callers hold a snapshot for the duration of a request.
type Settings struct {
	openingTime         TimeOfDay
	closingTime         TimeOfDay
	slotInterval        int
	maxCapacityPerSlot  int
	minPartySize        int
	maxPartySize        int
	operatingDays       map[Weekday]struct{}
	allowSameDayBooking bool
	advanceBookingDays  int
	blockedDates        map[Date]struct{}
	updatedAt           time.Time
}

func NewSettings(p SettingsParams) (*Settings, error) {
	switch {
	case !p.OpeningTime.IsValid() || !p.ClosingTime.IsValid():
		return nil, errs.Wrap(ErrInvalidSettings, "opening and closing time must be within a day")
	case p.OpeningTime >= p.ClosingTime:
		return nil, errs.Wrap(ErrInvalidSettings, "opening time must be before closing time")
	case !validSlotIntervals[p.SlotIntervalMinutes]:
		return nil, errs.Wrap(ErrInvalidSettings, "slot interval must be 15, 30 or 60 minutes")
	case p.MaxCapacityPerSlot <= 0:
		return nil, errs.Wrap(ErrInvalidSettings, "max capacity per slot must be positive")
	case p.MinPartySize <= 0 || p.MaxPartySize <= 0:
		return nil, errs.Wrap(ErrInvalidSettings, "party size bounds must be positive")
	case p.MinPartySize > p.MaxPartySize:
		return nil, errs.Wrap(ErrInvalidSettings, "min party size exceeds max party size")
	case p.MaxPartySize > MaxPartySizeLimit:
		return nil, errs.Wrap(ErrInvalidSettings, "max party size exceeds 20")
	case p.AdvanceBookingDays < 0:
		return nil, errs.Wrap(ErrInvalidSettings, "advance booking days must not be negative")
	}

	days := make(map[Weekday]struct{}, len(p.OperatingDays))
	for _, d := range p.OperatingDays {
		if !d.IsValid() {
			return nil, errs.Wrap(ErrInvalidSettings, "operating days must be between 0 and 6")
		}
		days[d] = struct{}{}
	}

	blocked := make(map[Date]struct{}, len(p.BlockedDates))
	for _, d := range p.BlockedDates {
		if d.IsZero() {
			return nil, errs.Wrap(ErrInvalidSettings, "blocked date must not be empty")
		}
		blocked[d] = struct{}{}
	}

	return &Settings{
		openingTime:         p.OpeningTime,
		closingTime:         p.ClosingTime,
		slotInterval:        p.SlotIntervalMinutes,
		maxCapacityPerSlot:  p.MaxCapacityPerSlot,
		minPartySize:        p.MinPartySize,
		maxPartySize:        p.MaxPartySize,
		operatingDays:       days,
		allowSameDayBooking: p.AllowSameDayBooking,
		advanceBookingDays:  p.AdvanceBookingDays,
		blockedDates:        blocked,
		updatedAt:           p.UpdatedAt,
	}, nil
}

// DefaultSettings is used to bootstrap an empty store and for display-only fallbacks.
func DefaultSettings() *Settings {
	s, err := NewSettings(DefaultSettingsParams())
	if err != nil {
		panic("default reservation settings are invalid: " + err.Error())
	}
	return s
}

func DefaultSettingsParams() SettingsParams {
	return SettingsParams{
		OpeningTime:         NewTimeOfDay(11, 0),
		ClosingTime:         NewTimeOfDay(23, 0),
		SlotIntervalMinutes: 30,
		MaxCapacityPerSlot:  10,
		MinPartySize:        1,
		MaxPartySize:        20,
		AllowSameDayBooking: true,
		AdvanceBookingDays:  30,
	}
}

func (s *Settings) OpeningTime() TimeOfDay      { return s.openingTime }
func (s *Settings) ClosingTime() TimeOfDay      { return s.closingTime }
func (s *Settings) SlotInterval() time.Duration { return time.Duration(s.slotInterval) * time.Minute }
func (s *Settings) SlotIntervalMinutes() int    { return s.slotInterval }
func (s *Settings) MaxCapacityPerSlot() int     { return s.maxCapacityPerSlot }
func (s *Settings) MinPartySize() int           { return s.minPartySize }
func (s *Settings) MaxPartySize() int           { return s.maxPartySize }
func (s *Settings) AllowSameDayBooking() bool   { return s.allowSameDayBooking }
func (s *Settings) AdvanceBookingDays() int     { return s.advanceBookingDays }
func (s *Settings) UpdatedAt() time.Time        { return s.updatedAt }

func (s *Settings) IsBlocked(d Date) bool {
	_, ok := s.blockedDates[d]
	return ok
}

// IsOperatingDay treats an empty operating-day set as open every day.
func (s *Settings) IsOperatingDay(d Date) bool {
	if len(s.operatingDays) == 0 {
		return true
	}
	_, ok := s.operatingDays[d.Weekday()]
	return ok
}

func (s *Settings) PartySizeAllowed(n int) bool {
	return n >= s.minPartySize && n <= s.maxPartySize
}

// OperatingDays returns the configured weekdays in ascending order.
func (s *Settings) OperatingDays() []Weekday {
	out := make([]Weekday, 0, len(s.operatingDays))
	for d := range s.operatingDays {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BlockedDates returns the blocked dates in ascending order.
func (s *Settings) BlockedDates() []Date {
	out := make([]Date, 0, len(s.blockedDates))
	for d := range s.blockedDates {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Params returns a copy of the settings suitable for patching and rebuilding.
func (s *Settings) Params() SettingsParams {
	return SettingsParams{
		OpeningTime:         s.openingTime,
		ClosingTime:         s.closingTime,
		SlotIntervalMinutes: s.slotInterval,
		MaxCapacityPerSlot:  s.maxCapacityPerSlot,
		MinPartySize:        s.minPartySize,
		MaxPartySize:        s.maxPartySize,
		OperatingDays:       s.OperatingDays(),
		AllowSameDayBooking: s.allowSameDayBooking,
		AdvanceBookingDays:  s.advanceBookingDays,
		BlockedDates:        s.BlockedDates(),
		UpdatedAt:           s.updatedAt,
	}
}
