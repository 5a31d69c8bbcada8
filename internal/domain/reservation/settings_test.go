//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/pkg/errs"
	"table-reservation/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSettings(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		s := reservation.DefaultSettings()

		assert.Equal(t, reservation.NewTimeOfDay(11, 0), s.OpeningTime())
		assert.Equal(t, reservation.NewTimeOfDay(23, 0), s.ClosingTime())
		assert.Equal(t, 30*time.Minute, s.SlotInterval())
		assert.Equal(t, 10, s.MaxCapacityPerSlot())
		assert.Equal(t, 1, s.MinPartySize())
		assert.Equal(t, 20, s.MaxPartySize())
		assert.True(t, s.AllowSameDayBooking())
		assert.Equal(t, 30, s.AdvanceBookingDays())
		assert.Empty(t, s.OperatingDays())
		assert.Empty(t, s.BlockedDates())
	})

	cases := []struct {
		name   string
		mutate func(*reservation.SettingsParams)
		valid  bool
	}{
		{name: "interval 15 OK", mutate: func(p *reservation.SettingsParams) { p.SlotIntervalMinutes = 15 }, valid: true},
		{name: "interval 60 OK", mutate: func(p *reservation.SettingsParams) { p.SlotIntervalMinutes = 60 }, valid: true},
		{name: "interval 45 NG", mutate: func(p *reservation.SettingsParams) { p.SlotIntervalMinutes = 45 }},
		{name: "interval 0 NG", mutate: func(p *reservation.SettingsParams) { p.SlotIntervalMinutes = 0 }},
		{name: "opening equals closing NG", mutate: func(p *reservation.SettingsParams) { p.ClosingTime = p.OpeningTime }},
		{name: "opening after closing NG", mutate: func(p *reservation.SettingsParams) {
			p.OpeningTime, p.ClosingTime = reservation.NewTimeOfDay(22, 0), reservation.NewTimeOfDay(10, 0)
		}},
		{name: "closing past midnight NG", mutate: func(p *reservation.SettingsParams) { p.ClosingTime = reservation.NewTimeOfDay(24, 30) }},
		{name: "zero capacity NG", mutate: func(p *reservation.SettingsParams) { p.MaxCapacityPerSlot = 0 }},
		{name: "min party zero NG", mutate: func(p *reservation.SettingsParams) { p.MinPartySize = 0 }},
		{name: "min above max NG", mutate: func(p *reservation.SettingsParams) { p.MinPartySize, p.MaxPartySize = 6, 4 }},
		{name: "max party 20 OK", mutate: func(p *reservation.SettingsParams) { p.MaxPartySize = 20 }, valid: true},
		{name: "max party 21 NG", mutate: func(p *reservation.SettingsParams) { p.MaxPartySize = 21 }},
		{name: "advance days 0 OK", mutate: func(p *reservation.SettingsParams) { p.AdvanceBookingDays = 0 }, valid: true},
		{name: "negative advance days NG", mutate: func(p *reservation.SettingsParams) { p.AdvanceBookingDays = -1 }},
		{name: "weekday 7 NG", mutate: func(p *reservation.SettingsParams) { p.OperatingDays = []reservation.Weekday{1, 7} }},
		{name: "zero blocked date NG", mutate: func(p *reservation.SettingsParams) { p.BlockedDates = []reservation.Date{{}} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := reservation.DefaultSettingsParams()
			tc.mutate(&params)

			s, err := reservation.NewSettings(params)
			if tc.valid {
				require.NoError(t, err)
				require.NotNil(t, s)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.Is(err, reservation.ErrInvalidSettings))
			assert.Nil(t, s)
		})
	}
}

func TestSettingsQueries(t *testing.T) {
	monday := builder.BaseDate
	tuesday := monday.AddDays(1)

	t.Run("empty operating days means open every day", func(t *testing.T) {
		s := builder.NewSettingsBuilder().BuildDomain()
		for i := 0; i < 7; i++ {
			assert.True(t, s.IsOperatingDay(monday.AddDays(i)))
		}
	})

	t.Run("operating days restrict weekdays", func(t *testing.T) {
		s := builder.NewSettingsBuilder().WithOperatingDays(1, 3, 5).BuildDomain()
		assert.True(t, s.IsOperatingDay(monday))
		assert.False(t, s.IsOperatingDay(tuesday))
	})

	t.Run("blocked dates", func(t *testing.T) {
		s := builder.NewSettingsBuilder().WithBlockedDates(tuesday).BuildDomain()
		assert.True(t, s.IsBlocked(tuesday))
		assert.False(t, s.IsBlocked(monday))
	})

	t.Run("party size bounds are inclusive", func(t *testing.T) {
		s := builder.NewSettingsBuilder().With(func(p *reservation.SettingsParams) {
			p.MinPartySize, p.MaxPartySize = 2, 8
		}).BuildDomain()
		assert.False(t, s.PartySizeAllowed(1))
		assert.True(t, s.PartySizeAllowed(2))
		assert.True(t, s.PartySizeAllowed(8))
		assert.False(t, s.PartySizeAllowed(9))
	})

	t.Run("params rebuild identical settings", func(t *testing.T) {
		original := builder.NewSettingsBuilder().
			WithOperatingDays(5, 1, 3).
			WithBlockedDates(tuesday, monday).
			BuildDomain()

		rebuilt, err := reservation.NewSettings(original.Params())
		require.NoError(t, err)

		if diff := cmp.Diff(original.Params(), rebuilt.Params(), cmp.AllowUnexported(reservation.Date{})); diff != "" {
			t.Errorf("settings mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []reservation.Weekday{1, 3, 5}, rebuilt.OperatingDays())
		assert.Equal(t, []reservation.Date{monday, tuesday}, rebuilt.BlockedDates())
	})
}
