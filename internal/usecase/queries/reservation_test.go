//go:build unit

package queries_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/queries"
	"table-reservation/tests/common/builder"
	queriesmock "table-reservation/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	ctx      = context.Background()
	today    = builder.BaseDate
	tomorrow = builder.BaseDate.AddDays(1)
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

type fixture struct {
	reader   *queriesmock.MockReservationReader
	settings *queriesmock.MockSettingsReader
	clock    *clock.MockClock
	q        queries.ReservationQueries
}

func newFixture(t *testing.T, loc *time.Location) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		reader:   queriesmock.NewMockReservationReader(ctrl),
		settings: queriesmock.NewMockSettingsReader(ctrl),
		clock:    clock.NewMockClock(builder.BaseNow),
	}
	f.q = queries.NewReservationQueries(f.reader, f.settings, f.clock, loc, logger)
	return f
}

func TestReservationQueries_GetForCaller(t *testing.T) {
	b := builder.NewReservationBuilder().WithEmail("owner@example.com").WithSlot(tomorrow, reservation.NewTimeOfDay(19, 30))

	t.Run("owner sees the reservation", func(t *testing.T) {
		f := newFixture(t, nil)
		f.reader.EXPECT().FindByID(ctx, b.ID).Return(b.BuildDomain(), nil)

		view, err := f.q.GetForCaller(ctx, b.ID, reservation.Guest("owner@example.com"))
		require.NoError(t, err)
		assert.Equal(t, b.BuildView(), view)
		assert.Equal(t, "19:30", view.Time)
		assert.Nil(t, view.UserID)
	})

	t.Run("other callers get not found", func(t *testing.T) {
		f := newFixture(t, nil)
		f.reader.EXPECT().FindByID(ctx, b.ID).Return(b.BuildDomain(), nil)

		_, err := f.q.GetForCaller(ctx, b.ID, reservation.Guest("someone@example.com"))
		assert.True(t, errs.Is(err, queries.ErrReservationNotFound))
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, nil)
		id := uuid.New()
		f.reader.EXPECT().FindByID(ctx, id).Return(nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found"))

		_, err := f.q.GetByID(ctx, id)
		assert.True(t, errs.Is(err, queries.ErrReservationNotFound))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t, nil)
		id := uuid.New()
		f.reader.EXPECT().FindByID(ctx, id).Return(nil, infra.NewRepoErr(infra.KindDBFailure, "connection refused"))

		_, err := f.q.GetByID(ctx, id)
		assert.True(t, errs.Is(err, queries.ErrStorageUnavailable))
	})
}

func TestReservationQueries_ListByCaller(t *testing.T) {
	t.Run("zero caller gets an empty list without a read", func(t *testing.T) {
		f := newFixture(t, nil)
		views, err := f.q.ListByCaller(ctx, reservation.CallerIdentity{})
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("maps every row", func(t *testing.T) {
		f := newFixture(t, nil)
		userID := uuid.New()
		caller := reservation.Authenticated(userID)
		f.reader.EXPECT().ListByCaller(ctx, caller).Return([]*reservation.Reservation{
			builder.NewReservationBuilder().WithUser(userID).BuildDomain(),
			builder.NewReservationBuilder().WithUser(userID).WithStatus(reservation.StatusConfirmed).BuildDomain(),
		}, nil)

		views, err := f.q.ListByCaller(ctx, caller)
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "confirmed", views[1].Status)
		assert.Equal(t, userID, *views[0].UserID)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.reader.EXPECT().ListByCaller(ctx, gomock.Any()).Return(nil, errors.New("database connection error"))

		_, err := f.q.ListByCaller(ctx, reservation.Guest("a@example.com"))
		assert.True(t, errs.Is(err, queries.ErrStorageUnavailable))
	})
}

func TestReservationQueries_Availability(t *testing.T) {
	settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()

	t.Run("open day lists every slot with remaining capacity", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settings.EXPECT().Get(ctx).Return(settings, nil)
		f.reader.EXPECT().ListBookingsForDate(ctx, tomorrow).Return([]reservation.Booking{
			builder.NewReservationBuilder().WithSlot(tomorrow, reservation.NewTimeOfDay(18, 0)).WithPartySize(8).BuildBooking(),
			builder.NewReservationBuilder().WithSlot(tomorrow, reservation.NewTimeOfDay(19, 0)).WithPartySize(8).WithStatus(reservation.StatusCancelled).BuildBooking(),
		}, nil)

		view, err := f.q.Availability(ctx, tomorrow, 4)
		require.NoError(t, err)
		assert.True(t, view.Open)
		assert.True(t, view.CapacityKnown)
		assert.False(t, view.SettingsFallback)
		assert.Empty(t, view.ClosedReason)
		require.Len(t, view.Slots, 24)

		bySlot := map[string]queries.SlotAvailabilityView{}
		for _, s := range view.Slots {
			bySlot[s.Time] = s
		}
		assert.Equal(t, queries.SlotAvailabilityView{Time: "18:00", Available: false, RemainingCapacity: 2}, bySlot["18:00"])
		assert.Equal(t, queries.SlotAvailabilityView{Time: "19:00", Available: true, RemainingCapacity: 10}, bySlot["19:00"])
	})

	t.Run("party size defaults to the minimum", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settings.EXPECT().Get(ctx).Return(settings, nil)
		f.reader.EXPECT().ListBookingsForDate(ctx, tomorrow).Return(nil, nil)

		view, err := f.q.Availability(ctx, tomorrow, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, view.PartySize)
	})

	t.Run("past slots today are unavailable", func(t *testing.T) {
		f := newFixture(t, nil)
		f.clock.Set(time.Date(2030, time.June, 10, 18, 0, 0, 0, time.UTC))
		f.settings.EXPECT().Get(ctx).Return(settings, nil)
		f.reader.EXPECT().ListBookingsForDate(ctx, today).Return(nil, nil)

		view, err := f.q.Availability(ctx, today, 2)
		require.NoError(t, err)
		for _, s := range view.Slots {
			want := s.Time > "18:00"
			assert.Equalf(t, want, s.Available, "slot %s", s.Time)
		}
	})

	closed := []struct {
		name      string
		settings  *reservation.Settings
		date      reservation.Date
		partySize int
		reason    reservation.ValidationCode
	}{
		{name: "past date", settings: settings, date: today.AddDays(-1), partySize: 2, reason: reservation.CodePastDateTime},
		{name: "party too large", settings: settings, date: tomorrow, partySize: 21, reason: reservation.CodePartySizeOutOfRange},
		{name: "same day disabled", settings: builder.NewSettingsBuilder().WithSameDay(false).BuildDomain(), date: today, partySize: 2, reason: reservation.CodeSameDayNotAllowed},
		{name: "too far ahead", settings: settings, date: today.AddDays(31), partySize: 2, reason: reservation.CodeTooFarInAdvance},
		{name: "blocked", settings: builder.NewSettingsBuilder().WithBlockedDates(tomorrow).BuildDomain(), date: tomorrow, partySize: 2, reason: reservation.CodeDateBlocked},
		{name: "closed weekday", settings: builder.NewSettingsBuilder().WithOperatingDays(0).BuildDomain(), date: tomorrow, partySize: 2, reason: reservation.CodeRestaurantClosed},
	}
	for _, tc := range closed {
		t.Run("closed: "+tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.settings.EXPECT().Get(ctx).Return(tc.settings, nil)

			view, err := f.q.Availability(ctx, tc.date, tc.partySize)
			require.NoError(t, err)
			assert.False(t, view.Open)
			assert.Equal(t, string(tc.reason), view.ClosedReason)
			assert.Empty(t, view.Slots)
		})
	}

	t.Run("booking read failure is optimistic and flagged", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settings.EXPECT().Get(ctx).Return(settings, nil)
		f.reader.EXPECT().ListBookingsForDate(ctx, tomorrow).Return(nil, errors.New("replica lag"))

		view, err := f.q.Availability(ctx, tomorrow, 2)
		require.NoError(t, err)
		assert.False(t, view.CapacityKnown)
		for _, s := range view.Slots {
			assert.True(t, s.Available)
			assert.Equal(t, 10, s.RemainingCapacity)
		}
	})

	t.Run("settings read failure falls back to defaults", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settings.EXPECT().Get(ctx).Return(nil, errors.New("database connection error"))
		f.reader.EXPECT().ListBookingsForDate(ctx, tomorrow).Return(nil, nil)

		view, err := f.q.Availability(ctx, tomorrow, 2)
		require.NoError(t, err)
		assert.True(t, view.SettingsFallback)
		assert.Len(t, view.Slots, 24)
	})

	t.Run("cancelled context is an error", func(t *testing.T) {
		f := newFixture(t, nil)
		cctx, cancel := context.WithCancel(ctx)
		f.settings.EXPECT().Get(cctx).Return(settings, nil)
		f.reader.EXPECT().ListBookingsForDate(cctx, tomorrow).DoAndReturn(
			func(context.Context, reservation.Date) ([]reservation.Booking, error) {
				cancel()
				return nil, context.Canceled
			})

		_, err := f.q.Availability(cctx, tomorrow, 2)
		assert.True(t, errs.Is(err, queries.ErrStorageUnavailable))
	})

	t.Run("today follows the restaurant time zone", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		f := newFixture(t, jst)
		// 16:00 UTC on the 10th is 01:00 JST on the 11th, so the 10th is in the past.
		f.clock.Set(time.Date(2030, time.June, 10, 16, 0, 0, 0, time.UTC))
		f.settings.EXPECT().Get(ctx).Return(settings, nil)

		view, err := f.q.Availability(ctx, today, 2)
		require.NoError(t, err)
		assert.Equal(t, string(reservation.CodePastDateTime), view.ClosedReason)
	})
}

func TestReservationQueries_Settings(t *testing.T) {
	t.Run("stored settings", func(t *testing.T) {
		f := newFixture(t, nil)
		s := builder.NewSettingsBuilder().
			WithHours(reservation.NewTimeOfDay(17, 0), reservation.NewTimeOfDay(19, 0)).
			WithOperatingDays(5, 6).
			WithBlockedDates(tomorrow).
			BuildDomain()
		f.settings.EXPECT().Get(ctx).Return(s, nil)

		view, err := f.q.Settings(ctx)
		require.NoError(t, err)
		assert.False(t, view.Fallback)
		assert.Equal(t, "17:00", view.OpeningTime)
		assert.Equal(t, []int{5, 6}, view.OperatingDays)
		assert.Equal(t, []string{tomorrow.String()}, view.BlockedDates)
		assert.Equal(t, []string{"17:00", "17:30", "18:00", "18:30"}, view.TimeSlots)
	})

	t.Run("fallback", func(t *testing.T) {
		f := newFixture(t, nil)
		f.settings.EXPECT().Get(ctx).Return(nil, errors.New("database connection error"))

		view, err := f.q.Settings(ctx)
		require.NoError(t, err)
		assert.True(t, view.Fallback)
		assert.Equal(t, 10, view.MaxCapacityPerSlot)
		assert.Empty(t, view.BlockedDates)
	})
}
