//go:build unit

package memstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/infra/memstore"
	"table-reservation/internal/pkg/clock"
	"table-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tomorrow = builder.BaseDate.AddDays(1)

func validated(t *testing.T, settings *reservation.Settings, b *builder.ReservationBuilder) *reservation.ValidatedReservation {
	t.Helper()
	v := reservation.NewValidator(nil, time.UTC, nil)
	out, err := v.Validate(context.Background(), settings, b.BuildRequest(), builder.BaseNow)
	require.NoError(t, err)
	return out
}

func guest(email string, tod reservation.TimeOfDay, size int) *builder.ReservationBuilder {
	return builder.NewReservationBuilder().
		WithEmail(email).
		WithSlot(tomorrow, tod).
		WithPartySize(size)
}

func TestReservationStore_InsertIfValid(t *testing.T) {
	ctx := context.Background()
	at18 := reservation.NewTimeOfDay(18, 0)
	settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()

	t.Run("stores a pending reservation", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)

		id, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", at18, 4)))
		require.NoError(t, err)

		got, err := store.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, got.Status())
		assert.Equal(t, builder.BaseNow, got.CreatedAt())
	})

	t.Run("rejects the booking that would exceed capacity", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)

		_, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", at18, 6)))
		require.NoError(t, err)

		_, err = store.InsertIfValid(ctx, validated(t, settings, guest("b@example.com", at18, 5)))
		assert.True(t, infra.IsKind(err, infra.KindConflict))

		_, err = store.InsertIfValid(ctx, validated(t, settings, guest("c@example.com", at18, 4)))
		assert.NoError(t, err)
	})

	t.Run("rejects a duplicate inside the window", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)

		_, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", at18, 2)))
		require.NoError(t, err)

		_, err = store.InsertIfValid(ctx, validated(t, settings, guest("A@example.com", reservation.NewTimeOfDay(18, 30), 2)))
		assert.True(t, infra.IsKind(err, infra.KindConflict))

		_, err = store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", reservation.NewTimeOfDay(20, 0), 2)))
		assert.NoError(t, err)
	})

	t.Run("cancelled bookings release capacity", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)

		id, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", at18, 10)))
		require.NoError(t, err)
		require.NoError(t, store.UpdateStatus(ctx, id, reservation.StatusCancelled))

		_, err = store.InsertIfValid(ctx, validated(t, settings, guest("b@example.com", at18, 10)))
		assert.NoError(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := store.InsertIfValid(cctx, validated(t, settings, guest("a@example.com", at18, 2)))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// Concurrent bookings never push a slot past capacity.
func TestReservationStore_ConcurrentInsertsRespectCapacity(t *testing.T) {
	ctx := context.Background()
	at18 := reservation.NewTimeOfDay(18, 0)

	t.Run("six and five against ten", func(t *testing.T) {
		settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)
		requests := []*reservation.ValidatedReservation{
			validated(t, settings, guest("six@example.com", at18, 6)),
			validated(t, settings, guest("five@example.com", at18, 5)),
		}

		errsCh := make(chan error, len(requests))
		var wg sync.WaitGroup
		for _, v := range requests {
			wg.Add(1)
			go func(v *reservation.ValidatedReservation) {
				defer wg.Done()
				_, err := store.InsertIfValid(ctx, v)
				errsCh <- err
			}(v)
		}
		wg.Wait()
		close(errsCh)

		var ok, conflicts int
		for err := range errsCh {
			switch {
			case err == nil:
				ok++
			case infra.IsKind(err, infra.KindConflict):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, conflicts)
	})

	t.Run("many small parties", func(t *testing.T) {
		const capacity = 17
		settings := builder.NewSettingsBuilder().WithCapacity(capacity).BuildDomain()
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			v := validated(t, settings, guest(fmt.Sprintf("guest%d@example.com", i), at18, 1+i%4))
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.InsertIfValid(ctx, v)
			}()
		}
		wg.Wait()

		bookings, err := store.ListBookingsForSlot(ctx, tomorrow, at18)
		require.NoError(t, err)
		assert.LessOrEqual(t, reservation.BookedPartySize(bookings, tomorrow, at18), capacity)
		assert.NotEmpty(t, bookings)
	})

	t.Run("same caller racing two nearby slots", func(t *testing.T) {
		settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)
		userID := uuid.New()
		first := validated(t, settings, guest("u@example.com", at18, 2).WithUser(userID))
		second := validated(t, settings, guest("u@example.com", reservation.NewTimeOfDay(18, 30), 2).WithUser(userID))

		var wg sync.WaitGroup
		for _, v := range []*reservation.ValidatedReservation{first, second} {
			wg.Add(1)
			go func(v *reservation.ValidatedReservation) {
				defer wg.Done()
				_, _ = store.InsertIfValid(ctx, v)
			}(v)
		}
		wg.Wait()

		mine, err := store.ListByCaller(ctx, reservation.Authenticated(userID))
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})
}

func TestReservationStore_Reads(t *testing.T) {
	ctx := context.Background()
	settings := reservation.DefaultSettings()
	clk := clock.NewMockClock(builder.BaseNow)
	store := memstore.NewReservationStore(clk, nil)

	early, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", reservation.NewTimeOfDay(12, 0), 2)))
	require.NoError(t, err)
	clk.Add(time.Minute)
	late, err := store.InsertIfValid(ctx, validated(t, settings, guest("a@example.com", reservation.NewTimeOfDay(19, 0), 3)))
	require.NoError(t, err)
	_, err = store.InsertIfValid(ctx, validated(t, settings, guest("b@example.com", reservation.NewTimeOfDay(19, 0), 4)))
	require.NoError(t, err)

	t.Run("list by caller is newest slot first", func(t *testing.T) {
		mine, err := store.ListByCaller(ctx, reservation.Guest("a@example.com"))
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, late, mine[0].ID())
		assert.Equal(t, early, mine[1].ID())
	})

	t.Run("zero caller lists nothing", func(t *testing.T) {
		mine, err := store.ListByCaller(ctx, reservation.CallerIdentity{})
		require.NoError(t, err)
		assert.Empty(t, mine)
	})

	t.Run("bookings for slot and date", func(t *testing.T) {
		slot, err := store.ListBookingsForSlot(ctx, tomorrow, reservation.NewTimeOfDay(19, 0))
		require.NoError(t, err)
		assert.Len(t, slot, 2)

		day, err := store.ListBookingsForDate(ctx, tomorrow)
		require.NoError(t, err)
		assert.Len(t, day, 3)

		other, err := store.ListBookingsForDate(ctx, tomorrow.AddDays(1))
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("caller bookings", func(t *testing.T) {
		bookings, err := store.ListCallerBookings(ctx, reservation.Guest("b@example.com"), tomorrow)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, 4, bookings[0].PartySize)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := store.FindByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("returned reservations are copies", func(t *testing.T) {
		got, err := store.FindByID(ctx, early)
		require.NoError(t, err)
		require.NoError(t, got.TransitionTo(reservation.StatusConfirmed, builder.BaseNow))

		again, err := store.FindByID(ctx, early)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPending, again.Status())
	})
}

func TestReservationStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(builder.BaseNow)
	store := memstore.NewReservationStore(clk, nil)
	id, err := store.InsertIfValid(ctx, validated(t, reservation.DefaultSettings(), guest("a@example.com", reservation.NewTimeOfDay(18, 0), 2)))
	require.NoError(t, err)

	clk.Add(time.Hour)
	require.NoError(t, store.UpdateStatus(ctx, id, reservation.StatusConfirmed))

	got, err := store.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, got.Status())
	assert.Equal(t, builder.BaseNow.Add(time.Hour), got.UpdatedAt())

	err = store.UpdateStatus(ctx, id, reservation.StatusDeclined)
	assert.True(t, infra.IsKind(err, infra.KindInvalidTransition))
	assert.ErrorIs(t, err, reservation.ErrInvalidTransition)

	err = store.UpdateStatus(ctx, uuid.New(), reservation.StatusCancelled)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func paddedRequest(caller reservation.CallerIdentity) reservation.Request {
	party := 4
	return reservation.Request{
		Caller:          caller,
		CustomerName:    "  Hanako Yamada \t",
		CustomerEmail:   "  Hanako.Yamada@Example.COM ",
		CustomerPhone:   " +81 90-1234-5678  ",
		Date:            " " + tomorrow.String() + " ",
		Time:            " 18:00",
		PartySize:       &party,
		SpecialRequests: "\n Window seat if possible  ",
		Occasion:        " birthday ",
		TablePreference: "  terrace",
	}
}

func TestReservationStore_ValidatedFieldsSurviveStorage(t *testing.T) {
	ctx := context.Background()
	settings := reservation.DefaultSettings()
	userID := uuid.New()

	cases := []struct {
		name   string
		caller reservation.CallerIdentity
		lookup reservation.CallerIdentity
	}{
		{name: "guest", lookup: reservation.Guest("hanako.yamada@example.com")},
		{name: "authenticated", caller: reservation.Authenticated(userID), lookup: reservation.Authenticated(userID)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), nil)
			v, err := reservation.NewValidator(store, time.UTC, nil).
				Validate(ctx, settings, paddedRequest(tc.caller), builder.BaseNow)
			require.NoError(t, err)

			id, err := store.InsertIfValid(ctx, v)
			require.NoError(t, err)

			listed, err := store.ListByCaller(ctx, tc.lookup)
			require.NoError(t, err)
			require.Len(t, listed, 1)
			got := listed[0]

			assert.Equal(t, id, got.ID())
			assert.Equal(t, v.Caller(), got.Caller())
			assert.Equal(t, v.CustomerName(), got.CustomerName())
			assert.Equal(t, v.CustomerEmail(), got.CustomerEmail())
			assert.Equal(t, v.CustomerPhone(), got.CustomerPhone())
			assert.Equal(t, v.Date(), got.Date())
			assert.Equal(t, v.Time(), got.Time())
			assert.Equal(t, v.PartySize(), got.PartySize())
			assert.Equal(t, v.SpecialRequests(), got.SpecialRequests())
			assert.Equal(t, v.Occasion(), got.Occasion())
			assert.Equal(t, v.TablePreference(), got.TablePreference())
			assert.Equal(t, reservation.StatusPending, got.Status())

			assert.Equal(t, "Hanako Yamada", got.CustomerName())
			assert.Equal(t, "hanako.yamada@example.com", got.CustomerEmail())
			assert.Equal(t, "+81 90-1234-5678", got.CustomerPhone())
			assert.Equal(t, "18:00:00", got.Time().String())
			assert.Equal(t, "Window seat if possible", got.SpecialRequests())
			assert.Equal(t, "birthday", got.Occasion())
			assert.Equal(t, "terrace", got.TablePreference())
		})
	}
}

func TestReservationStore_CapacityReadAtInsert(t *testing.T) {
	ctx := context.Background()
	at18 := reservation.NewTimeOfDay(18, 0)
	validatedAt10 := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()

	t.Run("capacity lowered after validation applies", func(t *testing.T) {
		settings := memstore.NewSettingsStore()
		require.NoError(t, settings.Save(ctx, validatedAt10))
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), settings)

		_, err := store.InsertIfValid(ctx, validated(t, validatedAt10, guest("first@example.com", at18, 3)))
		require.NoError(t, err)

		pending := validated(t, validatedAt10, guest("second@example.com", at18, 4))
		require.NoError(t, settings.Save(ctx, builder.NewSettingsBuilder().WithCapacity(6).BuildDomain()))

		_, err = store.InsertIfValid(ctx, pending)
		assert.True(t, infra.IsKind(err, infra.KindConflict), "got %v", err)
	})

	t.Run("missing settings fall back to the validated capacity", func(t *testing.T) {
		store := memstore.NewReservationStore(clock.NewMockClock(builder.BaseNow), memstore.NewSettingsStore())

		_, err := store.InsertIfValid(ctx, validated(t, validatedAt10, guest("a@example.com", at18, 10)))
		assert.NoError(t, err)
	})
}
