//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/infra/repository"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/usecase/shared"
	"table-reservation/tests/common/builder"
	repositorymock "table-reservation/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	ctx      = context.Background()
	tomorrow = builder.BaseDate.AddDays(1)
	at18     = reservation.NewTimeOfDay(18, 0)
)

func validated(t *testing.T, b *builder.ReservationBuilder) *reservation.ValidatedReservation {
	t.Helper()
	settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()
	v := reservation.NewValidator(nil, time.UTC, nil)
	out, err := v.Validate(ctx, settings, b.BuildRequest(), builder.BaseNow)
	require.NoError(t, err)
	return out
}

func TestReservationRepository_InsertIfValid(t *testing.T) {
	guest := builder.NewReservationBuilder().WithEmail("guest@example.com").WithSlot(tomorrow, at18).WithPartySize(4)
	userID := uuid.New()
	member := builder.NewReservationBuilder().WithUser(userID).WithSlot(tomorrow, at18).WithPartySize(4)

	testCases := []struct {
		name       string
		builder    *builder.ReservationBuilder
		setupMock  func(*repositorymock.MockReservationQueries, *mockDBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name:    "success: guest booking inserted under the date lock",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				gomock.InOrder(
					mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil),
					mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(10), nil),
					mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(6), nil),
					mock.EXPECT().ListGuestBookingsForDate(ctx, tx, "guest@example.com", gomock.Any()).Return(nil, nil),
					mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).DoAndReturn(
						func(_ context.Context, _ pgsql.DBTX, arg pgsql.CreateReservationParams) error {
							assert.Equal(t, "pending", arg.Status)
							assert.False(t, arg.UserID.Valid)
							assert.Equal(t, int32(4), arg.PartySize)
							return nil
						}),
				)
			},
		},
		{
			name:    "success: member duplicate check uses the user id",
			builder: member,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(10), nil)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().ListUserBookingsForDate(ctx, tx, userID, gomock.Any()).Return([]pgsql.BookingRow{
					builder.NewReservationBuilder().WithUser(userID).WithSlot(tomorrow, reservation.NewTimeOfDay(12, 0)).BuildBookingRow(),
				}, nil)
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(nil)
			},
		},
		{
			name:    "error: slot already full",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(10), nil)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(7), nil)
			},
			expectKind: infra.KindConflict,
		},
		{
			name:    "error: duplicate committed by a concurrent request",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(10), nil)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().ListGuestBookingsForDate(ctx, tx, "guest@example.com", gomock.Any()).Return([]pgsql.BookingRow{
					builder.NewReservationBuilder().WithSlot(tomorrow, reservation.NewTimeOfDay(18, 30)).BuildBookingRow(),
				}, nil)
			},
			expectKind: infra.KindConflict,
		},
		{
			name:    "error: capacity lowered after validation",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(5), nil)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(2), nil)
			},
			expectKind: infra.KindConflict,
		},
		{
			name:    "success: missing settings row falls back to the validated capacity",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(0), pgx.ErrNoRows)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(6), nil)
				mock.EXPECT().ListGuestBookingsForDate(ctx, tx, gomock.Any(), gomock.Any()).Return(nil, nil)
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(nil)
			},
		},
		{
			name:    "error: capacity read fails",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(0), errors.New("connection reset"))
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name:    "error: lock fails",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(errors.New("connection reset"))
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name:    "error: unique violation on insert is a conflict",
			builder: guest,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().LockReservationDate(ctx, tx, gomock.Any()).Return(nil)
				mock.EXPECT().GetSlotCapacity(ctx, tx).Return(int32(10), nil)
				mock.EXPECT().SumSlotPartySize(ctx, tx, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().ListGuestBookingsForDate(ctx, tx, gomock.Any(), gomock.Any()).Return(nil, nil)
				mock.EXPECT().CreateReservation(ctx, tx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
			},
			expectKind: infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

			tc.setupMock(mockQueries, mockDB)

			id, err := repo.InsertIfValid(ctx, validated(t, tc.builder))
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				assert.Equal(t, uuid.Nil, id)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, id)
		})
	}
}

func TestReservationRepository_FindByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockReservationQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

	t.Run("found", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithSlot(tomorrow, at18).WithStatus(reservation.StatusConfirmed)
		mockQueries.EXPECT().GetReservationByID(ctx, mockDB, b.ID).Return(b.BuildInfra(), nil)

		got, err := repo.FindByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID())
		assert.Equal(t, reservation.StatusConfirmed, got.Status())
		assert.Equal(t, tomorrow, got.Date())
		assert.Equal(t, at18, got.Time())
		assert.True(t, got.Caller().IsGuest())
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New()
		mockQueries.EXPECT().GetReservationByID(ctx, mockDB, id).Return(pgsql.Reservation{}, pgx.ErrNoRows)

		_, err := repo.FindByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("unknown status in storage", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus("seated")
		mockQueries.EXPECT().GetReservationByID(ctx, mockDB, b.ID).Return(b.BuildInfra(), nil)

		_, err := repo.FindByID(ctx, b.ID)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestReservationRepository_ListByCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockQueries := repositorymock.NewMockReservationQueries(ctrl)
	mockDB := &mockDBTX{}
	repo := repository.NewReservationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

	userID := uuid.New()
	mockQueries.EXPECT().ListReservationsByUser(ctx, mockDB, userID).Return([]pgsql.Reservation{
		builder.NewReservationBuilder().WithUser(userID).BuildInfra(),
	}, nil)
	mockQueries.EXPECT().ListReservationsByGuestEmail(ctx, mockDB, "guest@example.com").Return(nil, nil)

	mine, err := repo.ListByCaller(ctx, reservation.Authenticated(userID))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, userID, *mine[0].UserID())

	guests, err := repo.ListByCaller(ctx, reservation.Guest("Guest@example.com"))
	require.NoError(t, err)
	assert.Empty(t, guests)

	none, err := repo.ListByCaller(ctx, reservation.CallerIdentity{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReservationRepository_UpdateStatus(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name       string
		next       reservation.Status
		setupMock  func(*repositorymock.MockReservationQueries, *mockDBTX)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: compare-and-set matched",
			next: reservation.StatusCancelled,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().UpdateReservationStatus(ctx, tx, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ pgsql.DBTX, arg pgsql.UpdateReservationStatusParams) (int64, error) {
						assert.Equal(t, id, arg.ID)
						assert.Equal(t, "cancelled", arg.Status)
						assert.ElementsMatch(t, []string{"pending", "confirmed"}, arg.FromStatuses)
						return 1, nil
					})
			},
		},
		{
			name: "error: row exists in a terminal status",
			next: reservation.StatusConfirmed,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().UpdateReservationStatus(ctx, tx, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().GetReservationStatus(ctx, tx, id).Return("declined", nil)
			},
			expectKind: infra.KindInvalidTransition,
		},
		{
			name: "error: row missing",
			next: reservation.StatusConfirmed,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().UpdateReservationStatus(ctx, tx, gomock.Any()).Return(int64(0), nil)
				mock.EXPECT().GetReservationStatus(ctx, tx, id).Return("", pgx.ErrNoRows)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name:       "error: pending is never a target",
			next:       reservation.StatusPending,
			setupMock:  func(*repositorymock.MockReservationQueries, *mockDBTX) {},
			expectKind: infra.KindInvalidTransition,
		},
		{
			name: "error: database failure",
			next: reservation.StatusCompleted,
			setupMock: func(mock *repositorymock.MockReservationQueries, tx *mockDBTX) {
				mock.EXPECT().UpdateReservationStatus(ctx, tx, gomock.Any()).Return(int64(0), errors.New("database connection error"))
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockReservationQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewReservationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

			tc.setupMock(mockQueries, mockDB)

			err := repo.UpdateStatus(ctx, id, tc.next)
			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got (%v)", tc.expectKind, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// fakeUoW runs callbacks directly against a single DBTX without a transaction.
type fakeUoW struct {
	db pgsql.DBTX
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db pgsql.DBTX) error) error {
	return fn(ctx, u.db)
}

func (u *fakeUoW) DB() pgsql.DBTX { return u.db }

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the queries mock instead.")
}
