//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"table-reservation/internal/domain/reservation"
	"table-reservation/internal/infra"
	"table-reservation/internal/infra/memstore"
	"table-reservation/internal/pkg/clock"
	"table-reservation/internal/pkg/errs"
	"table-reservation/internal/usecase/commands"
	"table-reservation/tests/common/builder"
	sharedmock "table-reservation/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	tomorrow = builder.BaseDate.AddDays(1)
	at18     = reservation.NewTimeOfDay(18, 0)
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type ReservationCommandsTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	clock        *clock.MockClock
	settings     *memstore.SettingsStore
	store        *memstore.ReservationStore
	mockNotifier *sharedmock.MockNotifier
	cmds         commands.ReservationCommands
}

func (s *ReservationCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.clock = clock.NewMockClock(builder.BaseNow)
	s.settings = memstore.NewSettingsStore()
	s.Require().NoError(s.settings.Save(s.ctx, builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()))
	s.store = memstore.NewReservationStore(s.clock, s.settings)
	s.mockNotifier = sharedmock.NewMockNotifier(s.ctrl)

	logger := discardLogger()
	validator := reservation.NewValidator(s.store, time.UTC, logger)
	s.cmds = commands.NewReservationCommands(s.settings, s.store, validator, s.mockNotifier, s.clock, logger)
}

func (s *ReservationCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestReservationCommandsSuite(t *testing.T) {
	suite.Run(t, new(ReservationCommandsTestSuite))
}

func (s *ReservationCommandsTestSuite) request(email string, tod reservation.TimeOfDay, size int) reservation.Request {
	return builder.NewReservationBuilder().
		WithEmail(email).
		WithSlot(tomorrow, tod).
		WithPartySize(size).
		BuildRequest()
}

func (s *ReservationCommandsTestSuite) TestCreate() {
	s.Run("success: stores a pending reservation and notifies", func() {
		s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, res *reservation.Reservation) error {
				s.Equal(reservation.StatusPending, res.Status())
				s.Equal(4, res.PartySize())
				return nil
			})

		result, err := s.cmds.Create(s.ctx, s.request("a@example.com", at18, 4))
		s.Require().NoError(err)
		s.Equal(reservation.StatusPending, result.Status)

		stored, err := s.store.FindByID(s.ctx, result.ReservationID)
		s.Require().NoError(err)
		s.Equal(tomorrow, stored.Date())
	})

	s.Run("error: validation failures pass through unchanged", func() {
		req := s.request("b@example.com", reservation.NewTimeOfDay(18, 15), 2)

		_, err := s.cmds.Create(s.ctx, req)
		s.ErrorIs(err, reservation.ErrInvalidTimeSlot)

		var verr *reservation.ValidationError
		s.True(errors.As(err, &verr))
	})

	s.Run("error: duplicate within the window", func() {
		s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil)
		_, err := s.cmds.Create(s.ctx, s.request("dup@example.com", reservation.NewTimeOfDay(12, 0), 2))
		s.Require().NoError(err)

		_, err = s.cmds.Create(s.ctx, s.request("dup@example.com", reservation.NewTimeOfDay(12, 30), 2))
		s.ErrorIs(err, reservation.ErrDuplicateBooking)
	})

	s.Run("error: slot full is a conflict", func() {
		s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil)
		_, err := s.cmds.Create(s.ctx, s.request("big@example.com", reservation.NewTimeOfDay(20, 0), 10))
		s.Require().NoError(err)

		_, err = s.cmds.Create(s.ctx, s.request("late@example.com", reservation.NewTimeOfDay(20, 0), 1))
		s.True(errs.Is(err, commands.ErrSlotConflict))
	})
}

func (s *ReservationCommandsTestSuite) TestCreate_NotifierFailureKeepsReservation() {
	s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(errors.New("outbox unavailable"))

	result, err := s.cmds.Create(s.ctx, s.request("a@example.com", at18, 2))
	s.Require().NoError(err)

	_, err = s.store.FindByID(s.ctx, result.ReservationID)
	s.NoError(err)
}

// Two parties racing for the last seats through the full create path.
func (s *ReservationCommandsTestSuite) TestCreate_ConcurrentRequestsForLastSeats() {
	s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	reqs := []reservation.Request{
		s.request("six@example.com", at18, 6),
		s.request("five@example.com", at18, 5),
	}

	results := make([]error, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req reservation.Request) {
			defer wg.Done()
			_, results[i] = s.cmds.Create(s.ctx, req)
		}(i, req)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errs.Is(err, commands.ErrSlotConflict):
			conflicts++
		}
	}
	s.Equal(1, ok)
	s.Equal(1, conflicts)
}

func (s *ReservationCommandsTestSuite) TestCancel() {
	s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	create := func(req reservation.Request) uuid.UUID {
		result, err := s.cmds.Create(s.ctx, req)
		s.Require().NoError(err)
		return result.ReservationID
	}

	s.Run("success: guest cancels with their email", func() {
		id := create(s.request("owner@example.com", at18, 2))

		s.Require().NoError(s.cmds.Cancel(s.ctx, id, reservation.Guest("Owner@example.com")))

		got, err := s.store.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(reservation.StatusCancelled, got.Status())
	})

	s.Run("success: member cancels their own booking", func() {
		userID := uuid.New()
		req := builder.NewReservationBuilder().WithUser(userID).WithSlot(tomorrow, reservation.NewTimeOfDay(13, 0)).BuildRequest()
		id := create(req)

		s.NoError(s.cmds.Cancel(s.ctx, id, reservation.Authenticated(userID)))
	})

	s.Run("error: somebody else's booking", func() {
		id := create(s.request("victim@example.com", reservation.NewTimeOfDay(15, 0), 2))

		err := s.cmds.Cancel(s.ctx, id, reservation.Guest("attacker@example.com"))
		s.True(errs.Is(err, commands.ErrNotReservationOwner))
	})

	s.Run("error: already cancelled", func() {
		id := create(s.request("twice@example.com", reservation.NewTimeOfDay(16, 0), 2))
		s.Require().NoError(s.cmds.Cancel(s.ctx, id, reservation.Guest("twice@example.com")))

		err := s.cmds.Cancel(s.ctx, id, reservation.Guest("twice@example.com"))
		s.True(errs.Is(err, commands.ErrInvalidTransition))
	})

	s.Run("error: unknown id", func() {
		err := s.cmds.Cancel(s.ctx, uuid.New(), reservation.Guest("owner@example.com"))
		s.True(errs.Is(err, commands.ErrReservationNotFound))
	})
}

func (s *ReservationCommandsTestSuite) TestUpdateStatus() {
	s.mockNotifier.EXPECT().ReservationCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	result, err := s.cmds.Create(s.ctx, s.request("staff@example.com", at18, 2))
	s.Require().NoError(err)
	id := result.ReservationID

	s.True(errs.Is(s.cmds.UpdateStatus(s.ctx, id, "seated"), reservation.ErrInvalidStatus))

	s.Require().NoError(s.cmds.UpdateStatus(s.ctx, id, reservation.StatusConfirmed))
	s.Require().NoError(s.cmds.UpdateStatus(s.ctx, id, reservation.StatusCompleted))

	err = s.cmds.UpdateStatus(s.ctx, id, reservation.StatusCancelled)
	s.True(errs.Is(err, commands.ErrInvalidTransition))

	err = s.cmds.UpdateStatus(s.ctx, uuid.New(), reservation.StatusConfirmed)
	s.True(errs.Is(err, commands.ErrReservationNotFound))
}

func TestCreate_DependencyFailures(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()
	settings := builder.NewSettingsBuilder().WithCapacity(10).BuildDomain()
	req := builder.NewReservationBuilder().WithSlot(tomorrow, at18).WithPartySize(2).BuildRequest()

	t.Run("settings unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSettings := sharedmock.NewMockSettingsStore(ctrl)
		mockRepo := sharedmock.NewMockReservationRepository(ctrl)
		mockSettings.EXPECT().Get(gomock.Any()).Return(nil, errors.New("database connection error"))

		cmds := commands.NewReservationCommands(mockSettings, mockRepo, reservation.NewValidator(mockRepo, time.UTC, logger), nil, clock.NewMockClock(builder.BaseNow), logger)
		_, err := cmds.Create(ctx, req)
		assert.True(t, errs.Is(err, commands.ErrSettingsUnavailable))
	})

	t.Run("advisory reads fail but insert succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSettings := sharedmock.NewMockSettingsStore(ctrl)
		mockRepo := sharedmock.NewMockReservationRepository(ctrl)
		id := uuid.New()

		mockSettings.EXPECT().Get(gomock.Any()).Return(settings, nil)
		mockRepo.EXPECT().ListCallerBookings(gomock.Any(), gomock.Any(), tomorrow).Return(nil, errors.New("replica lag"))
		mockRepo.EXPECT().ListBookingsForSlot(gomock.Any(), tomorrow, at18).Return(nil, errors.New("replica lag"))
		mockRepo.EXPECT().InsertIfValid(gomock.Any(), gomock.Any()).Return(id, nil)

		cmds := commands.NewReservationCommands(mockSettings, mockRepo, reservation.NewValidator(mockRepo, time.UTC, logger), nil, clock.NewMockClock(builder.BaseNow), logger)
		result, err := cmds.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, id, result.ReservationID)
	})

	t.Run("insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSettings := sharedmock.NewMockSettingsStore(ctrl)
		mockRepo := sharedmock.NewMockReservationRepository(ctrl)

		mockSettings.EXPECT().Get(gomock.Any()).Return(settings, nil)
		mockRepo.EXPECT().ListCallerBookings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().ListBookingsForSlot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().InsertIfValid(gomock.Any(), gomock.Any()).Return(uuid.Nil, infra.NewRepoErr(infra.KindDBFailure, "connection refused"))

		cmds := commands.NewReservationCommands(mockSettings, mockRepo, reservation.NewValidator(mockRepo, time.UTC, logger), nil, clock.NewMockClock(builder.BaseNow), logger)
		_, err := cmds.Create(ctx, req)
		assert.True(t, errs.Is(err, commands.ErrStorageUnavailable))
	})

	t.Run("insert loses the race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSettings := sharedmock.NewMockSettingsStore(ctrl)
		mockRepo := sharedmock.NewMockReservationRepository(ctrl)

		mockSettings.EXPECT().Get(gomock.Any()).Return(settings, nil)
		mockRepo.EXPECT().ListCallerBookings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().ListBookingsForSlot(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		mockRepo.EXPECT().InsertIfValid(gomock.Any(), gomock.Any()).Return(uuid.Nil, infra.NewRepoErr(infra.KindConflict, "slot capacity exceeded"))

		cmds := commands.NewReservationCommands(mockSettings, mockRepo, reservation.NewValidator(mockRepo, time.UTC, logger), nil, clock.NewMockClock(builder.BaseNow), logger)
		_, err := cmds.Create(ctx, req)
		assert.True(t, errs.Is(err, commands.ErrSlotConflict))
	})

	t.Run("cancelled context during the duplicate lookup", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockSettings := sharedmock.NewMockSettingsStore(ctrl)
		mockRepo := sharedmock.NewMockReservationRepository(ctrl)
		cctx, cancel := context.WithCancel(ctx)

		mockSettings.EXPECT().Get(gomock.Any()).Return(settings, nil)
		mockRepo.EXPECT().ListCallerBookings(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, reservation.CallerIdentity, reservation.Date) ([]reservation.Booking, error) {
				cancel()
				return nil, context.Canceled
			})

		cmds := commands.NewReservationCommands(mockSettings, mockRepo, reservation.NewValidator(mockRepo, time.UTC, logger), nil, clock.NewMockClock(builder.BaseNow), logger)
		_, err := cmds.Create(cctx, req)
		assert.True(t, errs.Is(err, commands.ErrStorageUnavailable))
	})
}
