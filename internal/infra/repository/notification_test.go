//go:build unit

package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"table-reservation/internal/infra"
	"table-reservation/internal/infra/pgsql"
	"table-reservation/internal/infra/repository"
	"table-reservation/internal/pkg/clock"
	"table-reservation/tests/common/builder"
	repositorymock "table-reservation/tests/mock/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNotificationRepository_ReservationCreated(t *testing.T) {
	res := builder.NewReservationBuilder().WithSlot(tomorrow, at18).WithPartySize(3).BuildDomain()

	t.Run("success: enqueues a queued email job", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ pgsql.DBTX, arg pgsql.CreateNotificationJobParams) error {
				assert.Equal(t, repository.NotificationKindEmail, arg.Kind)
				assert.Equal(t, repository.NotificationTopicReservation, arg.Topic)
				assert.Equal(t, repository.NotificationStatusQueued, arg.Status)
				assert.Equal(t, builder.BaseNow, arg.RunAt.Time)

				var payload map[string]any
				require.NoError(t, json.Unmarshal(arg.Payload, &payload))
				assert.Equal(t, res.ID().String(), payload["reservationId"])
				assert.Equal(t, tomorrow.String(), payload["date"])
				assert.Equal(t, "18:00:00", payload["time"])
				assert.EqualValues(t, 3, payload["partySize"])
				assert.Equal(t, "pending", payload["status"])
				return nil
			})

		assert.NoError(t, repo.ReservationCreated(ctx, res))
	})

	t.Run("error: insert fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockQueries := repositorymock.NewMockNotificationWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewNotificationRepository(mockQueries, &fakeUoW{db: mockDB}, clock.NewMockClock(builder.BaseNow))

		mockQueries.EXPECT().CreateNotificationJob(ctx, mockDB, gomock.Any()).Return(errors.New("database connection error"))

		err := repo.ReservationCreated(ctx, res)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}
