package impl

import (
	"context"
	"fmt"
	"testing"

	"usersync/internal/domain/entity"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/repository"
	mockRepo "usersync/internal/mocks/repository"
	"usersync/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeApplier_AppliesContactFields(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())
	ctx := context.Background()

	orderRepo.EXPECT().
		SetContactFieldsByUser(ctx, "u1", entity.ContactFields{"email": "b@x.com"}).
		Return(repository.BulkUpdateResult{Matched: 2, Modified: 2}, nil)

	outcome, err := applier.HandleChangeEvent(ctx, []byte(`{"user_id":"u1","update":{"email":"b@x.com","name":"ignored"}}`))
	require.NoError(t, err)
	assert.Equal(t, usecase.OutcomeApplied, outcome.Status)
	assert.Equal(t, int64(2), outcome.ModifiedOrders)

	events := applier.RecentEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "u1", events[0].Event.UserID)
}

func TestChangeApplier_SkipsEmptyEvents(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty update", body: `{"user_id":"u1","update":{}}`},
		{name: "missing update", body: `{"user_id":"u1"}`},
		{name: "missing user_id", body: `{"update":{"email":"b@x.com"}}`},
		{name: "only unknown keys", body: `{"user_id":"u1","update":{"name":"Bob"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := mockRepo.NewMockOrderRepository(t)
			applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())

			outcome, err := applier.HandleChangeEvent(context.Background(), []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, usecase.OutcomeSkipped, outcome.Status)
			orderRepo.AssertNotCalled(t, "SetContactFieldsByUser", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestChangeApplier_MalformedBodyIsPoison(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())

	_, err := applier.HandleChangeEvent(context.Background(), []byte(`{"user_id":`))
	require.Error(t, err)
	assert.True(t, domainerrors.IsPoisonMessage(err))
	assert.Empty(t, applier.RecentEvents())
}

func TestChangeApplier_StoreErrorIsPoison(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())
	ctx := context.Background()

	orderRepo.EXPECT().
		SetContactFieldsByUser(ctx, "u1", entity.ContactFields{"address": "7 River Road"}).
		Return(repository.BulkUpdateResult{}, errors.New("write concern error"))

	_, err := applier.HandleChangeEvent(ctx, []byte(`{"user_id":"u1","update":{"address":"7 River Road"}}`))
	require.Error(t, err)
	assert.True(t, domainerrors.IsPoisonMessage(err))
}

func TestChangeApplier_CancelledContextIsNotPoison(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orderRepo.EXPECT().
		SetContactFieldsByUser(ctx, "u1", entity.ContactFields{"email": "b@x.com"}).
		Return(repository.BulkUpdateResult{}, context.Canceled)

	_, err := applier.HandleChangeEvent(ctx, []byte(`{"user_id":"u1","update":{"email":"b@x.com"}}`))
	require.Error(t, err)
	assert.False(t, domainerrors.IsPoisonMessage(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChangeApplier_RedeliveryConverges(t *testing.T) {
	orderRepo := mockRepo.NewMockOrderRepository(t)
	applier := NewChangeApplier(orderRepo, newTestConfig(10), newDiscardLogger())
	ctx := context.Background()
	body := []byte(`{"user_id":"u1","update":{"email":"b@x.com"}}`)

	orderRepo.EXPECT().
		SetContactFieldsByUser(ctx, "u1", entity.ContactFields{"email": "b@x.com"}).
		Return(repository.BulkUpdateResult{Matched: 1, Modified: 1}, nil).
		Once()
	orderRepo.EXPECT().
		SetContactFieldsByUser(ctx, "u1", entity.ContactFields{"email": "b@x.com"}).
		Return(repository.BulkUpdateResult{Matched: 1, Modified: 0}, nil).
		Once()

	first, err := applier.HandleChangeEvent(ctx, body)
	require.NoError(t, err)
	second, err := applier.HandleChangeEvent(ctx, body)
	require.NoError(t, err)

	assert.Equal(t, first.AppliedFields, second.AppliedFields)
	assert.Zero(t, second.ModifiedOrders)
}

func TestEventTrail_KeepsMostRecent(t *testing.T) {
	trail := newEventTrail(3)
	for i := 0; i < 5; i++ {
		trail.record(usecase.ChangeOutcome{Event: &entity.ChangeEvent{UserID: fmt.Sprintf("u%d", i)}})
	}

	got := trail.snapshot()
	require.Len(t, got, 3)
	assert.Equal(t, "u2", got[0].Event.UserID)
	assert.Equal(t, "u4", got[2].Event.UserID)
}

func TestEventTrail_PartiallyFilled(t *testing.T) {
	trail := newEventTrail(10)
	trail.record(usecase.ChangeOutcome{Status: usecase.OutcomeSkipped})

	got := trail.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, usecase.OutcomeSkipped, got[0].Status)
}
