package handler

import (
	"net/http"
	"testing"
	"time"

	"usersync/internal/domain/entity"
	"usersync/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConsumerStatus int

func (s fakeConsumerStatus) ActiveConsumers() int {
	return int(s)
}

type fakeTrail struct {
	usecase.ChangeEventUsecase
	events []usecase.ChangeOutcome
}

func (f *fakeTrail) RecentEvents() []usecase.ChangeOutcome {
	return f.events
}

func TestEventHandler_Health(t *testing.T) {
	h := NewEventHandler(EventHandlerParams{Applier: &fakeTrail{}, Status: fakeConsumerStatus(2)})
	e := newTestEcho(h)

	rec := doJSON(t, e, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","component":"event_system","consumers":2}`, rec.Body.String())
}

func TestEventHandler_LastEvents(t *testing.T) {
	t.Run("empty trail is an empty list", func(t *testing.T) {
		h := NewEventHandler(EventHandlerParams{
			Applier: &fakeTrail{events: []usecase.ChangeOutcome{}},
			Status:  fakeConsumerStatus(0),
		})
		e := newTestEcho(h)

		rec := doJSON(t, e, http.MethodGet, "/last-events", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"events":[]}`, rec.Body.String())
	})

	t.Run("lists handled events", func(t *testing.T) {
		processed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		h := NewEventHandler(EventHandlerParams{
			Applier: &fakeTrail{events: []usecase.ChangeOutcome{{
				Status:         usecase.OutcomeApplied,
				Event:          &entity.ChangeEvent{UserID: "u1", Update: map[string]any{"email": "b@x.com"}},
				AppliedFields:  entity.ContactFields{"email": "b@x.com"},
				MatchedOrders:  2,
				ModifiedOrders: 2,
				ProcessedAt:    processed,
			}}},
			Status: fakeConsumerStatus(1),
		})
		e := newTestEcho(h)

		rec := doJSON(t, e, http.MethodGet, "/last-events", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[LastEventsResponse](t, rec)
		require.Len(t, body.Events, 1)
		assert.Equal(t, "u1", body.Events[0].Event.UserID)
		assert.Equal(t, int64(2), body.Events[0].ModifiedOrders)
		assert.True(t, processed.Equal(body.Events[0].ProcessedAt))
	})
}
