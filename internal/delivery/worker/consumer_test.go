package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"usersync/config"
	"usersync/internal/domain/entity"
	"usersync/internal/domain/repository"
	"usersync/internal/domain/service"
	"usersync/internal/infra/persistence/memdoc"
	"usersync/internal/infra/persistence/model"
	"usersync/internal/infra/pubsub"
	"usersync/internal/usecase"
	"usersync/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConsumerConfig(instances int) *config.ConsumerConfig {
	return &config.ConsumerConfig{
		Instances:       instances,
		Prefetch:        1,
		ConnectAttempts: 3,
		ConnectInterval: time.Millisecond,
		TrailSize:       10,
	}
}

func newOrderRepo(t *testing.T) repository.OrderRepository {
	t.Helper()

	coll, err := memdoc.OpenCollection(model.FieldOrderID, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = coll.Close() })

	return memdoc.NewOrderRepositoryFromCollection(coll)
}

func newApplier(repo repository.OrderRepository) usecase.ChangeEventUsecase {
	return impl.NewChangeApplier(repo, &config.Config{Consumer: testConsumerConfig(1)}, discardLogger())
}

// startConsumer runs Serve in the background and stops it on cleanup.
func startConsumer(t *testing.T, c *Consumer) <-chan error {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		done <- c.Serve(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			t.Error("consumer did not stop")
		}
	})

	return done
}

func TestConsumer_AppliesPublishedEvents(t *testing.T) {
	ctx := context.Background()
	broker := pubsub.NewMemBroker()
	t.Cleanup(func() { _ = broker.Shutdown(context.Background()) })

	repo := newOrderRepo(t)
	for _, o := range []*entity.Order{
		{OrderID: "o1", UserID: "u1", Items: []any{}, Status: "pending", Email: "a@x.com", Address: "1 Main Street"},
		{OrderID: "o2", UserID: "u1", Items: []any{}, Status: "paid", Email: "a@x.com", Address: "1 Main Street"},
		{OrderID: "o3", UserID: "u2", Items: []any{}, Status: "paid", Email: "c@x.com", Address: "9 Hill Road"},
	} {
		require.NoError(t, repo.UpsertOrder(ctx, o))
	}

	applier := newApplier(repo)
	consumer := newConsumer(broker.Connector(), applier, testConsumerConfig(1), discardLogger())
	startConsumer(t, consumer)

	publisher := broker.Publisher(discardLogger())
	require.NoError(t, publisher.PublishChangeEvent(ctx, &entity.ChangeEvent{
		EventID: "e1",
		UserID:  "u1",
		Update:  map[string]any{"email": "b@x.com"},
	}))

	require.Eventually(t, func() bool {
		return len(applier.RecentEvents()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	for _, id := range []string{"o1", "o2"} {
		order, err := repo.FindOrderByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", order.Email)
		assert.Equal(t, "1 Main Street", order.Address)
	}
	other, err := repo.FindOrderByID(ctx, "o3")
	require.NoError(t, err)
	assert.Equal(t, "c@x.com", other.Email)

	trail := applier.RecentEvents()
	assert.Equal(t, usecase.OutcomeApplied, trail[0].Status)
	assert.Equal(t, int64(2), trail[0].MatchedOrders)
	assert.Equal(t, 1, consumer.ActiveConsumers())
}

func TestConsumer_EmptyUpdateIsAcknowledgedWithoutWrites(t *testing.T) {
	ctx := context.Background()
	broker := pubsub.NewMemBroker()
	t.Cleanup(func() { _ = broker.Shutdown(context.Background()) })

	repo := newOrderRepo(t)
	require.NoError(t, repo.UpsertOrder(ctx, &entity.Order{OrderID: "o1", UserID: "u1", Items: []any{}, Email: "a@x.com"}))

	applier := newApplier(repo)
	startConsumer(t, newConsumer(broker.Connector(), applier, testConsumerConfig(1), discardLogger()))

	require.NoError(t, broker.Publisher(discardLogger()).PublishChangeEvent(ctx, &entity.ChangeEvent{
		EventID: "e-empty",
		UserID:  "u1",
		Update:  map[string]any{},
	}))

	require.Eventually(t, func() bool {
		return len(applier.RecentEvents()) == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, usecase.OutcomeSkipped, applier.RecentEvents()[0].Status)
	order, err := repo.FindOrderByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", order.Email)
}

type fakeDelivery struct {
	body     []byte
	acked    bool
	rejected bool
}

func (d *fakeDelivery) Body() []byte      { return d.body }
func (d *fakeDelivery) MessageID() string { return "m1" }

func (d *fakeDelivery) Ack(context.Context) error {
	d.acked = true

	return nil
}

func (d *fakeDelivery) Reject(context.Context) error {
	d.rejected = true

	return nil
}

type failingOrderRepo struct {
	repository.OrderRepository
}

func (failingOrderRepo) SetContactFieldsByUser(context.Context, string, entity.ContactFields) (repository.BulkUpdateResult, error) {
	return repository.BulkUpdateResult{}, errors.New("write conflict")
}

func TestConsumer_Handler(t *testing.T) {
	tests := []struct {
		name         string
		repo         repository.OrderRepository
		body         string
		cancelled    bool
		wantAcked    bool
		wantRejected bool
	}{
		{
			name:      "valid event is acked",
			body:      `{"user_id":"u1","update":{"address":"7 River Road"}}`,
			wantAcked: true,
		},
		{
			name:      "missing user id is acked",
			body:      `{"update":{"email":"b@x.com"}}`,
			wantAcked: true,
		},
		{
			name:         "malformed body is rejected",
			body:         `{"user_id":`,
			wantRejected: true,
		},
		{
			name:         "store error is rejected",
			repo:         failingOrderRepo{},
			body:         `{"user_id":"u1","update":{"email":"b@x.com"}}`,
			wantRejected: true,
		},
		{
			name:      "interrupted write is left unacknowledged",
			repo:      failingOrderRepo{},
			body:      `{"user_id":"u1","update":{"email":"b@x.com"}}`,
			cancelled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.repo
			if repo == nil {
				repo = newOrderRepo(t)
			}
			c := newConsumer(nil, newApplier(repo), testConsumerConfig(1), discardLogger())

			ctx, cancel := context.WithCancel(context.Background())
			if tt.cancelled {
				cancel()
			} else {
				defer cancel()
			}

			d := &fakeDelivery{body: []byte(tt.body)}
			c.handler(discardLogger())(ctx, d)

			assert.Equal(t, tt.wantAcked, d.acked)
			assert.Equal(t, tt.wantRejected, d.rejected)
		})
	}
}

type fakeConnector struct {
	attempts atomic.Int32
	connect  func(ctx context.Context, attempt int) (service.EventQueue, error)
}

func (f *fakeConnector) Connect(ctx context.Context) (service.EventQueue, error) {
	return f.connect(ctx, int(f.attempts.Add(1)))
}

// blockingQueue consumes until ctx ends, or fails right away when lost is set.
type blockingQueue struct {
	lost   bool
	closed atomic.Bool
}

func (q *blockingQueue) Consume(ctx context.Context, _ service.DeliveryHandler) error {
	if q.lost {
		return errors.New("connection reset")
	}
	<-ctx.Done()

	return nil
}

func (q *blockingQueue) Close() error {
	q.closed.Store(true)

	return nil
}

func TestConsumer_GivesUpAfterBoundedAttempts(t *testing.T) {
	connector := &fakeConnector{
		connect: func(context.Context, int) (service.EventQueue, error) {
			return nil, errors.New("connection refused")
		},
	}
	c := newConsumer(connector, newApplier(newOrderRepo(t)), testConsumerConfig(1), discardLogger())

	done := startConsumer(t, c)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("consumer kept retrying")
	}
	assert.Equal(t, int32(3), connector.attempts.Load())
	assert.Zero(t, c.ActiveConsumers())
}

func TestConsumer_ConnectsAfterTransientFailures(t *testing.T) {
	connector := &fakeConnector{
		connect: func(_ context.Context, attempt int) (service.EventQueue, error) {
			if attempt < 3 {
				return nil, errors.New("connection refused")
			}

			return &blockingQueue{}, nil
		},
	}
	c := newConsumer(connector, newApplier(newOrderRepo(t)), testConsumerConfig(1), discardLogger())
	startConsumer(t, c)

	require.Eventually(t, func() bool {
		return c.ActiveConsumers() == 1
	}, 5*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(3), connector.attempts.Load())
}

func TestConsumer_ReconnectsWhenConnectionIsLost(t *testing.T) {
	var mu sync.Mutex
	var queues []*blockingQueue
	connector := &fakeConnector{
		connect: func(_ context.Context, attempt int) (service.EventQueue, error) {
			q := &blockingQueue{lost: attempt == 1}
			mu.Lock()
			queues = append(queues, q)
			mu.Unlock()

			return q, nil
		},
	}
	c := newConsumer(connector, newApplier(newOrderRepo(t)), testConsumerConfig(1), discardLogger())
	startConsumer(t, c)

	require.Eventually(t, func() bool {
		return connector.attempts.Load() == 2 && c.ActiveConsumers() == 1
	}, 5*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, queues[0].closed.Load())
}

func TestConsumer_RunsConfiguredInstances(t *testing.T) {
	broker := pubsub.NewMemBroker()
	t.Cleanup(func() { _ = broker.Shutdown(context.Background()) })

	c := newConsumer(broker.Connector(), newApplier(newOrderRepo(t)), testConsumerConfig(2), discardLogger())
	startConsumer(t, c)

	require.Eventually(t, func() bool {
		return c.ActiveConsumers() == 2
	}, 5*time.Second, 5*time.Millisecond)
}

func TestConsumer_CompetingInstancesConvergeOnSharedQueue(t *testing.T) {
	const users = 20

	ctx := context.Background()
	broker := pubsub.NewMemBroker()
	t.Cleanup(func() { _ = broker.Shutdown(context.Background()) })

	repo := newOrderRepo(t)
	for i := range users {
		require.NoError(t, repo.UpsertOrder(ctx, &entity.Order{
			OrderID: fmt.Sprintf("o%d", i),
			UserID:  fmt.Sprintf("u%d", i),
			Items:   []any{},
			Status:  "pending",
			Email:   fmt.Sprintf("old%d@x.com", i),
			Address: "1 Main Street",
		}))
	}

	cfg := testConsumerConfig(3)
	cfg.TrailSize = 2 * users
	applier := impl.NewChangeApplier(repo, &config.Config{Consumer: cfg}, discardLogger())
	c := newConsumer(broker.Connector(), applier, cfg, discardLogger())
	startConsumer(t, c)

	require.Eventually(t, func() bool {
		return c.ActiveConsumers() == 3
	}, 5*time.Second, 5*time.Millisecond)

	publisher := broker.Publisher(discardLogger())
	for i := range users {
		require.NoError(t, publisher.PublishChangeEvent(ctx, &entity.ChangeEvent{
			EventID: fmt.Sprintf("e%d", i),
			UserID:  fmt.Sprintf("u%d", i),
			Update:  map[string]any{"email": fmt.Sprintf("new%d@x.com", i)},
		}))
	}

	require.Eventually(t, func() bool {
		return len(applier.RecentEvents()) == users
	}, 10*time.Second, 10*time.Millisecond)

	seen := make(map[string]bool, users)
	for _, outcome := range applier.RecentEvents() {
		require.NotNil(t, outcome.Event)
		assert.Equal(t, usecase.OutcomeApplied, outcome.Status)
		assert.Equal(t, int64(1), outcome.MatchedOrders)
		assert.False(t, seen[outcome.Event.UserID], "user %s handled twice", outcome.Event.UserID)
		seen[outcome.Event.UserID] = true
	}
	assert.Len(t, seen, users)

	for i := range users {
		order, err := repo.FindOrderByID(ctx, fmt.Sprintf("o%d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("new%d@x.com", i), order.Email)
		assert.Equal(t, "1 Main Street", order.Address)
	}
}

func TestConsumer_ServeAfterStopReturnsWithoutConnecting(t *testing.T) {
	connector := &fakeConnector{
		connect: func(context.Context, int) (service.EventQueue, error) {
			return &blockingQueue{}, nil
		},
	}
	c := newConsumer(connector, newApplier(newOrderRepo(t)), testConsumerConfig(2), discardLogger())

	require.NoError(t, c.stop(context.Background()))

	done := make(chan error, 1)
	go func() { done <- c.Serve(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve started after stop")
	}
	assert.Zero(t, connector.attempts.Load())
}

func TestConsumer_ConcurrentServeAndStop(t *testing.T) {
	for range 20 {
		connector := &fakeConnector{
			connect: func(context.Context, int) (service.EventQueue, error) {
				return &blockingQueue{}, nil
			},
		}
		c := newConsumer(connector, newApplier(newOrderRepo(t)), testConsumerConfig(3), discardLogger())

		done := make(chan error, 1)
		go func() { done <- c.Serve(context.Background()) }()
		require.NoError(t, c.stop(context.Background()))

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Serve kept running after stop")
		}
	}
}
