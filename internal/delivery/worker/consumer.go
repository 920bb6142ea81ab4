// Package worker runs the change event consumers of the sync worker.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"usersync/config"
	"usersync/internal/delivery"
	deliverycontext "usersync/internal/delivery/context"
	domainerrors "usersync/internal/domain/errors"
	"usersync/internal/domain/lifecycle"
	"usersync/internal/domain/service"
	"usersync/internal/infra/retry"
	"usersync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ConsumerParams holds dependencies for Consumer, injected by Fx.
type ConsumerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Connector service.EventQueueConnector
	Applier   usecase.ChangeEventUsecase
}

// Consumer drains the change queue with a fixed number of independent
// instances. Each instance handles one message at a time.
type Consumer struct {
	connector service.EventQueueConnector
	applier   usecase.ChangeEventUsecase
	logger    *slog.Logger
	instances int
	policy    retry.Policy

	active atomic.Int32
	wg     sync.WaitGroup

	// mu orders the WaitGroup adds in Serve before the Wait in stop.
	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

var _ delivery.Delivery = (*Consumer)(nil)

// NewConsumer creates the consumer and registers its shutdown hook.
func NewConsumer(params ConsumerParams) *Consumer {
	c := newConsumer(params.Connector, params.Applier, params.Config.Consumer, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: c.stop,
	})

	return c
}

func newConsumer(connector service.EventQueueConnector, applier usecase.ChangeEventUsecase, cfg *config.ConsumerConfig, logger *slog.Logger) *Consumer {
	return &Consumer{
		connector: connector,
		applier:   applier,
		logger:    logger,
		instances: max(cfg.Instances, 1),
		policy: retry.Policy{
			Attempts: cfg.ConnectAttempts,
			Interval: cfg.ConnectInterval,
		},
	}
}

// ActiveConsumers returns the number of instances currently attached to the queue.
func (c *Consumer) ActiveConsumers() int {
	return int(c.active.Load())
}

// Serve runs every instance and returns once all of them have stopped. An
// instance that cannot connect gives up without failing the process, so the
// HTTP endpoints keep serving.
func (c *Consumer) Serve(ctx context.Context) error {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()

		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(c.instances)
	c.mu.Unlock()
	defer cancel()

	c.logger.Info("[Consumer] Starting", slog.Int("instances", c.instances))

	for i := 1; i <= c.instances; i++ {
		go func() {
			defer c.wg.Done()
			c.run(ctx, c.logger.With(slog.Int("consumer", i)))
		}()
	}
	c.wg.Wait()

	return nil
}

func (c *Consumer) run(ctx context.Context, logger *slog.Logger) {
	for {
		queue, err := retry.Do(ctx, c.policy, c.connector.Connect, func(attempt int, err error, wait time.Duration) {
			logger.Warn("[Consumer] Queue connection failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", c.policy.Attempts),
				slog.Duration("retry_in", wait),
				slog.Any("error", err),
			)
		})
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("[Consumer] Could not connect to the queue, consumer stopped",
					slog.Int("attempts", c.policy.Attempts),
					slog.Any("error", err),
				)
			}

			return
		}

		logger.Info("[Consumer] Connected, waiting for change events")
		c.active.Add(1)
		err = queue.Consume(ctx, c.handler(logger))
		c.active.Add(-1)
		if closeErr := queue.Close(); closeErr != nil {
			logger.Debug("[Consumer] Closing queue connection", slog.Any("error", closeErr))
		}

		if ctx.Err() != nil {
			return
		}

		logger.Warn("[Consumer] Queue connection lost, reconnecting", slog.Any("error", err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.policy.Interval):
		}
	}
}

func (c *Consumer) handler(logger *slog.Logger) service.DeliveryHandler {
	return func(ctx context.Context, d service.Delivery) {
		requestID := d.MessageID()
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx = deliverycontext.Scoped(ctx, requestID, logger)
		msgLogger := deliverycontext.GetLoggerOrDefault(ctx, logger)

		outcome, err := c.applier.HandleChangeEvent(ctx, d.Body())
		switch {
		case err == nil:
			if ackErr := d.Ack(ctx); ackErr != nil {
				msgLogger.Error("[Consumer] Failed to ack change event", slog.Any("error", ackErr))

				return
			}
			msgLogger.Debug("[Consumer] Change event acknowledged", slog.String("status", outcome.Status))

		case domainerrors.IsPoisonMessage(err):
			msgLogger.Warn("[Consumer] Rejecting change event", slog.Any("error", err))
			if rejectErr := d.Reject(ctx); rejectErr != nil {
				msgLogger.Error("[Consumer] Failed to reject change event", slog.Any("error", rejectErr))
			}

		default:
			msgLogger.Warn("[Consumer] Change event left unacknowledged", slog.Any("error", err))
		}
	}
}

func (c *Consumer) stop(ctx context.Context) error {
	c.mu.Lock()
	c.stopped = true
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	stopCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	select {
	case <-done:
		c.logger.Info("[Consumer] Stopped")

		return nil
	case <-stopCtx.Done():
		return errors.Wrap(stopCtx.Err(), "consumers did not stop in time")
	}
}
