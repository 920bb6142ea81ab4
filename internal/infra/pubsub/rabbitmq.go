package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"usersync/config"
	"usersync/internal/domain/entity"
	"usersync/internal/domain/service"
	"usersync/internal/infra/retry"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
)

const rabbitDialTimeout = 5 * time.Second

// queueArgs returns the declaration arguments shared by producers and consumers.
// Both sides must declare the queue identically or the broker refuses the channel.
func queueArgs(deadLetterExchange string) amqp.Table {
	if deadLetterExchange == "" {
		return nil
	}

	return amqp.Table{"x-dead-letter-exchange": deadLetterExchange}
}

func dialRabbitMQ(url string) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Dial: amqp.DefaultDial(rabbitDialTimeout),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial RabbitMQ")
	}

	return conn, nil
}

func declareQueue(ch *amqp.Channel, name string, args amqp.Table) error {
	_, err := ch.QueueDeclare(name, true, false, false, false, args)

	return errors.Wrapf(err, "failed to declare queue %s", name)
}

// rabbitPublisher holds one long-lived connection and a confirm-mode channel.
// A publish that fails on a broken connection reconnects once and retries.
type rabbitPublisher struct {
	url    string
	queue  string
	args   amqp.Table
	logger *slog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitMQPublisher dials the broker at startup. A broker that stays
// unreachable does not prevent startup; the next publish dials again.
func NewRabbitMQPublisher(ctx context.Context, cfg *config.BrokerConfig, logger *slog.Logger) service.ChangeEventPublisher {
	p := &rabbitPublisher{
		url:    cfg.RabbitMQ.URL,
		queue:  cfg.RabbitMQ.Queue,
		args:   queueArgs(cfg.RabbitMQ.DeadLetterExchange),
		logger: logger,
	}

	_, err := retry.Do(ctx, retry.Policy{Attempts: cfg.DialAttempts, Interval: cfg.DialInterval},
		func(context.Context) (struct{}, error) {
			p.mu.Lock()
			defer p.mu.Unlock()

			return struct{}{}, p.connectLocked()
		},
		func(attempt int, err error, wait time.Duration) {
			logger.Warn("[RabbitMQ] Publisher dial failed, retrying",
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.Any("error", err),
			)
		},
	)
	if err != nil {
		logger.Error("[RabbitMQ] Publisher starting without a broker connection", slog.Any("error", err))
	} else {
		logger.Info("[RabbitMQ] Publisher initialized", slog.String("queue", p.queue))
	}

	return p
}

func (p *rabbitPublisher) connectLocked() error {
	conn, err := dialRabbitMQ(p.url)
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to open channel")
	}

	if err := declareQueue(ch, p.queue, p.args); err != nil {
		conn.Close()

		return err
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()

		return errors.Wrap(err, "failed to enable publisher confirms")
	}

	p.conn = conn
	p.ch = ch

	return nil
}

func (p *rabbitPublisher) closeLocked() error {
	var err error
	if p.conn != nil && !p.conn.IsClosed() {
		err = p.conn.Close()
	}
	p.conn = nil
	p.ch = nil

	return err
}

// PublishChangeEvent publishes a persistent message and waits for the broker confirm
func (p *rabbitPublisher) PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if event.RequestID != "" {
		msg.Headers = amqp.Table{"request_id": event.RequestID}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		_ = p.closeLocked()
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	err = p.publishLocked(ctx, msg)
	if err != nil && p.ch.IsClosed() {
		p.logger.Warn("[RabbitMQ] Channel lost during publish, reconnecting", slog.Any("error", err))

		_ = p.closeLocked()
		if err := p.connectLocked(); err != nil {
			return err
		}
		err = p.publishLocked(ctx, msg)
	}
	if err != nil {
		return err
	}

	p.logger.Info("[RabbitMQ] Event published",
		slog.String("event_id", event.EventID),
		slog.String("user_id", event.UserID),
	)

	return nil
}

func (p *rabbitPublisher) publishLocked(ctx context.Context, msg amqp.Publishing) error {
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, "", p.queue, false, false, msg)
	if err != nil {
		return errors.Wrap(err, "failed to publish event")
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return errors.Wrap(err, "failed waiting for publish confirm")
	}
	if !acked {
		return errors.New("broker refused the event")
	}

	return nil
}

// Close releases the broker connection
func (p *rabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return errors.WithStack(p.closeLocked())
}

// rabbitConnector opens one connection and channel per consumer instance
type rabbitConnector struct {
	url      string
	queue    string
	args     amqp.Table
	prefetch int
}

// NewRabbitMQConnector creates a connector for the durable change queue
func NewRabbitMQConnector(cfg *config.BrokerConfig, prefetch int) service.EventQueueConnector {
	return &rabbitConnector{
		url:      cfg.RabbitMQ.URL,
		queue:    cfg.RabbitMQ.Queue,
		args:     queueArgs(cfg.RabbitMQ.DeadLetterExchange),
		prefetch: prefetch,
	}
}

func (c *rabbitConnector) Connect(_ context.Context) (service.EventQueue, error) {
	conn, err := dialRabbitMQ(c.url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to open channel")
	}

	if err := declareQueue(ch, c.queue, c.args); err != nil {
		conn.Close()

		return nil, err
	}

	if err := ch.Qos(c.prefetch, 0, false); err != nil {
		conn.Close()

		return nil, errors.Wrap(err, "failed to set prefetch")
	}

	return &rabbitQueue{conn: conn, ch: ch, queue: c.queue}, nil
}

type rabbitQueue struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

func (q *rabbitQueue) Consume(ctx context.Context, handle service.DeliveryHandler) error {
	closed := q.conn.NotifyClose(make(chan *amqp.Error, 1))

	deliveries, err := q.ch.Consume(q.queue, "", false, false, false, false, nil)
	if err != nil {
		return errors.Wrap(err, "failed to start consuming")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case amqpErr := <-closed:
			if amqpErr != nil {
				return errors.Wrap(amqpErr, "broker connection closed")
			}

			return errors.New("broker connection closed")
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			handle(ctx, &rabbitDelivery{d: d})
		}
	}
}

func (q *rabbitQueue) Close() error {
	if q.conn.IsClosed() {
		return nil
	}

	return errors.WithStack(q.conn.Close())
}

type rabbitDelivery struct {
	d amqp.Delivery
}

func (r *rabbitDelivery) Body() []byte {
	return r.d.Body
}

func (r *rabbitDelivery) MessageID() string {
	return r.d.MessageId
}

func (r *rabbitDelivery) Ack(_ context.Context) error {
	return errors.WithStack(r.d.Ack(false))
}

// Reject dead-letters the message when the queue has a dead-letter exchange,
// otherwise the broker discards it.
func (r *rabbitDelivery) Reject(_ context.Context) error {
	return errors.WithStack(r.d.Nack(false, false))
}
