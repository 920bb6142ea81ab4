package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"usersync/internal/domain/entity"
	"usersync/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/pubsub"
	"gocloud.dev/pubsub/mempubsub"
)

const memAckDeadline = 30 * time.Second

// MemBroker is an in-process queue: one topic drained by one shared
// subscription, so concurrent consumers compete for messages.
type MemBroker struct {
	topic        *pubsub.Topic
	subscription *pubsub.Subscription
}

// NewMemBroker creates the in-process topic and its subscription
func NewMemBroker() *MemBroker {
	topic := mempubsub.NewTopic()

	return &MemBroker{
		topic:        topic,
		subscription: mempubsub.NewSubscription(topic, memAckDeadline),
	}
}

// Shutdown flushes the topic and stops the subscription
func (b *MemBroker) Shutdown(ctx context.Context) error {
	topicErr := b.topic.Shutdown(ctx)
	subErr := b.subscription.Shutdown(ctx)
	if topicErr != nil {
		return errors.WithStack(topicErr)
	}

	return errors.WithStack(subErr)
}

func newManagedMemBroker(lc fx.Lifecycle) *MemBroker {
	broker := NewMemBroker()
	lc.Append(fx.Hook{
		OnStop: broker.Shutdown,
	})

	return broker
}

// Publisher returns a publisher sending to the in-process topic
func (b *MemBroker) Publisher(logger *slog.Logger) service.ChangeEventPublisher {
	return &memPublisher{topic: b.topic, logger: logger}
}

// Connector returns a connector handing out the shared subscription
func (b *MemBroker) Connector() service.EventQueueConnector {
	return &memConnector{subscription: b.subscription}
}

type memPublisher struct {
	topic  *pubsub.Topic
	logger *slog.Logger
}

func (p *memPublisher) PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	metadata := map[string]string{"event_id": event.EventID}
	if event.RequestID != "" {
		metadata["request_id"] = event.RequestID
	}

	if err := p.topic.Send(ctx, &pubsub.Message{Body: body, Metadata: metadata}); err != nil {
		return errors.Wrap(err, "failed to send event")
	}

	p.logger.Debug("[MemPubSub] Event published", slog.String("event_id", event.EventID))

	return nil
}

// Close is a no-op; the broker owns the topic
func (p *memPublisher) Close() error {
	return nil
}

type memConnector struct {
	subscription *pubsub.Subscription
}

func (c *memConnector) Connect(_ context.Context) (service.EventQueue, error) {
	return &memQueue{subscription: c.subscription}, nil
}

type memQueue struct {
	subscription *pubsub.Subscription
}

func (q *memQueue) Consume(ctx context.Context, handle service.DeliveryHandler) error {
	for {
		msg, err := q.subscription.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return errors.Wrap(err, "failed to receive event")
		}

		handle(ctx, &memDelivery{msg: msg})
	}
}

// Close is a no-op; the broker owns the subscription
func (q *memQueue) Close() error {
	return nil
}

type memDelivery struct {
	msg *pubsub.Message
}

func (m *memDelivery) Body() []byte {
	return m.msg.Body
}

func (m *memDelivery) MessageID() string {
	return m.msg.Metadata["event_id"]
}

func (m *memDelivery) Ack(_ context.Context) error {
	m.msg.Ack()

	return nil
}

// Reject acknowledges the message so it is dropped rather than redelivered.
func (m *memDelivery) Reject(_ context.Context) error {
	m.msg.Ack()

	return nil
}
