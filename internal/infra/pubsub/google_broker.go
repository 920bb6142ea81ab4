package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"usersync/internal/domain/entity"
	"usersync/internal/domain/service"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// googlePubSubPublisher implements ChangeEventPublisher using Google Cloud Pub/Sub
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a new Google Pub/Sub publisher
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.ChangeEventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	_, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{
		Topic: topicPath,
	})
	if err != nil {
		client.Close()

		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("Google Pub/Sub publisher initialized",
		slog.String("project_id", projectID),
		slog.String("topic_id", topicID),
	)

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

// PublishChangeEvent publishes an event and waits for the server id
func (p *googlePubSubPublisher) PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_id": event.EventID,
		"user_id":  event.UserID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: attributes,
	})

	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.Info("[GooglePubSub] Event published",
		slog.String("event_id", event.EventID),
		slog.String("server_id", serverID),
	)

	return nil
}

// Close releases Pub/Sub client resources
func (p *googlePubSubPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}

	return nil
}

// googleConnector opens a subscriber client per consumer instance
type googleConnector struct {
	projectID      string
	subscriptionID string
	prefetch       int
}

// NewGooglePubSubConnector creates a connector for the change event subscription
func NewGooglePubSubConnector(projectID, subscriptionID string, prefetch int) service.EventQueueConnector {
	return &googleConnector{
		projectID:      projectID,
		subscriptionID: subscriptionID,
		prefetch:       prefetch,
	}
}

func (c *googleConnector) Connect(ctx context.Context) (service.EventQueue, error) {
	client, err := pubsub.NewClient(ctx, c.projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	subscriber := client.Subscriber(c.subscriptionID)
	subscriber.ReceiveSettings.MaxOutstandingMessages = c.prefetch
	subscriber.ReceiveSettings.NumGoroutines = 1

	return &googleQueue{client: client, subscriber: subscriber}, nil
}

type googleQueue struct {
	client     *pubsub.Client
	subscriber *pubsub.Subscriber
}

func (q *googleQueue) Consume(ctx context.Context, handle service.DeliveryHandler) error {
	err := q.subscriber.Receive(ctx, func(msgCtx context.Context, m *pubsub.Message) {
		handle(msgCtx, &googleDelivery{m: m})
	})
	if err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "subscription receive stopped")
	}

	return nil
}

func (q *googleQueue) Close() error {
	return errors.WithStack(q.client.Close())
}

type googleDelivery struct {
	m *pubsub.Message
}

func (g *googleDelivery) Body() []byte {
	return g.m.Data
}

func (g *googleDelivery) MessageID() string {
	return g.m.ID
}

func (g *googleDelivery) Ack(_ context.Context) error {
	g.m.Ack()

	return nil
}

// Reject acknowledges the message so it is not redelivered. Poison events are
// logged by the consumer before they are dropped.
func (g *googleDelivery) Reject(_ context.Context) error {
	g.m.Ack()

	return nil
}
