package pubsub

import (
	"context"
	"log/slog"

	"usersync/config"
	"usersync/internal/domain/constants"
	"usersync/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// BrokerParams holds dependencies for the broker adapters, injected by Fx
type BrokerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Mem    *MemBroker
}

// NewChangeEventPublisher creates a ChangeEventPublisher based on configuration
func NewChangeEventPublisher(params BrokerParams) (service.ChangeEventPublisher, error) {
	cfg := params.Config.Broker
	logger := params.Logger

	var publisher service.ChangeEventPublisher
	var err error

	switch cfg.Provider {
	case constants.BrokerProviderRabbitMQ:
		logger.Info("Using RabbitMQ publisher",
			slog.String("queue", cfg.RabbitMQ.Queue),
		)

		publisher = NewRabbitMQPublisher(params.Ctx, cfg, logger)

	case constants.BrokerProviderGoogle:
		if cfg.Google.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.Google.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub publisher",
			slog.String("project_id", cfg.Google.ProjectID),
			slog.String("topic_id", cfg.Google.TopicID),
		)

		publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.Google.ProjectID, cfg.Google.TopicID, logger)
		if err != nil {
			return nil, err
		}

	case constants.BrokerProviderMem:
		logger.Info("Using in-process publisher")

		publisher = params.Mem.Publisher(logger)

	default:
		return nil, errors.Errorf("unknown broker provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing ChangeEventPublisher")

			return publisher.Close()
		},
	})

	return publisher, nil
}

// NewEventQueueConnector creates the consumer-side connector based on configuration
func NewEventQueueConnector(params BrokerParams) (service.EventQueueConnector, error) {
	cfg := params.Config.Broker
	prefetch := params.Config.Consumer.Prefetch

	switch cfg.Provider {
	case constants.BrokerProviderRabbitMQ:
		return NewRabbitMQConnector(cfg, prefetch), nil

	case constants.BrokerProviderGoogle:
		if cfg.Google.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.Google.SubscriptionID == "" {
			return nil, errors.New("subscription ID is required for google provider")
		}

		return NewGooglePubSubConnector(cfg.Google.ProjectID, cfg.Google.SubscriptionID, prefetch), nil

	case constants.BrokerProviderMem:
		return params.Mem.Connector(), nil

	default:
		return nil, errors.Errorf("unknown broker provider: %s", cfg.Provider)
	}
}

// PublisherModule provides the change event publisher
//
//nolint:gochecknoglobals
var PublisherModule = fx.Options(
	fx.Provide(newManagedMemBroker, NewChangeEventPublisher),
)

// ConsumerModule provides the change event queue connector
//
//nolint:gochecknoglobals
var ConsumerModule = fx.Options(
	fx.Provide(newManagedMemBroker, NewEventQueueConnector),
)
