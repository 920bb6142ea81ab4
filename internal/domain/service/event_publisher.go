package service

import (
	"context"

	"usersync/internal/domain/entity"
)

// ChangeEventPublisher defines the interface for publishing user change events to the durable queue
type ChangeEventPublisher interface {
	// PublishChangeEvent publishes the event with persistent delivery
	PublishChangeEvent(ctx context.Context, event *entity.ChangeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
