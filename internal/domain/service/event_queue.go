package service

import (
	"context"
)

// Delivery is one message handed to a consumer. Exactly one of Ack or Reject
// must be called for it.
type Delivery interface {
	// Body returns the raw message payload
	Body() []byte

	// MessageID returns the broker-assigned identifier, if any
	MessageID() string

	// Ack removes the message from the queue
	Ack(ctx context.Context) error

	// Reject negatively acknowledges the message without requeueing it
	Reject(ctx context.Context) error
}

// DeliveryHandler processes one delivery; the queue never calls it concurrently
// for the same consumer.
type DeliveryHandler func(ctx context.Context, delivery Delivery)

// EventQueue is an open consumer connection to the durable change queue
type EventQueue interface {
	// Consume blocks, delivering messages one at a time, until ctx is done or the
	// connection is lost. A nil return means ctx ended.
	Consume(ctx context.Context, handle DeliveryHandler) error

	// Close releases the connection
	Close() error
}

// EventQueueConnector opens consumer connections to the durable change queue
type EventQueueConnector interface {
	// Connect makes a single connection attempt
	Connect(ctx context.Context) (EventQueue, error)
}
