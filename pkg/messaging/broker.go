package messaging

import "context"

// Broker is a minimal pub/sub abstraction for fire-and-forget events.
// Delivery is at-most-once; consumers must tolerate lost messages.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
