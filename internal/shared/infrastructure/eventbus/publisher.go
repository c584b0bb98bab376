// Package eventbus provides the broker side of event publishing.
package eventbus

import "context"

// Publisher delivers event payloads to a message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
	Close() error
}
