package messaging

import (
	"context"
)

// Broker fans out notifications about message activity. Publishing is
// best-effort and happens inline with the request; consumers are external.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// NoopBroker is used when no broker is configured.
type NoopBroker struct{}

func (NoopBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (NoopBroker) Close() error { return nil }
