package messaging

import (
	"context"
)

// StockAlertSubject is the JetStream subject for low-stock notifications.
const StockAlertSubject = "pharmacy.stock.alert"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards all events. Used when messaging is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, _ Event) error {
	return nil
}
