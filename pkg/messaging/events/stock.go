package events

import (
	"encoding/json"
	"time"

	"github.com/DayanAguilar/pharmacy-api/pkg/messaging"
)

// StockAlertEvent is published after a committed sale drops a product's stock
// to or below the configured alert threshold.
type StockAlertEvent struct {
	ProductID   int64     `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stock       int32     `json:"stock"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func (e StockAlertEvent) Subject() string {
	return messaging.StockAlertSubject
}

func (e StockAlertEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
