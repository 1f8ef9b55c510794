package kafka

import "time"

// MovementRecordedEvent is emitted after a stock movement has been
// committed to the ledger.
type MovementRecordedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	MovementID uint      `json:"movement_id"`
	ItemID     uint      `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Direction  string    `json:"direction"`
	Quantity   int       `json:"quantity"`
	NewBalance int       `json:"new_balance"`
	Reference  string    `json:"reference,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// SaleCompletedEvent is produced by point-of-sale systems; each one drives
// an outbound movement through the ledger engine.
type SaleCompletedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	SaleID    string    `json:"sale_id"`
	ItemID    uint      `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeMovementRecorded = "stock.movement.recorded"
	EventTypeSaleCompleted    = "sale.completed"
)

// Kafka topics
const (
	TopicMovementRecorded = "stock-movements"
	TopicSaleCompleted    = "sales-completed"
)
