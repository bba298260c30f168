package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds carried on the ledger events queue.
const (
	EventTransactionCreated = "transaction_created"
	EventTransactionDeleted = "transaction_deleted"
	EventGoalCreated        = "goal_created"
	EventGoalDeleted        = "goal_deleted"
	EventGoalContribution   = "goal_contribution"
)

// LedgerEventMessage is a lightweight notification about a ledger change.
// Consumers fetch the full entity from the store using EntityID.
type LedgerEventMessage struct {
	Kind      string    `json:"kind"`
	UserID    string    `json:"user_id"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewLedgerEventMessage creates a new event message stamped with the current time
func NewLedgerEventMessage(kind, userID, entityID string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Kind:      kind,
		UserID:    userID,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
