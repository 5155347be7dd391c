package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"budgetplanner/internal/budget"
)

// BudgetAlertMessage carries one budget alert from the web process to the
// alert worker.
type BudgetAlertMessage struct {
	Recipient string    `json:"recipient"`
	Category  string    `json:"category"`
	Total     float64   `json:"total"`
	Ceiling   float64   `json:"ceiling"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBudgetAlertMessage(event budget.AlertEvent) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Recipient: event.Recipient,
		Category:  event.Category,
		Total:     event.Total,
		Ceiling:   event.Ceiling,
		Timestamp: time.Now(),
	}
}

// Event converts the message back to an alert.
func (m *BudgetAlertMessage) Event() budget.AlertEvent {
	return budget.AlertEvent{
		Recipient: m.Recipient,
		Category:  m.Category,
		Total:     m.Total,
		Ceiling:   m.Ceiling,
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON decodes a message and rejects one without a
// category or recipient.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Category == "" || msg.Recipient == "" {
		return nil, errors.New("budget alert message missing category or recipient")
	}
	return &msg, nil
}
