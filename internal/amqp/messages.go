package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"budget/internal/core"
)

// TransactionRecordedMessage announces an income or expense that has been
// written to the ledger store. It carries the full record so consumers need
// no access to the store.
type TransactionRecordedMessage struct {
	Kind        string      `json:"kind"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
	Timestamp   time.Time   `json:"timestamp"`
}

func NewTransactionRecordedMessage(t core.Transaction) *TransactionRecordedMessage {
	r := t.Record()
	return &TransactionRecordedMessage{
		Kind:        t.Kind.String(),
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Transaction rebuilds the domain record, validating it on the way.
func (m *TransactionRecordedMessage) Transaction() (core.Transaction, error) {
	kind := core.Kind(m.Kind)
	if !kind.IsValid() {
		return core.Transaction{}, fmt.Errorf("%w: %q", core.ErrInvalidKind, m.Kind)
	}
	return core.FromRecord(kind, core.Record{
		Description: m.Description,
		Amount:      m.Amount,
		Category:    m.Category,
		Date:        m.Date,
	})
}

// TransactionRecordedMessageFromJSON decodes a message body.
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// decodeTransactionRecorded decodes a delivery body and validates the
// transaction it carries.
func decodeTransactionRecorded(body []byte) (*TransactionRecordedMessage, core.Transaction, error) {
	msg, err := TransactionRecordedMessageFromJSON(body)
	if err != nil {
		return nil, core.Transaction{}, fmt.Errorf("decode message: %w", err)
	}
	t, err := msg.Transaction()
	if err != nil {
		return nil, core.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	return msg, t, nil
}
