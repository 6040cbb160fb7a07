package core

import (
	"encoding/json"
	"fmt"
)

// Record is the plain key/value form of a transaction as it appears in the
// store. The kind is implied by which list of a Snapshot holds the record.
type Record struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Date        string      `json:"date"`
}

// Snapshot is the full persisted state of a ledger.
type Snapshot struct {
	Income   []Record `json:"income"`
	Expenses []Record `json:"expenses"`
}

// Record serializes t. The amount is written as a JSON number carrying the
// exact decimal text.
func (t Transaction) Record() Record {
	return Record{
		Description: t.Description,
		Amount:      json.Number(t.Amount.String()),
		Category:    t.Category,
		Date:        t.Date,
	}
}

// FromRecord rebuilds a transaction of the given kind, re-parsing the amount
// exactly and keeping the stored date.
func FromRecord(kind Kind, r Record) (Transaction, error) {
	amount, err := ParseAmount(r.Amount.String())
	if err != nil {
		return Transaction{}, fmt.Errorf("record %q amount %q: %w", r.Description, r.Amount, err)
	}
	t := Transaction{
		Kind:        kind,
		Description: r.Description,
		Amount:      amount,
		Category:    r.Category,
		Date:        r.Date,
	}
	if err := t.Validate(); err != nil {
		return Transaction{}, fmt.Errorf("record %q: %w", r.Description, err)
	}
	return t, nil
}

// Records serializes a sequence of transactions, preserving order. The result
// is never nil so that empty lists are stored as [] rather than null.
func Records(ts []Transaction) []Record {
	out := make([]Record, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Record())
	}
	return out
}

// Transactions rebuilds a sequence of transactions of one kind.
func Transactions(kind Kind, rs []Record) ([]Transaction, error) {
	out := make([]Transaction, 0, len(rs))
	for i, r := range rs {
		t, err := FromRecord(kind, r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", kind, i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Normalize replaces nil lists with empty ones so a snapshot always encodes
// both keys as arrays.
func (s Snapshot) Normalize() Snapshot {
	if s.Income == nil {
		s.Income = []Record{}
	}
	if s.Expenses == nil {
		s.Expenses = []Record{}
	}
	return s
}

// Clone returns a snapshot that shares no backing arrays with s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Income:   append([]Record{}, s.Income...),
		Expenses: append([]Record{}, s.Expenses...),
	}
}
