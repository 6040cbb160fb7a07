package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// DateLayout is the stored representation of a transaction date.
const DateLayout = "2006-01-02"

// MaxDescriptionLength is measured in characters, not bytes.
const MaxDescriptionLength = 100

type (
	// Kind tags a transaction as income or expense.
	Kind string

	// Transaction is one income or expense entry. It is never mutated
	// after creation.
	Transaction struct {
		Kind        Kind
		Description string
		Amount      decimal.Decimal
		Category    string
		Date        string // YYYY-MM-DD
	}
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrStorageUnavailable = errors.New("storage unavailable")

	ErrMissingFields     = fmt.Errorf("%w: description and amount are required", ErrInvalidInput)
	ErrDescriptionLength = fmt.Errorf("%w: invalid description length", ErrInvalidInput)
	ErrInvalidKind       = fmt.Errorf("%w: unknown transaction kind", ErrInvalidInput)
	ErrInvalidDate       = fmt.Errorf("%w: invalid date", ErrInvalidInput)
)

var (
	incomeCategories  = []string{"Salary", "Investment", "Business", "Other"}
	expenseCategories = []string{"Food", "Transportation", "Housing", "Entertainment", "Other"}
)

// IsValid reports whether k is one of the known kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer
func (k Kind) String() string {
	return string(k)
}

// DefaultCategory returns the category used when none is supplied.
func (k Kind) DefaultCategory() string {
	if k == KindIncome {
		return "Salary"
	}
	return "Other"
}

// Categories returns a copy of the fixed category set for the kind.
func (k Kind) Categories() []string {
	if k == KindIncome {
		return append([]string(nil), incomeCategories...)
	}
	return append([]string(nil), expenseCategories...)
}

// NewTransaction validates the raw inputs and builds a transaction dated on.
// An empty category falls back to the kind's default. The category is not
// checked against the kind's fixed set.
func NewTransaction(kind Kind, description, amount, category string, on time.Time) (Transaction, error) {
	if !kind.IsValid() {
		return Transaction{}, ErrInvalidKind
	}
	description = strings.TrimSpace(description)
	if description == "" || strings.TrimSpace(amount) == "" {
		return Transaction{}, ErrMissingFields
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return Transaction{}, ErrDescriptionLength
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return Transaction{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = kind.DefaultCategory()
	}
	return Transaction{
		Kind:        kind,
		Description: description,
		Amount:      value,
		Category:    category,
		Date:        on.Format(DateLayout),
	}, nil
}

// InMonth reports whether the transaction date falls in the given
// YYYY-MM month. Matching is a plain prefix comparison on the stored date.
func (t Transaction) InMonth(month string) bool {
	return strings.HasPrefix(t.Date, month)
}

// Validate checks a transaction that did not come through NewTransaction,
// e.g. one rebuilt from storage.
func (t Transaction) Validate() error {
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrMissingFields
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionLength
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, err := time.Parse(DateLayout, t.Date); err != nil {
		return ErrInvalidDate
	}
	return nil
}
