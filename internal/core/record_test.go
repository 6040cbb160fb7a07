package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRecordRoundTrip(t *testing.T) {
	orig, err := NewTransaction(KindIncome, "Paycheck", "1000.00", "Salary", day)
	if err != nil {
		t.Fatal(err)
	}
	back, err := FromRecord(KindIncome, orig.Record())
	if err != nil {
		t.Fatalf("from record: %v", err)
	}
	if back.Description != orig.Description || back.Category != orig.Category || back.Date != orig.Date || back.Kind != orig.Kind {
		t.Fatalf("round trip mismatch: %+v vs %+v", back, orig)
	}
	if !back.Amount.Equal(orig.Amount) {
		t.Fatalf("amount mismatch: %s vs %s", back.Amount, orig.Amount)
	}
}

func TestRecordAmountIsJSONNumber(t *testing.T) {
	tx, _ := NewTransaction(KindExpense, "Groceries", "150.50", "Food", day)
	b, err := json.Marshal(tx.Record())
	if err != nil {
		t.Fatal(err)
	}
	want := `{"description":"Groceries","amount":150.5,"category":"Food","date":"2025-03-14"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestFromRecordKeepsStoredDate(t *testing.T) {
	r := Record{Description: "old", Amount: "3.75", Category: "Food", Date: "2019-01-02"}
	tx, err := FromRecord(KindExpense, r)
	if err != nil {
		t.Fatal(err)
	}
	if tx.Date != "2019-01-02" {
		t.Fatalf("date = %q", tx.Date)
	}
}

func TestFromRecordRejectsBadData(t *testing.T) {
	bads := []Record{
		{Description: "x", Amount: "nope", Category: "Food", Date: "2025-01-01"},
		{Description: "x", Amount: "-1", Category: "Food", Date: "2025-01-01"},
		{Description: "x", Amount: "1e50000000", Category: "Food", Date: "2025-01-01"},
		{Description: "", Amount: "1", Category: "Food", Date: "2025-01-01"},
		{Description: "x", Amount: "1", Category: "Food", Date: "01/02/2025"},
	}
	for i, r := range bads {
		if _, err := FromRecord(KindExpense, r); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionsReportsIndex(t *testing.T) {
	rs := []Record{
		{Description: "a", Amount: "1", Category: "Food", Date: "2025-01-01"},
		{Description: "b", Amount: "0", Category: "Food", Date: "2025-01-01"},
	}
	_, err := Transactions(KindExpense, rs)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if !strings.Contains(err.Error(), "expense[1]") {
		t.Fatalf("error should name the failing index: %v", err)
	}
}

func TestRecordsNeverNil(t *testing.T) {
	b, _ := json.Marshal(Snapshot{Income: Records(nil), Expenses: Records(nil)})
	if string(b) != `{"income":[],"expenses":[]}` {
		t.Fatalf("got %s", b)
	}
}
