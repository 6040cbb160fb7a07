package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"budget/internal/core"
)

func TestParseTransactionForm(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		want    TransactionForm
		wantErr error
	}{
		{
			name:   "all fields",
			values: url.Values{"description": {"  Paycheck "}, "amount": {" 1000.00 "}, "category": {"Salary"}},
			want:   TransactionForm{Description: "Paycheck", Amount: "1000.00", Category: "Salary"},
		},
		{
			name:   "control characters stripped",
			values: url.Values{"description": {"Rent\x00\x07"}, "amount": {"900"}},
			want:   TransactionForm{Description: "Rent", Amount: "900"},
		},
		{
			name:   "amount left unchecked",
			values: url.Values{"description": {"Rent"}, "amount": {"abc"}},
			want:   TransactionForm{Description: "Rent", Amount: "abc"},
		},
		{
			name:    "blank description",
			values:  url.Values{"description": {"   "}, "amount": {"10"}},
			wantErr: core.ErrDescriptionLength,
		},
		{
			name:    "description too long",
			values:  url.Values{"description": {strings.Repeat("é", 101)}, "amount": {"10"}},
			wantErr: core.ErrDescriptionLength,
		},
		{
			name:   "description at the limit",
			values: url.Values{"description": {strings.Repeat("é", 100)}, "amount": {"10"}},
			want:   TransactionForm{Description: strings.Repeat("é", 100), Amount: "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTransactionForm(tt.values)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func newParser(body, contentType string) *RequestBodyParser {
	req := httptest.NewRequest(http.MethodPost, "/add_expense", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return NewRequestBodyParser(httptest.NewRecorder(), req)
}

func TestRequestBodyParserForm(t *testing.T) {
	p := newParser("description=Coffee&amount=3.50&category=Food", "application/x-www-form-urlencoded")
	if err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	if p.IsJSON() {
		t.Error("form body reported as JSON")
	}
	if p.Get("description") != "Coffee" || p.Get("amount") != "3.50" || p.Get("category") != "Food" {
		t.Errorf("unexpected values: %q %q %q", p.Get("description"), p.Get("amount"), p.Get("category"))
	}
	if p.Get("missing") != "" {
		t.Error("missing key should be empty")
	}
}

func TestRequestBodyParserJSON(t *testing.T) {
	p := newParser(`{"description":"Coffee","amount":0.10,"category":"Food","recurring":true,"tags":["x"]}`, "application/json")
	if err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	if !p.IsJSON() {
		t.Fatal("expected JSON body")
	}
	tests := map[string]string{
		"description": "Coffee",
		"amount":      "0.10",
		"category":    "Food",
		"recurring":   "true",
		"tags":        "",
		"missing":     "",
	}
	for key, want := range tests {
		if got := p.Get(key); got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestRequestBodyParserErrors(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		p := newParser(`{"description":`, "application/json")
		if err := p.Parse(); err == nil {
			t.Fatal("expected error")
		}
		if p.IsJSON() {
			t.Error("failed JSON must not report IsJSON")
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		p := newParser("description="+strings.Repeat("a", maxBodyBytes+1), "")
		if err := p.Parse(); err == nil {
			t.Fatal("expected error for oversized body")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		p := newParser("", "")
		if err := p.Parse(); err != nil {
			t.Fatal(err)
		}
		if p.Get("description") != "" {
			t.Error("expected empty value")
		}
	})

	t.Run("parse is idempotent", func(t *testing.T) {
		p := newParser("amount=1", "")
		if err := p.Parse(); err != nil {
			t.Fatal(err)
		}
		if err := p.Parse(); err != nil {
			t.Fatal(err)
		}
		if p.Get("amount") != "1" {
			t.Error("second Parse lost values")
		}
	})
}

func TestValidationMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrDescriptionLength, "Invalid description length"},
		{core.ErrMissingFields, "Description and amount are required"},
		{core.ErrInvalidAmount, "Invalid amount"},
		{fmt.Errorf("add: %w", core.ErrInvalidAmount), "Invalid amount"},
		{core.ErrInvalidKind, "Invalid input"},
		{errors.New("boom"), "Invalid input"},
	}
	for _, tt := range tests {
		if got := validationMessage(tt.err); got != tt.want {
			t.Errorf("validationMessage(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b", "ab"},
		{"tab\there", "tab\there"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
