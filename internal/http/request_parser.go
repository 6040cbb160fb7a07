// Package http serves the budget web page, the form endpoints that add
// income and expenses, and a small JSON API over the ledger.
//
// This file implements parsing and boundary validation of request data.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"budget/internal/core"
)

// maxBodyBytes caps form and JSON bodies.
const maxBodyBytes = 64 << 10

// TransactionForm holds the submitted fields of an add request.
type TransactionForm struct {
	Description string
	Amount      string
	Category    string
}

// valueGetter is satisfied by url.Values and *RequestBodyParser.
type valueGetter interface {
	Get(key string) string
}

// ParseTransactionForm reads description, amount and category and applies the
// boundary checks: the trimmed description must be non-blank and at most
// core.MaxDescriptionLength characters. Amount checks are left to the ledger.
func ParseTransactionForm(values valueGetter) (TransactionForm, error) {
	form := TransactionForm{
		Description: sanitizeInput(values.Get("description")),
		Amount:      strings.TrimSpace(values.Get("amount")),
		Category:    sanitizeInput(values.Get("category")),
	}

	n := utf8.RuneCountInString(form.Description)
	if n == 0 || n > core.MaxDescriptionLength {
		return form, core.ErrDescriptionLength
	}
	return form, nil
}

// RequestBodyParser reads a request body once and exposes its fields,
// whether it was sent as JSON or form-encoded data.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads at most maxBodyBytes from the request body.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body as JSON when it looks like an object and as a form
// otherwise. JSON numbers keep their exact text.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	body := bytes.TrimSpace(p.body)
	if len(body) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if body[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		p.jsonData = make(map[string]any)
		if err := dec.Decode(&p.jsonData); err != nil {
			p.jsonData = nil
			p.err = fmt.Errorf("decode JSON body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(body))
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return stringValue(val)
		}
		return ""
	}
	if p.formData != nil {
		return p.formData.Get(key)
	}
	return ""
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// validationMessage maps a rejected addition to the text shown to the user.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrDescriptionLength):
		return "Invalid description length"
	case errors.Is(err, core.ErrMissingFields):
		return "Description and amount are required"
	case errors.Is(err, core.ErrInvalidAmount):
		return "Invalid amount"
	default:
		return "Invalid input"
	}
}
