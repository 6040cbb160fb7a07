// This file implements a builder for htmx responses: HX-Trigger events,
// redirects and consistent error bodies.

package http

import (
	"encoding/json"
	"html/template"
	"net/http"

	"budget/internal/core"
)

// HTMXResponseBuilder provides a fluent API for building htmx responses.
type HTMXResponseBuilder struct {
	triggers   map[string]any
	statusCode int
	body       []byte
	headers    map[string]string
}

// NewHTMXResponse creates a new response builder with default 200 status.
func NewHTMXResponse() *HTMXResponseBuilder {
	return &HTMXResponseBuilder{
		triggers:   make(map[string]any),
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *HTMXResponseBuilder) Status(code int) *HTMXResponseBuilder {
	b.statusCode = code
	return b
}

// Trigger adds a named event with optional data to the HX-Trigger header.
func (b *HTMXResponseBuilder) Trigger(name string, data any) *HTMXResponseBuilder {
	b.triggers[name] = data
	return b
}

// TriggerTransactionRecorded adds the transaction:recorded event.
func (b *HTMXResponseBuilder) TriggerTransactionRecorded(t core.Transaction) *HTMXResponseBuilder {
	return b.Trigger("transaction:recorded", map[string]any{
		"kind":     t.Kind.String(),
		"amount":   json.Number(t.Amount.String()),
		"category": t.Category,
		"date":     t.Date,
	})
}

// TriggerFormReset adds the form:reset event.
func (b *HTMXResponseBuilder) TriggerFormReset() *HTMXResponseBuilder {
	return b.Trigger("form:reset", struct{}{})
}

// NotificationType represents the type of notification to display.
type NotificationType string

const (
	NotificationSuccess NotificationType = "success"
	NotificationError   NotificationType = "error"
)

// TriggerNotification adds a show-notification event.
func (b *HTMXResponseBuilder) TriggerNotification(notifType NotificationType, message string, durationMs int) *HTMXResponseBuilder {
	return b.Trigger("show-notification", map[string]any{
		"type":     string(notifType),
		"message":  message,
		"duration": durationMs,
	})
}

// TriggerSuccessNotification is a convenience method for success notifications.
func (b *HTMXResponseBuilder) TriggerSuccessNotification(message string) *HTMXResponseBuilder {
	return b.TriggerNotification(NotificationSuccess, message, 3000)
}

// Redirect asks htmx to perform a full client-side navigation to url.
func (b *HTMXResponseBuilder) Redirect(url string) *HTMXResponseBuilder {
	return b.Header("HX-Redirect", url)
}

// Header adds a custom header to the response.
func (b *HTMXResponseBuilder) Header(name, value string) *HTMXResponseBuilder {
	b.headers[name] = value
	return b
}

// BodyString sets the response body as plain text.
func (b *HTMXResponseBuilder) BodyString(content string) *HTMXResponseBuilder {
	b.headers["Content-Type"] = "text/plain; charset=utf-8"
	b.body = []byte(content)
	return b
}

// BodyHTML sets the response body as HTML content.
func (b *HTMXResponseBuilder) BodyHTML(html string) *HTMXResponseBuilder {
	b.headers["Content-Type"] = "text/html; charset=utf-8"
	b.body = []byte(html)
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *HTMXResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	if len(b.triggers) > 0 {
		if triggerJSON, err := json.Marshal(b.triggers); err == nil {
			w.Header().Set("HX-Trigger", string(triggerJSON))
		}
	}

	w.WriteHeader(b.statusCode)
	if len(b.body) > 0 {
		_, _ = w.Write(b.body)
	}
}

// ErrorResponse builds an error response. htmx requests get an HTML fragment
// they can swap in plus an error notification; other clients get the bare
// message.
func ErrorResponse(r *http.Request, statusCode int, message string) *HTMXResponseBuilder {
	b := NewHTMXResponse().Status(statusCode)
	if r != nil && isHTMX(r) {
		return b.
			TriggerNotification(NotificationError, message, 5000).
			BodyHTML(`<div class="error">` + template.HTMLEscapeString(message) + `</div>`)
	}
	return b.BodyString(message)
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(r *http.Request, message string) *HTMXResponseBuilder {
	return ErrorResponse(r, http.StatusBadRequest, message)
}

// InternalServerError creates a 500 Internal Server Error response.
func InternalServerError(r *http.Request, message string) *HTMXResponseBuilder {
	return ErrorResponse(r, http.StatusInternalServerError, message)
}

// TooManyRequestsError creates a 429 response.
func TooManyRequestsError(r *http.Request) *HTMXResponseBuilder {
	return ErrorResponse(r, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
}
