package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func bufferLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{
		Component: component,
		Handler:   slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})
}

func TestLoggerAddsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := bufferLogger(&buf, ComponentLedger).WithComponent(ComponentStorage)
	l.Info("hello", "k", "v")

	out := buf.String()
	if strings.Count(out, "component=") != 1 {
		t.Fatalf("component should appear exactly once: %s", out)
	}
	if !strings.Contains(out, "component=storage") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := bufferLogger(&buf, ComponentHTTP)

	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "inside")
	})
	handler = RequestIDMiddleware(func(*http.Request) string { return "req-42" })(handler)
	handler = Middleware(base)(handler)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !strings.Contains(buf.String(), "request_id=req-42") {
		t.Fatalf("request id missing: %s", buf.String())
	}
}

func TestFromContextDefault(t *testing.T) {
	if l := FromContext(context.Background()); l == nil || l.Component() != "unknown" {
		t.Fatalf("expected default logger")
	}
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(bufferLogger(&buf, ComponentHTTP))
	ctx := context.Background()

	sl.LogTransactionRecorded(ctx, "expense", "Groceries", "150.50", "Food", "2025-03-01")
	sl.LogValidationFailure(ctx, "income", errors.New("invalid amount"))
	sl.LogError(ctx, "boom", errors.New("disk full"), OpSave, nil)

	out := buf.String()
	for _, want := range []string{"Transaction recorded", "amount=150.50", "validation_error", "error=\"disk full\"", "operation=save"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %s", want, out)
		}
	}
}
