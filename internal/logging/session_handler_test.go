package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSessionHandlerStampsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newSessionHandler(slog.NewJSONHandler(&buf, nil), "run-42")).With("location", "Peru, Lima")
	logger.Info("location geocoded")

	output := buf.String()
	if !strings.Contains(output, `"session_id":"run-42"`) {
		t.Errorf("expected session_id in output, got: %s", output)
	}
	if !strings.Contains(output, `"location":"Peru, Lima"`) {
		t.Errorf("expected attrs to survive WithAttrs, got: %s", output)
	}
}

func TestSessionHandlerEmptyIDReturnsBase(t *testing.T) {
	base := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if handler := newSessionHandler(base, ""); handler != slog.Handler(base) {
		t.Errorf("expected base handler for empty session id, got %T", handler)
	}
	if _, ok := newSessionHandler(nil, "x").(NoopHandler); !ok {
		t.Error("expected NoopHandler when base is nil")
	}
}

func TestRenderValueQuoting(t *testing.T) {
	v := slog.StringValue("New York")
	if got := plainValue(v); got != "New York" {
		t.Errorf("plainValue = %q", got)
	}
	if got := fieldValue(v); got != `"New York"` {
		t.Errorf("fieldValue = %q", got)
	}
	if got := fieldValue(slog.StringValue("Лима")); got != "Лима" {
		t.Errorf("fieldValue(Лима) = %q", got)
	}
}
