package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info record to be filtered at warn level, got %s", buf.String())
	}

	log.Warn("kept", "product_id", 7)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode log record: %v", err)
	}

	if record["msg"] != "kept" {
		t.Errorf("expected msg 'kept', got %v", record["msg"])
	}
	if record["service"] != ServiceName {
		t.Errorf("expected service %q, got %v", ServiceName, record["service"])
	}
	if record["product_id"] != float64(7) {
		t.Errorf("expected product_id 7, got %v", record["product_id"])
	}
}

func TestNewWithWriter_ExtraHandlers(t *testing.T) {
	var primary, secondary bytes.Buffer
	extra := slog.NewJSONHandler(&secondary, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := NewWithWriter(&primary, "info", extra)

	log.Debug("filtered")
	if primary.Len() != 0 || secondary.Len() != 0 {
		t.Fatalf("expected debug record to be filtered by both handlers")
	}

	log.Info("table session closed", "table_session_id", 3)

	for name, buf := range map[string]*bytes.Buffer{"primary": &primary, "secondary": &secondary} {
		var record map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
			t.Fatalf("%s: failed to decode log record: %v", name, err)
		}
		if record["table_session_id"] != float64(3) {
			t.Errorf("%s: expected table_session_id 3, got %v", name, record["table_session_id"])
		}
		if record["service"] != ServiceName {
			t.Errorf("%s: expected service %q, got %v", name, ServiceName, record["service"])
		}
	}
}
