package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "reconciler", Output: &buf})

	logg.Info(context.Background(), "pipeline complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["service"] != "reconciler" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["message"] != "pipeline complete" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
}

func TestContextFieldsFlowThrough(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "reconciler", Output: &buf})

	ctx := logg.WithVendorID(context.Background(), "sylvie")
	ctx = logg.WithSessionID(ctx, "S1")
	logg.Info(ctx, "bucket computed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["vendor_id"] != "sylvie" {
		t.Fatalf("expected vendor_id to flow through context, got %v", entry["vendor_id"])
	}
	if entry["session_id"] != "S1" {
		t.Fatalf("expected session_id to flow through context, got %v", entry["session_id"])
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback, got %v", got)
	}
	if got := ParseLevel("bogus"); got != zerolog.InfoLevel {
		t.Fatalf("expected info fallback for unknown level, got %v", got)
	}
}
