package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode entry %q: %v", buf.String(), err)
	}
	return entry
}

func TestErrorCarriesCallerFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Level: ParseLevel("debug"), Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithCaller(ctx, 42, 2)
	log.Error(ctx, "otp.send_failed", errors.New("smtp down"))

	entry := decodeLine(t, buf)
	if entry["request_id"] != "req-123" || entry["user_id"] != float64(42) || entry["role_id"] != float64(2) {
		t.Fatalf("missing caller fields: %v", entry)
	}
	if entry["service"] != "api" || entry["error"] != "smtp down" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if _, ok := entry["stack"]; !ok {
		t.Fatalf("expected stack on error: %v", entry)
	}
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "api", Output: buf})

	parent := log.WithUserID(context.Background(), 7)
	_ = log.WithFields(parent, Fields{"shorts_id": 9, "action": "like"})
	log.Info(parent, "shorts.like")

	entry := decodeLine(t, buf)
	if _, ok := entry["shorts_id"]; ok {
		t.Fatalf("child fields leaked into parent: %v", entry)
	}
	if entry["user_id"] != float64(7) {
		t.Fatalf("expected user_id on parent: %v", entry)
	}
}

func TestWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Output: buf, WarnStack: true}).Warn(context.Background(), "slow")
	if !strings.Contains(buf.String(), `"stack"`) {
		t.Fatalf("expected stack when enabled: %s", buf.String())
	}

	buf.Reset()
	New(Options{Output: buf}).Warn(context.Background(), "slow")
	if strings.Contains(buf.String(), `"stack"`) {
		t.Fatalf("did not expect stack: %s", buf.String())
	}
}

func TestConsoleFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Output: buf, Format: FormatConsole}).Info(context.Background(), "server.started")
	if strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), "server.started") {
		t.Fatalf("expected console output, got %q", buf.String())
	}
}

func TestDebugFilteredAtInfo(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{Level: zerolog.InfoLevel, Output: buf}).Debug(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
		" WARN ":  zerolog.WarnLevel,
		"debug":   zerolog.DebugLevel,
		"error\n": zerolog.ErrorLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
