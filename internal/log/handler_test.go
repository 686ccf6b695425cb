package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	ctxlog "github.com/ErlanBelekov/tinyapp/internal/log"
	"github.com/ErlanBelekov/tinyapp/internal/requestid"
	"github.com/ErlanBelekov/tinyapp/internal/session"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return rec
}

func TestContextHandler_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(&buf, nil)))

	ctx := requestid.WithRequestID(context.Background(), "req-1")
	ctx = session.WithUserID(ctx, "u1")
	logger.InfoContext(ctx, "hello")

	rec := decode(t, &buf)
	if rec["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", rec["request_id"])
	}
	if rec["user_id"] != "u1" {
		t.Errorf("user_id = %v, want u1", rec["user_id"])
	}
}

func TestContextHandler_AnonymousRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ctxlog.NewContextHandler(slog.NewJSONHandler(&buf, nil))).With("component", "test")

	logger.InfoContext(context.Background(), "hello")

	rec := decode(t, &buf)
	if _, ok := rec["request_id"]; ok {
		t.Error("unexpected request_id")
	}
	if _, ok := rec["user_id"]; ok {
		t.Error("unexpected user_id")
	}
	if rec["component"] != "test" {
		t.Errorf("component = %v, want test", rec["component"])
	}
}
