package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (failingHandler) Handle(context.Context, slog.Record) error {
	return errors.New("sink closed")
}

func TestMultiHandler_LevelsPerSink(t *testing.T) {
	var warnOnly, all bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&warnOnly, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewJSONHandler(&all, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("platform", "instantly")

	logger.Debug("detail")
	logger.Warn("careful")

	if strings.Contains(warnOnly.String(), "detail") {
		t.Errorf("warn sink got debug record: %q", warnOnly.String())
	}
	if !strings.Contains(warnOnly.String(), "careful") {
		t.Errorf("warn sink missing warning: %q", warnOnly.String())
	}
	if strings.Count(all.String(), `"platform":"instantly"`) != 2 {
		t.Errorf("debug sink should have both records with attrs: %q", all.String())
	}
}

func TestMultiHandler_FirstErrorReturned(t *testing.T) {
	var buf bytes.Buffer
	h := NewMultiHandler(failingHandler{}, slog.NewTextHandler(&buf, nil))

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "still written", 0))
	if err == nil || err.Error() != "sink closed" {
		t.Errorf("Handle() error = %v, want sink closed", err)
	}
	if !strings.Contains(buf.String(), "still written") {
		t.Error("second sink should still receive the record")
	}
}
