package testing

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/arloliu/pulse/internal/logging"
	"github.com/arloliu/pulse/types"
)

// NewTestLogger creates a logger that writes to the testing.T log through
// the library's slog adapter, so test output carries the same structured
// fields operators see in production logs.
func NewTestLogger(t *testing.T) types.Logger {
	handler := slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelDebug})

	return &testLogger{
		SlogLogger: logging.NewSlog(slog.New(handler)),
		t:          t,
	}
}

type testLogger struct {
	*logging.SlogLogger
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

// Fatal logs the message and fails the test immediately instead of
// exiting the process.
func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.Error(msg, keysAndValues...)
	l.t.FailNow()
}

// testWriter adapts testing.T to io.Writer for slog handlers.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Logf("%s", bytes.TrimRight(p, "\n"))
	return len(p), nil
}
