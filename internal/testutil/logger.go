package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a debug-level text logger and the buffer it writes to.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}
