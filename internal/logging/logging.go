// Package logging builds the run-scoped logger shared by all
// collaborators of one extraction run.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// NewRunLogger returns a logger writing to both stdout and the given
// log file, plus a close function for the file. The logger is
// constructed once per invocation and injected; nothing here touches
// global logger state.
func NewRunLogger(path string, level slog.Level) (*slog.Logger, func() error, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(io.MultiWriter(os.Stdout, file), &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler), file.Close, nil
}
