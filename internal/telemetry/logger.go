// Package telemetry wraps the go-kit logfmt logger used throughout the
// simulator and optimizer for leveled, structured status reporting.
package telemetry

import (
	"io"

	kitlog "github.com/go-kit/kit/log"
)

// New builds a logfmt logger writing to w, synchronized the same way
// the reference wraps os.Stdout for concurrent-safe writes.
func New(w io.Writer) kitlog.Logger {
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
}

// WithSubsystem tags every line the returned logger emits with
// "subsys", subsystem.
func WithSubsystem(logger kitlog.Logger, subsystem string) kitlog.Logger {
	return kitlog.With(logger, "subsys", subsystem)
}

// Nop returns a logger that discards everything, used by default when
// no destination is configured (tests, library callers).
func Nop() kitlog.Logger {
	return kitlog.NewNopLogger()
}
