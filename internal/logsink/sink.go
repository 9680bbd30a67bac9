// Package logsink adapts rfcore's two output streams (decoded frames and
// diagnostic lines) onto structured logging and a timestamped raw feed.
package logsink

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// Sink implements rfcore.Sink: decoded frames go to w verbatim (for a
// downstream client expecting the wire format), diagnostic lines go
// through a structured logger with a strftime-formatted timestamp prefix.
type Sink struct {
	w      io.Writer
	logger *log.Logger
	stamp  *strftime.Strftime
}

// New builds a Sink writing frames to w and diagnostics to the logger's
// configured writer (stderr by default).
func New(w io.Writer, pattern string) (*Sink, error) {
	if pattern == "" {
		pattern = "%Y-%m-%d %H:%M:%S"
	}
	stamp, err := strftime.New(pattern)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false, // timestamps come from strftime below
		Prefix:          "rfdemod",
		Level:           log.DebugLevel,
	})

	return &Sink{w: w, logger: logger, stamp: stamp}, nil
}

// EmitFrame writes a decoded-frame line verbatim to the wire sink.
func (s *Sink) EmitFrame(line string) {
	io.WriteString(s.w, line)
}

// EmitDebug logs a diagnostic line with a strftime-formatted timestamp.
func (s *Sink) EmitDebug(line string) {
	var ts strings.Builder
	s.stamp.Format(&ts, time.Now())
	s.logger.Debug(strings.TrimRight(line, "\r\n"), "at", ts.String())
}
