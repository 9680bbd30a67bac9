// Package ioline wraps the serial line a transceiver module is attached to.
package ioline

import (
	"fmt"
	"time"

	"github.com/pkg/term"
)

// Line is an open serial connection to the radio module.
type Line struct {
	port *term.Term
	name string
}

// Open opens the named serial device at baud. It mirrors the teacher's
// serial_port_open: a failure to open is reported with the device name
// attached rather than left as a bare OS error.
func Open(name string, baud int) (*Line, error) {
	port, err := term.Open(name, term.Speed(baud), term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("ioline: open %s: %w", name, err)
	}
	if err := port.SetReadTimeout(250 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("ioline: set read timeout on %s: %w", name, err)
	}
	return &Line{port: port, name: name}, nil
}

// Write sends buf to the module.
func (l *Line) Write(buf []byte) (int, error) {
	n, err := l.port.Write(buf)
	if err != nil {
		return n, fmt.Errorf("ioline: write %s: %w", l.name, err)
	}
	return n, nil
}

// ReadByte reads a single byte, blocking up to the configured read timeout.
// It returns false with a nil error on a timeout (no byte available), the
// same contract the demodulator loop expects for its polling reads.
func (l *Line) ReadByte() (byte, bool, error) {
	buf := make([]byte, 1)
	n, err := l.port.Read(buf)
	if err != nil {
		return 0, false, fmt.Errorf("ioline: read %s: %w", l.name, err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return buf[0], true, nil
}

// Close releases the serial device.
func (l *Line) Close() error {
	return l.port.Close()
}
