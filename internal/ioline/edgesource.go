package ioline

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/cul-go/rfdemod/rfcore"
)

// EdgeSource drives an rfcore.Receiver from a Line instead of a bare GPIO
// pin, for transceivers whose demodulated data-out is bridged through a
// UART front-end rather than exposed on a host GPIO. Each edge arrives as a
// compact 3-byte record: one level byte (0 = falling, 1 = rising) followed
// by a big-endian uint16 of elapsed microseconds since the previous edge.
type EdgeSource struct {
	line *Line
	recv *rfcore.Receiver

	mu       sync.Mutex
	lastEdge time.Time
	stop     chan struct{}
	readDone chan struct{}
	wdDone   chan struct{}
}

// OpenEdgeSource opens the named serial device and starts feeding its edge
// records, plus the silence-compare deadline they arm, into recv.
func OpenEdgeSource(name string, baud int, recv *rfcore.Receiver) (*EdgeSource, error) {
	line, err := Open(name, baud)
	if err != nil {
		return nil, err
	}

	s := &EdgeSource{
		line:     line,
		recv:     recv,
		lastEdge: time.Now(),
		stop:     make(chan struct{}),
		readDone: make(chan struct{}),
		wdDone:   make(chan struct{}),
	}

	go s.readLoop()
	go s.watchdog()

	return s, nil
}

// readLoop decodes 3-byte edge records off the line and feeds them to the
// receiver until Close is called.
func (s *EdgeSource) readLoop() {
	defer close(s.readDone)
	record := make([]byte, 3)

	for {
		n := 0
		for n < len(record) {
			select {
			case <-s.stop:
				return
			default:
			}

			b, ok, err := s.line.ReadByte()
			if err != nil {
				return
			}
			if !ok {
				continue
			}
			record[n] = b
			n++
		}

		lineHigh := record[0] != 0
		elapsed := binary.BigEndian.Uint16(record[1:3])

		s.mu.Lock()
		s.lastEdge = time.Now()
		s.mu.Unlock()

		s.recv.OnEdge(lineHigh, uint32(elapsed))
	}
}

// watchdog polls for the silence-compare deadline elapsing without a
// further edge record, the same role internal/edgesrc's watchdog plays for
// a bare GPIO line.
func (s *EdgeSource) watchdog() {
	defer close(s.wdDone)
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !s.recv.Busy() {
				continue
			}
			s.mu.Lock()
			elapsed := time.Since(s.lastEdge)
			s.mu.Unlock()

			deadline := time.Duration(s.recv.ArmedSilence()) * 16 * time.Microsecond
			if elapsed >= deadline {
				s.recv.OnSilence()
			}
		}
	}
}

// Close stops both goroutines and releases the underlying serial device.
func (s *EdgeSource) Close() error {
	close(s.stop)
	<-s.readDone
	<-s.wdDone
	if err := s.line.Close(); err != nil {
		return fmt.Errorf("ioline: close: %w", err)
	}
	return nil
}
