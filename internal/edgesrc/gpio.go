// Package edgesrc drives an rfcore.Receiver from a GPIO line carrying the
// transceiver's demodulated data-out pin.
package edgesrc

import (
	"fmt"
	"sync"
	"time"

	"github.com/warthog618/go-gpiocdev"

	"github.com/cul-go/rfdemod/rfcore"
)

// Source watches one GPIO line for edges and feeds them, plus the silence
// deadline they arm, into a Receiver.
type Source struct {
	line *gpiocdev.Line
	recv *rfcore.Receiver

	mu       sync.Mutex
	lastEdge time.Time
	stop     chan struct{}
	done     chan struct{}
}

// Open requests chip/offset in both-edges mode and starts watching it.
func Open(chip string, offset int, recv *rfcore.Receiver) (*Source, error) {
	s := &Source{recv: recv, stop: make(chan struct{}), done: make(chan struct{})}

	line, err := gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsInput,
		gpiocdev.WithBothEdges,
		gpiocdev.WithEventHandler(s.handleEvent),
	)
	if err != nil {
		return nil, fmt.Errorf("edgesrc: request %s:%d: %w", chip, offset, err)
	}
	s.line = line
	s.lastEdge = time.Now()

	go s.watchdog()

	return s, nil
}

func (s *Source) handleEvent(evt gpiocdev.LineEvent) {
	now := time.Now()

	s.mu.Lock()
	elapsed := now.Sub(s.lastEdge)
	s.lastEdge = now
	s.mu.Unlock()

	s.recv.OnEdge(evt.Type == gpiocdev.LineEventRisingEdge, uint32(elapsed.Microseconds()))
}

// watchdog polls for the silence-compare deadline elapsing without a
// further edge, since a GPIO line offers no hardware compare interrupt of
// its own: it is the hosted equivalent of the firmware's TIMER1_COMPA ISR.
func (s *Source) watchdog() {
	defer close(s.done)
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

// Close stops watching the line and releases it.
func (s *Source) Close() error {
	close(s.stop)
	<-s.done
	return s.line.Close()
}
