// Package pps counts pulse-per-second edges from a GPS receiver's timing
// output on a GPIO pin. It only observes the pulse train; it does not
// discipline the system clock.
package pps

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type Snapshot struct {
	Pulses       uint64 `json:"pulses"`
	LastPulseUTC string `json:"last_pulse_utc,omitempty"`
	// IntervalMs is the spacing of the two most recent pulses. A healthy
	// receiver holds this near 1000.
	IntervalMs *int64 `json:"interval_ms,omitempty"`
}

type Monitor struct {
	pin int

	pulses   atomic.Uint64
	lastNano atomic.Int64
	prevNano atomic.Int64

	line io.Closer
	now  func() time.Time
}

func New(pin int) *Monitor {
	return &Monitor{pin: pin, now: time.Now}
}

// Start requests the GPIO line and begins counting rising edges.
func (m *Monitor) Start() error {
	line, err := openPPSFn(m.pin, m.pulse)
	if err != nil {
		return fmt.Errorf("pps: %w", err)
	}
	m.line = line
	return nil
}

// pulse records one rising edge. It is the GPIO event callback, and is
// also called directly from tests.
func (m *Monitor) pulse() {
	now := m.now().UnixNano()
	m.prevNano.Store(m.lastNano.Swap(now))
	m.pulses.Add(1)
}

func (m *Monitor) Snapshot() Snapshot {
	snap := Snapshot{Pulses: m.pulses.Load()}
	last := m.lastNano.Load()
	if last == 0 {
		return snap
	}
	snap.LastPulseUTC = time.Unix(0, last).UTC().Format(time.RFC3339Nano)
	if prev := m.prevNano.Load(); prev != 0 {
		ms := (last - prev) / int64(time.Millisecond)
		snap.IntervalMs = &ms
	}
	return snap
}

func (m *Monitor) Close() error {
	if m.line == nil {
		return nil
	}
	err := m.line.Close()
	m.line = nil
	return err
}
