//go:build !linux

package pps

import (
	"fmt"
	"io"
)

func openPPS(pin int, onPulse func()) (io.Closer, error) {
	return nil, fmt.Errorf("gpio unsupported on this platform")
}

var openPPSFn = openPPS
