// Package gpio provides the button input and the LED/buzzer outputs with
// hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import "time"

// EdgeHandler receives a button edge with its monotonic kernel timestamp.
// It runs on the edge-event goroutine, not on the station loop.
type EdgeHandler func(ts time.Duration)

// Button delivers falling edges of a pulled-up push button.
type Button interface {
	// Close stops edge delivery and releases the line.
	Close() error
}

// Outputs drives the RGB status LED and the buzzer.
type Outputs interface {
	// SetRGB sets each LED channel on or off.
	SetRGB(r, g, b bool) error

	// SetBuzzer switches the buzzer on or off.
	SetBuzzer(on bool) error

	// Close releases the output lines.
	Close() error
}
