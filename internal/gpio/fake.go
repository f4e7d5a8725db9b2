package gpio

import (
	"sync"
	"time"
)

// FakeButton is a test double that delivers scripted edges to its handler.
type FakeButton struct {
	handler EdgeHandler

	// Closed tracks if Close was called
	Closed bool
}

// NewFakeButton creates a FakeButton that calls handler on Press.
func NewFakeButton(handler EdgeHandler) *FakeButton {
	return &FakeButton{handler: handler}
}

// Press simulates a falling edge observed at monotonic time ts.
// Edges are dropped after Close.
func (f *FakeButton) Press(ts time.Duration) {
	if f.Closed || f.handler == nil {
		return
	}
	f.handler(ts)
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}

// RGB is one LED colour state.
type RGB struct {
	R, G, B bool
}

// FakeOutputs records every LED and buzzer change.
type FakeOutputs struct {
	mu sync.Mutex

	// LED contains every colour set, in order.
	LED []RGB

	// Buzzer contains every buzzer level set, in order.
	Buzzer []bool

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, is returned by SetRGB and SetBuzzer.
	SetError error
}

// NewFakeOutputs creates an empty FakeOutputs.
func NewFakeOutputs() *FakeOutputs {
	return &FakeOutputs{}
}

// SetRGB records the colour.
func (f *FakeOutputs) SetRGB(r, g, b bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.LED = append(f.LED, RGB{R: r, G: g, B: b})
	return nil
}

// SetBuzzer records the buzzer level.
func (f *FakeOutputs) SetBuzzer(on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SetError != nil {
		return f.SetError
	}
	f.Buzzer = append(f.Buzzer, on)
	return nil
}

// Close marks the outputs as closed.
func (f *FakeOutputs) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// LastLED returns the most recent colour, or all-off if none was set.
func (f *FakeOutputs) LastLED() RGB {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.LED) == 0 {
		return RGB{}
	}
	return f.LED[len(f.LED)-1]
}

// Beeps counts how many times the buzzer was switched on.
func (f *FakeOutputs) Beeps() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, on := range f.Buzzer {
		if on {
			n++
		}
	}
	return n
}
