package sensor

import "errors"

// FakeClimate is a test double that returns scripted measurements.
type FakeClimate struct {
	// Errors contains scripted Measure results. Each call consumes the next
	// entry; once exhausted, Measure succeeds.
	Errors []error

	// FailAlways, if set, makes every Measure call fail.
	FailAlways bool

	// Temp and Hum are returned after a successful Measure.
	Temp float64
	Hum  float64

	// Calls counts Measure invocations.
	Calls int
}

// NewFakeClimate creates a FakeClimate that always succeeds with the given values.
func NewFakeClimate(temp, hum float64) *FakeClimate {
	return &FakeClimate{Temp: temp, Hum: hum}
}

// Measure returns the next scripted result.
func (f *FakeClimate) Measure() error {
	i := f.Calls
	f.Calls++
	if f.FailAlways {
		return errors.New("simulated sensor timeout")
	}
	if i < len(f.Errors) {
		return f.Errors[i]
	}
	return nil
}

// Temperature returns Temp.
func (f *FakeClimate) Temperature() float64 { return f.Temp }

// Humidity returns Hum.
func (f *FakeClimate) Humidity() float64 { return f.Hum }

// FakeLight returns a fixed light level.
type FakeLight struct {
	Level int
}

// Light returns Level.
func (f *FakeLight) Light() int { return f.Level }
