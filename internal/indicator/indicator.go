// Package indicator maps station states to RGB LED colours and drives the
// buzzer.
package indicator

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/sweeney/weather-station/internal/gpio"
)

// State is a named LED colour.
type State string

const (
	Off        State = "OFF"
	Normal     State = "NORMAL"     // green: last sample succeeded
	Warning    State = "WARNING"    // amber: sample fell back to last good values
	Busy       State = "BUSY"       // blue: forecast request in flight
	Success    State = "SUCCESS"    // green: forecast received
	Error      State = "ERROR"      // red: forecast failed
	Connecting State = "CONNECTING" // yellow: waiting for the network
	Connected  State = "CONNECTED"  // blue: network associated at boot
)

var colours = map[State]gpio.RGB{
	Off:        {},
	Normal:     {G: true},
	Warning:    {R: true, G: true},
	Busy:       {B: true},
	Success:    {G: true},
	Error:      {R: true},
	Connecting: {R: true, G: true},
	Connected:  {B: true},
}

// Colour returns the LED channels for s. Unknown states are off.
func Colour(s State) gpio.RGB {
	return colours[s]
}

// Indicator drives the status LED and buzzer. Hardware errors are logged and
// otherwise ignored: a broken LED must never stop the station.
type Indicator struct {
	out    gpio.Outputs
	logger log.Logger
	sleep  func(time.Duration)
	state  State
}

// New creates an Indicator on out. A nil sleep uses time.Sleep.
func New(out gpio.Outputs, logger log.Logger, sleep func(time.Duration)) *Indicator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Indicator{
		out:    out,
		logger: logger,
		sleep:  sleep,
		state:  Off,
	}
}

// Set switches the LED to the colour of s.
func (i *Indicator) Set(s State) {
	c := Colour(s)
	if err := i.out.SetRGB(c.R, c.G, c.B); err != nil {
		level.Warn(i.logger).Log("msg", "failed to set led", "state", s, "err", err)
		return
	}
	i.state = s
}

// State returns the last state successfully applied.
func (i *Indicator) State() State {
	return i.state
}

// Beep sounds the buzzer for d. It blocks for d.
func (i *Indicator) Beep(d time.Duration) {
	if err := i.out.SetBuzzer(true); err != nil {
		level.Warn(i.logger).Log("msg", "failed to sound buzzer", "err", err)
		return
	}
	i.sleep(d)
	if err := i.out.SetBuzzer(false); err != nil {
		level.Warn(i.logger).Log("msg", "failed to silence buzzer", "err", err)
	}
}

// Blink toggles between s and Off every interval until stop is closed.
// It leaves the LED off on return.
func (i *Indicator) Blink(s State, interval time.Duration, stop <-chan struct{}) {
	for {
		i.Set(s)
		select {
		case <-stop:
			i.Set(Off)
			return
		case <-time.After(interval):
		}
		i.Set(Off)
		select {
		case <-stop:
			return
		case <-time.After(interval):
		}
	}
}
