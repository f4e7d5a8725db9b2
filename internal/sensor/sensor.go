// Package sensor samples the climate and light sensors.
// The real implementations read Linux IIO sysfs and an ADS1115 over I2C.
// The fake implementations allow testing without hardware.
package sensor

import (
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/sweeney/weather-station/internal/logic"
)

// ErrReadFailed is returned by Sample when every climate read attempt failed.
var ErrReadFailed = errors.New("sensor: read failed")

// Climate is a temperature/humidity sensor such as the DHT22.
type Climate interface {
	// Measure triggers a reading. It returns an error on transient failure.
	Measure() error
	// Temperature returns the last measured temperature in °C.
	Temperature() float64
	// Humidity returns the last measured relative humidity in %.
	Humidity() float64
}

// Light reads the light level in the range 0..4095.
type Light interface {
	Light() int
}

// Defaults for Sampler.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 500 * time.Millisecond
)

// Sampler wraps a Climate sensor with a fixed retry policy.
// It does not touch the status indicator; the caller decides fallback policy.
type Sampler struct {
	climate  Climate
	light    Light
	attempts int
	backoff  time.Duration
	sleep    func(time.Duration)
	logger   log.Logger
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithRetry sets the number of attempts and the wait between them.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(s *Sampler) {
		if attempts > 0 {
			s.attempts = attempts
		}
		s.backoff = backoff
	}
}

// WithSleep replaces time.Sleep, for tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(s *Sampler) { s.sleep = sleep }
}

// WithLogger sets the logger used for failed attempts.
func WithLogger(l log.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// NewSampler creates a Sampler reading climate and light.
func NewSampler(climate Climate, light Light, opts ...Option) *Sampler {
	s := &Sampler{
		climate:  climate,
		light:    light,
		attempts: DefaultAttempts,
		backoff:  DefaultBackoff,
		sleep:    time.Sleep,
		logger:   log.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample reads the sensors. The climate sensor is tried up to the configured
// number of attempts, waiting the backoff between attempts, and stops at the
// first success. If every attempt fails it returns ErrReadFailed together with
// a Reading that carries only the light level.
func (s *Sampler) Sample() (logic.Reading, error) {
	r := logic.Reading{Light: s.light.Light()}

	var lastErr error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		if err := s.climate.Measure(); err != nil {
			lastErr = err
			level.Debug(s.logger).Log("msg", "climate read failed", "attempt", attempt, "err", err)
			if attempt < s.attempts {
				s.sleep(s.backoff)
			}
			continue
		}
		r.Temperature = s.climate.Temperature()
		r.Humidity = s.climate.Humidity()
		return r, nil
	}

	return r, errors.Wrapf(ErrReadFailed, "after %d attempts: %v", s.attempts, lastErr)
}
