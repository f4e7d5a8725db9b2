//go:build !linux

package sensor

import "github.com/pkg/errors"

// IIOClimate is not available on non-Linux platforms.
type IIOClimate struct{}

// NewIIOClimate returns an error on non-Linux platforms.
func NewIIOClimate(dir string) (*IIOClimate, error) {
	return nil, errors.New("sensor: iio not supported on this platform (requires Linux)")
}

// Measure is not implemented on non-Linux platforms.
func (c *IIOClimate) Measure() error {
	return errors.New("sensor: not supported")
}

// Temperature is not implemented on non-Linux platforms.
func (c *IIOClimate) Temperature() float64 { return 0 }

// Humidity is not implemented on non-Linux platforms.
func (c *IIOClimate) Humidity() float64 { return 0 }
