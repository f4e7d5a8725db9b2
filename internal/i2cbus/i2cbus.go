// Package i2cbus opens the I²C bus shared by the LCD backpack and the ADC.
package i2cbus

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Open initialises the periph host drivers and opens the named bus.
// An empty name selects the first bus found (/dev/i2c-1 on a Pi).
//
// The returned bus satisfies tinygo's drivers.I2C, so the same handle is
// passed to the display and to the light sensor.
func Open(name string) (i2c.BusCloser, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "init periph host")
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open i2c bus %q", name)
	}
	return bus, nil
}
