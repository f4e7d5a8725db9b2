//go:build linux

package sensor

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// IIOClimate reads a DHT22 exposed by the kernel dht11 IIO driver
// (dtoverlay=dht11). Values are reported in milli-units.
type IIOClimate struct {
	dir  string
	temp float64
	hum  float64
}

// NewIIOClimate creates a reader for the IIO device directory, e.g.
// /sys/bus/iio/devices/iio:device0.
func NewIIOClimate(dir string) (*IIOClimate, error) {
	if _, err := os.Stat(filepath.Join(dir, "in_temp_input")); err != nil {
		return nil, errors.Wrap(err, "open dht iio device")
	}
	return &IIOClimate{dir: dir}, nil
}

// Measure reads both channels. The driver returns EIO or ETIMEDOUT when the
// sensor response fails its checksum, which is reported as a transient error.
func (c *IIOClimate) Measure() error {
	temp, err := c.readMilli("in_temp_input")
	if err != nil {
		return errors.Wrap(err, "read temperature")
	}
	hum, err := c.readMilli("in_humidityrelative_input")
	if err != nil {
		return errors.Wrap(err, "read humidity")
	}
	c.temp = temp
	c.hum = hum
	return nil
}

// Temperature returns the last measured temperature in °C.
func (c *IIOClimate) Temperature() float64 { return c.temp }

// Humidity returns the last measured relative humidity in %.
func (c *IIOClimate) Humidity() float64 { return c.hum }

func (c *IIOClimate) readMilli(name string) (float64, error) {
	b, err := os.ReadFile(filepath.Join(c.dir, name))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(b)), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parse %s", name)
	}
	return float64(v) / 1000, nil
}
