package sensor

import (
	"encoding/binary"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
)

// ADS1115 registers
const (
	regConversion = 0x00
	regConfig     = 0x01
)

// Single-shot, single-ended, ±4.096 V, 860 SPS, comparator disabled.
const (
	configOsSingle      uint16 = 0x8000
	configMuxSingle0    uint16 = 0x4000
	configGain4V        uint16 = 0x0200
	configModeSingle    uint16 = 0x0100
	configDataRate860   uint16 = 0x00E0
	configComparatorOff uint16 = 0x0003
)

// conversionWait covers one conversion at 860 SPS.
const conversionWait = 2 * time.Millisecond

// LightMax is the top of the reported light range.
const LightMax = 4095

// ADS1115Light reads an LDR divider on one ADS1115 channel.
// The 15-bit single-ended result is scaled to 0..LightMax.
type ADS1115Light struct {
	bus     drivers.I2C
	addr    uint16
	channel int
	sleep   func(time.Duration)
	logger  log.Logger
	last    int
}

// NewADS1115Light creates a light reader on the given bus, address and channel (0..3).
func NewADS1115Light(bus drivers.I2C, addr uint16, channel int, logger log.Logger) *ADS1115Light {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &ADS1115Light{
		bus:     bus,
		addr:    addr,
		channel: channel & 0x3,
		sleep:   time.Sleep,
		logger:  log.With(logger, "component", "ads1115"),
	}
}

// Light returns the current light level. On a bus error the previous level is
// returned and the error is logged.
func (a *ADS1115Light) Light() int {
	v, err := a.Read()
	if err != nil {
		level.Warn(a.logger).Log("msg", "light read failed, using previous value", "err", err)
		return a.last
	}
	a.last = v
	return v
}

// Read performs one single-shot conversion.
func (a *ADS1115Light) Read() (int, error) {
	mux := configMuxSingle0 + uint16(a.channel)<<12
	cfg := configOsSingle |
		mux |
		configGain4V |
		configModeSingle |
		configDataRate860 |
		configComparatorOff

	w := []byte{regConfig, 0, 0}
	binary.BigEndian.PutUint16(w[1:], cfg)
	if err := a.bus.Tx(a.addr, w, nil); err != nil {
		return 0, errors.Wrap(err, "write ads1115 config")
	}

	a.sleep(conversionWait)

	r := make([]byte, 2)
	if err := a.bus.Tx(a.addr, []byte{regConversion}, r); err != nil {
		return 0, errors.Wrap(err, "read ads1115 conversion")
	}
	return scaleLight(int16(binary.BigEndian.Uint16(r))), nil
}

func scaleLight(raw int16) int {
	if raw < 0 {
		return 0
	}
	return int(raw) >> 3
}
