package display

import (
	"sync"

	"github.com/pkg/errors"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"
)

// LCD is an HD44780 behind a PCF8574 I²C backpack.
type LCD struct {
	dev  hd44780i2c.Device
	bus  *recordingBus
	cols int
	rows int
	col  int
}

// NewLCD configures the display at addr on bus.
func NewLCD(bus drivers.I2C, addr uint8, cols, rows int) (*LCD, error) {
	rb := &recordingBus{bus: bus}
	dev := hd44780i2c.New(rb, addr)
	if err := dev.Configure(hd44780i2c.Config{
		Width:  uint8(cols),
		Height: uint8(rows),
	}); err != nil {
		return nil, errors.Wrap(err, "configure lcd")
	}
	if err := rb.take(); err != nil {
		return nil, errors.Wrapf(err, "lcd not responding at 0x%02x", addr)
	}
	return &LCD{dev: dev, bus: rb, cols: cols, rows: rows}, nil
}

// Clear blanks the display.
func (l *LCD) Clear() error {
	l.dev.ClearDisplay()
	l.col = 0
	return errors.Wrap(l.bus.take(), "clear lcd")
}

// MoveTo positions the cursor.
func (l *LCD) MoveTo(col, row int) error {
	if col < 0 || col >= l.cols || row < 0 || row >= l.rows {
		return errors.Errorf("cursor %d,%d outside %dx%d display", col, row, l.cols, l.rows)
	}
	l.dev.SetCursor(uint8(col), uint8(row))
	l.col = col
	return errors.Wrap(l.bus.take(), "move lcd cursor")
}

// Write prints text up to the end of the current row. Characters outside
// printable ASCII are shown as '?'.
func (l *LCD) Write(text string) error {
	data := make([]byte, 0, l.cols-l.col)
	for _, r := range text {
		if len(data) >= l.cols-l.col {
			break
		}
		if r < 0x20 || r > 0x7e {
			r = '?'
		}
		data = append(data, byte(r))
	}
	l.dev.Print(data)
	l.col += len(data)
	return errors.Wrap(l.bus.take(), "write lcd")
}

// recordingBus keeps the first bus error since the last take. The driver
// discards transaction errors, so this is the only way to see them.
type recordingBus struct {
	bus drivers.I2C

	mu  sync.Mutex
	err error
}

func (b *recordingBus) Tx(addr uint16, w, r []byte) error {
	err := b.bus.Tx(addr, w, r)
	if err != nil {
		b.mu.Lock()
		if b.err == nil {
			b.err = err
		}
		b.mu.Unlock()
	}
	return err
}

func (b *recordingBus) take() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	err := b.err
	b.err = nil
	return err
}
