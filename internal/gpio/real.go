//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButton watches a button line using the Linux GPIO character device.
type RealButton struct {
	line *gpiocdev.Line
}

// NewRealButton requests pin as a pulled-up input and calls handler on every
// falling edge (button press). Debouncing is left to the handler.
func NewRealButton(chip string, pin int, handler EdgeHandler) (*RealButton, error) {
	line, err := gpiocdev.RequestLine(chip, pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithFallingEdge,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			handler(evt.Timestamp)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}
	return &RealButton{line: line}, nil
}

// Close releases the button line.
// Reconfigures the pin to input with pull-down (matching Pi boot defaults)
// before closing to ensure clean state for system shutdown/reboot.
func (b *RealButton) Close() error {
	var errs []error
	if err := b.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
		errs = append(errs, fmt.Errorf("reconfigure button pin: %w", err))
	}
	if err := b.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close button pin: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealOutputs drives the LED and buzzer lines.
type RealOutputs struct {
	led    *gpiocdev.Lines
	buzzer *gpiocdev.Line
}

// NewRealOutputs requests the LED pins and the buzzer pin as outputs, all off.
func NewRealOutputs(chip string, pinR, pinG, pinB, pinBuzzer int) (*RealOutputs, error) {
	led, err := gpiocdev.RequestLines(chip, []int{pinR, pinG, pinB}, gpiocdev.AsOutput(0, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("request led pins %d/%d/%d: %w", pinR, pinG, pinB, err)
	}

	buzzer, err := gpiocdev.RequestLine(chip, pinBuzzer, gpiocdev.AsOutput(0))
	if err != nil {
		led.Close()
		return nil, fmt.Errorf("request buzzer pin %d: %w", pinBuzzer, err)
	}

	return &RealOutputs{led: led, buzzer: buzzer}, nil
}

// SetRGB sets each LED channel on or off.
func (o *RealOutputs) SetRGB(r, g, b bool) error {
	if err := o.led.SetValues([]int{level(r), level(g), level(b)}); err != nil {
		return fmt.Errorf("set led: %w", err)
	}
	return nil
}

// SetBuzzer switches the buzzer on or off.
func (o *RealOutputs) SetBuzzer(on bool) error {
	if err := o.buzzer.SetValue(level(on)); err != nil {
		return fmt.Errorf("set buzzer: %w", err)
	}
	return nil
}

// Close switches everything off and reconfigures the pins to match Raspberry
// Pi boot defaults (input with pull-down) before closing.
func (o *RealOutputs) Close() error {
	var errs []error

	if o.led != nil {
		if err := o.led.SetValues([]int{0, 0, 0}); err != nil {
			errs = append(errs, fmt.Errorf("switch off led: %w", err))
		}
		if err := o.led.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure led pins: %w", err))
		}
		if err := o.led.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close led pins: %w", err))
		}
	}
	if o.buzzer != nil {
		if err := o.buzzer.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("switch off buzzer: %w", err))
		}
		if err := o.buzzer.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure buzzer pin: %w", err))
		}
		if err := o.buzzer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close buzzer pin: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func level(on bool) int {
	if on {
		return 1
	}
	return 0
}
