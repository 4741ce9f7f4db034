// Package statusled drives the front-panel LED: solid while encoder data
// is flowing, off while the stream is down.
package statusled

import (
	"fmt"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

type LED struct {
	pin gpio.PinIO
}

// Open initialises the GPIO host and looks the pin up by name (e.g.
// "GPIO17").  Boards without GPIO aren't fatal; callers get an error and
// carry on without the LED.
func Open(pinName string) (*LED, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init GPIO host: %w", err)
	}
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("no GPIO pin named %q", pinName)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to drive pin %s: %w", pinName, err)
	}
	return &LED{pin: pin}, nil
}

func (l *LED) Set(on bool) {
	level := gpio.Low
	if on {
		level = gpio.High
	}
	if err := l.pin.Out(level); err != nil {
		fmt.Println("Failed to set status LED:", err)
	}
}

func (l *LED) Off() {
	l.Set(false)
}
