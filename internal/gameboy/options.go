package gameboy

import (
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every executed instruction at debug level.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.debug = true
	}
}

// WithLogger sets the logger used by every component.
func WithLogger(l log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = l
	}
}

// WithBootROM runs the given boot ROM before the cartridge, instead
// of starting at 0x0100 with the registers set to the values upon
// completion of the boot ROM.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		gb.bootROM = rom
	}
}

// WithSerialSink attaches s to the serial port.
func WithSerialSink(s serial.Sink) Opt {
	return func(gb *GameBoy) {
		gb.serialSink = s
	}
}

// WithDisplay attaches d, which receives every completed frame.
func WithDisplay(d Display) Opt {
	return func(gb *GameBoy) {
		gb.display = d
	}
}

// SerialDebugger intercepts serial output and stores it in output.
// Once a test ROM reports that it has passed or failed, the next step
// returns ErrBreakpoint.
func SerialDebugger(output *string) Opt {
	return func(gb *GameBoy) {
		gb.serialOutput = output
	}
}
