package serial

import (
	"strings"

	"github.com/thelolagemann/gbcore/pkg/log"
)

// Sink receives every byte sent over the serial port.
type Sink interface {
	Receive(b uint8)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(b uint8)

// Receive calls f(b).
func (f SinkFunc) Receive(b uint8) { f(b) }

// Debugger is a Sink that collects the text test ROMs print over
// the serial port.
type Debugger struct {
	text strings.Builder
	line strings.Builder

	log log.Logger
}

// NewDebugger returns a Debugger that logs each completed line to l.
func NewDebugger(l log.Logger) *Debugger {
	if l == nil {
		l = log.NewNullLogger()
	}
	return &Debugger{log: l}
}

// Receive implements Sink.
func (d *Debugger) Receive(b uint8) {
	d.text.WriteByte(b)
	if b == '\n' {
		d.log.Infof("serial: %s", d.line.String())
		d.line.Reset()
		return
	}
	d.line.WriteByte(b)
}

// String returns everything received so far.
func (d *Debugger) String() string {
	return d.text.String()
}

// Lines returns the received text split into lines, without the
// trailing empty line.
func (d *Debugger) Lines() []string {
	return strings.Split(strings.TrimRight(d.text.String(), "\n"), "\n")
}

// Finished reports whether a test ROM has reported its result.
func (d *Debugger) Finished() bool {
	return d.Passed() || strings.Contains(d.text.String(), "Failed")
}

// Passed reports whether a test ROM has reported success.
func (d *Debugger) Passed() bool {
	return strings.Contains(d.text.String(), "Passed")
}
