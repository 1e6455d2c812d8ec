// Package serial provides the serial port of the Game Boy, exposed
// through the SB and SC registers.
package serial

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ticksPerBit is the time taken to shift a single bit on the
	// internal clock (8192 Hz).
	ticksPerBit = 512
	// transferTicks is the time taken to shift a whole byte.
	transferTicks = 8 * ticksPerBit

	controlStart    = types.Bit7
	controlInternal = types.Bit0
)

// Controller is the serial controller.
//
// Writing types.SC with both the transfer start and internal clock
// bits set hands the byte in types.SB to the attached Sink, which
// acknowledges it at once: the start bit is cleared, SB reads 0xFF
// (nothing was shifted in) and the serial interrupt is requested.
//
// With no Sink attached the transfer runs for the time it would
// take on hardware with nothing plugged into the port.
type Controller struct {
	data    uint8
	control uint8
	// remaining is the number of ticks left in a transfer on the
	// internal clock, 0 when idle.
	remaining uint16

	sink Sink
	irq  *interrupts.Service
}

// NewController returns a serial controller that requests interrupts
// through irq.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// Attach attaches a Sink to the Controller, replacing any previous one.
// Passing nil detaches the current Sink.
func (c *Controller) Attach(s Sink) {
	c.sink = s
}

// Tick advances a transfer by a single T-cycle.
func (c *Controller) Tick() {
	if c.remaining == 0 {
		return
	}
	if c.remaining--; c.remaining == 0 {
		c.complete(0xFF)
	}
}

// complete ends a transfer with in as the received byte.
func (c *Controller) complete(in uint8) {
	c.data = in
	c.control &^= controlStart
	c.irq.Request(interrupts.Serial)
}

// Read implements types.Register.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		return c.control | 0x7E // bits 1-6 are unused
	}
	panic(fmt.Sprintf("serial: illegal read from address 0x%04X", address))
}

// Write implements types.Register.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.control = value & (controlStart | controlInternal)
		if c.control != controlStart|controlInternal {
			// transfers on the external clock never complete
			// without a partner driving the clock
			c.remaining = 0
			return
		}
		if c.sink != nil {
			c.sink.Receive(c.data)
			c.complete(0xFF)
			return
		}
		c.remaining = transferTicks
	default:
		panic(fmt.Sprintf("serial: illegal write to address 0x%04X", address))
	}
}
