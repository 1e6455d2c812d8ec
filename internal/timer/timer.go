// Package timer provides an implementation of the Game Boy
// timer. TIMA is clocked by the falling edge of a bit of the
// 16-bit system counter, selected through the types.TAC
// register, and requests a timer interrupt one tick after
// it overflows.
package timer

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// bits maps TAC bits 0-1 to the mask of the system counter bit
// whose falling edge increments TIMA.
//
//	00 = bit 9 (4096 Hz)
//	01 = bit 3 (262144 Hz)
//	10 = bit 5 (65536 Hz)
//	11 = bit 7 (16384 Hz)
var bits = [4]uint16{512, 8, 32, 128}

const (
	// controlEnable is the enable bit of types.TAC.
	controlEnable = types.Bit2
	// controlClock selects the input clock in types.TAC.
	controlClock = types.Bit1 | types.Bit0

	// InitialDivider is the value of the system counter once
	// the boot ROM has handed over to the cartridge.
	InitialDivider = 0xABCC
)

// Controller is the timer controller.
type Controller struct {
	divider uint16
	tima    uint8
	tma     uint8
	tac     uint8

	// interruptNext is set when TIMA has overflowed, the reload
	// and interrupt request happen on the following tick.
	interruptNext bool
	// reloading is set for the single tick in which TIMA is
	// reloaded from TMA.
	reloading bool

	irq *interrupts.Service
}

// NewController returns a new timer controller that requests
// interrupts through irq.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{
		irq:     irq,
		divider: InitialDivider,
	}
}

// Tick advances the timer by a single T-cycle.
func (c *Controller) Tick() {
	c.reloading = false

	if c.interruptNext {
		c.irq.Request(interrupts.Timer)
		c.interruptNext = false
		c.tima = c.tma
		c.reloading = true
	}

	oldBit := c.dividerBit()
	c.divider++
	if c.enabled() && oldBit && !c.dividerBit() {
		c.increment()
	}
}

// Divider returns the full 16-bit system counter.
func (c *Controller) Divider() uint16 {
	return c.divider
}

func (c *Controller) enabled() bool {
	return c.tac&controlEnable != 0
}

func (c *Controller) dividerBit() bool {
	return c.divider&bits[c.tac&controlClock] != 0
}

// increment increments TIMA, deferring the reload and interrupt
// to the next tick on overflow.
func (c *Controller) increment() {
	c.tima++
	c.interruptNext = c.tima == 0
}

// Read implements types.Register.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.divider >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0b11111000
	}
	panic(fmt.Sprintf("timer: illegal read from address 0x%04X", address))
}

// Write implements types.Register.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// resetting the counter can produce a falling edge
		old := c.enabled() && c.dividerBit()
		c.divider = 0
		if old && !c.dividerBit() {
			c.increment()
		}
	case types.TIMA:
		// a write cancels a pending reload, unless it lands on the
		// reload tick, in which case TMA wins
		c.interruptNext = false
		if c.reloading {
			c.tima = c.tma
		} else {
			c.tima = value
		}
	case types.TMA:
		c.tma = value
		if c.reloading {
			c.tima = value
		}
	case types.TAC:
		old := c.enabled() && c.dividerBit()
		c.tac = value & 0b111
		if old && !(c.enabled() && c.dividerBit()) {
			c.increment()
		}
	default:
		panic(fmt.Sprintf("timer: illegal write to address 0x%04X", address))
	}
}
