// Package cpu provides the Sharp LR35902 CPU of the DMG. The CPU
// fetches, decodes and executes one instruction per Step against the
// Bus, and reports the number of machine cycles it took, leaving the
// rest of the hardware to be advanced by the caller.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304

	// interruptCycles is the number of machine cycles taken to
	// dispatch an interrupt.
	interruptCycles = 5
	// haltCycles is the number of machine cycles a halted step takes.
	haltCycles = 1
)

// Bus is the memory the CPU executes against.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// DecodeError is returned when the CPU fetches an opcode that maps to
// no instruction. Emulation can not continue past it.
type DecodeError struct {
	Opcode uint8
	PC     uint16
	// Registers is a dump of the CPU registers at the time of the
	// fetch, empty when returned by Decode.
	Registers string
}

func (e *DecodeError) Error() string {
	if e.Registers == "" {
		return fmt.Sprintf("cpu: illegal opcode 0x%02X", e.Opcode)
	}
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X (%s)", e.Opcode, e.PC, e.Registers)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable.
	IME bool
	// Halted is set while the CPU waits for an interrupt.
	Halted bool
	// Debug logs every executed instruction at debug level.
	Debug bool

	// eiPending delays the effect of EI by one instruction.
	eiPending bool

	bus Bus
	irq *interrupts.Service
	log log.Logger
}

// NewCPU returns a CPU executing against bus, in the state left
// behind by the boot ROM.
func NewCPU(bus Bus, irq *interrupts.Service, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{
		bus: bus,
		irq: irq,
		log: logger,
	}
	c.pairRegisters()
	c.Reset()
	return c
}

// Reset sets the registers to the values left behind by the DMG boot
// ROM, with PC at the cartridge entry point.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME, c.Halted, c.eiPending = false, false, false
}

// PowerOn clears every register, leaving PC at 0x0000 for a boot
// ROM to run.
func (c *CPU) PowerOn() {
	c.AF.SetUint16(0)
	c.BC.SetUint16(0)
	c.DE.SetUint16(0)
	c.HL.SetUint16(0)
	c.SP, c.PC = 0, 0
	c.IME, c.Halted, c.eiPending = false, false, false
}

// Wake takes the CPU out of the halted state.
func (c *CPU) Wake() {
	c.Halted = false
}

// DisableInterrupts clears IME.
func (c *CPU) DisableInterrupts() {
	c.IME = false
}

// Step services a pending interrupt, or executes a single instruction,
// and returns the number of machine cycles taken. A halted CPU takes
// a single machine cycle per step until an interrupt is pending; with
// IME clear it then resumes execution without servicing it.
//
// An opcode that maps to no instruction returns a *DecodeError.
func (c *CPU) Step() (uint8, error) {
	if c.IME && c.irq.Pending() {
		return c.serviceInterrupt(), nil
	}
	if c.Halted {
		if !c.irq.Pending() {
			return haltCycles, nil
		}
		c.Halted = false
	}

	// EI takes effect once the instruction after it has completed
	enable := c.eiPending

	opcode := c.bus.Read(c.PC)
	ins, err := Decode(opcode, c.bus.Read(c.PC+1), c.bus.Read(c.PC+2))
	if err != nil {
		decodeErr := &DecodeError{Opcode: opcode, PC: c.PC, Registers: c.String()}
		c.log.Errorf("%v", decodeErr)
		return 0, decodeErr
	}
	if c.Debug {
		c.log.Debugf("%04X: %-16s %s", c.PC, ins, c)
	}

	cycles := c.Execute(ins)

	if enable && c.eiPending {
		c.IME = true
		c.eiPending = false
	}

	return cycles, nil
}

// String returns a dump of the registers.
func (c *CPU) String() string {
	return fmt.Sprintf("AF=%04X BC=%04X DE=%04X HL=%04X SP=%04X PC=%04X IME=%t HALT=%t",
		c.AF.Uint16(), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.SP, c.PC, c.IME, c.Halted)
}
