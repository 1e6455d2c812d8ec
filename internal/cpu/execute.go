package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
)

// Execute executes ins, advancing PC past it first, and returns the
// number of machine cycles it took.
func (c *CPU) Execute(ins Instruction) uint8 {
	c.PC += uint16(ins.Length)
	cycles := ins.Cycles

	switch ins.Op {
	case OpNOP, OpSTOP:
	case OpLD:
		c.write8(ins, ins.Dst, c.read8(ins, ins.Src))
	case OpLD16:
		if ins.Dst == IndA16 {
			c.bus.Write(ins.Imm16, uint8(c.SP))
			c.bus.Write(ins.Imm16+1, uint8(c.SP>>8))
		} else {
			c.write16(ins.Dst, c.read16(ins, ins.Src))
		}
	case OpLDHLSP:
		c.HL.SetUint16(c.addSPSigned(ins.Imm8))
	case OpPUSH:
		c.push(c.read16(ins, ins.Src))
	case OpPOP:
		c.write16(ins.Dst, c.pop())

	case OpADD:
		c.add(c.read8(ins, ins.Src), false)
	case OpADC:
		c.add(c.read8(ins, ins.Src), true)
	case OpSUB:
		c.A = c.sub(c.read8(ins, ins.Src), false)
	case OpSBC:
		c.A = c.sub(c.read8(ins, ins.Src), true)
	case OpAND:
		c.and(c.read8(ins, ins.Src))
	case OpXOR:
		c.xor(c.read8(ins, ins.Src))
	case OpOR:
		c.or(c.read8(ins, ins.Src))
	case OpCP:
		c.sub(c.read8(ins, ins.Src), false)
	case OpINC:
		c.write8(ins, ins.Dst, c.increment(c.read8(ins, ins.Dst)))
	case OpDEC:
		c.write8(ins, ins.Dst, c.decrement(c.read8(ins, ins.Dst)))
	case OpINC16:
		c.write16(ins.Dst, c.read16(ins, ins.Dst)+1)
	case OpDEC16:
		c.write16(ins.Dst, c.read16(ins, ins.Dst)-1)
	case OpADDHL:
		c.addHL(c.read16(ins, ins.Src))
	case OpADDSP:
		c.SP = c.addSPSigned(ins.Imm8)

	case OpDAA:
		c.daa()
	case OpCPL:
		c.A = ^c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	case OpSCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	case OpCCF:
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))

	case OpRLCA:
		c.A = c.rotateLeft(c.A, false)
		c.clearFlag(FlagZero)
	case OpRRCA:
		c.A = c.rotateRight(c.A, false)
		c.clearFlag(FlagZero)
	case OpRLA:
		c.A = c.rotateLeft(c.A, true)
		c.clearFlag(FlagZero)
	case OpRRA:
		c.A = c.rotateRight(c.A, true)
		c.clearFlag(FlagZero)
	case OpRLC:
		c.write8(ins, ins.Dst, c.rotateLeft(c.read8(ins, ins.Dst), false))
	case OpRRC:
		c.write8(ins, ins.Dst, c.rotateRight(c.read8(ins, ins.Dst), false))
	case OpRL:
		c.write8(ins, ins.Dst, c.rotateLeft(c.read8(ins, ins.Dst), true))
	case OpRR:
		c.write8(ins, ins.Dst, c.rotateRight(c.read8(ins, ins.Dst), true))
	case OpSLA:
		c.write8(ins, ins.Dst, c.shiftLeftArithmetic(c.read8(ins, ins.Dst)))
	case OpSRA:
		c.write8(ins, ins.Dst, c.shiftRightArithmetic(c.read8(ins, ins.Dst)))
	case OpSWAP:
		c.write8(ins, ins.Dst, c.swap(c.read8(ins, ins.Dst)))
	case OpSRL:
		c.write8(ins, ins.Dst, c.shiftRightLogical(c.read8(ins, ins.Dst)))
	case OpBIT:
		c.testBit(c.read8(ins, ins.Dst), ins.Bit)
	case OpRES:
		c.write8(ins, ins.Dst, c.read8(ins, ins.Dst)&^(1<<ins.Bit))
	case OpSET:
		c.write8(ins, ins.Dst, c.read8(ins, ins.Dst)|1<<ins.Bit)

	case OpJP:
		if c.condition(ins.Cond) {
			c.PC = c.read16(ins, ins.Src)
			cycles += ins.takenCycles()
		}
	case OpJR:
		if c.condition(ins.Cond) {
			c.PC += uint16(int8(ins.Imm8))
			cycles += ins.takenCycles()
		}
	case OpCALL:
		if c.condition(ins.Cond) {
			c.push(c.PC)
			c.PC = ins.Imm16
			cycles += ins.takenCycles()
		}
	case OpRET:
		if c.condition(ins.Cond) {
			c.PC = c.pop()
			cycles += ins.takenCycles()
		}
	case OpRETI:
		c.PC = c.pop()
		c.IME = true
	case OpRST:
		c.push(c.PC)
		c.PC = uint16(ins.Imm8)

	case OpHALT:
		// with an interrupt already pending the CPU carries on
		if !c.irq.Pending() {
			c.Halted = true
		}
	case OpDI:
		c.IME = false
		c.eiPending = false
	case OpEI:
		c.eiPending = true
	default:
		panic(fmt.Sprintf("cpu: unknown operation %v", ins.Op))
	}

	return cycles
}

// condition reports whether cond is met by the current flags.
func (c *CPU) condition(cond Cond) bool {
	switch cond {
	case NZ:
		return !c.isFlagSet(FlagZero)
	case Z:
		return c.isFlagSet(FlagZero)
	case NC:
		return !c.isFlagSet(FlagCarry)
	case CY:
		return c.isFlagSet(FlagCarry)
	}
	return true
}

// read8 returns the value of an 8-bit operand. Reading (HL+) or (HL-)
// adjusts HL.
func (c *CPU) read8(ins Instruction, o Operand) uint8 {
	switch o {
	case A:
		return c.A
	case B:
		return c.B
	case C:
		return c.Registers.C
	case D:
		return c.D
	case E:
		return c.E
	case H:
		return c.H
	case L:
		return c.L
	case D8:
		return ins.Imm8
	}
	if o.memory() {
		return c.bus.Read(c.address(ins, o))
	}
	panic(fmt.Sprintf("cpu: %v is not an 8-bit source", o))
}

// write8 writes value to an 8-bit operand. Writing (HL+) or (HL-)
// adjusts HL.
func (c *CPU) write8(ins Instruction, o Operand, value uint8) {
	switch o {
	case A:
		c.A = value
	case B:
		c.B = value
	case C:
		c.Registers.C = value
	case D:
		c.D = value
	case E:
		c.E = value
	case H:
		c.H = value
	case L:
		c.L = value
	default:
		if !o.memory() {
			panic(fmt.Sprintf("cpu: %v is not an 8-bit destination", o))
		}
		c.bus.Write(c.address(ins, o), value)
	}
}

// address returns the memory address an operand refers to.
func (c *CPU) address(ins Instruction, o Operand) uint16 {
	switch o {
	case IndBC:
		return c.BC.Uint16()
	case IndDE:
		return c.DE.Uint16()
	case IndHL:
		return c.HL.Uint16()
	case IndHLInc:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl + 1)
		return hl
	case IndHLDec:
		hl := c.HL.Uint16()
		c.HL.SetUint16(hl - 1)
		return hl
	case IndA16:
		return ins.Imm16
	case HighA8:
		return 0xFF00 | uint16(ins.Imm8)
	case HighC:
		return 0xFF00 | uint16(c.Registers.C)
	}
	panic(fmt.Sprintf("cpu: %v is not a memory operand", o))
}

func (c *CPU) read16(ins Instruction, o Operand) uint16 {
	switch o {
	case AF:
		return c.AF.Uint16()
	case BC:
		return c.BC.Uint16()
	case DE:
		return c.DE.Uint16()
	case HL:
		return c.HL.Uint16()
	case SP:
		return c.SP
	case D16:
		return ins.Imm16
	}
	panic(fmt.Sprintf("cpu: %v is not a 16-bit source", o))
}

func (c *CPU) write16(o Operand, value uint16) {
	switch o {
	case AF:
		c.AF.SetUint16(value & 0xFFF0)
	case BC:
		c.BC.SetUint16(value)
	case DE:
		c.DE.SetUint16(value)
	case HL:
		c.HL.SetUint16(value)
	case SP:
		c.SP = value
	default:
		panic(fmt.Sprintf("cpu: %v is not a 16-bit destination", o))
	}
}

// push writes value to the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop reads a value from the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// serviceInterrupt consumes the highest priority pending interrupt
// and jumps to its vector.
func (c *CPU) serviceInterrupt() uint8 {
	src, ok := c.irq.Consume(c)
	if !ok {
		return 0
	}
	c.eiPending = false
	c.push(c.PC)
	c.PC = interrupts.Vector(src)
	if c.Debug {
		c.log.Debugf("cpu: servicing %v interrupt", src)
	}
	return interruptCycles
}
