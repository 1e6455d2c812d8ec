package cpu

// Flag is the bit position of a flag in the F register.
type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// setFlags sets all four flags at once. The low nibble of F is
// always zero.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	var f uint8
	if zero {
		f |= 1 << FlagZero
	}
	if subtract {
		f |= 1 << FlagSubtract
	}
	if halfCarry {
		f |= 1 << FlagHalfCarry
	}
	if carry {
		f |= 1 << FlagCarry
	}
	c.F = f
}

// setFlag sets a flag.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// clearFlag clears a flag.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return c.F >> FlagCarry & 1
}
