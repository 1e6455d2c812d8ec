package cpu

// Register is a single 8-bit register of the CPU.
type Register = uint8

// RegisterPair is two 8-bit registers viewed as a single 16-bit
// register, with High holding the most significant byte.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the pair.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the pair.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers holds the eight 8-bit registers of the CPU, and the
// pairs formed from them.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	AF *RegisterPair
	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
}

// pairRegisters creates the register pairs of r.
func (r *Registers) pairRegisters() {
	r.AF = &RegisterPair{&r.A, &r.F}
	r.BC = &RegisterPair{&r.B, &r.C}
	r.DE = &RegisterPair{&r.D, &r.E}
	r.HL = &RegisterPair{&r.H, &r.L}
}
