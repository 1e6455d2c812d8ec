package cpu

var (
	// registers8 maps the 3-bit register field of an opcode.
	registers8 = [8]Operand{B, C, D, E, H, L, IndHL, A}
	// registers16 maps the 2-bit register pair field of loads and
	// arithmetic.
	registers16 = [4]Operand{BC, DE, HL, SP}
	// stack16 maps the 2-bit register pair field of PUSH and POP.
	stack16 = [4]Operand{BC, DE, HL, AF}
	// conditions maps the 2-bit condition field.
	conditions = [4]Cond{NZ, Z, NC, CY}
	// aluOps maps the 3-bit operation field of the ALU blocks.
	aluOps = [8]Op{OpADD, OpADC, OpSUB, OpSBC, OpAND, OpXOR, OpOR, OpCP}
	// cbOps maps the operation field of the rotate and shift block.
	cbOps = [8]Op{OpRLC, OpRRC, OpRL, OpRR, OpSLA, OpSRA, OpSWAP, OpSRL}
	// accumulatorOps maps the 0x07-0x3F column.
	accumulatorOps = [8]Op{OpRLCA, OpRRCA, OpRLA, OpRRA, OpDAA, OpCPL, OpSCF, OpCCF}
)

// Decode decodes opcode, using imm1 and imm2 as the bytes that follow
// it in memory. 0xCB decodes through the extended table with imm1 as
// the second opcode byte. The 11 bytes that map to no instruction
// return a *DecodeError.
func Decode(opcode, imm1, imm2 uint8) (Instruction, error) {
	if opcode == 0xCB {
		return DecodeCB(imm1), nil
	}

	ins := Instruction{Opcode: opcode, Length: 1, Cycles: 1}
	x, y, z := opcode>>6, opcode>>3&7, opcode&7
	p, q := y>>1, y&1

	switch x {
	case 0:
		decodeBlock0(&ins, y, z, p, q)
	case 1:
		if opcode == 0x76 {
			ins.Op = OpHALT
			break
		}
		ins.Op, ins.Dst, ins.Src = OpLD, registers8[y], registers8[z]
		if ins.Dst == IndHL || ins.Src == IndHL {
			ins.Cycles = 2
		}
	case 2:
		ins.Op, ins.Dst, ins.Src = aluOps[y], A, registers8[z]
		if ins.Src == IndHL {
			ins.Cycles = 2
		}
	case 3:
		if !decodeBlock3(&ins, y, z, p, q) {
			return Instruction{}, &DecodeError{Opcode: opcode}
		}
	}

	// operands that take their value from the instruction stream
	for _, o := range [2]Operand{ins.Dst, ins.Src} {
		switch o {
		case D8, R8, SPR8, HighA8:
			ins.Imm8 = imm1
			ins.Length = 2
		case D16, IndA16:
			ins.Imm16 = uint16(imm2)<<8 | uint16(imm1)
			ins.Length = 3
		}
	}
	if ins.Op == OpSTOP {
		ins.Length = 2
	}

	return ins, nil
}

// decodeBlock0 decodes 0x00-0x3F.
func decodeBlock0(ins *Instruction, y, z, p, q uint8) {
	switch z {
	case 0:
		switch y {
		case 0:
			ins.Op = OpNOP
		case 1:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD16, IndA16, SP, 5
		case 2:
			ins.Op = OpSTOP
		case 3:
			ins.Op, ins.Src, ins.Cycles = OpJR, R8, 3
		default:
			ins.Op, ins.Cond, ins.Src, ins.Cycles = OpJR, conditions[y-4], R8, 2
		}
	case 1:
		if q == 0 {
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD16, registers16[p], D16, 3
		} else {
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpADDHL, HL, registers16[p], 2
		}
	case 2:
		indirect := [4]Operand{IndBC, IndDE, IndHLInc, IndHLDec}[p]
		if q == 0 {
			ins.Op, ins.Dst, ins.Src = OpLD, indirect, A
		} else {
			ins.Op, ins.Dst, ins.Src = OpLD, A, indirect
		}
		ins.Cycles = 2
	case 3:
		ins.Op, ins.Dst, ins.Cycles = OpINC16, registers16[p], 2
		if q == 1 {
			ins.Op = OpDEC16
		}
	case 4, 5:
		ins.Op, ins.Dst = OpINC, registers8[y]
		if z == 5 {
			ins.Op = OpDEC
		}
		if ins.Dst == IndHL {
			ins.Cycles = 3
		}
	case 6:
		ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, registers8[y], D8, 2
		if ins.Dst == IndHL {
			ins.Cycles = 3
		}
	case 7:
		ins.Op = accumulatorOps[y]
	}
}

// decodeBlock3 decodes 0xC0-0xFF, reporting false for the opcodes
// that map to no instruction.
func decodeBlock3(ins *Instruction, y, z, p, q uint8) bool {
	switch z {
	case 0:
		switch y {
		case 4:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, HighA8, A, 3
		case 5:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpADDSP, SP, R8, 4
		case 6:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, A, HighA8, 3
		case 7:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLDHLSP, HL, SPR8, 3
		default:
			ins.Op, ins.Cond, ins.Cycles = OpRET, conditions[y], 2
		}
	case 1:
		if q == 0 {
			ins.Op, ins.Dst, ins.Cycles = OpPOP, stack16[p], 3
			break
		}
		switch p {
		case 0:
			ins.Op, ins.Cycles = OpRET, 4
		case 1:
			ins.Op, ins.Cycles = OpRETI, 4
		case 2:
			ins.Op, ins.Src = OpJP, HL
		case 3:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD16, SP, HL, 2
		}
	case 2:
		switch y {
		case 4:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, HighC, A, 2
		case 5:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, IndA16, A, 4
		case 6:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, A, HighC, 2
		case 7:
			ins.Op, ins.Dst, ins.Src, ins.Cycles = OpLD, A, IndA16, 4
		default:
			ins.Op, ins.Cond, ins.Src, ins.Cycles = OpJP, conditions[y], D16, 3
		}
	case 3:
		switch y {
		case 0:
			ins.Op, ins.Src, ins.Cycles = OpJP, D16, 4
		case 6:
			ins.Op = OpDI
		case 7:
			ins.Op = OpEI
		default:
			return false
		}
	case 4:
		if y > 3 {
			return false
		}
		ins.Op, ins.Cond, ins.Src, ins.Cycles = OpCALL, conditions[y], D16, 3
	case 5:
		if q == 0 {
			ins.Op, ins.Src, ins.Cycles = OpPUSH, stack16[p], 4
			break
		}
		if p != 0 {
			return false
		}
		ins.Op, ins.Src, ins.Cycles = OpCALL, D16, 6
	case 6:
		ins.Op, ins.Dst, ins.Src, ins.Cycles = aluOps[y], A, D8, 2
	case 7:
		ins.Op, ins.Imm8, ins.Cycles = OpRST, y*8, 4
	}
	return true
}

// DecodeCB decodes the second byte of a 0xCB prefixed instruction.
// Every byte maps to an instruction.
func DecodeCB(opcode uint8) Instruction {
	ins := Instruction{Opcode: opcode, Prefixed: true, Length: 2, Cycles: 2}
	x, y, z := opcode>>6, opcode>>3&7, opcode&7
	ins.Dst = registers8[z]

	switch x {
	case 0:
		ins.Op = cbOps[y]
	case 1:
		ins.Op, ins.Bit = OpBIT, y
	case 2:
		ins.Op, ins.Bit = OpRES, y
	case 3:
		ins.Op, ins.Bit = OpSET, y
	}

	if ins.Dst == IndHL {
		ins.Cycles = 4
		if ins.Op == OpBIT {
			ins.Cycles = 3
		}
	}
	return ins
}
