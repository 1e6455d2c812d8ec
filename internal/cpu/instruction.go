package cpu

import (
	"fmt"
	"strings"
)

// Op is the operation performed by an Instruction.
type Op uint8

const (
	OpNOP Op = iota
	OpLD
	OpLD16
	OpLDHLSP
	OpPUSH
	OpPOP
	OpADD
	OpADC
	OpSUB
	OpSBC
	OpAND
	OpXOR
	OpOR
	OpCP
	OpINC
	OpDEC
	OpINC16
	OpDEC16
	OpADDHL
	OpADDSP
	OpDAA
	OpCPL
	OpSCF
	OpCCF
	OpRLCA
	OpRRCA
	OpRLA
	OpRRA
	OpRLC
	OpRRC
	OpRL
	OpRR
	OpSLA
	OpSRA
	OpSWAP
	OpSRL
	OpBIT
	OpRES
	OpSET
	OpJP
	OpJR
	OpCALL
	OpRET
	OpRETI
	OpRST
	OpHALT
	OpSTOP
	OpDI
	OpEI
)

var opNames = [...]string{
	OpNOP: "NOP", OpLD: "LD", OpLD16: "LD", OpLDHLSP: "LD", OpPUSH: "PUSH",
	OpPOP: "POP", OpADD: "ADD", OpADC: "ADC", OpSUB: "SUB", OpSBC: "SBC",
	OpAND: "AND", OpXOR: "XOR", OpOR: "OR", OpCP: "CP", OpINC: "INC",
	OpDEC: "DEC", OpINC16: "INC", OpDEC16: "DEC", OpADDHL: "ADD", OpADDSP: "ADD",
	OpDAA: "DAA", OpCPL: "CPL", OpSCF: "SCF", OpCCF: "CCF", OpRLCA: "RLCA",
	OpRRCA: "RRCA", OpRLA: "RLA", OpRRA: "RRA", OpRLC: "RLC", OpRRC: "RRC",
	OpRL: "RL", OpRR: "RR", OpSLA: "SLA", OpSRA: "SRA", OpSWAP: "SWAP",
	OpSRL: "SRL", OpBIT: "BIT", OpRES: "RES", OpSET: "SET", OpJP: "JP",
	OpJR: "JR", OpCALL: "CALL", OpRET: "RET", OpRETI: "RETI", OpRST: "RST",
	OpHALT: "HALT", OpSTOP: "STOP", OpDI: "DI", OpEI: "EI",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Operand is the source or destination of an Instruction.
type Operand uint8

const (
	None Operand = iota

	// 8-bit registers
	A
	B
	C
	D
	E
	H
	L

	// 16-bit registers
	AF
	BC
	DE
	HL
	SP

	// memory addressed by a register
	IndBC
	IndDE
	IndHL
	IndHLInc
	IndHLDec

	IndA16 // memory at the 16-bit immediate
	HighA8 // memory at 0xFF00 + the 8-bit immediate
	HighC  // memory at 0xFF00 + C

	D8  // 8-bit immediate
	D16 // 16-bit immediate
	R8  // signed 8-bit immediate
	SPR8
)

var operandNames = [...]string{
	None: "", A: "A", B: "B", C: "C", D: "D", E: "E", H: "H", L: "L",
	AF: "AF", BC: "BC", DE: "DE", HL: "HL", SP: "SP",
	IndBC: "(BC)", IndDE: "(DE)", IndHL: "(HL)", IndHLInc: "(HL+)", IndHLDec: "(HL-)",
	IndA16: "(a16)", HighA8: "(FF00+a8)", HighC: "(FF00+C)",
	D8: "d8", D16: "d16", R8: "e", SPR8: "SP+e",
}

func (o Operand) String() string {
	if int(o) < len(operandNames) {
		return operandNames[o]
	}
	return fmt.Sprintf("Operand(%d)", uint8(o))
}

// memory reports whether the operand refers to a memory location.
func (o Operand) memory() bool {
	return o >= IndBC && o <= HighC
}

// Cond is the flag condition of a conditional jump, call or return.
type Cond uint8

const (
	Always Cond = iota
	NZ
	Z
	NC
	CY
)

func (c Cond) String() string {
	switch c {
	case NZ:
		return "NZ"
	case Z:
		return "Z"
	case NC:
		return "NC"
	case CY:
		return "C"
	}
	return ""
}

// Instruction is a decoded instruction. Cycles holds the number of
// machine cycles the instruction takes when its condition is not
// met; taken branches add takenCycles on execution.
type Instruction struct {
	Op     Op
	Dst    Operand
	Src    Operand
	Cond   Cond
	Bit    uint8
	Imm8   uint8
	Imm16  uint16
	Length uint8
	Cycles uint8

	Opcode   uint8
	Prefixed bool
}

// takenCycles returns the additional machine cycles spent when the
// condition of a branch is met. Unconditional branches are decoded
// with their full cost.
func (i Instruction) takenCycles() uint8 {
	if i.Cond == Always {
		return 0
	}
	switch i.Op {
	case OpJP, OpJR:
		return 1
	case OpCALL, OpRET:
		return 3
	}
	return 0
}

func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(i.Op.String())

	var args []string
	switch i.Op {
	case OpBIT, OpRES, OpSET:
		args = append(args, fmt.Sprintf("%d", i.Bit))
	case OpRST:
		args = append(args, fmt.Sprintf("$%02X", i.Imm8))
	}
	if i.Cond != Always {
		args = append(args, i.Cond.String())
	}
	for _, o := range []Operand{i.Dst, i.Src} {
		if o != None {
			args = append(args, i.formatOperand(o))
		}
	}
	if len(args) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(args, ", "))
	}
	return b.String()
}

func (i Instruction) formatOperand(o Operand) string {
	switch o {
	case D8:
		return fmt.Sprintf("$%02X", i.Imm8)
	case R8:
		return fmt.Sprintf("%+d", int8(i.Imm8))
	case SPR8:
		return fmt.Sprintf("SP%+d", int8(i.Imm8))
	case D16:
		return fmt.Sprintf("$%04X", i.Imm16)
	case IndA16:
		return fmt.Sprintf("($%04X)", i.Imm16)
	case HighA8:
		return fmt.Sprintf("($FF%02X)", i.Imm8)
	}
	return o.String()
}
