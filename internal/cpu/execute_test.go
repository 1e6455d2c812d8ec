package cpu

import (
	"testing"
)

func TestExecute_Loads(t *testing.T) {
	// 0x02 - LD (BC), A
	testInstruction(t, "LD (BC), A", 0x02, func(t *testing.T, ins Instruction) {
		cpu.A = 0x42
		cpu.BC.SetUint16(0xC234)
		cpu.Execute(ins)
		if got := cpu.bus.Read(0xC234); got != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", got)
		}
	})
	// 0x22 - LD (HL+), A
	testInstruction(t, "LD (HL+), A", 0x22, func(t *testing.T, ins Instruction) {
		cpu.A = 0x42
		cpu.HL.SetUint16(0xC234)
		cpu.Execute(ins)
		if got := cpu.bus.Read(0xC234); got != 0x42 {
			t.Errorf("expected 0x42 at 0xC234, got 0x%02X", got)
		}
		if cpu.HL.Uint16() != 0xC235 {
			t.Errorf("expected HL to be 0xC235, got 0x%04X", cpu.HL.Uint16())
		}
	})
	// 0x3A - LD A, (HL-)
	testInstruction(t, "LD A, (HL-)", 0x3A, func(t *testing.T, ins Instruction) {
		cpu.HL.SetUint16(0xC234)
		cpu.bus.Write(0xC234, 0x99)
		cpu.Execute(ins)
		if cpu.A != 0x99 || cpu.HL.Uint16() != 0xC233 {
			t.Errorf("expected A 0x99 and HL 0xC233, got 0x%02X 0x%04X", cpu.A, cpu.HL.Uint16())
		}
	})
	// 0x08 - LD (a16), SP
	testInstruction(t, "LD (a16), SP", 0x08, func(t *testing.T, ins Instruction) {
		cpu.SP = 0xBEEF
		cpu.Execute(ins)
		if cpu.bus.Read(0xC000) != 0xEF || cpu.bus.Read(0xC001) != 0xBE {
			t.Errorf("expected SP stored little endian")
		}
	}, 0x00, 0xC0)
	// 0xE2 - LD (C), A
	testInstruction(t, "LD (C), A", 0xE2, func(t *testing.T, ins Instruction) {
		cpu.A, cpu.C = 0x77, 0x80
		cpu.Execute(ins)
		if got := cpu.bus.Read(0xFF80); got != 0x77 {
			t.Errorf("expected 0x77 at 0xFF80, got 0x%02X", got)
		}
	})
	// 0xF0 - LDH A, (a8)
	testInstruction(t, "LDH A, (a8)", 0xF0, func(t *testing.T, ins Instruction) {
		cpu.bus.Write(0xFF90, 0x55)
		cpu.Execute(ins)
		if cpu.A != 0x55 {
			t.Errorf("expected 0x55, got 0x%02X", cpu.A)
		}
	}, 0x90)
	// 0xF8 - LD HL, SP+e
	testInstruction(t, "LD HL, SP+e", 0xF8, func(t *testing.T, ins Instruction) {
		cpu.SP = 0xFFF8
		cpu.Execute(ins)
		if cpu.HL.Uint16() != 0xFFFA || cpu.SP != 0xFFF8 {
			t.Errorf("expected HL 0xFFFA, got 0x%04X", cpu.HL.Uint16())
		}
	}, 0x02)
	// 0x36 - LD (HL), d8
	testInstruction(t, "LD (HL), d8", 0x36, func(t *testing.T, ins Instruction) {
		cpu.HL.SetUint16(0xD000)
		f := cpu.F
		cpu.Execute(ins)
		if cpu.bus.Read(0xD000) != 0xAB || cpu.F != f {
			t.Errorf("expected 0xAB at 0xD000 and no flags")
		}
	}, 0xAB)
}

func TestExecute_Stack(t *testing.T) {
	for _, tt := range []struct {
		name string
		push uint8
		pop  uint8
		pair func() *RegisterPair
	}{
		{"BC", 0xC5, 0xC1, func() *RegisterPair { return cpu.BC }},
		{"DE", 0xD5, 0xD1, func() *RegisterPair { return cpu.DE }},
		{"HL", 0xE5, 0xE1, func() *RegisterPair { return cpu.HL }},
	} {
		testInstruction(t, "PUSH/POP "+tt.name, tt.push, func(t *testing.T, push Instruction) {
			pop, _ := Decode(tt.pop, 0, 0)
			tt.pair().SetUint16(0x1234)
			cpu.SP = 0xFFFE
			cpu.Execute(push)
			if cpu.SP != 0xFFFC || cpu.bus.Read(0xFFFD) != 0x12 || cpu.bus.Read(0xFFFC) != 0x34 {
				t.Fatalf("unexpected stack layout, SP 0x%04X", cpu.SP)
			}
			tt.pair().SetUint16(0)
			cpu.Execute(pop)
			if tt.pair().Uint16() != 0x1234 || cpu.SP != 0xFFFE {
				t.Errorf("expected 0x1234 and SP 0xFFFE, got 0x%04X 0x%04X", tt.pair().Uint16(), cpu.SP)
			}
		})
	}

	testInstruction(t, "POP AF masks F", 0xF1, func(t *testing.T, ins Instruction) {
		cpu.push(0x12FF)
		cpu.Execute(ins)
		if cpu.A != 0x12 || cpu.F != 0xF0 {
			t.Errorf("expected AF 0x12F0, got 0x%04X", cpu.AF.Uint16())
		}
	})
}

func TestExecute_Branches(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flags  uint8 // F register for the untaken case
		taken  uint8
		skip   uint8
		target uint16
	}{
		{"JP NZ", 0xC2, 1 << FlagZero, 4, 3, 0x2000},
		{"JP Z", 0xCA, 0, 4, 3, 0x2000},
		{"JP NC", 0xD2, 1 << FlagCarry, 4, 3, 0x2000},
		{"JP C", 0xDA, 0, 4, 3, 0x2000},
		{"JR NZ", 0x20, 1 << FlagZero, 3, 2, 0x0102},
		{"JR Z", 0x28, 0, 3, 2, 0x0102},
		{"JR NC", 0x30, 1 << FlagCarry, 3, 2, 0x0102},
		{"JR C", 0x38, 0, 3, 2, 0x0102},
		{"CALL NZ", 0xC4, 1 << FlagZero, 6, 3, 0x2000},
		{"CALL Z", 0xCC, 0, 6, 3, 0x2000},
		{"CALL NC", 0xD4, 1 << FlagCarry, 6, 3, 0x2000},
		{"CALL C", 0xDC, 0, 6, 3, 0x2000},
		{"RET NZ", 0xC0, 1 << FlagZero, 5, 2, 0x3000},
		{"RET Z", 0xC8, 0, 5, 2, 0x3000},
		{"RET NC", 0xD0, 1 << FlagCarry, 5, 2, 0x3000},
		{"RET C", 0xD8, 0, 5, 2, 0x3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, taken := range []bool{false, true} {
				c, _ := newTestCPU()
				c.SP = 0xFFFE
				c.push(0x3000)
				ins, _ := Decode(tt.opcode, 0x00, 0x20)
				c.F = tt.flags
				if taken {
					c.F ^= 1<<FlagZero | 1<<FlagCarry
				}
				c.PC = 0x0100

				cycles := c.Execute(ins)
				if !taken {
					if cycles != tt.skip || c.PC != 0x0100+uint16(ins.Length) {
						t.Errorf("not taken: expected %d cycles, got %d, PC 0x%04X", tt.skip, cycles, c.PC)
					}
					continue
				}
				if cycles != tt.taken || c.PC != tt.target {
					t.Errorf("taken: expected %d cycles and PC 0x%04X, got %d and 0x%04X", tt.taken, tt.target, cycles, c.PC)
				}
			}
		})
	}
}

func TestExecute_UnconditionalCycles(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		cycles uint8
		target uint16
	}{
		{"JP a16", 0xC3, 4, 0x2000},
		{"JP HL", 0xE9, 1, 0x4000},
		{"JR e", 0x18, 3, 0x0102},
		{"CALL a16", 0xCD, 6, 0x2000},
		{"RET", 0xC9, 4, 0x3000},
		{"RETI", 0xD9, 4, 0x3000},
		{"RST 38H", 0xFF, 4, 0x0038},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU()
			c.SP = 0xFFFE
			c.push(0x3000)
			c.HL.SetUint16(0x4000)
			c.PC = 0x0100
			ins, err := Decode(tt.opcode, 0x00, 0x20)
			if err != nil {
				t.Fatal(err)
			}
			if ins.Cycles != tt.cycles {
				t.Errorf("expected %d decoded cycles, got %d", tt.cycles, ins.Cycles)
			}
			if cycles := c.Execute(ins); cycles != tt.cycles || c.PC != tt.target {
				t.Errorf("expected PC 0x%04X in %d cycles, got 0x%04X in %d", tt.target, tt.cycles, c.PC, cycles)
			}
		})
	}
}

func TestExecute_Jumps(t *testing.T) {
	// 0x18 - JR e, negative offsets jump backwards
	testInstruction(t, "JR e", 0x18, func(t *testing.T, ins Instruction) {
		cpu.PC = 0x0500
		cpu.Execute(ins)
		if cpu.PC != 0x0500 {
			t.Errorf("expected JR -2 to loop, got 0x%04X", cpu.PC)
		}
	}, 0xFE)
	// 0xCD - CALL a16
	testInstruction(t, "CALL a16", 0xCD, func(t *testing.T, ins Instruction) {
		cpu.PC, cpu.SP = 0x1234, 0xFFFE
		if cycles := cpu.Execute(ins); cycles != 6 {
			t.Errorf("expected 6 cycles, got %d", cycles)
		}
		if cpu.PC != 0x4242 || cpu.SP != 0xFFFC {
			t.Errorf("expected PC 0x4242 and SP 0xFFFC, got 0x%04X 0x%04X", cpu.PC, cpu.SP)
		}
		if cpu.bus.Read(0xFFFD) != 0x12 || cpu.bus.Read(0xFFFC) != 0x37 {
			t.Errorf("expected return address 0x1237 on the stack")
		}
	}, 0x42, 0x42)
	// 0xE9 - JP HL
	testInstruction(t, "JP HL", 0xE9, func(t *testing.T, ins Instruction) {
		cpu.HL.SetUint16(0x4000)
		if cycles := cpu.Execute(ins); cycles != 1 || cpu.PC != 0x4000 {
			t.Errorf("expected PC 0x4000 in 1 cycle, got 0x%04X in %d", cpu.PC, cycles)
		}
	})
	// 0xEF - RST 28H
	testInstruction(t, "RST 28H", 0xEF, func(t *testing.T, ins Instruction) {
		cpu.PC = 0x0200
		cpu.Execute(ins)
		if cpu.PC != 0x0028 || cpu.pop() != 0x0201 {
			t.Errorf("expected PC 0x0028 and return address 0x0201")
		}
	})
}

func TestExecute_Misc(t *testing.T) {
	testInstruction(t, "CPL", 0x2F, func(t *testing.T, ins Instruction) {
		cpu.A = 0x35
		cpu.setFlags(false, false, false, false)
		cpu.Execute(ins)
		if cpu.A != 0xCA || !cpu.isFlagSet(FlagSubtract) || !cpu.isFlagSet(FlagHalfCarry) {
			t.Errorf("unexpected result 0x%02X flags %08b", cpu.A, cpu.F)
		}
	})
	testInstruction(t, "SCF", 0x37, func(t *testing.T, ins Instruction) {
		cpu.setFlags(true, true, true, false)
		cpu.Execute(ins)
		if cpu.F != 1<<FlagZero|1<<FlagCarry {
			t.Errorf("unexpected flags %08b", cpu.F)
		}
	})
	testInstruction(t, "CCF", 0x3F, func(t *testing.T, ins Instruction) {
		cpu.setFlags(false, true, true, true)
		cpu.Execute(ins)
		if cpu.F != 0 {
			t.Errorf("unexpected flags %08b", cpu.F)
		}
	})
	testInstruction(t, "STOP", 0x10, func(t *testing.T, ins Instruction) {
		cpu.PC = 0x0100
		if cycles := cpu.Execute(ins); cycles != 1 || cpu.PC != 0x0102 {
			t.Errorf("expected 2 byte NOP, got PC 0x%04X", cpu.PC)
		}
	})
	testInstruction(t, "INC BC", 0x03, func(t *testing.T, ins Instruction) {
		cpu.BC.SetUint16(0xFFFF)
		f := cpu.F
		cpu.Execute(ins)
		if cpu.BC.Uint16() != 0 || cpu.F != f {
			t.Errorf("expected wrap without flags")
		}
	})
	testInstruction(t, "ADD SP, e", 0xE8, func(t *testing.T, ins Instruction) {
		cpu.SP = 0xFFFE
		cpu.Execute(ins)
		if cpu.SP != 0xFFFC {
			t.Errorf("expected SP 0xFFFC, got 0x%04X", cpu.SP)
		}
	}, 0xFE)
	testInstruction(t, "SET 3, (HL)", 0xCB, func(t *testing.T, ins Instruction) {
		cpu.HL.SetUint16(0xC000)
		cpu.bus.Write(0xC000, 0x01)
		cpu.Execute(ins)
		if cpu.bus.Read(0xC000) != 0x09 {
			t.Errorf("expected 0x09, got 0x%02X", cpu.bus.Read(0xC000))
		}
	}, 0xDE)
	testInstruction(t, "RES 0, B", 0xCB, func(t *testing.T, ins Instruction) {
		cpu.B = 0xFF
		cpu.Execute(ins)
		if cpu.B != 0xFE {
			t.Errorf("expected 0xFE, got 0x%02X", cpu.B)
		}
	}, 0x80)
}
