package cpu

import (
	"errors"
	"testing"

	"github.com/thelolagemann/gbcore/internal/interrupts"
)

var cpu *CPU

// memory is a flat 64 KiB bus.
type memory [0x10000]uint8

func (m *memory) Read(address uint16) uint8         { return m[address] }
func (m *memory) Write(address uint16, value uint8) { m[address] = value }

// newTestCPU returns a CPU with program loaded at 0x0100, and the
// memory it executes against.
func newTestCPU(program ...uint8) (*CPU, *memory) {
	mem := &memory{}
	copy(mem[0x0100:], program)
	irq := interrupts.NewService()
	irq.Flag = 0
	return NewCPU(mem, irq, nil), mem
}

// testInstruction runs f against a freshly reset CPU and the decoded
// form of opcode, with imm1 and imm2 as its immediate bytes.
func testInstruction(t *testing.T, name string, opcode uint8, f func(*testing.T, Instruction), imm ...uint8) {
	imm = append(imm, 0, 0)
	cpu, _ = newTestCPU()
	ins, err := Decode(opcode, imm[0], imm[1])
	if err != nil {
		t.Fatalf("%s: %v", name, err)
	}
	t.Run(name, func(t *testing.T) {
		f(t, ins)
	})
}

func TestCPU_Reset(t *testing.T) {
	c, _ := newTestCPU()
	expected := map[string]uint16{
		"AF": 0x01B0, "BC": 0x0013, "DE": 0x00D8, "HL": 0x014D, "SP": 0xFFFE, "PC": 0x0100,
	}
	actual := map[string]uint16{
		"AF": c.AF.Uint16(), "BC": c.BC.Uint16(), "DE": c.DE.Uint16(), "HL": c.HL.Uint16(), "SP": c.SP, "PC": c.PC,
	}
	for name, want := range expected {
		if actual[name] != want {
			t.Errorf("expected %s to be 0x%04X, got 0x%04X", name, want, actual[name])
		}
	}

	c.PowerOn()
	if c.AF.Uint16() != 0 || c.PC != 0 || c.SP != 0 {
		t.Errorf("expected cleared registers, got %s", c)
	}
}

func TestCPU_Step(t *testing.T) {
	t.Run("NOP", func(t *testing.T) {
		c, _ := newTestCPU(0x00)
		f := c.F
		cycles, err := c.Step()
		if err != nil {
			t.Fatal(err)
		}
		if cycles != 1 || c.PC != 0x0101 || c.F != f {
			t.Errorf("expected 1 cycle, PC 0x0101 and unchanged flags, got %d, 0x%04X, %08b", cycles, c.PC, c.F)
		}
	})
	t.Run("LD A,5; INC A; HALT", func(t *testing.T) {
		c, _ := newTestCPU(0x3E, 0x05, 0x3C, 0x76)
		for i := 0; i < 3; i++ {
			if _, err := c.Step(); err != nil {
				t.Fatal(err)
			}
		}
		if c.A != 6 {
			t.Errorf("expected A to be 6, got %d", c.A)
		}
		if c.isFlagSet(FlagZero) {
			t.Errorf("expected zero flag to be clear")
		}
		if !c.Halted {
			t.Errorf("expected CPU to be halted")
		}
		cycles, _ := c.Step()
		if cycles != haltCycles || c.PC != 0x0104 {
			t.Errorf("expected halted step to take 1 cycle at 0x0104, got %d at 0x%04X", cycles, c.PC)
		}
	})
}

func TestCPU_DecodeError(t *testing.T) {
	c, _ := newTestCPU(0xD3)
	_, err := c.Step()

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected a *DecodeError, got %v", err)
	}
	if decodeErr.Opcode != 0xD3 || decodeErr.PC != 0x0100 {
		t.Errorf("unexpected error contents %+v", decodeErr)
	}
	if decodeErr.Registers == "" {
		t.Errorf("expected a register dump")
	}
}

func TestCPU_Interrupts(t *testing.T) {
	t.Run("EI is delayed by one instruction", func(t *testing.T) {
		// EI; NOP; NOP
		c, _ := newTestCPU(0xFB, 0x00, 0x00)
		c.irq.Enable = interrupts.Timer.Flag()
		c.irq.Request(interrupts.Timer)

		c.Step()
		if c.IME {
			t.Fatalf("expected IME to be clear directly after EI")
		}
		c.Step()
		if !c.IME || c.PC != 0x0102 {
			t.Fatalf("expected IME after the following instruction, PC 0x%04X", c.PC)
		}
		cycles, _ := c.Step()
		if cycles != interruptCycles || c.PC != 0x0050 {
			t.Errorf("expected dispatch to 0x0050 in 5 cycles, got 0x%04X in %d", c.PC, cycles)
		}
		if c.IME {
			t.Errorf("expected IME to be cleared by dispatch")
		}
		if c.irq.Flag&interrupts.Timer.Flag() != 0 {
			t.Errorf("expected request to be consumed")
		}
		if got := c.pop(); got != 0x0102 {
			t.Errorf("expected return address 0x0102, got 0x%04X", got)
		}
	})
	t.Run("DI cancels a pending EI", func(t *testing.T) {
		c, _ := newTestCPU(0xFB, 0xF3, 0x00)
		c.Step()
		c.Step()
		c.Step()
		if c.IME {
			t.Errorf("expected IME to remain clear")
		}
	})
	t.Run("priority", func(t *testing.T) {
		c, _ := newTestCPU(0x00)
		c.IME = true
		c.irq.Enable = 0x1F
		c.irq.Request(interrupts.Joypad)
		c.irq.Request(interrupts.LCDStat)
		c.Step()
		if c.PC != 0x0048 {
			t.Errorf("expected LCD STAT vector, got 0x%04X", c.PC)
		}
	})
	t.Run("HALT with IME wakes and services", func(t *testing.T) {
		c, _ := newTestCPU(0x76, 0x00)
		c.IME = true
		c.irq.Enable = interrupts.VBlank.Flag()
		c.Step()
		if !c.Halted {
			t.Fatalf("expected CPU to halt")
		}
		c.irq.Request(interrupts.VBlank)
		cycles, _ := c.Step()
		if c.Halted || c.PC != 0x0040 || cycles != interruptCycles {
			t.Errorf("expected wake and dispatch, halted=%t PC=0x%04X", c.Halted, c.PC)
		}
	})
	t.Run("HALT without IME wakes without servicing", func(t *testing.T) {
		c, _ := newTestCPU(0x76, 0x3C)
		c.irq.Enable = interrupts.Serial.Flag()
		c.Step()
		c.irq.Request(interrupts.Serial)
		c.Step()
		if c.Halted || c.PC != 0x0102 || c.A != 0x02 {
			t.Errorf("expected execution to resume, halted=%t PC=0x%04X", c.Halted, c.PC)
		}
		if c.irq.Flag&interrupts.Serial.Flag() == 0 {
			t.Errorf("expected request to remain set")
		}
	})
	t.Run("HALT with a pending interrupt does not halt", func(t *testing.T) {
		c, _ := newTestCPU(0x76)
		c.irq.Enable = interrupts.Timer.Flag()
		c.irq.Request(interrupts.Timer)
		c.Step()
		if c.Halted {
			t.Errorf("expected CPU not to halt")
		}
	})
	t.Run("RETI", func(t *testing.T) {
		c, _ := newTestCPU(0xD9)
		c.push(0x1234)
		c.Step()
		if !c.IME || c.PC != 0x1234 {
			t.Errorf("expected IME and PC 0x1234, got %t 0x%04X", c.IME, c.PC)
		}
	})
}
