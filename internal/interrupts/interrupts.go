// Package interrupts provides the DMG interrupt controller. It holds
// the IE and IF registers, resolves priority between simultaneously
// pending sources, and maps each source to its fixed vector.
package interrupts

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Source is one of the five interrupt sources of the DMG, in
// priority order. Lower sources preempt higher ones.
type Source uint8

const (
	// VBlank is requested every time the PPU enters vertical
	// blank (LY == 144).
	VBlank Source = iota
	// LCDStat is requested on the rising edge of the STAT
	// interrupt line, according to the sources selected in
	// types.STAT.
	LCDStat
	// Timer is requested one tick after types.TIMA overflows.
	Timer
	// Serial is requested when a serial transfer completes.
	Serial
	// Joypad is requested when a button is pressed.
	Joypad

	numSources = 5
)

// Flag returns the bit of Source in the IE and IF registers.
func (s Source) Flag() uint8 {
	return 1 << s
}

func (s Source) String() string {
	switch s {
	case VBlank:
		return "VBlank"
	case LCDStat:
		return "LCDStat"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return fmt.Sprintf("Source(%d)", uint8(s))
}

// Target is the part of the CPU that is affected when an
// interrupt is consumed.
type Target interface {
	// Wake takes the CPU out of the halted state.
	Wake()
	// DisableInterrupts clears the interrupt master enable.
	DisableInterrupts()
}

// Service is the interrupt controller.
//
// When an interrupt is requested, the corresponding bit in Flag is
// set. When the same bit is set in Enable and the CPU has IME set,
// the CPU consumes the interrupt, clearing the request, and jumps
// to the vector of the source.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)
}

// NewService returns a new Service with the state left behind by
// the boot ROM.
func NewService() *Service {
	return &Service{Flag: VBlank.Flag()}
}

// Request requests the interrupt for s. Requesting a source outside
// of the five defined sources is a programming error.
func (s *Service) Request(src Source) {
	if src >= numSources {
		panic(fmt.Sprintf("interrupts: request for invalid source %d", src))
	}
	s.Flag |= src.Flag()
}

// Pending reports whether any interrupt is both requested and
// enabled, regardless of IME.
func (s *Service) Pending() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Peek returns the highest priority pending interrupt without
// changing any state.
func (s *Service) Peek() (Source, bool) {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0, false
	}
	for src := VBlank; src < numSources; src++ {
		if pending&src.Flag() != 0 {
			return src, true
		}
	}
	return 0, false
}

// Consume returns the highest priority pending interrupt, clearing
// its request bit, waking the target and clearing its IME.
func (s *Service) Consume(t Target) (Source, bool) {
	src, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.Flag &^= src.Flag()
	t.Wake()
	t.DisableInterrupts()
	return src, true
}

// Vector returns the address the CPU jumps to when servicing src.
func Vector(src Source) uint16 {
	return 0x0040 + uint16(src)*8
}

// Read implements types.Register for types.IF and types.IE.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return s.Flag | 0xE0 // the upper 3 bits are always set
	case types.IE:
		return s.Enable
	}
	panic(fmt.Sprintf("interrupts: illegal read from address 0x%04X", address))
}

// Write implements types.Register for types.IF and types.IE.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value & 0x1F
	case types.IE:
		s.Enable = value
	default:
		panic(fmt.Sprintf("interrupts: illegal write to address 0x%04X", address))
	}
}
