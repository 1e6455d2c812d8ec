package lcd

import "github.com/thelolagemann/gbcore/internal/types"

// Status is the value of the LCD status register (types.STAT).
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag                             (Read Only)
type Status uint8

const (
	StatusLYCInterrupt    Status = types.Bit6
	StatusOAMInterrupt    Status = types.Bit5
	StatusVBlankInterrupt Status = types.Bit4
	StatusHBlankInterrupt Status = types.Bit3
	StatusCoincidence     Status = types.Bit2

	statusMode     Status = types.Bit1 | types.Bit0
	statusWritable        = StatusLYCInterrupt | StatusOAMInterrupt | StatusVBlankInterrupt | StatusHBlankInterrupt
)

// Has reports whether all bits of mask are set.
func (s Status) Has(mask Status) bool {
	return s&mask == mask
}

// Mode returns the current mode.
func (s Status) Mode() Mode {
	return Mode(s & statusMode)
}

// SetMode sets the mode bits.
func (s *Status) SetMode(m Mode) {
	*s = *s&^statusMode | Status(m)&statusMode
}

// SetCoincidence sets or clears the LYC=LY flag.
func (s *Status) SetCoincidence(equal bool) {
	if equal {
		*s |= StatusCoincidence
	} else {
		*s &^= StatusCoincidence
	}
}

// Write updates the interrupt source bits from a CPU write, leaving
// the read only bits untouched.
func (s *Status) Write(value uint8) {
	*s = *s&^statusWritable | Status(value)&statusWritable
}

// Read returns the register as seen by the CPU. Bit 7 always reads 1.
func (s Status) Read() uint8 {
	return uint8(s) | types.Bit7
}

// Line returns the level of the STAT interrupt line. The interrupt is
// requested on its rising edge only.
func (s Status) Line() bool {
	if s.Has(StatusLYCInterrupt | StatusCoincidence) {
		return true
	}
	switch s.Mode() {
	case HBlank:
		return s.Has(StatusHBlankInterrupt)
	case VBlank:
		return s.Has(StatusVBlankInterrupt)
	case OAM:
		return s.Has(StatusOAMInterrupt)
	}
	return false
}
