package lcd

// Mode represents a mode of the LCD, as reported in bits 0-1 of
// the status register.
type Mode uint8

const (
	// HBlank is the horizontal blanking mode. The CPU can access both the display RAM and OAM.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode. The CPU can access both the display RAM and OAM.
	VBlank
	// OAM is the OAM scan mode, during which the sprites for the line are selected.
	OAM
	// VRAM is the pixel transfer mode.
	VRAM
)

func (m Mode) String() string {
	switch m {
	case HBlank:
		return "HBlank"
	case VBlank:
		return "VBlank"
	case OAM:
		return "OAM"
	case VRAM:
		return "VRAM"
	}
	return "Unknown"
}
