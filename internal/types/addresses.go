package types

// HardwareAddress is the address of a memory mapped hardware
// register. On the DMG these live in the IO window 0xFF00-0xFF7F,
// with the single exception of IE at 0xFFFF.
type HardwareAddress = uint16

const (
	// P1 selects which half of the joypad matrix is visible, and
	// reports the state of the selected buttons in bits 0-3.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte to be shifted out of the serial port.
	SB HardwareAddress = 0xFF01
	// SC controls the serial port.
	//
	//  Bit 7: Transfer Start  (0=Idle, 1=Transfer requested)
	//  Bit 0: Shift Clock     (0=External, 1=Internal)
	SC HardwareAddress = 0xFF02
	// DIV exposes the upper 8 bits of the 16-bit system counter.
	// Any write resets the whole counter to 0.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented on the falling edge of the system counter
	// bit selected by TAC. On overflow it is reloaded from TMA one
	// tick later, at which point the timer interrupt is requested.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value TIMA is reloaded with after an overflow.
	TMA HardwareAddress = 0xFF06
	// TAC controls the timer.
	//
	//  Bit 2:   Timer Enable
	//  Bit 1-0: Input Clock Select
	//           00: CPU Clock / 1024 (bit 9)
	//           01: CPU Clock / 16   (bit 3)
	//           10: CPU Clock / 64   (bit 5)
	//           11: CPU Clock / 256  (bit 7)
	TAC HardwareAddress = 0xFF07
	// IF requests interrupts. A set bit is a pending request.
	//
	//  Bit 0: V-Blank  (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F
	// LCDC controls the LCD and which layers are drawn.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Select         (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Display Enable          (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Select             (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ Size                       (0=8x8, 1=8x16)
	//  Bit 1: OBJ Display Enable             (0=Off, 1=On)
	//  Bit 0: BG & Window Display            (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the mode of the LCD and selects the sources of
	// the LCD STAT interrupt.
	//
	//  Bit 6: LYC=LY Interrupt Source  (1=Enable)
	//  Bit 5: Mode 2 Interrupt Source  (1=Enable)
	//  Bit 4: Mode 1 Interrupt Source  (1=Enable)
	//  Bit 3: Mode 0 Interrupt Source  (1=Enable)
	//  Bit 2: LYC=LY Flag              (Read Only)
	//  Bit 1-0: Mode                   (Read Only)
	STAT HardwareAddress = 0xFF41
	// SCY is the vertical scroll of the background.
	SCY HardwareAddress = 0xFF42
	// SCX is the horizontal scroll of the background.
	SCX HardwareAddress = 0xFF43
	// LY is the scanline currently being drawn (0-153). Read only.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY to drive the coincidence flag.
	LYC HardwareAddress = 0xFF45
	// DMA starts an OAM DMA transfer from (value << 8).
	DMA HardwareAddress = 0xFF46
	// BGP is the background and window palette.
	BGP HardwareAddress = 0xFF47
	// OBP0 is the first object palette.
	OBP0 HardwareAddress = 0xFF48
	// OBP1 is the second object palette.
	OBP1 HardwareAddress = 0xFF49
	// WY is the Y position of the window.
	WY HardwareAddress = 0xFF4A
	// WX is the X position of the window, plus 7.
	WX HardwareAddress = 0xFF4B
	// IE enables interrupts, using the same layout as IF.
	IE HardwareAddress = 0xFFFF
)

// Memory regions of the DMG address space.
const (
	ROMStart      = 0x0000
	ROMEnd        = 0x7FFF
	VRAMStart     = 0x8000
	VRAMEnd       = 0x9FFF
	ExtRAMStart   = 0xA000
	ExtRAMEnd     = 0xBFFF
	WRAMStart     = 0xC000
	WRAMEnd       = 0xDFFF
	EchoStart     = 0xE000
	EchoEnd       = 0xFDFF
	OAMStart      = 0xFE00
	OAMEnd        = 0xFE9F
	UnusableStart = 0xFEA0
	UnusableEnd   = 0xFEFF
	IOStart       = 0xFF00
	IOEnd         = 0xFF7F
	HRAMStart     = 0xFF80
	HRAMEnd       = 0xFFFE
)
