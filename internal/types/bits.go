package types

const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

const (
	// TicksPerMCycle is the number of hardware ticks (T-cycles) in
	// a single machine cycle.
	TicksPerMCycle = 4
	// TicksPerScanline is the fixed length of a scanline, in ticks.
	TicksPerScanline = 456
	// ScanlinesPerFrame includes the 10 lines of vertical blank.
	ScanlinesPerFrame = 154
	// TicksPerFrame is the number of ticks in a complete frame.
	TicksPerFrame = TicksPerScanline * ScanlinesPerFrame
)

const (
	// ScreenWidth is the width of the visible screen, in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the visible screen, in pixels.
	ScreenHeight = 144
)

// Register is a single memory mapped hardware register, accessed
// through the bus by address.
type Register interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}
