// Package lcd provides the bit-field views of the LCD control
// and status registers.
package lcd

import "github.com/thelolagemann/gbcore/internal/types"

// Control is the value of the LCD control register (types.LCDC).
//
//	Bit 7 - LCD Enable                     (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display              (0=Off, 1=On)
type Control uint8

const (
	ControlEnable       Control = types.Bit7
	ControlWindowMap    Control = types.Bit6
	ControlWindowEnable Control = types.Bit5
	ControlTileData     Control = types.Bit4
	ControlBGMap        Control = types.Bit3
	ControlObjSize      Control = types.Bit2
	ControlObjEnable    Control = types.Bit1
	ControlBGEnable     Control = types.Bit0
)

// Has reports whether all bits of mask are set.
func (c Control) Has(mask Control) bool {
	return c&mask == mask
}

// Enabled reports whether the LCD and PPU are on.
func (c Control) Enabled() bool {
	return c.Has(ControlEnable)
}

// WindowEnabled reports whether the window layer is drawn.
func (c Control) WindowEnabled() bool {
	return c.Has(ControlWindowEnable)
}

// BackgroundEnabled reports whether the background and window layers
// are drawn. When clear, both layers are drawn as colour 0.
func (c Control) BackgroundEnabled() bool {
	return c.Has(ControlBGEnable)
}

// SpritesEnabled reports whether objects are drawn.
func (c Control) SpritesEnabled() bool {
	return c.Has(ControlObjEnable)
}

// SpriteHeight returns the height of every object, 8 or 16.
func (c Control) SpriteHeight() uint8 {
	if c.Has(ControlObjSize) {
		return 16
	}
	return 8
}

// BackgroundTileMap returns the base address of the background tile map.
func (c Control) BackgroundTileMap() uint16 {
	if c.Has(ControlBGMap) {
		return 0x9C00
	}
	return 0x9800
}

// WindowTileMap returns the base address of the window tile map.
func (c Control) WindowTileMap() uint16 {
	if c.Has(ControlWindowMap) {
		return 0x9C00
	}
	return 0x9800
}

// TileDataAddress returns the address of the first byte of the tile
// with the given index, taking the addressing mode into account. In
// the 0x8800 mode tile indices are signed offsets from 0x9000.
func (c Control) TileDataAddress(tile uint8) uint16 {
	if c.Has(ControlTileData) {
		return 0x8000 + uint16(tile)*16
	}
	return uint16(0x9000 + int(int8(tile))*16)
}
