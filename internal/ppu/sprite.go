package ppu

import "github.com/thelolagemann/gbcore/internal/types"

// Attributes holds the flags byte of an OAM entry.
//
//	Bit 7 - OBJ-to-BG Priority (0=OBJ Above BG, 1=OBJ Behind BG colour 1-3)
//	Bit 6 - Y flip             (0=Normal, 1=Vertically mirrored)
//	Bit 5 - X flip             (0=Normal, 1=Horizontally mirrored)
//	Bit 4 - Palette number     (0=OBP0, 1=OBP1)
type Attributes uint8

const (
	AttrPriority Attributes = types.Bit7
	AttrFlipY    Attributes = types.Bit6
	AttrFlipX    Attributes = types.Bit5
	AttrPalette  Attributes = types.Bit4
)

// BehindBackground reports whether the sprite is hidden behind
// background colours 1-3.
func (a Attributes) BehindBackground() bool { return a&AttrPriority != 0 }

// FlipY reports whether the sprite is vertically mirrored.
func (a Attributes) FlipY() bool { return a&AttrFlipY != 0 }

// FlipX reports whether the sprite is horizontally mirrored.
func (a Attributes) FlipX() bool { return a&AttrFlipX != 0 }

// SecondPalette reports whether the sprite uses OBP1.
func (a Attributes) SecondPalette() bool { return a&AttrPalette != 0 }

// Sprite is a single entry of OAM, selected for the current line.
type Sprite struct {
	Y    uint8 // screen y + 16
	X    uint8 // screen x + 8
	Tile uint8
	Attributes

	// Index is the position of the entry in OAM (0-39).
	Index uint8
}

// spriteFromOAM decodes entry i of oam.
func spriteFromOAM(oam []uint8, i uint8) Sprite {
	b := oam[int(i)*4 : int(i)*4+4]
	return Sprite{
		Y:          b[0],
		X:          b[1],
		Tile:       b[2],
		Attributes: Attributes(b[3]),
		Index:      i,
	}
}

// onLine reports whether the sprite covers scanline ly for the given
// sprite height.
func (s Sprite) onLine(ly, height uint8) bool {
	y := int(ly) + 16
	return y >= int(s.Y) && y < int(s.Y)+int(height)
}

// spritePixel is a decoded sprite pixel staged for a screen column.
type spritePixel struct {
	colour uint8 // 1-3, transparent pixels are never staged
	Attributes
}

// maxSpritesPerPixel is the number of sprite pixels considered when
// compositing a single column.
const maxSpritesPerPixel = 3

// spriteColumn holds the sprite pixels staged for one screen column,
// in fetch order.
type spriteColumn struct {
	pixels [maxSpritesPerPixel]spritePixel
	count  uint8
}

func (c *spriteColumn) add(px spritePixel) {
	if c.count < maxSpritesPerPixel {
		c.pixels[c.count] = px
		c.count++
	}
}
