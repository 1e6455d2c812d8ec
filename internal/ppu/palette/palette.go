// Package palette maps the four DMG shades to display colours.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Palette represents a palette. A palette is an array of 4 RGB values,
// indexed by shade, from lightest (0) to darkest (3).
type Palette struct {
	Colors [4][3]uint8
}

// Palettes holds the built-in display palettes by name.
var Palettes = map[string]Palette{
	"greyscale": {
		Colors: [4][3]uint8{
			{0xFF, 0xFF, 0xFF},
			{0xAA, 0xAA, 0xAA},
			{0x55, 0x55, 0x55},
			{0x00, 0x00, 0x00},
		},
	},
	// green attempts to emulate the colours of the original
	// DMG screen.
	"green": {
		Colors: [4][3]uint8{
			{0x9B, 0xBC, 0x0F},
			{0x8B, 0xAC, 0x0F},
			{0x30, 0x62, 0x30},
			{0x0F, 0x38, 0x0F},
		},
	},
	"pocket": {
		Colors: [4][3]uint8{
			{0xC4, 0xCF, 0xA1},
			{0x8B, 0x95, 0x6D},
			{0x4D, 0x53, 0x3C},
			{0x1F, 0x1F, 0x1F},
		},
	},
}

// Default is the palette used when none is configured.
var Default = Palettes["greyscale"]

// ByName returns the built-in palette with the given name.
func ByName(name string) (Palette, error) {
	p, ok := Palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("palette: unknown palette %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the sorted names of the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RGBA returns the display colour of shade.
func (p Palette) RGBA(shade uint8) color.RGBA {
	c := p.Colors[shade&3]
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xFF}
}

// Shade maps a 2-bit colour number through a DMG palette register
// (BGP, OBP0 or OBP1), returning the shade it is drawn with.
//
//	Bit 7-6 - Shade for colour 3
//	Bit 5-4 - Shade for colour 2
//	Bit 3-2 - Shade for colour 1
//	Bit 1-0 - Shade for colour 0
func Shade(register, colour uint8) uint8 {
	return register >> ((colour & 3) * 2) & 3
}
