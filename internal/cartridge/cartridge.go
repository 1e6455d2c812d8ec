// Package cartridge provides the flat ROM cartridge read by the bus,
// along with its parsed header.
package cartridge

import (
	"errors"
	"fmt"
)

// ErrTooSmall is returned for images too small to hold a header.
var ErrTooSmall = errors.New("cartridge: image too small to contain a header")

// Cartridge is a cartridge without a memory bank controller. The
// image is mapped directly at 0x0000-0x7FFF.
type Cartridge struct {
	rom    []byte
	header Header
}

// New returns a Cartridge for the given ROM image.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooSmall, len(rom))
	}
	return &Cartridge{
		rom:    rom,
		header: parseHeader(rom[headerStart:headerEnd]),
	}, nil
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the title stored in the header.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Read returns the byte of the image at address, or 0xFF past the
// end of the image.
func (c *Cartridge) Read(address uint16) uint8 {
	if int(address) >= len(c.rom) {
		return 0xFF
	}
	return c.rom[address]
}

// Write is ignored, as ROM is read only.
func (c *Cartridge) Write(address uint16, value uint8) {}
