// Package boot provides the optional DMG boot ROM overlay. While the
// overlay is mapped, reads from 0x0000-0x00FF are served by the boot
// ROM instead of the cartridge, until the program writes a non-zero
// value to 0xFF50.
package boot

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Size is the size of a DMG boot ROM.
const Size = 0x100

// ROM is a DMG boot ROM image.
type ROM struct {
	raw      [Size]byte
	checksum string
}

// Load returns a ROM for b, which must be exactly Size bytes long.
func Load(b []byte) (*ROM, error) {
	if len(b) != Size {
		return nil, fmt.Errorf("boot: invalid boot rom length %d, expected %d", len(b), Size)
	}
	sum := md5.Sum(b)
	r := &ROM{checksum: hex.EncodeToString(sum[:])}
	copy(r.raw[:], b)
	return r, nil
}

// Read returns the byte at address, which must be below Size.
func (r *ROM) Read(address uint16) uint8 {
	return r.raw[address]
}

// Checksum returns the MD5 checksum of the image.
func (r *ROM) Checksum() string {
	if r == nil {
		return ""
	}
	return r.checksum
}

// Model returns the hardware the image was dumped from, if known.
func (r *ROM) Model() string {
	if r == nil {
		return "none"
	}
	if model, ok := knownChecksums[r.checksum]; ok {
		return model
	}
	return "unknown"
}

var knownChecksums = map[string]string{
	DMG0: "Game Boy (DMG-0)",
	DMG:  "Game Boy (DMG-01)",
	MGB:  "Game Boy Pocket",
}

const (
	// DMG0 is the checksum of the early DMG boot ROM, only found in
	// Japanese units.
	DMG0 = "a8f84a0ac44da5d3f0ee19f9cea80a8c"
	// DMG is the checksum of the DMG-01 boot ROM.
	DMG = "32fbbd84168d3482956eb3c5051637f5"
	// MGB is the checksum of the Game Boy Pocket boot ROM, which
	// loads 0xFF into A rather than 0x01.
	MGB = "71a378e71ff30b2d8a1f02bf5c7896aa"
)
