package cartridge

import (
	"fmt"
	"strings"
)

// Type is the cartridge type code stored at 0x0147.
type Type uint8

const (
	ROM        Type = 0x00
	MBC1       Type = 0x01
	MBC1RAM    Type = 0x02
	MBC1BATT   Type = 0x03
	MBC2       Type = 0x05
	MBC2BATT   Type = 0x06
	ROMRAM     Type = 0x08
	ROMRAMBATT Type = 0x09
	MBC3       Type = 0x11
	MBC5       Type = 0x19
)

func (t Type) String() string {
	switch t {
	case ROM:
		return "ROM ONLY"
	case MBC1:
		return "MBC1"
	case MBC1RAM:
		return "MBC1+RAM"
	case MBC1BATT:
		return "MBC1+RAM+BATTERY"
	case MBC2:
		return "MBC2"
	case MBC2BATT:
		return "MBC2+BATTERY"
	case ROMRAM:
		return "ROM+RAM"
	case ROMRAMBATT:
		return "ROM+RAM+BATTERY"
	case MBC3:
		return "MBC3"
	case MBC5:
		return "MBC5"
	}
	return fmt.Sprintf("Type(0x%02X)", uint8(t))
}

// Flat reports whether the cartridge type can be run without a
// memory bank controller.
func (t Type) Flat() bool {
	return t == ROM || t == ROMRAM || t == ROMRAMBATT
}

var ramSizes = map[uint8]uint{
	0x00: 0,
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

const (
	headerStart = 0x0100
	headerEnd   = 0x0150
)

// Header represents the header of a cartridge, located at the address
// space 0x0100-0x014F. The header contains information about the
// cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game, padded with zeroes.
	Title string
	// 0x0143 - CGB flag, 0x80 or 0xC0 on colour games.
	CGBFlag uint8
	// 0x0144-0x0145 - NewLicenseeCode, used when OldLicenseeCode is 0x33.
	NewLicenseeCode string
	// 0x0146 - SGB flag, 0x03 on games supporting the Super Game Boy.
	SGBFlag bool
	// 0x0147 - Type of the cartridge.
	CartridgeType Type
	// 0x0148 - ROM size, 32 KiB << n.
	ROMSize uint
	// 0x0149 - RAM size.
	RAMSize uint
	// 0x014A - Destination code, 0x00 for Japan.
	Destination uint8
	// 0x014B - OldLicenseeCode.
	OldLicenseeCode uint8
	// 0x014C - MaskROMVersion.
	MaskROMVersion uint8
	// 0x014D - HeaderChecksum over 0x0134-0x014C.
	HeaderChecksum uint8
	// 0x014E-0x014F - GlobalChecksum, big endian.
	GlobalChecksum uint16

	raw [headerEnd - headerStart]byte
}

// parseHeader parses the 0x50 bytes of the header.
func parseHeader(b []byte) Header {
	h := Header{}
	copy(h.raw[:], b)

	h.CGBFlag = b[0x43]
	title := b[0x34:0x44]
	if h.CGBFlag&0x80 != 0 {
		title = b[0x34:0x43]
	}
	h.Title = strings.TrimRight(string(title), "\x00 ")
	h.NewLicenseeCode = string(b[0x44:0x46])
	h.SGBFlag = b[0x46] == 0x03
	h.CartridgeType = Type(b[0x47])
	h.ROMSize = (32 * 1024) << b[0x48]
	h.RAMSize = ramSizes[b[0x49]]
	h.Destination = b[0x4A]
	h.OldLicenseeCode = b[0x4B]
	h.MaskROMVersion = b[0x4C]
	h.HeaderChecksum = b[0x4D]
	h.GlobalChecksum = uint16(b[0x4E])<<8 | uint16(b[0x4F])

	return h
}

// ComputeHeaderChecksum computes the checksum the boot ROM verifies.
func (h *Header) ComputeHeaderChecksum() uint8 {
	var sum uint8
	for _, b := range h.raw[0x34:0x4D] {
		sum = sum - b - 1
	}
	return sum
}

// ValidHeaderChecksum reports whether the stored header checksum
// matches the computed one.
func (h *Header) ValidHeaderChecksum() bool {
	return h.ComputeHeaderChecksum() == h.HeaderChecksum
}

func (h *Header) String() string {
	return fmt.Sprintf("%s | Type: %s | ROM Size: %dkB | RAM Size: %dkB", h.Title, h.CartridgeType, h.ROMSize/1024, h.RAMSize/1024)
}
