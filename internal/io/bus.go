// Package io provides the memory bus of the Game Boy, which decodes
// every CPU access to the cartridge, the internal RAMs or one of the
// hardware registers, and owns the devices behind those registers.
package io

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// BDIS is the boot ROM disable register.
const BDIS types.HardwareAddress = 0xFF50

// Bus is the memory bus.
type Bus struct {
	cart   types.Register
	extRAM [0x2000]uint8
	wRAM   [0x2000]uint8
	hRAM   [0x7F]uint8

	// registers routes the IO window, indexed by address - 0xFF00.
	registers [0x80]types.Register

	bootROM     *boot.ROM
	bootEnabled bool

	IRQ    *interrupts.Service
	Timer  *timer.Controller
	PPU    *ppu.PPU
	DMA    *ppu.DMA
	Joypad *joypad.State
	Serial *serial.Controller

	log log.Logger
}

// NewBus returns a Bus for the given cartridge, constructing every
// device and installing its registers.
func NewBus(cart types.Register, logger log.Logger) *Bus {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	b := &Bus{
		cart: cart,
		IRQ:  interrupts.NewService(),
		log:  logger,
	}
	b.Timer = timer.NewController(b.IRQ)
	b.PPU = ppu.New(b.IRQ)
	b.DMA = ppu.NewDMA(b, b.PPU)
	b.Joypad = joypad.New(b.IRQ)
	b.Serial = serial.NewController(b.IRQ)

	b.Reserve(types.P1, b.Joypad)
	b.Reserve(types.SB, b.Serial)
	b.Reserve(types.SC, b.Serial)
	for _, addr := range []types.HardwareAddress{types.DIV, types.TIMA, types.TMA, types.TAC} {
		b.Reserve(addr, b.Timer)
	}
	b.Reserve(types.IF, b.IRQ)
	for _, addr := range []types.HardwareAddress{
		types.LCDC, types.STAT, types.SCY, types.SCX, types.LY, types.LYC,
		types.BGP, types.OBP0, types.OBP1, types.WY, types.WX,
	} {
		b.Reserve(addr, b.PPU)
	}
	b.Reserve(types.DMA, b.DMA)
	b.Reserve(BDIS, bootControl{b})

	return b
}

// Reserve installs reg as the handler of the IO address addr. Every
// address may only be reserved once.
func (b *Bus) Reserve(addr types.HardwareAddress, reg types.Register) {
	if addr < types.IOStart || addr > types.IOEnd {
		panic(fmt.Sprintf("io: address 0x%04X is outside of the IO window", addr))
	}
	if b.registers[addr-types.IOStart] != nil {
		panic(fmt.Sprintf("io: address 0x%04X has already been reserved", addr))
	}
	b.registers[addr-types.IOStart] = reg
}

// MapBootROM overlays r on 0x0000-0x00FF until BDIS is written.
func (b *Bus) MapBootROM(r *boot.ROM) {
	b.bootROM = r
	b.bootEnabled = r != nil
}

// BootROMMapped reports whether the boot ROM overlay is active.
func (b *Bus) BootROMMapped() bool {
	return b.bootEnabled
}

// Read returns the value at address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address <= types.ROMEnd:
		if b.bootEnabled && address < boot.Size {
			return b.bootROM.Read(address)
		}
		return b.cart.Read(address)
	case address <= types.VRAMEnd:
		return b.PPU.Read(address)
	case address <= types.ExtRAMEnd:
		return b.extRAM[address-types.ExtRAMStart]
	case address <= types.WRAMEnd:
		return b.wRAM[address-types.WRAMStart]
	case address <= types.EchoEnd:
		return b.wRAM[address-types.EchoStart]
	case address <= types.OAMEnd:
		return b.PPU.Read(address)
	case address <= types.UnusableEnd:
		return 0xFF
	case address <= types.IOEnd:
		if reg := b.registers[address-types.IOStart]; reg != nil {
			return reg.Read(address)
		}
		return 0xFF
	case address <= types.HRAMEnd:
		return b.hRAM[address-types.HRAMStart]
	default:
		return b.IRQ.Read(address)
	}
}

// Write writes value to address.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address <= types.ROMEnd:
		b.cart.Write(address, value)
	case address <= types.VRAMEnd:
		b.PPU.Write(address, value)
	case address <= types.ExtRAMEnd:
		b.extRAM[address-types.ExtRAMStart] = value
	case address <= types.WRAMEnd:
		b.wRAM[address-types.WRAMStart] = value
	case address <= types.EchoEnd:
		b.wRAM[address-types.EchoStart] = value
	case address <= types.OAMEnd:
		b.PPU.Write(address, value)
	case address <= types.UnusableEnd:
		// ignored
	case address <= types.IOEnd:
		if reg := b.registers[address-types.IOStart]; reg != nil {
			reg.Write(address, value)
		} else {
			b.log.Debugf("io: write of 0x%02X to unmapped address 0x%04X", value, address)
		}
	case address <= types.HRAMEnd:
		b.hRAM[address-types.HRAMStart] = value
	default:
		b.IRQ.Write(address, value)
	}
}

// Read16 returns the little endian word at address.
func (b *Bus) Read16(address uint16) uint16 {
	return uint16(b.Read(address)) | uint16(b.Read(address+1))<<8
}

// Write16 writes value as a little endian word to address.
func (b *Bus) Write16(address uint16, value uint16) {
	b.Write(address, uint8(value))
	b.Write(address+1, uint8(value>>8))
}

// Tick advances every clocked device by a single T-cycle.
func (b *Bus) Tick() {
	b.Timer.Tick()
	b.PPU.Tick()
	b.DMA.Tick()
	b.Serial.Tick()
}

// bootControl handles BDIS. Any non-zero write unmaps the boot ROM
// for good.
type bootControl struct {
	b *Bus
}

func (c bootControl) Read(address uint16) uint8 {
	if c.b.bootEnabled {
		return 0xFE
	}
	return 0xFF
}

func (c bootControl) Write(address uint16, value uint8) {
	if value != 0 && c.b.bootEnabled {
		c.b.bootEnabled = false
		c.b.log.Debugf("io: boot rom unmapped")
	}
}
