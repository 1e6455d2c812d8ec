package ppu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Reader is the part of the bus the DMA controller copies from.
type Reader interface {
	Read(address uint16) uint8
}

const (
	// dmaLength is the number of bytes copied by a transfer.
	dmaLength = 0xA0
	// dmaStartDelay is the number of machine cycles between the write
	// to types.DMA and the first byte being copied.
	dmaStartDelay = 2
)

// DMA is the OAM DMA controller. Writing to types.DMA copies 160
// bytes from (value << 8) into OAM, one byte per machine cycle.
// While a transfer is running OAM is not accessible to the CPU.
type DMA struct {
	value  uint8
	source uint16
	index  uint8
	delay  uint8
	active bool
	ticks  uint8

	bus Reader
	ppu *PPU
}

// NewDMA returns a DMA controller copying from bus into the OAM of p.
func NewDMA(bus Reader, p *PPU) *DMA {
	d := &DMA{bus: bus, ppu: p}
	p.dma = d
	return d
}

// Active reports whether a transfer is in progress.
func (d *DMA) Active() bool {
	return d.active && d.delay == 0
}

// Tick advances the DMA controller by a single T-cycle.
func (d *DMA) Tick() {
	if !d.active {
		return
	}
	if d.ticks++; d.ticks < types.TicksPerMCycle {
		return
	}
	d.ticks = 0

	if d.delay > 0 {
		d.delay--
		return
	}

	source := d.source + uint16(d.index)
	// sources past WRAM read from the echo instead
	if source >= types.EchoStart {
		source &^= 0x2000
	}
	d.ppu.writeOAM(d.index, d.bus.Read(source))
	if d.index++; d.index == dmaLength {
		d.active = false
	}
}

// Read implements types.Register.
func (d *DMA) Read(address uint16) uint8 {
	if address != types.DMA {
		panic(fmt.Sprintf("dma: illegal read from address 0x%04X", address))
	}
	return d.value
}

// Write implements types.Register.
func (d *DMA) Write(address uint16, value uint8) {
	if address != types.DMA {
		panic(fmt.Sprintf("dma: illegal write to address 0x%04X", address))
	}
	d.value = value
	d.source = uint16(value) << 8
	d.index = 0
	d.ticks = 0
	d.delay = dmaStartDelay
	d.active = true
}
