// Package ppu provides the pixel processing unit of the DMG. The
// PPU is advanced one dot at a time and walks each scanline through
// the OAM scan, pixel transfer and horizontal blank modes, followed
// by 10 lines of vertical blank, writing one shade per visible pixel
// into its framebuffer.
package ppu

import (
	"fmt"
	"sort"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/ppu/lcd"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = types.ScreenWidth
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = types.ScreenHeight

	// oamScanTicks is the length of the OAM scan, 2 dots per entry.
	oamScanTicks = 80
	// maxSpritesPerLine is the number of sprites the OAM scan selects.
	maxSpritesPerLine = 10
	// lastVisibleLine is the last line before vertical blank.
	lastVisibleLine = ScreenHeight - 1
)

// Framebuffer holds one shade (0-3) per visible pixel, indexed
// [y][x].
type Framebuffer [ScreenHeight][ScreenWidth]uint8

// PPU is the pixel processing unit.
type PPU struct {
	vRAM [0x2000]uint8
	oam  [0xA0]uint8

	lcdc lcd.Control
	stat lcd.Status
	scy  uint8
	scx  uint8
	ly   uint8
	lyc  uint8
	bgp  uint8
	obp0 uint8
	obp1 uint8
	wy   uint8
	wx   uint8

	// dot is the position within the current scanline (0-455).
	dot uint16
	// offTicks counts ticks while the LCD is off, so that blank
	// frames keep being produced at the normal rate.
	offTicks uint32
	statLine bool

	// OAM scan state
	sprites     [maxSpritesPerLine]Sprite
	spriteCount int
	nextSprite  int
	spriteLine  [ScreenWidth]spriteColumn

	// pixel transfer state
	fetcher fetcher
	bgFIFO  *utils.FIFO[uint8]
	lx      uint8 // next screen column to be drawn
	discard uint8 // pixels still to be dropped for SCX

	// window state
	windowLine      uint8
	windowTriggered bool // LY == WY has happened this frame
	windowDrawn     bool // the window was drawn on the current line

	back   Framebuffer
	front  Framebuffer
	frames uint64
	ready  bool

	dma *DMA
	irq *interrupts.Service
}

// New returns a PPU in the state left behind by the boot ROM, that
// requests interrupts through irq.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{
		irq:    irq,
		bgFIFO: utils.NewFIFO[uint8](fifoCapacity),
		lcdc:   0x91,
		bgp:    0xFC,
		obp0:   0xFF,
		obp1:   0xFF,
	}
	p.startLine()
	p.checkCoincidence()
	return p
}

// Tick advances the PPU by a single dot.
func (p *PPU) Tick() {
	if !p.lcdc.Enabled() {
		if p.offTicks++; p.offTicks == types.TicksPerFrame {
			p.offTicks = 0
			p.back = Framebuffer{}
			p.publish()
		}
		return
	}

	switch p.stat.Mode() {
	case lcd.OAM:
		p.scanOAM()
	case lcd.VRAM:
		p.transfer()
	}

	if p.dot++; p.dot == types.TicksPerScanline {
		p.dot = 0
		p.nextLine()
	}
	p.updateStat()
}

// scanOAM examines one OAM entry every 2 dots, selecting up to 10
// sprites that cover the current line, and starts pixel transfer
// once all 40 entries have been examined.
func (p *PPU) scanOAM() {
	if p.dot&1 == 1 && p.spriteCount < maxSpritesPerLine {
		s := spriteFromOAM(p.oam[:], uint8(p.dot>>1))
		if s.onLine(p.ly, p.lcdc.SpriteHeight()) {
			p.sprites[p.spriteCount] = s
			p.spriteCount++
		}
	}
	if p.dot == oamScanTicks-1 {
		p.startTransfer()
	}
}

// startTransfer enters pixel transfer, ordering the selected sprites
// by x. Sprites sharing an x keep their OAM order.
func (p *PPU) startTransfer() {
	selected := p.sprites[:p.spriteCount]
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].X < selected[j].X
	})
	p.nextSprite = 0
	for i := range p.spriteLine {
		p.spriteLine[i].count = 0
	}

	p.bgFIFO.Reset()
	p.fetcher.reset(false)
	p.lx = 0
	p.discard = p.scx & 7
	p.stat.SetMode(lcd.VRAM)
}

// transfer runs a single dot of pixel transfer: the fetcher is
// clocked, then a pixel is shifted out of the FIFO as long as it
// holds more than 8 pixels.
func (p *PPU) transfer() {
	p.stepFetcher()
	if p.bgFIFO.Size <= fifoCapacity-8 {
		return
	}

	if !p.fetcher.window && p.windowVisibleAt(p.lx) {
		p.startWindow()
		return
	}

	colour, _ := p.bgFIFO.Pop()
	if p.discard > 0 {
		p.discard--
		return
	}
	p.back[p.ly][p.lx] = p.composite(p.lx, colour)
	if p.lx++; p.lx == ScreenWidth {
		p.stat.SetMode(lcd.HBlank)
	}
}

// windowVisibleAt reports whether screen column x is covered by the
// window on the current line.
func (p *PPU) windowVisibleAt(x uint8) bool {
	return p.lcdc.WindowEnabled() && p.windowTriggered && p.wx <= 166 && int(x)+7 >= int(p.wx)
}

// startWindow discards the background pixels in the FIFO and restarts
// the fetcher on the window tile map.
func (p *PPU) startWindow() {
	p.bgFIFO.Reset()
	p.fetcher.reset(true)
	p.windowDrawn = true
	p.discard = 0
	if p.wx < 7 {
		p.discard = 7 - p.wx
	}
}

// composite mixes the background colour at column x with the sprite
// pixels staged for it, returning the final shade.
//
// Background colour 0 is always behind sprites. A sprite pixel with
// the priority bit set is only drawn over background colour 0, and
// the first qualifying sprite in fetch order wins.
func (p *PPU) composite(x uint8, bg uint8) uint8 {
	if !p.lcdc.BackgroundEnabled() {
		bg = 0
	}
	if p.lcdc.SpritesEnabled() {
		col := &p.spriteLine[x]
		for i := uint8(0); i < col.count; i++ {
			px := col.pixels[i]
			if px.BehindBackground() && bg != 0 {
				continue
			}
			obp := p.obp0
			if px.SecondPalette() {
				obp = p.obp1
			}
			return palette.Shade(obp, px.colour)
		}
	}
	if !p.lcdc.BackgroundEnabled() {
		return 0
	}
	return palette.Shade(p.bgp, bg)
}

// nextLine moves on to the next scanline, entering vertical blank
// after the last visible line and wrapping after line 153.
func (p *PPU) nextLine() {
	if p.windowDrawn {
		p.windowLine++
		p.windowDrawn = false
	}

	p.ly++
	switch {
	case p.ly == ScreenHeight:
		p.stat.SetMode(lcd.VBlank)
		p.irq.Request(interrupts.VBlank)
		p.publish()
	case p.ly == types.ScanlinesPerFrame:
		p.ly = 0
		p.windowLine = 0
		p.windowTriggered = false
		p.startLine()
	case p.ly <= lastVisibleLine:
		p.startLine()
	}
	p.checkCoincidence()
}

// startLine enters the OAM scan of a visible line.
func (p *PPU) startLine() {
	p.spriteCount = 0
	if p.ly == p.wy {
		p.windowTriggered = true
	}
	p.stat.SetMode(lcd.OAM)
}

func (p *PPU) checkCoincidence() {
	p.stat.SetCoincidence(p.ly == p.lyc)
}

// updateStat requests the LCD STAT interrupt on the rising edge of
// the STAT interrupt line.
func (p *PPU) updateStat() {
	line := p.stat.Line()
	if line && !p.statLine {
		p.irq.Request(interrupts.LCDStat)
	}
	p.statLine = line
}

// publish makes the frame being drawn available to the display.
func (p *PPU) publish() {
	p.front = p.back
	p.frames++
	p.ready = true
}

// Framebuffer returns the last complete frame.
func (p *PPU) Framebuffer() *Framebuffer {
	return &p.front
}

// Frames returns the number of frames completed since power on.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// FrameReady reports whether a frame has completed since the last
// call, clearing the latch.
func (p *PPU) FrameReady() bool {
	r := p.ready
	p.ready = false
	return r
}

// Mode returns the current mode of the PPU.
func (p *PPU) Mode() lcd.Mode {
	return p.stat.Mode()
}

// LY returns the current scanline.
func (p *PPU) LY() uint8 {
	return p.ly
}

// Dot returns the position within the current scanline.
func (p *PPU) Dot() uint16 {
	return p.dot
}

func (p *PPU) turnOff() {
	p.ly = 0
	p.dot = 0
	p.offTicks = 0
	p.stat.SetMode(lcd.HBlank)
	p.statLine = false
	p.back = Framebuffer{}
}

func (p *PPU) turnOn() {
	p.ly = 0
	p.dot = 0
	p.windowLine = 0
	p.windowTriggered = false
	p.windowDrawn = false
	p.startLine()
	p.checkCoincidence()
	p.updateStat()
}

// Read implements types.Register for VRAM, OAM and the LCD registers.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		return p.vRAM[address-types.VRAMStart]
	case address >= types.OAMStart && address <= types.OAMEnd:
		if p.dma != nil && p.dma.Active() {
			return 0xFF
		}
		return p.oam[address-types.OAMStart]
	}

	switch address {
	case types.LCDC:
		return uint8(p.lcdc)
	case types.STAT:
		return p.stat.Read()
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.ly
	case types.LYC:
		return p.lyc
	case types.BGP:
		return p.bgp
	case types.OBP0:
		return p.obp0
	case types.OBP1:
		return p.obp1
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}
	panic(fmt.Sprintf("ppu: illegal read from address 0x%04X", address))
}

// Write implements types.Register for VRAM, OAM and the LCD registers.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.VRAMStart && address <= types.VRAMEnd:
		p.vRAM[address-types.VRAMStart] = value
		return
	case address >= types.OAMStart && address <= types.OAMEnd:
		if p.dma == nil || !p.dma.Active() {
			p.oam[address-types.OAMStart] = value
		}
		return
	}

	switch address {
	case types.LCDC:
		was := p.lcdc.Enabled()
		p.lcdc = lcd.Control(value)
		if was && !p.lcdc.Enabled() {
			p.turnOff()
		} else if !was && p.lcdc.Enabled() {
			p.turnOn()
		}
	case types.STAT:
		p.stat.Write(value)
		if p.lcdc.Enabled() {
			p.updateStat()
		}
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		// read only
	case types.LYC:
		p.lyc = value
		if p.lcdc.Enabled() {
			p.checkCoincidence()
			p.updateStat()
		}
	case types.BGP:
		p.bgp = value
	case types.OBP0:
		p.obp0 = value
	case types.OBP1:
		p.obp1 = value
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	default:
		panic(fmt.Sprintf("ppu: illegal write to address 0x%04X", address))
	}
}

// writeOAM writes directly to OAM, bypassing the DMA lock.
func (p *PPU) writeOAM(index uint8, value uint8) {
	p.oam[index] = value
}
