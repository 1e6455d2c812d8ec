package ppu

// fetcherState is a step of the background/window pixel fetcher.
//
// The fetcher runs during pixel transfer, 2 dots per step, and
// prepares a row of 8 pixels of a tile at a time:
//
//  1. Read the tile number from the tile map
//  2. Read the low bit-plane of the tile row
//  3. Read the high bit-plane of the tile row, alongside the
//     rows of any sprites about to be drawn
//  4. Sleep
//  5. Push the 8 pixels to the FIFO, retrying every dot until
//     the FIFO has room for them
type fetcherState uint8

const (
	fetchTileNumber fetcherState = iota
	fetchDataLow
	fetchDataHigh
	fetchSleep
	fetchPush
)

func (s fetcherState) String() string {
	switch s {
	case fetchTileNumber:
		return "TileNumber"
	case fetchDataLow:
		return "DataLow"
	case fetchDataHigh:
		return "DataHigh"
	case fetchSleep:
		return "Sleep"
	case fetchPush:
		return "Push"
	}
	return "Unknown"
}

// fifoCapacity is the size of the background FIFO. A row of pixels
// may only be pushed while it holds 8 pixels or fewer.
const fifoCapacity = 16

type fetcher struct {
	state fetcherState
	ticks uint8

	// tileX is the tile column being fetched, relative to SCX for
	// the background and to the left edge for the window.
	tileX uint8
	tile  uint8
	low   uint8
	high  uint8

	window bool
}

func (f *fetcher) reset(window bool) {
	*f = fetcher{window: window}
}

// stepFetcher advances the fetcher by one dot.
func (p *PPU) stepFetcher() {
	f := &p.fetcher
	if f.state == fetchPush {
		p.pushRow()
		return
	}

	if f.ticks++; f.ticks < 2 {
		return
	}
	f.ticks = 0

	switch f.state {
	case fetchTileNumber:
		f.tile = p.vRAM[p.tileMapAddress()&0x1FFF]
	case fetchDataLow:
		f.low = p.vRAM[p.tileRowAddress()&0x1FFF]
	case fetchDataHigh:
		f.high = p.vRAM[(p.tileRowAddress()+1)&0x1FFF]
		p.fetchSprites()
	case fetchSleep:
		f.state = fetchPush
		p.pushRow()
		return
	}
	f.state++
}

// pushRow pushes the decoded row into the FIFO if it holds 8 pixels
// or fewer, otherwise the push is retried on the next dot.
func (p *PPU) pushRow() {
	if p.bgFIFO.Size > fifoCapacity-8 {
		return
	}
	f := &p.fetcher
	for bit := 7; bit >= 0; bit-- {
		p.bgFIFO.Push((f.low>>bit)&1 | ((f.high>>bit)&1)<<1)
	}
	f.tileX++
	f.state = fetchTileNumber
}

// tileMapAddress returns the address of the tile number the fetcher
// is about to read.
func (p *PPU) tileMapAddress() uint16 {
	if p.fetcher.window {
		return p.lcdc.WindowTileMap() + uint16(p.windowLine/8)*32 + uint16(p.fetcher.tileX&31)
	}
	y := p.ly + p.scy
	x := (p.scx/8 + p.fetcher.tileX) & 31
	return p.lcdc.BackgroundTileMap() + uint16(y/8)*32 + uint16(x)
}

// tileRowAddress returns the address of the low bit-plane of the tile
// row being fetched.
func (p *PPU) tileRowAddress() uint16 {
	row := (p.ly + p.scy) & 7
	if p.fetcher.window {
		row = p.windowLine & 7
	}
	return p.lcdc.TileDataAddress(p.fetcher.tile) + uint16(row)*2
}

// fetchSprites decodes the rows of the selected sprites that start
// within the next 16 columns, in their selection order, staging
// their opaque pixels by screen column.
func (p *PPU) fetchSprites() {
	if !p.lcdc.SpritesEnabled() {
		return
	}
	for p.nextSprite < p.spriteCount && int(p.sprites[p.nextSprite].X) < int(p.lx)+24 {
		p.stageSprite(p.sprites[p.nextSprite])
		p.nextSprite++
	}
}

func (p *PPU) stageSprite(s Sprite) {
	height := p.lcdc.SpriteHeight()
	row := (p.ly + 16 - s.Y) & (height - 1)
	if s.FlipY() {
		row = height - 1 - row
	}
	tile := s.Tile
	if height == 16 {
		tile &^= 1
	}
	addr := uint16(tile)*16 + uint16(row)*2
	low, high := p.vRAM[addr], p.vRAM[addr+1]

	for px := 0; px < 8; px++ {
		x := int(s.X) - 8 + px
		if x < 0 || x >= ScreenWidth {
			continue
		}
		bit := 7 - px
		if s.FlipX() {
			bit = px
		}
		colour := (low>>bit)&1 | ((high>>bit)&1)<<1
		if colour == 0 {
			continue
		}
		p.spriteLine[x].add(spritePixel{colour: colour, Attributes: s.Attributes})
	}
}
