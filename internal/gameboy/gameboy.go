// Package gameboy provides an emulation of a Nintendo Game Boy.
//
// A GameBoy joins the CPU to the memory bus, and advances the rest of
// the hardware by the number of machine cycles each CPU step reports,
// one T-cycle at a time.
package gameboy

import (
	"errors"
	"fmt"
	"image"

	"github.com/cespare/xxhash"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/io"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed
	// TicksPerFrame is the number of T-cycles per frame.
	TicksPerFrame = types.TicksPerFrame
)

var (
	// ErrCycleLimit is returned by RunUntilHalt when the cycle limit
	// is reached before the CPU halts.
	ErrCycleLimit = errors.New("gameboy: cycle limit reached")
	// ErrBreakpoint is returned when a serial debugger has seen the
	// end of a test report.
	ErrBreakpoint = errors.New("gameboy: breakpoint")
)

// Display receives every frame completed by Frame.
type Display interface {
	Render(fb *ppu.Framebuffer)
}

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU  *cpu.CPU
	Bus  *io.Bus
	Cart *cartridge.Cartridge

	log.Logger

	display    Display
	serialSink serial.Sink
	// serialOutput receives the text of the serial debugger, if enabled
	serialOutput *string
	bootROM    []byte
	debug      bool
	breakpoint bool
	cycles     uint64
}

// New returns a GameBoy running rom.
func New(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, fmt.Errorf("gameboy: loading cartridge: %w", err)
	}

	g := &GameBoy{
		Cart:   cart,
		Logger: log.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.Bus = io.NewBus(cart, g.Logger)
	g.CPU = cpu.NewCPU(g.Bus, g.Bus.IRQ, g.Logger)

	g.CPU.Debug = g.debug
	if g.serialOutput != nil {
		g.serialSink = g.serialDebugger(g.serialOutput)
	}
	if g.serialSink != nil {
		g.Bus.Serial.Attach(g.serialSink)
	}
	if g.bootROM != nil {
		r, err := boot.Load(g.bootROM)
		if err != nil {
			return nil, fmt.Errorf("gameboy: %w", err)
		}
		g.Bus.MapBootROM(r)
		g.CPU.PowerOn()
		g.Infof("boot rom: %s", r.Model())
	}

	header := cart.Header()
	g.Infof("cartridge: %s", header.String())
	if !header.CartridgeType.Flat() {
		g.Warnf("cartridge: %s requires a memory bank controller, banked areas will read as open bus", header.CartridgeType)
	}
	if !header.ValidHeaderChecksum() {
		g.Warnf("cartridge: invalid header checksum 0x%02X", header.HeaderChecksum)
	}

	return g, nil
}

// serialDebugger returns a Sink collecting serial text into output,
// logging each line, and breaking once a test ROM reports its result.
func (g *GameBoy) serialDebugger(output *string) serial.Sink {
	d := serial.NewDebugger(g.Logger)
	return serial.SinkFunc(func(b uint8) {
		d.Receive(b)
		*output = d.String()
		if d.Finished() {
			g.breakpoint = true
		}
	})
}

// Step executes a single CPU step, and then advances the rest of the
// hardware by the machine cycles it took. It returns the number of
// machine cycles.
func (g *GameBoy) Step() (uint8, error) {
	cycles, err := g.CPU.Step()
	if err != nil {
		return 0, err
	}
	for i := 0; i < int(cycles)*types.TicksPerMCycle; i++ {
		g.Bus.Tick()
	}
	g.cycles += uint64(cycles)
	if g.breakpoint {
		return cycles, ErrBreakpoint
	}
	return cycles, nil
}

// Frame steps the emulation until the PPU has finished the current
// frame, and passes it to the attached Display.
func (g *GameBoy) Frame() error {
	start := g.Bus.PPU.Frames()
	for g.Bus.PPU.Frames() == start {
		if _, err := g.Step(); err != nil {
			return err
		}
	}
	if g.display != nil {
		g.display.Render(g.Bus.PPU.Framebuffer())
	}
	return nil
}

// RunFrames runs n frames.
func (g *GameBoy) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := g.Frame(); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// RunUntilHalt steps the emulation until the CPU halts, returning
// ErrCycleLimit if it has not after maxCycles machine cycles.
func (g *GameBoy) RunUntilHalt(maxCycles uint64) error {
	var ran uint64
	for !g.CPU.Halted {
		if ran >= maxCycles {
			return fmt.Errorf("%w after %d cycles (%s)", ErrCycleLimit, ran, g.CPU)
		}
		cycles, err := g.Step()
		if err != nil {
			return err
		}
		ran += uint64(cycles)
	}
	return nil
}

// Cycles returns the number of machine cycles run since power on.
func (g *GameBoy) Cycles() uint64 {
	return g.cycles
}

// Framebuffer returns the last complete frame.
func (g *GameBoy) Framebuffer() *ppu.Framebuffer {
	return g.Bus.PPU.Framebuffer()
}

// FrameHash returns a digest of the last complete frame.
func (g *GameBoy) FrameHash() uint64 {
	h := xxhash.New()
	for _, row := range g.Bus.PPU.Framebuffer() {
		h.Write(row[:])
	}
	return h.Sum64()
}

// Image returns the last complete frame coloured with p.
func (g *GameBoy) Image(p palette.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	for y, row := range g.Bus.PPU.Framebuffer() {
		for x, shade := range row {
			img.SetRGBA(x, y, p.RGBA(shade))
		}
	}
	return img
}

// Press presses the given buttons.
func (g *GameBoy) Press(buttons joypad.Button) {
	g.Bus.Joypad.Press(buttons)
}

// Release releases the given buttons.
func (g *GameBoy) Release(buttons joypad.Button) {
	g.Bus.Joypad.Release(buttons)
}
