// Command goboy runs a ROM headlessly on the emulator core.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/config"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/ppu/palette"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "goboy",
		Short:        "A cycle-accurate DMG emulator core",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRunCmd(), newHeaderCmd(), newDisasmCmd(), newPalettesCmd())
	return rootCmd
}

func newRunCmd() *cobra.Command {
	var (
		configPath string
		cfg        = config.Default()
	)
	cmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a ROM for a number of frames or until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				// flags given on the command line win over the file
				cmd.Flags().Visit(func(f *pflag.Flag) { override(&loaded, cfg, f.Name) })
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd, args[0], cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&cfg.BootROM, "boot", cfg.BootROM, "boot ROM to run before the cartridge")
	f.StringVar(&cfg.Palette, "palette", cfg.Palette, "screenshot palette")
	f.IntVarP(&cfg.Frames, "frames", "n", cfg.Frames, "number of frames to run")
	f.Uint64Var(&cfg.MaxCycles, "max-cycles", cfg.MaxCycles, "run until HALT, giving up after this many machine cycles")
	f.StringVarP(&cfg.Screenshot, "screenshot", "o", cfg.Screenshot, "save the last frame to this .png or .bmp file")
	f.IntVar(&cfg.Scale, "scale", cfg.Scale, "screenshot scale factor")
	f.BoolVar(&cfg.Serial, "serial", cfg.Serial, "print serial output, stopping once a test ROM reports its result")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	f.BoolVar(&cfg.Debug, "debug", cfg.Debug, "trace every instruction")
	return cmd
}

// override copies the setting bound to the named flag from src to dst.
func override(dst *config.Config, src config.Config, name string) {
	switch name {
	case "boot":
		dst.BootROM = src.BootROM
	case "palette":
		dst.Palette = src.Palette
	case "frames":
		dst.Frames = src.Frames
	case "max-cycles":
		dst.MaxCycles = src.MaxCycles
	case "screenshot":
		dst.Screenshot = src.Screenshot
	case "scale":
		dst.Scale = src.Scale
	case "serial":
		dst.Serial = src.Serial
	case "log-level":
		dst.LogLevel = src.LogLevel
	case "debug":
		dst.Debug = src.Debug
	}
}

func run(cmd *cobra.Command, romPath string, cfg config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOutput(cmd.ErrOrStderr(), level)

	p, err := palette.ByName(cfg.Palette)
	if err != nil {
		return err
	}
	rom, err := utils.LoadFile(romPath)
	if err != nil {
		return err
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if cfg.BootROM != "" {
		boot, err := utils.LoadFile(cfg.BootROM)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if cfg.Debug {
		opts = append(opts, gameboy.Debug())
	}
	var serialOutput string
	if cfg.Serial {
		opts = append(opts, gameboy.SerialDebugger(&serialOutput))
	}

	g, err := gameboy.New(rom, opts...)
	if err != nil {
		return err
	}

	if cfg.MaxCycles > 0 {
		err = g.RunUntilHalt(cfg.MaxCycles)
	} else {
		err = g.RunFrames(cfg.Frames)
	}
	if err != nil && !errors.Is(err, gameboy.ErrBreakpoint) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frames: %d\n", g.Bus.PPU.Frames())
	fmt.Fprintf(out, "cycles: %d\n", g.Cycles())
	fmt.Fprintf(out, "frame:  %016x\n", g.FrameHash())
	if cfg.Serial {
		fmt.Fprintf(out, "serial: %s\n", serialOutput)
	}

	if cfg.Screenshot != "" {
		if err := utils.SaveImage(cfg.Screenshot, utils.Scale(g.Image(p), cfg.Scale)); err != nil {
			return err
		}
		logger.Infof("saved screenshot to %s", cfg.Screenshot)
	}
	return nil
}

func newHeaderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "header <rom>",
		Short: "Print the cartridge header of a ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := utils.LoadFile(args[0])
			if err != nil {
				return err
			}
			cart, err := cartridge.New(rom)
			if err != nil {
				return err
			}
			h := cart.Header()
			fmt.Fprintln(cmd.OutOrStdout(), h.String())
			if !h.ValidHeaderChecksum() {
				return fmt.Errorf("header checksum mismatch: computed %02X", h.ComputeHeaderChecksum())
			}
			return nil
		},
	}
}

func newDisasmCmd() *cobra.Command {
	var (
		start uint16
		count int
	)
	cmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Disassemble instructions from a ROM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := utils.LoadFile(args[0])
			if err != nil {
				return err
			}
			return disassemble(cmd, rom, start, count)
		},
	}
	cmd.Flags().Uint16Var(&start, "start", 0x0100, "address to start at")
	cmd.Flags().IntVarP(&count, "count", "n", 16, "number of instructions")
	return cmd
}

func disassemble(cmd *cobra.Command, rom []byte, start uint16, count int) error {
	at := func(addr int) uint8 {
		if addr < len(rom) {
			return rom[addr]
		}
		return 0xFF
	}
	addr := int(start)
	for i := 0; i < count && addr < len(rom); i++ {
		ins, err := cpu.Decode(at(addr), at(addr+1), at(addr+2))
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%04X  %02X        ??\n", addr, at(addr))
			addr++
			continue
		}
		var raw string
		for j := 0; j < int(ins.Length); j++ {
			raw += fmt.Sprintf("%02X ", at(addr+j))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%04X  %-9s %s\n", addr, raw, ins.String())
		addr += int(ins.Length)
	}
	return nil
}

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in palettes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range palette.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
