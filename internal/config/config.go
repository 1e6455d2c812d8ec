// Package config provides the run configuration of the command line
// tool, read from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the run configuration.
type Config struct {
	// BootROM is the path of a boot ROM to run before the cartridge.
	BootROM string `yaml:"boot_rom"`
	// Palette is the name of the palette screenshots are coloured with.
	Palette string `yaml:"palette"`
	// Frames is the number of frames to run.
	Frames int `yaml:"frames"`
	// MaxCycles limits the machine cycles run while waiting for the
	// CPU to halt, 0 to run frames instead.
	MaxCycles uint64 `yaml:"max_cycles"`
	// Screenshot is the path the last frame is saved to, if set.
	Screenshot string `yaml:"screenshot"`
	// Scale is the scale factor of the screenshot.
	Scale int `yaml:"scale"`
	// Serial prints everything sent over the serial port.
	Serial bool `yaml:"serial"`
	// LogLevel is the logrus level name.
	LogLevel string `yaml:"log_level"`
	// Debug traces every instruction.
	Debug bool `yaml:"debug"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Palette:  "greyscale",
		Frames:   60,
		Scale:    1,
		LogLevel: "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Frames < 0:
		return fmt.Errorf("config: frames must not be negative, got %d", c.Frames)
	case c.Scale < 1:
		return fmt.Errorf("config: scale must be at least 1, got %d", c.Scale)
	}
	return nil
}

// Read decodes a YAML document from r over the defaults. Unknown
// keys are an error.
func Read(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, c.Validate()
}

// Load reads the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes c as YAML to w.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
