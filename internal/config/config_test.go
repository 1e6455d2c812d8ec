package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    Config
		wantErr bool
	}{
		{"empty", "", Default(), false},
		{"partial", "frames: 10\npalette: green\n", func() Config {
			c := Default()
			c.Frames, c.Palette = 10, "green"
			return c
		}(), false},
		{"full", `
boot_rom: dmg_boot.bin
palette: pocket
frames: 0
max_cycles: 1000000
screenshot: out.png
scale: 4
serial: true
log_level: debug
debug: true
`, Config{
			BootROM: "dmg_boot.bin", Palette: "pocket", MaxCycles: 1000000,
			Screenshot: "out.png", Scale: 4, Serial: true, LogLevel: "debug", Debug: true,
		}, false},
		{"unknown key", "speed: 2\n", Config{}, true},
		{"invalid scale", "scale: 0\n", Config{}, true},
		{"negative frames", "frames: -1\n", Config{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	c := Default()
	c.Screenshot = "frame.bmp"
	c.Serial = true

	var buf bytes.Buffer
	require.NoError(t, c.Write(&buf))
	path := filepath.Join(t.TempDir(), "goboy.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
