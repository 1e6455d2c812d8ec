package lcd

import "testing"

func TestControl(t *testing.T) {
	c := Control(0x91)
	if !c.Enabled() || !c.BackgroundEnabled() {
		t.Errorf("expected LCD and background enabled for 0x91")
	}
	if c.WindowEnabled() || c.SpritesEnabled() {
		t.Errorf("expected window and sprites disabled for 0x91")
	}
	if c.BackgroundTileMap() != 0x9800 || c.WindowTileMap() != 0x9800 {
		t.Errorf("expected tile maps at 0x9800")
	}
	if c.SpriteHeight() != 8 {
		t.Errorf("expected 8 pixel sprites")
	}
	if Control(0xFF).SpriteHeight() != 16 {
		t.Errorf("expected 16 pixel sprites")
	}
}

func TestControl_TileDataAddress(t *testing.T) {
	tests := []struct {
		name string
		lcdc Control
		tile uint8
		want uint16
	}{
		{"unsigned 0", ControlTileData, 0x00, 0x8000},
		{"unsigned 255", ControlTileData, 0xFF, 0x8FF0},
		{"signed 0", 0, 0x00, 0x9000},
		{"signed 127", 0, 0x7F, 0x97F0},
		{"signed -128", 0, 0x80, 0x8800},
		{"signed -1", 0, 0xFF, 0x8FF0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lcdc.TileDataAddress(tt.tile); got != tt.want {
				t.Errorf("expected 0x%04X, got 0x%04X", tt.want, got)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	var s Status
	s.SetMode(VRAM)
	s.SetCoincidence(true)
	s.Write(0xFF)
	if got := s.Read(); got != 0xFF {
		t.Errorf("expected 0xFF, got 0x%02X", got)
	}
	s.Write(0x00)
	if got := s.Read(); got != 0x87 {
		t.Errorf("expected writes to leave mode and coincidence, got 0x%02X", got)
	}
	if s.Mode() != VRAM {
		t.Errorf("expected mode VRAM, got %v", s.Mode())
	}
}

func TestStatus_Line(t *testing.T) {
	tests := []struct {
		name   string
		enable Status
		mode   Mode
		lyc    bool
		want   bool
	}{
		{"hblank enabled", StatusHBlankInterrupt, HBlank, false, true},
		{"hblank disabled", StatusVBlankInterrupt, HBlank, false, false},
		{"vblank", StatusVBlankInterrupt, VBlank, false, true},
		{"oam", StatusOAMInterrupt, OAM, false, true},
		{"vram never", 0x78, VRAM, false, false},
		{"lyc", StatusLYCInterrupt, VRAM, true, true},
		{"lyc without coincidence", StatusLYCInterrupt, VRAM, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Status
			s.Write(uint8(tt.enable))
			s.SetMode(tt.mode)
			s.SetCoincidence(tt.lyc)
			if got := s.Line(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
