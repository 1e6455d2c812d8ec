package timer

import (
	"fmt"
	"testing"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

func newTestTimer() (*Controller, *interrupts.Service) {
	irq := &interrupts.Service{Enable: 0x1F}
	return NewController(irq), irq
}

func timerRequested(irq *interrupts.Service) bool {
	return irq.Flag&interrupts.Timer.Flag() != 0
}

func TestController_Frequencies(t *testing.T) {
	tests := []struct {
		tac    uint8
		period int
	}{
		{0x04, 1024},
		{0x05, 16},
		{0x06, 64},
		{0x07, 256},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("TAC=0x%02X", tt.tac), func(t *testing.T) {
			c, _ := newTestTimer()
			c.Write(types.TAC, tt.tac)
			c.divider = 0

			for i := 0; i < tt.period*5; i++ {
				c.Tick()
			}
			if got := c.Read(types.TIMA); got != 5 {
				t.Errorf("expected TIMA 5 after %d ticks, got %d", tt.period*5, got)
			}
		})
	}
}

func TestController_Disabled(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0x01)
	c.divider = 0
	for i := 0; i < 1024; i++ {
		c.Tick()
	}
	if got := c.Read(types.TIMA); got != 0 {
		t.Errorf("disabled timer incremented to %d", got)
	}
}

func TestController_OverflowDelay(t *testing.T) {
	c, irq := newTestTimer()
	c.Write(types.TAC, 0x05)
	c.Write(types.TMA, 0x42)
	c.Write(types.TIMA, 0xFF)
	// position the counter so the next tick is a falling edge of bit 3
	c.divider = 0x000F

	c.Tick()
	if got := c.Read(types.TIMA); got != 0x00 {
		t.Fatalf("expected TIMA 0x00 on the overflow tick, got 0x%02X", got)
	}
	if timerRequested(irq) {
		t.Fatalf("timer interrupt requested on the overflow tick")
	}

	c.Tick()
	if !timerRequested(irq) {
		t.Fatalf("timer interrupt not requested one tick after overflow")
	}
	if got := c.Read(types.TIMA); got != 0x42 {
		t.Errorf("expected TIMA reloaded with 0x42, got 0x%02X", got)
	}
}

func TestController_WriteDuringReload(t *testing.T) {
	overflow := func() (*Controller, *interrupts.Service) {
		c, irq := newTestTimer()
		c.Write(types.TAC, 0x05)
		c.Write(types.TMA, 0x42)
		c.Write(types.TIMA, 0xFF)
		c.divider = 0x000F
		c.Tick()
		return c, irq
	}

	t.Run("TIMA write on reload tick is ignored", func(t *testing.T) {
		c, _ := overflow()
		c.Tick()
		c.Write(types.TIMA, 0x10)
		if got := c.Read(types.TIMA); got != 0x42 {
			t.Errorf("expected TIMA to keep TMA 0x42, got 0x%02X", got)
		}
	})
	t.Run("TMA write on reload tick loads TIMA", func(t *testing.T) {
		c, _ := overflow()
		c.Tick()
		c.Write(types.TMA, 0x99)
		if got := c.Read(types.TIMA); got != 0x99 {
			t.Errorf("expected TIMA 0x99, got 0x%02X", got)
		}
	})
	t.Run("TIMA write before reload cancels the interrupt", func(t *testing.T) {
		c, irq := overflow()
		c.Write(types.TIMA, 0x10)
		c.Tick()
		if timerRequested(irq) {
			t.Errorf("interrupt requested after TIMA write cancelled it")
		}
		if got := c.Read(types.TIMA); got != 0x10 {
			t.Errorf("expected TIMA 0x10, got 0x%02X", got)
		}
	})
	t.Run("TIMA write after reload tick sticks", func(t *testing.T) {
		c, _ := overflow()
		c.Tick()
		c.Tick()
		c.Write(types.TIMA, 0x10)
		if got := c.Read(types.TIMA); got != 0x10 {
			t.Errorf("expected TIMA 0x10, got 0x%02X", got)
		}
	})
}

func TestController_DividerWrite(t *testing.T) {
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0xFF} {
		t.Run(fmt.Sprintf("0x%02X", v), func(t *testing.T) {
			c, _ := newTestTimer()
			for i := 0; i < 1000; i++ {
				c.Tick()
			}
			c.Write(types.DIV, v)
			if got := c.Read(types.DIV); got != 0 {
				t.Errorf("expected DIV 0x00 after write, got 0x%02X", got)
			}
		})
	}
}

func TestController_DividerWriteFallingEdge(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0x05)
	c.divider = 0x0008
	c.Write(types.DIV, 0)
	if got := c.Read(types.TIMA); got != 1 {
		t.Errorf("expected TIMA increment on DIV reset, got %d", got)
	}

	c.divider = 0x0007
	c.Write(types.DIV, 0)
	if got := c.Read(types.TIMA); got != 1 {
		t.Errorf("expected no increment when the selected bit was clear, got %d", got)
	}
}

func TestController_ControlWriteFallingEdge(t *testing.T) {
	c, _ := newTestTimer()
	c.Write(types.TAC, 0x05)
	c.divider = 0x0008

	// disabling the timer while the selected bit is high is a falling edge
	c.Write(types.TAC, 0x01)
	if got := c.Read(types.TIMA); got != 1 {
		t.Errorf("expected TIMA 1, got %d", got)
	}
	if got := c.Read(types.TAC); got != 0xF9 {
		t.Errorf("expected TAC 0xF9, got 0x%02X", got)
	}
}
