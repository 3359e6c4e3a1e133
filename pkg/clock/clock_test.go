package clock

import (
	"testing"
	"time"
)

func TestSystemTracksWallClock(t *testing.T) {
	before := time.Now().UnixMilli()
	got := NewSystem().NowMillis()
	after := time.Now().UnixMilli()
	if got < before || got > after {
		t.Errorf("NowMillis() = %d, want within [%d, %d]", got, before, after)
	}
}

func TestFixed(t *testing.T) {
	clk := NewFixed(1000)
	if got := clk.NowMillis(); got != 1000 {
		t.Errorf("NowMillis() = %d, want 1000", got)
	}

	clk.Advance(500)
	if got := clk.NowMillis(); got != 1500 {
		t.Errorf("after Advance: NowMillis() = %d, want 1500", got)
	}

	clk.Set(42)
	if got := clk.NowMillis(); got != 42 {
		t.Errorf("after Set: NowMillis() = %d, want 42", got)
	}
}
