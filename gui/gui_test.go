package gui

import (
	"testing"
	"time"
)

func TestTicksPerGeneration(t *testing.T) {
	cases := []struct {
		opts Options
		want int
	}{
		{Options{TPS: 60, FrameRate: time.Second}, 60},
		{Options{TPS: 60, FrameRate: 100 * time.Millisecond}, 6},
		{Options{TPS: 60, FrameRate: time.Millisecond}, 1},
		{Options{}.withDefaults(), 6},
	}
	for _, tc := range cases {
		if got := tc.opts.ticksPerGeneration(); got != tc.want {
			t.Fatalf("ticksPerGeneration(%+v) = %d, expected %d", tc.opts, got, tc.want)
		}
	}
}

func TestFillPixels(t *testing.T) {
	buf := make([]byte, 8)
	fillPixels(buf, []uint8{1, 0})

	if buf[0] != aliveColor.R || buf[1] != aliveColor.G || buf[2] != aliveColor.B || buf[3] != 255 {
		t.Fatalf("alive pixel = %v", buf[:4])
	}
	if buf[4] != deadColor.R || buf[5] != deadColor.G || buf[6] != deadColor.B || buf[7] != 255 {
		t.Fatalf("dead pixel = %v", buf[4:])
	}
}
