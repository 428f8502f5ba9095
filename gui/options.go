package gui

import (
	"image/color"
	"time"
)

// Options controls the desktop window
type Options struct {
	Scale     int           // pixels per cell
	FrameRate time.Duration // time between generations while running
	TPS       int
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 10
	}
	if o.TPS <= 0 {
		o.TPS = 60
	}
	if o.FrameRate <= 0 {
		o.FrameRate = 100 * time.Millisecond
	}
	return o
}

// ticksPerGeneration converts the frame rate into update ticks, at least one
func (o Options) ticksPerGeneration() int {
	ticks := int(o.FrameRate * time.Duration(o.TPS) / time.Second)
	return max(ticks, 1)
}

var (
	aliveColor = color.RGBA{R: 196, G: 167, B: 231, A: 255}
	deadColor  = color.RGBA{R: 42, G: 39, B: 63, A: 255}
)

// fillPixels converts cells (0/1) into RGBA pixels in buf
func fillPixels(buf []byte, cells []uint8) {
	for i, c := range cells {
		col := deadColor
		if c != 0 {
			col = aliveColor
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
