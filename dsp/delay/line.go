package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/interp"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the interpolation used by ReadFractional.
// Unknown modes are ignored.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		if mode.Valid() {
			d.mode = mode
		}
	}
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}

	d := &Line{buffer: make([]float64, size), mode: interp.Hermite}

	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}

	return d, nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the fractional read interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxFractionalDelay returns the longest delay ReadFractional can serve
// without clamping.
func (d *Line) MaxFractionalDelay() float64 {
	return float64(len(d.buffer) - 3)
}

// Write writes one sample and advances the write head.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample

	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read reads an integer delay in samples. Read(1) is the most recently
// written sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	readPos := (d.writePos - delay%size + size) % size

	return d.buffer[readPos]
}

// ReadFractional reads a fractional delay in samples. The delay is clamped
// to [1, MaxFractionalDelay()].
func (d *Line) ReadFractional(delay float64) float64 {
	if !(delay >= 1) {
		delay = 1
	}

	maxDelay := d.MaxFractionalDelay()
	if maxDelay < 1 {
		maxDelay = 1
	}

	if delay > maxDelay {
		delay = maxDelay
	}

	p := int(math.Floor(delay))
	t := delay - float64(p)

	if d.mode == interp.Linear {
		return interp.Linear2(t, d.Read(p), d.Read(p+1))
	}

	xm1 := d.Read(max(1, p-1))
	x0 := d.Read(p)
	x1 := d.Read(p + 1)
	x2 := d.Read(p + 2)

	return interp.Hermite4(t, xm1, x0, x1, x2)
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}
