package buffer

import (
	"fmt"

	"github.com/cwbudde/algo-fatten/dsp/core"
)

// Stereo holds one block of paired left/right samples.
// Left and Right always have the same length.
type Stereo struct {
	Left  []float64
	Right []float64
}

// NewStereo returns a zero-filled block of the given number of frames.
func NewStereo(frames int) *Stereo {
	if frames < 0 {
		frames = 0
	}

	return &Stereo{
		Left:  make([]float64, frames),
		Right: make([]float64, frames),
	}
}

// Frames returns the number of stereo frames in the block.
func (s *Stereo) Frames() int {
	return len(s.Left)
}

// Resize sets the frame count, reusing capacity when possible.
// Contents are unspecified after a resize; call Zero when silence is needed.
func (s *Stereo) Resize(frames int) {
	s.Left = core.EnsureLen(s.Left, frames)
	s.Right = core.EnsureLen(s.Right, frames)
}

// Zero silences both channels.
func (s *Stereo) Zero() {
	core.Zero(s.Left)
	core.Zero(s.Right)
}

// SetMono resizes the block to len(mono) and copies mono into both channels.
func (s *Stereo) SetMono(mono []float64) {
	s.Resize(len(mono))
	copy(s.Left, mono)
	copy(s.Right, mono)
}

// SetInterleaved resizes the block and de-interleaves buf (L, R, L, R, ...).
func (s *Stereo) SetInterleaved(buf []float64) error {
	if len(buf)%2 != 0 {
		return fmt.Errorf("buffer: interleaved stereo length must be even: %d", len(buf))
	}

	frames := len(buf) / 2
	s.Resize(frames)

	for i := 0; i < frames; i++ {
		s.Left[i] = buf[2*i]
		s.Right[i] = buf[2*i+1]
	}

	return nil
}

// AppendInterleaved appends the block to dst as L, R, L, R, ... and returns
// the extended slice.
func (s *Stereo) AppendInterleaved(dst []float64) []float64 {
	for i := range s.Left {
		dst = append(dst, s.Left[i], s.Right[i])
	}

	return dst
}

// Copy returns a deep copy of the block.
func (s *Stereo) Copy() *Stereo {
	out := NewStereo(s.Frames())
	copy(out.Left, s.Left)
	copy(out.Right, s.Right)

	return out
}
