package session

import (
	"github.com/cwbudde/algo-fatten/dsp/buffer"
	"github.com/cwbudde/algo-fatten/dsp/core"
)

// Player streams a decoded stereo signal into fixed-size blocks.
type Player struct {
	data *buffer.Stereo
	pos  int
	tail int
}

// NewPlayer creates a player over data followed by tailFrames of silence.
func NewPlayer(data *buffer.Stereo, tailFrames int) *Player {
	return &Player{data: data, tail: max(0, tailFrames)}
}

// Frames returns the total number of frames, including the tail.
func (p *Player) Frames() int {
	return p.data.Frames() + p.tail
}

// Remaining returns how many frames are left to play.
func (p *Player) Remaining() int {
	return p.Frames() - p.pos
}

// Rewind moves the play position to the start.
func (p *Player) Rewind() {
	p.pos = 0
}

// Next fills block with the next frames and returns how many are valid.
// The rest of the block is silenced.
func (p *Player) Next(block buffer.Stereo) int {
	n := min(len(block.Left), len(block.Right), p.Remaining())
	src := p.data.Frames()

	copied := 0
	if p.pos < src {
		copied = copy(block.Left[:n], p.data.Left[p.pos:])
		copy(block.Right[:copied], p.data.Right[p.pos:])
	}

	core.Zero(block.Left[copied:])
	core.Zero(block.Right[copied:])

	p.pos += n

	return n
}

// Play renders the next block of p through s and returns how many frames
// of it are valid. A stopped session renders silence and holds the play
// position.
func (s *Session) Play(p *Player, block buffer.Stereo) (int, error) {
	if !s.begin() {
		silence(block)

		return 0, nil
	}

	n := p.Next(block)
	if err := s.chain.Process(block.Left, block.Right); err != nil {
		return 0, err
	}

	return n, nil
}
