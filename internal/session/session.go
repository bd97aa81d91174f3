// Package session holds the explicit audio session used by hosts: the
// processing context, the effect chain, and the start/stop transport.
package session

import (
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-fatten/dsp/buffer"
	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/effectchain"
)

// Session owns one effect chain and its transport state.
//
// Start, Stop and the chain's Configure may be called from control
// goroutines. Render must be called from a single audio goroutine.
type Session struct {
	cfg   core.ProcessorConfig
	chain *effectchain.Chain

	state atomic.Int32
}

// Transport states. A session moves stopped -> starting on Start; the
// audio goroutine moves starting -> playing after clearing the chain.
const (
	stateStopped int32 = iota
	stateStarting
	statePlaying
)

// New creates a stopped session. A nil registry uses
// effectchain.DefaultRegistry.
func New(cfg core.ProcessorConfig, registry *effectchain.Registry) (*Session, error) {
	if !core.ValidSampleRate(cfg.SampleRate) {
		return nil, fmt.Errorf("session sample rate must be > 0 and finite: %f", cfg.SampleRate)
	}

	if cfg.BlockSize <= 0 {
		return nil, fmt.Errorf("session block size must be > 0: %d", cfg.BlockSize)
	}

	if registry == nil {
		registry = effectchain.DefaultRegistry()
	}

	ctx := effectchain.Context{SampleRate: cfg.SampleRate, BlockSize: cfg.BlockSize}

	return &Session{cfg: cfg, chain: effectchain.New(ctx, registry)}, nil
}

// Config returns the processing configuration.
func (s *Session) Config() core.ProcessorConfig {
	return s.cfg
}

// Chain returns the session's effect chain.
func (s *Session) Chain() *effectchain.Chain {
	return s.chain
}

// Start begins processing. Restarting a stopped session clears the chain
// state before the next rendered block, so no tail from the previous run
// is replayed. Start on a running session does nothing.
func (s *Session) Start() {
	s.state.CompareAndSwap(stateStopped, stateStarting)
}

// Stop halts processing. Rendered blocks are silent until Start.
func (s *Session) Stop() {
	s.state.Store(stateStopped)
}

// Playing reports whether the session is started.
func (s *Session) Playing() bool {
	return s.state.Load() != stateStopped
}

// Render processes block in place. While stopped the block is silenced.
func (s *Session) Render(block buffer.Stereo) error {
	if !s.begin() {
		silence(block)

		return nil
	}

	return s.chain.Process(block.Left, block.Right)
}

// begin decides once per block whether the chain runs. A pending restart
// resets the chain here, on the audio goroutine, so the reset never
// overlaps processing.
func (s *Session) begin() bool {
	for {
		switch s.state.Load() {
		case stateStopped:
			return false
		case statePlaying:
			return true
		}

		if s.state.CompareAndSwap(stateStarting, statePlaying) {
			s.chain.Reset()

			return true
		}
	}
}

func silence(block buffer.Stereo) {
	core.Zero(block.Left)
	core.Zero(block.Right)
}

// AddFatten appends a fatten node with the given live parameters.
// Construction-time settings (feedback, maxDelay, interp) are read from
// extra.
func (s *Session) AddFatten(id string, time, mix float64, extra effectchain.Params) error {
	p := extra.WithNum("time", time).WithNum("mix", mix)
	p.ID = id
	p.Type = effectchain.FattenType

	return s.chain.Add(p)
}

// Sliders returns the controls of the fatten node id.
func (s *Session) Sliders(id string) ([]*effectchain.Slider, error) {
	return s.chain.NodeFattenSliders(id)
}
