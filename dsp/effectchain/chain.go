package effectchain

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrUnknownEffect is returned when a node references an unregistered effect type.
var ErrUnknownEffect = errors.New("unknown effect type")

// ErrUnknownNode is returned when a node ID is not part of the chain.
var ErrUnknownNode = errors.New("unknown node")

type nodeRuntime struct {
	id         string
	effectType string
	runtime    Runtime
	bypassed   atomic.Bool
}

// Chain runs stereo effect nodes in insertion order. Nodes are added
// before processing starts; Configure may then be called from control
// goroutines while Process runs.
type Chain struct {
	ctx      Context
	registry *Registry

	nodes []*nodeRuntime
	byID  map[string]*nodeRuntime
}

// New creates a Chain with the given context and registry.
func New(ctx Context, registry *Registry) *Chain {
	return &Chain{
		ctx:      ctx,
		registry: registry,
		byID:     make(map[string]*nodeRuntime),
	}
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// Len returns the number of nodes.
func (c *Chain) Len() int {
	return len(c.nodes)
}

// Add creates a runtime for p.Type, configures it with p and appends it.
func (c *Chain) Add(p Params) error {
	if p.ID == "" {
		return errors.New("effectchain: empty node id")
	}

	if _, exists := c.byID[p.ID]; exists {
		return fmt.Errorf("effectchain: duplicate node id %q", p.ID)
	}

	factory := c.registry.Lookup(p.Type)
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrUnknownEffect, p.Type)
	}

	runtime, err := factory(c.ctx, p)
	if err != nil {
		return err
	}

	if err := runtime.Configure(c.ctx, p); err != nil {
		return fmt.Errorf("effectchain: configure %q: %w", p.ID, err)
	}

	node := &nodeRuntime{id: p.ID, effectType: p.Type, runtime: runtime}
	node.bypassed.Store(p.Bypassed)

	c.nodes = append(c.nodes, node)
	c.byID[p.ID] = node

	return nil
}

// Configure applies live parameters and the bypass flag to an existing node.
func (c *Chain) Configure(id string, p Params) error {
	node := c.byID[id]
	if node == nil {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	if p.Type != "" && p.Type != node.effectType {
		return fmt.Errorf("effectchain: node %q is %s, not %s", id, node.effectType, p.Type)
	}

	if err := node.runtime.Configure(c.ctx, p); err != nil {
		return fmt.Errorf("effectchain: configure %q: %w", id, err)
	}

	node.bypassed.Store(p.Bypassed)

	return nil
}

// Node returns the Runtime for the given node ID, or nil.
func (c *Chain) Node(id string) Runtime {
	node := c.byID[id]
	if node == nil {
		return nil
	}

	return node.runtime
}

// Process runs every non-bypassed node over the block in place.
func (c *Chain) Process(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("effectchain: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	for _, node := range c.nodes {
		if node.bypassed.Load() {
			continue
		}

		if err := node.runtime.ProcessStereo(left, right); err != nil {
			return fmt.Errorf("effectchain: process %q: %w", node.id, err)
		}
	}

	return nil
}

// Reset clears the processing state of every node. Processing must be stopped.
func (c *Chain) Reset() {
	for _, node := range c.nodes {
		node.runtime.Reset()
	}
}
