package effectchain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Factory builds one Runtime instance for a node. Params carries the
// construction-time settings of the node.
type Factory func(ctx Context, params Params) (Runtime, error)

// Registry maps effect type names to their factories. Populate it before
// building chains; registration is not synchronized.
type Registry struct {
	entries map[string]Factory
}

var errDuplicateEffect = errors.New("effect type already registered")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Factory)}
}

// Register adds a factory for effectType.
func (r *Registry) Register(effectType string, factory Factory) error {
	switch {
	case effectType == "":
		return errors.New("effect type is empty")
	case factory == nil:
		return fmt.Errorf("effect %q: factory is nil", effectType)
	}

	if _, taken := r.entries[effectType]; taken {
		return fmt.Errorf("%w: %s", errDuplicateEffect, effectType)
	}

	r.entries[effectType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(effectType string, factory Factory) {
	if err := r.Register(effectType, factory); err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// Lookup returns the factory for effectType, or nil.
func (r *Registry) Lookup(effectType string) Factory {
	return r.entries[effectType]
}

// Types returns the registered effect type names in sorted order.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.entries))
}
