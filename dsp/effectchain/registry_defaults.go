package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-fatten/dsp/effects/spatial"
	"github.com/cwbudde/algo-fatten/dsp/interp"
)

// FattenType is the registry name of the fatten effect.
const FattenType = "fatten"

// DefaultRegistry returns a Registry pre-populated with the built-in effect runtimes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(FattenType, newFattenRuntime)

	return r
}

// fattenRuntime adapts spatial.Fatten to the chain. Numeric params "time"
// and "mix" are live; "feedback", "maxDelay" and the string param "interp"
// are fixed at construction.
type fattenRuntime struct {
	fx *spatial.Fatten
}

func newFattenRuntime(ctx Context, p Params) (Runtime, error) {
	mode, err := interp.ParseMode(p.GetStr("interp", interp.Hermite.String()))
	if err != nil {
		return nil, fmt.Errorf("fatten node %q: %w", p.ID, err)
	}

	opts := []spatial.FattenOption{
		spatial.WithFattenInterpolation(mode),
		spatial.WithFattenFeedback(p.GetNum("feedback", 0)),
		spatial.WithFattenMaxDelay(p.GetNum("maxDelay", spatial.FattenMaxTime)),
	}
	if ctx.BlockSize > 0 {
		opts = append(opts, spatial.WithFattenBlockSize(ctx.BlockSize))
	}

	fx, err := spatial.NewFatten(ctx.SampleRate, opts...)
	if err != nil {
		return nil, fmt.Errorf("fatten node %q: %w", p.ID, err)
	}

	return &fattenRuntime{fx: fx}, nil
}

func (r *fattenRuntime) Configure(_ Context, p Params) error {
	cur := r.fx.Parameters()
	r.fx.SetParameters(p.GetNum("time", cur.Time), p.GetNum("mix", cur.Mix))

	return nil
}

func (r *fattenRuntime) ProcessStereo(left, right []float64) error {
	return r.fx.ProcessStereoInPlace(left, right)
}

func (r *fattenRuntime) Reset() {
	r.fx.Reset()
}

// Fatten returns the underlying processor for direct control.
func (r *fattenRuntime) Fatten() *spatial.Fatten {
	return r.fx
}
