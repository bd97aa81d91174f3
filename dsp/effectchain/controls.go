package effectchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/effects/spatial"
)

// Slider is a named, bounded control bound to one parameter setter.
type Slider struct {
	Name string
	Min  float64
	Max  float64

	layout string
	get    func() float64
	set    func(float64) float64
}

// NewSlider creates a slider. get reads the current value; set applies a
// value and returns the effective one.
func NewSlider(name string, lo, hi float64, format string,
	get func() float64, set func(float64) float64,
) (*Slider, error) {
	if name == "" {
		return nil, errors.New("slider: empty name")
	}

	if !(lo < hi) || !core.IsFinite(lo) || !core.IsFinite(hi) {
		return nil, fmt.Errorf("slider %s: range must be finite with min < max: [%g, %g]", name, lo, hi)
	}

	if get == nil || set == nil {
		return nil, fmt.Errorf("slider %s: nil accessor", name)
	}

	if format == "" {
		format = "%g"
	}

	return &Slider{Name: name, Min: lo, Max: hi, layout: format, get: get, set: set}, nil
}

// Value returns the current parameter value.
func (s *Slider) Value() float64 {
	return s.get()
}

// Set clamps v to the slider range, applies it and returns the effective value.
func (s *Slider) Set(v float64) float64 {
	return s.set(core.Clamp(v, s.Min, s.Max))
}

// Normalized returns the current value mapped to [0, 1].
func (s *Slider) Normalized() float64 {
	return core.Clamp((s.Value()-s.Min)/(s.Max-s.Min), 0, 1)
}

// SetNormalized sets the value from a [0, 1] position.
func (s *Slider) SetNormalized(x float64) float64 {
	x = core.Clamp(x, 0, 1)

	return s.Set(s.Min + x*(s.Max-s.Min))
}

// Layout returns the printf layout used by Format.
func (s *Slider) Layout() string {
	return s.layout
}

// Format renders the current value with the slider's printf layout.
func (s *Slider) Format() string {
	return fmt.Sprintf(s.layout, s.Value())
}

// FattenControls is the parameter-setter surface of a fatten processor.
type FattenControls interface {
	Parameters() spatial.FattenParams
	SetTime(time float64) spatial.FattenParams
	SetMix(mix float64) spatial.FattenParams
}

// FattenSliders returns the "Time" and "Mix" sliders for c.
func FattenSliders(c FattenControls) []*Slider {
	timeSlider, _ := NewSlider("Time", spatial.FattenMinTime, spatial.FattenMaxTime, "%0.3f s",
		func() float64 { return c.Parameters().Time },
		func(v float64) float64 { return c.SetTime(v).Time },
	)

	mixSlider, _ := NewSlider("Mix", 0, 1, "%0.2f",
		func() float64 { return c.Parameters().Mix },
		func(v float64) float64 { return c.SetMix(v).Mix },
	)

	return []*Slider{timeSlider, mixSlider}
}

// NodeFattenSliders returns the fatten sliders of the chain node id.
func (c *Chain) NodeFattenSliders(id string) ([]*Slider, error) {
	node := c.byID[id]
	if node == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}

	fx, ok := node.runtime.(interface{ Fatten() *spatial.Fatten })
	if !ok {
		return nil, fmt.Errorf("effectchain: node %q is %s, not %s", id, node.effectType, FattenType)
	}

	return FattenSliders(fx.Fatten()), nil
}
