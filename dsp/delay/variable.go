package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/interp"
)

const (
	maxVariableFeedback = 0.99
	maxVariableChannels = 64

	// guardSamples covers the Hermite kernel beyond the longest delay.
	guardSamples = 4
)

// VariableOption mutates variable delay construction parameters.
type VariableOption func(*variableConfig) error

type variableConfig struct {
	mode     interp.Mode
	feedback float64
}

// WithVariableMode selects the fractional read interpolation.
func WithVariableMode(mode interp.Mode) VariableOption {
	return func(cfg *variableConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("variable delay interpolation mode is unknown: %v", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithVariableFeedback sets how much of each delayed sample is written back
// into its own line by Process.
func WithVariableFeedback(feedback float64) VariableOption {
	return func(cfg *variableConfig) error {
		if feedback < 0 || feedback > maxVariableFeedback || !core.IsFinite(feedback) {
			return fmt.Errorf("variable delay feedback must be in [0, %g]: %f",
				maxVariableFeedback, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// Variable is a multi-channel interpolating delay addressed in seconds.
//
// All memory is allocated by NewVariable for the declared maximum delay.
// Reads beyond that maximum clamp to it. Not thread-safe.
type Variable struct {
	sampleRate float64
	maxDelay   float64
	maxSamples float64
	feedback   float64
	mode       interp.Mode
	lines      []*Line
}

// NewVariable allocates channels delay lines able to hold maxDelaySeconds of
// audio at sampleRate.
func NewVariable(sampleRate float64, channels int, maxDelaySeconds float64,
	opts ...VariableOption,
) (*Variable, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("variable delay sample rate must be > 0 and finite: %f", sampleRate)
	}

	if channels < 1 || channels > maxVariableChannels {
		return nil, fmt.Errorf("variable delay channels must be in [1, %d]: %d",
			maxVariableChannels, channels)
	}

	if !(maxDelaySeconds > 0) || math.IsInf(maxDelaySeconds, 0) {
		return nil, fmt.Errorf("variable delay max delay must be > 0 and finite: %f", maxDelaySeconds)
	}

	cfg := variableConfig{mode: interp.Hermite}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	maxSamples := maxDelaySeconds * sampleRate
	size := int(math.Ceil(maxSamples)) + guardSamples

	v := &Variable{
		sampleRate: sampleRate,
		maxDelay:   maxDelaySeconds,
		maxSamples: maxSamples,
		feedback:   cfg.feedback,
		mode:       cfg.mode,
		lines:      make([]*Line, channels),
	}

	for ch := range v.lines {
		line, err := New(size, WithMode(cfg.mode))
		if err != nil {
			return nil, err
		}

		v.lines[ch] = line
	}

	return v, nil
}

// Read returns channel's signal offsetSeconds in the past, interpolating
// between samples. The shortest effective delay is one sample.
func (v *Variable) Read(channel int, offsetSeconds float64) float64 {
	return v.lines[channel].ReadFractional(v.samples(offsetSeconds))
}

// Write appends one sample to channel and advances its write head.
func (v *Variable) Write(channel int, sample float64) {
	v.lines[channel].Write(sample)
}

// Process reads channel at offsetSeconds, writes in plus the configured
// feedback of the delayed sample, and returns the delayed sample.
func (v *Variable) Process(channel int, in, offsetSeconds float64) float64 {
	line := v.lines[channel]
	delayed := line.ReadFractional(v.samples(offsetSeconds))
	line.Write(core.FlushDenormals(in + delayed*v.feedback))

	return delayed
}

// Reset silences every channel.
func (v *Variable) Reset() {
	for _, line := range v.lines {
		line.Reset()
	}
}

// SampleRate returns the sample rate in Hz.
func (v *Variable) SampleRate() float64 { return v.sampleRate }

// MaxDelay returns the longest supported delay in seconds.
func (v *Variable) MaxDelay() float64 { return v.maxDelay }

// Channels returns the number of delay lines.
func (v *Variable) Channels() int { return len(v.lines) }

// Feedback returns the self-feedback amount used by Process.
func (v *Variable) Feedback() float64 { return v.feedback }

// Mode returns the interpolation mode.
func (v *Variable) Mode() interp.Mode { return v.mode }

func (v *Variable) samples(offsetSeconds float64) float64 {
	if !(offsetSeconds > 0) {
		return 0
	}

	s := offsetSeconds * v.sampleRate
	if s > v.maxSamples {
		return v.maxSamples
	}

	return s
}
