package spatial

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fatten/dsp/core"
	"github.com/cwbudde/algo-fatten/dsp/delay"
	"github.com/cwbudde/algo-fatten/dsp/interp"
	vecmath "github.com/cwbudde/algo-vecmath"
)

const (
	// FattenMinTime is the shortest cross-feed delay in seconds.
	FattenMinTime = 0.03
	// FattenMaxTime is the longest cross-feed delay in seconds.
	FattenMaxTime = 0.10

	defaultFattenTime      = 0.1
	defaultFattenMix       = 0.5
	defaultFattenBlockSize = core.DefaultBlockSize

	maxFattenFeedback  = 0.99
	maxFattenMaxDelay  = 10.0
	maxFattenBlockSize = 1 << 16

	fattenLeft  = 0
	fattenRight = 1
)

// FattenParams is one immutable parameter snapshot.
type FattenParams struct {
	// Time is the cross-feed delay in seconds, in [FattenMinTime, FattenMaxTime].
	Time float64
	// Mix is the wet weight in [0, 1].
	Mix float64
}

// Dry returns the dry weight, 1 - Mix.
func (p FattenParams) Dry() float64 { return 1 - p.Mix }

// clamped returns p with each field limited to its range. NaN fields are
// replaced by the matching field of fallback.
func (p FattenParams) clamped(fallback FattenParams) FattenParams {
	if math.IsNaN(p.Time) {
		p.Time = fallback.Time
	}

	if math.IsNaN(p.Mix) {
		p.Mix = fallback.Mix
	}

	p.Time = core.Clamp(p.Time, FattenMinTime, FattenMaxTime)
	p.Mix = core.Clamp(p.Mix, 0, 1)

	return p
}

// FattenOption mutates fatten construction parameters.
type FattenOption func(*fattenConfig) error

type fattenConfig struct {
	params    FattenParams
	maxDelay  float64
	feedback  float64
	mode      interp.Mode
	blockSize int
}

func defaultFattenConfig() fattenConfig {
	return fattenConfig{
		params:    FattenParams{Time: defaultFattenTime, Mix: defaultFattenMix},
		maxDelay:  FattenMaxTime,
		mode:      interp.Hermite,
		blockSize: defaultFattenBlockSize,
	}
}

// WithFattenTime sets the initial cross-feed delay in seconds.
func WithFattenTime(seconds float64) FattenOption {
	return func(cfg *fattenConfig) error {
		if seconds < FattenMinTime || seconds > FattenMaxTime || !core.IsFinite(seconds) {
			return fmt.Errorf("fatten time must be in [%g, %g]: %f",
				FattenMinTime, FattenMaxTime, seconds)
		}

		cfg.params.Time = seconds

		return nil
	}
}

// WithFattenMix sets the initial wet weight.
func WithFattenMix(mix float64) FattenOption {
	return func(cfg *fattenConfig) error {
		if mix < 0 || mix > 1 || !core.IsFinite(mix) {
			return fmt.Errorf("fatten mix must be in [0, 1]: %f", mix)
		}

		cfg.params.Mix = mix

		return nil
	}
}

// WithFattenMaxDelay sets how many seconds the delay lines are allocated
// for. It must cover FattenMaxTime. The default is FattenMaxTime.
func WithFattenMaxDelay(seconds float64) FattenOption {
	return func(cfg *fattenConfig) error {
		if seconds < FattenMaxTime || seconds > maxFattenMaxDelay || !core.IsFinite(seconds) {
			return fmt.Errorf("fatten max delay must be in [%g, %g]: %f",
				FattenMaxTime, maxFattenMaxDelay, seconds)
		}

		cfg.maxDelay = seconds

		return nil
	}
}

// WithFattenFeedback sets how much of each delay line's output is written
// back into the same line. The default is 0.
func WithFattenFeedback(feedback float64) FattenOption {
	return func(cfg *fattenConfig) error {
		if feedback < 0 || feedback > maxFattenFeedback || !core.IsFinite(feedback) {
			return fmt.Errorf("fatten feedback must be in [0, %g]: %f",
				maxFattenFeedback, feedback)
		}

		cfg.feedback = feedback

		return nil
	}
}

// WithFattenInterpolation selects the fractional delay interpolation.
func WithFattenInterpolation(mode interp.Mode) FattenOption {
	return func(cfg *fattenConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("fatten interpolation mode is unknown: %v", mode)
		}

		cfg.mode = mode

		return nil
	}
}

// WithFattenBlockSize sets the scratch size used by the block methods.
// Longer blocks are processed in chunks of this size.
func WithFattenBlockSize(frames int) FattenOption {
	return func(cfg *fattenConfig) error {
		if frames < 1 || frames > maxFattenBlockSize {
			return fmt.Errorf("fatten block size must be in [1, %d]: %d",
				maxFattenBlockSize, frames)
		}

		cfg.blockSize = frames

		return nil
	}
}

// Fatten widens a stereo image by cross-feeding a delayed copy of each
// channel into the opposite channel:
//
//	L_out = L*(1-mix) + delay(R, time)*mix
//	R_out = R*(1-mix) + delay(L, time)*mix
//
// Parameters may be changed from any goroutine at any time. They are
// published as a single snapshot, so processing never sees a time from one
// update and a mix from another. The Process methods and Reset must be
// called from one goroutine; they never lock or allocate.
type Fatten struct {
	sampleRate float64
	params     atomic.Pointer[FattenParams]
	lines      *delay.Variable

	wetL []float64
	wetR []float64
	dry  []float64
}

// NewFatten creates a fatten processor with the default parameters
// (time 0.1 s, mix 0.5) and optional overrides.
func NewFatten(sampleRate float64, opts ...FattenOption) (*Fatten, error) {
	if !core.ValidSampleRate(sampleRate) {
		return nil, fmt.Errorf("fatten sample rate must be > 0 and finite: %f", sampleRate)
	}

	cfg := defaultFattenConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	lines, err := delay.NewVariable(sampleRate, 2, cfg.maxDelay,
		delay.WithVariableMode(cfg.mode),
		delay.WithVariableFeedback(cfg.feedback),
	)
	if err != nil {
		return nil, fmt.Errorf("fatten delay line: %w", err)
	}

	f := &Fatten{
		sampleRate: sampleRate,
		lines:      lines,
		wetL:       make([]float64, cfg.blockSize),
		wetR:       make([]float64, cfg.blockSize),
		dry:        make([]float64, cfg.blockSize),
	}

	p := cfg.params
	f.params.Store(&p)

	return f, nil
}

// Parameters returns the current parameter snapshot.
func (f *Fatten) Parameters() FattenParams {
	return *f.params.Load()
}

// SetParameters publishes time and mix as one snapshot and returns the
// effective values. Out-of-range values are clamped; a NaN keeps the
// current value of that parameter.
func (f *Fatten) SetParameters(time, mix float64) FattenParams {
	next := FattenParams{Time: time, Mix: mix}.clamped(f.Parameters())
	f.params.Store(&next)

	return next
}

// SetTime updates only the delay time, keeping the mix of the snapshot it
// replaces, and returns the effective parameters.
func (f *Fatten) SetTime(time float64) FattenParams {
	return f.update(func(p FattenParams) FattenParams {
		p.Time = time
		return p
	})
}

// SetMix updates only the wet weight, keeping the time of the snapshot it
// replaces, and returns the effective parameters.
func (f *Fatten) SetMix(mix float64) FattenParams {
	return f.update(func(p FattenParams) FattenParams {
		p.Mix = mix
		return p
	})
}

func (f *Fatten) update(edit func(FattenParams) FattenParams) FattenParams {
	for {
		old := f.params.Load()

		next := edit(*old).clamped(*old)
		if f.params.CompareAndSwap(old, &next) {
			return next
		}
	}
}

// ProcessStereo processes one stereo frame.
func (f *Fatten) ProcessStereo(left, right float64) (float64, float64) {
	p := f.params.Load()
	dry := p.Dry()

	delayedL := f.lines.Process(fattenLeft, left, p.Time)
	delayedR := f.lines.Process(fattenRight, right, p.Time)

	return left*dry + delayedR*p.Mix, right*dry + delayedL*p.Mix
}

// ProcessStereoInPlace processes paired left/right buffers in place. One
// parameter snapshot is used for the whole block. Both buffers must have
// the same length.
func (f *Fatten) ProcessStereoInPlace(left, right []float64) error {
	if len(left) != len(right) {
		return fmt.Errorf("fatten: left and right buffers must have equal length: %d != %d",
			len(left), len(right))
	}

	p := *f.params.Load()
	chunk := len(f.dry)

	for start := 0; start < len(left); start += chunk {
		end := min(start+chunk, len(left))
		f.processChunk(p, left[start:end], right[start:end])
	}

	return nil
}

func (f *Fatten) processChunk(p FattenParams, left, right []float64) {
	n := len(left)
	wetL := f.wetL[:n]
	wetR := f.wetR[:n]
	dry := f.dry[:n]

	// The opposite channel's delayed signal becomes each side's wet part.
	for i := range left {
		wetR[i] = f.lines.Process(fattenLeft, left[i], p.Time)
		wetL[i] = f.lines.Process(fattenRight, right[i], p.Time)
	}

	vecmath.ScaleBlock(dry, left, p.Dry())
	vecmath.ScaleBlock(left, wetL, p.Mix)
	vecmath.AddBlockInPlace(left, dry)

	vecmath.ScaleBlock(dry, right, p.Dry())
	vecmath.ScaleBlock(right, wetR, p.Mix)
	vecmath.AddBlockInPlace(right, dry)
}

// ProcessInterleavedInPlace processes an interleaved stereo buffer
// (L, R, L, R, ...) in place. The buffer length must be even.
func (f *Fatten) ProcessInterleavedInPlace(buf []float64) error {
	if len(buf)%2 != 0 {
		return fmt.Errorf("fatten: interleaved buffer length must be even: %d", len(buf))
	}

	p := f.params.Load()
	dry := p.Dry()

	for i := 0; i < len(buf); i += 2 {
		left, right := buf[i], buf[i+1]
		delayedL := f.lines.Process(fattenLeft, left, p.Time)
		delayedR := f.lines.Process(fattenRight, right, p.Time)
		buf[i] = left*dry + delayedR*p.Mix
		buf[i+1] = right*dry + delayedL*p.Mix
	}

	return nil
}

// ProcessMonoInPlace copies a mono input into both left and right, then
// processes them. All three buffers must have the same length.
func (f *Fatten) ProcessMonoInPlace(in, left, right []float64) error {
	if len(in) != len(left) || len(in) != len(right) {
		return fmt.Errorf("fatten: mono input and stereo outputs must have equal length: %d, %d, %d",
			len(in), len(left), len(right))
	}

	copy(left, in)
	copy(right, in)

	return f.ProcessStereoInPlace(left, right)
}

// Reset silences both delay lines so a restarted stream does not replay
// the previous tail. It must not run concurrently with the Process methods.
func (f *Fatten) Reset() {
	f.lines.Reset()
}

// SampleRate returns the sample rate in Hz.
func (f *Fatten) SampleRate() float64 { return f.sampleRate }

// MaxDelay returns the delay-line allocation in seconds.
func (f *Fatten) MaxDelay() float64 { return f.lines.MaxDelay() }

// Feedback returns the delay-line self-feedback amount.
func (f *Fatten) Feedback() float64 { return f.lines.Feedback() }

// Interpolation returns the fractional delay interpolation mode.
func (f *Fatten) Interpolation() interp.Mode { return f.lines.Mode() }

// BlockSize returns the chunk size used by the block methods.
func (f *Fatten) BlockSize() int { return len(f.dry) }
