package stereo

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fatten/dsp/core"
	vecmath "github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyInput is returned when a channel has no samples.
	ErrEmptyInput = errors.New("stereo: empty input")
	// ErrLengthMismatch is returned when left and right differ in length.
	ErrLengthMismatch = errors.New("stereo: left and right must have equal length")
)

// Report summarizes the stereo image of a signal.
type Report struct {
	Frames int
	// Correlation is the zero-lag Pearson coefficient in [-1, 1].
	Correlation float64
	// SideMidRatio is side energy divided by mid energy.
	SideMidRatio float64
	// LagFrames is the delay of right relative to left at the
	// cross-correlation peak. Positive means right lags left.
	LagFrames  int
	LagSeconds float64
	PeakLeft   float64
	PeakRight  float64
}

func validate(left, right []float64) error {
	if len(left) == 0 || len(right) == 0 {
		return ErrEmptyInput
	}

	if len(left) != len(right) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(left), len(right))
	}

	return nil
}

// Correlation returns the zero-lag correlation coefficient of left and
// right. A channel without variance yields 0.
func Correlation(left, right []float64) (float64, error) {
	if err := validate(left, right); err != nil {
		return 0, err
	}

	c := stat.Correlation(left, right, nil)
	if math.IsNaN(c) {
		return 0, nil
	}

	return c, nil
}

// SideMidRatio returns the ratio of side energy to mid energy. It is 0 for
// silence or a mono signal and +Inf for a purely out-of-phase signal.
func SideMidRatio(left, right []float64) (float64, error) {
	if err := validate(left, right); err != nil {
		return 0, err
	}

	n := len(left)
	mid := make([]float64, n)
	side := make([]float64, n)
	sq := make([]float64, n)

	vecmath.ScaleBlock(mid, left, 0.5)
	vecmath.ScaleBlock(side, right, 0.5)
	vecmath.AddBlockInPlace(mid, side)

	vecmath.ScaleBlock(side, right, -0.5)
	vecmath.ScaleBlock(sq, left, 0.5)
	vecmath.AddBlockInPlace(side, sq)

	vecmath.MulBlock(sq, mid, mid)
	midEnergy := floats.Sum(sq)

	vecmath.MulBlock(sq, side, side)
	sideEnergy := floats.Sum(sq)

	switch {
	case sideEnergy == 0:
		return 0, nil
	case midEnergy == 0:
		return math.Inf(1), nil
	default:
		return sideEnergy / midEnergy, nil
	}
}

// CrossCorrelationLag returns the lag k in [-maxLag, maxLag] that maximizes
// sum(left[n] * right[n+k]). maxLag <= 0 searches every lag.
func CrossCorrelationLag(left, right []float64, maxLag int) (int, error) {
	if err := validate(left, right); err != nil {
		return 0, err
	}

	n := len(left)
	if maxLag <= 0 || maxLag > n-1 {
		maxLag = n - 1
	}

	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, fmt.Errorf("stereo: fft plan: %w", err)
	}

	a := make([]complex128, fftSize)
	b := make([]complex128, fftSize)

	for i := range n {
		a[i] = complex(left[i], 0)
		b[i] = complex(right[i], 0)
	}

	specA := make([]complex128, fftSize)
	specB := make([]complex128, fftSize)

	if err := plan.Forward(specA, a); err != nil {
		return 0, fmt.Errorf("stereo: forward fft: %w", err)
	}

	if err := plan.Forward(specB, b); err != nil {
		return 0, fmt.Errorf("stereo: forward fft: %w", err)
	}

	for i := range specA {
		specA[i] = cmplx.Conj(specA[i]) * specB[i]
	}

	if err := plan.Inverse(a, specA); err != nil {
		return 0, fmt.Errorf("stereo: inverse fft: %w", err)
	}

	best := 0
	bestVal := math.Inf(-1)

	for k := -maxLag; k <= maxLag; k++ {
		idx := k
		if idx < 0 {
			idx += fftSize
		}

		v := real(a[idx])
		// Ties go to the smallest absolute lag.
		if v > bestVal || (v == bestVal && abs(k) < abs(best)) {
			best = k
			bestVal = v
		}
	}

	return best, nil
}

// Analyze measures left/right and reports lags up to maxLagSeconds.
func Analyze(left, right []float64, sampleRate, maxLagSeconds float64) (Report, error) {
	if err := validate(left, right); err != nil {
		return Report{}, err
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return Report{}, fmt.Errorf("stereo: sample rate must be > 0 and finite: %f", sampleRate)
	}

	corr, err := Correlation(left, right)
	if err != nil {
		return Report{}, err
	}

	ratio, err := SideMidRatio(left, right)
	if err != nil {
		return Report{}, err
	}

	maxLag := 0
	if maxLagSeconds > 0 {
		maxLag = max(1, int(math.Round(maxLagSeconds*sampleRate)))
	}

	lag, err := CrossCorrelationLag(left, right, maxLag)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Frames:       len(left),
		Correlation:  corr,
		SideMidRatio: ratio,
		LagFrames:    lag,
		LagSeconds:   float64(lag) / sampleRate,
		PeakLeft:     core.PeakAbs(left),
		PeakRight:    core.PeakAbs(right),
	}, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
