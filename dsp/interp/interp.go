package interp

import "fmt"

// Mode selects a fractional-read interpolation algorithm.
type Mode int

const (
	// Hermite is 4-point cubic Hermite interpolation.
	Hermite Mode = iota
	// Linear is 2-point linear interpolation.
	Linear
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case Hermite:
		return "hermite"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode for a name accepted by [Mode.String].
func ParseMode(name string) (Mode, error) {
	switch name {
	case "hermite", "cubic":
		return Hermite, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("interp: unknown mode %q", name)
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Hermite || m == Linear
}

// Taps returns how many samples the mode reads around the read position.
func (m Mode) Taps() int {
	if m == Linear {
		return 2
	}

	return 4
}

// Linear2 interpolates between x0 and x1 at fraction t in [0, 1].
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)

	return ((c3*t+c2)*t+c1)*t + c0
}
