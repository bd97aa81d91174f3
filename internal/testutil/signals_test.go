package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}

	c := DeterministicNoise(43, 1.0, 64)
	if c[0] == a[0] && c[1] == a[1] {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}

		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	RequireSilent(t, Impulse(4, 10))
}

func TestRamp(t *testing.T) {
	r := Ramp(1, 0.5, 4)
	RequireSliceNearlyEqual(t, r, []float64{1, 1.5, 2, 2.5}, 0)
}

func TestDelayed(t *testing.T) {
	x := []float64{1, 2, 3, 4}

	got := Delayed(x, 2)
	want := []float64{0, 0, 1, 2}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Delayed[%d]=%g want=%g", i, got[i], want[i])
		}
	}

	for _, v := range Delayed(x, 9) {
		if v != 0 {
			t.Fatalf("Delayed beyond length should be silent, got %g", v)
		}
	}

	if x[0] != 1 {
		t.Fatal("Delayed modified its input")
	}
}

func TestScaled(t *testing.T) {
	got := Scaled([]float64{1, -2}, -0.5)
	if got[0] != -0.5 || got[1] != 1 {
		t.Fatalf("Scaled=%v", got)
	}
}
