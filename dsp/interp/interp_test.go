package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestHermite4ExactAtIntegerPosition(t *testing.T) {
	// An integer delay must return the stored sample bit-for-bit.
	if got := Hermite4(0, 0.3, -0.7, 0.9, 0.1); got != -0.7 {
		t.Fatalf("got %v want -0.7", got)
	}
}

func TestLinear2(t *testing.T) {
	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("got %v want 2.5", got)
	}

	if got := Linear2(0, 3, 9); got != 3 {
		t.Fatalf("got %v want 3", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Hermite, Linear} {
		got, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q) error = %v", m.String(), err)
		}

		if got != m {
			t.Fatalf("ParseMode(%q) = %v, want %v", m.String(), got, m)
		}
	}

	if _, err := ParseMode("sinc"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestModeValidAndTaps(t *testing.T) {
	if Mode(7).Valid() {
		t.Fatal("Mode(7) should be invalid")
	}

	if Linear.Taps() != 2 || Hermite.Taps() != 4 {
		t.Fatalf("taps: linear=%d hermite=%d", Linear.Taps(), Hermite.Taps())
	}
}
