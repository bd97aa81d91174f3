package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-fatten/dsp/interp"
)

func TestNewVariableValidation(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate float64
		channels   int
		maxDelay   float64
		opts       []VariableOption
	}{
		{name: "zero rate", sampleRate: 0, channels: 2, maxDelay: 0.1},
		{name: "nan rate", sampleRate: math.NaN(), channels: 2, maxDelay: 0.1},
		{name: "no channels", sampleRate: 48000, channels: 0, maxDelay: 0.1},
		{name: "too many channels", sampleRate: 48000, channels: 65, maxDelay: 0.1},
		{name: "zero delay", sampleRate: 48000, channels: 2, maxDelay: 0},
		{name: "inf delay", sampleRate: 48000, channels: 2, maxDelay: math.Inf(1)},
		{
			name: "feedback too high", sampleRate: 48000, channels: 2, maxDelay: 0.1,
			opts: []VariableOption{WithVariableFeedback(1)},
		},
		{
			name: "unknown mode", sampleRate: 48000, channels: 2, maxDelay: 0.1,
			opts: []VariableOption{WithVariableMode(interp.Mode(9))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewVariable(tt.sampleRate, tt.channels, tt.maxDelay, tt.opts...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestVariableDefaults(t *testing.T) {
	v, err := NewVariable(1000, 2, 0.1)
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	if v.Channels() != 2 || v.SampleRate() != 1000 || v.MaxDelay() != 0.1 {
		t.Fatalf("unexpected config: channels=%d rate=%g max=%g", v.Channels(), v.SampleRate(), v.MaxDelay())
	}

	if v.Feedback() != 0 || v.Mode() != interp.Hermite {
		t.Fatalf("unexpected defaults: feedback=%g mode=%v", v.Feedback(), v.Mode())
	}

	if v.lines[0].MaxFractionalDelay() < 100 {
		t.Fatalf("line too short for max delay: %g", v.lines[0].MaxFractionalDelay())
	}
}

func TestVariableImpulseAtOffset(t *testing.T) {
	const sampleRate = 1000.0

	v, err := NewVariable(sampleRate, 1, 0.1)
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	out := make([]float64, 80)
	for i := range out {
		in := 0.0
		if i == 3 {
			in = 1
		}

		out[i] = v.Process(0, in, 0.05)
	}

	for i, got := range out {
		want := 0.0
		if i == 53 {
			want = 1
		}

		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("sample %d: got=%g want=%g", i, got, want)
		}
	}
}

func TestVariableChannelsAreIndependent(t *testing.T) {
	v, err := NewVariable(1000, 2, 0.01)
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		v.Write(0, 1)
		v.Write(1, -1)
	}

	if got := v.Read(0, 0.005); got != 1 {
		t.Fatalf("channel 0: got %v want 1", got)
	}

	if got := v.Read(1, 0.005); got != -1 {
		t.Fatalf("channel 1: got %v want -1", got)
	}
}

func TestVariableReadClampsToMaxDelay(t *testing.T) {
	v, err := NewVariable(1000, 1, 0.01)
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	for i := 0; i < 20; i++ {
		v.Write(0, float64(i))
	}

	if got, want := v.Read(0, 1.0), v.Read(0, 0.01); got != want {
		t.Fatalf("clamped read: got %v want %v", got, want)
	}

	if got, want := v.Read(0, -1), v.Read(0, 0.001); got != want {
		t.Fatalf("negative offset: got %v want %v", got, want)
	}
}

func TestVariableFeedbackRepeats(t *testing.T) {
	v, err := NewVariable(1000, 1, 0.01, WithVariableFeedback(0.5))
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	out := make([]float64, 40)
	for i := range out {
		in := 0.0
		if i == 0 {
			in = 1
		}

		out[i] = v.Process(0, in, 0.01)
	}

	for _, tc := range []struct {
		idx  int
		want float64
	}{{10, 1}, {20, 0.5}, {30, 0.25}} {
		if math.Abs(out[tc.idx]-tc.want) > 1e-12 {
			t.Fatalf("repeat at %d: got=%g want=%g", tc.idx, out[tc.idx], tc.want)
		}
	}
}

func TestVariableReset(t *testing.T) {
	v, err := NewVariable(1000, 2, 0.01)
	if err != nil {
		t.Fatalf("NewVariable() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		v.Write(0, 1)
		v.Write(1, 1)
	}

	v.Reset()

	for ch := 0; ch < 2; ch++ {
		if got := v.Read(ch, 0.005); got != 0 {
			t.Fatalf("channel %d after reset: got %v want 0", ch, got)
		}
	}
}
