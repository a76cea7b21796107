package analysis

import (
	"math"
	"testing"
)

// sineAt is a local helper; external-package tests use the shared
// testutil generators instead.
func sineAt(freqHz float64, sampleRate int, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / float64(sampleRate)
	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}
	return out
}

func energy(signal []float64) float64 {
	sum := 0.0
	for _, v := range signal {
		sum += v * v
	}
	return sum
}

// The bilinear design at 48 kHz must reproduce the coefficient tables
// published in ITU-R BS.1770-4.
func TestKWeightingReferenceCoefficients48k(t *testing.T) {
	kw := NewKWeighting(48000)

	wantShelf := biquad{
		b0: 1.53512485958697,
		b1: -2.69169618940638,
		b2: 1.19839281085285,
		a1: -1.69065929318241,
		a2: 0.73248077421585,
	}
	wantHighpass := biquad{
		b0: 1.0,
		b1: -2.0,
		b2: 1.0,
		a1: -1.99004745483398,
		a2: 0.99007225036621,
	}

	checkBiquad(t, "shelf", kw.shelf, wantShelf)
	checkBiquad(t, "highpass", kw.highpass, wantHighpass)
}

func checkBiquad(t *testing.T, name string, got, want biquad) {
	t.Helper()
	pairs := [][2]float64{
		{got.b0, want.b0}, {got.b1, want.b1}, {got.b2, want.b2},
		{got.a1, want.a1}, {got.a2, want.a2},
	}
	for i, p := range pairs {
		if math.Abs(p[0]-p[1]) > 1e-6 {
			t.Errorf("%s coefficient %d: got %.14f, want %.14f", name, i, p[0], p[1])
		}
	}
}

func TestKWeightingValidatedRates(t *testing.T) {
	tests := []struct {
		rate int
		want bool
	}{
		{44100, true},
		{48000, true},
		{22050, false},
		{96000, false},
		{192000, false},
	}
	for _, tt := range tests {
		if got := NewKWeighting(tt.rate).Validated(); got != tt.want {
			t.Errorf("Validated(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

// The combined filter has roughly +0.69 dB gain at 1 kHz (the constant
// the LKFS formula offsets by), so the energy ratio lands near 1.17.
func TestKWeightingGainAt1kHz(t *testing.T) {
	kw := NewKWeighting(48000)
	in := sineAt(1000, 48000, 48000)
	out := kw.Apply(in)

	// Skip the first quarter to let the filter settle.
	ratio := energy(out[12000:]) / energy(in[12000:])
	if ratio < 1.10 || ratio > 1.25 {
		t.Fatalf("1 kHz energy ratio = %v, want ~1.17", ratio)
	}
}

// The RLB stage removes subsonic content, so a tone well below its
// corner loses most of its energy.
func TestKWeightingLowFrequencyAttenuation(t *testing.T) {
	kw := NewKWeighting(48000)
	in := sineAt(10, 48000, 96000)
	out := kw.Apply(in)

	ratio := energy(out[48000:]) / energy(in[48000:])
	if ratio > 0.05 {
		t.Fatalf("10 Hz energy ratio = %v, want < 0.05", ratio)
	}
}

func TestKWeightingRejectsDC(t *testing.T) {
	kw := NewKWeighting(44100)
	in := make([]float64, 44100)
	for i := range in {
		in[i] = 1.0
	}
	out := kw.Apply(in)

	tail := out[len(out)/2:]
	if e := energy(tail) / float64(len(tail)); e > 1e-6 {
		t.Fatalf("steady-state DC power = %v, want ~0", e)
	}
}

func TestKWeightingApplyIsStateless(t *testing.T) {
	kw := NewKWeighting(44100)
	in := sineAt(440, 44100, 4096)

	first := kw.Apply(in)
	second := kw.Apply(in)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("outputs diverge at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestKWeightingOutputLength(t *testing.T) {
	kw := NewKWeighting(44100)
	if got := len(kw.Apply(make([]float64, 123))); got != 123 {
		t.Fatalf("output length = %d, want 123", got)
	}
	if got := len(kw.Apply(nil)); got != 0 {
		t.Fatalf("output length for nil input = %d, want 0", got)
	}
}
