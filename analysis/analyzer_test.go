package analysis_test

import (
	"errors"
	"math"
	"testing"

	"github.com/soniclens/bandscope/analysis"
	"github.com/soniclens/bandscope/internal/testutil"
)

func newTestAnalyzer(t *testing.T) *analysis.Analyzer {
	t.Helper()
	a, err := analysis.NewAnalyzer(nil)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func analyzeMono(t *testing.T, samples []float64, sampleRate int) *analysis.AnalysisResult {
	t.Helper()
	a := newTestAnalyzer(t)
	result, err := a.Analyze(testutil.MonoStream(samples, sampleRate), "test")
	if err != nil {
		t.Fatal(err)
	}
	return result
}

func TestAnalyzeRejectsInvalidConfig(t *testing.T) {
	_, err := analysis.NewAnalyzer(&analysis.Config{FrameSize: 1000, HopSize: 100})
	if !errors.Is(err, analysis.ErrInvalidConfiguration) {
		t.Fatalf("err = %v, want ErrInvalidConfiguration", err)
	}
}

// A pure tone must land almost entirely in its nominal band; the
// remainder is Hann leakage into immediate neighbors.
func TestAnalyzePureTonePlacement(t *testing.T) {
	tests := []struct {
		freqHz float64
		band   string
	}{
		{100, "BASS"},
		{1000, "UMID"},
		{5000, "PRES"},
	}
	for _, tt := range tests {
		tone := testutil.Sine(tt.freqHz, 44100, 0.5, 2*44100)
		result := analyzeMono(t, tone, 44100)

		idx := analysis.BandIndex(tt.band)
		if got := result.Distribution.Raw[idx]; got < 99 {
			t.Errorf("%v Hz: %s holds %.2f%% of raw energy, want >= 99%%", tt.freqHz, tt.band, got)
		}
		if got := result.Distribution.KWeighted[idx]; got < 99 {
			t.Errorf("%v Hz: %s holds %.2f%% of weighted energy, want >= 99%%", tt.freqHz, tt.band, got)
		}
	}
}

func TestAnalyzePercentagesSumToHundred(t *testing.T) {
	signal := testutil.Mix(
		testutil.Sine(100, 44100, 0.4, 44100),
		testutil.Sine(1000, 44100, 0.3, 44100),
		testutil.Sine(9000, 44100, 0.2, 44100),
	)
	result := analyzeMono(t, signal, 44100)

	for _, view := range [][]float64{result.Distribution.Raw, result.Distribution.KWeighted} {
		sum := 0.0
		for _, v := range view {
			sum += v
		}
		testutil.RequireNear(t, sum, 100, 1e-6)
	}

	diffSum := 0.0
	for _, v := range result.Distribution.Diff {
		diffSum += v
	}
	testutil.RequireNear(t, diffSum, 0, 1e-6)
}

// Weighting boosts presence-range content relative to bass, so in a
// two-tone mix the weighted share moves from BASS toward HMID.
func TestAnalyzeWeightingShiftsBalance(t *testing.T) {
	signal := testutil.Mix(
		testutil.Sine(100, 44100, 0.5, 2*44100),
		testutil.Sine(3000, 44100, 0.5, 2*44100),
	)
	result := analyzeMono(t, signal, 44100)

	bass, hmid := analysis.BandIndex("BASS"), analysis.BandIndex("HMID")
	if result.Distribution.Diff[hmid] <= 0 {
		t.Errorf("Diff[HMID] = %v, want positive", result.Distribution.Diff[hmid])
	}
	if result.Distribution.Diff[bass] >= 0 {
		t.Errorf("Diff[BASS] = %v, want negative", result.Distribution.Diff[bass])
	}
}

func TestAnalyzeSilence(t *testing.T) {
	result := analyzeMono(t, testutil.Silence(44100), 44100)

	for i := range analysis.NumBands {
		if result.Distribution.Raw[i] != 0 || result.Distribution.KWeighted[i] != 0 {
			t.Fatalf("band %d has non-zero share for silence", i)
		}
		if result.Dynamics[i].Defined {
			t.Fatalf("band %d has defined dynamics for silence", i)
		}
	}
}

// A sustained tone has a stable spectral balance, so its band's
// dynamics figure sits near zero dB.
func TestAnalyzeSustainedToneDynamics(t *testing.T) {
	tone := testutil.Sine(1000, 44100, 0.5, 3*44100)
	result := analyzeMono(t, tone, 44100)

	umid := analysis.BandIndex("UMID")
	d := result.Dynamics[umid]
	if !d.Defined {
		t.Fatal("UMID dynamics undefined for a sustained tone")
	}
	if math.Abs(d.DB) > 0.5 {
		t.Fatalf("UMID dynamics = %v dB, want ~0", d.DB)
	}
}

func TestAnalyzeDynamicsMasksQuietBands(t *testing.T) {
	tone := testutil.Sine(1000, 44100, 0.5, 2*44100)
	result := analyzeMono(t, tone, 44100)

	air := analysis.BandIndex("AIR")
	if result.Dynamics[air].Defined {
		t.Fatalf("AIR dynamics defined at %.4f%% share", result.Distribution.Raw[air])
	}
}

func TestAnalyzeStereoDownmixMatchesMono(t *testing.T) {
	tone := testutil.Sine(440, 48000, 0.5, 48000)
	a := newTestAnalyzer(t)

	monoResult, err := a.Analyze(testutil.MonoStream(tone, 48000), "mono")
	if err != nil {
		t.Fatal(err)
	}
	stereoResult, err := a.Analyze(testutil.StereoStream(tone, tone, 48000), "stereo")
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, stereoResult.Distribution.Raw, monoResult.Distribution.Raw, 1e-9)
	if stereoResult.Channels != 2 || monoResult.Channels != 1 {
		t.Fatalf("channel metadata: stereo %d, mono %d", stereoResult.Channels, monoResult.Channels)
	}
}

func TestAnalyzeUnusualRateWarns(t *testing.T) {
	tone := testutil.Sine(1000, 96000, 0.5, 96000)
	result := analyzeMono(t, tone, 96000)

	found := false
	for _, w := range result.Warnings {
		if w.Kind == analysis.ComputationDegraded {
			found = true
		}
	}
	if !found {
		t.Fatal("no degraded-computation warning for 96 kHz input")
	}
}

func TestAnalyzeValidatedRateHasNoWarnings(t *testing.T) {
	tone := testutil.Sine(1000, 48000, 0.5, 48000)
	result := analyzeMono(t, tone, 48000)
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", result.Warnings)
	}
}

func TestAnalyzeRejectsUnsupportedInput(t *testing.T) {
	a := newTestAnalyzer(t)
	_, err := a.Analyze(&analysis.SampleStream{SampleRate: 44100, Channels: 1}, "empty")
	if !errors.Is(err, analysis.ErrUnsupportedInput) {
		t.Fatalf("err = %v, want ErrUnsupportedInput", err)
	}
}

func TestAnalyzeAllKeepsPositions(t *testing.T) {
	a := newTestAnalyzer(t)
	good := testutil.MonoStream(testutil.Sine(440, 44100, 0.5, 44100), 44100)
	bad := &analysis.SampleStream{SampleRate: 44100, Channels: 1}

	results, errs := a.AnalyzeAll([]analysis.NamedStream{
		{Name: "good", Stream: good},
		{Name: "bad", Stream: bad},
		{Name: "also good", Stream: good},
	})

	if results[0] == nil || errs[0] != nil {
		t.Fatalf("index 0: result %v, err %v", results[0], errs[0])
	}
	if results[1] != nil || !errors.Is(errs[1], analysis.ErrUnsupportedInput) {
		t.Fatalf("index 1: result %v, err %v", results[1], errs[1])
	}
	if results[2] == nil || results[2].Name != "also good" {
		t.Fatalf("index 2: %+v", results[2])
	}
}
