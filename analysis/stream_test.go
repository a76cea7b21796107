package analysis_test

import (
	"errors"
	"testing"
	"time"

	"github.com/soniclens/bandscope/analysis"
	"github.com/soniclens/bandscope/internal/testutil"
)

func TestDownmixMonoCopies(t *testing.T) {
	stream := testutil.MonoStream([]float64{0.1, 0.2, 0.3}, 44100)
	mono, err := analysis.Downmix(stream)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, mono, stream.Samples, 0)

	mono[0] = 9
	if stream.Samples[0] == 9 {
		t.Fatal("downmix aliases the input for mono streams")
	}
}

func TestDownmixAveragesChannels(t *testing.T) {
	left := []float64{1, 1, 1}
	right := []float64{0, 0.5, -1}
	stream := testutil.StereoStream(left, right, 48000)

	mono, err := analysis.Downmix(stream)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, mono, []float64{0.5, 0.75, 0}, 1e-15)
}

func TestDownmixRejectsBadStreams(t *testing.T) {
	tests := []struct {
		name   string
		stream *analysis.SampleStream
	}{
		{"nil", nil},
		{"empty", &analysis.SampleStream{SampleRate: 44100, Channels: 1}},
		{"zero channels", &analysis.SampleStream{Samples: []float64{1}, SampleRate: 44100}},
		{"zero rate", &analysis.SampleStream{Samples: []float64{1}, Channels: 1}},
		{"ragged", &analysis.SampleStream{Samples: []float64{1, 2, 3}, SampleRate: 44100, Channels: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := analysis.Downmix(tt.stream)
			if !errors.Is(err, analysis.ErrUnsupportedInput) {
				t.Fatalf("err = %v, want ErrUnsupportedInput", err)
			}
		})
	}
}

func TestStreamGeometry(t *testing.T) {
	stream := &analysis.SampleStream{
		Samples:    make([]float64, 88200),
		SampleRate: 44100,
		Channels:   2,
	}
	if got := stream.FrameCount(); got != 44100 {
		t.Fatalf("FrameCount = %d, want 44100", got)
	}
	if got := stream.Duration(); got != time.Second {
		t.Fatalf("Duration = %v, want 1s", got)
	}
}
