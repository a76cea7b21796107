package testutil

import (
	"math"

	"github.com/soniclens/bandscope/analysis"
)

// Sine generates a deterministic sine wave.
func Sine(freqHz float64, sampleRate int, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / float64(sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Mix sums signals element-wise. All inputs must share a length.
func Mix(signals ...[]float64) []float64 {
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}

// Silence returns an all-zero signal.
func Silence(length int) []float64 {
	return make([]float64, length)
}

// MonoStream wraps samples in a single-channel stream.
func MonoStream(samples []float64, sampleRate int) *analysis.SampleStream {
	return &analysis.SampleStream{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   1,
	}
}

// StereoStream interleaves left and right into a two-channel stream.
// Both channels must share a length.
func StereoStream(left, right []float64, sampleRate int) *analysis.SampleStream {
	samples := make([]float64, 0, 2*len(left))
	for i := range left {
		samples = append(samples, left[i], right[i])
	}
	return &analysis.SampleStream{
		Samples:    samples,
		SampleRate: sampleRate,
		Channels:   2,
	}
}
