package analysis

import "math"

// hann is a symmetric Hann window of fixed size, applied to each frame
// before the transform to reduce spectral leakage.
type hann struct {
	coefficients []float64
}

func newHann(size int) *hann {
	h := &hann{coefficients: make([]float64, size)}
	denominator := float64(size - 1)
	for i := range size {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
	return h
}

func (h *hann) applyInPlace(frame []float64) {
	for i := range frame {
		frame[i] *= h.coefficients[i]
	}
}
