package analysis

import (
	"iter"

	"github.com/mjibson/go-dsp/fft"
)

// FrameAnalyzer windows a mono signal into overlapping frames and
// computes a power spectrum per frame.
type FrameAnalyzer struct {
	frameSize int
	hopSize   int
	window    *hann
}

// NewFrameAnalyzer creates a frame analyzer for the given configuration.
// The configuration must already be validated.
func NewFrameAnalyzer(cfg *Config) *FrameAnalyzer {
	return &FrameAnalyzer{
		frameSize: cfg.FrameSize,
		hopSize:   cfg.HopSize,
		window:    newHann(cfg.FrameSize),
	}
}

// FrameSize returns the FFT frame length in samples.
func (fa *FrameAnalyzer) FrameSize() int { return fa.frameSize }

// HopSize returns the frame advance in samples.
func (fa *FrameAnalyzer) HopSize() int { return fa.hopSize }

// NumBins returns the number of spectrum bins per frame. Bins at or
// above Nyquist are never produced.
func (fa *FrameAnalyzer) NumBins() int { return fa.frameSize / 2 }

// BinWidth returns the frequency resolution in Hz per bin.
func (fa *FrameAnalyzer) BinWidth(sampleRate int) float64 {
	return float64(sampleRate) / float64(fa.frameSize)
}

// PowerSpectra returns a lazy, restartable, finite sequence of per-frame
// power spectra for the signal. The final frame is zero-padded if the
// remaining samples fall short of the frame size, and fully silent
// frames are still emitted so silence depresses band percentages instead
// of being skipped.
//
// Bin power is scaled so that the summed bin power of a frame
// approximates the windowed frame's time-domain energy (Parseval); the
// identical scaling serves the raw and the K-weighted path, so their
// distributions stay directly comparable.
//
// The yielded slice is reused between frames; consumers must copy it if
// they retain it past one iteration.
func (fa *FrameAnalyzer) PowerSpectra(signal []float64) iter.Seq[[]float64] {
	return func(yield func([]float64) bool) {
		frame := make([]float64, fa.frameSize)
		power := make([]float64, fa.NumBins())
		scale := 1.0 / float64(fa.frameSize)

		for pos := 0; pos < len(signal); pos += fa.hopSize {
			end := min(pos+fa.frameSize, len(signal))
			n := copy(frame, signal[pos:end])
			for i := n; i < fa.frameSize; i++ {
				frame[i] = 0
			}
			fa.window.applyInPlace(frame)

			spectrum := fft.FFTReal(frame)

			// DC counts once, interior bins twice for their
			// negative-frequency mirror.
			re, im := real(spectrum[0]), imag(spectrum[0])
			power[0] = (re*re + im*im) * scale
			for k := 1; k < len(power); k++ {
				re, im = real(spectrum[k]), imag(spectrum[k])
				power[k] = 2 * (re*re + im*im) * scale
			}

			if !yield(power) {
				return
			}
		}
	}
}
