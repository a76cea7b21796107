package analysis

import "fmt"

// Config holds the spectral analysis parameters.
type Config struct {
	// FrameSize is the FFT frame length in samples. Must be a power of
	// two.
	FrameSize int `json:"frame_size"`
	// HopSize is the step between consecutive frames in samples.
	HopSize int `json:"hop_size"`
}

// DefaultConfig returns the calibrated defaults: 4096-sample frames with
// 50% overlap. These are tuned so that pure test tones land almost
// entirely inside their nominal band at the common music sample rates.
func DefaultConfig() *Config {
	return &Config{
		FrameSize: 4096,
		HopSize:   2048,
	}
}

// MinFrameSize is the smallest usable FFT frame. Below it the window
// degenerates and the spectrum has no usable band resolution.
const MinFrameSize = 16

// Validate checks the configuration for values the pipeline cannot run
// with.
func (c *Config) Validate() error {
	if c.FrameSize < MinFrameSize || c.FrameSize&(c.FrameSize-1) != 0 {
		return fmt.Errorf("%w: frame size must be a power of two of at least %d, got %d", ErrInvalidConfiguration, MinFrameSize, c.FrameSize)
	}
	if c.HopSize <= 0 || c.HopSize > c.FrameSize {
		return fmt.Errorf("%w: hop size must be between 1 and the frame size, got %d", ErrInvalidConfiguration, c.HopSize)
	}
	return nil
}
