package analysis

import (
	"context"
	"fmt"
	"time"
)

// SampleStream is a decoded PCM stream: interleaved sample frames (one
// value per channel per time step) plus sample rate and channel count.
// A stream is immutable once built and owned by the pipeline invocation
// that consumes it.
type SampleStream struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	Channels   int       `json:"channels"`
}

// FrameCount returns the number of sample frames in the stream.
func (s *SampleStream) FrameCount() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// Duration returns the stream's play time.
func (s *SampleStream) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.FrameCount()) * time.Second / time.Duration(s.SampleRate)
}

// Decoder turns encoded container data into a uniform SampleStream.
// Format sniffing and codec work live behind this interface; the engine
// never branches on file format itself.
type Decoder interface {
	DecodeFile(ctx context.Context, path string) (*SampleStream, error)
}

// Downmix collapses a multi-channel stream into a single analysis channel
// by averaging channels per frame. The result has exactly FrameCount
// samples at the stream's sample rate.
func Downmix(stream *SampleStream) ([]float64, error) {
	if stream == nil || len(stream.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample stream", ErrUnsupportedInput)
	}
	if stream.Channels <= 0 {
		return nil, fmt.Errorf("%w: stream reports %d channels", ErrUnsupportedInput, stream.Channels)
	}
	if stream.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: stream reports sample rate %d Hz", ErrUnsupportedInput, stream.SampleRate)
	}
	if len(stream.Samples)%stream.Channels != 0 {
		return nil, fmt.Errorf("%w: %d samples do not divide into %d channels", ErrUnsupportedInput, len(stream.Samples), stream.Channels)
	}

	if stream.Channels == 1 {
		mono := make([]float64, len(stream.Samples))
		copy(mono, stream.Samples)
		return mono, nil
	}

	mono := make([]float64, len(stream.Samples)/stream.Channels)
	scale := 1.0 / float64(stream.Channels)
	for i := range mono {
		var sum float64
		base := i * stream.Channels
		for ch := 0; ch < stream.Channels; ch++ {
			sum += stream.Samples[base+ch]
		}
		mono[i] = sum * scale
	}
	return mono, nil
}
