package analysis

import (
	"fmt"
	"time"
)

// DefaultIntervalSeconds is the timeline segment length used when the
// caller does not specify one.
const DefaultIntervalSeconds = 20

// TimelineOptions controls timeline segmentation. Weighted selects the
// K-weighted percentage view for the per-interval rows instead of the
// raw view.
type TimelineOptions struct {
	IntervalSeconds int  `json:"interval_seconds"`
	Weighted        bool `json:"weighted"`
}

func DefaultTimelineOptions() TimelineOptions {
	return TimelineOptions{IntervalSeconds: DefaultIntervalSeconds}
}

// TimelineFrame is the band percentage distribution of one time
// interval, starting at Start into the stream.
type TimelineFrame struct {
	Start        time.Duration     `json:"start"`
	Distribution *BandDistribution `json:"distribution"`
}

// TimelineResult is the segmented view of one input plus the average
// distribution re-aggregated from the same interval accumulators, so
// the average row is exactly consistent with the intervals it covers.
type TimelineResult struct {
	Name     string            `json:"name"`
	Frames   []TimelineFrame   `json:"frames"`
	Average  *BandDistribution `json:"average"`
	Weighted bool              `json:"weighted"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// AnalyzeTimeline segments the stream into fixed-length intervals and
// computes a band distribution per interval. Analysis frames are
// assigned to intervals by their start position. The final interval may
// be shorter than the rest.
func (a *Analyzer) AnalyzeTimeline(stream *SampleStream, name string, opts TimelineOptions) (*TimelineResult, error) {
	if opts.IntervalSeconds <= 0 {
		return nil, fmt.Errorf("%w: timeline interval must be positive, got %d", ErrInvalidConfiguration, opts.IntervalSeconds)
	}

	mono, err := Downmix(stream)
	if err != nil {
		return nil, fmt.Errorf("timeline %s: %w", name, err)
	}

	result := &TimelineResult{Name: name, Weighted: opts.Weighted}

	kw := NewKWeighting(stream.SampleRate)
	if !kw.Validated() {
		result.Warnings = append(result.Warnings, Warning{
			Kind:    ComputationDegraded,
			Message: fmt.Sprintf("sample rate %d Hz is outside the validated set; weighting coefficients are extrapolated", stream.SampleRate),
		})
	}

	mapper := NewBandMapper(stream.SampleRate, a.frames.FrameSize())
	intervalSamples := opts.IntervalSeconds * stream.SampleRate

	rawAccs := a.accumulateIntervals(mono, mapper, intervalSamples)
	weightedAccs := a.accumulateIntervals(kw.Apply(mono), mapper, intervalSamples)

	totalRaw := NewAccumulator()
	totalWeighted := NewAccumulator()
	for i := range rawAccs {
		totalRaw.Merge(rawAccs[i])
		totalWeighted.Merge(weightedAccs[i])
		result.Frames = append(result.Frames, TimelineFrame{
			Start:        time.Duration(i*opts.IntervalSeconds) * time.Second,
			Distribution: NewBandDistribution(rawAccs[i], weightedAccs[i]),
		})
	}
	result.Average = NewBandDistribution(totalRaw, totalWeighted)

	return result, nil
}

// accumulateIntervals runs the frame pipeline over the signal, routing
// each frame's band powers to the accumulator of the interval its start
// position falls in.
func (a *Analyzer) accumulateIntervals(signal []float64, mapper *BandMapper, intervalSamples int) []*Accumulator {
	numIntervals := (len(signal) + intervalSamples - 1) / intervalSamples
	if numIntervals < 1 {
		numIntervals = 1
	}
	accs := make([]*Accumulator, numIntervals)
	for i := range accs {
		accs[i] = NewAccumulator()
	}

	bandPowers := make([]float64, NumBands)
	pos := 0
	for power := range a.frames.PowerSpectra(signal) {
		mapper.BandPowers(power, bandPowers)
		idx := pos / intervalSamples
		if idx >= numIntervals {
			idx = numIntervals - 1
		}
		accs[idx].Add(bandPowers)
		pos += a.frames.HopSize()
	}
	return accs
}
