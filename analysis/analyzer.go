package analysis

import (
	"fmt"
	"sync"

	"github.com/soniclens/bandscope/logging"
)

// AnalysisResult is the whole-file output for one input: its band
// energy distribution, per-band dynamics, and any warnings raised
// along the way.
type AnalysisResult struct {
	Name       string  `json:"name"`
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Duration   float64 `json:"duration_seconds"`

	Distribution *BandDistribution `json:"distribution"`
	Dynamics     DynamicsProfile   `json:"dynamics"`
	Warnings     []Warning         `json:"warnings,omitempty"`
}

// NamedStream pairs decoded samples with a display name, usually the
// source file path.
type NamedStream struct {
	Name   string
	Stream *SampleStream
}

// Analyzer runs the band power pipeline: downmix, K-weighting,
// windowed power spectra, band mapping, and the derived percentage and
// dynamics views. One Analyzer can be shared across goroutines; all
// per-run state is call-scoped.
type Analyzer struct {
	cfg    *Config
	frames *FrameAnalyzer
	logger logging.Logger
}

// NewAnalyzer builds an analyzer from the configuration; a nil config
// selects the defaults.
func NewAnalyzer(cfg *Config) (*Analyzer, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Analyzer{
		cfg:    cfg,
		frames: NewFrameAnalyzer(cfg),
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "analyzer"}),
	}, nil
}

// Analyze computes the whole-file band distribution and dynamics for
// one stream.
func (a *Analyzer) Analyze(stream *SampleStream, name string) (*AnalysisResult, error) {
	mono, err := Downmix(stream)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", name, err)
	}

	result := &AnalysisResult{
		Name:       name,
		SampleRate: stream.SampleRate,
		Channels:   stream.Channels,
		Duration:   stream.Duration().Seconds(),
	}

	kw := NewKWeighting(stream.SampleRate)
	if !kw.Validated() {
		w := Warning{
			Kind:    ComputationDegraded,
			Message: fmt.Sprintf("sample rate %d Hz is outside the validated set; weighting coefficients are extrapolated", stream.SampleRate),
		}
		result.Warnings = append(result.Warnings, w)
		a.logger.Warn(w.Message, logging.Fields{"name": name, "sample_rate": stream.SampleRate})
	}

	mapper := NewBandMapper(stream.SampleRate, a.frames.FrameSize())

	rawAcc := NewAccumulator()
	tracker := &dynamicsTracker{}
	a.accumulate(mono, mapper, rawAcc, tracker)

	weightedAcc := NewAccumulator()
	a.accumulate(kw.Apply(mono), mapper, weightedAcc, nil)

	result.Distribution = NewBandDistribution(rawAcc, weightedAcc)
	result.Dynamics = tracker.profile(result.Distribution.Raw)

	a.logger.Debug("analysis complete", logging.Fields{
		"name":         name,
		"sample_rate":  stream.SampleRate,
		"total_energy": rawAcc.Total(),
	})
	return result, nil
}

// accumulate drives the frame pipeline over one signal, folding each
// frame's band powers into acc and, when tracker is non-nil, into the
// per-frame dynamics series.
func (a *Analyzer) accumulate(signal []float64, mapper *BandMapper, acc *Accumulator, tracker *dynamicsTracker) {
	bandPowers := make([]float64, NumBands)
	for power := range a.frames.PowerSpectra(signal) {
		mapper.BandPowers(power, bandPowers)
		acc.Add(bandPowers)
		if tracker != nil {
			tracker.observe(bandPowers)
		}
	}
}

// AnalyzeAll runs Analyze over every stream concurrently. Results and
// errors are positionally aligned with the input; a failed input has a
// nil result and non-nil error at its index.
func (a *Analyzer) AnalyzeAll(streams []NamedStream) ([]*AnalysisResult, []error) {
	results := make([]*AnalysisResult, len(streams))
	errs := make([]error, len(streams))

	var wg sync.WaitGroup
	for i, ns := range streams {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = a.Analyze(ns.Stream, ns.Name)
		}()
	}
	wg.Wait()
	return results, errs
}
