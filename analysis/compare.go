package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Comparison set size bounds. The first input is the base every other
// input is diffed against; above ten inputs the labelled output stops
// being readable.
const (
	MinCompareFiles = 2
	MaxCompareFiles = 10
)

// ComparisonSet holds the analysis results of a multi-file comparison.
// Results[0] is the base.
type ComparisonSet struct {
	Results []*AnalysisResult `json:"results"`
}

// NewComparisonSet validates the input count and wraps the results.
func NewComparisonSet(results []*AnalysisResult) (*ComparisonSet, error) {
	if len(results) < MinCompareFiles || len(results) > MaxCompareFiles {
		return nil, fmt.Errorf("%w: comparison needs %d to %d inputs, got %d",
			ErrInvalidConfiguration, MinCompareFiles, MaxCompareFiles, len(results))
	}
	return &ComparisonSet{Results: results}, nil
}

// Base returns the reference result every other input is diffed against.
func (cs *ComparisonSet) Base() *AnalysisResult { return cs.Results[0] }

// Label returns the single-letter tag for input i: A for the base, then
// B, C, and so on in input order.
func (cs *ComparisonSet) Label(i int) string {
	return string(rune('A' + i))
}

// DiffRows is one input's band-by-band percentage-point difference from
// the base, for both the raw and K-weighted views.
type DiffRows struct {
	Label     string    `json:"label"`
	Raw       []float64 `json:"raw"`
	KWeighted []float64 `json:"k_weighted"`
}

// BaseRelative returns input i's distribution minus the base's. Calling
// it for the base itself returns all-zero rows.
func (cs *ComparisonSet) BaseRelative(i int) DiffRows {
	base := cs.Base().Distribution
	other := cs.Results[i].Distribution
	rows := DiffRows{
		Label:     cs.Label(i),
		Raw:       make([]float64, NumBands),
		KWeighted: make([]float64, NumBands),
	}
	floats.SubTo(rows.Raw, other.Raw, base.Raw)
	floats.SubTo(rows.KWeighted, other.KWeighted, base.KWeighted)
	return rows
}

// CompareStreams analyzes every stream and builds a comparison set. If
// some inputs fail to analyze the comparison proceeds with the
// survivors, as long as at least MinCompareFiles remain; per-input
// errors are returned positionally alongside.
func (a *Analyzer) CompareStreams(streams []NamedStream) (*ComparisonSet, []error, error) {
	if len(streams) < MinCompareFiles || len(streams) > MaxCompareFiles {
		return nil, nil, fmt.Errorf("%w: comparison needs %d to %d inputs, got %d",
			ErrInvalidConfiguration, MinCompareFiles, MaxCompareFiles, len(streams))
	}

	results, errs := a.AnalyzeAll(streams)

	survivors := make([]*AnalysisResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			survivors = append(survivors, r)
		}
	}
	if len(survivors) < MinCompareFiles {
		return nil, errs, fmt.Errorf("%w: only %d of %d inputs analyzed successfully",
			ErrInvalidConfiguration, len(survivors), len(streams))
	}

	set, err := NewComparisonSet(survivors)
	if err != nil {
		return nil, errs, err
	}
	return set, errs, nil
}
