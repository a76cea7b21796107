package analysis

import "gonum.org/v1/gonum/floats"

// Percentages converts accumulated band energies into a percentage
// share per band. A silent accumulator (zero total) yields all zeros
// rather than NaN.
func Percentages(acc *Accumulator) []float64 {
	pct := make([]float64, NumBands)
	if acc.total <= 0 {
		return pct
	}
	scale := 100.0 / acc.total
	for i, e := range acc.energy {
		pct[i] = e * scale
	}
	return pct
}

// BandDistribution holds the per-band percentage shares of a signal's
// spectral energy, measured on the raw signal and on its K-weighted
// counterpart, plus the per-band difference between the two.
type BandDistribution struct {
	Raw       []float64 `json:"raw"`
	KWeighted []float64 `json:"k_weighted"`
	Diff      []float64 `json:"diff"`
}

// NewBandDistribution derives the percentage view from a pair of
// accumulators. Diff is KWeighted minus Raw, band by band.
func NewBandDistribution(raw, weighted *Accumulator) *BandDistribution {
	d := &BandDistribution{
		Raw:       Percentages(raw),
		KWeighted: Percentages(weighted),
		Diff:      make([]float64, NumBands),
	}
	floats.SubTo(d.Diff, d.KWeighted, d.Raw)
	return d
}
