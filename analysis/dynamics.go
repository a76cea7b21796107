package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// DynamicsThresholdPct is the minimum whole-file raw energy share a band
// needs for its dynamics figure to be meaningful. Below it, leakage and
// numeric noise dominate and the value is reported as undefined.
const DynamicsThresholdPct = 0.5

// DynamicsValue is one band's frame-to-frame level variability in dB.
// Defined is false for bands whose overall energy share falls below
// DynamicsThresholdPct.
type DynamicsValue struct {
	DB      float64 `json:"db"`
	Defined bool    `json:"defined"`
}

// DynamicsProfile holds one DynamicsValue per band, indexed like Bands().
type DynamicsProfile [NumBands]DynamicsValue

// dynamicsTracker collects per-frame dB levels of each band's share of
// its frame's total energy. Using the share rather than the absolute
// power makes the measure invariant to overall level, so a sustained
// tone reads near zero regardless of fades in frame count or padding.
type dynamicsTracker struct {
	levels [NumBands][]float64
}

// observe records one frame's band powers. Frames with no energy carry
// no level information and are skipped; bands at exactly zero within an
// otherwise live frame are floored to keep the log finite.
func (t *dynamicsTracker) observe(bandPowers []float64) {
	total := 0.0
	for _, p := range bandPowers {
		total += p
	}
	if total <= 0 {
		return
	}
	for i, p := range bandPowers {
		share := p / total
		if share < 1e-12 {
			share = 1e-12
		}
		t.levels[i] = append(t.levels[i], 10*math.Log10(share))
	}
}

// profile computes the population standard deviation of each band's dB
// series, masking bands whose whole-file raw percentage sits under the
// threshold.
func (t *dynamicsTracker) profile(rawPct []float64) DynamicsProfile {
	var p DynamicsProfile
	for i := range p {
		if rawPct[i] < DynamicsThresholdPct || len(t.levels[i]) == 0 {
			continue
		}
		p[i] = DynamicsValue{
			DB:      stat.PopStdDev(t.levels[i], nil),
			Defined: true,
		}
	}
	return p
}
