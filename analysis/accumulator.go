package analysis

// Accumulator sums per-frame band energies over the course of an
// analysis pass. The zero value is not usable; call NewAccumulator.
type Accumulator struct {
	energy []float64
	total  float64
}

func NewAccumulator() *Accumulator {
	return &Accumulator{energy: make([]float64, NumBands)}
}

// Add folds one frame's band energies into the running totals.
func (a *Accumulator) Add(bandPowers []float64) {
	for i, p := range bandPowers {
		a.energy[i] += p
		a.total += p
	}
}

// Merge folds another accumulator into this one. Used when
// re-aggregating timeline intervals into a whole-file average.
func (a *Accumulator) Merge(other *Accumulator) {
	for i, p := range other.energy {
		a.energy[i] += p
	}
	a.total += other.total
}

// Total returns the summed energy across all bands.
func (a *Accumulator) Total() float64 { return a.total }

// BandMapper projects power spectrum bins onto the fixed band table for
// one (sample rate, frame size) pair. Band edges are mapped to bin
// indices by truncation, so a bin belongs to the band whose frequency
// range contains the bin's lower edge. Bands entirely above Nyquist end
// up with empty ranges and accumulate nothing.
type BandMapper struct {
	ranges [NumBands][2]int
}

func NewBandMapper(sampleRate, frameSize int) *BandMapper {
	numBins := frameSize / 2
	binWidth := float64(sampleRate) / float64(frameSize)
	m := &BandMapper{}
	for i, b := range bandTable {
		low := int(b.LowHz / binWidth)
		var high int
		if b.HighHz > float64(sampleRate)/2 {
			high = numBins
		} else {
			high = int(b.HighHz / binWidth)
		}
		low = min(low, numBins)
		high = min(high, numBins)
		m.ranges[i] = [2]int{low, high}
	}
	return m
}

// BandPowers sums the power spectrum into per-band energies. dst must
// have length NumBands; it is overwritten and returned.
func (m *BandMapper) BandPowers(power, dst []float64) []float64 {
	for i, r := range m.ranges {
		sum := 0.0
		for k := r[0]; k < r[1]; k++ {
			sum += power[k]
		}
		dst[i] = sum
	}
	return dst
}
