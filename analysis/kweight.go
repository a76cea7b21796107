package analysis

import "math"

// Analog prototype parameters for the two K-weighting stages defined by
// ITU-R BS.1770-4: a high-frequency shelf modelling the acoustic effect
// of the head, and the RLB high-pass removing subsonic content. Running
// these through the bilinear transform at 48 kHz reproduces the
// standard's published Table 1 and Table 2 coefficients.
const (
	shelfFreqHz = 1681.974450955533
	shelfGainDB = 3.999843853973347
	shelfQ      = 0.7071752369554196
	shelfVbExp  = 0.4996667741545416

	highpassFreqHz = 38.13547087602444
	highpassQ      = 0.5003270373238773
)

// validatedRates are the sample rates the standard's coefficient tables
// were derived and verified for.
var validatedRates = map[int]bool{
	44100: true,
	48000: true,
}

// biquad holds normalized second-order filter coefficients (a0 == 1).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
}

// biquadState is the transposed direct form II delay state for one
// biquad stage.
type biquadState struct {
	z1, z2 float64
}

func (s *biquadState) process(c *biquad, in float64) float64 {
	out := c.b0*in + s.z1
	s.z1 = c.b1*in - c.a1*out + s.z2
	s.z2 = c.b2*in - c.a2*out
	return out
}

// KWeighting is the two-stage ITU-R BS.1770-4 perceptual weighting
// filter designed for one specific sample rate.
type KWeighting struct {
	sampleRate int
	shelf      biquad
	highpass   biquad
}

// NewKWeighting designs both stages for the given sample rate with the
// bilinear transform, generalizing the standard's fixed-rate tables to
// arbitrary rates. Rates outside {44100, 48000} still get a coefficient
// set, but Validated reports false so callers can surface a warning.
func NewKWeighting(sampleRate int) *KWeighting {
	fs := float64(sampleRate)

	k := math.Tan(math.Pi * shelfFreqHz / fs)
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, shelfVbExp)
	a0 := 1 + k/shelfQ + k*k
	shelf := biquad{
		b0: (vh + vb*k/shelfQ + k*k) / a0,
		b1: 2 * (k*k - vh) / a0,
		b2: (vh - vb*k/shelfQ + k*k) / a0,
		a1: 2 * (k*k - 1) / a0,
		a2: (1 - k/shelfQ + k*k) / a0,
	}

	// The standard publishes the RLB feedforward side unnormalized
	// (b = {1, -2, 1}); only the feedback side is divided by a0.
	k = math.Tan(math.Pi * highpassFreqHz / fs)
	a0 = 1 + k/highpassQ + k*k
	highpass := biquad{
		b0: 1,
		b1: -2,
		b2: 1,
		a1: 2 * (k*k - 1) / a0,
		a2: (1 - k/highpassQ + k*k) / a0,
	}

	return &KWeighting{
		sampleRate: sampleRate,
		shelf:      shelf,
		highpass:   highpass,
	}
}

// SampleRate returns the rate the filter was designed for.
func (kw *KWeighting) SampleRate() int { return kw.sampleRate }

// Validated reports whether the filter's sample rate is one the standard
// publishes verified coefficients for.
func (kw *KWeighting) Validated() bool { return validatedRates[kw.sampleRate] }

// Apply runs both stages over the signal in sample order and returns the
// weighted copy. The output has the same length as the input. Filter
// delay state is scoped entirely to this call; nothing persists between
// invocations.
func (kw *KWeighting) Apply(signal []float64) []float64 {
	out := make([]float64, len(signal))
	var shelfState, highpassState biquadState
	for i, x := range signal {
		out[i] = highpassState.process(&kw.highpass, shelfState.process(&kw.shelf, x))
	}
	return out
}
