package analysis

import "errors"

// Error kinds surfaced by the engine. Conditions that merely degrade
// accuracy are reported as Warnings, never as errors.
var (
	// ErrUnsupportedInput marks sample streams the pipeline cannot
	// analyze, such as zero-length or zero-channel input.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrInvalidConfiguration marks caller mistakes: bad frame/hop
	// sizes, a comparison set outside 2..10 entries, or a non-positive
	// timeline interval.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WarningKind classifies non-fatal advisories.
type WarningKind string

// ComputationDegraded flags results computed under conditions the
// underlying standard has not validated, e.g. K-weighting at an unusual
// sample rate.
const ComputationDegraded WarningKind = "computation_degraded"

// Warning is a non-fatal advisory attached to an analysis result.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}
