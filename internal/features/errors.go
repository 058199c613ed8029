package features

import (
	"errors"
	"fmt"
)

// ErrEmptyLabel reports a label image with no positive labels. Extraction
// refuses to produce a zero-row table; callers that consider an empty mask
// valid should check for this error explicitly.
var ErrEmptyLabel = errors.New("label image contains no positive labels")

// ShapeMismatchError reports an intensity channel whose dimensions differ
// from the label image.
type ShapeMismatchError struct {
	Channel    string // which input disagrees ("nucleus", "cytoplasm")
	WantWidth  int
	WantHeight int
	GotWidth   int
	GotHeight  int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s channel shape %dx%d does not match label image shape %dx%d",
		e.Channel, e.GotWidth, e.GotHeight, e.WantWidth, e.WantHeight)
}

// FeatureComputationError wraps a failure inside one feature group. The
// aggregator performs no retries and suppresses no partial results: the
// first failing group aborts the call and its error arrives here unmodified.
type FeatureComputationError struct {
	Group string // failing group, e.g. "morphometry" or "cytoplasm intensity"
	Err   error
}

func (e *FeatureComputationError) Error() string {
	return fmt.Sprintf("computing %s features: %v", e.Group, e.Err)
}

func (e *FeatureComputationError) Unwrap() error { return e.Err }
