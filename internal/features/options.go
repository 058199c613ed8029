package features

import "fmt"

// Options controls which feature groups ExtractNuclearFeatures computes and
// the parameters of the boundary and mask derivations.
type Options struct {
	// FSDSampleCount is the number of points the object boundary is resampled
	// to before computing Fourier descriptors.
	FSDSampleCount int

	// FSDFrequencyBins is the number of frequency bins retained per Fourier
	// shape descriptor.
	FSDFrequencyBins int

	// CytoplasmRingWidth is the width in pixels of the ring-shaped
	// neighborhood around each nucleus used as its cytoplasm proxy.
	CytoplasmRingWidth int

	// Morphometry, FSD, Intensity, and Gradient independently toggle the
	// four feature groups.
	Morphometry bool
	FSD         bool
	Intensity   bool
	Gradient    bool
}

// DefaultOptions returns the standard extraction configuration: all four
// feature groups enabled, 128 boundary samples, 6 frequency bins, and a
// cytoplasm ring width of 8 pixels.
func DefaultOptions() Options {
	return Options{
		FSDSampleCount:     128,
		FSDFrequencyBins:   6,
		CytoplasmRingWidth: 8,
		Morphometry:        true,
		FSD:                true,
		Intensity:          true,
		Gradient:           true,
	}
}

// validate rejects parameter values no feature routine can work with.
func (o Options) validate() error {
	if o.FSDSampleCount < 2 {
		return fmt.Errorf("invalid FSD sample count %d: must be at least 2", o.FSDSampleCount)
	}
	if o.FSDFrequencyBins < 1 {
		return fmt.Errorf("invalid FSD frequency bin count %d: must be positive", o.FSDFrequencyBins)
	}
	if o.CytoplasmRingWidth < 1 {
		return fmt.Errorf("invalid cytoplasm ring width %d: must be positive", o.CytoplasmRingWidth)
	}
	return nil
}
