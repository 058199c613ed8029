package features

import (
	"github.com/histoquant/nucfeat/internal/imagery"
	"github.com/histoquant/nucfeat/internal/labels"
)

// ExtractNuclearFeatures computes the combined feature table for every
// object in a labeled nucleus mask.
//
// Parameters:
//   - label: labeled mask; pixel value is the object ID, zero is background.
//   - nucleus: nucleus channel intensity image, same shape as label. Required.
//   - cytoplasm: cytoplasm channel intensity image, same shape. Optional:
//     pass nil when no cytoplasm channel exists, and every cytoplasm-derived
//     feature group is silently skipped regardless of the option flags.
//   - opts: feature group toggles and derivation parameters; see Options.
//
// The property list of the mask is computed once and shared by every group.
// When a cytoplasm channel is supplied, a ring-shaped neighborhood mask of
// width opts.CytoplasmRingWidth is derived around each nucleus and cytoplasm
// statistics are computed over the ring.
//
// Groups land in the output in a fixed order: morphometry, FSD, nucleus
// intensity, cytoplasm intensity, nucleus gradient, cytoplasm gradient.
// Intensity and gradient columns are prefixed "Nucleus." or "Cytoplasm."
// by source. With every group disabled (or only cytoplasm groups enabled and
// no cytoplasm channel) the result is a table with the full row index and
// zero columns.
//
// The call is deterministic and side-effect free: identical inputs produce
// bit-identical tables.
func ExtractNuclearFeatures(label *labels.LabelImage, nucleus, cytoplasm *imagery.Matrix, opts Options) (*FeatureTable, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if nucleus == nil {
		return nil, &ShapeMismatchError{
			Channel:    "nucleus",
			WantWidth:  label.Width(),
			WantHeight: label.Height(),
		}
	}
	if nucleus.Width != label.Width() || nucleus.Height != label.Height() {
		return nil, &ShapeMismatchError{
			Channel:    "nucleus",
			WantWidth:  label.Width(),
			WantHeight: label.Height(),
			GotWidth:   nucleus.Width,
			GotHeight:  nucleus.Height,
		}
	}
	if cytoplasm != nil && (cytoplasm.Width != label.Width() || cytoplasm.Height != label.Height()) {
		return nil, &ShapeMismatchError{
			Channel:    "cytoplasm",
			WantWidth:  label.Width(),
			WantHeight: label.Height(),
			GotWidth:   cytoplasm.Width,
			GotHeight:  cytoplasm.Height,
		}
	}

	// Shared dependency of every group: one scan of the mask.
	nucleiProps := labels.ComputePropertyList(label)
	if len(nucleiProps) == 0 {
		return nil, ErrEmptyLabel
	}
	rowLabels := propLabels(nucleiProps)

	// The cytoplasm ring mask shares the nucleus ID space. Its property list
	// is aligned to the nucleus row index so that a nucleus whose ring
	// vanished against its neighbors still keeps its row (with zero-area
	// statistics) instead of dropping out of the table.
	var cytoMask *labels.LabelImage
	var cytoProps []labels.RegionProps
	if cytoplasm != nil {
		var err error
		cytoMask, err = labels.ComputeNeighborhoodMask(label, opts.CytoplasmRingWidth)
		if err != nil {
			return nil, &FeatureComputationError{Group: "cytoplasm mask", Err: err}
		}
		cytoProps = alignProps(rowLabels, labels.ComputePropertyList(cytoMask))
	}

	var parts []*FeatureTable

	if opts.Morphometry {
		t, err := ComputeMorphometryFeatures(label, nucleiProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "morphometry", Err: err}
		}
		parts = append(parts, t)
	}

	if opts.FSD {
		t, err := ComputeFSDFeatures(label, opts.FSDSampleCount, opts.FSDFrequencyBins, opts.CytoplasmRingWidth, nucleiProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "FSD", Err: err}
		}
		parts = append(parts, t)
	}

	if opts.Intensity {
		t, err := ComputeIntensityFeatures(label, nucleus, nucleiProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "nucleus intensity", Err: err}
		}
		parts = append(parts, t.Prefixed("Nucleus."))
	}

	if opts.Intensity && cytoplasm != nil {
		t, err := ComputeIntensityFeatures(cytoMask, cytoplasm, cytoProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "cytoplasm intensity", Err: err}
		}
		parts = append(parts, t.Prefixed("Cytoplasm."))
	}

	if opts.Gradient {
		t, err := ComputeGradientFeatures(label, nucleus, nucleiProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "nucleus gradient", Err: err}
		}
		parts = append(parts, t.Prefixed("Nucleus."))
	}

	if opts.Gradient && cytoplasm != nil {
		t, err := ComputeGradientFeatures(cytoMask, cytoplasm, cytoProps)
		if err != nil {
			return nil, &FeatureComputationError{Group: "cytoplasm gradient", Err: err}
		}
		parts = append(parts, t.Prefixed("Cytoplasm."))
	}

	if len(parts) == 0 {
		return NewFeatureTable(rowLabels), nil
	}
	return ConcatColumns(parts...)
}

// alignProps reorders a derived mask's property list to match the nucleus
// row index. IDs missing from the derived mask get a zero-area placeholder
// record so every per-group table keeps the identical row set.
func alignProps(rowLabels []int, props []labels.RegionProps) []labels.RegionProps {
	byLabel := make(map[int]labels.RegionProps, len(props))
	for _, rp := range props {
		byLabel[rp.Label] = rp
	}
	out := make([]labels.RegionProps, len(rowLabels))
	for i, id := range rowLabels {
		if rp, ok := byLabel[id]; ok {
			out[i] = rp
		} else {
			out[i] = labels.RegionProps{Label: id}
		}
	}
	return out
}
