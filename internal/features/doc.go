// Package features computes per-object quantitative features from a labeled
// nucleus mask and one or two intensity channels.
//
// The entry point is ExtractNuclearFeatures: it decides which feature groups
// to compute (morphometry, Fourier shape descriptors, intensity, gradient),
// derives a cytoplasm ring mask when a cytoplasm channel is supplied,
// dispatches to the per-group routines, prefixes their output columns by
// source, and concatenates everything into one FeatureTable keyed by object
// ID.
//
// # Feature Groups
//
//   - Morphometry: size and shape descriptors (Size.*, Shape.*)
//   - FSD: Fourier shape descriptors of the object boundary (FSD.*)
//   - Intensity: first-order statistics of the channel over each object
//     (Nucleus.Intensity.*, Cytoplasm.Intensity.*)
//   - Gradient: gradient-magnitude and Canny edge statistics
//     (Nucleus.Gradient.*, Cytoplasm.Gradient.*)
//
// Row order is the ascending object ID order of the label mask and is
// identical across all groups; extraction is deterministic and idempotent.
//
// # Errors
//
// Mismatched image shapes surface as *ShapeMismatchError, a mask without any
// positive label as ErrEmptyLabel, and a failure inside a feature group as
// *FeatureComputationError wrapping the cause. A failing group aborts the
// whole call; there are no partial results.
package features
