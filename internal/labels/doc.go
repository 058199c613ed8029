// Package labels provides labeled segmentation masks and the geometric
// operations the feature pipeline needs from them.
//
// A labeled mask assigns every pixel an integer object ID: 0 is background,
// each positive value identifies one object (one nucleus). The package offers:
//
//   - LabelImage: an immutable 2D integer mask
//   - FromBinary: 8-connected component labeling of a binary foreground mask
//   - ComputePropertyList: per-object geometry (area, bounding box, centroid,
//     pixel list) in ascending-ID order
//   - TraceBoundary: closed boundary pixel chain of one object
//   - ComputeNeighborhoodMask: ring-shaped neighborhood mask around every
//     object, sharing the object ID space (used as a cytoplasm proxy)
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner:
// X increases rightward, Y increases downward. Bounding boxes use an
// inclusive top-left corner and an exclusive bottom-right corner.
//
// # Thread Safety
//
// LabelImage values are immutable after construction and safe for concurrent
// reads. All functions in this package are stateless.
package labels
