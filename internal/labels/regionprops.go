package labels

import "sort"

// RegionProps holds the geometric summary of one labeled object.
//
// A property record is computed once per object and shared read-only across
// every feature routine that needs it, so the mask is scanned a single time
// per extraction call.
type RegionProps struct {
	// Label is the object ID this record describes.
	Label int `json:"label"`

	// Area is the number of pixels carrying the label.
	Area int `json:"area"`

	// BBox is the tight bounding box of the object.
	BBox Bounds `json:"bbox"`

	// CentroidX, CentroidY are the mean pixel coordinates of the object.
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// Pixels lists every pixel of the object in row-major scan order.
	Pixels []Point `json:"-"`
}

// ComputePropertyList computes a RegionProps record for every distinct
// positive label in the image, in ascending label order.
//
// The mask is scanned exactly once. Background pixels (value 0) are ignored.
// An image with no positive labels yields an empty slice, not an error; the
// caller decides whether that is acceptable.
func ComputePropertyList(im *LabelImage) []RegionProps {
	byLabel := make(map[int]*RegionProps)

	width := im.Width()
	height := im.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			id := im.At(x, y)
			if id == 0 {
				continue
			}
			rp, ok := byLabel[id]
			if !ok {
				rp = &RegionProps{
					Label: id,
					BBox:  Bounds{X1: x, Y1: y, X2: x + 1, Y2: y + 1},
				}
				byLabel[id] = rp
			}
			rp.Area++
			rp.CentroidX += float64(x)
			rp.CentroidY += float64(y)
			rp.Pixels = append(rp.Pixels, Point{X: x, Y: y})
			if x < rp.BBox.X1 {
				rp.BBox.X1 = x
			}
			if x+1 > rp.BBox.X2 {
				rp.BBox.X2 = x + 1
			}
			if y < rp.BBox.Y1 {
				rp.BBox.Y1 = y
			}
			if y+1 > rp.BBox.Y2 {
				rp.BBox.Y2 = y + 1
			}
		}
	}

	props := make([]RegionProps, 0, len(byLabel))
	for _, rp := range byLabel {
		rp.CentroidX /= float64(rp.Area)
		rp.CentroidY /= float64(rp.Area)
		props = append(props, *rp)
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Label < props[j].Label })
	return props
}
