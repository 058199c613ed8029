package labels

import (
	"fmt"
	"sort"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive); (X2, Y2) is the bottom-right
// corner (exclusive), so Width = X2-X1 and Height = Y2-Y1.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Width returns the horizontal extent of the box in pixels.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent of the box in pixels.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// LabelImage is a labeled segmentation mask: a 2D integer image where the
// value of a pixel is the ID of the object it belongs to. Zero is background.
//
// LabelImage is immutable after construction. Accessors perform no bounds
// checking; callers must keep coordinates within [0,Width) x [0,Height).
type LabelImage struct {
	width  int
	height int
	pix    []int // row-major, length width*height
}

// FromPixels builds a LabelImage from a row-major pixel slice.
//
// The slice is copied, so the caller may reuse it afterwards. Negative pixel
// values are rejected: IDs are 0 (background) or positive integers.
func FromPixels(width, height int, pix []int) (*LabelImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid label image dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("label pixel count %d does not match dimensions %dx%d", len(pix), width, height)
	}
	cp := make([]int, len(pix))
	for i, v := range pix {
		if v < 0 {
			return nil, fmt.Errorf("negative label %d at index %d", v, i)
		}
		cp[i] = v
	}
	return &LabelImage{width: width, height: height, pix: cp}, nil
}

// Width returns the image width in pixels.
func (im *LabelImage) Width() int { return im.width }

// Height returns the image height in pixels.
func (im *LabelImage) Height() int { return im.height }

// At returns the object ID at (x, y). No bounds checking is performed.
func (im *LabelImage) At(x, y int) int {
	return im.pix[y*im.width+x]
}

// Labels returns the distinct positive object IDs present in the image,
// in ascending order. The result is empty when only background is present.
func (im *LabelImage) Labels() []int {
	seen := make(map[int]struct{})
	for _, v := range im.pix {
		if v > 0 {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// FromBinary labels the 8-connected components of a binary foreground mask.
//
// Parameters:
//   - fg: row-major foreground mask, length width*height; true = foreground.
//   - width, height: mask dimensions.
//
// Components are discovered in row-major scan order and assigned IDs 1, 2, 3, ...
// in that order, so the labeling is deterministic for a given mask. Diagonal
// neighbors belong to the same component (8-connectivity).
func FromBinary(fg []bool, width, height int) (*LabelImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid mask dimensions %dx%d", width, height)
	}
	if len(fg) != width*height {
		return nil, fmt.Errorf("mask pixel count %d does not match dimensions %dx%d", len(fg), width, height)
	}

	pix := make([]int, width*height)
	next := 1

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if !fg[idx] || pix[idx] != 0 {
				continue
			}
			fillComponent(fg, pix, x, y, width, height, next)
			next++
		}
	}

	return &LabelImage{width: width, height: height, pix: pix}, nil
}

// fillComponent performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large components. Marks every reachable foreground pixel with the given
// label. Uses 8-connectivity (includes diagonal neighbors).
func fillComponent(fg []bool, pix []int, startX, startY, width, height, label int) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		idx := p.Y*width + p.X
		if !fg[idx] || pix[idx] != 0 {
			continue
		}

		pix[idx] = label

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}
