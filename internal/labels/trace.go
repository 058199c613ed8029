package labels

import "math"

// mooreOffsets lists the 8 neighbors of a pixel in clockwise order,
// beginning at west. Boundary tracing sweeps this ring.
var mooreOffsets = [8]Point{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// TraceBoundary traces the closed outer boundary of one labeled object using
// Moore-neighbor tracing with Jacob's stopping criterion.
//
// The trace starts at the object's topmost-leftmost pixel and walks the
// boundary clockwise. Every boundary pixel is a pixel of the object itself
// (8-connected tracing), and consecutive chain entries are neighbors.
//
// Parameters:
//   - im: the labeled mask the object lives in.
//   - rp: the property record of the object to trace; its Pixels list must be
//     in row-major scan order, as produced by ComputePropertyList.
//
// A single-pixel object yields a one-element chain.
func TraceBoundary(im *LabelImage, rp RegionProps) []Point {
	if len(rp.Pixels) == 0 {
		return nil
	}

	isObject := func(p Point) bool {
		if p.X < 0 || p.X >= im.Width() || p.Y < 0 || p.Y >= im.Height() {
			return false
		}
		return im.At(p.X, p.Y) == rp.Label
	}

	start := rp.Pixels[0] // topmost-leftmost in scan order
	startBack := Point{X: start.X - 1, Y: start.Y}

	boundary := []Point{start}
	cur := start
	back := startBack

	// The chain cannot exceed the pixel count; the factor leaves room for
	// pixels visited twice on one-pixel-wide spurs.
	limit := 4*rp.Area + 8

	for iter := 0; iter < limit; iter++ {
		bi := neighborIndex(cur, back)
		advanced := false
		for i := 1; i <= 8; i++ {
			d := (bi + i) % 8
			n := Point{X: cur.X + mooreOffsets[d].X, Y: cur.Y + mooreOffsets[d].Y}
			if isObject(n) {
				pd := (bi + i - 1) % 8
				back = Point{X: cur.X + mooreOffsets[pd].X, Y: cur.Y + mooreOffsets[pd].Y}
				cur = n
				advanced = true
				break
			}
		}
		if !advanced {
			// Isolated pixel: no foreground neighbor at all.
			break
		}
		if cur == start && back == startBack {
			break
		}
		boundary = append(boundary, cur)
	}

	return boundary
}

// neighborIndex returns the mooreOffsets index of neighbor n relative to p.
// n must be one of p's 8 neighbors.
func neighborIndex(p, n Point) int {
	for i, off := range mooreOffsets {
		if p.X+off.X == n.X && p.Y+off.Y == n.Y {
			return i
		}
	}
	return 0
}

// BoundaryLength returns the length of a closed boundary chain: the sum of
// Euclidean distances between consecutive chain pixels, including the closing
// segment back to the first pixel. Chains shorter than two pixels have
// length zero.
func BoundaryLength(boundary []Point) float64 {
	if len(boundary) < 2 {
		return 0
	}
	var total float64
	for i := range boundary {
		a := boundary[i]
		b := boundary[(i+1)%len(boundary)]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}
