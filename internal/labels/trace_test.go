package labels

import (
	"math"
	"testing"
)

func TestTraceBoundary_Square(t *testing.T) {
	im := squareMask(t, 50, 50, 10, 10, 10, 1)
	props := ComputePropertyList(im)

	boundary := TraceBoundary(im, props[0])

	// A 10x10 square has 36 border pixels.
	if len(boundary) != 36 {
		t.Fatalf("boundary length: got %d pixels, want 36", len(boundary))
	}

	seen := make(map[Point]bool)
	for i, p := range boundary {
		if im.At(p.X, p.Y) != 1 {
			t.Fatalf("boundary pixel %d at (%d,%d) is not on the object", i, p.X, p.Y)
		}
		if seen[p] {
			t.Fatalf("boundary pixel (%d,%d) repeated", p.X, p.Y)
		}
		seen[p] = true

		// Consecutive chain pixels are neighbors.
		n := boundary[(i+1)%len(boundary)]
		dx, dy := abs(n.X-p.X), abs(n.Y-p.Y)
		if dx > 1 || dy > 1 || (dx == 0 && dy == 0) {
			t.Fatalf("chain break between (%d,%d) and (%d,%d)", p.X, p.Y, n.X, n.Y)
		}
	}

	if boundary[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("trace start: got %+v, want (10,10)", boundary[0])
	}

	if got := BoundaryLength(boundary); math.Abs(got-36) > 1e-9 {
		t.Errorf("BoundaryLength: got %g, want 36", got)
	}
}

func TestTraceBoundary_SinglePixel(t *testing.T) {
	im := squareMask(t, 10, 10, 5, 5, 1, 3)
	props := ComputePropertyList(im)

	boundary := TraceBoundary(im, props[0])
	if len(boundary) != 1 {
		t.Fatalf("boundary: got %d pixels, want 1", len(boundary))
	}
	if boundary[0] != (Point{X: 5, Y: 5}) {
		t.Errorf("boundary pixel: got %+v, want (5,5)", boundary[0])
	}
	if got := BoundaryLength(boundary); got != 0 {
		t.Errorf("BoundaryLength of single pixel: got %g, want 0", got)
	}
}

func TestTraceBoundary_TouchingImageEdge(t *testing.T) {
	// Object in the top-left corner: tracing must cope with the mask border.
	im := squareMask(t, 10, 10, 0, 0, 3, 1)
	props := ComputePropertyList(im)

	boundary := TraceBoundary(im, props[0])
	if len(boundary) != 8 {
		t.Fatalf("boundary length: got %d pixels, want 8", len(boundary))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
