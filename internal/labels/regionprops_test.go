package labels

import "testing"

// squareMask builds a mask with one square object of the given side length,
// top-left corner at (x0, y0).
func squareMask(t *testing.T, width, height, x0, y0, side, label int) *LabelImage {
	t.Helper()
	pix := make([]int, width*height)
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			pix[y*width+x] = label
		}
	}
	im, err := FromPixels(width, height, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	return im
}

func TestComputePropertyList_Square(t *testing.T) {
	im := squareMask(t, 50, 50, 10, 10, 10, 1)

	props := ComputePropertyList(im)
	if len(props) != 1 {
		t.Fatalf("got %d property records, want 1", len(props))
	}

	rp := props[0]
	if rp.Label != 1 {
		t.Errorf("Label: got %d, want 1", rp.Label)
	}
	if rp.Area != 100 {
		t.Errorf("Area: got %d, want 100", rp.Area)
	}
	want := Bounds{X1: 10, Y1: 10, X2: 20, Y2: 20}
	if rp.BBox != want {
		t.Errorf("BBox: got %+v, want %+v", rp.BBox, want)
	}
	if rp.CentroidX != 14.5 || rp.CentroidY != 14.5 {
		t.Errorf("Centroid: got (%g,%g), want (14.5,14.5)", rp.CentroidX, rp.CentroidY)
	}
	if len(rp.Pixels) != 100 {
		t.Errorf("Pixels: got %d entries, want 100", len(rp.Pixels))
	}
	if rp.Pixels[0] != (Point{X: 10, Y: 10}) {
		t.Errorf("first pixel not topmost-leftmost: got %+v", rp.Pixels[0])
	}
}

func TestComputePropertyList_AscendingOrder(t *testing.T) {
	// Object 7 appears before object 2 in scan order; the list must still be
	// ascending by label.
	pix := make([]int, 100)
	pix[0] = 7
	pix[99] = 2
	im, err := FromPixels(10, 10, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}

	props := ComputePropertyList(im)
	if len(props) != 2 {
		t.Fatalf("got %d property records, want 2", len(props))
	}
	if props[0].Label != 2 || props[1].Label != 7 {
		t.Errorf("labels not ascending: got [%d %d], want [2 7]", props[0].Label, props[1].Label)
	}
}

func TestComputePropertyList_EmptyMask(t *testing.T) {
	im, err := FromPixels(10, 10, make([]int, 100))
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}

	if props := ComputePropertyList(im); len(props) != 0 {
		t.Errorf("got %d property records for empty mask, want 0", len(props))
	}
}
