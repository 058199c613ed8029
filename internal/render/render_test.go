package render

import (
	"image/color"
	"testing"

	"github.com/histoquant/nucfeat/internal/labels"
)

func TestLabelOverlay(t *testing.T) {
	pix := []int{
		0, 1, 1,
		0, 2, 2,
		0, 0, 0,
	}
	im, err := labels.FromPixels(3, 3, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}

	out := LabelOverlay(im)

	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{A: 255}) {
		t.Errorf("background: got %+v, want opaque black", got)
	}

	c1 := out.NRGBAAt(1, 0)
	c2 := out.NRGBAAt(1, 1)
	if c1 == c2 {
		t.Errorf("objects 1 and 2 share color %+v", c1)
	}
	if c1 == (color.NRGBA{A: 255}) || c2 == (color.NRGBA{A: 255}) {
		t.Error("object color collides with background")
	}

	// Same ID, same color everywhere.
	if out.NRGBAAt(2, 0) != c1 {
		t.Error("object 1 not uniformly colored")
	}
}

func TestObjectColor_Deterministic(t *testing.T) {
	for _, id := range []int{1, 2, 17, 255, 4096} {
		if ObjectColor(id) != ObjectColor(id) {
			t.Errorf("ObjectColor(%d) not deterministic", id)
		}
	}

	seen := make(map[color.NRGBA]int)
	for id := 1; id <= 32; id++ {
		c := ObjectColor(id)
		if prev, dup := seen[c]; dup {
			t.Errorf("IDs %d and %d share color %+v", prev, id, c)
		}
		seen[c] = id
	}
}
