package features

import (
	"math"
	"testing"

	"github.com/histoquant/nucfeat/internal/imagery"
	"github.com/histoquant/nucfeat/internal/labels"
)

// squareLabel builds a mask with one square object, top-left at (x0, y0).
func squareLabel(t *testing.T, width, height, x0, y0, side, label int) *labels.LabelImage {
	t.Helper()
	pix := make([]int, width*height)
	for y := y0; y < y0+side; y++ {
		for x := x0; x < x0+side; x++ {
			pix[y*width+x] = label
		}
	}
	im, err := labels.FromPixels(width, height, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	return im
}

// constantMatrix builds an intensity channel filled with one value.
func constantMatrix(t *testing.T, width, height int, value float64) *imagery.Matrix {
	t.Helper()
	m, err := imagery.NewMatrix(width, height)
	if err != nil {
		t.Fatalf("NewMatrix failed: %v", err)
	}
	for i := range m.Pix {
		m.Pix[i] = value
	}
	return m
}

func TestComputeMorphometryFeatures_Square(t *testing.T) {
	im := squareLabel(t, 50, 50, 10, 10, 10, 1)
	props := labels.ComputePropertyList(im)

	table, err := ComputeMorphometryFeatures(im, props)
	if err != nil {
		t.Fatalf("ComputeMorphometryFeatures failed: %v", err)
	}
	if table.RowCount() != 1 {
		t.Fatalf("RowCount: got %d, want 1", table.RowCount())
	}

	// Second central moment of 10 evenly spaced coordinates is 8.25, so both
	// ellipse axes are 4*sqrt(8.25).
	axis := 4 * math.Sqrt(8.25)

	tests := []struct {
		column string
		want   float64
		tol    float64
	}{
		{"Size.Area", 100, 0},
		{"Size.MajorAxisLength", axis, 1e-9},
		{"Size.MinorAxisLength", axis, 1e-9},
		{"Size.Perimeter", 36, 1e-9},
		{"Shape.Circularity", 4 * math.Pi * 100 / (36 * 36), 1e-9},
		{"Shape.Eccentricity", 0, 1e-9},
		{"Shape.EquivalentDiameter", math.Sqrt(400 / math.Pi), 1e-9},
		{"Shape.Extent", 1, 0},
		{"Shape.MinorMajorAxisRatio", 1, 1e-9},
		{"Shape.Solidity", 1, 1e-9},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, ok := table.Value(0, tt.column)
			if !ok {
				t.Fatalf("column %s missing", tt.column)
			}
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("%s: got %g, want %g", tt.column, got, tt.want)
			}
		})
	}
}

func TestComputeMorphometryFeatures_LessSolidShape(t *testing.T) {
	// An L-shaped object fills 3 of the 4 quadrants of its bounding box, so
	// solidity and extent drop below 1.
	pix := make([]int, 400)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if x < 5 || y >= 5 {
				pix[(y+5)*20+(x+5)] = 1
			}
		}
	}
	im, err := labels.FromPixels(20, 20, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	props := labels.ComputePropertyList(im)

	table, err := ComputeMorphometryFeatures(im, props)
	if err != nil {
		t.Fatalf("ComputeMorphometryFeatures failed: %v", err)
	}

	area, _ := table.Value(0, "Size.Area")
	if area != 75 {
		t.Errorf("Size.Area: got %g, want 75", area)
	}
	extent, _ := table.Value(0, "Shape.Extent")
	if math.Abs(extent-0.75) > 1e-9 {
		t.Errorf("Shape.Extent: got %g, want 0.75", extent)
	}
	solidity, _ := table.Value(0, "Shape.Solidity")
	if solidity >= 1 || solidity <= 0.5 {
		t.Errorf("Shape.Solidity: got %g, want in (0.5, 1)", solidity)
	}
	ecc, _ := table.Value(0, "Shape.Eccentricity")
	if ecc <= 0 || ecc >= 1 {
		t.Errorf("Shape.Eccentricity: got %g, want in (0, 1)", ecc)
	}
}

func TestComputeMorphometryFeatures_MultipleObjects(t *testing.T) {
	pix := make([]int, 40*20)
	for y := 2; y < 6; y++ {
		for x := 2; x < 6; x++ {
			pix[y*40+x] = 4 // 4x4 square
		}
	}
	for y := 2; y < 10; y++ {
		for x := 20; x < 28; x++ {
			pix[y*40+x] = 2 // 8x8 square
		}
	}
	im, err := labels.FromPixels(40, 20, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}

	table, err := ComputeMorphometryFeatures(im, labels.ComputePropertyList(im))
	if err != nil {
		t.Fatalf("ComputeMorphometryFeatures failed: %v", err)
	}

	rowLabels := table.RowLabels()
	if len(rowLabels) != 2 || rowLabels[0] != 2 || rowLabels[1] != 4 {
		t.Fatalf("row labels: got %v, want [2 4]", rowLabels)
	}
	if area, _ := table.Value(0, "Size.Area"); area != 64 {
		t.Errorf("object 2 area: got %g, want 64", area)
	}
	if area, _ := table.Value(1, "Size.Area"); area != 16 {
		t.Errorf("object 4 area: got %g, want 16", area)
	}
}
