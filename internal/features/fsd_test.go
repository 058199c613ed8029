package features

import (
	"math"
	"testing"

	"github.com/histoquant/nucfeat/internal/labels"
)

func TestComputeFSDFeatures_Square(t *testing.T) {
	im := squareLabel(t, 50, 50, 10, 10, 10, 1)
	props := labels.ComputePropertyList(im)

	table, err := ComputeFSDFeatures(im, 128, 6, 8, props)
	if err != nil {
		t.Fatalf("ComputeFSDFeatures failed: %v", err)
	}
	if table.RowCount() != 1 {
		t.Fatalf("RowCount: got %d, want 1", table.RowCount())
	}

	names := table.ColumnNames()
	if len(names) != 6 {
		t.Fatalf("columns: got %d, want 6", len(names))
	}
	for i, name := range names {
		want := "FSD.Frequency" + string(rune('1'+i))
		if name != want {
			t.Errorf("column %d: got %s, want %s", i, name, want)
		}
	}

	// Descriptors are a normalized energy distribution.
	var sum float64
	for _, name := range names {
		v, _ := table.Value(0, name)
		if v < 0 || v > 1 {
			t.Errorf("%s: got %g, want in [0, 1]", name, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("descriptor sum: got %g, want 1", sum)
	}

	// A compact convex shape concentrates energy in the lowest band.
	first, _ := table.Value(0, "FSD.Frequency1")
	last, _ := table.Value(0, "FSD.Frequency6")
	if first <= last {
		t.Errorf("energy not concentrated in low frequencies: first %g, last %g", first, last)
	}
}

func TestComputeFSDFeatures_SinglePixelObject(t *testing.T) {
	im := squareLabel(t, 20, 20, 5, 5, 1, 1)

	table, err := ComputeFSDFeatures(im, 128, 6, 8, nil)
	if err != nil {
		t.Fatalf("ComputeFSDFeatures failed: %v", err)
	}

	for _, name := range table.ColumnNames() {
		if v, _ := table.Value(0, name); v != 0 {
			t.Errorf("%s: got %g, want 0 for a boundary-less object", name, v)
		}
	}
}

func TestComputeFSDFeatures_NonPowerOfTwoSamples(t *testing.T) {
	// 100 samples exercises the direct-transform fallback; the descriptors
	// stay a normalized distribution.
	im := squareLabel(t, 50, 50, 10, 10, 12, 1)

	table, err := ComputeFSDFeatures(im, 100, 4, 8, nil)
	if err != nil {
		t.Fatalf("ComputeFSDFeatures failed: %v", err)
	}

	var sum float64
	for _, name := range table.ColumnNames() {
		v, _ := table.Value(0, name)
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("descriptor sum: got %g, want 1", sum)
	}
}

func TestComputeFSDFeatures_InvalidParameters(t *testing.T) {
	im := squareLabel(t, 20, 20, 5, 5, 4, 1)

	if _, err := ComputeFSDFeatures(im, 1, 6, 8, nil); err == nil {
		t.Error("sample count 1: expected error, got nil")
	}
	if _, err := ComputeFSDFeatures(im, 128, 0, 8, nil); err == nil {
		t.Error("zero frequency bins: expected error, got nil")
	}
}

func TestComputeFSDFeatures_Deterministic(t *testing.T) {
	im := squareLabel(t, 40, 40, 6, 9, 11, 1)

	a, err := ComputeFSDFeatures(im, 64, 5, 8, nil)
	if err != nil {
		t.Fatalf("ComputeFSDFeatures failed: %v", err)
	}
	b, err := ComputeFSDFeatures(im, 64, 5, 8, nil)
	if err != nil {
		t.Fatalf("ComputeFSDFeatures failed: %v", err)
	}

	for _, name := range a.ColumnNames() {
		va, _ := a.Value(0, name)
		vb, _ := b.Value(0, name)
		if va != vb {
			t.Errorf("%s not deterministic: %g vs %g", name, va, vb)
		}
	}
}
