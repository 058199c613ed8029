package features

import (
	"math"
	"testing"

	"github.com/histoquant/nucfeat/internal/labels"
)

func TestComputeIntensityFeatures_ConstantChannel(t *testing.T) {
	im := squareLabel(t, 50, 50, 10, 10, 10, 1)
	channel := constantMatrix(t, 50, 50, 0.5)

	table, err := ComputeIntensityFeatures(im, channel, labels.ComputePropertyList(im))
	if err != nil {
		t.Fatalf("ComputeIntensityFeatures failed: %v", err)
	}
	if table.RowCount() != 1 {
		t.Fatalf("RowCount: got %d, want 1", table.RowCount())
	}

	tests := []struct {
		column string
		want   float64
	}{
		{"Intensity.Min", 0.5},
		{"Intensity.Max", 0.5},
		{"Intensity.Mean", 0.5},
		{"Intensity.Median", 0.5},
		{"Intensity.MeanMedianDiff", 0},
		{"Intensity.Std", 0},
		{"Intensity.IQR", 0},
		{"Intensity.Skewness", 0},
		{"Intensity.Kurtosis", 0},
		{"Intensity.HistEnergy", 1}, // everything in one bin
		{"Intensity.HistEntropy", 0},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			got, ok := table.Value(0, tt.column)
			if !ok {
				t.Fatalf("column %s missing", tt.column)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s: got %g, want %g", tt.column, got, tt.want)
			}
		})
	}
}

func TestComputeIntensityFeatures_KnownValues(t *testing.T) {
	// A 1x4 object over values 0.1, 0.2, 0.3, 0.8.
	pix := []int{1, 1, 1, 1}
	im, err := labels.FromPixels(4, 1, pix)
	if err != nil {
		t.Fatalf("FromPixels failed: %v", err)
	}
	channel := constantMatrix(t, 4, 1, 0)
	copy(channel.Pix, []float64{0.1, 0.2, 0.3, 0.8})

	table, err := ComputeIntensityFeatures(im, channel, nil)
	if err != nil {
		t.Fatalf("ComputeIntensityFeatures failed: %v", err)
	}

	checks := []struct {
		column string
		want   float64
	}{
		{"Intensity.Min", 0.1},
		{"Intensity.Max", 0.8},
		{"Intensity.Mean", 0.35},
		{"Intensity.Median", 0.25},
		{"Intensity.MeanMedianDiff", 0.1},
	}
	for _, c := range checks {
		got, ok := table.Value(0, c.column)
		if !ok {
			t.Fatalf("column %s missing", c.column)
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("%s: got %g, want %g", c.column, got, c.want)
		}
	}

	// The 0.8 outlier pulls the distribution right: positive skewness.
	if skew, _ := table.Value(0, "Intensity.Skewness"); skew <= 0 {
		t.Errorf("Intensity.Skewness: got %g, want > 0", skew)
	}
}

func TestComputeIntensityFeatures_NilProps(t *testing.T) {
	im := squareLabel(t, 20, 20, 5, 5, 4, 1)
	channel := constantMatrix(t, 20, 20, 0.3)

	withProps, err := ComputeIntensityFeatures(im, channel, labels.ComputePropertyList(im))
	if err != nil {
		t.Fatalf("ComputeIntensityFeatures failed: %v", err)
	}
	withoutProps, err := ComputeIntensityFeatures(im, channel, nil)
	if err != nil {
		t.Fatalf("ComputeIntensityFeatures failed: %v", err)
	}

	for _, name := range withProps.ColumnNames() {
		a, _ := withProps.Value(0, name)
		b, _ := withoutProps.Value(0, name)
		if a != b {
			t.Errorf("%s differs with precomputed props: %g vs %g", name, a, b)
		}
	}
}

func TestComputeIntensityFeatures_ShapeMismatch(t *testing.T) {
	im := squareLabel(t, 20, 20, 5, 5, 4, 1)
	channel := constantMatrix(t, 10, 10, 0.3)

	if _, err := ComputeIntensityFeatures(im, channel, nil); err == nil {
		t.Error("mismatched shapes: expected error, got nil")
	}
}

func TestComputeIntensityFeatures_ZeroAreaRecord(t *testing.T) {
	// A placeholder record (area 0) keeps its row and yields zeros.
	im := squareLabel(t, 10, 10, 2, 2, 3, 1)
	channel := constantMatrix(t, 10, 10, 0.4)

	props := append(labels.ComputePropertyList(im), labels.RegionProps{Label: 2})
	table, err := ComputeIntensityFeatures(im, channel, props)
	if err != nil {
		t.Fatalf("ComputeIntensityFeatures failed: %v", err)
	}
	if table.RowCount() != 2 {
		t.Fatalf("RowCount: got %d, want 2", table.RowCount())
	}
	if mean, _ := table.Value(1, "Intensity.Mean"); mean != 0 {
		t.Errorf("zero-area mean: got %g, want 0", mean)
	}
}
