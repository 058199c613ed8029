package features

import (
	"fmt"

	"github.com/histoquant/nucfeat/internal/imagery"
	"github.com/histoquant/nucfeat/internal/labels"
)

// intensityHistBins is the histogram resolution for the energy and entropy
// features.
const intensityHistBins = 10

// ComputeIntensityFeatures computes first-order intensity statistics of one
// channel over every labeled object.
//
// Columns, in order: Intensity.Min, Intensity.Max, Intensity.Mean,
// Intensity.Median, Intensity.MeanMedianDiff, Intensity.Std, Intensity.IQR,
// Intensity.Skewness, Intensity.Kurtosis, Intensity.HistEnergy,
// Intensity.HistEntropy.
//
// props is an optional precomputed property list for im; pass nil to have it
// computed here. Objects with zero pixels (possible when a derived mask lost
// a region) produce all-zero rows rather than NaNs.
func ComputeIntensityFeatures(im *labels.LabelImage, intensity *imagery.Matrix, props []labels.RegionProps) (*FeatureTable, error) {
	if intensity == nil {
		return nil, fmt.Errorf("intensity channel is required")
	}
	if im.Width() != intensity.Width || im.Height() != intensity.Height {
		return nil, fmt.Errorf("intensity channel shape %dx%d does not match mask shape %dx%d",
			intensity.Width, intensity.Height, im.Width(), im.Height())
	}
	if props == nil {
		props = labels.ComputePropertyList(im)
	}

	names := []string{
		"Intensity.Min",
		"Intensity.Max",
		"Intensity.Mean",
		"Intensity.Median",
		"Intensity.MeanMedianDiff",
		"Intensity.Std",
		"Intensity.IQR",
		"Intensity.Skewness",
		"Intensity.Kurtosis",
		"Intensity.HistEnergy",
		"Intensity.HistEntropy",
	}
	cols := make(map[string][]float64, len(names))
	for _, n := range names {
		cols[n] = make([]float64, len(props))
	}

	for i, rp := range props {
		values := regionValues(intensity, rp)
		if len(values) == 0 {
			continue
		}

		sorted := sortedCopy(values)
		mean := sampleMean(values)
		median := percentile(sorted, 50)
		std := sampleStd(values, mean)
		hist := histogramDistribution(values, intensityHistBins)

		cols["Intensity.Min"][i] = sorted[0]
		cols["Intensity.Max"][i] = sorted[len(sorted)-1]
		cols["Intensity.Mean"][i] = mean
		cols["Intensity.Median"][i] = median
		cols["Intensity.MeanMedianDiff"][i] = mean - median
		cols["Intensity.Std"][i] = std
		cols["Intensity.IQR"][i] = percentile(sorted, 75) - percentile(sorted, 25)
		cols["Intensity.Skewness"][i] = sampleSkewness(values, mean, std)
		cols["Intensity.Kurtosis"][i] = sampleKurtosis(values, mean, std)
		cols["Intensity.HistEnergy"][i] = histEnergy(hist)
		cols["Intensity.HistEntropy"][i] = histEntropy(hist)
	}

	table := NewFeatureTable(propLabels(props))
	for _, n := range names {
		if err := table.AppendColumn(n, cols[n]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// regionValues gathers the channel values under one object's pixels.
func regionValues(m *imagery.Matrix, rp labels.RegionProps) []float64 {
	values := make([]float64, 0, len(rp.Pixels))
	for _, p := range rp.Pixels {
		values = append(values, m.At(p.X, p.Y))
	}
	return values
}

// propLabels extracts the object IDs of a property list, in list order.
func propLabels(props []labels.RegionProps) []int {
	ids := make([]int, len(props))
	for i, rp := range props {
		ids[i] = rp.Label
	}
	return ids
}
