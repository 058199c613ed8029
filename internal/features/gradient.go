package features

import (
	"fmt"
	"math"

	"github.com/histoquant/nucfeat/internal/imagery"
	"github.com/histoquant/nucfeat/internal/labels"
)

// Hysteresis thresholds for the Canny edge map, on gradient magnitude
// normalized to the channel's [0, 1] range.
const (
	cannyLowThreshold  = 0.10
	cannyHighThreshold = 0.20
)

// ComputeGradientFeatures computes gradient and edge statistics of one
// channel over every labeled object.
//
// The gradient magnitude is computed once for the whole channel with central
// differences, then aggregated per object. A Canny edge map of the channel
// contributes the edge-pixel features.
//
// Columns, in order: Gradient.Mag.Mean, Gradient.Mag.Std,
// Gradient.Mag.Skewness, Gradient.Mag.Kurtosis, Gradient.Mag.HistEnergy,
// Gradient.Mag.HistEntropy, Gradient.Canny.Sum, Gradient.Canny.Mean.
//
// props is an optional precomputed property list for im; pass nil to have it
// computed here. Zero-pixel objects produce all-zero rows.
func ComputeGradientFeatures(im *labels.LabelImage, intensity *imagery.Matrix, props []labels.RegionProps) (*FeatureTable, error) {
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

	mag := gradientMagnitude(intensity)
	edges := cannyEdges(intensity)

	names := []string{
		"Gradient.Mag.Mean",
		"Gradient.Mag.Std",
		"Gradient.Mag.Skewness",
		"Gradient.Mag.Kurtosis",
		"Gradient.Mag.HistEnergy",
		"Gradient.Mag.HistEntropy",
		"Gradient.Canny.Sum",
		"Gradient.Canny.Mean",
	}
	cols := make(map[string][]float64, len(names))
	for _, n := range names {
		cols[n] = make([]float64, len(props))
	}

	for i, rp := range props {
		values := regionValues(mag, rp)
		if len(values) == 0 {
			continue
		}

		mean := sampleMean(values)
		std := sampleStd(values, mean)
		hist := histogramDistribution(values, intensityHistBins)

		var edgeSum float64
		for _, p := range rp.Pixels {
			if edges[p.Y*im.Width()+p.X] {
				edgeSum++
			}
		}

		cols["Gradient.Mag.Mean"][i] = mean
		cols["Gradient.Mag.Std"][i] = std
		cols["Gradient.Mag.Skewness"][i] = sampleSkewness(values, mean, std)
		cols["Gradient.Mag.Kurtosis"][i] = sampleKurtosis(values, mean, std)
		cols["Gradient.Mag.HistEnergy"][i] = histEnergy(hist)
		cols["Gradient.Mag.HistEntropy"][i] = histEntropy(hist)
		cols["Gradient.Canny.Sum"][i] = edgeSum
		cols["Gradient.Canny.Mean"][i] = edgeSum / float64(len(values))
	}

	table := NewFeatureTable(propLabels(props))
	for _, n := range names {
		if err := table.AppendColumn(n, cols[n]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// gradientMagnitude computes sqrt(dx^2 + dy^2) with central differences in
// the interior and one-sided differences on the borders.
func gradientMagnitude(m *imagery.Matrix) *imagery.Matrix {
	width, height := m.Width, m.Height
	out := &imagery.Matrix{Width: width, Height: height, Pix: make([]float64, width*height)}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var dx, dy float64
			switch {
			case width == 1:
			case x == 0:
				dx = m.At(1, y) - m.At(0, y)
			case x == width-1:
				dx = m.At(width-1, y) - m.At(width-2, y)
			default:
				dx = (m.At(x+1, y) - m.At(x-1, y)) / 2
			}
			switch {
			case height == 1:
			case y == 0:
				dy = m.At(x, 1) - m.At(x, 0)
			case y == height-1:
				dy = m.At(x, height-1) - m.At(x, height-2)
			default:
				dy = (m.At(x, y+1) - m.At(x, y-1)) / 2
			}
			out.Set(x, y, math.Sqrt(dx*dx+dy*dy))
		}
	}
	return out
}

// cannyEdges computes a binary edge map of the channel.
//
// The pipeline is the usual Canny sequence: 5x5 Gaussian smoothing, Sobel
// gradients, non-maximum suppression along the gradient direction, then
// hysteresis thresholding with cannyLowThreshold/cannyHighThreshold.
// Weak edges survive only when an 8-neighbor is a strong edge.
func cannyEdges(m *imagery.Matrix) []bool {
	width, height := m.Width, m.Height
	blurred := gaussianSmooth(m)

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					v := blurred.At(px, py)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y*width+x] = math.Sqrt(gx*gx + gy*gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient
	// direction, thinning edges to single-pixel width.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			angle := direction[y*width+x]
			mag := magnitude[y*width+x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y*width+x-1]
				n2 = magnitude[y*width+x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x+1]
				n2 = magnitude[(y+1)*width+x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[(y-1)*width+x]
				n2 = magnitude[(y+1)*width+x]
			} else {
				n1 = magnitude[(y-1)*width+x-1]
				n2 = magnitude[(y+1)*width+x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y*width+x] = mag
			}
		}
	}

	edges := make([]bool, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y*width+x]
			if val >= cannyHighThreshold {
				edges[y*width+x] = true
			} else if val >= cannyLowThreshold {
				for ky := -1; ky <= 1 && !edges[y*width+x]; ky++ {
					for kx := -1; kx <= 1 && !edges[y*width+x]; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py*width+px] >= cannyHighThreshold {
							edges[y*width+x] = true
						}
					}
				}
			}
		}
	}
	return edges
}

// gaussianSmooth applies a 5x5 Gaussian kernel (sigma ~ 1.4) with replicated
// borders.
func gaussianSmooth(m *imagery.Matrix) *imagery.Matrix {
	kernel := [5][5]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	const kernelSum = 273.0

	width, height := m.Width, m.Height
	out := &imagery.Matrix{Width: width, Height: height, Pix: make([]float64, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += m.At(px, py) * kernel[ky+2][kx+2]
				}
			}
			out.Set(x, y, sum/kernelSum)
		}
	}
	return out
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
