package features

import (
	"math"
	"sort"
)

// Descriptive statistics shared by the intensity and gradient groups.
// All helpers treat an empty sample as zero-valued rather than NaN so that
// degenerate regions (a nucleus whose cytoplasm ring vanished against its
// neighbors) still produce finite, reproducible rows.

func sampleMean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// sampleStd is the population standard deviation (ddof = 0).
func sampleStd(v []float64, mean float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var ss float64
	for _, x := range v {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(v)))
}

// sortedCopy returns the sample sorted ascending without touching the input.
func sortedCopy(v []float64) []float64 {
	cp := make([]float64, len(v))
	copy(cp, v)
	sort.Float64s(cp)
	return cp
}

// percentile computes the p-th percentile (0..100) of a sorted sample using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// sampleSkewness is the Fisher-Pearson coefficient g1. Zero-variance samples
// yield 0.
func sampleSkewness(v []float64, mean, std float64) float64 {
	if len(v) == 0 || std == 0 {
		return 0
	}
	var m3 float64
	for _, x := range v {
		d := x - mean
		m3 += d * d * d
	}
	m3 /= float64(len(v))
	return m3 / (std * std * std)
}

// sampleKurtosis is the excess kurtosis g2 (normal distribution = 0).
// Zero-variance samples yield 0.
func sampleKurtosis(v []float64, mean, std float64) float64 {
	if len(v) == 0 || std == 0 {
		return 0
	}
	var m4 float64
	for _, x := range v {
		d := x - mean
		d2 := d * d
		m4 += d2 * d2
	}
	m4 /= float64(len(v))
	v2 := std * std
	return m4/(v2*v2) - 3
}

// histogramDistribution bins the sample into binCount equal-width bins over
// its own [min, max] range and returns the normalized bin probabilities.
// A constant sample collapses into the first bin.
func histogramDistribution(v []float64, binCount int) []float64 {
	p := make([]float64, binCount)
	if len(v) == 0 {
		return p
	}
	lo, hi := v[0], v[0]
	for _, x := range v {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	span := hi - lo
	for _, x := range v {
		bin := 0
		if span > 0 {
			bin = int((x - lo) / span * float64(binCount))
			if bin >= binCount {
				bin = binCount - 1
			}
		}
		p[bin]++
	}
	for i := range p {
		p[i] /= float64(len(v))
	}
	return p
}

// histEnergy is the sum of squared bin probabilities.
func histEnergy(p []float64) float64 {
	var e float64
	for _, x := range p {
		e += x * x
	}
	return e
}

// histEntropy is the Shannon entropy of the bin probabilities, in bits.
func histEntropy(p []float64) float64 {
	var h float64
	for _, x := range p {
		if x > 0 {
			h -= x * math.Log2(x)
		}
	}
	return h
}
