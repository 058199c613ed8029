package features

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/histoquant/nucfeat/internal/labels"
)

// ComputeFSDFeatures computes Fourier shape descriptors of every labeled
// object's boundary.
//
// Per object: the closed boundary is traced, resampled to sampleCount
// equally spaced points, and transformed with an FFT of the complex boundary
// signal x + iy. The spectral energy (excluding the DC term, which only
// encodes position) is grouped into freqBins dyadic frequency bands and
// normalized so the bins of one object sum to 1. Low bins capture coarse
// shape, high bins capture boundary roughness.
//
// Columns are FSD.Frequency1 .. FSD.Frequency<freqBins>.
//
// ringWidth pads the per-object analysis window before tracing, mirroring
// the window used when the cytoplasm ring mask is derived. Objects too small
// to carry a boundary (fewer than two chain pixels) produce all-zero rows.
func ComputeFSDFeatures(im *labels.LabelImage, sampleCount, freqBins, ringWidth int, props []labels.RegionProps) (*FeatureTable, error) {
	if sampleCount < 2 {
		return nil, fmt.Errorf("invalid sample count %d: must be at least 2", sampleCount)
	}
	if freqBins < 1 {
		return nil, fmt.Errorf("invalid frequency bin count %d: must be positive", freqBins)
	}
	if props == nil {
		props = labels.ComputePropertyList(im)
	}

	cols := make([][]float64, freqBins)
	for b := range cols {
		cols[b] = make([]float64, len(props))
	}

	for i, rp := range props {
		boundary := traceWindowed(im, rp, ringWidth)
		if len(boundary) < 2 {
			continue
		}

		signal := resampleBoundary(boundary, sampleCount)
		spectrum := fft(signal)

		descriptors := binSpectralEnergy(spectrum, freqBins)
		for b := range descriptors {
			cols[b][i] = descriptors[b]
		}
	}

	table := NewFeatureTable(propLabels(props))
	for b := range cols {
		name := fmt.Sprintf("FSD.Frequency%d", b+1)
		if err := table.AppendColumn(name, cols[b]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// traceWindowed traces one object's boundary inside a padded bounding-box
// window rather than the full mask, so tracing cost follows object size.
func traceWindowed(im *labels.LabelImage, rp labels.RegionProps, pad int) []labels.Point {
	if pad < 0 {
		pad = 0
	}
	x1 := clamp(rp.BBox.X1-pad, 0, im.Width())
	y1 := clamp(rp.BBox.Y1-pad, 0, im.Height())
	x2 := clamp(rp.BBox.X2+pad, 0, im.Width())
	y2 := clamp(rp.BBox.Y2+pad, 0, im.Height())

	w := x2 - x1
	h := y2 - y1
	pix := make([]int, w*h)
	for _, p := range rp.Pixels {
		pix[(p.Y-y1)*w+(p.X-x1)] = rp.Label
	}
	window, err := labels.FromPixels(w, h, pix)
	if err != nil {
		return nil
	}

	sub := labels.RegionProps{
		Label:  rp.Label,
		Area:   rp.Area,
		Pixels: []labels.Point{{X: rp.Pixels[0].X - x1, Y: rp.Pixels[0].Y - y1}},
	}
	boundary := labels.TraceBoundary(window, sub)
	for i := range boundary {
		boundary[i].X += x1
		boundary[i].Y += y1
	}
	return boundary
}

// resampleBoundary interpolates a closed boundary chain to n points equally
// spaced along its arc length, as a complex signal x + iy.
func resampleBoundary(boundary []labels.Point, n int) []complex128 {
	m := len(boundary)

	// Cumulative arc length of the closed chain.
	cum := make([]float64, m+1)
	for i := 0; i < m; i++ {
		a := boundary[i]
		b := boundary[(i+1)%m]
		dx := float64(b.X - a.X)
		dy := float64(b.Y - a.Y)
		cum[i+1] = cum[i] + math.Sqrt(dx*dx+dy*dy)
	}
	total := cum[m]

	out := make([]complex128, n)
	if total == 0 {
		p := complex(float64(boundary[0].X), float64(boundary[0].Y))
		for i := range out {
			out[i] = p
		}
		return out
	}

	seg := 0
	for i := 0; i < n; i++ {
		target := total * float64(i) / float64(n)
		for seg < m-1 && cum[seg+1] < target {
			seg++
		}
		a := boundary[seg]
		b := boundary[(seg+1)%m]
		segLen := cum[seg+1] - cum[seg]
		frac := 0.0
		if segLen > 0 {
			frac = (target - cum[seg]) / segLen
		}
		x := float64(a.X) + frac*float64(b.X-a.X)
		y := float64(a.Y) + frac*float64(b.Y-a.Y)
		out[i] = complex(x, y)
	}
	return out
}

// binSpectralEnergy groups the spectrum's energy, DC excluded, into dyadic
// frequency bands and normalizes the bins to sum to 1. A spectrum with no
// energy beyond DC yields all zeros.
func binSpectralEnergy(spectrum []complex128, bins int) []float64 {
	n := len(spectrum)
	half := n / 2
	out := make([]float64, bins)
	if half < 1 {
		return out
	}

	// Dyadic bin edges over frequencies 1..half: edge[j] = half^(j/bins),
	// rounded, strictly increasing.
	edges := make([]int, bins+1)
	edges[0] = 1
	for j := 1; j <= bins; j++ {
		e := int(math.Round(math.Pow(float64(half), float64(j)/float64(bins))))
		if e <= edges[j-1] {
			e = edges[j-1] + 1
		}
		edges[j] = e
	}

	var total float64
	for j := 0; j < bins; j++ {
		for k := edges[j]; k < edges[j+1] && k <= half; k++ {
			e := cmplx.Abs(spectrum[k])
			// Fold in the mirrored negative frequency, except at Nyquist.
			energy := e * e
			if k != half || n%2 != 0 {
				e2 := cmplx.Abs(spectrum[n-k])
				energy += e2 * e2
			}
			out[j] += energy
		}
		total += out[j]
	}

	if total > 0 {
		for j := range out {
			out[j] /= total
		}
	}
	return out
}

// fft computes the discrete Fourier transform of the signal. Power-of-two
// lengths use an iterative radix-2 Cooley-Tukey transform; other lengths
// fall back to the direct O(n^2) transform, which is acceptable at boundary
// sample counts.
func fft(x []complex128) []complex128 {
	n := len(x)
	if n&(n-1) != 0 {
		return dft(x)
	}

	out := make([]complex128, n)
	copy(out, x)

	// Bit-reversal permutation.
	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			out[i], out[j] = out[j], out[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wl := cmplx.Rect(1, angle)
		for start := 0; start < n; start += length {
			w := complex(1, 0)
			for k := 0; k < length/2; k++ {
				u := out[start+k]
				v := out[start+k+length/2] * w
				out[start+k] = u + v
				out[start+k+length/2] = u - v
				w *= wl
			}
		}
	}
	return out
}

// dft is the direct discrete Fourier transform, used for lengths that are
// not powers of two.
func dft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			angle := -2 * math.Pi * float64(k) * float64(t) / float64(n)
			sum += x[t] * cmplx.Rect(1, angle)
		}
		out[k] = sum
	}
	return out
}
