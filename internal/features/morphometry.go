package features

import (
	"math"
	"sort"

	"github.com/histoquant/nucfeat/internal/labels"
)

// ComputeMorphometryFeatures computes size and shape descriptors of every
// labeled object from its geometry alone; no intensity channel is involved.
//
// Columns, in order: Size.Area, Size.MajorAxisLength, Size.MinorAxisLength,
// Size.Perimeter, Shape.Circularity, Shape.Eccentricity,
// Shape.EquivalentDiameter, Shape.Extent, Shape.MinorMajorAxisRatio,
// Shape.Solidity.
//
// Axis lengths and eccentricity come from the second central moments of the
// pixel coordinates (the axes of the equivalent ellipse). Perimeter is the
// length of the traced boundary chain; single-pixel objects have perimeter
// zero and, by convention, circularity zero. Solidity divides the area by
// the pixel count of the convex hull.
//
// props is the precomputed property list for im, as produced by
// labels.ComputePropertyList.
func ComputeMorphometryFeatures(im *labels.LabelImage, props []labels.RegionProps) (*FeatureTable, error) {
	names := []string{
		"Size.Area",
		"Size.MajorAxisLength",
		"Size.MinorAxisLength",
		"Size.Perimeter",
		"Shape.Circularity",
		"Shape.Eccentricity",
		"Shape.EquivalentDiameter",
		"Shape.Extent",
		"Shape.MinorMajorAxisRatio",
		"Shape.Solidity",
	}
	cols := make(map[string][]float64, len(names))
	for _, n := range names {
		cols[n] = make([]float64, len(props))
	}

	for i, rp := range props {
		area := float64(rp.Area)

		major, minor, eccentricity := ellipseAxes(rp)
		perimeter := labels.BoundaryLength(labels.TraceBoundary(im, rp))

		circularity := 0.0
		if perimeter > 0 {
			circularity = 4 * math.Pi * area / (perimeter * perimeter)
		}
		axisRatio := 0.0
		if major > 0 {
			axisRatio = minor / major
		}
		extent := area / float64(rp.BBox.Width()*rp.BBox.Height())

		solidity := 1.0
		if hullArea := convexPixelCount(rp.Pixels); hullArea > 0 {
			solidity = area / hullArea
		}

		cols["Size.Area"][i] = area
		cols["Size.MajorAxisLength"][i] = major
		cols["Size.MinorAxisLength"][i] = minor
		cols["Size.Perimeter"][i] = perimeter
		cols["Shape.Circularity"][i] = circularity
		cols["Shape.Eccentricity"][i] = eccentricity
		cols["Shape.EquivalentDiameter"][i] = math.Sqrt(4 * area / math.Pi)
		cols["Shape.Extent"][i] = extent
		cols["Shape.MinorMajorAxisRatio"][i] = axisRatio
		cols["Shape.Solidity"][i] = solidity
	}

	table := NewFeatureTable(propLabels(props))
	for _, n := range names {
		if err := table.AppendColumn(n, cols[n]); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ellipseAxes derives the equivalent-ellipse axis lengths and eccentricity
// from the second central moments of the object's pixel coordinates.
func ellipseAxes(rp labels.RegionProps) (major, minor, eccentricity float64) {
	if rp.Area == 0 {
		return 0, 0, 0
	}

	var mu20, mu02, mu11 float64
	for _, p := range rp.Pixels {
		dx := float64(p.X) - rp.CentroidX
		dy := float64(p.Y) - rp.CentroidY
		mu20 += dx * dx
		mu02 += dy * dy
		mu11 += dx * dy
	}
	n := float64(rp.Area)
	mu20 /= n
	mu02 /= n
	mu11 /= n

	common := math.Sqrt(4*mu11*mu11 + (mu20-mu02)*(mu20-mu02))
	l1 := (mu20 + mu02 + common) / 2
	l2 := (mu20 + mu02 - common) / 2
	if l2 < 0 {
		l2 = 0
	}

	major = 4 * math.Sqrt(l1)
	minor = 4 * math.Sqrt(l2)
	if l1 > 0 {
		eccentricity = math.Sqrt(1 - l2/l1)
	}
	return major, minor, eccentricity
}

// convexPixelCount estimates how many pixels the convex hull of the object
// covers, using Pick's theorem on the hull of the pixel centers:
// lattice points = interior area + boundary points/2 + 1.
func convexPixelCount(pixels []labels.Point) float64 {
	hull := convexHull(pixels)
	if len(hull) == 0 {
		return 0
	}
	if len(hull) == 1 {
		return 1
	}

	// Shoelace area of the hull polygon.
	var doubled float64
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		doubled += float64(a.X*b.Y - b.X*a.Y)
	}
	area := math.Abs(doubled) / 2

	// Lattice points on the hull boundary: gcd of each edge's deltas.
	boundary := 0
	for i := range hull {
		a := hull[i]
		b := hull[(i+1)%len(hull)]
		boundary += gcd(abs(b.X-a.X), abs(b.Y-a.Y))
	}

	return area + float64(boundary)/2 + 1
}

// convexHull computes the convex hull of a point set with the Andrew
// monotone chain algorithm. The result is in counterclockwise order (image
// coordinates) without the closing point. Collinear input collapses to the
// two extreme points.
func convexHull(points []labels.Point) []labels.Point {
	if len(points) <= 2 {
		return append([]labels.Point(nil), points...)
	}

	pts := append([]labels.Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b labels.Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower []labels.Point
	for _, p := range pts {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}

	var upper []labels.Point
	for i := len(pts) - 1; i >= 0; i-- {
		p := pts[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}

	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
