package labels

import "fmt"

// ComputeNeighborhoodMask derives a ring-shaped neighborhood mask around
// every labeled object, sharing the object ID space of the input.
//
// The ring is grown outward from every object simultaneously (multi-source
// breadth-first search with 8-connectivity), so each background pixel within
// ringWidth steps of an object receives the ID of its nearest object. Pixels
// belonging to any object are never part of the result: the ring of one
// nucleus stops where another nucleus begins, and rings of adjacent nuclei
// split the space between them by distance.
//
// Parameters:
//   - im: labeled nucleus mask.
//   - ringWidth: ring width in pixels (Chebyshev distance). Must be positive.
//
// Returns a new LabelImage of the same dimensions; the input is not modified.
func ComputeNeighborhoodMask(im *LabelImage, ringWidth int) (*LabelImage, error) {
	if ringWidth <= 0 {
		return nil, fmt.Errorf("invalid ring width %d: must be positive", ringWidth)
	}

	width := im.Width()
	height := im.Height()
	out := make([]int, width*height)
	dist := make([]int, width*height)
	for i := range dist {
		dist[i] = -1
	}

	// Seed the search with every foreground pixel at distance zero, in scan
	// order so ties between equidistant nuclei resolve deterministically.
	queue := make([]Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if id := im.At(x, y); id > 0 {
				idx := y*width + x
				out[idx] = id
				dist[idx] = 0
				queue = append(queue, Point{X: x, Y: y})
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		idx := p.Y*width + p.X
		if dist[idx] >= ringWidth {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				nidx := ny*width + nx
				if dist[nidx] != -1 {
					continue
				}
				dist[nidx] = dist[idx] + 1
				out[nidx] = out[idx]
				queue = append(queue, Point{X: nx, Y: ny})
			}
		}
	}

	// Strip the seeds: the mask is the ring only, never the nucleus itself.
	for i := range out {
		if dist[i] == 0 {
			out[i] = 0
		}
	}

	return &LabelImage{width: width, height: height, pix: out}, nil
}
