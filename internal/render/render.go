// Package render turns labeled masks into viewable images for visual
// inspection of a segmentation or a derived cytoplasm ring.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/histoquant/nucfeat/internal/labels"
)

// LabelOverlay renders a labeled mask as a color image: background is black,
// every object ID maps to a fixed, visually distinct color. The mapping is a
// pure function of the ID, so the same object keeps its color across the
// nucleus mask and the ring mask derived from it.
func LabelOverlay(im *labels.LabelImage) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, im.Width(), im.Height()))
	cache := make(map[int]color.NRGBA)

	for y := 0; y < im.Height(); y++ {
		for x := 0; x < im.Width(); x++ {
			id := im.At(x, y)
			if id == 0 {
				out.SetNRGBA(x, y, color.NRGBA{A: 255})
				continue
			}
			c, ok := cache[id]
			if !ok {
				c = ObjectColor(id)
				cache[id] = c
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// ObjectColor returns the display color of an object ID.
//
// Hues advance by the golden angle per ID, which keeps neighboring IDs far
// apart on the color wheel; saturation and value are fixed so every object
// reads clearly against the black background.
func ObjectColor(id int) color.NRGBA {
	const goldenAngle = 137.50776405003785

	hue := math.Mod(float64(id)*goldenAngle, 360)
	r, g, b := colorful.Hsv(hue, 0.85, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return imgio.Save(path, img, imgio.PNGEncoder())
}
