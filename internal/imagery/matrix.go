package imagery

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/histoquant/nucfeat/internal/labels"
)

// Matrix is a single-channel intensity image: row-major float64 values
// normalized to [0, 1].
type Matrix struct {
	// Width and Height are the image dimensions in pixels.
	Width  int
	Height int

	// Pix holds the pixel values in row-major order, length Width*Height.
	Pix []float64
}

// NewMatrix allocates a zero-valued matrix of the given dimensions.
func NewMatrix(width, height int) (*Matrix, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid matrix dimensions %dx%d", width, height)
	}
	return &Matrix{Width: width, Height: height, Pix: make([]float64, width*height)}, nil
}

// At returns the value at (x, y). No bounds checking is performed.
func (m *Matrix) At(x, y int) float64 {
	return m.Pix[y*m.Width+x]
}

// Set stores a value at (x, y). No bounds checking is performed.
func (m *Matrix) Set(x, y int, v float64) {
	m.Pix[y*m.Width+x] = v
}

// ToMatrix converts a decoded image into a normalized luminance matrix.
//
// 16-bit grayscale images keep their full depth (value / 65535). Everything
// else goes through a grayscale conversion first and is normalized from
// 8-bit (value / 255).
func ToMatrix(img image.Image) *Matrix {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	m := &Matrix{Width: width, Height: height, Pix: make([]float64, width*height)}

	if g16, ok := img.(*image.Gray16); ok {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := g16.Gray16At(x+bounds.Min.X, y+bounds.Min.Y).Y
				m.Pix[y*width+x] = float64(v) / 65535.0
			}
		}
		return m
	}

	gray := imaging.Grayscale(img)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Grayscale output has R == G == B.
			v := gray.NRGBAAt(x, y).R
			m.Pix[y*width+x] = float64(v) / 255.0
		}
	}
	return m
}

// ToLabelImage decodes a grayscale image into a labeled mask: the pixel value
// is the object ID, zero is background.
//
// 8-bit grayscale supports up to 255 objects, 16-bit up to 65535. Non-gray
// images fall back to their 8-bit red channel, which matches how label masks
// saved as RGB with identical channels decode.
func ToLabelImage(img image.Image) (*labels.LabelImage, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pix := make([]int, width*height)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pix[y*width+x] = int(src.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y)
			}
		}
	case *image.Gray16:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pix[y*width+x] = int(src.Gray16At(x+bounds.Min.X, y+bounds.Min.Y).Y)
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, _, _, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				pix[y*width+x] = int(r >> 8)
			}
		}
	}

	return labels.FromPixels(width, height, pix)
}

// ToForeground thresholds a decoded image into a binary mask: any pixel with
// a nonzero 8-bit luminance is foreground. Used when the caller holds a
// binary segmentation instead of a labeled one.
func ToForeground(img image.Image) []bool {
	m := ToMatrix(img)
	fg := make([]bool, len(m.Pix))
	for i, v := range m.Pix {
		fg[i] = v > 0
	}
	return fg
}
