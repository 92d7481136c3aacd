package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Mask values written by ExtractMask.
const (
	MaskBackground uint8 = 0
	MaskForeground uint8 = 255
)

// BinaryMask is a single-channel raster marking foreground (255) and
// background (0) pixels. Masks produced by FeatherMask may also hold
// intermediate values, which Composite treats as blend weights.
type BinaryMask struct {
	*image.Gray
}

// Width returns the mask width in pixels.
func (m *BinaryMask) Width() int { return m.Bounds().Dx() }

// Height returns the mask height in pixels.
func (m *BinaryMask) Height() int { return m.Bounds().Dy() }

// ValueAt returns the mask value at (x, y) relative to the mask origin.
func (m *BinaryMask) ValueAt(x, y int) uint8 {
	b := m.Bounds()
	return m.GrayAt(b.Min.X+x, b.Min.Y+y).Y
}

// ExtractMask reduces a classification grid to a binary mask.
//
// Cells are visited in row-major order. A cell holding any non-zero class
// becomes 255; class 0 becomes 0. No other class distinctions are kept.
//
// Returns an error wrapping ErrEmptyInput for a nil grid or one with a zero
// dimension, never a zero-sized mask.
func ExtractMask(grid *ClassificationGrid) (*BinaryMask, error) {
	if grid.Empty() {
		return nil, fmt.Errorf("extract mask: %w", ErrEmptyInput)
	}

	out := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
	for y := 0; y < grid.Height; y++ {
		row := y * grid.Width
		for x := 0; x < grid.Width; x++ {
			if grid.Values[row+x] != 0 {
				out.Pix[y*out.Stride+x] = MaskForeground
			}
		}
	}
	return &BinaryMask{Gray: out}, nil
}

// ResizeMask stretches a mask to exactly width x height using nearest
// neighbour sampling, so a hard 0/255 mask stays hard.
func ResizeMask(mask *BinaryMask, width, height int) (*BinaryMask, error) {
	if mask == nil || mask.Gray == nil {
		return nil, fmt.Errorf("resize mask: %w", ErrEmptyInput)
	}
	resized, err := Resize(mask.Gray, width, height, FilterNearest)
	if err != nil {
		return nil, fmt.Errorf("resize mask: %w", err)
	}
	return &BinaryMask{Gray: toGray(resized)}, nil
}

// MaskFromImage converts an arbitrary image into a mask by taking its gray
// level scaled by its alpha, so a white mask with varying transparency and a
// black-and-white opaque mask read the same. Used when a mask arrives as a
// file rather than from ExtractMask.
func MaskFromImage(img image.Image) (*BinaryMask, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("mask image: %w", ErrEmptyInput)
	}
	return &BinaryMask{Gray: toGray(img)}, nil
}

// toGray copies img into a zero-origin *image.Gray.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == (image.Point{}) {
		return g
	}
	// imaging.Grayscale keeps luminance in every RGB channel of an NRGBA
	// and leaves alpha alone.
	src := imaging.Grayscale(img)
	out := image.NewGray(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	for y := 0; y < out.Rect.Dy(); y++ {
		for x := 0; x < out.Rect.Dx(); x++ {
			i := y*src.Stride + x*4
			lum, alpha := uint32(src.Pix[i]), uint32(src.Pix[i+3])
			out.Pix[y*out.Stride+x] = uint8((lum*alpha + 127) / 255)
		}
	}
	return out
}
