package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// FeatherMask softens mask edges with a Gaussian blur of the given radius.
//
// The result holds graduated values near the foreground boundary, which
// Composite turns into a linear blend instead of a hard cut. A radius of 0 (or
// less) returns the mask unchanged.
func FeatherMask(mask *BinaryMask, radius float64) (*BinaryMask, error) {
	if mask == nil || mask.Gray == nil || mask.Bounds().Empty() {
		return nil, fmt.Errorf("feather mask: %w", ErrEmptyInput)
	}
	if radius <= 0 {
		return mask, nil
	}

	blurred := blur.Gaussian(mask.Gray, radius)
	b := blurred.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// gray input: R == G == B
			out.Pix[y*out.Stride+x] = blurred.Pix[y*blurred.Stride+x*4]
		}
	}
	return &BinaryMask{Gray: out}, nil
}
