package imaging

import (
	"fmt"
	"image"
	"image/draw"
)

// Composite blends source over background using mask as the per-pixel weight.
//
// For every pixel and channel:
//
//	out = source*m/255 + background*(255-m)/255
//
// so m=255 selects the source and m=0 selects the background. Masks from
// ExtractMask only hold 0 and 255, which makes the blend a hard selection.
//
// mask and background must already match the source's dimensions (see
// ResizeMask and Resize); a mismatch is reported as an error. The result has
// the source's dimensions with its origin at (0,0).
func Composite(source image.Image, mask *BinaryMask, background image.Image) (*image.NRGBA, error) {
	if source == nil || source.Bounds().Empty() {
		return nil, fmt.Errorf("composite: source %w", ErrEmptyInput)
	}
	if mask == nil || mask.Gray == nil {
		return nil, fmt.Errorf("composite: mask %w", ErrEmptyInput)
	}
	if background == nil {
		return nil, fmt.Errorf("composite: background %w", ErrEmptyInput)
	}

	w, h := source.Bounds().Dx(), source.Bounds().Dy()
	if mask.Width() != w || mask.Height() != h {
		return nil, fmt.Errorf("composite: mask is %dx%d, source is %dx%d", mask.Width(), mask.Height(), w, h)
	}
	if bw, bh := background.Bounds().Dx(), background.Bounds().Dy(); bw != w || bh != h {
		return nil, fmt.Errorf("composite: background is %dx%d, source is %dx%d", bw, bh, w, h)
	}

	src := toNRGBA(source)
	bg := toNRGBA(background)
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m := uint32(mask.ValueAt(x, y))
			i := y*out.Stride + x*4
			si := y*src.Stride + x*4
			bi := y*bg.Stride + x*4
			for c := 0; c < 4; c++ {
				out.Pix[i+c] = blend(src.Pix[si+c], bg.Pix[bi+c], m)
			}
		}
	}
	return out, nil
}

// blend mixes a and b with weight m/255 on a, rounding to nearest.
func blend(a, b uint8, m uint32) uint8 {
	switch m {
	case 255:
		return a
	case 0:
		return b
	}
	return uint8((uint32(a)*m + uint32(b)*(255-m) + 127) / 255)
}

// toNRGBA returns img as a zero-origin *image.NRGBA, copying when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
