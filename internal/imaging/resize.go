package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Filter names a resampling filter for Resize.
type Filter string

// Supported resampling filters.
const (
	FilterNearest Filter = "nearest"
	FilterLinear  Filter = "linear"
	FilterLanczos Filter = "lanczos"
)

// DefaultModelInputSize is the square input resolution DeepLabV3 expects.
const DefaultModelInputSize = 513

// MaxDimension caps every width or height a caller can ask for.
const MaxDimension = 16384

// checkTarget validates a requested output size.
func checkTarget(what string, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%s: target %dx%d: %w", what, width, height, ErrEmptyInput)
	}
	if width > MaxDimension || height > MaxDimension {
		return fmt.Errorf("%s: target %dx%d exceeds %d: %w", what, width, height, MaxDimension, ErrTooLarge)
	}
	return nil
}

// ParseFilter maps a filter name to a Filter. An empty name selects linear.
func ParseFilter(name string) (Filter, error) {
	switch Filter(name) {
	case "":
		return FilterLinear, nil
	case FilterNearest, FilterLinear, FilterLanczos:
		return Filter(name), nil
	default:
		return "", fmt.Errorf("unknown filter: %s", name)
	}
}

func (f Filter) resampler() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterLanczos:
		return imaging.Lanczos
	default:
		return imaging.Linear
	}
}

// Resize stretches img to exactly width x height.
//
// The aspect ratio is not preserved: the whole source is mapped onto the whole
// target, so resizing twice always ends at the last requested size regardless
// of the intermediate one. The result has its origin at (0,0).
//
// Returns an error wrapping ErrEmptyInput if img has no pixels or either
// target dimension is not positive, and ErrTooLarge if either exceeds
// MaxDimension.
func Resize(img image.Image, width, height int, filter Filter) (*image.NRGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("resize: source %w", ErrEmptyInput)
	}
	if err := checkTarget("resize", width, height); err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, filter.resampler()), nil
}

// PrepareModelInput scales img to the classifier's fixed square input,
// filling the whole square (no crop, no letterbox).
func PrepareModelInput(img image.Image, size int) (*image.RGBA, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("model input: %w", ErrEmptyInput)
	}
	if size <= 0 {
		size = DefaultModelInputSize
	}
	if err := checkTarget("model input", size, size); err != nil {
		return nil, err
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst, nil
}
