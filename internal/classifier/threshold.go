package classifier

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/image-segment-mcp/internal/imaging"
)

// DefaultThreshold is the luminance level used when none is configured.
const DefaultThreshold uint8 = 128

// ThresholdClassifier labels pixels by luminance: pixels at or above Level
// are class 1, the rest class 0. With Invert set, dark pixels are class 1.
// Fully transparent pixels are always class 0, whatever their color.
//
// It stands in for a real model when none is configured, e.g. for a subject
// photographed against a plain dark or light backdrop.
type ThresholdClassifier struct {
	Level  uint8
	Invert bool
}

// NewThresholdClassifier returns a classifier with the given level. A level
// of 0 selects DefaultThreshold.
func NewThresholdClassifier(level uint8, invert bool) *ThresholdClassifier {
	if level == 0 {
		level = DefaultThreshold
	}
	return &ThresholdClassifier{Level: level, Invert: invert}
}

// Infer thresholds img at its own resolution.
func (c *ThresholdClassifier) Infer(ctx context.Context, img image.Image) (*imaging.ClassificationGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInferenceFailed, imaging.ErrEmptyInput)
	}

	bin := segment.Threshold(img, c.Level)
	b := bin.Bounds()
	origin := img.Bounds().Min
	grid := &imaging.ClassificationGrid{
		Width:  b.Dx(),
		Height: b.Dy(),
		Values: make([]int32, b.Dx()*b.Dy()),
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			// segment.Threshold reports transparent black as white.
			if _, _, _, a := img.At(origin.X+x, origin.Y+y).RGBA(); a == 0 {
				continue
			}
			bright := bin.Pix[y*bin.Stride+x] != 0
			if bright != c.Invert {
				grid.Values[y*grid.Width+x] = 1
			}
		}
	}
	return grid, nil
}
