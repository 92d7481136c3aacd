package classifier

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/image-segment-mcp/internal/imaging"
)

// LabelMapClassifier returns a class-index grid read from a label-map image.
//
// The label map is the model's argmax output saved as an 8-bit gray or
// paletted PNG, one class index per pixel, at the model's output resolution.
// It is decoded once in NewLabelMapClassifier; every Infer call returns a
// fresh copy.
type LabelMapClassifier struct {
	path string
	grid *imaging.ClassificationGrid
}

// NewLabelMapClassifier loads the label map at path. A missing or
// undecodable file is reported as ErrModelUnavailable.
func NewLabelMapClassifier(path string) (*LabelMapClassifier, error) {
	img, err := imaging.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: label map %s: %w", ErrModelUnavailable, path, err)
	}
	grid, err := imaging.GridFromLabelImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: label map %s: %w", ErrModelUnavailable, path, err)
	}
	return &LabelMapClassifier{path: path, grid: grid}, nil
}

// Path returns the label map's file path.
func (c *LabelMapClassifier) Path() string { return c.path }

// Infer returns a copy of the label map's grid. img is only checked for
// being non-empty.
func (c *LabelMapClassifier) Infer(ctx context.Context, img image.Image) (*imaging.ClassificationGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %w", ErrInferenceFailed, imaging.ErrEmptyInput)
	}

	values := make([]int32, len(c.grid.Values))
	copy(values, c.grid.Values)
	return &imaging.ClassificationGrid{
		Width:  c.grid.Width,
		Height: c.grid.Height,
		Values: values,
	}, nil
}
