package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// ClassificationGrid holds one class index per pixel, as produced by a
// segmentation model. Values are stored row-major. Index 0 is the background
// class.
type ClassificationGrid struct {
	// Width is the number of columns.
	Width int `json:"width"`

	// Height is the number of rows.
	Height int `json:"height"`

	// Values holds Width*Height class indices, row by row.
	Values []int32 `json:"values"`
}

// NewClassificationGrid builds a grid from nested rows.
//
// Returns an error wrapping ErrEmptyInput if rows is empty or the first row
// has no columns. Ragged rows and negative class indices are rejected.
func NewClassificationGrid(rows [][]int32) (*ClassificationGrid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("classification grid: %w", ErrEmptyInput)
	}

	width := len(rows[0])
	g := &ClassificationGrid{
		Width:  width,
		Height: len(rows),
		Values: make([]int32, 0, width*len(rows)),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("classification grid: row %d has %d columns, want %d", y, len(row), width)
		}
		for x, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("classification grid: negative class %d at (%d,%d)", v, x, y)
			}
		}
		g.Values = append(g.Values, row...)
	}
	return g, nil
}

// GridFromLabelImage reads a label map, taking each pixel's gray level as its
// class index. Paletted maps use the palette index and 16-bit gray maps the
// full 16-bit value. Segmentation models commonly export their argmax output
// this way, one PNG per image.
func GridFromLabelImage(img image.Image) (*ClassificationGrid, error) {
	if img == nil {
		return nil, fmt.Errorf("label image: %w", ErrEmptyInput)
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("label image %dx%d: %w", bounds.Dx(), bounds.Dy(), ErrEmptyInput)
	}

	g := &ClassificationGrid{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Values: make([]int32, bounds.Dx()*bounds.Dy()),
	}

	// Paletted and 16-bit gray PNGs carry the class index directly; anything
	// else goes through the 8-bit gray model.
	switch src := img.(type) {
	case *image.Paletted:
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				g.Values[y*g.Width+x] = int32(src.ColorIndexAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		return g, nil
	case *image.Gray16:
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				g.Values[y*g.Width+x] = int32(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return g, nil
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			g.Values[y*g.Width+x] = int32(c.Y)
		}
	}
	return g, nil
}

// At returns the class index at (x, y). It panics if the point is outside the grid.
func (g *ClassificationGrid) At(x, y int) int32 {
	return g.Values[y*g.Width+x]
}

// Empty reports whether the grid has no cells.
func (g *ClassificationGrid) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0 || len(g.Values) < g.Width*g.Height
}
