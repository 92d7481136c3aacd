package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewClassificationGrid(t *testing.T) {
	g, err := NewClassificationGrid([][]int32{{0, 1, 2}, {3, 0, 15}})
	if err != nil {
		t.Fatalf("NewClassificationGrid failed: %v", err)
	}
	if g.Width != 3 || g.Height != 2 {
		t.Errorf("dimensions: got %dx%d, want 3x2", g.Width, g.Height)
	}
	if diff := cmp.Diff([]int32{0, 1, 2, 3, 0, 15}, g.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
	if got := g.At(2, 1); got != 15 {
		t.Errorf("At(2,1): got %d, want 15", got)
	}
}

func TestNewClassificationGrid_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]int32
		wantEmpty bool
	}{
		{"nil rows", nil, true},
		{"no rows", [][]int32{}, true},
		{"zero width", [][]int32{{}, {}}, true},
		{"ragged", [][]int32{{0, 1}, {0}}, false},
		{"negative class", [][]int32{{0, -1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewClassificationGrid(tt.rows)
			if err == nil {
				t.Fatalf("expected error, got grid %+v", g)
			}
			if errors.Is(err, ErrEmptyInput) != tt.wantEmpty {
				t.Errorf("errors.Is(err, ErrEmptyInput) = %v, want %v (err: %v)", !tt.wantEmpty, tt.wantEmpty, err)
			}
		})
	}
}

func TestGridFromLabelImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Pix = []uint8{0, 1, 2, 15, 0, 7}

	g, err := GridFromLabelImage(img)
	if err != nil {
		t.Fatalf("GridFromLabelImage failed: %v", err)
	}
	if diff := cmp.Diff([]int32{0, 1, 2, 15, 0, 7}, g.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestGridFromLabelImage_Paletted(t *testing.T) {
	palette := color.Palette{color.Black, color.RGBA{128, 0, 0, 255}, color.RGBA{0, 128, 0, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 2, 2), palette)
	img.SetColorIndex(1, 0, 1)
	img.SetColorIndex(0, 1, 2)

	g, err := GridFromLabelImage(img)
	if err != nil {
		t.Fatalf("GridFromLabelImage failed: %v", err)
	}
	if diff := cmp.Diff([]int32{0, 1, 2, 0}, g.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}

func TestGridFromLabelImage_Gray16(t *testing.T) {
	src := image.NewGray16(image.Rect(0, 0, 3, 1))
	src.SetGray16(1, 0, color.Gray16{Y: 15})
	src.SetGray16(2, 0, color.Gray16{Y: 300})

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if _, ok := img.(*image.Gray16); !ok {
		t.Fatalf("decoded %T, want *image.Gray16", img)
	}

	g, err := GridFromLabelImage(img)
	if err != nil {
		t.Fatalf("GridFromLabelImage failed: %v", err)
	}
	if diff := cmp.Diff([]int32{0, 15, 300}, g.Values); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}

	mask, err := ExtractMask(g)
	if err != nil {
		t.Fatalf("ExtractMask failed: %v", err)
	}
	if diff := cmp.Diff([]uint8{0, 255, 255}, mask.Pix); diff != "" {
		t.Errorf("mask mismatch (-want +got):\n%s", diff)
	}
}

func TestGridFromLabelImage_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(10, 10, 12, 11))
	img.SetGray(11, 10, color.Gray{Y: 4})

	g, err := GridFromLabelImage(img)
	if err != nil {
		t.Fatalf("GridFromLabelImage failed: %v", err)
	}
	if g.Width != 2 || g.Height != 1 {
		t.Fatalf("dimensions: got %dx%d, want 2x1", g.Width, g.Height)
	}
	if g.At(1, 0) != 4 {
		t.Errorf("At(1,0): got %d, want 4", g.At(1, 0))
	}
}

func TestGridFromLabelImage_Empty(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil", nil},
		{"zero size", image.NewGray(image.Rect(0, 0, 0, 0))},
		{"zero height", image.NewGray(image.Rect(0, 0, 5, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GridFromLabelImage(tt.img)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("expected ErrEmptyInput, got %v", err)
			}
		})
	}
}

func TestClassificationGrid_Empty(t *testing.T) {
	var nilGrid *ClassificationGrid
	if !nilGrid.Empty() {
		t.Error("nil grid should be empty")
	}
	if !(&ClassificationGrid{Width: 0, Height: 3}).Empty() {
		t.Error("zero-width grid should be empty")
	}
	if !(&ClassificationGrid{Width: 2, Height: 2, Values: []int32{0}}).Empty() {
		t.Error("grid with short Values should be empty")
	}
	if (&ClassificationGrid{Width: 1, Height: 1, Values: []int32{0}}).Empty() {
		t.Error("1x1 grid should not be empty")
	}
}
