package classifier

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestThresholdClassifier(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{0, 0, 0, 255})
	img.Set(1, 0, color.RGBA{255, 255, 255, 255})
	img.Set(2, 0, color.RGBA{40, 40, 40, 255})

	tests := []struct {
		name   string
		invert bool
		want   []int32
	}{
		{"bright is foreground", false, []int32{0, 1, 0}},
		{"dark is foreground", true, []int32{1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewThresholdClassifier(0, tt.invert)
			if c.Level != DefaultThreshold {
				t.Errorf("Level: got %d, want %d", c.Level, DefaultThreshold)
			}
			grid, err := c.Infer(context.Background(), img)
			if err != nil {
				t.Fatalf("Infer failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, grid.Values); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThresholdClassifier_TransparentIsBackground(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{0, 0, 0, 0})
	img.SetNRGBA(1, 0, color.NRGBA{255, 255, 255, 0})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(3, 0, color.NRGBA{0, 0, 0, 255})

	tests := []struct {
		name   string
		invert bool
		want   []int32
	}{
		{"bright is foreground", false, []int32{0, 0, 1, 0}},
		{"dark is foreground", true, []int32{0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := NewThresholdClassifier(0, tt.invert).Infer(context.Background(), img)
			if err != nil {
				t.Fatalf("Infer failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, grid.Values); diff != "" {
				t.Errorf("grid mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestThresholdClassifier_Errors(t *testing.T) {
	c := NewThresholdClassifier(100, false)

	if _, err := c.Infer(context.Background(), image.NewRGBA(image.Rect(0, 0, 0, 0))); !errors.Is(err, ErrInferenceFailed) {
		t.Errorf("empty image: got %v, want ErrInferenceFailed", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Infer(ctx, testImage(2, 2)); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled: got %v, want context.Canceled", err)
	}
}
