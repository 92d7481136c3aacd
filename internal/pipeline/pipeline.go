// Package pipeline runs one segmentation request end to end:
// inference, mask extraction, resize, and optional compositing.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/image-segment-mcp/internal/classifier"
	"github.com/ironsheep/image-segment-mcp/internal/imaging"
)

// Mode reports which display artifacts a Response carries.
type Mode string

const (
	// ModeComposite means a background was supplied and Composite is set.
	ModeComposite Mode = "composite"

	// ModeMaskOnly means no background was supplied; only Source and Mask are set.
	ModeMaskOnly Mode = "mask-only"
)

// Request is the input of one segmentation action.
type Request struct {
	// Source is the image to segment.
	Source image.Image

	// Background replaces the non-subject pixels. Nil selects mask-only mode.
	Background image.Image
}

// Response carries the artifacts a display layer renders. Each image is
// independent; Composite is nil in mask-only mode.
type Response struct {
	Source    image.Image
	Mask      *imaging.BinaryMask
	Composite *image.NRGBA
	Mode      Mode
	Stats     *imaging.MaskStatsResult

	// GridWidth and GridHeight are the classifier's output resolution.
	GridWidth  int
	GridHeight int
}

// Pipeline holds the collaborators of a segmentation run. The zero value is
// not usable; Classifier must be set.
type Pipeline struct {
	Classifier classifier.Classifier

	// InputSize is the square resolution the classifier expects.
	// Zero selects imaging.DefaultModelInputSize.
	InputSize int

	// Feather blurs the resized mask with this radius before compositing.
	// Zero keeps the mask hard.
	Feather float64

	Logger *zap.Logger
}

// New returns a Pipeline using c with default settings.
func New(c classifier.Classifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{Classifier: c, Logger: logger}
}

// Run executes the request.
//
// Inference failure aborts before mask extraction and nothing partial is
// returned. A missing background is not an error: the Response comes back
// in ModeMaskOnly with Composite nil.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Response, error) {
	log := p.logger()
	if p.Classifier == nil {
		return nil, fmt.Errorf("pipeline: %w: no classifier configured", classifier.ErrModelUnavailable)
	}
	if req.Source == nil || req.Source.Bounds().Empty() {
		return nil, fmt.Errorf("pipeline: source %w", imaging.ErrEmptyInput)
	}

	w, h := req.Source.Bounds().Dx(), req.Source.Bounds().Dy()
	start := time.Now()

	input, err := imaging.PrepareModelInput(req.Source, p.InputSize)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	var grid *imaging.ClassificationGrid
	select {
	case r := <-classifier.InferAsync(ctx, p.Classifier, input):
		if r.Err != nil {
			log.Warn("inference failed", zap.Error(r.Err))
			return nil, fmt.Errorf("pipeline: %w", r.Err)
		}
		grid = r.Grid
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	log.Debug("inference complete",
		zap.Int("grid_width", grid.Width),
		zap.Int("grid_height", grid.Height),
		zap.Duration("elapsed", time.Since(start)))

	mask, err := imaging.ExtractMask(grid)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	mask, err = imaging.ResizeMask(mask, w, h)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if p.Feather > 0 {
		if mask, err = imaging.FeatherMask(mask, p.Feather); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}

	resp := &Response{
		Source:     req.Source,
		Mask:       mask,
		Mode:       ModeMaskOnly,
		Stats:      imaging.MaskStats(mask),
		GridWidth:  grid.Width,
		GridHeight: grid.Height,
	}

	if req.Background != nil {
		if err := composite(req, resp); err != nil {
			return nil, err
		}
	}

	log.Info("segmentation complete",
		zap.String("mode", string(resp.Mode)),
		zap.Int("width", w),
		zap.Int("height", h),
		zap.Float64("coverage_percent", resp.Stats.Coverage),
		zap.Duration("elapsed", time.Since(start)))
	return resp, nil
}

// composite resizes the background to the source and blends it under the mask.
func composite(req Request, resp *Response) error {
	w, h := req.Source.Bounds().Dx(), req.Source.Bounds().Dy()
	bg, err := imaging.Resize(req.Background, w, h, imaging.FilterLinear)
	if err != nil {
		return fmt.Errorf("pipeline: background: %w", err)
	}
	out, err := imaging.Composite(req.Source, resp.Mask, bg)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	resp.Composite = out
	resp.Mode = ModeComposite
	return nil
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
