package classifier

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/image-segment-mcp/internal/imaging"
)

var (
	// ErrModelUnavailable means the classifier failed to initialize.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrInferenceFailed means the classifier ran but produced no usable result.
	ErrInferenceFailed = errors.New("inference failed")
)

// Classifier produces a class-index grid for an image.
type Classifier interface {
	Infer(ctx context.Context, img image.Image) (*imaging.ClassificationGrid, error)
}

// Func adapts an ordinary function to the Classifier interface.
type Func func(ctx context.Context, img image.Image) (*imaging.ClassificationGrid, error)

// Infer calls f(ctx, img).
func (f Func) Infer(ctx context.Context, img image.Image) (*imaging.ClassificationGrid, error) {
	return f(ctx, img)
}

// Result is the outcome of one asynchronous inference.
type Result struct {
	Grid *imaging.ClassificationGrid
	Err  error
}

// InferAsync runs c on a new goroutine and returns a channel that receives
// exactly one Result and is then closed.
//
// Errors are normalized: a classifier error that is not already classified
// is wrapped with ErrInferenceFailed, and an empty grid counts as a failure.
// If ctx is done first, the Result carries ctx.Err().
func InferAsync(ctx context.Context, c Classifier, img image.Image) <-chan Result {
	out := make(chan Result, 1)
	done := make(chan Result, 1)

	go func() {
		grid, err := c.Infer(ctx, img)
		done <- normalize(grid, err)
	}()

	go func() {
		defer close(out)
		select {
		case r := <-done:
			out <- r
		case <-ctx.Done():
			out <- Result{Err: ctx.Err()}
		}
	}()

	return out
}

// Infer runs c synchronously with the same error normalization as InferAsync.
func Infer(ctx context.Context, c Classifier, img image.Image) (*imaging.ClassificationGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := normalize(c.Infer(ctx, img))
	return r.Grid, r.Err
}

func normalize(grid *imaging.ClassificationGrid, err error) Result {
	switch {
	case err != nil:
		if errors.Is(err, ErrModelUnavailable) || errors.Is(err, ErrInferenceFailed) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{Err: err}
		}
		return Result{Err: fmt.Errorf("%w: %w", ErrInferenceFailed, err)}
	case grid.Empty():
		return Result{Err: fmt.Errorf("%w: classifier returned no grid", ErrInferenceFailed)}
	}
	return Result{Grid: grid}
}
