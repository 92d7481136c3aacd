// Package imaging provides the raster operations behind the segmentation server.
//
// The package turns the per-pixel output of a segmentation classifier into a
// binary foreground mask and uses that mask to composite a subject over a
// replacement background. All operations work with standard Go image.Image
// types and use a coordinate system where (0,0) is at the top-left corner, X
// increases rightward, and Y increases downward.
//
// # Data Flow
//
//	ClassificationGrid -> ExtractMask -> ResizeMask -> [FeatherMask] -> Composite
//
// A ClassificationGrid holds one class index per pixel. ExtractMask reduces it
// to a BinaryMask where 255 marks any non-background class and 0 marks the
// background class (index 0). Masks are resized to the source image's exact
// dimensions with stretch semantics before compositing.
//
// # Thread Safety
//
// Every function is stateless and allocates fresh output buffers, so calls may
// run concurrently on different inputs. Nothing is cached between calls.
//
// # Error Handling
//
// Degenerate inputs (nil grids or images, zero width or height, non-positive
// resize targets) return errors wrapping ErrEmptyInput. Callers test for it
// with errors.Is. No function ever returns a zero-sized raster.
package imaging
