// Package classifier defines the boundary to the segmentation model.
//
// A Classifier takes a source image and returns a per-pixel class-index grid
// at the model's own output resolution. The model itself is a black box: this
// package only knows how to obtain its output and how to report failure.
//
// # Implementations
//
//   - LabelMapClassifier: serves a label-map PNG exported by the model
//     (for example DeepLabV3's 65x65 argmax output)
//   - ThresholdClassifier: model-free fallback that labels bright (or dark)
//     pixels as class 1
//   - Func: adapts a plain function, mostly for tests and wiring
//
// # Asynchronous Inference
//
// Inference is the only step that may be slow. InferAsync runs a classifier
// on its own goroutine and delivers exactly one Result on the returned
// channel, honouring context cancellation.
//
// # Error Handling
//
// Failures wrap ErrModelUnavailable (the classifier could not be set up) or
// ErrInferenceFailed (it ran but produced nothing usable). Test with errors.Is.
package classifier
