package imaging

import "math"

// Bounds is a rectangle in pixel coordinates; (X1,Y1) inclusive, (X2,Y2) exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// MaskStatsResult summarizes how much of a mask is foreground.
type MaskStatsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ForegroundPixels counts pixels with a non-zero mask value.
	ForegroundPixels int `json:"foreground_pixels"`

	// Coverage is ForegroundPixels as a percentage of all pixels, one decimal.
	Coverage float64 `json:"coverage_percent"`

	// Bounds is the tightest box around the foreground, nil when there is none.
	Bounds *Bounds `json:"bounds,omitempty"`
}

// MaskStats counts foreground pixels and finds their bounding box.
func MaskStats(mask *BinaryMask) *MaskStatsResult {
	w, h := mask.Width(), mask.Height()
	res := &MaskStatsResult{Width: w, Height: h}

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.ValueAt(x, y) == 0 {
				continue
			}
			res.ForegroundPixels++
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if total := w * h; total > 0 {
		res.Coverage = math.Round(float64(res.ForegroundPixels)/float64(total)*1000) / 10
	}
	if res.ForegroundPixels > 0 {
		res.Bounds = &Bounds{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}
	}
	return res
}
