package camera

import "github.com/chewxy/math32"

// Viewport is a drawing area in window units and its pixel density.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float32
}

// NewViewport builds a viewport whose pixel ratio is dpr capped at maxRatio.
func NewViewport(width, height int, dpr, maxRatio float32) Viewport {
	return Viewport{Width: width, Height: height, PixelRatio: ClampPixelRatio(dpr, maxRatio)}
}

// ClampPixelRatio limits a device pixel ratio to maxRatio. Unset or
// invalid ratios count as one; a non-positive maxRatio means no cap.
func ClampPixelRatio(dpr, maxRatio float32) float32 {
	if dpr <= 0 || math32.IsNaN(dpr) || math32.IsInf(dpr, 0) {
		dpr = 1
	}
	if maxRatio > 0 {
		dpr = math32.Min(dpr, maxRatio)
	}
	return dpr
}

// Empty reports whether the viewport has no area, as when minimized.
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0
}

// Aspect returns width / height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Empty() {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// BufferSize returns the size in device pixels, at least 1x1.
func (v Viewport) BufferSize() (int32, int32) {
	w := int32(float32(v.Width)*v.PixelRatio + 0.5)
	h := int32(float32(v.Height)*v.PixelRatio + 0.5)
	return max(w, 1), max(h, 1)
}
