package texture

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
)

// Fit scales img down so that neither side exceeds maxSize, keeping the
// aspect ratio. Images already within bounds, and maxSize <= 0, return img
// unchanged.
func Fit(img *image.RGBA, maxSize int) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return img
	}
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	return transform.Resize(img, w, h, transform.Linear)
}
