package renderer

import "testing"

func TestDrawingBufferSize(t *testing.T) {
	r := &Renderer{config: Config{Width: 800, Height: 600, MaxPixelRatio: 2}, pixelRatio: 1}

	r.SetPixelRatio(3)
	if r.PixelRatio() != 2 {
		t.Errorf("expected pixel ratio capped at 2, got %v", r.PixelRatio())
	}
	w, h := r.DrawingBufferSize()
	if w != 1600 || h != 1200 {
		t.Errorf("expected 1600x1200, got %dx%d", w, h)
	}

	r.config.Width, r.config.Height = 0, 0
	w, h = r.DrawingBufferSize()
	if w != 1 || h != 1 {
		t.Errorf("expected a 1x1 minimum, got %dx%d", w, h)
	}
}
