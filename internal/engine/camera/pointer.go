package camera

// PointerState is the mouse as sampled once per frame.
type PointerState struct {
	X, Y  float32 // position in window pixels
	Left  bool
	Right bool
	Wheel float32 // positive scrolls up
}

// HandlePointer turns pointer motion into orbit input. Dragging with the
// left button rotates, with the right button pans, and the wheel zooms.
// height is the viewport height in the same units as X and Y.
func (o *OrbitControls) HandlePointer(p PointerState, height float32) {
	down := p.Left || p.Right
	if down && o.pointer.down {
		dx, dy := p.X-o.pointer.x, p.Y-o.pointer.y
		if p.Right {
			o.Pan(dx, dy, height)
		} else {
			o.Rotate(dx, dy, height)
		}
	}
	o.pointer.x, o.pointer.y, o.pointer.down = p.X, p.Y, down

	if p.Wheel != 0 {
		o.Zoom(p.Wheel)
	}
}
