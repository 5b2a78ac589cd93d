// Package camera provides a perspective camera and orbit controls.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
)

// PerspectiveCamera looks from Position towards Target.
type PerspectiveCamera struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32 // width / height
	Near   float32
	Far    float32

	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	projection math.Mat4
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
	}
	c.UpdateProjection()
	return c
}

// SetAspect changes the aspect ratio and recomputes the projection.
// Non-positive ratios (a minimized window) are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float32) {
	if aspect <= 0 || math32.IsNaN(aspect) || math32.IsInf(aspect, 0) {
		return
	}
	c.Aspect = aspect
	c.UpdateProjection()
}

// UpdateProjection recomputes the projection matrix after FOV, Aspect,
// Near or Far changed.
func (c *PerspectiveCamera) UpdateProjection() {
	c.projection = math.Perspective(c.FOV*math32.Pi/180, c.Aspect, c.Near, c.Far)
}

// Projection returns the projection matrix.
func (c *PerspectiveCamera) Projection() math.Mat4 {
	return c.projection
}

// View returns the view matrix.
func (c *PerspectiveCamera) View() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// Basis returns the camera's right and up axes in world space.
func (c *PerspectiveCamera) Basis() (right, up math.Vec3) {
	forward := c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward)
	return right, up
}
