// Package math provides the vector and matrix types used by the scene.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product of v and other.
func (v Vec2) Cross(other Vec2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated 90 degrees clockwise.
func (v Vec2) Perp() Vec2 {
	return Vec2{v.Y, -v.X}
}

// Lerp interpolates between v and other.
func (v Vec2) Lerp(other Vec2, t float32) Vec2 {
	return Vec2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// ApproxEqual reports whether v and other differ by less than eps on both axes.
func (v Vec2) ApproxEqual(other Vec2, eps float32) bool {
	return math32.Abs(v.X-other.X) < eps && math32.Abs(v.Y-other.Y) < eps
}
