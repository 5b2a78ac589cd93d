package math

import "github.com/chewxy/math32"

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox returns a box that contains nothing; expanding it by a point
// yields a degenerate box at that point.
func EmptyBox() Box3 {
	inf := math32.Inf(1)
	return Box3{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint grows the box to include p.
func (b *Box3) ExpandByPoint(p Vec3) {
	b.Min.X = math32.Min(b.Min.X, p.X)
	b.Min.Y = math32.Min(b.Min.Y, p.Y)
	b.Min.Z = math32.Min(b.Min.Z, p.Z)
	b.Max.X = math32.Max(b.Max.X, p.X)
	b.Max.Y = math32.Max(b.Max.Y, p.Y)
	b.Max.Z = math32.Max(b.Max.Z, p.Z)
}

// Union grows the box to include other.
func (b *Box3) Union(other Box3) {
	if other.IsEmpty() {
		return
	}
	b.ExpandByPoint(other.Min)
	b.ExpandByPoint(other.Max)
}

// Center returns the box center. An empty box has center zero.
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent along each axis.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside or on the box.
func (b Box3) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}
