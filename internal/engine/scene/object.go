// Package scene provides the scene graph: groups and meshes with
// position, Euler rotation and scale, composed parent to child.
package scene

import (
	"slices"

	"github.com/Faultbox/textscene/pkg/geometry"
	"github.com/Faultbox/textscene/pkg/math"
)

// Object is a node in the scene graph. A node with a Geometry and a
// Material is drawn as a mesh; a node without one only groups children.
type Object struct {
	Name     string
	Position math.Vec3
	Rotation math.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    math.Vec3
	Visible  bool

	Geometry *geometry.Geometry
	Material *Material

	parent   *Object
	children []*Object
}

// NewGroup creates an empty node.
func NewGroup(name string) *Object {
	return &Object{Name: name, Scale: math.Splat(1), Visible: true}
}

// NewMesh creates a drawable node.
func NewMesh(name string, g *geometry.Geometry, m *Material) *Object {
	o := NewGroup(name)
	o.Geometry = g
	o.Material = m
	return o
}

// IsMesh reports whether the node has something to draw.
func (o *Object) IsMesh() bool {
	return o.Geometry != nil && o.Material != nil
}

// Add attaches children, detaching each from its previous parent.
func (o *Object) Add(children ...*Object) {
	for _, c := range children {
		if c == nil || c == o {
			continue
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = o
		o.children = append(o.children, c)
	}
}

// Remove detaches child and reports whether it was attached to o.
func (o *Object) Remove(child *Object) bool {
	i := slices.Index(o.children, child)
	if i < 0 {
		return false
	}
	o.children = slices.Delete(o.children, i, i+1)
	child.parent = nil
	return true
}

// Clear detaches and returns all children.
func (o *Object) Clear() []*Object {
	removed := o.children
	o.children = nil
	for _, c := range removed {
		c.parent = nil
	}
	return removed
}

// Children returns a copy of the child list.
func (o *Object) Children() []*Object {
	return slices.Clone(o.children)
}

// Parent returns the node o is attached to, or nil.
func (o *Object) Parent() *Object {
	return o.parent
}

// Traverse calls fn for o and every descendant, depth first, parents
// before children.
func (o *Object) Traverse(fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		c.Traverse(fn)
	}
}

// FindByName returns the first node named name in o's subtree.
func (o *Object) FindByName(name string) *Object {
	if o.Name == name {
		return o
	}
	for _, c := range o.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// LocalMatrix returns the transform relative to the parent.
func (o *Object) LocalMatrix() math.Mat4 {
	return math.Compose(o.Position, o.Rotation, o.Scale)
}

// WorldMatrix returns the transform from local space to world space.
func (o *Object) WorldMatrix() math.Mat4 {
	if o.parent == nil {
		return o.LocalMatrix()
	}
	return o.parent.WorldMatrix().Mul(o.LocalMatrix())
}
