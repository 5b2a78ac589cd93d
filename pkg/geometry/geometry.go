// Package geometry builds triangle meshes on the CPU: extruded text,
// tori and the helpers they share. Nothing here touches the GPU; the
// renderer uploads a Geometry and drops its buffers when it is disposed.
package geometry

import (
	"github.com/Faultbox/textscene/pkg/math"
)

// Geometry is a triangle mesh with per-vertex attributes.
// Positions and Normals hold xyz triplets, UVs hold uv pairs.
// When Indices is nil every three consecutive vertices form a triangle.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32

	disposed  bool
	onDispose []func(*Geometry)
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	if g.Indices != nil {
		return len(g.Indices) / 3
	}
	return g.VertexCount() / 3
}

// Vertex returns the position of vertex i.
func (g *Geometry) Vertex(i int) math.Vec3 {
	return math.Vec3{X: g.Positions[i*3], Y: g.Positions[i*3+1], Z: g.Positions[i*3+2]}
}

// BoundingBox returns the axis-aligned bounds of all vertices.
// An empty geometry yields an empty box.
func (g *Geometry) BoundingBox() math.Box3 {
	box := math.EmptyBox()
	for i := 0; i < g.VertexCount(); i++ {
		box.ExpandByPoint(g.Vertex(i))
	}
	return box
}

// Translate moves every vertex by (x, y, z).
func (g *Geometry) Translate(x, y, z float32) {
	for i := 0; i+2 < len(g.Positions); i += 3 {
		g.Positions[i] += x
		g.Positions[i+1] += y
		g.Positions[i+2] += z
	}
}

// Center translates the geometry so its bounding box is centered on the
// origin and returns the applied offset.
func (g *Geometry) Center() math.Vec3 {
	box := g.BoundingBox()
	if box.IsEmpty() {
		return math.Vec3{}
	}
	offset := box.Center().Scale(-1)
	g.Translate(offset.X, offset.Y, offset.Z)
	return offset
}

// OnDispose registers fn to run when the geometry is disposed.
// Registering on an already disposed geometry runs fn immediately.
func (g *Geometry) OnDispose(fn func(*Geometry)) {
	if g.disposed {
		fn(g)
		return
	}
	g.onDispose = append(g.onDispose, fn)
}

// Dispose releases the geometry. Listeners run once; later calls are no-ops.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	listeners := g.onDispose
	g.onDispose = nil
	for _, fn := range listeners {
		fn(g)
	}
}

// Disposed reports whether Dispose has been called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// computeFlatNormals fills Normals for a non-indexed geometry with one
// face normal per triangle.
func (g *Geometry) computeFlatNormals() {
	g.Normals = make([]float32, len(g.Positions))
	for t := 0; t < g.VertexCount()/3; t++ {
		a, b, c := g.Vertex(t*3), g.Vertex(t*3+1), g.Vertex(t*3+2)
		n := c.Sub(b).Cross(a.Sub(b)).Normalize()
		for k := 0; k < 3; k++ {
			o := (t*3 + k) * 3
			g.Normals[o] = n.X
			g.Normals[o+1] = n.Y
			g.Normals[o+2] = n.Z
		}
	}
}
