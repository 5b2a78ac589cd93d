package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
	"github.com/Faultbox/textscene/pkg/typeface"
)

// ExtrudeOptions controls how flat shapes are turned into solids.
type ExtrudeOptions struct {
	Depth float32 // length of the straight body along +Z
	Steps int     // subdivisions of the body

	BevelEnabled   bool
	BevelThickness float32 // how far the bevel reaches past each cap along Z
	BevelSize      float32 // how far the body grows past the outline
	BevelOffset    float32 // outline offset where the bevel starts
	BevelSegments  int
}

// DefaultExtrudeOptions returns a unit-depth extrusion with a small bevel.
func DefaultExtrudeOptions() ExtrudeOptions {
	return ExtrudeOptions{
		Depth:          1,
		Steps:          1,
		BevelEnabled:   true,
		BevelThickness: 0.2,
		BevelSize:      0.1,
		BevelOffset:    0,
		BevelSegments:  3,
	}
}

// Extrude builds a non-indexed solid from shapes. The front cap sits at
// z = -BevelThickness, the body spans z = 0..Depth grown by BevelSize, and
// the back cap sits at z = Depth + BevelThickness. Normals are flat.
func Extrude(shapes []typeface.Shape, opts ExtrudeOptions) *Geometry {
	if opts.Steps < 1 {
		opts.Steps = 1
	}
	if !opts.BevelEnabled {
		opts.BevelSegments = 0
		opts.BevelThickness = 0
		opts.BevelSize = 0
		opts.BevelOffset = 0
	}

	g := &Geometry{}
	for _, s := range shapes {
		extrudeShape(g, s, opts)
	}
	g.computeFlatNormals()
	return g
}

// bevelLayer is one ring of the extruded outline: an outline offset and a z.
type bevelLayer struct {
	offset float32
	z      float32
}

// layers lists every outline ring from the front cap to the back cap.
func (o ExtrudeOptions) layers() []bevelLayer {
	var out []bevelLayer
	bevel := func(b int) (offset, dz float32) {
		t := float32(b) / float32(o.BevelSegments) * math32.Pi / 2
		return o.BevelSize*math32.Sin(t) + o.BevelOffset, o.BevelThickness * math32.Cos(t)
	}

	for b := 0; b < o.BevelSegments; b++ {
		off, dz := bevel(b)
		out = append(out, bevelLayer{offset: off, z: -dz})
	}
	body := o.BevelSize + o.BevelOffset
	for s := 0; s <= o.Steps; s++ {
		out = append(out, bevelLayer{offset: body, z: o.Depth / float32(o.Steps) * float32(s)})
	}
	for b := o.BevelSegments - 1; b >= 0; b-- {
		off, dz := bevel(b)
		out = append(out, bevelLayer{offset: off, z: o.Depth + dz})
	}
	return out
}

func extrudeShape(g *Geometry, s typeface.Shape, opts ExtrudeOptions) {
	if len(s.Outer) < 3 {
		return
	}

	// Walk the outer contour clockwise and holes counter-clockwise so the
	// left-hand side of every edge faces away from the solid.
	contour := orient(s.Outer, false)
	rings := [][]math.Vec2{contour}
	var holes [][]math.Vec2
	for _, h := range s.Holes {
		if len(h) < 3 {
			continue
		}
		h = orient(h, true)
		holes = append(holes, h)
		rings = append(rings, h)
	}

	var flat, moves []math.Vec2
	for _, r := range rings {
		flat = append(flat, r...)
		moves = append(moves, bevelVectors(r)...)
	}

	faces := Triangulate(contour, holes)
	layers := opts.layers()

	grid := make([][]math.Vec3, len(layers))
	for l, layer := range layers {
		grid[l] = make([]math.Vec3, len(flat))
		for i, p := range flat {
			q := p.Add(moves[i].Scale(layer.offset))
			grid[l][i] = math.Vec3{X: q.X, Y: q.Y, Z: layer.z}
		}
	}

	front, back := grid[0], grid[len(grid)-1]
	for _, f := range faces {
		g.addCapTriangle(front[f[2]], front[f[1]], front[f[0]])
	}
	for _, f := range faces {
		g.addCapTriangle(back[f[0]], back[f[1]], back[f[2]])
	}

	start := 0
	for _, r := range rings {
		n := len(r)
		for i := n - 1; i >= 0; i-- {
			j, k := start+i, start+(i+n-1)%n
			for l := 0; l+1 < len(grid); l++ {
				g.addWallQuad(grid[l][j], grid[l][k], grid[l+1][k], grid[l+1][j])
			}
		}
		start += n
	}
}

// bevelVectors returns, for each point of a closed ring, the direction
// that moves both adjacent edges one unit to their left. Miters are
// capped at sqrt(2) so sharp corners do not spike.
func bevelVectors(ring []math.Vec2) []math.Vec2 {
	n := len(ring)
	out := make([]math.Vec2, n)
	for i, p := range ring {
		prev, next := ring[(i+n-1)%n], ring[(i+1)%n]
		dIn, dOut := p.Sub(prev), next.Sub(p)
		lIn, lOut := dIn.Length(), dOut.Length()
		if lIn == 0 || lOut == 0 {
			continue
		}
		nIn := leftNormal(dIn.Scale(1 / lIn))
		nOut := leftNormal(dOut.Scale(1 / lOut))

		if math32.Abs(dIn.Cross(dOut)) <= 1e-12 {
			if dIn.Dot(dOut) > 0 {
				out[i] = nIn
			} else {
				// The outline doubles back on itself; push along the edge.
				out[i] = dIn.Scale(math32.Sqrt2 / lIn)
			}
			continue
		}

		miter := nIn.Add(nOut).Scale(1 / (1 + nIn.Dot(nOut)))
		if l2 := miter.Dot(miter); l2 > 2 {
			miter = miter.Scale(math32.Sqrt2 / math32.Sqrt(l2))
		}
		out[i] = miter
	}
	return out
}

func leftNormal(v math.Vec2) math.Vec2 {
	return math.Vec2{X: -v.Y, Y: v.X}
}

// orient returns pts wound counter-clockwise when ccw is true, clockwise otherwise.
func orient(pts []math.Vec2, ccw bool) []math.Vec2 {
	if (typeface.SignedArea(pts) > 0) == ccw {
		return pts
	}
	out := make([]math.Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func (g *Geometry) addVertex(p math.Vec3, u, v float32) {
	g.Positions = append(g.Positions, p.X, p.Y, p.Z)
	g.UVs = append(g.UVs, u, v)
}

// addCapTriangle appends a cap triangle; caps are mapped in world XY.
func (g *Geometry) addCapTriangle(a, b, c math.Vec3) {
	g.addVertex(a, a.X, a.Y)
	g.addVertex(b, b.X, b.Y)
	g.addVertex(c, c.X, c.Y)
}

// addWallQuad appends quad a-b-c-d as triangles a-b-d and b-c-d. Walls
// are mapped along the dominant edge axis and z.
func (g *Geometry) addWallQuad(a, b, c, d math.Vec3) {
	uv := func(p math.Vec3) (float32, float32) {
		if math32.Abs(a.Y-b.Y) < math32.Abs(a.X-b.X) {
			return p.X, 1 - p.Z
		}
		return p.Y, 1 - p.Z
	}
	for _, p := range [...]math.Vec3{a, b, d, b, c, d} {
		u, v := uv(p)
		g.addVertex(p, u, v)
	}
}
