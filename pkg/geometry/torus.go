package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
)

// Torus builds an indexed torus in the XY plane around the origin.
// radius is the distance from the center to the middle of the tube,
// tube the tube radius. arc is the swept angle in radians (2π for a
// closed ring). Segment counts below 3 are raised to 3.
func Torus(radius, tube float32, radialSegments, tubularSegments int, arc float32) *Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	nv := (radialSegments + 1) * (tubularSegments + 1)
	g := &Geometry{
		Positions: make([]float32, 0, nv*3),
		Normals:   make([]float32, 0, nv*3),
		UVs:       make([]float32, 0, nv*2),
		Indices:   make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * 2 * math32.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * arc

			ring := radius + tube*math32.Cos(v)
			p := math.Vec3{X: ring * math32.Cos(u), Y: ring * math32.Sin(u), Z: tube * math32.Sin(v)}
			center := math.Vec3{X: radius * math32.Cos(u), Y: radius * math32.Sin(u)}
			n := p.Sub(center).Normalize()

			g.Positions = append(g.Positions, p.X, p.Y, p.Z)
			g.Normals = append(g.Normals, n.X, n.Y, n.Z)
			g.UVs = append(g.UVs, float32(i)/float32(tubularSegments), float32(j)/float32(radialSegments))
		}
	}

	stride := tubularSegments + 1
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := uint32(stride*j + i - 1)
			b := uint32(stride*(j-1) + i - 1)
			c := uint32(stride*(j-1) + i)
			d := uint32(stride*j + i)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
