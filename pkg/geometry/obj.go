package geometry

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/textscene/pkg/math"
)

// OBJObject is one named geometry placed in the exported file.
type OBJObject struct {
	Name      string
	Geometry  *Geometry
	Transform math.Mat4
}

// WriteOBJ writes objects as a Wavefront OBJ file. Positions and normals
// are transformed into world space (a zero Transform means identity);
// indices are global and 1-based.
func WriteOBJ(w io.Writer, objects ...OBJObject) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d objects\n", len(objects))

	base := 1
	for _, obj := range objects {
		g := obj.Geometry
		if g == nil {
			continue
		}
		if obj.Transform == (math.Mat4{}) {
			obj.Transform = math.Identity()
		}
		fmt.Fprintf(bw, "o %s\n", obj.Name)

		n := g.VertexCount()
		hasNormals := len(g.Normals) == len(g.Positions)
		hasUVs := len(g.UVs) == n*2
		for i := 0; i < n; i++ {
			p := obj.Transform.TransformVec3(g.Vertex(i))
			fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
		}
		if hasUVs {
			for i := 0; i < n; i++ {
				fmt.Fprintf(bw, "vt %g %g\n", g.UVs[i*2], g.UVs[i*2+1])
			}
		}
		if hasNormals {
			for i := 0; i < n; i++ {
				d := math.Vec3{X: g.Normals[i*3], Y: g.Normals[i*3+1], Z: g.Normals[i*3+2]}
				nm := obj.Transform.TransformDirection(d).Normalize()
				fmt.Fprintf(bw, "vn %g %g %g\n", nm.X, nm.Y, nm.Z)
			}
		}

		corner := func(i int) string {
			v := base + i
			switch {
			case hasUVs && hasNormals:
				return fmt.Sprintf("%d/%d/%d", v, v, v)
			case hasNormals:
				return fmt.Sprintf("%d//%d", v, v)
			case hasUVs:
				return fmt.Sprintf("%d/%d", v, v)
			}
			return fmt.Sprint(v)
		}
		for t := 0; t < g.TriangleCount(); t++ {
			a, b, c := t*3, t*3+1, t*3+2
			if g.Indices != nil {
				a, b, c = int(g.Indices[a]), int(g.Indices[b]), int(g.Indices[c])
			}
			fmt.Fprintf(bw, "f %s %s %s\n", corner(a), corner(b), corner(c))
		}
		base += n
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
