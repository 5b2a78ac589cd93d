package typeface

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
)

// fallbackRune replaces characters the font cannot draw.
const fallbackRune = '?'

// Shape is a filled region: an outer contour with optional holes.
// Outer is counter-clockwise and every hole is clockwise (Y up).
// Contours are implicitly closed; the last point is not repeated.
type Shape struct {
	Outer []math.Vec2
	Holes [][]math.Vec2
}

// Shapes lays out text on a baseline starting at the origin and returns the
// filled shapes of every glyph, scaled so that one em spans size units.
// A newline moves the pen back to x=0 one line height lower. Curves are
// flattened with curveSegments points each. Runes without a glyph are drawn
// as '?' and reported in missing.
func (f *Font) Shapes(text string, size float32, curveSegments int) (shapes []Shape, missing []rune) {
	if curveSegments < 1 {
		curveSegments = 1
	}
	scale := size / f.Resolution

	f.mu.Lock()
	defer f.mu.Unlock()

	var offsetX, offsetY float32
	prev := rune(-1)
	for _, r := range text {
		if r == '\n' {
			offsetX = 0
			offsetY -= f.LineHeight * scale
			prev = -1
			continue
		}

		g, err := f.glyphLocked(r)
		if err != nil {
			missing = append(missing, r)
			g, err = f.glyphLocked(fallbackRune)
			if err != nil {
				continue
			}
		}

		if prev >= 0 {
			offsetX += f.kerning(prev, r) * scale
		}
		origin := math.Vec2{X: offsetX, Y: offsetY}
		contours := flatten(g.Segments, scale, origin, curveSegments)
		shapes = append(shapes, groupContours(contours)...)

		offsetX += g.Advance * scale
		prev = r
	}
	return shapes, missing
}

// flatten converts outline segments into closed polygons.
func flatten(segs []Segment, scale float32, origin math.Vec2, curveSegments int) [][]math.Vec2 {
	var contours [][]math.Vec2
	var cur []math.Vec2
	var pen math.Vec2

	xf := func(p math.Vec2) math.Vec2 {
		return p.Scale(scale).Add(origin)
	}
	push := func(p math.Vec2) {
		if n := len(cur); n > 0 && cur[n-1].ApproxEqual(p, 1e-6) {
			return
		}
		cur = append(cur, p)
	}
	closeContour := func() {
		if n := len(cur); n > 1 && cur[n-1].ApproxEqual(cur[0], 1e-6) {
			cur = cur[:n-1]
		}
		if len(cur) >= 3 {
			contours = append(contours, cur)
		}
		cur = nil
	}

	for _, s := range segs {
		switch s.Op {
		case OpMoveTo:
			closeContour()
			pen = s.Args[0]
			push(xf(pen))
		case OpLineTo:
			pen = s.Args[0]
			push(xf(pen))
		case OpQuadTo:
			p0, c, p1 := pen, s.Args[0], s.Args[1]
			for i := 1; i <= curveSegments; i++ {
				t := float32(i) / float32(curveSegments)
				u := 1 - t
				push(xf(p0.Scale(u * u).Add(c.Scale(2 * u * t)).Add(p1.Scale(t * t))))
			}
			pen = p1
		case OpCubeTo:
			p0, c0, c1, p1 := pen, s.Args[0], s.Args[1], s.Args[2]
			for i := 1; i <= curveSegments; i++ {
				t := float32(i) / float32(curveSegments)
				u := 1 - t
				p := p0.Scale(u * u * u).
					Add(c0.Scale(3 * u * u * t)).
					Add(c1.Scale(3 * u * t * t)).
					Add(p1.Scale(t * t * t))
				push(xf(p))
			}
			pen = p1
		}
	}
	closeContour()
	return contours
}

// groupContours sorts contours into shapes by nesting depth: a contour
// enclosed by an even number of others is solid, an odd number is a hole
// of the smallest solid contour around it. This is independent of the
// winding convention of the font format.
func groupContours(contours [][]math.Vec2) []Shape {
	type info struct {
		pts   []math.Vec2
		area  float32
		depth int
	}
	infos := make([]info, len(contours))
	for i, c := range contours {
		infos[i] = info{pts: c, area: SignedArea(c)}
	}
	for i := range infos {
		pt := infos[i].pts[0]
		for j := range infos {
			if i != j && math32.Abs(infos[j].area) > math32.Abs(infos[i].area) && PointInPolygon(pt, infos[j].pts) {
				infos[i].depth++
			}
		}
	}

	var shapes []Shape
	outerIndex := make(map[int]int) // contour index -> shape index
	for i, in := range infos {
		if in.depth%2 == 0 {
			outerIndex[i] = len(shapes)
			shapes = append(shapes, Shape{Outer: orient(in.pts, true)})
		}
	}

	for _, in := range infos {
		if in.depth%2 == 0 {
			continue
		}
		best := -1
		for j, cand := range infos {
			if cand.depth != in.depth-1 || !PointInPolygon(in.pts[0], cand.pts) {
				continue
			}
			if best < 0 || math32.Abs(cand.area) < math32.Abs(infos[best].area) {
				best = j
			}
		}
		if best < 0 {
			continue
		}
		s := &shapes[outerIndex[best]]
		s.Holes = append(s.Holes, orient(in.pts, false))
	}

	// Keep output stable for callers that compare shapes by position.
	sort.SliceStable(shapes, func(a, b int) bool {
		return minX(shapes[a].Outer) < minX(shapes[b].Outer)
	})
	return shapes
}

// SignedArea returns the shoelace area of a closed polygon; positive means
// counter-clockwise with Y up.
func SignedArea(pts []math.Vec2) float32 {
	var a float32
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

// PointInPolygon reports whether p lies inside the closed polygon (even-odd rule).
func PointInPolygon(p math.Vec2, poly []math.Vec2) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// orient returns pts wound counter-clockwise when ccw is true, clockwise otherwise.
func orient(pts []math.Vec2, ccw bool) []math.Vec2 {
	if (SignedArea(pts) > 0) == ccw {
		return pts
	}
	out := make([]math.Vec2, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}

func minX(pts []math.Vec2) float32 {
	m := math32.Inf(1)
	for _, p := range pts {
		m = math32.Min(m, p.X)
	}
	return m
}
