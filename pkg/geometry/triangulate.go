package geometry

import (
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/textscene/pkg/math"
	"github.com/Faultbox/textscene/pkg/typeface"
)

// Triangulate splits a polygon with holes into triangles using ear
// clipping. Holes are first joined to the outer contour by bridge edges,
// rightmost hole first. Returned indices address the concatenation of
// contour followed by every hole, and each triangle winds
// counter-clockwise (Y up) regardless of the input winding.
func Triangulate(contour []math.Vec2, holes [][]math.Vec2) [][3]int {
	if len(contour) < 3 {
		return nil
	}

	pts := append([]math.Vec2(nil), contour...)
	ring := ringIndices(0, len(contour), typeface.SignedArea(contour) > 0)
	edges := ringEdges(ring)

	var rings [][]int
	for _, h := range holes {
		start := len(pts)
		pts = append(pts, h...)
		if len(h) < 3 {
			continue
		}
		hr := ringIndices(start, len(h), typeface.SignedArea(h) < 0)
		rings = append(rings, hr)
		edges = append(edges, ringEdges(hr)...)
	}

	sort.SliceStable(rings, func(a, b int) bool {
		return pts[rings[a][rightmost(pts, rings[a])]].X > pts[rings[b][rightmost(pts, rings[b])]].X
	})
	for _, hr := range rings {
		var bridgeEdge [2]int
		ring, bridgeEdge = bridgeHole(pts, ring, hr, edges)
		edges = append(edges, bridgeEdge)
	}

	return clipEars(pts, ring)
}

// ringIndices returns n consecutive indices from start, reversed unless forward.
func ringIndices(start, n int, forward bool) []int {
	idx := make([]int, n)
	for i := range idx {
		if forward {
			idx[i] = start + i
		} else {
			idx[i] = start + n - 1 - i
		}
	}
	return idx
}

func ringEdges(ring []int) [][2]int {
	edges := make([][2]int, len(ring))
	for i := range ring {
		edges[i] = [2]int{ring[i], ring[(i+1)%len(ring)]}
	}
	return edges
}

func rightmost(pts []math.Vec2, ring []int) int {
	best := 0
	for i, vi := range ring {
		p, b := pts[vi], pts[ring[best]]
		if p.X > b.X || (p.X == b.X && p.Y < b.Y) {
			best = i
		}
	}
	return best
}

// bridgeHole splices a clockwise hole into the counter-clockwise ring
// through the shortest bridge from the hole's rightmost vertex that
// crosses no edge and leaves the ring on its inner side.
func bridgeHole(pts []math.Vec2, ring, hole []int, edges [][2]int) ([]int, [2]int) {
	m := rightmost(pts, hole)
	mp := pts[hole[m]]

	order := make([]int, len(ring))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return distSq(pts[ring[order[a]]], mp) < distSq(pts[ring[order[b]]], mp)
	})

	best := order[0]
	for _, pos := range order {
		n := len(ring)
		prev, cur, next := pts[ring[(pos+n-1)%n]], pts[ring[pos]], pts[ring[(pos+1)%n]]
		if !locallyInside(prev, cur, next, mp) {
			continue
		}
		if crossesAny(pts, edges, cur, mp) {
			continue
		}
		best = pos
		break
	}

	spliced := make([]int, 0, len(ring)+len(hole)+2)
	spliced = append(spliced, ring[:best+1]...)
	spliced = append(spliced, hole[m:]...)
	spliced = append(spliced, hole[:m]...)
	spliced = append(spliced, hole[m], ring[best])
	spliced = append(spliced, ring[best+1:]...)
	return spliced, [2]int{ring[best], hole[m]}
}

// locallyInside reports whether the direction from cur towards p points
// into the polygon interior at cur, for a counter-clockwise ring.
func locallyInside(prev, cur, next, p math.Vec2) bool {
	if orient2D(prev, cur, next) >= 0 {
		return orient2D(cur, next, p) >= 0 && orient2D(prev, cur, p) >= 0
	}
	return orient2D(cur, next, p) >= 0 || orient2D(prev, cur, p) >= 0
}

// crossesAny reports whether segment a-b properly crosses any edge that
// does not share an endpoint with it.
func crossesAny(pts []math.Vec2, edges [][2]int, a, b math.Vec2) bool {
	for _, e := range edges {
		u, v := pts[e[0]], pts[e[1]]
		if u == a || u == b || v == a || v == b {
			continue
		}
		d1 := orient2D(a, b, u)
		d2 := orient2D(a, b, v)
		d3 := orient2D(u, v, a)
		d4 := orient2D(u, v, b)
		if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) && ((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
			return true
		}
	}
	return false
}

// clipEars triangulates a counter-clockwise ring that may revisit
// vertices through bridge edges.
func clipEars(pts []math.Vec2, ring []int) [][3]int {
	idx := append([]int(nil), ring...)
	tris := make([][3]int, 0, len(idx))

	i, stalled := 0, 0
	for len(idx) > 3 {
		n := len(idx)
		i %= n
		a, b, c := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
		area := orient2D(pts[a], pts[b], pts[c])

		switch {
		case math32.Abs(area) < 1e-12:
			// Collinear or spike vertex; it contributes no area.
			idx = append(idx[:i], idx[i+1:]...)
			stalled = 0
		case area > 0 && !anyInside(pts, idx, a, b, c):
			tris = append(tris, [3]int{a, b, c})
			idx = append(idx[:i], idx[i+1:]...)
			stalled = 0
		default:
			i++
			stalled++
		}

		if stalled >= len(idx) {
			// Self-intersecting input: force progress at the largest convex corner.
			i = forceEar(pts, idx)
			n = len(idx)
			a, b, c = idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if orient2D(pts[a], pts[b], pts[c]) > 0 {
				tris = append(tris, [3]int{a, b, c})
			}
			idx = append(idx[:i], idx[i+1:]...)
			stalled = 0
		}
	}

	if len(idx) == 3 && orient2D(pts[idx[0]], pts[idx[1]], pts[idx[2]]) > 0 {
		tris = append(tris, [3]int{idx[0], idx[1], idx[2]})
	}
	return tris
}

func forceEar(pts []math.Vec2, idx []int) int {
	best, bestArea := 0, math32.Inf(-1)
	n := len(idx)
	for i := range idx {
		area := orient2D(pts[idx[(i+n-1)%n]], pts[idx[i]], pts[idx[(i+1)%n]])
		if area > bestArea {
			best, bestArea = i, area
		}
	}
	return best
}

// anyInside reports whether a ring vertex other than the ear's own corners
// lies inside or on triangle a-b-c.
func anyInside(pts []math.Vec2, idx []int, a, b, c int) bool {
	pa, pb, pc := pts[a], pts[b], pts[c]
	for _, vi := range idx {
		p := pts[vi]
		if p == pa || p == pb || p == pc {
			continue
		}
		if orient2D(pa, pb, p) >= 0 && orient2D(pb, pc, p) >= 0 && orient2D(pc, pa, p) >= 0 {
			return true
		}
	}
	return false
}

// orient2D is twice the signed area of triangle o-a-b; positive when
// the turn o->a->b is counter-clockwise.
func orient2D(o, a, b math.Vec2) float32 {
	return a.Sub(o).Cross(b.Sub(o))
}

func distSq(a, b math.Vec2) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
