package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Decompose splits a simple polygon outline into convex pieces. The outline
// is triangulated by ear clipping and the triangles are then greedily merged
// across shared diagonals while the union stays convex (Hertel-Mehlhorn).
func Decompose(outline []r2.Vec) ([]Convex, error) {
	pts := dedupe(outline)
	if len(pts) < 3 {
		return nil, ErrTooFewPoints
	}
	if allCollinear(pts) {
		return nil, ErrDegenerate
	}
	if selfIntersects(pts) {
		return nil, ErrSelfIntersects
	}
	area := signedArea(pts)
	if math.Abs(area) < geomEpsilon {
		return nil, ErrDegenerate
	}
	if area < 0 {
		pts = reversed(pts)
	}
	if isConvexCCW(pts) {
		return []Convex{{verts: dropCollinear(pts)}}, nil
	}

	tris, err := earClip(pts)
	if err != nil {
		return nil, err
	}
	polys := mergeConvex(pts, tris)

	out := make([]Convex, 0, len(polys))
	for _, poly := range polys {
		loop := make([]r2.Vec, len(poly))
		for i, idx := range poly {
			loop[i] = pts[idx]
		}
		loop = dropCollinear(loop)
		if len(loop) < 3 {
			continue
		}
		out = append(out, Convex{verts: loop})
	}
	return out, nil
}

// earClip triangulates a counter-clockwise simple polygon, returning index triples.
func earClip(pts []r2.Vec) ([][]int, error) {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}

	var tris [][]int
	for len(idx) > 3 {
		clipped := false
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			cur := idx[i]
			next := idx[(i+1)%len(idx)]
			if !isEar(pts, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, []int{prev, cur, next})
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, ErrDegenerate
		}
	}
	if turn(pts[idx[0]], pts[idx[1]], pts[idx[2]]) > geomEpsilon {
		tris = append(tris, []int{idx[0], idx[1], idx[2]})
	}
	return tris, nil
}

func isEar(pts []r2.Vec, remaining []int, prev, cur, next int) bool {
	a, b, c := pts[prev], pts[cur], pts[next]
	if turn(a, b, c) <= geomEpsilon {
		return false
	}
	for _, other := range remaining {
		if other == prev || other == cur || other == next {
			continue
		}
		if pointInTriangle(pts[other], a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle includes the boundary so touching vertices block an ear.
func pointInTriangle(p, a, b, c r2.Vec) bool {
	d1 := r2.Cross(r2.Sub(b, a), r2.Sub(p, a))
	d2 := r2.Cross(r2.Sub(c, b), r2.Sub(p, b))
	d3 := r2.Cross(r2.Sub(a, c), r2.Sub(p, c))
	return d1 >= -geomEpsilon && d2 >= -geomEpsilon && d3 >= -geomEpsilon
}

// mergeConvex joins polygons that share an edge whenever the result is convex.
func mergeConvex(pts []r2.Vec, polys [][]int) [][]int {
	for {
		merged := false
		for i := 0; i < len(polys) && !merged; i++ {
			for j := i + 1; j < len(polys) && !merged; j++ {
				joined, ok := joinAcrossEdge(polys[i], polys[j])
				if !ok || !isConvexCCW(indexLoop(pts, joined)) {
					continue
				}
				polys[i] = joined
				polys = append(polys[:j], polys[j+1:]...)
				merged = true
			}
		}
		if !merged {
			return polys
		}
	}
}

// joinAcrossEdge finds an edge a->b in p that appears as b->a in q and
// returns the union loop b..a (from p) followed by q's vertices strictly
// between a and b.
func joinAcrossEdge(p, q []int) ([]int, bool) {
	for i := range p {
		a, b := p[i], p[(i+1)%len(p)]
		for k := range q {
			if q[k] != b || q[(k+1)%len(q)] != a {
				continue
			}
			out := make([]int, 0, len(p)+len(q)-2)
			for n := 0; n < len(p); n++ {
				out = append(out, p[(i+1+n)%len(p)])
			}
			for n := 2; n < len(q); n++ {
				out = append(out, q[(k+n)%len(q)])
			}
			return out, true
		}
	}
	return nil, false
}

func indexLoop(pts []r2.Vec, poly []int) []r2.Vec {
	out := make([]r2.Vec, len(poly))
	for i, idx := range poly {
		out[i] = pts[idx]
	}
	return out
}

func dropCollinear(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, len(pts))
	n := len(pts)
	for i := 0; i < n; i++ {
		prev, cur, next := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		if math.Abs(turn(prev, cur, next)) <= geomEpsilon {
			continue
		}
		out = append(out, cur)
	}
	return out
}

// selfIntersects checks every pair of non-adjacent edges.
func allCollinear(pts []r2.Vec) bool {
	for i := 2; i < len(pts); i++ {
		if math.Abs(turn(pts[0], pts[1], pts[i])) > geomEpsilon {
			return false
		}
	}
	return true
}

func selfIntersects(pts []r2.Vec) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1, a2 := pts[i], pts[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(a1, a2, pts[j], pts[(j+1)%n]) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(p1, p2, q1, q2 r2.Vec) bool {
	d1 := r2.Cross(r2.Sub(p2, p1), r2.Sub(q1, p1))
	d2 := r2.Cross(r2.Sub(p2, p1), r2.Sub(q2, p1))
	d3 := r2.Cross(r2.Sub(q2, q1), r2.Sub(p1, q1))
	d4 := r2.Cross(r2.Sub(q2, q1), r2.Sub(p2, q1))
	if ((d1 > geomEpsilon && d2 < -geomEpsilon) || (d1 < -geomEpsilon && d2 > geomEpsilon)) &&
		((d3 > geomEpsilon && d4 < -geomEpsilon) || (d3 < -geomEpsilon && d4 > geomEpsilon)) {
		return true
	}
	return (math.Abs(d1) <= geomEpsilon && onSegment(p1, p2, q1)) ||
		(math.Abs(d2) <= geomEpsilon && onSegment(p1, p2, q2)) ||
		(math.Abs(d3) <= geomEpsilon && onSegment(q1, q2, p1)) ||
		(math.Abs(d4) <= geomEpsilon && onSegment(q1, q2, p2))
}

func onSegment(a, b, p r2.Vec) bool {
	return p.X >= math.Min(a.X, b.X)-geomEpsilon && p.X <= math.Max(a.X, b.X)+geomEpsilon &&
		p.Y >= math.Min(a.Y, b.Y)-geomEpsilon && p.Y <= math.Max(a.Y, b.Y)+geomEpsilon
}
