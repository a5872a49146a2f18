package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Shape construction errors.
var (
	ErrTooFewPoints   = errors.New("physics: polygon needs at least 3 points")
	ErrDegenerate     = errors.New("physics: polygon has zero area")
	ErrNotConvex      = errors.New("physics: polygon is not convex")
	ErrSelfIntersects = errors.New("physics: outline intersects itself")
)

const geomEpsilon = 1e-9

// Convex is a convex polygon in body-local coordinates.
type Convex struct {
	verts []r2.Vec
}

// NewConvex validates and builds a convex polygon. Either winding is accepted.
func NewConvex(verts ...r2.Vec) (Convex, error) {
	pts := dedupe(verts)
	if len(pts) < 3 {
		return Convex{}, ErrTooFewPoints
	}
	area := signedArea(pts)
	if math.Abs(area) < geomEpsilon {
		return Convex{}, ErrDegenerate
	}
	if area < 0 {
		pts = reversed(pts)
	}
	if !isConvexCCW(pts) {
		return Convex{}, fmt.Errorf("%w: %d points", ErrNotConvex, len(pts))
	}
	return Convex{verts: pts}, nil
}

// MustConvex is like NewConvex but panics on invalid input. Intended for
// hard-coded shapes.
func MustConvex(verts ...r2.Vec) Convex {
	c, err := NewConvex(verts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Rect returns an axis-aligned rectangle spanning min to max.
func Rect(min, max r2.Vec) Convex {
	return MustConvex(
		min,
		r2.Vec{X: max.X, Y: min.Y},
		max,
		r2.Vec{X: min.X, Y: max.Y},
	)
}

// Verts returns a copy of the vertices in counter-clockwise order.
func (c Convex) Verts() []r2.Vec {
	out := make([]r2.Vec, len(c.verts))
	copy(out, c.verts)
	return out
}

// Len returns the vertex count.
func (c Convex) Len() int { return len(c.verts) }

// Area returns the polygon area.
func (c Convex) Area() float64 { return math.Abs(signedArea(c.verts)) }

// Translate returns the polygon moved by d.
func (c Convex) Translate(d r2.Vec) Convex {
	out := make([]r2.Vec, len(c.verts))
	for i, v := range c.verts {
		out[i] = r2.Add(v, d)
	}
	return Convex{verts: out}
}

// Shape is a compound of convex pieces attached to one body.
// An empty shape is valid; it contributes no contacts.
type Shape struct {
	pieces []Convex
}

// Compound builds a shape from convex pieces.
func Compound(pieces ...Convex) Shape {
	return Shape{pieces: append([]Convex(nil), pieces...)}
}

// Single builds a shape with one convex piece.
func Single(piece Convex) Shape {
	return Shape{pieces: []Convex{piece}}
}

// FromOutline decomposes a simple, possibly concave, outline into convex pieces.
// This is expensive; build shapes once at construction time.
func FromOutline(outline []r2.Vec) (Shape, error) {
	pieces, err := Decompose(outline)
	if err != nil {
		return Shape{}, err
	}
	return Shape{pieces: pieces}, nil
}

// Pieces returns the convex pieces.
func (s Shape) Pieces() []Convex { return s.pieces }

// Len returns the number of pieces.
func (s Shape) Len() int { return len(s.pieces) }

// Area returns the total area of all pieces.
func (s Shape) Area() float64 {
	var a float64
	for _, p := range s.pieces {
		a += p.Area()
	}
	return a
}

// signedArea is positive for counter-clockwise loops.
func signedArea(pts []r2.Vec) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += r2.Cross(pts[i], pts[j])
	}
	return a / 2
}

// isConvexCCW reports whether a counter-clockwise loop turns left (or goes
// straight) at every vertex.
func isConvexCCW(pts []r2.Vec) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b, c := pts[i], pts[(i+1)%n], pts[(i+2)%n]
		if turn(a, b, c) < -geomEpsilon {
			return false
		}
	}
	return true
}

// turn is the z component of (b-a) x (c-b).
func turn(a, b, c r2.Vec) float64 {
	return r2.Cross(r2.Sub(b, a), r2.Sub(c, b))
}

func dedupe(verts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, len(verts))
	for _, v := range verts {
		if len(out) > 0 && r2.Norm(r2.Sub(v, out[len(out)-1])) < geomEpsilon {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && r2.Norm(r2.Sub(out[0], out[len(out)-1])) < geomEpsilon {
		out = out[:len(out)-1]
	}
	return out
}

func reversed(pts []r2.Vec) []r2.Vec {
	out := make([]r2.Vec, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
