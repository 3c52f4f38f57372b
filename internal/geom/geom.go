// Package geom implements the pure 2D primitives the world store, movement
// solver, and renderer all share: side-of-line tests, segment intersection,
// point-in-polygon containment, and vector projection.
//
// Every function here is grounded on original_source/src/util.c and
// original_source/inc/common.h's PointSide/Intersect/Overlap macros, ported
// from raw doubles to github.com/go-gl/mathgl's mgl64 vector types.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tolerance is the near-zero threshold used to treat a cross product as
// colinear. spec.md §4.A and §9 call this out as load-bearing: loosening it
// causes false "colinear" decisions in the wall-ordering predicate, and
// tightening it breaks the side_of tie-breaks the same predicate depends on.
const Tolerance = 1e-3

// Vec2 is a 2D point or vector in world units.
type Vec2 = mgl64.Vec2

// SideOf returns the signed area of the triangle (a, b, p), i.e. the 2D
// cross product (b-a) x (p-a). Positive means p is left of the directed
// segment a->b, negative means right, and a magnitude under Tolerance means
// p is colinear with a->b.
func SideOf(a, b, p Vec2) float64 {
	return (b.X()-a.X())*(p.Y()-a.Y()) - (b.Y()-a.Y())*(p.X()-a.X())
}

// IsColinear reports whether a SideOf value is within Tolerance of zero.
func IsColinear(side float64) bool {
	return math.Abs(side) < Tolerance
}

// SegmentsIntersect reports whether segment p0-p1 crosses segment q0-q1,
// using the standard parametric line test: both t and u must land in
// [0, 1]. Parallel segments (the denominator is ~0) never intersect.
func SegmentsIntersect(p0, p1, q0, q1 Vec2) bool {
	denom := (p0.X()-p1.X())*(q0.Y()-q1.Y()) - (p0.Y()-p1.Y())*(q0.X()-q1.X())
	if IsColinear(denom) {
		return false
	}

	t := ((p0.X()-q0.X())*(q0.Y()-q1.Y()) - (p0.Y()-q0.Y())*(q0.X()-q1.X())) / denom
	if t < 0 || t > 1 {
		return false
	}

	u := -((p0.X()-p1.X())*(p0.Y()-q0.Y()) - (p0.Y()-p1.Y())*(p0.X()-q0.X())) / denom
	if u < 0 || u > 1 {
		return false
	}

	return true
}

// IntersectPoint returns the intersection of the infinite lines through
// p0-p1 and q0-q1. The caller must ensure the lines are not parallel.
func IntersectPoint(p0, p1, q0, q1 Vec2) Vec2 {
	a := cross2(p0, p1)
	b := cross2(q0, q1)
	denom := cross2v(p0.Sub(p1), q0.Sub(q1))

	x := cross2v(Vec2{a, p0.X() - p1.X()}, Vec2{b, q0.X() - q1.X()}) / denom
	y := cross2v(Vec2{a, p0.Y() - p1.Y()}, Vec2{b, q0.Y() - q1.Y()}) / denom
	return Vec2{x, y}
}

func cross2(a, b Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

func cross2v(a, b Vec2) float64 {
	return a.X()*b.Y() - a.Y()*b.X()
}

// PolygonEdge is one edge of the polygon PointInPolygon tests against.
type PolygonEdge struct {
	V0, V1 Vec2
}

// PointInPolygon implements the Build-engine-style inside test described in
// spec.md §4.A: cast a ray west from p and count edge crossings using the
// half-open y-interval (min(v0.y,v1.y), max(v0.y,v1.y)]. An odd count means
// p is inside. The half-open interval avoids double-counting a ray that
// passes exactly through a shared vertex.
func PointInPolygon(p Vec2, edges []PolygonEdge) bool {
	count := 0
	for _, e := range edges {
		v0, v1 := e.V0, e.V1
		lo, hi := math.Min(v0.Y(), v1.Y()), math.Max(v0.Y(), v1.Y())
		if p.Y() > hi || p.Y() <= lo {
			continue
		}
		dx := (v1.X() - v0.X()) / (v1.Y() - v0.Y())
		x := v0.X() + dx*(p.Y()-v0.Y())
		if x < p.X() {
			count++
		}
	}
	return count&1 == 1
}

// ProjectVector projects vector a onto vector b, used by the movement
// solver to slide a blocked move along the wall it collided with.
func ProjectVector(a, b Vec2) Vec2 {
	bLenSq := b.Dot(b)
	if bLenSq < Tolerance*Tolerance {
		return Vec2{0, 0}
	}
	scale := a.Dot(b) / bLenSq
	return b.Mul(scale)
}
