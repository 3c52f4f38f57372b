package render

import "portalengine/internal/geom"

// overlapsX reports whether two candidates' screen-x ranges overlap, the
// precondition front() is only meaningful under (spec.md §4.E.3).
func overlapsX(a, b *candidate) bool {
	return a.x0 <= b.x1 && b.x0 <= a.x1
}

// front implements spec.md §4.E.3's "in front of" predicate: for two
// walls whose screen-X ranges overlap, does a wholly occlude b from the
// camera? It is not a total order — see spec.md §9's occlusion-oracle
// design note — the per-column ytop/ybottom windows are what actually
// keep the image correct; this only picks a good draw order.
func front(a, b *candidate) bool {
	if a.sector == b.sector && (a.v0 == b.v0 || a.v0 == b.v1 || a.v1 == b.v0 || a.v1 == b.v1) {
		return true
	}

	aMinZ, aMaxZ := minmax(a.t0.Y(), a.t1.Y())
	bMinZ, bMaxZ := minmax(b.t0.Y(), b.t1.Y())
	if aMaxZ < bMinZ || bMaxZ < aMinZ {
		return aMinZ < bMinZ
	}

	if side, ok := resolveSide(a, b); ok {
		return side
	}
	if side, ok := resolveSide(b, a); ok {
		return !side
	}
	return true
}

// resolveSide implements spec.md §4.E.3 steps 3-4 for supporting line a,
// tested against wall b and the camera (the origin, since both walls are
// already expressed in camera space). Returns ok=false when b straddles
// a's line and the caller should retry with the roles swapped.
func resolveSide(a, b *candidate) (aInFront bool, ok bool) {
	camera := geom.Vec2{0, 0}

	t1 := geom.SideOf(a.t0, a.t1, b.t0)
	t2 := geom.SideOf(a.t0, a.t1, b.t1)

	if geom.IsColinear(t1) && geom.IsColinear(t2) {
		return true, true
	}
	if geom.IsColinear(t1) {
		t1 = t2
	}
	if geom.IsColinear(t2) {
		t2 = t1
	}

	if (t1 > 0) != (t2 > 0) {
		return false, false
	}

	tCam := geom.SideOf(a.t0, a.t1, camera)
	return (t1 > 0) != (tCam > 0), true
}

func minmax(a, b float64) (lo, hi float64) {
	if a < b {
		return a, b
	}
	return b, a
}
