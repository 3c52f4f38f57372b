package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideOfSign(t *testing.T) {
	a, b := Vec2{0, 0}, Vec2{10, 0}
	assert.Greater(t, SideOf(a, b, Vec2{5, 5}), 0.0, "point above A->B is to the left")
	assert.Less(t, SideOf(a, b, Vec2{5, -5}), 0.0, "point below A->B is to the right")
	assert.True(t, IsColinear(SideOf(a, b, Vec2{5, 0})))
}

func TestSegmentsIntersect(t *testing.T) {
	cases := []struct {
		name                   string
		p0, p1, q0, q1         Vec2
		want                   bool
	}{
		{"crossing", Vec2{0, 0}, Vec2{10, 10}, Vec2{0, 10}, Vec2{10, 0}, true},
		{"parallel", Vec2{0, 0}, Vec2{10, 0}, Vec2{0, 5}, Vec2{10, 5}, false},
		{"disjoint", Vec2{0, 0}, Vec2{1, 1}, Vec2{5, 5}, Vec2{6, 6}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SegmentsIntersect(c.p0, c.p1, c.q0, c.q1))
		})
	}
}

func TestIntersectPoint(t *testing.T) {
	p := IntersectPoint(Vec2{0, 0}, Vec2{10, 10}, Vec2{0, 10}, Vec2{10, 0})
	assert.InDelta(t, 5.0, p.X(), Tolerance)
	assert.InDelta(t, 5.0, p.Y(), Tolerance)
}

func TestPointInPolygonSquare(t *testing.T) {
	square := []PolygonEdge{
		{V0: Vec2{0, 0}, V1: Vec2{10, 0}},
		{V0: Vec2{10, 0}, V1: Vec2{10, 10}},
		{V0: Vec2{10, 10}, V1: Vec2{0, 10}},
		{V0: Vec2{0, 10}, V1: Vec2{0, 0}},
	}
	assert.True(t, PointInPolygon(Vec2{5, 5}, square))
	assert.False(t, PointInPolygon(Vec2{15, 5}, square))
	assert.False(t, PointInPolygon(Vec2{-1, 5}, square))
}

func TestPointInSectorSymmetryAtVertex(t *testing.T) {
	// spec's point-in-sector symmetry property: nudging inward from a
	// vertex along an edge's inward normal lands inside; outward lands
	// outside.
	square := []PolygonEdge{
		{V0: Vec2{0, 0}, V1: Vec2{10, 0}},
		{V0: Vec2{10, 0}, V1: Vec2{10, 10}},
		{V0: Vec2{10, 10}, V1: Vec2{0, 10}},
		{V0: Vec2{0, 10}, V1: Vec2{0, 0}},
	}
	eps := 1e-2
	require.True(t, PointInPolygon(Vec2{eps, eps}, square))
	require.False(t, PointInPolygon(Vec2{-eps, -eps}, square))
}

func TestProjectVector(t *testing.T) {
	proj := ProjectVector(Vec2{3, 4}, Vec2{1, 0})
	assert.InDelta(t, 3.0, proj.X(), 1e-9)
	assert.InDelta(t, 0.0, proj.Y(), 1e-9)

	zero := ProjectVector(Vec2{3, 4}, Vec2{0, 0})
	assert.Equal(t, Vec2{0, 0}, zero)
}
