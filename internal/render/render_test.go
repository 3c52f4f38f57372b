package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalengine/internal/geom"
	"portalengine/internal/world"
)

func solidTexture() *world.Texture {
	return &world.Texture{W: 1, H: 1, Pix: []byte{200, 200, 200, 255}, XScale: 4, YScale: 4}
}

func squareRoomWorld() *world.World {
	w := world.New()
	w.Vertices = []world.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	w.Sectors = []world.Sector{{
		Floor: 0, Ceil: 10, Brightness: 255, TexFloor: 0, TexCeil: 0,
		Walls: []world.Wall{
			{V0: 0, V1: 3, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 3, V1: 2, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 2, V1: 1, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 1, V1: 0, Neighbor: world.NoNeighbor, TexMid: 0},
		},
	}}
	w.Textures = []*world.Texture{solidTexture()}
	w.Player.Pos[0], w.Player.Pos[1], w.Player.Pos[2] = 5, 5, 0
	w.Player.Sector = 0
	return w
}

func TestDrawClosesMostColumns(t *testing.T) {
	w := squareRoomWorld()
	r := NewRenderer(40, 20)
	fb := r.Draw(w, solidTexture())
	require.Len(t, fb, 40*20*4)

	closed := 0
	for x := 0; x < 40; x++ {
		if r.ytop[x] == r.ybottom[x] {
			closed++
		}
	}
	// A fully enclosed, portal-free room should close nearly every column;
	// a couple of edge columns may miss due to integer screen-space
	// rounding at the wall endpoints.
	assert.GreaterOrEqual(t, closed, 36, "most columns of a closed room should be fully occluded by its own walls")
}

func TestDrawWithNilSkyDoesNotPanic(t *testing.T) {
	w := squareRoomWorld()
	r := NewRenderer(4, 4)
	fb := r.Draw(w, nil)
	require.Len(t, fb, 4*4*4)
}

func TestFrontSharedVertexSameSector(t *testing.T) {
	a := &candidate{sector: 0, v0: 0, v1: 1, t0: geom.Vec2{-1, 2}, t1: geom.Vec2{1, 2}}
	b := &candidate{sector: 0, v0: 1, v1: 2, t0: geom.Vec2{1, 2}, t1: geom.Vec2{3, 4}}
	assert.True(t, front(a, b), "portals within the same sector never occlude each other")
}

func TestFrontDepthRangesDisjoint(t *testing.T) {
	near := &candidate{sector: 0, v0: 0, v1: 1, t0: geom.Vec2{-1, 1}, t1: geom.Vec2{1, 1}}
	far := &candidate{sector: 1, v0: 2, v1: 3, t0: geom.Vec2{-1, 5}, t1: geom.Vec2{1, 5}}
	assert.True(t, front(near, far))
	assert.False(t, front(far, near))
}

func TestOverlapsX(t *testing.T) {
	a := &candidate{x0: 0, x1: 10}
	b := &candidate{x0: 5, x1: 15}
	c := &candidate{x0: 20, x1: 30}
	assert.True(t, overlapsX(a, b))
	assert.False(t, overlapsX(a, c))
}
