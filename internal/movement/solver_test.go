package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalengine/internal/world"
)

// squareRoom builds a single 10x10 sector with no portals, used by several
// scenarios below.
func squareRoom() *world.World {
	w := world.New()
	w.Vertices = []world.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	w.Sectors = []world.Sector{{
		Floor: 0, Ceil: 10, Brightness: 255,
		Walls: []world.Wall{
			{V0: 0, V1: 1, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 1, V1: 2, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 2, V1: 3, Neighbor: world.NoNeighbor, TexMid: 0},
			{V0: 3, V1: 0, Neighbor: world.NoNeighbor, TexMid: 0},
		},
	}}
	w.Player.Pos[0], w.Player.Pos[1], w.Player.Pos[2] = 5, 5, 0
	w.Player.Sector = 0
	return w
}

func TestMovementConfinement(t *testing.T) {
	w := squareRoom()
	w.Player.Vel[0], w.Player.Vel[1] = 0.2, 0.2
	Solver{}.Tick(w)

	sect := w.Sector(w.Player.Sector)
	assert.GreaterOrEqual(t, w.Player.Pos.X(), sect.Floor) // sanity: sector exists
	assert.True(t, w.Player.Pos.X() > 0 && w.Player.Pos.X() < 10)
	assert.True(t, w.Player.Pos.Y() > 0 && w.Player.Pos.Y() < 10)
}

func TestMovementBlockedByWallHasNoNeighbor(t *testing.T) {
	w := squareRoom()
	w.Player.Pos[0], w.Player.Pos[1] = 9.9, 5
	w.Player.Vel[0], w.Player.Vel[1] = 1.0, 0
	Solver{}.Tick(w)

	assert.Less(t, w.Player.Pos.X(), 10.0, "solid wall must block forward motion")
}

func TestGravityIdempotenceAtRest(t *testing.T) {
	w := squareRoom()
	w.Player.Pos[2] = 0 // at floor
	w.Player.Vel[2] = 0

	for i := 0; i < 50; i++ {
		Solver{}.Tick(w)
	}
	assert.Equal(t, 0.0, w.Player.Pos.Z())
	assert.Equal(t, 0.0, w.Player.Vel.Z())
}

func TestJumpAndLand(t *testing.T) {
	w := squareRoom()
	w.Player.Vel[2] = 1.2 // one tick of jump impulse, per spec.md §8 scenario 6

	landed := false
	for i := 0; i < 100; i++ {
		Solver{}.Tick(w)
		if w.Player.Pos.Z() == 0 && w.Player.Vel.Z() == 0 {
			landed = true
			break
		}
	}
	require.True(t, landed, "player must rise then fall back to the floor")
}

func TestStepUpBlockedByKneeMargin(t *testing.T) {
	w := world.New()
	w.Vertices = []world.Vertex{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		{X: 20, Y: 0}, {X: 20, Y: 10},
	}
	w.Sectors = []world.Sector{
		{
			Floor: 0, Ceil: 10, Brightness: 255,
			Walls: []world.Wall{
				{V0: 0, V1: 1, Neighbor: world.NoNeighbor},
				{V0: 1, V1: 2, Neighbor: 1},
				{V0: 2, V1: 3, Neighbor: world.NoNeighbor},
				{V0: 3, V1: 0, Neighbor: world.NoNeighbor},
			},
		},
		{
			Floor: 8, Ceil: 18, Brightness: 255, // too high to step onto: kneemargin is 2
			Walls: []world.Wall{
				{V0: 2, V1: 1, Neighbor: 0},
				{V0: 1, V1: 4, Neighbor: world.NoNeighbor},
				{V0: 4, V1: 5, Neighbor: world.NoNeighbor},
				{V0: 5, V1: 2, Neighbor: world.NoNeighbor},
			},
		},
	}
	w.Player.Pos[0], w.Player.Pos[1], w.Player.Pos[2] = 9, 5, 0
	w.Player.Sector = 0
	w.Player.Vel[0] = 0.5

	Solver{}.Tick(w)

	assert.Equal(t, world.SectorID(0), w.Player.Sector, "the player must not cross a portal with an 8-unit step")
}
