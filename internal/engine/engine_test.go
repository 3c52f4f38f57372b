package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portalengine/internal/input"
	"portalengine/internal/render"
	"portalengine/internal/world"
)

func squareRoomWorld() *world.World {
	w := world.New()
	w.Vertices = []world.Vertex{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	w.Sectors = []world.Sector{{
		Floor: 0, Ceil: 10, Brightness: 255,
		Walls: []world.Wall{
			{V0: 0, V1: 1, Neighbor: world.NoNeighbor},
			{V0: 1, V1: 2, Neighbor: world.NoNeighbor},
			{V0: 2, V1: 3, Neighbor: world.NoNeighbor},
			{V0: 3, V1: 0, Neighbor: world.NoNeighbor},
		},
	}}
	w.Player.Pos[0], w.Player.Pos[1], w.Player.Pos[2] = 5, 5, 0
	w.Player.Sector = 0
	return w
}

func newTestEngine() *Engine {
	w := squareRoomWorld()
	r := render.NewRenderer(8, 8)
	return New(w, r, nil, nil)
}

func TestAdvanceRunsExactTickCount(t *testing.T) {
	e := newTestEngine()

	n := e.Advance(TickDuration*3+TickDuration/2, input.Snapshot{})
	assert.Equal(t, 3, n, "a partial tick's worth of time must remain in the accumulator, not round up")

	n = e.Advance(TickDuration/2, input.Snapshot{})
	assert.Equal(t, 1, n, "the leftover half-tick plus this call's half-tick should complete one more tick")
}

func TestAdvanceZeroDtRunsNoTicks(t *testing.T) {
	e := newTestEngine()
	n := e.Advance(0, input.Snapshot{})
	assert.Equal(t, 0, n)
}

func TestAdvanceBoundsCatchUpAndWarns(t *testing.T) {
	e := newTestEngine()
	var warned bool
	e.log = warnSpyLogger{warned: &warned}

	n := e.Advance(TickDuration*(TickRate+10), input.Snapshot{})
	assert.LessOrEqual(t, n, TickRate+1)
	assert.True(t, warned, "falling more than a second behind must log a warning")
	assert.Equal(t, time.Duration(0), e.accumulator, "the accumulator must reset rather than replay forever")
}

func TestTickMovesPlayerByVelocity(t *testing.T) {
	e := newTestEngine()
	before := e.World.Player.Pos.X()

	e.Tick(input.Snapshot{Forward: true})

	assert.NotEqual(t, before, e.World.Player.Pos.X(), "forward input must translate into planar movement within one tick")
}

func TestRenderReturnsSizedFramebuffer(t *testing.T) {
	e := newTestEngine()
	fb := e.Render()
	require.Len(t, fb, 8*8*4)
}

type warnSpyLogger struct {
	warned *bool
}

func (warnSpyLogger) Debugf(string, ...any) {}
func (warnSpyLogger) Infof(string, ...any)  {}
func (l warnSpyLogger) Warnf(string, ...any) {
	*l.warned = true
}
func (warnSpyLogger) Errorf(string, ...any) {}
