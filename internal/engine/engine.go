// Package engine ties the world, movement solver, input mapper, and
// renderer together behind one explicit, non-global object per tick, per
// spec.md §9's design note against process-wide singletons (the source
// this spec distills keeps all of this as static globals in render.c,
// mob.c, and main.c).
package engine

import (
	"time"

	"portalengine/internal/input"
	"portalengine/internal/movement"
	"portalengine/internal/render"
	"portalengine/internal/world"
)

// TickRate is the engine's target simulation rate (spec.md §5: "aims for
// 60 Hz (16.67ms)").
const TickRate = 60

// TickDuration is one fixed simulation step.
const TickDuration = time.Second / TickRate

// Engine owns one World, one Renderer, the stateless Solver, and the
// Mapper (whose only state is the mouselook toggle) that act on them each
// tick. Ordering within a tick is strictly
// sequential: input -> intent -> movement -> render (spec.md §5).
type Engine struct {
	World    *world.World
	Renderer *render.Renderer
	Mapper   *input.Mapper
	Solver   movement.Solver
	Sky      *world.Texture

	log Logger

	accumulator time.Duration
}

// New wires a loaded world and a sized renderer into an Engine. sky may
// be nil; drawSky then fills the frame with black (spec.md §4.E.4).
func New(w *world.World, r *render.Renderer, sky *world.Texture, log Logger) *Engine {
	if log == nil {
		log = NewNopLogger()
	}
	return &Engine{
		World:    w,
		Renderer: r,
		Mapper:   input.NewMapper(),
		Sky:      sky,
		log:      log,
	}
}

// Tick runs one fixed simulation step: maps snap to intent on the player
// mob, resolves movement, and returns nothing — the caller decides when
// to render (spec.md §5 allows movement to run multiple times before the
// next render when the host lags, "fixed-step catch-up").
func (e *Engine) Tick(snap input.Snapshot) {
	sect := e.World.Sector(e.World.Player.Sector)
	e.Mapper.Apply(snap, e.World.Player, sect.Floor, sect.Ceil)
	e.Solver.Tick(e.World)
}

// Advance runs as many fixed Tick steps as dt has accumulated, using the
// same snapshot for every catch-up step (the driver samples input once
// per frame, not once per simulation step). Returns the number of ticks
// run, for diagnostics.
func (e *Engine) Advance(dt time.Duration, snap input.Snapshot) int {
	e.accumulator += dt
	n := 0
	for e.accumulator >= TickDuration {
		e.Tick(snap)
		e.accumulator -= TickDuration
		n++
		if n > TickRate {
			// The host has fallen more than a second behind; drop the
			// remainder rather than spiral further (spec.md §5 bounds
			// catch-up, it doesn't mandate unbounded replay).
			e.log.Warnf("engine: dropping input accumulator after %d catch-up ticks", n)
			e.accumulator = 0
			break
		}
	}
	return n
}

// Render draws one frame from the engine's current world state.
func (e *Engine) Render() []byte {
	return e.Renderer.Draw(e.World, e.Sky)
}

// Teardown releases the world's load-time allocations (spec.md §5: "init
// before first frame, teardown after last").
func (e *Engine) Teardown() {
	e.World.Teardown()
}
