// Package movement implements the continuous 2D collision solver described
// in spec.md §4.C: one tick advances the player mob using the intent
// velocity already written onto it by the input-to-intent mapper,
// resolving wall collisions, portal crossings, gravity, and the vertical
// clamp against the current sector's floor/ceiling.
//
// Grounded on original_source/src/mob.c's mob_pos_update.
package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"portalengine/internal/geom"
	"portalengine/internal/world"
)

// PlayerRadius is the body radius used to keep the mob's bounding box
// clear of a wall it is sliding along (spec.md §4.C step 1).
const PlayerRadius = 0.5

// Gravity is the downward acceleration applied to vz each tick while the
// mob is above its sector's floor (spec.md §4.C's vertical pass).
const Gravity = 0.05

// maxPasses bounds the horizontal collision/portal-crossing loop. The
// spec requires the iteration be "bounded ... by a small number of passes
// (portal chaining)"; this is generous enough for any reasonable map
// without risking an unbounded loop from a degenerate one.
const maxPasses = 64

// Solver advances a World's player mob by one tick. It carries no state
// of its own — the mob's pos/velocity/sector live on world.Mob, per
// spec.md §9's design note against process-wide singletons.
type Solver struct{}

// Tick performs the horizontal collision pass followed by the vertical
// gravity/clamp pass, using the intent velocity already set on
// w.Player.Vel by the input-to-intent mapper.
func (Solver) Tick(w *world.World) {
	horizontalPass(w)
	verticalPass(w)
}

func horizontalPass(w *world.World) {
	mob := w.Player
	dx, dy := mob.Vel.X(), mob.Vel.Y()
	if dx == 0 && dy == 0 {
		return
	}

	px, py := mob.Pos.X(), mob.Pos.Y()
	enteredNewSector := false
	// prevSector tracks the sector this mob just crossed from, scoped to
	// this single tick's pass loop only (original_source/src/mob.c resets
	// its equivalent local `prev_sect` to -1 on every mob_pos_update
	// call) — it prevents oscillating back across the same portal within
	// one tick, not across ticks.
	prevSector := world.SectorID(world.NoNeighbor)
	hasPrev := false

	for pass := 0; pass < maxPasses; pass++ {
		sect := w.Sector(mob.Sector)
		restarted := false

		for _, wl := range sect.Walls {
			v0 := w.Vertex(wl.V0).Vec2()
			v1 := w.Vertex(wl.V1).Vec2()

			dest := mgl64.Vec2{px + dx, py + dy}
			farDest := mgl64.Vec2{dest.X() + signOrZero(dx)*PlayerRadius, dest.Y() + signOrZero(dy)*PlayerRadius}
			ppos := mgl64.Vec2{px, py}

			var holeLow, holeHigh float64
			var nbr *world.Sector
			if wl.HasNeighbor() {
				nbr = w.Sector(wl.Neighbor)
				holeLow = math.Max(sect.Floor, nbr.Floor)
				holeHigh = math.Min(sect.Ceil, nbr.Ceil)
			} else {
				holeLow = math.Inf(1)
				holeHigh = math.Inf(-1)
			}

			blocked := !wl.HasNeighbor() ||
				holeHigh < mob.Pos.Z()+mob.Height+mob.EyeMargin ||
				holeLow > mob.Pos.Z()+mob.KneeMargin

			if blocked {
				if geom.SegmentsIntersect(ppos, farDest, v0, v1) && !pointInSector(farDest, w, sect) {
					proj := geom.ProjectVector(mgl64.Vec2{dx, dy}, v1.Sub(v0))
					dx, dy = proj.X(), proj.Y()
					restarted = true
					break
				}
				continue
			}

			if geom.SegmentsIntersect(ppos, dest, v0, v1) && !pointInSector(dest, w, sect) {
				if hasPrev && prevSector == wl.Neighbor {
					continue
				}
				if !pointInSector(dest, w, nbr) {
					continue
				}
				prevSector = mob.Sector
				hasPrev = true
				mob.Sector = wl.Neighbor
				enteredNewSector = true
				restarted = true
				break
			}
		}

		if !restarted {
			break
		}
	}

	sect := w.Sector(mob.Sector)
	dest := mgl64.Vec2{px + dx, py + dy}
	if !enteredNewSector && !pointInSector(dest, w, sect) {
		dx, dy = 0, 0
	}

	mob.Pos[0] = px + dx
	mob.Pos[1] = py + dy
}

func verticalPass(w *world.World) {
	mob := w.Player
	sect := w.Sector(mob.Sector)

	if mob.Pos.Z() > sect.Floor {
		mob.Vel[2] -= Gravity
	}
	mob.Pos[2] += mob.Vel.Z()

	if mob.Pos.Z() < sect.Floor {
		mob.Pos[2] = sect.Floor
		mob.Vel[2] = 0
	}
	if mob.Pos.Z()+mob.Height+mob.EyeMargin > sect.Ceil {
		mob.Pos[2] = sect.Ceil - mob.Height - mob.EyeMargin
		mob.Vel[2] = 0
	}
}

func pointInSector(p mgl64.Vec2, w *world.World, sect *world.Sector) bool {
	edges := make([]geom.PolygonEdge, len(sect.Walls))
	for i, wl := range sect.Walls {
		edges[i] = geom.PolygonEdge{V0: w.Vertex(wl.V0).Vec2(), V1: w.Vertex(wl.V1).Vec2()}
	}
	return geom.PointInPolygon(p, edges)
}

func signOrZero(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
