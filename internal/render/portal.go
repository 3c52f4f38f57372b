package render

import (
	"portalengine/internal/geom"
	"portalengine/internal/world"
)

// candidate is one wall surfaced by the portal flood: enough camera-space
// and screen-space state to sort, carve, and draw it without touching the
// world again. Grounded on spec.md §4.E.2 step 5's field list.
type candidate struct {
	sector   world.SectorID
	v0, v1   world.VertexID // original wall endpoints, for front()'s "shared vertex" test
	t0, t1   geom.Vec2      // clipped camera-space (x, z) per endpoint
	x0, x1   int            // projected, clamped screen-x range
	u0, u1   float64        // texture u at t0/t1, re-interpolated across the clip

	floor, ceil       float64
	brightness        uint8
	texFloor, texCeil world.TextureID

	neighbor                world.SectorID
	texLow, texMid, texHigh world.TextureID

	prev, next int // arena-relative doubly linked list, -1 = none
	active     bool
}

// candidatePool is the fixed arena spec.md §9's design note calls for: a
// flat array plus prev/next indices standing in for the source's raw
// pointers, reused cyclically across frames (spec.md §4.E.2, §5).
type candidatePool struct {
	arena  [MaxWalls]candidate
	cursor int // next arena slot to (re)use, wraps mod MaxWalls
	head   int // index of list head, -1 if empty
}

func (p *candidatePool) reset() {
	p.head = -1
	// p.cursor is intentionally NOT reset: the pool is reused across
	// frames by cyclic index (spec.md §4.E.2), not reinitialized.
}

// alloc claims the next arena slot, silently overwriting the oldest entry
// once the pool wraps (spec.md §7: "candidate-pool overflow silently
// overwrites the oldest entries").
func (p *candidatePool) alloc() int {
	idx := p.cursor
	p.cursor = (p.cursor + 1) % MaxWalls
	return idx
}

// push inserts a new candidate at the head of the active list.
func (p *candidatePool) push(c candidate) {
	idx := p.alloc()
	c.active = true
	c.prev = -1
	c.next = p.head
	p.arena[idx] = c
	if p.head != -1 {
		p.arena[p.head].prev = idx
	}
	p.head = idx
}

// remove unlinks idx from the active list.
func (p *candidatePool) remove(idx int) {
	c := &p.arena[idx]
	c.active = false
	if c.prev != -1 {
		p.arena[c.prev].next = c.next
	} else {
		p.head = c.next
	}
	if c.next != -1 {
		p.arena[c.next].prev = c.prev
	}
}

func (p *candidatePool) empty() bool { return p.head == -1 }

// queueEntry is one pending sector in the portal-flood BFS.
type queueEntry struct {
	sector world.SectorID
}

// ringQueue is the bounded ring buffer spec.md §4.E.2 specifies:
// "at most MAX_PORTALS = 32 sector ids". Once full, further enqueues are
// dropped rather than grown, matching original_source/src/render.c's
// `(rhead+MAX_PORTALS+1-rtail)%MAX_PORTALS` full check.
type ringQueue struct {
	buf        [MaxPortals]queueEntry
	head, tail int
	count      int
}

func (q *ringQueue) push(e queueEntry) bool {
	if q.count == MaxPortals {
		return false
	}
	q.buf[q.tail] = e
	q.tail = (q.tail + 1) % MaxPortals
	q.count++
	return true
}

func (q *ringQueue) pop() (queueEntry, bool) {
	if q.count == 0 {
		return queueEntry{}, false
	}
	e := q.buf[q.head]
	q.head = (q.head + 1) % MaxPortals
	q.count--
	return e, true
}

// floodPortals performs the breadth-first sector traversal of spec.md
// §4.E.2: starting from the player's sector, visit each wall once,
// rotate/cull/clip/project it, and push a surviving candidate onto pool.
// Neighboring sectors are enqueued the first time they're discovered.
func floodPortals(w *world.World, mob *world.Mob, cos, sin float64, scrW, scrH int, visited []bool, pool *candidatePool) {
	var q ringQueue
	q.push(queueEntry{sector: mob.Sector})
	visited[mob.Sector] = true

	for {
		entry, ok := q.pop()
		if !ok {
			break
		}
		sect := w.Sector(entry.sector)

		for _, wl := range sect.Walls {
			c, ok := buildCandidate(w, mob, entry.sector, sect, wl, cos, sin, scrW, scrH)
			if !ok {
				continue
			}
			pool.push(c)

			if wl.HasNeighbor() && !visited[wl.Neighbor] {
				visited[wl.Neighbor] = true
				q.push(queueEntry{sector: wl.Neighbor})
			}
		}
	}
}

// buildCandidate rotates a wall into camera space, culls it if it's
// entirely behind the camera, near-plane clips it if exactly one endpoint
// is behind, and projects the surviving segment to screen X. Returns
// ok=false if the wall contributes nothing to this frame.
func buildCandidate(w *world.World, mob *world.Mob, sid world.SectorID, sect *world.Sector, wl world.Wall, cos, sin float64, scrW, scrH int) (candidate, bool) {
	vx0 := w.Vertex(wl.V0).Vec2()
	vx1 := w.Vertex(wl.V1).Vec2()
	ppos := geom.Vec2{mob.Pos.X(), mob.Pos.Y()}

	t0x, t0z := rotateToCamera(vx0.Sub(ppos), cos, sin)
	t1x, t1z := rotateToCamera(vx1.Sub(ppos), cos, sin)

	if t0z <= 0 && t1z <= 0 {
		return candidate{}, false
	}

	// u is world distance along the wall from v0, later divided by a
	// texture's own xscale at sample time (spec.md §3: xscale is "world
	// units per tiling of the texture horizontally").
	u0orig, u1orig := 0.0, vx1.Sub(vx0).Len()
	origT0, origT1 := geom.Vec2{t0x, t0z}, geom.Vec2{t1x, t1z}

	if t0z < nearZ || t1z < nearZ {
		clipX, clipZ, u, ok := clipNear(origT0, origT1, u0orig, u1orig)
		if !ok {
			return candidate{}, false
		}
		if t0z < nearZ {
			t0x, t0z, u0orig = clipX, clipZ, u
		}
		if t1z < nearZ {
			t1x, t1z, u1orig = clipX, clipZ, u
		}
	}
	if t0z < nearZ || t1z < nearZ {
		// Both endpoints still behind the near plane after clipping means
		// the wall is edge-on to the camera; nothing to draw.
		return candidate{}, false
	}

	xscale0 := HFOVAngle * float64(scrH) / t0z
	xscale1 := HFOVAngle * float64(scrH) / t1z
	sx0 := float64(scrW)/2 + t0x*xscale0
	sx1 := float64(scrW)/2 + t1x*xscale1

	if sx0 >= sx1 {
		return candidate{}, false
	}
	if sx1 < 0 || sx0 > float64(scrW-1) {
		return candidate{}, false
	}

	x0 := clampInt(int(sx0), 0, scrW-1)
	x1 := clampInt(int(sx1), 0, scrW-1)
	if x0 >= x1 {
		return candidate{}, false
	}

	return candidate{
		sector:     sid,
		v0:         wl.V0,
		v1:         wl.V1,
		t0:         geom.Vec2{t0x, t0z},
		t1:         geom.Vec2{t1x, t1z},
		x0:         x0,
		x1:         x1,
		u0:         u0orig,
		u1:         u1orig,
		floor:      sect.Floor,
		ceil:       sect.Ceil,
		brightness: sect.Brightness,
		texFloor:   sect.TexFloor,
		texCeil:    sect.TexCeil,
		neighbor:   wl.Neighbor,
		texLow:     wl.TexLow,
		texMid:     wl.TexMid,
		texHigh:    wl.TexHigh,
	}, true
}

// clipNear intersects the camera-space segment t0->t1 against the two
// bounding rays of the approximate view frustum and picks the fallback
// per spec.md's SUPPLEMENTED FEATURES note: both endpoints use `i1.y > 0`
// to choose between the two candidate intersections, an asymmetric rule
// carried verbatim from original_source/src/render.c rather than
// "corrected" to a symmetric per-endpoint test.
func clipNear(t0, t1 geom.Vec2, u0, u1 float64) (x, z, u float64, ok bool) {
	left0, left1 := geom.Vec2{-nearSide, nearZ}, geom.Vec2{-farSide, farZ}
	right0, right1 := geom.Vec2{nearSide, nearZ}, geom.Vec2{farSide, farZ}

	if geom.IsColinear(lineDenom(t0, t1, left0, left1)) || geom.IsColinear(lineDenom(t0, t1, right0, right1)) {
		return 0, 0, 0, false
	}
	i1 := geom.IntersectPoint(t0, t1, left0, left1)
	i2 := geom.IntersectPoint(t0, t1, right0, right1)

	var picked geom.Vec2
	if i1.Y() > 0 {
		picked = i1
	} else {
		picked = i2
	}
	if picked.Y() <= 0 {
		return 0, 0, 0, false
	}

	u = interpolateU(t0, t1, u0, u1, picked)
	return picked.X(), picked.Y(), u, true
}

func lineDenom(p0, p1, q0, q1 geom.Vec2) float64 {
	return (p0.X()-p1.X())*(q0.Y()-q1.Y()) - (p0.Y()-p1.Y())*(q0.X()-q1.X())
}

// interpolateU recomputes the texture u parameter at the clipped point by
// linear interpolation along whichever axis has the larger delta, per
// spec.md §4.E.2 step 3.
func interpolateU(t0, t1 geom.Vec2, u0, u1 float64, clipped geom.Vec2) float64 {
	dx := t1.X() - t0.X()
	dz := t1.Y() - t0.Y()
	var tParam float64
	if abs(dx) > abs(dz) {
		if dx == 0 {
			return u0
		}
		tParam = (clipped.X() - t0.X()) / dx
	} else {
		if dz == 0 {
			return u0
		}
		tParam = (clipped.Y() - t0.Y()) / dz
	}
	return u0 + (u1-u0)*tParam
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
