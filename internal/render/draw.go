package render

import (
	"math"

	"portalengine/internal/world"
)

// drawCandidates repeatedly picks the frontmost remaining candidate
// (spec.md §4.E.3's front() predicate via pickNext) and draws it until
// the pool is empty, per spec.md §4.E.4's drawing loop.
func (r *Renderer) drawCandidates(w *world.World, mob *world.Mob) {
	cos, sin := math.Cos(mob.Direction), math.Sin(mob.Direction)
	for !r.pool.empty() {
		idx := r.pickNext()
		c := r.pool.arena[idx]
		r.drawWall(w, mob, &c, cos, sin)
		r.pool.remove(idx)
	}
}

// pickNext scans the active list for a candidate no other overlapping
// candidate occludes. front() is not a total order (spec.md §9), so a
// candidate can in principle be blocked by every other one simultaneously
// in a degenerate crossing configuration; the fallback returns the head
// rather than looping forever, relying on the per-column ytop/ybottom
// windows to absorb any resulting inconsistency.
func (r *Renderer) pickNext() int {
	cur := r.pool.head
	for cur != -1 {
		blocked := false
		for other := r.pool.head; other != -1; other = r.pool.arena[other].next {
			if other == cur {
				continue
			}
			a, b := &r.pool.arena[other], &r.pool.arena[cur]
			if overlapsX(a, b) && front(a, b) {
				blocked = true
				break
			}
		}
		if !blocked {
			return cur
		}
		cur = r.pool.arena[cur].next
	}
	return r.pool.head
}

// drawWall draws one candidate across its screen-x range: ceiling/floor
// ray-cast slices, then either the solid mid texture or the neighbor's
// step bands, shrinking the column's occlusion window as it goes
// (spec.md §4.E.4).
func (r *Renderer) drawWall(w *world.World, mob *world.Mob, c *candidate, cos, sin float64) {
	eyeZ := mob.Pos.Z() + mob.Height
	yaw := mob.Yaw
	vfov := VFOVScale * float64(r.scrH)
	scrHf := float64(r.scrH)

	relCeil := c.ceil - eyeZ
	relFloor := c.floor - eyeZ

	y0a := scrHf/2 - (relCeil+c.t0.Y()*yaw)*vfov/c.t0.Y()
	y1a := scrHf/2 - (relCeil+c.t1.Y()*yaw)*vfov/c.t1.Y()
	y0b := scrHf/2 - (relFloor+c.t0.Y()*yaw)*vfov/c.t0.Y()
	y1b := scrHf/2 - (relFloor+c.t1.Y()*yaw)*vfov/c.t1.Y()

	hasNeighbor := c.neighbor != world.NoNeighbor
	var nsect *world.Sector
	var ny0a, ny1a, ny0b, ny1b float64
	if hasNeighbor {
		nsect = w.Sector(c.neighbor)
		relNCeil := nsect.Ceil - eyeZ
		relNFloor := nsect.Floor - eyeZ
		ny0a = scrHf/2 - (relNCeil+c.t0.Y()*yaw)*vfov/c.t0.Y()
		ny1a = scrHf/2 - (relNCeil+c.t1.Y()*yaw)*vfov/c.t1.Y()
		ny0b = scrHf/2 - (relNFloor+c.t0.Y()*yaw)*vfov/c.t0.Y()
		ny1b = scrHf/2 - (relNFloor+c.t1.Y()*yaw)*vfov/c.t1.Y()
	}

	x0f, x1f := float64(c.x0), float64(c.x1)

	for x := c.x0; x <= c.x1; x++ {
		fx := float64(x)
		ya := lerp(x0f, y0a, x1f, y1a, fx)
		yb := lerp(x0f, y0b, x1f, y1b, fx)

		z := lerp(x0f, c.t0.Y(), x1f, c.t1.Y(), fx)
		if z < 0 {
			z = 0
		}

		u := perspectiveU(c, fx)

		cya := clampInt(int(ya), r.ytop[x], r.ybottom[x])
		cyb := clampInt(int(yb), r.ytop[x], r.ybottom[x])

		r.drawFloorCeil(w, mob, x, r.ytop[x], cya-1, relCeil, c.texCeil, c.brightness, yaw, vfov, cos, sin)
		r.drawFloorCeil(w, mob, x, cyb+1, r.ybottom[x], relFloor, c.texFloor, c.brightness, yaw, vfov, cos, sin)

		if hasNeighbor {
			nya := lerp(x0f, ny0a, x1f, ny1a, fx)
			nyb := lerp(x0f, ny0b, x1f, ny1b, fx)
			cnya := clampInt(int(nya), r.ytop[x], r.ybottom[x])
			cnyb := clampInt(int(nyb), r.ytop[x], r.ybottom[x])

			if nsect.Ceil < c.ceil {
				r.drawWallBand(w, x, cya, cnya-1, nsect.Ceil, c.ceil, c.texHigh, u, z, c.brightness, eyeZ, yaw, vfov)
			}
			r.ytop[x] = clampInt(maxInt(cya, cnya), r.ytop[x], r.scrH-1)

			if nsect.Floor > c.floor {
				r.drawWallBand(w, x, cnyb+1, cyb, c.floor, nsect.Floor, c.texLow, u, z, c.brightness, eyeZ, yaw, vfov)
			}
			r.ybottom[x] = clampInt(minInt(cyb, cnyb), 0, r.ybottom[x])
		} else {
			r.drawWallBand(w, x, cya, cyb, c.floor, c.ceil, c.texMid, u, z, c.brightness, eyeZ, yaw, vfov)
			r.ytop[x] = r.ybottom[x]
		}
	}
}

// perspectiveU is spec.md §4.E.4 step 2's perspective-correct texture u.
func perspectiveU(c *candidate, x float64) float64 {
	x0, x1 := float64(c.x0), float64(c.x1)
	denom := (x1-x)*c.t1.Y() + (x-x0)*c.t0.Y()
	if denom == 0 {
		return c.u0
	}
	return (c.u0*(x1-x)*c.t1.Y() + c.u1*(x-x0)*c.t0.Y()) / denom
}

// drawWallBand draws a textured vertical slice between world elevations
// [worldBottom, worldTop] onto screen rows [y0, y1] of column x, per
// spec.md §4.E.4's "Textured vertical slice" paragraph: each screen pixel
// is mapped back to the world elevation it represents (the column's
// depth z is constant along a flat wall), then through the texture's
// height/yscale tiling to a v coordinate.
func (r *Renderer) drawWallBand(w *world.World, x, y0, y1 int, worldBottom, worldTop float64, texID world.TextureID, u, z float64, brightness uint8, eyeZ, yaw, vfov float64) {
	if y0 > y1 {
		return
	}
	y0 = clampInt(y0, 0, r.scrH-1)
	y1 = clampInt(y1, 0, r.scrH-1)

	tex, ok := w.Texture(texID)
	if !ok {
		return
	}
	height := worldTop - worldBottom
	if height <= 0 || z <= 0 {
		return
	}

	s := shade(brightness, z)
	tx := int(u / tex.XScale * float64(tex.W))

	for y := y0; y <= y1; y++ {
		worldRelZ := (float64(r.scrH)/2-float64(y))*z/vfov - z*yaw
		worldZ := worldRelZ + eyeZ
		vRaw := lerp(worldBottom, 0, worldTop, height*float64(tex.H)/tex.YScale, worldZ)
		ty := int(vRaw)

		rr, gg, bb, _ := tex.At(tx, ty)
		r.setPixel(x, y, scaleChan(rr, s), scaleChan(gg, s), scaleChan(bb, s), 255)
	}
}

// drawFloorCeil casts, for each screen row in [y0,y1] of column x, a
// world-space ray onto the floor or ceiling plane and samples its texture
// (spec.md §4.E.4 step 4). relElevation is the sector's floor or ceiling
// elevation relative to the camera's eye height.
func (r *Renderer) drawFloorCeil(w *world.World, mob *world.Mob, x, y0, y1 int, relElevation float64, texID world.TextureID, brightness uint8, yaw, vfov, cos, sin float64) {
	if y0 > y1 {
		return
	}
	y0 = clampInt(y0, 0, r.scrH-1)
	y1 = clampInt(y1, 0, r.scrH-1)

	tex, ok := w.Texture(texID)
	if !ok {
		return
	}

	scrHf, scrWf := float64(r.scrH), float64(r.scrW)
	for y := y0; y <= y1; y++ {
		denom := (scrHf/2 - float64(y)) - yaw*vfov
		if denom == 0 {
			continue
		}
		mapZ := relElevation * vfov / denom
		mapX := mapZ * (float64(x) - scrWf/2) / (HFOVAngle * scrHf)

		relX, relY := rotateFromCamera(mapX, mapZ, cos, sin)
		worldX := mob.Pos.X() + relX
		worldY := mob.Pos.Y() + relY

		tx := int(worldX / tex.XScale * float64(tex.W))
		ty := int(worldY / tex.XScale * float64(tex.H))

		rr, gg, bb, _ := tex.At(tx, ty)
		s := shade(brightness, math.Abs(mapZ))
		r.setPixel(x, y, scaleChan(rr, s), scaleChan(gg, s), scaleChan(bb, s), 255)
	}
}

// drawSky fills the framebuffer with a cylindrical projection of the
// skybox before any wall is drawn, per spec.md §4.E.4's "Skybox"
// paragraph: one full 2*pi turn of direction maps to one skybox width,
// yaw shifts the sampled Y band, X wraps and Y clamps.
func (r *Renderer) drawSky(mob *world.Mob, sky *world.Texture) {
	if sky == nil {
		for i := range r.fb {
			r.fb[i] = 0
		}
		return
	}

	scrHf, scrWf := float64(r.scrH), float64(r.scrW)
	center := float64(sky.H)/2 + (mob.Yaw/world.MaxYaw)*(float64(sky.H)/2)

	for x := 0; x < r.scrW; x++ {
		angle := math.Atan2(float64(x)-scrWf/2, HFOVAngle*scrHf)
		skyAngle := mob.Direction + angle
		skyX := int(skyAngle / (2 * math.Pi) * float64(sky.W))

		for y := 0; y < r.scrH; y++ {
			skyYf := center + (float64(y)-scrHf/2)*(float64(sky.H)/scrHf)
			skyY := clampInt(int(skyYf), 0, sky.H-1)

			rr, gg, bb, aa := sky.At(skyX, skyY)
			r.setPixel(x, y, rr, gg, bb, aa)
		}
	}
}

func scaleChan(v uint8, s float64) uint8 {
	return uint8(float64(v) * s)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
