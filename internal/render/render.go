// Package render implements the portal-flood, painter-style rasterizer
// described in spec.md §4.E: given a world and its player mob, produce one
// RGBA framebuffer per frame. It is the largest and most detail-sensitive
// component of the engine.
//
// Grounded on original_source/src/render.c's render_draw_world (the BFS
// over sector neighbors and the per-column ceiling/floor/wall carve-out)
// generalized to the textured, perspective-correct pipeline spec.md §4.E
// describes, and on the teacher maxwelbm-fpscli's single-file raycaster
// for the overall shape of a draw-one-frame function in idiomatic Go.
package render

import (
	"math"

	"portalengine/internal/geom"
	"portalengine/internal/world"
)

// Tunables named directly in spec.md §4.E.1 and §4.E.2.
const (
	HFOVAngle = 0.73
	VFOVScale = 0.2

	MaxPortals = 32
	MaxWalls   = 1024

	nearZ    = 1e-5
	farZ     = 5.0
	nearSide = 1e-5
	farSide  = 50.0

	// depthShadeScale matches original_source/src/render.c's explicit
	// `z = (...) * 7` before the brightness subtraction; without it every
	// interior sector reads as fully lit because raw world-unit depths
	// rarely exceed the brightness byte range.
	depthShadeScale = 7.0
	maxShadeDepth   = 0xE0
)

// Renderer owns the pixel buffer and the per-column occlusion scratch
// arrays, sized once for a given screen resolution and reused every frame
// (spec.md §4.E.5 and §9's "per-frame allocation" design note).
type Renderer struct {
	scrW, scrH int

	fb       []byte // scrW*scrH*4, RGBA
	ytop     []int
	ybottom  []int
	visited  []bool

	pool candidatePool
}

// NewRenderer allocates the framebuffer and scratch arrays for a fixed
// screen size. A Renderer never resizes itself; the terminal driver builds a
// new one when the screen size changes.
func NewRenderer(scrW, scrH int) *Renderer {
	return &Renderer{
		scrW: scrW, scrH: scrH,
		fb:      make([]byte, scrW*scrH*4),
		ytop:    make([]int, scrW),
		ybottom: make([]int, scrW),
	}
}

// Framebuffer returns the RGBA pixel buffer written by the most recent
// Draw call. The driver must read it before the next Draw (spec.md §5).
func (r *Renderer) Framebuffer() []byte { return r.fb }

func (r *Renderer) Width() int  { return r.scrW }
func (r *Renderer) Height() int { return r.scrH }

// Draw renders one complete frame: skybox, then portal-flooded, sorted,
// occlusion-carved walls and floor/ceiling ray-cast shading.
func (r *Renderer) Draw(w *world.World, sky *world.Texture) []byte {
	mob := w.Player

	for x := range r.ytop {
		r.ytop[x] = 0
		r.ybottom[x] = r.scrH - 1
	}
	r.ensureVisited(w.NumSectors())

	r.drawSky(mob, sky)

	cos, sin := math.Cos(mob.Direction), math.Sin(mob.Direction)
	r.pool.reset()
	floodPortals(w, mob, cos, sin, r.scrW, r.scrH, r.visited, &r.pool)

	r.drawCandidates(w, mob)

	return r.fb
}

func (r *Renderer) ensureVisited(n int) {
	if cap(r.visited) < n {
		r.visited = make([]bool, n)
		return
	}
	r.visited = r.visited[:n]
	for i := range r.visited {
		r.visited[i] = false
	}
}

func (r *Renderer) setPixel(x, y int, rr, gg, bb, aa uint8) {
	if x < 0 || x >= r.scrW || y < 0 || y >= r.scrH {
		return
	}
	i := (y*r.scrW + x) * 4
	r.fb[i], r.fb[i+1], r.fb[i+2], r.fb[i+3] = rr, gg, bb, aa
}

// shade applies spec.md §4.E.4's brightness modulator:
// max(0, brightness - min(depth*depthShadeScale, maxShadeDepth)).
func shade(brightness uint8, depth float64) float64 {
	d := depth * depthShadeScale
	if d > maxShadeDepth {
		d = maxShadeDepth
	}
	f := float64(brightness) - d
	if f < 0 {
		f = 0
	}
	return f / 255.0
}

func lerp(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rotateToCamera rotates a world point relative to the player into camera
// space using precomputed sin/cos of the player's facing direction,
// matching original_source/src/render.c's t.x/t.z assignment.
func rotateToCamera(rel geom.Vec2, cos, sin float64) (x, z float64) {
	return rel.X()*sin - rel.Y()*cos, rel.X()*cos + rel.Y()*sin
}

// rotateFromCamera is rotateToCamera's inverse, used by the floor/ceiling
// ray-cast to map a screen-derived camera-space offset back to world
// coordinates.
func rotateFromCamera(camX, camZ, cos, sin float64) (relX, relY float64) {
	return sin*camX + cos*camZ, -cos*camX + sin*camZ
}
