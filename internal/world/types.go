// Package world owns the vertex array, sector array, wall arrays, texture
// table, and the single player mob, as described in spec.md §3 and §4.B.
// It is grounded on original_source/inc/world.h, inc/mob.h, and
// src/world.c, and on the teacher's flat, package-level state promoted to
// an explicit struct per spec.md §9's design note on global state.
package world

import "github.com/go-gl/mathgl/mgl64"

// NoNeighbor marks a wall with no portal neighbor and a texture id slot
// that is unset ("no texture"), matching spec.md §3's `NONE` sentinel.
const NoNeighbor = -1

// VertexID, SectorID, and TextureID index into World.Vertices,
// World.Sectors, and a Textures table respectively.
type VertexID int
type SectorID int
type TextureID int

// Vertex is a shared, immutable 2D point in world units.
type Vertex struct {
	X, Y float64
}

// Vec2 returns v as an mgl64 vector for use with the geom package.
func (v Vertex) Vec2() mgl64.Vec2 { return mgl64.Vec2{v.X, v.Y} }

// Wall is an oriented edge belonging to exactly one sector. Walls are
// stored in clockwise order around their sector's interior: walking from
// V0 to V1 keeps the interior on the right, per spec.md §3.
type Wall struct {
	V0, V1   VertexID
	Neighbor SectorID // NoNeighbor if this wall has no portal

	// Texture ids, each either NoTexture or an index into the texture
	// table. Low/high are the step-up/step-down portal bands; Mid is the
	// solid-wall texture used when there is no neighbor.
	TexLow, TexMid, TexHigh TextureID
}

// NoTexture marks a texture slot as unset; render-time lookups treat an
// out-of-range or negative texture id the same way (spec.md §7).
const NoTexture TextureID = -1

// HasNeighbor reports whether this wall is a portal.
func (w Wall) HasNeighbor() bool { return w.Neighbor != NoNeighbor }

// Sector is a convex-ish simple polygon with constant floor/ceiling
// elevations, a brightness, floor/ceiling textures, and an ordered,
// closed loop of walls.
type Sector struct {
	Floor, Ceil           float64
	Brightness            uint8
	TexFloor, TexCeil     TextureID
	Walls                 []Wall
}

// Texture is an immutable rasterized image shared by reference. Pix is a
// flat, row-major RGBA buffer of length W*H*4.
type Texture struct {
	W, H           int
	Pix            []byte
	XScale, YScale float64
}

// At returns the RGBA texel at (x, y), wrapping both axes.
func (t *Texture) At(x, y int) (r, g, b, a uint8) {
	x = wrapInt(x, t.W)
	y = wrapInt(y, t.H)
	i := (y*t.W + x) * 4
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]
}

func wrapInt(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// MobType selects the config table entry used by NewMob, mirroring
// original_source/inc/mob.h's mob_type_enum. Only MobPlayer is ever
// instantiated by this spec (see SPEC_FULL.md's SUPPLEMENTED FEATURES);
// MobEnemy1 is kept only because the config table is naturally a small
// array and future mob kinds would slot in beside it.
type MobType int

const (
	MobPlayer MobType = iota
	MobEnemy1
)

type mobConfig struct {
	Height, KneeMargin, EyeMargin, CrouchHeight float64
}

var mobConfigs = [...]mobConfig{
	MobPlayer: {Height: 6.0, KneeMargin: 2.0, EyeMargin: 1.0, CrouchHeight: 2.5},
	MobEnemy1: {Height: 6.0, KneeMargin: 2.0, EyeMargin: 1.0, CrouchHeight: 2.5},
}

// MaxYaw bounds Mob.Yaw per spec.md §3.
const MaxYaw = 5.0

// Mob is any moving object in the world; the world currently owns exactly
// one, the player (spec.md §3).
type Mob struct {
	Pos      mgl64.Vec3 // x, y, z in world units
	Vel      mgl64.Vec3 // vx, vy, vz

	Direction float64 // horizontal facing, radians in [0, 2*pi)
	Yaw       float64 // vertical pitch bias, clamped to [-MaxYaw, MaxYaw]

	Height       float64 // current standing/crouched height, eased toward CrouchHeight or StandHeight by the input mapper
	RestHeight   float64 // config height set by NewMob; crouch/stand input does not change it
	KneeMargin   float64
	EyeMargin    float64
	CrouchHeight float64
	StandHeight  float64

	Sector SectorID
}

// NewMob builds a Mob from the config table for the given type.
func NewMob(t MobType) *Mob {
	c := mobConfigs[t]
	return &Mob{
		Height:       c.Height,
		RestHeight:   c.Height,
		KneeMargin:   c.KneeMargin,
		EyeMargin:    c.EyeMargin,
		CrouchHeight: c.CrouchHeight,
		StandHeight:  c.Height,
	}
}
