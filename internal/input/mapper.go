package input

import (
	"math"

	"portalengine/internal/geom"
	"portalengine/internal/world"
)

// Tunables per spec.md §4.D's table.
const (
	planarAccel = 0.1
	jumpVz      = 1.2
	friction    = 0.7

	sprintMult = 2.0
	walkMult   = 0.4

	crouchStep = 0.5

	yawPerMouseY  = 0.03
	dirPerMouseX  = -0.01
	stickLookX    = -0.07
	stickLookY    = 0.15
	stickDeadzone = 0.1
	lookDeadzone  = 0.05

	maxPlanarSpeed = 0.3
)

const tau = 2 * math.Pi

// Mapper turns a Snapshot into intent applied directly onto a world.Mob
// each tick. It owns no mob state itself, only the driver-facing
// mouselook toggle (spec.md §6 lists `toggle-mouselook` as a snapshot bit
// without describing its semantics further; original_source/src/input.c's
// input_set_mouselook/input_toggle_mouselook is what it's grounded on:
// toggling off suppresses mouse deltas from affecting look at all).
type Mapper struct {
	mouselookEnabled bool
}

// NewMapper returns a Mapper with mouselook enabled, matching
// original_source/src/input.c's input_init which enables mouselook by
// default.
func NewMapper() *Mapper {
	return &Mapper{mouselookEnabled: true}
}

// Apply computes this tick's intent from snap and writes it onto mob:
// Direction, Yaw, Height, and Vel.X/Vel.Y (the movement solver's
// per-tick planar displacement), plus Vel.Z on a jump. floor and ceil
// are the player's current sector's bounds, used to gate jumping and to
// cap stand-height growth against the ceiling.
func (m *Mapper) Apply(snap Snapshot, mob *world.Mob, floor, ceil float64) {
	if snap.ToggleMouselook {
		m.mouselookEnabled = !m.mouselookEnabled
	}

	m.applyLook(snap, mob)
	intent := m.planarIntent(snap, mob)
	m.applyCrouch(snap, mob, ceil)
	m.blendVelocity(intent, mob)

	if snap.Jump && math.Abs(mob.Pos.Z()-floor) < geom.Tolerance {
		mob.Vel[2] = jumpVz
	}
}

func (m *Mapper) applyLook(snap Snapshot, mob *world.Mob) {
	mouseDX, mouseDY := snap.MouseDX, snap.MouseDY
	if !m.mouselookEnabled {
		mouseDX, mouseDY = 0, 0
	}

	if math.Abs(snap.RX) > lookDeadzone || math.Abs(snap.RY) > lookDeadzone {
		mob.Direction += snap.RX * stickLookX
		mob.Yaw = clamp(mob.Yaw+snap.RY*stickLookY, -world.MaxYaw, world.MaxYaw)
	} else {
		mob.Direction += mouseDX * dirPerMouseX
		mob.Yaw = clamp(mob.Yaw+mouseDY*yawPerMouseY, -world.MaxYaw, world.MaxYaw)
	}

	if snap.LookLeft {
		mob.Direction += 0.04
	}
	if snap.LookRight {
		mob.Direction -= 0.04
	}

	mob.Direction = math.Mod(mob.Direction, tau)
	if mob.Direction < 0 {
		mob.Direction += tau
	}
}

// planarIntent computes the world-frame intent vector for this tick from
// facing direction and key/stick axes, before the sprint/walk multiplier
// and friction blend.
func (m *Mapper) planarIntent(snap Snapshot, mob *world.Mob) (intent [2]float64) {
	cos, sin := math.Cos(mob.Direction), math.Sin(mob.Direction)

	if math.Abs(snap.LX) > stickDeadzone || math.Abs(snap.LY) > stickDeadzone {
		intent[0] = -(cos * planarAccel * snap.LY)
		intent[1] = -(sin * planarAccel * snap.LY)
		intent[0] += sin * planarAccel * snap.LX
		intent[1] += -cos * planarAccel * snap.LX
	} else {
		if snap.Forward {
			intent[0] += cos * planarAccel
			intent[1] += sin * planarAccel
		}
		if snap.Back {
			intent[0] -= cos * planarAccel
			intent[1] -= sin * planarAccel
		}
		if snap.StrafeLeft {
			intent[0] -= sin * planarAccel
			intent[1] += cos * planarAccel
		}
		if snap.StrafeRight {
			intent[0] += sin * planarAccel
			intent[1] -= cos * planarAccel
		}
	}

	if mob.Height < mob.StandHeight {
		intent[0] *= walkMult
		intent[1] *= walkMult
	}
	if snap.Sprint {
		intent[0] *= sprintMult
		intent[1] *= sprintMult
	}

	return intent
}

// applyCrouch eases Height toward CrouchHeight or StandHeight at
// crouchStep per tick, never exceeding the clearance to the sector
// ceiling: original_source/src/player.c's player_handle_input computes
// `height = MIN(height + 0.5, MIN(PLAYER_HEIGHT, sect->ceil - (pos.z +
// eyemargin)))` when growing, and this mirrors that clamp exactly.
func (m *Mapper) applyCrouch(snap Snapshot, mob *world.Mob, ceil float64) {
	if snap.Crouch {
		if mob.Height > mob.CrouchHeight {
			mob.Height = math.Max(mob.Height-crouchStep, mob.CrouchHeight)
		}
		return
	}
	if mob.Height < mob.StandHeight {
		limit := math.Min(mob.StandHeight, ceil-(mob.Pos.Z()+mob.EyeMargin))
		mob.Height = math.Min(mob.Height+crouchStep, limit)
	}
}

// blendVelocity folds this tick's intent into the mob's persistent
// velocity with friction, v' = friction*v + intent, clamped to
// spec.md's |v.x|,|v.y| <= 0.3.
//
// original_source/src/player.c guards this blend with
// `if(player->pos.z < (sect->floor + 0.5) || 1)`: the `|| 1` makes the
// condition always true, so the air-control branch (PLAYER_AIR_MULT) is
// dead code. SPEC_FULL.md's SUPPLEMENTED FEATURES section resolves
// spec.md §9's Open Question by keeping that always-grounded behavior —
// there is exactly one blend, not two.
func (m *Mapper) blendVelocity(intent [2]float64, mob *world.Mob) {
	vx := mob.Vel.X()*friction + intent[0]
	vy := mob.Vel.Y()*friction + intent[1]
	mob.Vel[0] = clamp(vx, -maxPlanarSpeed, maxPlanarSpeed)
	mob.Vel[1] = clamp(vy, -maxPlanarSpeed, maxPlanarSpeed)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
