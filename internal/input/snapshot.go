// Package input translates a driver-supplied input snapshot into per-tick
// intent on the player mob: yaw delta, direction delta, planar velocity,
// and jump/crouch/sprint handling, per spec.md §4.D.
//
// Grounded on original_source/src/player.c's player_handle_input and
// original_source/src/input.c's keys_t snapshot.
package input

// Snapshot is the boolean/axis input state a driver produces each tick,
// matching spec.md §6's "Input snapshot (from driver)" contract exactly.
// It never fails to decode — every field clamps or defaults on its own.
type Snapshot struct {
	Forward, Back        bool
	StrafeLeft, StrafeRight bool
	LookLeft, LookRight   bool
	Jump, Crouch, Sprint  bool
	Quit                  bool
	ToggleMouselook       bool
	ToggleFullscreen      bool

	MouseDX, MouseDY float64

	// Gamepad stick axes, each in [-1, 1].
	LX, LY float64 // left stick: strafe/forward
	RX, RY float64 // right stick: look
}
