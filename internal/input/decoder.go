package input

import (
	"memory-palace/internal/vmath"
)

// Deadzone is the analog stick threshold below which axis noise is ignored.
const Deadzone = float32(0.1)

// Hand identifies which controller a sample came from.
type Hand uint8

const (
	Left Hand = iota
	Right
)

// Frame is one hand's raw sample for a single frame. A disconnected hand
// reports Connected=false and zero values; the decoder degrades to a no-op.
type Frame struct {
	Connected bool
	Position  vmath.Vec3 // hand pose in world space
	Forward   vmath.Vec3 // normalized aim direction
	AxisX     float32    // stick, -1..1
	AxisY     float32
	Trigger   bool // primary trigger
	Secondary bool
	Tertiary  bool
}

// Commands are the discrete, edge-triggered results of one frame. Each
// fires on the frame its button transitions from released to pressed, never while
// held; without this a held delete would fire tens of times per second.
type Commands struct {
	Create bool // right trigger
	Select bool // left trigger
	Delete bool // secondary, either hand
	Save   bool // tertiary, either hand
}

// Result is the decoded output of one frame: continuous deltas plus
// discrete commands.
type Result struct {
	Move     vmath.Vec3 // world-space translation, already scaled by dt
	Yaw      float32    // radians to add to the rig heading
	Commands Commands
}

// buttons is the per-hand previous-frame pressed state.
type buttons struct {
	trigger   bool
	secondary bool
	tertiary  bool
}

// Decoder converts raw per-frame hand samples into movement deltas and
// edge-triggered commands. One instance per session; it carries only the
// previous-frame button state per hand.
type Decoder struct {
	prev [2]buttons
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode evaluates one frame. heading is the rig's current yaw so stick
// movement follows the viewer's facing; dt is the frame delta in seconds.
// moveSpeed is m/s, rotSpeed rad/s at full deflection.
func (d *Decoder) Decode(left, right Frame, heading, dt, moveSpeed, rotSpeed float32) Result {
	var res Result

	// A disconnected hand contributes nothing, whatever its fields claim.
	if !left.Connected {
		left = Frame{}
	}
	if !right.Connected {
		right = Frame{}
	}

	// Left stick: horizontal movement in the facing direction. Either axis
	// past the deadzone enables the move; below it, analog noise is dropped.
	if left.Connected && (abs(left.AxisX) > Deadzone || abs(left.AxisY) > Deadzone) {
		// Stick up (negative Y) is forward (-Z before heading rotation).
		local := vmath.Vec3{X: left.AxisX, Y: 0, Z: left.AxisY}
		move := vmath.Normalize(vmath.RotateY(local, heading))
		res.Move = vmath.Scale(move, moveSpeed*dt)
	}

	// Right stick X: yaw.
	if right.Connected && abs(right.AxisX) > Deadzone {
		res.Yaw = -right.AxisX * rotSpeed * dt
	}

	res.Commands = Commands{
		Create: right.Connected && right.Trigger && !d.prev[Right].trigger,
		Select: left.Connected && left.Trigger && !d.prev[Left].trigger,
		Delete: (left.Secondary || right.Secondary) &&
			!(d.prev[Left].secondary || d.prev[Right].secondary),
		Save: (left.Tertiary || right.Tertiary) &&
			!(d.prev[Left].tertiary || d.prev[Right].tertiary),
	}

	// Disconnected hands were zeroed above, so a reconnect does not replay
	// a press that happened while unplugged.
	d.prev[Left] = buttons{trigger: left.Trigger, secondary: left.Secondary, tertiary: left.Tertiary}
	d.prev[Right] = buttons{trigger: right.Trigger, secondary: right.Secondary, tertiary: right.Tertiary}
	return res
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
