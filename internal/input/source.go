package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Source supplies both hands' raw samples once per frame. The decoder does
// not care where samples come from, which keeps it testable without a
// window. Pose fields (Position, Forward) are filled in by the session from
// the rig, since desktop sources have no tracking.
type Source interface {
	Sample() (left, right Frame)
}

// GamepadSource reads one physical gamepad as a pair of virtual hands:
// left stick + left trigger are the left hand, right stick + right trigger
// the right. With no pad connected it reports both hands disconnected.
type GamepadSource struct {
	Pad int32
}

func (g *GamepadSource) Sample() (Frame, Frame) {
	if !rl.IsGamepadAvailable(g.Pad) {
		return Frame{}, Frame{}
	}
	left := Frame{
		Connected: true,
		AxisX:     rl.GetGamepadAxisMovement(g.Pad, rl.GamepadAxisLeftX),
		AxisY:     rl.GetGamepadAxisMovement(g.Pad, rl.GamepadAxisLeftY),
		Trigger:   rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonLeftTrigger2),
		Secondary: rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonLeftFaceDown),
		Tertiary:  rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonMiddleLeft),
	}
	right := Frame{
		Connected: true,
		AxisX:     rl.GetGamepadAxisMovement(g.Pad, rl.GamepadAxisRightX),
		AxisY:     rl.GetGamepadAxisMovement(g.Pad, rl.GamepadAxisRightY),
		Trigger:   rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonRightTrigger2),
		Secondary: rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonRightFaceRight),
		Tertiary:  rl.IsGamepadButtonDown(g.Pad, rl.GamepadButtonMiddleRight),
	}
	return left, right
}

// KeyboardSource maps the keyboard onto the two virtual hands so the app is
// usable without a pad: WASD moves, Q/E turns, Space creates, F selects,
// X deletes, F5 saves.
type KeyboardSource struct{}

func (KeyboardSource) Sample() (Frame, Frame) {
	left := Frame{
		Connected: true,
		Trigger:   rl.IsKeyDown(rl.KeyF),
		Secondary: rl.IsKeyDown(rl.KeyX),
		Tertiary:  rl.IsKeyDown(rl.KeyF5),
	}
	if rl.IsKeyDown(rl.KeyA) {
		left.AxisX -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		left.AxisX += 1
	}
	if rl.IsKeyDown(rl.KeyW) {
		left.AxisY -= 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		left.AxisY += 1
	}

	right := Frame{
		Connected: true,
		Trigger:   rl.IsKeyDown(rl.KeySpace),
	}
	if rl.IsKeyDown(rl.KeyQ) {
		right.AxisX -= 1
	}
	if rl.IsKeyDown(rl.KeyE) {
		right.AxisX += 1
	}
	return left, right
}

// FallbackSource samples the gamepad and, when it is disconnected, the
// keyboard map instead.
type FallbackSource struct {
	Gamepad  GamepadSource
	Keyboard KeyboardSource
}

func (f *FallbackSource) Sample() (Frame, Frame) {
	left, right := f.Gamepad.Sample()
	if left.Connected || right.Connected {
		return left, right
	}
	return f.Keyboard.Sample()
}
