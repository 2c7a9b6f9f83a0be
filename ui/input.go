package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/evac/camera"
	"github.com/pthm-cable/evac/components"
	"github.com/pthm-cable/evac/game"
)

// Input tracks the pointer in game coordinates. Each click is handed to
// the first rect that asks for it and is gone for the rest of the frame.
type Input struct {
	pos      components.Vec2
	pressed  [2]bool
	consumed [2]bool
}

// Poll reads the mouse state for a new frame.
func (in *Input) Poll(cam *camera.Camera) {
	m := rl.GetMousePosition()
	gx, gy := cam.ScreenToGame(m.X, m.Y)
	in.Set(components.Vec2{X: gx, Y: gy},
		rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		rl.IsMouseButtonPressed(rl.MouseButtonRight))
}

// Set starts a frame with the given pointer state.
func (in *Input) Set(pos components.Vec2, primary, secondary bool) {
	in.pos = pos
	in.pressed = [2]bool{primary, secondary}
	in.consumed = [2]bool{}
}

// Pointer returns the pointer position in game coordinates.
func (in *Input) Pointer() components.Vec2 {
	return in.pos
}

// IsPointerOver reports whether the pointer is inside r.
func (in *Input) IsPointerOver(r components.Rect) bool {
	return r.Contains(in.pos)
}

// ClickConsumed reports a click of b inside r, at most once per frame.
func (in *Input) ClickConsumed(r components.Rect, b game.Button) bool {
	if int(b) >= len(in.pressed) || !in.pressed[b] || in.consumed[b] {
		return false
	}
	if !r.Contains(in.pos) {
		return false
	}
	in.consumed[b] = true
	return true
}

var _ game.Input = (*Input)(nil)
