package core

import "github.com/brakewood/thicket/engine/ui"

// Input tracks keyboard and mouse state from events, including the
// per-tick pressed/released edges the UI needs.
type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
	down           [3]bool
	pressed        [3]bool
	released       [3]bool
	wheelX, wheelY float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		if int(e.Button) >= len(in.down) {
			return
		}
		if e.Down && !in.down[e.Button] {
			in.pressed[e.Button] = true
		}
		if !e.Down && in.down[e.Button] {
			in.released[e.Button] = true
		}
		in.down[e.Button] = e.Down
	case EventScroll:
		in.wheelX += e.X
		in.wheelY += e.Y
	}
}

// EndTick clears the edge flags and wheel accumulation after a fixed
// update has consumed them.
func (in *Input) EndTick() {
	in.pressed = [3]bool{}
	in.released = [3]bool{}
	in.wheelX, in.wheelY = 0, 0
}

func (in *Input) IsKeyDown(k Key) bool            { return in.keys[k] }
func (in *Input) Mouse() (float64, float64)       { return in.mouseX, in.mouseY }
func (in *Input) IsMouseDown(b MouseButton) bool  { return in.down[b] }
func (in *Input) WasPressed(b MouseButton) bool   { return in.pressed[b] }
func (in *Input) WasReleased(b MouseButton) bool  { return in.released[b] }
func (in *Input) Wheel() (float64, float64)       { return in.wheelX, in.wheelY }

// UIState snapshots the pointer for the UI's frame input.
func (in *Input) UIState() ui.Input {
	return ui.Input{
		MouseX:        float32(in.mouseX),
		MouseY:        float32(in.mouseY),
		MouseDown:     in.down[MouseLeft],
		MousePressed:  in.pressed[MouseLeft],
		MouseReleased: in.released[MouseLeft],
		WheelX:        float32(in.wheelX),
		WheelY:        float32(in.wheelY),
	}
}
