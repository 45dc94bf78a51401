package ui

import (
	"testing"

	"github.com/brakewood/thicket/engine/colors"
)

// frame runs one declare+layout cycle with the given input and returns
// whether the button reported a click.
func buttonFrame(u *UI, in Input) bool {
	root := u.BeginFrame(200, 200, Input{})
	u.In = in
	clicked := u.Button(root, ButtonProps{
		Text:   "OK",
		Width:  Pixels(80),
		Height: Pixels(30),
		Bg:     colors.Slate,
	})
	u.Layout()
	return clicked
}

func TestButtonClick(t *testing.T) {
	u := newTestUI()

	// Frame 0 establishes geometry; the hit test uses last frame's rect.
	buttonFrame(u, Input{})

	if buttonFrame(u, Input{MouseX: 10, MouseY: 10, MouseDown: true, MousePressed: true}) {
		t.Fatal("click reported on press")
	}
	if !buttonFrame(u, Input{MouseX: 10, MouseY: 10, MouseReleased: true}) {
		t.Fatal("no click on release inside")
	}
}

func TestButtonReleaseOutsideIsNotAClick(t *testing.T) {
	u := newTestUI()
	buttonFrame(u, Input{})

	buttonFrame(u, Input{MouseX: 10, MouseY: 10, MouseDown: true, MousePressed: true})
	if buttonFrame(u, Input{MouseX: 150, MouseY: 150, MouseReleased: true}) {
		t.Fatal("drag-off release still clicked")
	}
}

func TestButtonPressOutsideReleaseInside(t *testing.T) {
	u := newTestUI()
	buttonFrame(u, Input{})

	buttonFrame(u, Input{MouseX: 150, MouseY: 150, MouseDown: true, MousePressed: true})
	if buttonFrame(u, Input{MouseX: 10, MouseY: 10, MouseReleased: true}) {
		t.Fatal("release inside without press inside clicked")
	}
}

func TestScrollRegionWheel(t *testing.T) {
	u := newTestUI()

	frame := func(in Input) *Node {
		root := u.BeginFrame(200, 200, Input{})
		u.In = in
		sc := u.ScrollRegion(root, ScrollProps{
			Width:      Pixels(50),
			Height:     Pixels(50),
			Dir:        Column,
			WheelScale: 10,
		})
		for i := 0; i < 4; i++ {
			u.Node(sc, "t:item", i).Sized(Pixels(40), Pixels(30))
		}
		u.Layout()
		return sc
	}

	frame(Input{}) // establish geometry
	sc := frame(Input{MouseX: 10, MouseY: 10, WheelY: -2})
	if _, y := sc.Scroll(); y != 20 {
		t.Fatalf("scroll y = %v after wheel, want 20", y)
	}

	// Wheel away from the region does nothing.
	sc = frame(Input{MouseX: 190, MouseY: 190, WheelY: -2})
	if _, y := sc.Scroll(); y != 20 {
		t.Fatalf("scroll y = %v, wheel outside should not move it", y)
	}
}

func TestProgressRingEmitsTrackAndArc(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	u.ProgressRing(root, RingProps{Fraction: 0.5, Diameter: 40, Thickness: 4})
	u.Layout()
	b := u.Emit()

	var ring, segment int
	for i := 0; i < b.Len(); i++ {
		switch b.At(i).Kind {
		case KindRing:
			ring++
		case KindRingSegment:
			segment++
		}
	}
	if ring != 1 || segment != 1 {
		t.Fatalf("ring=%d segment=%d, want one full track and one arc", ring, segment)
	}
}

func TestProgressRingZeroFractionHidesArc(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	u.ProgressRing(root, RingProps{Fraction: 0, Diameter: 40, Thickness: 4})
	u.Layout()
	b := u.Emit()

	for i := 0; i < b.Len(); i++ {
		if b.At(i).Kind == KindRingSegment {
			t.Fatal("arc emitted at zero progress")
		}
	}
}

func TestPanelAndTextCompose(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	p := u.Panel(root, PanelProps{Dir: Column, Pad: 8, Bg: colors.Slate})
	u.Text(p, LabelProps{Text: "hello", Size: 16})
	u.Layout()

	// fixedMeasurer: 5 runes * 8px wide, 16px tall, plus panel padding.
	if w, h := p.Size(); w != 56 || h != 32 {
		t.Fatalf("panel size = %v x %v, want 56 x 32", w, h)
	}
}
