package ui

import (
	"testing"

	"github.com/brakewood/thicket/engine/colors"
)

// fixedMeasurer sizes text at half the font size per rune, one line tall.
// Predictable numbers keep the layout assertions exact.
type fixedMeasurer struct{}

func (fixedMeasurer) Measure(text string, size float32) (float32, float32) {
	return float32(len([]rune(text))) * size * 0.5, size
}

func newTestUI() *UI {
	return New(Options{Measurer: fixedMeasurer{}})
}

func wantRect(t *testing.T, n *Node, want Rect) {
	t.Helper()
	if n.Rect() != want {
		t.Fatalf("rect = %+v, want %+v", n.Rect(), want)
	}
}

func TestPercentOfParent(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	child := u.Node(root, "t:1", 0).Sized(Percent(0.5), Percent(0.5))
	u.Layout()

	wantRect(t, child, Rect{0, 0, 50, 50})
}

func TestColumnStacking(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	a := u.Node(root, "t:1", 0).Sized(Percent(0.5), Percent(0.5))
	b := u.Node(root, "t:2", 0).Sized(Pixels(30), Pixels(30))
	u.Layout()

	wantRect(t, a, Rect{0, 0, 50, 50})
	wantRect(t, b, Rect{0, 50, 30, 30})
}

func TestSpaceBetween(t *testing.T) {
	cases := map[string]struct {
		parentW float32
		wantX   [3]float32
	}{
		"leftover splits evenly": {140, [3]float32{0, 50, 100}},
		"overflow packs tight":   {100, [3]float32{0, 40, 80}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u := newTestUI()
			root := u.BeginFrame(200, 200, Input{})
			row := u.Node(root, "t:row", 0).
				Sized(Pixels(tc.parentW), Pixels(20)).
				Flow(Row).Justify(AlignSpaceBetween)
			kids := make([]*Node, 3)
			for i := range kids {
				kids[i] = u.Node(row, "t:kid", i).Sized(Pixels(40), Pixels(20))
			}
			u.Layout()

			for i, k := range kids {
				if k.Rect().X != tc.wantX[i] {
					t.Fatalf("child %d x = %v, want %v", i, k.Rect().X, tc.wantX[i])
				}
				if k.Rect().Y != 0 || k.Rect().W != 40 {
					t.Fatalf("child %d rect = %+v", i, k.Rect())
				}
			}
		})
	}
}

func TestChildrenFit(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	box := u.Node(root, "t:box", 0).Flow(Row).Pad(5)
	u.Node(box, "t:a", 0).Sized(Pixels(40), Pixels(20))
	u.Node(box, "t:b", 0).Sized(Pixels(30), Pixels(50))
	u.Layout()

	if w, h := box.Size(); w != 80 || h != 60 {
		t.Fatalf("fit size = %v x %v, want 80 x 60", w, h)
	}
}

func TestChildrenFitEmpty(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	box := u.Node(root, "t:box", 0).Pad(5)
	u.Layout()

	if w, h := box.Size(); w != 10 || h != 10 {
		t.Fatalf("empty fit = %v x %v, want padding only 10 x 10", w, h)
	}
}

func TestPercentClamped(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	over := u.Node(root, "t:over", 0).Sized(Percent(1.5), Pixels(10))
	under := u.Node(root, "t:under", 0).Sized(Percent(-0.5), Pixels(10))
	u.Layout()

	if w, _ := over.Size(); w != 100 {
		t.Fatalf("Percent(1.5) width = %v, want clamped to 100", w)
	}
	if w, _ := under.Size(); w != 0 {
		t.Fatalf("Percent(-0.5) width = %v, want 0", w)
	}
}

func TestAbsoluteExcludedFromFlow(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	box := u.Node(root, "t:box", 0).Flow(Row)
	u.Node(box, "t:flow", 0).Sized(Pixels(40), Pixels(20))
	abs := u.Node(box, "t:abs", 0).Sized(Pixels(100), Pixels(100)).AbsoluteAt(5, 7)
	u.Layout()

	if w, h := box.Size(); w != 40 || h != 20 {
		t.Fatalf("parent fit %v x %v includes absolute child", w, h)
	}
	wantRect(t, abs, Rect{5, 7, 100, 100})
}

func TestExpandSharesLeftover(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	row := u.Node(root, "t:row", 0).Sized(Pixels(100), Pixels(20)).Flow(Row)
	fix := u.Node(row, "t:fix", 0).Sized(Pixels(30), Pixels(20))
	e1 := u.Node(row, "t:e1", 0).Sized(Expand(), Pixels(20))
	e2 := u.Node(row, "t:e2", 0).Sized(Expand(), Pixels(20))
	u.Layout()

	wantRect(t, fix, Rect{0, 0, 30, 20})
	wantRect(t, e1, Rect{30, 0, 35, 20})
	wantRect(t, e2, Rect{65, 0, 35, 20})
}

func TestExpandWithNoLeftover(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	row := u.Node(root, "t:row", 0).Sized(Pixels(50), Pixels(20)).Flow(Row)
	u.Node(row, "t:fix", 0).Sized(Pixels(60), Pixels(20))
	e := u.Node(row, "t:e", 0).Sized(Expand(), Pixels(20))
	u.Layout()

	if w, _ := e.Size(); w != 0 {
		t.Fatalf("expand width = %v, want 0 when nothing is left", w)
	}
}

func TestWrap(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	row := u.Node(root, "t:row", 0).Sized(Pixels(100), FitChildren()).Flow(Row).WrapLines()
	kids := make([]*Node, 3)
	for i := range kids {
		kids[i] = u.Node(row, "t:kid", i).Sized(Pixels(40), Pixels(10))
	}
	u.Layout()

	wantRect(t, kids[0], Rect{0, 0, 40, 10})
	wantRect(t, kids[1], Rect{40, 0, 40, 10})
	wantRect(t, kids[2], Rect{0, 10, 40, 10})
}

func TestWrapOversizedChildGetsOwnLine(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	row := u.Node(root, "t:row", 0).Sized(Pixels(50), FitChildren()).Flow(Row).WrapLines()
	big := u.Node(row, "t:big", 0).Sized(Pixels(80), Pixels(10))
	next := u.Node(row, "t:next", 0).Sized(Pixels(20), Pixels(10))
	u.Layout()

	wantRect(t, big, Rect{0, 0, 80, 10})
	wantRect(t, next, Rect{0, 10, 20, 10})
}

func TestScrollRange(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	sc := u.Node(root, "t:sc", 0).Sized(Pixels(50), Pixels(50)).Flow(Column).Clip()
	for i := 0; i < 3; i++ {
		u.Node(sc, "t:item", i).Sized(Pixels(40), Pixels(30))
	}
	u.Layout()

	if x, y := sc.MaxScroll(); x != 0 || y != 40 {
		t.Fatalf("max scroll = %v, %v, want 0, 40", x, y)
	}
	if cw, ch := sc.ContentSize(); cw != 40 || ch != 90 {
		t.Fatalf("content = %v x %v, want 40 x 90", cw, ch)
	}
}

func TestScrollClampsWhenContentShrinks(t *testing.T) {
	u := newTestUI()
	declare := func(items int) *Node {
		root := u.BeginFrame(400, 400, Input{})
		sc := u.Node(root, "t:sc", 0).Sized(Pixels(50), Pixels(50)).Flow(Column).Clip()
		for i := 0; i < items; i++ {
			u.Node(sc, "t:item", i).Sized(Pixels(40), Pixels(30))
		}
		u.Layout()
		return sc
	}

	sc := declare(3)
	sc.SetScroll(0, 40)

	sc = declare(2)
	if _, y := sc.Scroll(); y != 10 {
		t.Fatalf("scroll y = %v after shrink, want re-clamped 10", y)
	}
}

func TestMarginsInFlow(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	a := u.Node(root, "t:a", 0).Sized(Pixels(30), Pixels(30)).MarginAll(5)
	b := u.Node(root, "t:b", 0).Sized(Pixels(30), Pixels(30))
	u.Layout()

	wantRect(t, a, Rect{5, 5, 30, 30})
	wantRect(t, b, Rect{0, 40, 30, 30})
}

func TestScreenPercentIgnoresParent(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	small := u.Node(root, "t:small", 0).Sized(Pixels(50), Pixels(50))
	child := u.Node(small, "t:child", 0).Sized(ScreenPercent(0.5), Pixels(10))
	u.Layout()

	if w, _ := child.Size(); w != 100 {
		t.Fatalf("screen percent width = %v, want 100", w)
	}
}

func TestPercentThreadsThroughChildrenParent(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(200, 200, Input{})
	fit := u.Node(root, "t:fit", 0) // Children-sized on both axes
	child := u.Node(fit, "t:child", 0).Sized(Percent(0.5), Pixels(10))
	u.Layout()

	// The child resolves against the nearest pre-resolved ancestor (the
	// root), and the fitting parent then wraps the result.
	if w, _ := child.Size(); w != 100 {
		t.Fatalf("child width = %v, want 100", w)
	}
	if w, _ := fit.Size(); w != 100 {
		t.Fatalf("parent fit width = %v, want 100", w)
	}
}

func TestCrossAlign(t *testing.T) {
	cases := map[string]struct {
		align Align
		wantY float32
	}{
		"start":  {AlignStart, 0},
		"center": {AlignCenter, 15},
		"end":    {AlignEnd, 30},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u := newTestUI()
			root := u.BeginFrame(400, 400, Input{})
			row := u.Node(root, "t:row", 0).
				Sized(Pixels(100), Pixels(50)).Flow(Row).AlignCross(tc.align)
			k := u.Node(row, "t:kid", 0).Sized(Pixels(20), Pixels(20))
			u.Layout()

			if k.Rect().Y != tc.wantY {
				t.Fatalf("y = %v, want %v", k.Rect().Y, tc.wantY)
			}
		})
	}
}

func TestSelfAlignStretch(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	row := u.Node(root, "t:row", 0).Sized(Pixels(100), Pixels(50)).Flow(Row)
	k := u.Node(row, "t:kid", 0).WidthSize(Pixels(20)).AlignSelf(AlignStretch)
	u.Layout()

	if _, h := k.Size(); h != 50 {
		t.Fatalf("stretched height = %v, want 50", h)
	}
}

func TestMainJustify(t *testing.T) {
	cases := map[string]struct {
		align Align
		wantX float32
	}{
		"center": {AlignCenter, 40},
		"end":    {AlignEnd, 80},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			u := newTestUI()
			root := u.BeginFrame(400, 400, Input{})
			row := u.Node(root, "t:row", 0).
				Sized(Pixels(100), Pixels(20)).Flow(Row).Justify(tc.align)
			k := u.Node(row, "t:kid", 0).Sized(Pixels(20), Pixels(20))
			u.Layout()

			if k.Rect().X != tc.wantX {
				t.Fatalf("x = %v, want %v", k.Rect().X, tc.wantX)
			}
		})
	}
}

func TestTextLeafFitsMeasuredText(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(400, 400, Input{})
	lbl := u.Node(root, "t:lbl", 0).Label("abcd", 16, colors.White).Pad(2)
	u.Layout()

	// fixedMeasurer: 4 runes * 8px + 4px padding, 16px + 4px padding.
	if w, h := lbl.Size(); w != 36 || h != 20 {
		t.Fatalf("label size = %v x %v, want 36 x 20", w, h)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	build := func(u *UI) []Rect {
		root := u.BeginFrame(313, 217, Input{})
		row := u.Node(root, "t:row", 0).
			Sized(Percent(0.7), FitChildren()).Flow(Row).WrapLines().Pad(3)
		var rects []Rect
		for i := 0; i < 9; i++ {
			k := u.Node(row, "t:kid", i).
				Sized(Pixels(float32(20+i*7)), Pixels(float32(10+i*3))).MarginAll(2)
			_ = k
		}
		u.Layout()
		for _, id := range row.ChildIDs() {
			rects = append(rects, u.Lookup(id).Rect())
		}
		return rects
	}

	a := build(newTestUI())
	b := build(newTestUI())
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("rect %d differs between identical runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
