package ui

import (
	"fmt"
	"testing"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/entity"
)

func TestNodePersistsAcrossFrames(t *testing.T) {
	u := newTestUI()

	var first entity.ID
	for frame := 0; frame < 5; frame++ {
		root := u.BeginFrame(100, 100, Input{})
		n := u.Node(root, "t:n", 0)
		if frame == 0 {
			first = n.ID()
		} else if n.ID() != first {
			t.Fatalf("frame %d: node id %v, want stable %v", frame, n.ID(), first)
		}
	}
}

func TestNodeConfigResetsEachFrame(t *testing.T) {
	u := newTestUI()

	root := u.BeginFrame(100, 100, Input{})
	u.Node(root, "t:n", 0).Bg(colors.Red).Sized(Pixels(10), Pixels(10))

	root = u.BeginFrame(100, 100, Input{})
	n := u.Node(root, "t:n", 0)
	if n.Config().Background.Visible() {
		t.Fatal("previous frame's background leaked into the new frame")
	}
	if n.Config().Width.Mode != SizeChildren {
		t.Fatal("size not reset to the Children default")
	}
}

func TestScrollPersistsAcrossFrames(t *testing.T) {
	u := newTestUI()

	declare := func() *Node {
		root := u.BeginFrame(100, 100, Input{})
		sc := u.Node(root, "t:sc", 0).Sized(Pixels(50), Pixels(50)).Flow(Column).Clip()
		for i := 0; i < 4; i++ {
			u.Node(sc, "t:item", i).Sized(Pixels(40), Pixels(30))
		}
		u.Layout()
		return sc
	}

	sc := declare()
	sc.SetScroll(0, 33)

	sc = declare()
	if _, y := sc.Scroll(); y != 33 {
		t.Fatalf("scroll y = %v after redeclare, want 33", y)
	}
}

func TestPruneDropsStaleNodes(t *testing.T) {
	u := newTestUI()

	root := u.BeginFrame(100, 100, Input{})
	gone := u.Node(root, "t:gone", 0)
	goneID := gone.ID()

	// The node stops being declared; after enough frames Prune drops it.
	for i := 0; i < 5; i++ {
		u.BeginFrame(100, 100, Input{})
		u.Prune(2)
	}

	if u.Lookup(goneID) != nil {
		t.Fatal("stale node survived Prune")
	}
	if u.Registry().Alive(goneID) {
		t.Fatal("stale entity survived Prune")
	}

	// Redeclaring the same site now yields a fresh entity.
	root = u.BeginFrame(100, 100, Input{})
	again := u.Node(root, "t:gone", 0)
	if again.ID() == goneID {
		t.Fatal("pruned identity resurrected")
	}
}

func TestHitTestTopmost(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	under := u.Node(root, "t:under", 0).Sized(Pixels(60), Pixels(60)).
		AbsoluteAt(0, 0).Bg(colors.Red)
	over := u.Node(root, "t:over", 0).Sized(Pixels(30), Pixels(30)).
		AbsoluteAt(10, 10).Bg(colors.Blue)
	u.Layout()

	if got := u.HitTest(20, 20); got != over {
		t.Fatalf("hit = %v, want overlapping later sibling", name(got))
	}
	if got := u.HitTest(50, 50); got != under {
		t.Fatalf("hit = %v, want the lower box", name(got))
	}
	if got := u.HitTest(90, 90); got != root {
		t.Fatalf("hit = %v, want root", name(got))
	}
}

func TestHitTestRespectsLayers(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	top := u.Node(root, "t:top", 0).Sized(Pixels(40), Pixels(40)).
		AbsoluteAt(0, 0).OnLayer(5)
	u.Node(root, "t:late", 0).Sized(Pixels(40), Pixels(40)).AbsoluteAt(0, 0)
	u.Layout()

	if got := u.HitTest(10, 10); got != top {
		t.Fatalf("hit = %v, want the higher layer", name(got))
	}
}

func TestHitTestSkipsHidden(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	u.Node(root, "t:hid", 0).Sized(Pixels(40), Pixels(40)).
		AbsoluteAt(0, 0).Hide(true)
	u.Layout()

	if got := u.HitTest(10, 10); got != root {
		t.Fatalf("hit = %v, want root through the hidden box", name(got))
	}
}

func TestHitTestScrolledChild(t *testing.T) {
	u := newTestUI()
	root := u.BeginFrame(100, 100, Input{})
	sc := u.Node(root, "t:sc", 0).Sized(Pixels(50), Pixels(50)).Flow(Column).Clip()
	var items []*Node
	for i := 0; i < 3; i++ {
		items = append(items, u.Node(sc, "t:item", i).Sized(Pixels(40), Pixels(30)))
	}
	u.Layout()
	sc.SetScroll(0, 30)
	// Item 1 sits at layout y=30; scrolled up by 30 it is under y=0..30.
	if got := u.HitTest(10, 10); got != items[1] {
		t.Fatalf("hit = %v, want the scrolled-into-view item", name(got))
	}
	// Outside the region, scrolled content is not hittable.
	if got := u.HitTest(10, 70); got == items[2] {
		t.Fatal("hit a child outside its scroll viewport")
	}
}

func name(n *Node) string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("node %d", n.ID())
}
