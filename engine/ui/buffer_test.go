package ui

import (
	"testing"

	"github.com/brakewood/thicket/engine/colors"
)

func TestBufferSortGroupsByLayerThenKind(t *testing.T) {
	b := NewCommandBuffer(256)
	b.Push(Primitive{Kind: KindText, Layer: 1})
	b.Push(Primitive{Kind: KindRect, Layer: 0})
	b.Push(Primitive{Kind: KindRect, Layer: 1})
	b.Push(Primitive{Kind: KindText, Layer: 0})
	b.Push(Primitive{Kind: KindRect, Layer: 0})
	b.Sort()

	type bucket struct {
		layer int32
		kind  Kind
	}
	want := []bucket{
		{0, KindRect}, {0, KindRect}, {0, KindText},
		{1, KindRect}, {1, KindText},
	}
	for i, w := range want {
		p := b.At(i)
		if p.Layer != w.layer || p.Kind != w.kind {
			t.Fatalf("slot %d = layer %d kind %v, want layer %d kind %v",
				i, p.Layer, p.Kind, w.layer, w.kind)
		}
	}
}

func TestBufferSortPreservesEmissionOrderWithinBatch(t *testing.T) {
	b := NewCommandBuffer(256)
	for i := 0; i < 8; i++ {
		b.Push(Primitive{Kind: KindRect, Rect: Rect{X: float32(i)}})
	}
	b.Sort()
	for i := 0; i < 8; i++ {
		if b.At(i).Rect.X != float32(i) {
			t.Fatalf("slot %d has x %v; same-key order not deterministic", i, b.At(i).Rect.X)
		}
	}
}

func TestBufferSortGroupsSharedClips(t *testing.T) {
	clipA := Rect{0, 0, 50, 50}
	clipB := Rect{10, 10, 50, 50}

	b := NewCommandBuffer(256)
	b.Push(Primitive{Kind: KindRect, Clipped: true, Clip: clipA})
	b.Push(Primitive{Kind: KindRect})
	b.Push(Primitive{Kind: KindRect, Clipped: true, Clip: clipB})
	b.Push(Primitive{Kind: KindRect, Clipped: true, Clip: clipA})
	b.Sort()

	// Unclipped first, then the two clipA entries adjacent.
	if b.At(0).Clipped {
		t.Fatal("unclipped primitive not sorted first")
	}
	if !(b.At(1).Clip == clipA && b.At(2).Clip == clipA) {
		t.Fatalf("shared clip not grouped: %+v / %+v", b.At(1).Clip, b.At(2).Clip)
	}
	if b.At(3).Clip != clipB {
		t.Fatalf("slot 3 clip = %+v, want %+v", b.At(3).Clip, clipB)
	}
}

func TestBufferTextInterning(t *testing.T) {
	b := NewCommandBuffer(64)
	s := string([]byte{'h', 'i'})
	b.PushText(Primitive{Kind: KindText}, s)

	p := b.At(0)
	if string(p.Text) != "hi" {
		t.Fatalf("interned text = %q", p.Text)
	}
	if b.TextBytes() != 2 {
		t.Fatalf("arena holds %d bytes, want 2", b.TextBytes())
	}

	b.Reset()
	if b.Len() != 0 || b.TextBytes() != 0 {
		t.Fatal("Reset did not clear primitives and arena")
	}
}

func TestBufferReusesStorageAcrossFrames(t *testing.T) {
	b := NewCommandBuffer(1024)
	for frame := 0; frame < 3; frame++ {
		b.Reset()
		for i := 0; i < 10; i++ {
			b.PushText(Primitive{Kind: KindText, Color: colors.White}, "frame text")
		}
		if b.Len() != 10 {
			t.Fatalf("frame %d: Len = %d, want 10", frame, b.Len())
		}
	}
}
