package ui

import (
	"sort"

	"github.com/brakewood/thicket/engine/arena"
)

// CommandBuffer accumulates one frame of primitives. The primitive slice
// and the text arena are both reused frame to frame; Reset reclaims
// everything in O(1) without freeing.
type CommandBuffer struct {
	arena *arena.Arena
	prims []Primitive
	seq   uint32
}

// NewCommandBuffer creates a buffer whose text arena starts at
// arenaCapacity bytes. Both grow on demand and never shrink.
func NewCommandBuffer(arenaCapacity int) *CommandBuffer {
	return &CommandBuffer{arena: arena.New(arenaCapacity)}
}

// Reset drops all primitives and arena text. Previously returned
// primitives and their Text slices are invalid after Reset.
func (b *CommandBuffer) Reset() {
	b.arena.Reset()
	b.prims = b.prims[:0]
	b.seq = 0
}

func (b *CommandBuffer) Len() int            { return len(b.prims) }
func (b *CommandBuffer) At(i int) *Primitive { return &b.prims[i] }

// Primitives exposes the backing slice for iteration. The slice is owned
// by the buffer and only valid until the next Reset.
func (b *CommandBuffer) Primitives() []Primitive { return b.prims }

// TextBytes reports how much arena memory the frame's text used.
func (b *CommandBuffer) TextBytes() int { return b.arena.Len() }

// Push appends p, stamping its emission sequence.
func (b *CommandBuffer) Push(p Primitive) {
	p.seq = b.seq
	b.seq++
	b.prims = append(b.prims, p)
}

// PushText appends a text primitive, interning s into the frame arena so
// the caller's string need not outlive the call.
func (b *CommandBuffer) PushText(p Primitive, s string) {
	p.Text = b.arena.CopyString(s)
	b.Push(p)
}

// Sort orders primitives by (layer, kind, clip, node, sequence). The
// final sequence tie-break makes the order total, so the result is
// deterministic regardless of the sort algorithm's stability.
func (b *CommandBuffer) Sort() {
	sort.Sort(byBatch(b.prims))
}

type byBatch []Primitive

func (s byBatch) Len() int      { return len(s) }
func (s byBatch) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s byBatch) Less(i, j int) bool {
	a, b := &s[i], &s[j]
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if c := compareClip(a, b); c != 0 {
		return c < 0
	}
	if a.Node != b.Node {
		return a.Node < b.Node
	}
	return a.seq < b.seq
}

// compareClip groups primitives sharing a scissor so dispatch toggles
// the scissor as few times as possible within a (layer, kind) run.
func compareClip(a, b *Primitive) int {
	switch {
	case !a.Clipped && !b.Clipped:
		return 0
	case !a.Clipped:
		return -1
	case !b.Clipped:
		return 1
	}
	av := [4]float32{a.Clip.X, a.Clip.Y, a.Clip.W, a.Clip.H}
	bv := [4]float32{b.Clip.X, b.Clip.Y, b.Clip.W, b.Clip.H}
	for i := range av {
		if av[i] != bv[i] {
			if av[i] < bv[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
