package ui

import (
	"math"

	"github.com/brakewood/thicket/engine/arena"
	"github.com/brakewood/thicket/engine/colors"
)

// TextMeasurer reports the pixel extent of a text run at a font size.
// The layout pass uses it to fit text leaves.
type TextMeasurer interface {
	Measure(text string, size float32) (w, h float32)
}

// DrawSink receives dispatched primitives. Implementations translate the
// calls to a concrete backend (GPU quad batcher, ebiten, a test recorder).
type DrawSink interface {
	FillRect(r Rect, c colors.Color)
	FillRoundedRect(r Rect, radius float32, c colors.Color)
	StrokeRect(r Rect, thickness float32, c colors.Color)
	StrokeRoundedRect(r Rect, radius, thickness float32, c colors.Color)
	DrawText(x, y float32, text string, size float32, c colors.Color)
	DrawImage(tex TextureID, dst, src Rect, tint colors.Color)
	DrawNineSlice(tex TextureID, dst, src Rect, insets Insets, tint colors.Color)
	DrawRing(cx, cy, radius, thickness, start, end float32, c colors.Color)
	BeginScissor(r Rect)
	EndScissor()
}

// Batcher is optionally implemented by sinks that want run boundaries.
// Render brackets every maximal run of same-kind, same-layer primitives
// with BeginBatch/EndBatch.
type Batcher interface {
	BeginBatch(kind Kind, layer int32, count int)
	EndBatch()
}

// Emit walks the laid-out tree and fills the command buffer. Hidden
// nodes drop their whole subtree. Children of scroll regions are shifted
// by the scroll offset and clipped to the region's content box; nested
// regions clip to the intersection of all enclosing boxes.
func (u *UI) Emit() *CommandBuffer {
	u.buf.Reset()
	if u.root != nil {
		u.emit(u.root, 0, [2]float32{}, Rect{}, false)
	}
	return u.buf
}

func (u *UI) emit(n *Node, inheritedLayer int32, off [2]float32, clip Rect, clipped bool) {
	cfg := &n.cfg
	if cfg.Hidden {
		n.rendered = false
		return
	}
	layer := inheritedLayer
	if cfg.Layer != 0 {
		layer = cfg.Layer
	}

	off[0] += cfg.Translate[0]
	off[1] += cfg.Translate[1]
	r := Rect{n.rect.X + off[0], n.rect.Y + off[1], n.rect.W, n.rect.H}
	n.rendered = true

	base := Primitive{Layer: layer, Node: n.id, Rect: r, Clip: clip, Clipped: clipped}

	if cfg.Background.Visible() && !r.Empty() {
		p := base
		p.Color = cfg.Background
		if cfg.CornerRadius > 0 {
			p.Kind = KindRoundedRect
			p.Radius = cfg.CornerRadius
		} else {
			p.Kind = KindRect
		}
		u.buf.Push(p)
	}

	if cfg.ImageMode != ImageNone && cfg.Texture != 0 && !r.Empty() {
		p := base
		p.Texture = cfg.Texture
		p.Src = cfg.Src
		if p.Src.Empty() {
			p.Src = Rect{0, 0, 1, 1}
		}
		p.Color = cfg.Tint
		if !p.Color.Visible() {
			p.Color = colors.White
		}
		if cfg.ImageMode == ImageNineSlice {
			p.Kind = KindNineSlice
			p.Slice = cfg.SliceInsets
		} else {
			p.Kind = KindImage
		}
		u.buf.Push(p)
	}

	if cfg.Text != "" {
		p := base
		p.Kind = KindText
		p.Rect = r.Inset(cfg.Padding)
		p.FontSize = cfg.FontSize
		p.Color = cfg.TextColor
		if !p.Color.Visible() {
			p.Color = colors.White
		}
		u.buf.PushText(p, cfg.Text)
	}

	if cfg.RingThickness > 0 && cfg.RingColor.Visible() && !r.Empty() {
		p := base
		p.Color = cfg.RingColor
		p.Thickness = cfg.RingThickness
		p.Radius = minf(r.W, r.H) / 2
		if cfg.RingStart == cfg.RingEnd {
			p.Kind = KindRing
			p.Start, p.End = 0, 2*math.Pi
		} else {
			p.Kind = KindRingSegment
			p.Start, p.End = cfg.RingStart, cfg.RingEnd
		}
		u.buf.Push(p)
	}

	// Border last so it overdraws the fill edge.
	if cfg.BorderWidth > 0 && cfg.BorderColor.Visible() && !r.Empty() {
		p := base
		p.Color = cfg.BorderColor
		p.Thickness = cfg.BorderWidth
		if cfg.CornerRadius > 0 {
			p.Kind = KindRoundedOutline
			p.Radius = cfg.CornerRadius
		} else {
			p.Kind = KindOutline
		}
		u.buf.Push(p)
	}

	childOff := off
	childClip, childClipped := clip, clipped
	if cfg.Scrollable {
		content := r.Inset(cfg.Padding)
		if clipped {
			childClip = clip.Intersect(content)
		} else {
			childClip = content
		}
		childClipped = true
		childOff[0] -= n.scroll[0]
		childOff[1] -= n.scroll[1]
	}

	for _, cid := range n.children {
		if c := u.nodes[cid]; c != nil {
			u.emit(c, layer, childOff, childClip, childClipped)
		}
	}
}

// Render sorts the buffer and dispatches it to sink in batched runs.
// Scissor begin/end calls are synthesized whenever the effective clip
// changes between consecutive primitives.
func Render(b *CommandBuffer, sink DrawSink) {
	b.Sort()
	prims := b.prims
	batcher, hasBatcher := sink.(Batcher)

	var clipOn bool
	var clip Rect
	for i := 0; i < len(prims); {
		j := i + 1
		for j < len(prims) && sameRun(&prims[i], &prims[j]) {
			j++
		}
		run := prims[i:j]
		p0 := &run[0]

		if p0.Clipped != clipOn || (p0.Clipped && p0.Clip != clip) {
			if clipOn {
				sink.EndScissor()
			}
			if p0.Clipped {
				sink.BeginScissor(p0.Clip)
			}
			clipOn, clip = p0.Clipped, p0.Clip
		}

		if hasBatcher {
			batcher.BeginBatch(p0.Kind, p0.Layer, len(run))
		}
		for k := range run {
			dispatch(&run[k], sink)
		}
		if hasBatcher {
			batcher.EndBatch()
		}
		i = j
	}
	if clipOn {
		sink.EndScissor()
	}
}

func sameRun(a, b *Primitive) bool {
	return a.Layer == b.Layer && a.Kind == b.Kind &&
		a.Clipped == b.Clipped && (!a.Clipped || a.Clip == b.Clip)
}

// dispatch forwards one primitive, skipping malformed entries (empty
// rects, empty text) instead of passing garbage to the backend.
func dispatch(p *Primitive, sink DrawSink) {
	switch p.Kind {
	case KindRect:
		if !p.Rect.Empty() {
			sink.FillRect(p.Rect, p.Color)
		}
	case KindRoundedRect:
		if !p.Rect.Empty() {
			sink.FillRoundedRect(p.Rect, p.Radius, p.Color)
		}
	case KindOutline:
		if !p.Rect.Empty() {
			sink.StrokeRect(p.Rect, p.Thickness, p.Color)
		}
	case KindRoundedOutline:
		if !p.Rect.Empty() {
			sink.StrokeRoundedRect(p.Rect, p.Radius, p.Thickness, p.Color)
		}
	case KindText:
		if len(p.Text) > 0 {
			// Zero-copy view; the sink must not retain it past the frame.
			sink.DrawText(p.Rect.X, p.Rect.Y, arena.StringView(p.Text), p.FontSize, p.Color)
		}
	case KindImage:
		if !p.Rect.Empty() && p.Texture != 0 {
			sink.DrawImage(p.Texture, p.Rect, p.Src, p.Color)
		}
	case KindNineSlice:
		if !p.Rect.Empty() && p.Texture != 0 {
			sink.DrawNineSlice(p.Texture, p.Rect, p.Src, p.Slice, p.Color)
		}
	case KindRing, KindRingSegment:
		if p.Radius > 0 && p.Thickness > 0 {
			cx := p.Rect.X + p.Rect.W/2
			cy := p.Rect.Y + p.Rect.H/2
			sink.DrawRing(cx, cy, p.Radius, p.Thickness, p.Start, p.End, p.Color)
		}
	}
}
