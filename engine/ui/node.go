// Package ui implements an immediate-mode UI core over persistent nodes.
//
// Application code re-declares its widget tree every frame; the identity
// table maps each declaration back onto a persistent node so per-widget
// state (scroll offset, focus, hover) survives across frames. A frame is
// three sequential phases: declaration, layout, render emission.
package ui

import (
	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/entity"
)

// SizeMode selects how one axis of a node resolves to pixels.
type SizeMode uint8

const (
	// SizeChildren fits the axis to the node's children (the default).
	SizeChildren SizeMode = iota
	// SizePixels is a fixed size in logical pixels.
	SizePixels
	// SizePercent is a fraction of the parent's content size.
	SizePercent
	// SizeScreenPercent is a fraction of the viewport, ignoring the parent.
	SizeScreenPercent
	// SizeExpand fills leftover space along the parent's flow axis.
	SizeExpand
)

// Size is a per-axis sizing rule. Strict sizes are never clamped to the
// parent's content box during positioning.
type Size struct {
	Mode   SizeMode
	Value  float32
	Strict bool
}

func Pixels(v float32) Size        { return Size{Mode: SizePixels, Value: v, Strict: true} }
func Percent(f float32) Size       { return Size{Mode: SizePercent, Value: f} }
func ScreenPercent(f float32) Size { return Size{Mode: SizeScreenPercent, Value: f} }
func FitChildren() Size            { return Size{Mode: SizeChildren} }
func Expand() Size                 { return Size{Mode: SizeExpand} }

// Direction is the flow axis for child placement.
type Direction uint8

const (
	Row Direction = iota
	Column
)

// Align covers both main-axis justification and cross-axis alignment.
// AlignAuto defers to the container (and means Start at the container).
type Align uint8

const (
	AlignAuto Align = iota
	AlignStart
	AlignCenter
	AlignEnd
	AlignStretch
	AlignSpaceBetween
)

// Insets are four-sided spacing in pixels (padding or margin).
type Insets struct {
	L, T, R, B float32
}

func Uniform(v float32) Insets      { return Insets{v, v, v, v} }
func Symmetric(h, v float32) Insets { return Insets{h, v, h, v} }

func (in Insets) Horizontal() float32 { return in.L + in.R }
func (in Insets) Vertical() float32   { return in.T + in.B }

// axis returns the summed insets along axis (0 = x, 1 = y).
func (in Insets) axis(a int) float32 {
	if a == 0 {
		return in.Horizontal()
	}
	return in.Vertical()
}

// lead returns the leading inset along axis.
func (in Insets) lead(a int) float32 {
	if a == 0 {
		return in.L
	}
	return in.T
}

// Rect is an axis-aligned rectangle in absolute screen pixels.
type Rect struct {
	X, Y, W, H float32
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o (possibly empty).
func (r Rect) Intersect(o Rect) Rect {
	x0 := maxf(r.X, o.X)
	y0 := maxf(r.Y, o.Y)
	x1 := minf(r.X+r.W, o.X+o.W)
	y1 := minf(r.Y+r.H, o.Y+o.H)
	return Rect{x0, y0, max0(x1 - x0), max0(y1 - y0)}
}

// Inset shrinks r by the given insets, clamping to zero size.
func (r Rect) Inset(in Insets) Rect {
	return Rect{r.X + in.L, r.Y + in.T, max0(r.W - in.Horizontal()), max0(r.H - in.Vertical())}
}

// TextureID refers to a backend texture registered with the draw sink.
// Zero means "no texture".
type TextureID uint32

// ImageMode selects how a node's texture fills its rectangle.
type ImageMode uint8

const (
	ImageNone ImageMode = iota
	ImageStretch
	ImageNineSlice
)

// Config is the per-frame layout and visual configuration of a node.
// It is rewritten by the caller every frame before layout runs; the zero
// value is a Children-sized, Row-flow, invisible container.
type Config struct {
	Width  Size
	Height Size

	Padding Insets
	Margin  Insets

	Direction  Direction
	Wrap       bool
	MainAlign  Align
	CrossAlign Align
	SelfAlign  Align

	// Absolute removes the node from flow; it is placed at the parent's
	// content origin plus Offset and does not affect its siblings.
	Absolute bool
	Offset   [2]float32

	// Translate is a render-time modifier: it shifts the node and its
	// subtree at emission without re-running layout (animation hook).
	Translate [2]float32

	Layer      int32
	Hidden     bool
	Scrollable bool

	Background   colors.Color
	CornerRadius float32
	BorderColor  colors.Color
	BorderWidth  float32

	Text      string
	FontSize  float32
	TextColor colors.Color

	Texture     TextureID
	ImageMode   ImageMode
	Src         Rect // normalized source region; zero means the whole texture
	Tint        colors.Color
	SliceInsets Insets

	RingColor     colors.Color
	RingThickness float32
	RingStart     float32 // radians; Start == End means a full ring
	RingEnd       float32
}

// Node is one persistent widget instance. It survives as long as its call
// site keeps being declared; geometry fields are owned by the layout pass.
type Node struct {
	id       entity.ID
	parent   entity.ID
	children []entity.ID

	cfg Config

	// scroll persists across frames and is written by input handling.
	scroll [2]float32

	// Computed by layout. rect is absolute (root-relative); content is the
	// children bounding size used for the scroll range.
	size      [2]float32
	rect      Rect
	content   [2]float32
	maxScroll [2]float32

	rendered  bool
	lastFrame uint64
}

func (n *Node) ID() entity.ID          { return n.id }
func (n *Node) Parent() entity.ID      { return n.parent }
func (n *Node) ChildIDs() []entity.ID  { return n.children }
func (n *Node) Rect() Rect             { return n.rect }
func (n *Node) Size() (w, h float32)   { return n.size[0], n.size[1] }
func (n *Node) ContentSize() (w, h float32) { return n.content[0], n.content[1] }
func (n *Node) MaxScroll() (x, y float32)   { return n.maxScroll[0], n.maxScroll[1] }
func (n *Node) Scroll() (x, y float32)      { return n.scroll[0], n.scroll[1] }
func (n *Node) WasRendered() bool      { return n.rendered }
func (n *Node) Config() Config         { return n.cfg }

// SetScroll sets the scroll offset, clamped to the last computed range.
func (n *Node) SetScroll(x, y float32) {
	n.scroll[0] = clampf(x, 0, n.maxScroll[0])
	n.scroll[1] = clampf(y, 0, n.maxScroll[1])
}

// ScrollBy adjusts the scroll offset relative to its current value.
func (n *Node) ScrollBy(dx, dy float32) {
	n.SetScroll(n.scroll[0]+dx, n.scroll[1]+dy)
}

// ----- fluent configuration (called by the widget layer each frame) -----

func (n *Node) Sized(w, h Size) *Node {
	n.cfg.Width, n.cfg.Height = w, h
	return n
}

func (n *Node) WidthSize(s Size) *Node  { n.cfg.Width = s; return n }
func (n *Node) HeightSize(s Size) *Node { n.cfg.Height = s; return n }

func (n *Node) Pad(all float32) *Node       { n.cfg.Padding = Uniform(all); return n }
func (n *Node) PadInsets(in Insets) *Node   { n.cfg.Padding = in; return n }
func (n *Node) MarginAll(all float32) *Node { n.cfg.Margin = Uniform(all); return n }
func (n *Node) MarginInsets(in Insets) *Node { n.cfg.Margin = in; return n }

func (n *Node) Flow(d Direction) *Node    { n.cfg.Direction = d; return n }
func (n *Node) WrapLines() *Node          { n.cfg.Wrap = true; return n }
func (n *Node) Justify(a Align) *Node     { n.cfg.MainAlign = a; return n }
func (n *Node) AlignCross(a Align) *Node  { n.cfg.CrossAlign = a; return n }
func (n *Node) AlignSelf(a Align) *Node   { n.cfg.SelfAlign = a; return n }

func (n *Node) AbsoluteAt(x, y float32) *Node {
	n.cfg.Absolute = true
	n.cfg.Offset = [2]float32{x, y}
	return n
}

func (n *Node) TranslateBy(x, y float32) *Node {
	n.cfg.Translate = [2]float32{x, y}
	return n
}

func (n *Node) OnLayer(l int32) *Node { n.cfg.Layer = l; return n }
func (n *Node) Hide(hidden bool) *Node { n.cfg.Hidden = hidden; return n }
func (n *Node) Clip() *Node            { n.cfg.Scrollable = true; return n }

func (n *Node) Bg(c colors.Color) *Node      { n.cfg.Background = c; return n }
func (n *Node) Rounded(radius float32) *Node { n.cfg.CornerRadius = radius; return n }

func (n *Node) Border(c colors.Color, width float32) *Node {
	n.cfg.BorderColor = c
	n.cfg.BorderWidth = width
	return n
}

func (n *Node) Label(text string, size float32, c colors.Color) *Node {
	n.cfg.Text = text
	n.cfg.FontSize = size
	n.cfg.TextColor = c
	return n
}

func (n *Node) Image(tex TextureID, tint colors.Color) *Node {
	n.cfg.Texture = tex
	n.cfg.ImageMode = ImageStretch
	n.cfg.Tint = tint
	return n
}

// ImageRegion restricts the drawn texture to a normalized source rect.
func (n *Node) ImageRegion(src Rect) *Node { n.cfg.Src = src; return n }

func (n *Node) NineSlice(tex TextureID, insets Insets, tint colors.Color) *Node {
	n.cfg.Texture = tex
	n.cfg.ImageMode = ImageNineSlice
	n.cfg.SliceInsets = insets
	n.cfg.Tint = tint
	return n
}

func (n *Node) Ring(thickness float32, c colors.Color) *Node {
	n.cfg.RingThickness = thickness
	n.cfg.RingColor = c
	n.cfg.RingStart, n.cfg.RingEnd = 0, 0
	return n
}

// RingArc draws only the [start, end) angular range, in radians.
func (n *Node) RingArc(thickness float32, start, end float32, c colors.Color) *Node {
	n.cfg.RingThickness = thickness
	n.cfg.RingColor = c
	n.cfg.RingStart, n.cfg.RingEnd = start, end
	return n
}

// ----- small math helpers -----

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max0(v float32) float32 {
	if v < 0 || v != v { // negatives and NaN both clamp to zero
		return 0
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo || v != v {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
