package ui

import (
	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/entity"
)

// Kind discriminates render primitives. Sort order groups primitives of
// the same kind together inside a layer so sinks can batch them.
type Kind uint8

const (
	KindRect Kind = iota
	KindRoundedRect
	KindOutline
	KindRoundedOutline
	KindImage
	KindNineSlice
	KindText
	KindRing
	KindRingSegment
	// Scissor kinds never appear in the buffer. They are synthesized at
	// dispatch when the clip rect changes between sorted runs, because a
	// begin/end pair stored as commands could not survive sorting.
	KindScissorBegin
	KindScissorEnd
)

var kindNames = [...]string{
	"Rect", "RoundedRect", "Outline", "RoundedOutline", "Image",
	"NineSlice", "Text", "Ring", "RingSegment", "ScissorBegin", "ScissorEnd",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Primitive is one draw command. All fields are plain values; Text is
// the only reference and points into the buffer's arena, so a primitive
// is valid exactly as long as its frame.
type Primitive struct {
	Kind  Kind
	Layer int32
	Node  entity.ID

	Rect  Rect
	Color colors.Color

	// Clip, when Clipped, is the screen-space scissor for this primitive,
	// already intersected across every enclosing scroll region.
	Clip    Rect
	Clipped bool

	Radius    float32 // corner radius, or ring radius for ring kinds
	Thickness float32 // outline or ring stroke width
	Start     float32 // ring segment angles in radians
	End       float32

	Text     []byte // arena-backed; frame lifetime
	FontSize float32

	Texture TextureID
	Src     Rect // normalized source region
	Slice   Insets

	seq uint32
}

// Seq returns the emission order of the primitive within its frame.
func (p *Primitive) Seq() uint32 { return p.seq }
