// Package uisink adapts the quad batcher into the UI's draw sink.
// Primitives become batched quads: outlines are four thin quads, rings
// are short rotated segments, nine-slices are nine UV sub-quads.
package uisink

import (
	"math"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/core"
	"github.com/brakewood/thicket/engine/gfx/renderer2d"
	"github.com/brakewood/thicket/engine/text"
	"github.com/brakewood/thicket/engine/ui"
)

type Sink struct {
	rd   *renderer2d.Renderer2D
	font *text.Font

	textures map[ui.TextureID]core.Texture
	nextID   ui.TextureID
}

func New(rd *renderer2d.Renderer2D, font *text.Font) *Sink {
	return &Sink{
		rd:       rd,
		font:     font,
		textures: make(map[ui.TextureID]core.Texture),
		nextID:   1,
	}
}

// Renderer exposes the underlying batcher for scene begin/end.
func (s *Sink) Renderer() *renderer2d.Renderer2D { return s.rd }

// Register maps a backend texture to a stable id the UI can reference.
func (s *Sink) Register(tex core.Texture) ui.TextureID {
	id := s.nextID
	s.nextID++
	s.textures[id] = tex
	return id
}

func (s *Sink) FillRect(r ui.Rect, c colors.Color) {
	s.rd.DrawQuad(r.X+r.W/2, r.Y+r.H/2, r.W, r.H, c, 0)
}

// FillRoundedRect approximates corners with 45-degree bevels: a body
// quad, two side quads, and four rotated corner quads.
func (s *Sink) FillRoundedRect(r ui.Rect, radius float32, c colors.Color) {
	rad := minf(radius, minf(r.W, r.H)/2)
	if rad < 1 {
		s.FillRect(r, c)
		return
	}
	// Body spans the full height between the side strips.
	s.rd.DrawQuad(r.X+r.W/2, r.Y+r.H/2, r.W-2*rad, r.H, c, 0)
	s.rd.DrawQuad(r.X+rad/2, r.Y+r.H/2, rad, r.H-2*rad, c, 0)
	s.rd.DrawQuad(r.X+r.W-rad/2, r.Y+r.H/2, rad, r.H-2*rad, c, 0)

	d := rad * float32(math.Sqrt2) / 2
	corners := [4][2]float32{
		{r.X + rad, r.Y + rad},
		{r.X + r.W - rad, r.Y + rad},
		{r.X + rad, r.Y + r.H - rad},
		{r.X + r.W - rad, r.Y + r.H - rad},
	}
	for _, p := range corners {
		s.rd.DrawQuad(p[0], p[1], d*2, d*2, c, math.Pi/4)
	}
}

func (s *Sink) StrokeRect(r ui.Rect, thickness float32, c colors.Color) {
	t := minf(thickness, minf(r.W, r.H)/2)
	s.rd.DrawQuad(r.X+r.W/2, r.Y+t/2, r.W, t, c, 0)         // top
	s.rd.DrawQuad(r.X+r.W/2, r.Y+r.H-t/2, r.W, t, c, 0)     // bottom
	s.rd.DrawQuad(r.X+t/2, r.Y+r.H/2, t, r.H-2*t, c, 0)     // left
	s.rd.DrawQuad(r.X+r.W-t/2, r.Y+r.H/2, t, r.H-2*t, c, 0) // right
}

func (s *Sink) StrokeRoundedRect(r ui.Rect, radius, thickness float32, c colors.Color) {
	// Bevel approximation again: straight edges pulled in by the radius,
	// diagonal strokes across the corners.
	rad := minf(radius, minf(r.W, r.H)/2)
	if rad < 1 {
		s.StrokeRect(r, thickness, c)
		return
	}
	t := thickness
	s.rd.DrawQuad(r.X+r.W/2, r.Y+t/2, r.W-2*rad, t, c, 0)
	s.rd.DrawQuad(r.X+r.W/2, r.Y+r.H-t/2, r.W-2*rad, t, c, 0)
	s.rd.DrawQuad(r.X+t/2, r.Y+r.H/2, t, r.H-2*rad, c, 0)
	s.rd.DrawQuad(r.X+r.W-t/2, r.Y+r.H/2, t, r.H-2*rad, c, 0)

	diag := rad * float32(math.Sqrt2)
	type corner struct{ cx, cy, rot float32 }
	cs := [4]corner{
		{r.X + rad/2 + t/2, r.Y + rad/2 + t/2, -math.Pi / 4},
		{r.X + r.W - rad/2 - t/2, r.Y + rad/2 + t/2, math.Pi / 4},
		{r.X + rad/2 + t/2, r.Y + r.H - rad/2 - t/2, math.Pi / 4},
		{r.X + r.W - rad/2 - t/2, r.Y + r.H - rad/2 - t/2, -math.Pi / 4},
	}
	for _, co := range cs {
		s.rd.DrawQuad(co.cx, co.cy, diag, t, c, co.rot)
	}
}

func (s *Sink) DrawText(x, y float32, str string, size float32, c colors.Color) {
	if s.font == nil {
		return
	}
	text.Draw(s.rd, s.font, x, y, str, size, c)
}

func (s *Sink) DrawImage(tex ui.TextureID, dst, src ui.Rect, tint colors.Color) {
	t, ok := s.textures[tex]
	if !ok {
		return
	}
	sub := renderer2d.SubTexture2D{
		Texture: t,
		U0:      src.X, V0: src.Y,
		U1: src.X + src.W, V1: src.Y + src.H,
	}
	s.rd.DrawSubTexQuad(dst.X+dst.W/2, dst.Y+dst.H/2, dst.W, dst.H, sub, tint, 0)
}

// DrawNineSlice splits the source into a 3x3 grid: corners keep their
// pixel size (insets are in destination pixels), edges stretch along one
// axis, the center stretches along both.
func (s *Sink) DrawNineSlice(tex ui.TextureID, dst, src ui.Rect, in ui.Insets, tint colors.Color) {
	t, ok := s.textures[tex]
	if !ok {
		return
	}

	// Destination column widths and row heights.
	dx := [3]float32{in.L, dst.W - in.L - in.R, in.R}
	dy := [3]float32{in.T, dst.H - in.T - in.B, in.B}
	// Source UV columns and rows; insets map proportionally into the
	// normalized source region.
	sx := [3]float32{src.W * in.L / dst.W, 0, src.W * in.R / dst.W}
	sx[1] = src.W - sx[0] - sx[2]
	sy := [3]float32{src.H * in.T / dst.H, 0, src.H * in.B / dst.H}
	sy[1] = src.H - sy[0] - sy[2]

	v := src.Y
	py := dst.Y
	for row := 0; row < 3; row++ {
		u := src.X
		px := dst.X
		for col := 0; col < 3; col++ {
			w, h := dx[col], dy[row]
			if w > 0 && h > 0 {
				sub := renderer2d.SubTexture2D{
					Texture: t,
					U0:      u, V0: v,
					U1: u + sx[col], V1: v + sy[row],
				}
				s.rd.DrawSubTexQuad(px+w/2, py+h/2, w, h, sub, tint, 0)
			}
			u += sx[col]
			px += w
		}
		v += sy[row]
		py += dy[row]
	}
}

// DrawRing tessellates the arc into short rotated quads. Segment count
// scales with radius so big rings stay smooth without wasting quads on
// small ones.
func (s *Sink) DrawRing(cx, cy, radius, thickness, start, end float32, c colors.Color) {
	if end < start {
		start, end = end, start
	}
	arc := end - start
	segs := int(float64(radius) * float64(arc) / 4)
	if segs < 8 {
		segs = 8
	}
	step := arc / float32(segs)
	mid := radius - thickness/2
	// Chord length plus a hair of overlap to hide seams.
	chord := 2*mid*float32(math.Sin(float64(step)/2)) + 1

	for i := 0; i < segs; i++ {
		a := start + (float32(i)+0.5)*step
		x := cx + mid*float32(math.Cos(float64(a)))
		y := cy + mid*float32(math.Sin(float64(a)))
		s.rd.DrawQuad(x, y, thickness, chord, c, a)
	}
}

func (s *Sink) BeginScissor(r ui.Rect) {
	// The scissor applies at draw time, so pending quads must go out
	// under the previous scissor first.
	s.rd.Flush()
	s.rd.Backend().SetScissor(int32(r.X), int32(r.Y), int32(r.W), int32(r.H))
}

func (s *Sink) EndScissor() {
	s.rd.Flush()
	s.rd.Backend().ClearScissor()
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
