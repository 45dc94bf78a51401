// Package ebitensink implements the UI draw sink on ebiten. It trades
// fidelity for zero setup: no font atlas, no GL context, just an
// *ebiten.Image target. Handy for tools and tests of the full pipeline.
package ebitensink

import (
	"image"
	gocolor "image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/ui"
)

type Sink struct {
	base *ebiten.Image
	dst  *ebiten.Image

	stack    []*ebiten.Image
	textures map[ui.TextureID]*ebiten.Image
	nextID   ui.TextureID
}

func New() *Sink {
	return &Sink{textures: make(map[ui.TextureID]*ebiten.Image), nextID: 1}
}

// SetTarget points the sink at this frame's screen image. Call once per
// Draw before ui.Render.
func (s *Sink) SetTarget(img *ebiten.Image) {
	s.base = img
	s.dst = img
	s.stack = s.stack[:0]
}

// Register maps an ebiten image to a texture id the UI can reference.
func (s *Sink) Register(img *ebiten.Image) ui.TextureID {
	id := s.nextID
	s.nextID++
	s.textures[id] = img
	return id
}

func rgba(c colors.Color) gocolor.RGBA {
	return gocolor.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: uint8(clamp01(c[3]) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (s *Sink) FillRect(r ui.Rect, c colors.Color) {
	vector.DrawFilledRect(s.dst, r.X, r.Y, r.W, r.H, rgba(c), true)
}

func (s *Sink) FillRoundedRect(r ui.Rect, radius float32, c colors.Color) {
	rad := radius
	if m := min32(r.W, r.H) / 2; rad > m {
		rad = m
	}
	col := rgba(c)
	// Cross of two rects plus four corner circles.
	vector.DrawFilledRect(s.dst, r.X+rad, r.Y, r.W-2*rad, r.H, col, true)
	vector.DrawFilledRect(s.dst, r.X, r.Y+rad, rad, r.H-2*rad, col, true)
	vector.DrawFilledRect(s.dst, r.X+r.W-rad, r.Y+rad, rad, r.H-2*rad, col, true)
	vector.DrawFilledCircle(s.dst, r.X+rad, r.Y+rad, rad, col, true)
	vector.DrawFilledCircle(s.dst, r.X+r.W-rad, r.Y+rad, rad, col, true)
	vector.DrawFilledCircle(s.dst, r.X+rad, r.Y+r.H-rad, rad, col, true)
	vector.DrawFilledCircle(s.dst, r.X+r.W-rad, r.Y+r.H-rad, rad, col, true)
}

func (s *Sink) StrokeRect(r ui.Rect, thickness float32, c colors.Color) {
	vector.StrokeRect(s.dst, r.X, r.Y, r.W, r.H, thickness, rgba(c), true)
}

func (s *Sink) StrokeRoundedRect(r ui.Rect, radius, thickness float32, c colors.Color) {
	// Corner rounding is cosmetic here; a plain stroke keeps it simple.
	vector.StrokeRect(s.dst, r.X, r.Y, r.W, r.H, thickness, rgba(c), true)
}

// DrawText uses the debug bitmap font; size and color are fixed by
// ebitenutil. Good enough for the tool backend this sink targets.
func (s *Sink) DrawText(x, y float32, str string, size float32, c colors.Color) {
	ebitenutil.DebugPrintAt(s.dst, str, int(x), int(y))
}

func (s *Sink) DrawImage(tex ui.TextureID, dst, src ui.Rect, tint colors.Color) {
	img, ok := s.textures[tex]
	if !ok {
		return
	}
	part := subImage(img, src)
	bw, bh := part.Bounds().Dx(), part.Bounds().Dy()
	if bw == 0 || bh == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(dst.W)/float64(bw), float64(dst.H)/float64(bh))
	op.GeoM.Translate(float64(dst.X), float64(dst.Y))
	op.ColorScale.Scale(tint[0], tint[1], tint[2], tint[3])
	s.dst.DrawImage(part, op)
}

func (s *Sink) DrawNineSlice(tex ui.TextureID, dst, src ui.Rect, in ui.Insets, tint colors.Color) {
	dx := [3]float32{in.L, dst.W - in.L - in.R, in.R}
	dy := [3]float32{in.T, dst.H - in.T - in.B, in.B}
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
			if dx[col] > 0 && dy[row] > 0 {
				s.DrawImage(tex,
					ui.Rect{X: px, Y: py, W: dx[col], H: dy[row]},
					ui.Rect{X: u, Y: v, W: sx[col], H: sy[row]}, tint)
			}
			u += sx[col]
			px += dx[col]
		}
		v += sy[row]
		py += dy[row]
	}
}

func (s *Sink) DrawRing(cx, cy, radius, thickness, start, end float32, c colors.Color) {
	col := rgba(c)
	if end-start >= 2*math.Pi-1e-3 {
		vector.StrokeCircle(s.dst, cx, cy, radius-thickness/2, thickness, col, true)
		return
	}
	// Arc as a polyline of short strokes.
	mid := radius - thickness/2
	segs := int(float64(mid) * float64(end-start) / 4)
	if segs < 8 {
		segs = 8
	}
	step := (end - start) / float32(segs)
	px := cx + mid*float32(math.Cos(float64(start)))
	py := cy + mid*float32(math.Sin(float64(start)))
	for i := 1; i <= segs; i++ {
		a := start + float32(i)*step
		nx := cx + mid*float32(math.Cos(float64(a)))
		ny := cy + mid*float32(math.Sin(float64(a)))
		vector.StrokeLine(s.dst, px, py, nx, ny, thickness, col, true)
		px, py = nx, ny
	}
}

// BeginScissor narrows drawing to r via SubImage. SubImage shares the
// base pixels and keeps absolute coordinates, so no offset bookkeeping.
func (s *Sink) BeginScissor(r ui.Rect) {
	s.stack = append(s.stack, s.dst)
	clip := image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
	s.dst = s.base.SubImage(clip.Intersect(s.base.Bounds())).(*ebiten.Image)
}

func (s *Sink) EndScissor() {
	if n := len(s.stack); n > 0 {
		s.dst = s.stack[n-1]
		s.stack = s.stack[:n-1]
	} else {
		s.dst = s.base
	}
}

func subImage(img *ebiten.Image, src ui.Rect) *ebiten.Image {
	b := img.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	r := image.Rect(
		b.Min.X+int(src.X*w), b.Min.Y+int(src.Y*h),
		b.Min.X+int((src.X+src.W)*w), b.Min.Y+int((src.Y+src.H)*h),
	)
	return img.SubImage(r.Intersect(b)).(*ebiten.Image)
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
