package text

import (
	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/gfx/renderer2d"
)

// Draw renders s with its top-left corner at (x,y), scaled from the
// atlas size to the requested size. Positive Y goes downward, matching
// the 2D projection.
func Draw(r2d *renderer2d.Renderer2D, f *Font, x, y float32, s string, size float32, color colors.Color) {
	scale := float32(1)
	if size > 0 && f.SizePx > 0 {
		scale = size / f.SizePx
	}

	penX := x
	baseY := y + f.Ascent*scale
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += f.LineHeight() * scale
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			if sp, ok2 := f.Glyphs[' ']; ok2 {
				penX += sp.Advance * scale
			}
			prev = r
			continue
		}

		if prev >= 0 && f.Face != nil {
			penX += float32(f.Face.Kern(prev, r)) / 64.0 * scale
		}

		// Baseline-aligned quad center (Y-down system).
		left := penX + g.BearingX*scale
		top := baseY - g.BearingY*scale
		w := float32(g.W) * scale
		h := float32(g.H) * scale

		r2d.DrawTexturedQuadUV(
			left+w*0.5, top+h*0.5,
			w, h,
			f.Texture, color, 0,
			g.U0, g.V0, g.U1, g.V1,
		)

		penX += g.Advance * scale
		prev = r
	}
}
