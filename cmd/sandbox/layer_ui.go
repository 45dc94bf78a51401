package main

import (
	"fmt"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/core"
	"github.com/brakewood/thicket/engine/gfx/renderer2d"
	"github.com/brakewood/thicket/engine/gfx/uisink"
	"github.com/brakewood/thicket/engine/profiler"
	"github.com/brakewood/thicket/engine/ui"
)

// LayerUI drives the demo widget tree: a header with buttons, a scroll
// list, a progress ring, and a nine-slice framed overlay.
type LayerUI struct {
	ux   *ui.UI
	sink *uisink.Sink
	cfg  *core.Config

	frame     ui.TextureID
	clicks    int
	rows      int
	tick      int
	showPanel bool
}

func NewLayerUI(ux *ui.UI, sink *uisink.Sink, cfg *core.Config) *LayerUI {
	return &LayerUI{ux: ux, sink: sink, cfg: cfg, rows: 30, showPanel: true}
}

func (l *LayerUI) OnAttach(e *core.Engine) {
	l.frame = l.sink.Register(makeFrameTexture(e.Renderer))
}

func (l *LayerUI) OnDetach(e *core.Engine) {}

func (l *LayerUI) OnUpdate(e *core.Engine, dt float64) {
	defer profiler.Start("LayerUI.declare")()

	l.tick++
	w, h := e.Window.FramebufferSize()
	root := l.ux.BeginFrame(float32(w), float32(h), e.Input.UIState())
	ux := l.ux

	page := ux.Panel(root, ui.PanelProps{
		Width: ui.Percent(1), Height: ui.Percent(1),
		Dir: ui.Column, Pad: 16, Bg: colors.DarkGray,
	})

	// Header row.
	header := ux.Panel(page, ui.PanelProps{
		Width: ui.Percent(1), Dir: ui.Row, Pad: 8,
		Bg: colors.Slate, Rounding: 6,
	})
	header.Justify(ui.AlignSpaceBetween).AlignCross(ui.AlignCenter)
	ux.Text(header, ui.LabelProps{Text: "thicket sandbox", Size: 24})
	if ux.Button(header, ui.ButtonProps{Text: "Add row", Rounding: 4}) {
		l.rows++
	}
	if ux.Button(header, ui.ButtonProps{Text: "Remove row", Rounding: 4, Disabled: l.rows == 0}) {
		l.rows--
	}
	if ux.Button(header, ui.ButtonProps{Text: fmt.Sprintf("Clicked %d", l.clicks), Rounding: 4}) {
		l.clicks++
	}
	if ux.Button(header, ui.ButtonProps{Text: "Toggle panel", Rounding: 4}) {
		l.showPanel = !l.showPanel
	}

	// Body: scroll list on the left, side column on the right.
	body := ux.Panel(page, ui.PanelProps{
		Width: ui.Percent(1), Height: ui.Expand(), Dir: ui.Row,
	})
	body.MarginInsets(ui.Insets{T: 12})

	list := ux.ScrollRegion(body, ui.ScrollProps{
		Width: ui.Expand(), Height: ui.Expand(), Dir: ui.Column,
		Pad: 8, Bg: colors.Slate, WheelScale: l.cfg.UI.WheelScale,
	})
	for i := 0; i < l.rows; i++ {
		row := ux.Node(list, "sandbox:row", i).
			Sized(ui.Percent(1), ui.Pixels(28)).
			Flow(ui.Row).AlignCross(ui.AlignCenter).
			PadInsets(ui.Symmetric(8, 0)).
			MarginInsets(ui.Insets{B: 4}).
			Rounded(4)
		if i%2 == 0 {
			row.Bg(colors.DarkGray)
		}
		ux.Node(row, "sandbox:rowlabel", i).
			Label(fmt.Sprintf("row %02d", i), 16, colors.White)
	}

	side := ux.Panel(body, ui.PanelProps{
		Width: ui.Pixels(220), Height: ui.Expand(), Dir: ui.Column,
		Pad: 12, Bg: colors.Slate, Rounding: 6,
	})
	side.MarginInsets(ui.Insets{L: 12}).AlignCross(ui.AlignCenter)

	frac := float32(l.tick%300) / 300
	ux.ProgressRing(side, ui.RingProps{
		Fraction: frac, Diameter: 96, Thickness: 10,
		Color: colors.Green,
	})
	ux.Text(side, ui.LabelProps{Text: fmt.Sprintf("%3.0f%%", frac*100), Size: 18})

	// Nine-slice framed overlay on a higher layer, centered by hand.
	if l.showPanel {
		overlay := ux.Node(root, "sandbox:overlay", 0).
			AbsoluteAt(float32(w)/2-140, float32(h)/2-70).
			Sized(ui.Pixels(280), ui.Pixels(140)).
			Flow(ui.Column).Pad(24).
			Justify(ui.AlignCenter).AlignCross(ui.AlignCenter).
			OnLayer(5).
			NineSlice(l.frame, ui.Uniform(12), colors.White)
		ux.Text(overlay, ui.LabelProps{Text: "nine-slice frame", Size: 16, Color: colors.Yellow})
	}

	l.ux.Layout()
}

func (l *LayerUI) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("LayerUI.render")()

	w, h := e.Window.FramebufferSize()
	r2d := l.sink.Renderer()
	r2d.BeginScene(renderer2d.ScreenOrtho(float32(w), float32(h)))
	ui.Render(l.ux.Emit(), l.sink)
	r2d.EndScene()
}

func (l *LayerUI) OnEvent(e *core.Engine, ev core.Event) bool { return false }

// makeFrameTexture builds a small border texture for the nine-slice
// demo: a bright edge ring around a translucent center.
func makeFrameTexture(r core.Renderer) core.Texture {
	const n = 16
	pix := make([]byte, n*n*4)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := (y*n + x) * 4
			edge := x < 3 || y < 3 || x >= n-3 || y >= n-3
			if edge {
				pix[i], pix[i+1], pix[i+2], pix[i+3] = 230, 200, 90, 255
			} else {
				pix[i], pix[i+1], pix[i+2], pix[i+3] = 20, 24, 28, 230
			}
		}
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: n, Height: n,
		Format: core.TextureRGBA8, Pixels: pix,
		MinFilter: "nearest", MagFilter: "nearest",
		WrapU: "clamp", WrapV: "clamp",
	})
	if err != nil {
		panic(err)
	}
	return tex
}
