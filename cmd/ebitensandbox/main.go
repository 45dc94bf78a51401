// Command ebitensandbox runs the widget toolkit on the ebiten backend:
// the same tree, layout, and command buffer as the GL sandbox, with no
// font or shader assets required.
package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/gfx/ebitensink"
	"github.com/brakewood/thicket/engine/ui"
)

type Game struct {
	ux   *ui.UI
	sink *ebitensink.Sink

	w, h     int
	prevDown bool
	clicks   int
	rows     int
	tick     int
}

func NewGame() *Game {
	return &Game{
		ux:   ui.New(ui.Options{Measurer: ebitensink.Measurer{}}),
		sink: ebitensink.New(),
		w:    960, h: 600,
		rows: 40,
	}
}

func (g *Game) Update() error {
	g.tick++

	mx, my := ebiten.CursorPosition()
	down := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	wx, wy := ebiten.Wheel()
	in := ui.Input{
		MouseX:        float32(mx),
		MouseY:        float32(my),
		MouseDown:     down,
		MousePressed:  down && !g.prevDown,
		MouseReleased: !down && g.prevDown,
		WheelX:        float32(wx),
		WheelY:        float32(wy),
	}
	g.prevDown = down

	root := g.ux.BeginFrame(float32(g.w), float32(g.h), in)
	g.declare(root)
	g.ux.Layout()
	return nil
}

func (g *Game) declare(root *ui.Node) {
	ux := g.ux

	page := ux.Panel(root, ui.PanelProps{
		Width: ui.Percent(1), Height: ui.Percent(1),
		Dir: ui.Column, Pad: 12, Bg: colors.DarkGray,
	})

	header := ux.Panel(page, ui.PanelProps{
		Width: ui.Percent(1), Dir: ui.Row, Pad: 6, Bg: colors.Slate, Rounding: 4,
	})
	header.Justify(ui.AlignSpaceBetween).AlignCross(ui.AlignCenter)
	ux.Text(header, ui.LabelProps{Text: "thicket / ebiten"})
	if ux.Button(header, ui.ButtonProps{Text: fmt.Sprintf("clicks: %d", g.clicks)}) {
		g.clicks++
	}
	if ux.Button(header, ui.ButtonProps{Text: "more rows"}) {
		g.rows += 5
	}

	body := ux.Panel(page, ui.PanelProps{
		Width: ui.Percent(1), Height: ui.Expand(), Dir: ui.Row,
	})
	body.MarginInsets(ui.Insets{T: 8})

	list := ux.ScrollRegion(body, ui.ScrollProps{
		Width: ui.Expand(), Height: ui.Expand(), Dir: ui.Column,
		Pad: 6, Bg: colors.Slate,
	})
	for i := 0; i < g.rows; i++ {
		row := ux.Node(list, "ebiten:row", i).
			Sized(ui.Percent(1), ui.Pixels(22)).
			Flow(ui.Row).AlignCross(ui.AlignCenter).
			PadInsets(ui.Symmetric(6, 0)).
			MarginInsets(ui.Insets{B: 2})
		if i%2 == 0 {
			row.Bg(colors.DarkGray)
		}
		ux.Node(row, "ebiten:rowlabel", i).
			Label(fmt.Sprintf("item %02d", i), 16, colors.White)
	}

	side := ux.Panel(body, ui.PanelProps{
		Width: ui.Pixels(180), Height: ui.Expand(), Dir: ui.Column,
		Pad: 10, Bg: colors.Slate, Rounding: 4,
	})
	side.MarginInsets(ui.Insets{L: 8}).AlignCross(ui.AlignCenter)
	ux.ProgressRing(side, ui.RingProps{
		Fraction: float32(g.tick%240) / 240,
		Diameter: 72, Thickness: 8, Color: colors.Green,
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sink.SetTarget(screen)
	ui.Render(g.ux.Emit(), g.sink)
}

func (g *Game) Layout(outsideW, outsideH int) (int, int) {
	return g.w, g.h
}

func main() {
	g := NewGame()
	ebiten.SetWindowSize(g.w, g.h)
	ebiten.SetWindowTitle("thicket ebiten sandbox")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
