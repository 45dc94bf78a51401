package main

import (
	"fmt"

	"github.com/brakewood/thicket/engine/colors"
	"github.com/brakewood/thicket/engine/core"
	"github.com/brakewood/thicket/engine/gfx/renderer2d"
	"github.com/brakewood/thicket/engine/profiler"
	"github.com/brakewood/thicket/engine/text"
	"github.com/brakewood/thicket/engine/ui"
)

// LayerDebug paints a stats readout in the corner. F1 toggles it.
type LayerDebug struct {
	r2d  *renderer2d.Renderer2D
	font *text.Font
	ux   *ui.UI

	visible bool
	stats   renderer2d.Statistics
}

func (l *LayerDebug) OnAttach(e *core.Engine) { l.visible = true }
func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	if !l.visible {
		return
	}
	// Read the UI scene's batch counts before our own scene resets them.
	l.stats = l.r2d.Stats()
	w, h := e.Window.FramebufferSize()
	ts := l.ux.Identity().Stats()

	lines := fmt.Sprintf(
		"draw calls %d\nquads %d\ntextures %d\nnodes %d\nprims %d\nids +%d ~%d\nheap %.1f MB",
		l.stats.DrawCalls,
		l.stats.QuadCount,
		l.stats.TextureCount,
		l.ux.Identity().Len(),
		l.ux.Buffer().Len(),
		ts.Created, ts.Replaced,
		float64(profiler.MemoryUsage())/(1<<20),
	)

	l.r2d.BeginScene(renderer2d.ScreenOrtho(float32(w), float32(h)))
	text.Draw(l.r2d, l.font, 8, float32(h)-120, lines, 14, colors.Yellow)
	l.r2d.EndScene()
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	if k, ok := ev.(core.EventKey); ok && k.Down && k.Key == core.KeyF1 {
		l.visible = !l.visible
		return true
	}
	return false
}
