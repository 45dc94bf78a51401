package main

import (
	"log"

	"github.com/brakewood/thicket/engine/core"
	glbackend "github.com/brakewood/thicket/engine/gfx/gl"
	"github.com/brakewood/thicket/engine/gfx/renderer2d"
	"github.com/brakewood/thicket/engine/gfx/uisink"
	"github.com/brakewood/thicket/engine/platform"
	"github.com/brakewood/thicket/engine/profiler"
	"github.com/brakewood/thicket/engine/text"
	"github.com/brakewood/thicket/engine/ui"
)

type App struct {
	cfg  core.Config
	r2d  *renderer2d.Renderer2D
	font *text.Font
	sink *uisink.Sink
	ux   *ui.UI
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 14)

	var err error
	a.r2d, err = renderer2d.New(e.Renderer, a.cfg.UI.MaxQuads)
	if err != nil {
		panic(err)
	}

	fontPath := a.cfg.FontPath
	if fontPath == "" {
		fontPath = "assets/fonts/RobotoMono.ttf"
	}
	a.font, err = text.LoadTTF(e.Renderer, fontPath, 32)
	if err != nil {
		panic(err)
	}

	a.sink = uisink.New(a.r2d, a.font)
	a.ux = ui.New(ui.Options{
		ArenaCapacity: a.cfg.UI.ArenaKB * 1024,
		Measurer:      a.font,
	})

	e.PushLayer(NewLayerUI(a.ux, a.sink, &a.cfg))
	e.PushLayer(&LayerDebug{r2d: a.r2d, font: a.font, ux: a.ux})
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {}

func (a *App) OnShutdown(e *core.Engine) {
	if a.font != nil {
		a.font.Close()
	}
}

func main() {
	cfg, err := core.LoadConfig("engine.toml")
	if err != nil {
		log.Fatal(err)
	}

	app := &App{cfg: cfg}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
}
