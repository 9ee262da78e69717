package gekko

import (
	"image"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx"
)

const RendererForward = "forward"

// ViewportSource reports the drawable size and whether it changed since the
// last call.
type ViewportSource interface {
	FramebufferSize() image.Point
	Resized() bool
}

// ForwardRendererModule renders the World resource once per frame in the
// Render stage.
type ForwardRendererModule struct {
	Device   gfx.Device
	Loader   ResourceLoader
	Viewport ViewportSource
	Config   config.RendererConfig
}

func (mod ForwardRendererModule) Install(app *App, cmd *Commands) {
	ensureSingleRenderer(app, RendererForward)

	renderer := NewForwardRenderer(mod.Device, mod.Loader, Named(app.Logger(), "renderer"))
	if err := renderer.Initialize(mod.Viewport.FramebufferSize(), mod.Config); err != nil {
		app.Logger().Errorf("%v", err)
		panic(err)
	}
	cmd.AddResources(renderer)
	app.OnShutdown(renderer.Destroy)

	viewport := mod.Viewport
	app.UseSystem(
		System(func(r *ForwardRenderer, world *World) {
			if viewport.Resized() {
				if err := r.Resize(viewport.FramebufferSize()); err != nil {
					app.Logger().Errorf("%v", err)
				}
			}
			r.Render(world)
		}).
			InStage(Render),
	)
}
