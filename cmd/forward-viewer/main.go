package main

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"

	gekko "github.com/gekko3d/gekko-forward"
	"github.com/gekko3d/gekko-forward/assets"
	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx/glbackend"
	"github.com/gekko3d/gekko-forward/platform"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "scenes/demo.yaml", "Scene file (.json, .yaml)")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	debug := flag.Bool("debug", false, "Enable debug logging")
	strict := flag.Bool("strict", false, "Fail on unknown or malformed components")
	flag.Parse()

	app := gekko.NewApp().UseModules(gekko.LoggingModule{Prefix: "forward-viewer", Debug: *debug})
	logger := app.Logger()

	root := filepath.Dir(*scenePath)
	fsys := os.DirFS(root)
	cfg, err := config.Load(fsys, filepath.Base(*scenePath))
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	cfg.Strict = cfg.Strict || *strict

	window, err := platform.NewWindow(*width, *height, "Gekko Forward")
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	defer window.Destroy()

	device, err := glbackend.New()
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	cache := assets.NewCache(device, fsys, gekko.Named(logger, "assets"))

	app.UseModules(
		gekko.TimeModule{},
		gekko.InputModule{Source: window},
		gekko.SceneModule{Config: cfg, Assets: cache},
		gekko.ForwardRendererModule{
			Device:   device,
			Loader:   cache,
			Viewport: window,
			Config:   cfg.Renderer,
		},
		gekko.MovementModule{},
		gekko.LifecycleModule{},
		gekko.FlyingCameraModule{},
	)
	app.UseSystem(
		gekko.System(func(input *gekko.Input, cmd *gekko.Commands) {
			if input.JustPressed[gekko.KeyEscape] {
				cmd.Exit()
			}
			window.SwapBuffers()
		}).
			InStage(gekko.PostRender),
	)

	app.Run(window.ShouldClose)
}
