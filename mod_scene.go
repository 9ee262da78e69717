package gekko

import (
	"github.com/gekko3d/gekko-forward/assets"
	"github.com/gekko3d/gekko-forward/config"
)

// SceneModule loads a scene and installs its World and Scene as resources.
// The scene is unloaded on shutdown.
type SceneModule struct {
	Config *config.SceneConfig
	Assets *assets.Cache
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	scene, err := LoadScene(mod.Config, mod.Assets, Named(app.Logger(), "scene"))
	if err != nil {
		app.Logger().Errorf("%v", err)
		panic(err)
	}
	cmd.AddResources(scene.World, scene)
	app.OnShutdown(scene.Unload)
}
