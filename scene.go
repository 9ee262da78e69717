package gekko

import (
	"github.com/pkg/errors"

	"github.com/gekko3d/gekko-forward/assets"
	"github.com/gekko3d/gekko-forward/config"
)

// Scene is a loaded world together with the asset cache its mesh renderers
// point into. Unload releases both.
type Scene struct {
	World    *World
	Assets   *assets.Cache
	Config   *config.SceneConfig
	Registry *ComponentRegistry
}

// LoadScene loads cfg's assets into cache and then spawns its world. On
// error the cache is unloaded and nothing is spawned.
func LoadScene(cfg *config.SceneConfig, cache *assets.Cache, logger Logger) (*Scene, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	if err := cache.Load(cfg.Assets); err != nil {
		return nil, errors.Wrap(err, "scene: assets")
	}

	reg := NewComponentRegistry(cache)
	reg.Strict = cfg.Strict
	reg.Logger = logger

	world := NewWorld()
	roots, err := world.Deserialize(cfg.World, 0, reg)
	if err != nil {
		cache.Unload()
		return nil, errors.Wrap(err, "scene: world")
	}
	logger.Infof("scene loaded: %d roots, %d entities", len(roots), world.Len())
	return &Scene{World: world, Assets: cache, Config: cfg, Registry: reg}, nil
}

// Unload destroys every entity before releasing the assets they reference.
func (s *Scene) Unload() {
	if s.World != nil {
		s.World.Clear()
	}
	if s.Assets != nil {
		s.Assets.Unload()
	}
}
