package gekko

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-forward/assets"
	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx/gfxtest"
)

const demoScene = `{
  "assets": {
    "shaders": {
      "tinted": {"vertex": "shaders/tinted.vert", "fragment": "shaders/tinted.frag"},
      "lit": {"vertex": "shaders/lit.vert", "fragment": "shaders/lit.frag"}
    },
    "meshes": {
      "ground": {"kind": "plane"},
      "ball": {"kind": "sphere", "segments": [8, 6]}
    },
    "materials": {
      "grass": {"type": "tinted", "shader": "tinted", "tint": [0, 1, 0, 1]},
      "glass": {"type": "tinted", "shader": "tinted", "transparent": true},
      "shiny": {"type": "lit", "shader": "lit"}
    }
  },
  "renderer": {
    "sky": {"texture": "textures/sky.png"},
    "postprocess": {"fragment": "shaders/postprocess/vignette.frag"}
  },
  "world": [
    {"name": "camera", "components": [
      {"type": "Camera", "position": [0, 0, 5], "lookAt": [0, 0, 0]}
    ]},
    {"name": "sun", "components": [{"type": "Light", "lightType": "directional"}]},
    {"name": "ground", "position": [0, -1, 0], "rotation": [-90, 0, 0], "components": [
      {"type": "MeshRenderer", "mesh": "ground", "material": "grass"}
    ]},
    {"name": "window", "position": [0, 0, 2], "components": [
      {"type": "Mesh Renderer", "mesh": "ground", "material": "glass"}
    ]},
    {"name": "ball", "position": [0, 1, 0], "components": [
      {"type": "Ball"},
      {"type": "Movement", "forward": [1, 0, 0], "canRoll": true}
    ], "children": [
      {"name": "ball-mesh", "components": [
        {"type": "MeshRenderer", "mesh": "ball", "material": "shiny"}
      ]}
    ]}
  ]
}`

func skyPNG(t *testing.T) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{B: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func demoFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"scene.json":         {Data: []byte(demoScene)},
		"textures/sky.png":   {Data: skyPNG(t)},
		"broken.yaml":        {Data: []byte(brokenScene)},
		"lenient.yaml":       {Data: []byte("strict: false\n" + brokenWorld)},
		"renderer-only.yaml": {Data: []byte("renderer:\n  clearColor: [0.1, 0.2, 0.3, 1]\n")},
	}
}

const brokenWorld = `assets:
  meshes:
    box: {kind: cube}
world:
  - name: thing
    components:
      - type: Teleporter
`

const brokenScene = "strict: true\n" + brokenWorld

func TestLoadScene(t *testing.T) {
	fsys := demoFS(t)
	cfg, err := config.Load(fsys, "scene.json")
	require.NoError(t, err)

	dev := gfxtest.NewDevice()
	cache := assets.NewCache(dev, fsys, nil)
	scene, err := LoadScene(cfg, cache, nil)
	require.NoError(t, err)

	assert.Equal(t, 6, scene.World.Len())
	assert.Len(t, scene.World.Roots(), 5)

	var window *Entity
	for _, e := range scene.World.Entities() {
		if e.Name == "window" {
			window = e
		}
	}
	require.NotNil(t, window)
	mr, ok := ComponentOf[*MeshRendererComponent](window)
	require.True(t, ok)
	assert.True(t, mr.Material.Transparent)
	assert.Equal(t, "glass", mr.MaterialName)

	scene.Unload()
	assert.Equal(t, 0, scene.World.Len())
	assert.Equal(t, 0, dev.Live())
	assert.Empty(t, dev.DoubleReleases)
}

func TestLoadSceneStrictFailureUnloads(t *testing.T) {
	fsys := demoFS(t)
	cfg, err := config.Load(fsys, "broken.yaml")
	require.NoError(t, err)
	require.True(t, cfg.Strict)

	dev := gfxtest.NewDevice()
	_, err = LoadScene(cfg, assets.NewCache(dev, fsys, nil), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownComponent)
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "thing.components[0]", cerr.Path)
	assert.Equal(t, 0, dev.Live())

	lenient, err := config.Load(fsys, "lenient.yaml")
	require.NoError(t, err)
	logger := &captureLogger{}
	scene, err := LoadScene(lenient, assets.NewCache(dev, fsys, nil), logger)
	require.NoError(t, err)
	assert.Equal(t, 1, scene.World.Len())
	assert.Len(t, logger.warnings, 1)
	scene.Unload()
}

func TestLoadSceneMissingAsset(t *testing.T) {
	cfg := &config.SceneConfig{
		World: []config.Fields{{
			"name": "orphan",
			"components": []any{
				map[string]any{"type": "MeshRenderer", "mesh": "nope", "material": "nope"},
			},
		}},
		Strict: true,
	}
	dev := gfxtest.NewDevice()
	_, err := LoadScene(cfg, assets.NewCache(dev, nil, nil), nil)
	assert.ErrorIs(t, err, assets.ErrNotFound)
	assert.Contains(t, err.Error(), `mesh "nope"`)
}

// Loads the demo scene through the module stack and renders a frame with
// every pass active.
func TestSceneModuleRendersDemo(t *testing.T) {
	fsys := demoFS(t)
	cfg, err := config.Load(fsys, "scene.json")
	require.NoError(t, err)

	dev := gfxtest.NewDevice()
	cache := assets.NewCache(dev, fsys, nil)
	app := NewAppBuilder().
		UseModule(
			SceneModule{Config: cfg, Assets: cache},
			ForwardRendererModule{
				Device:   dev,
				Loader:   cache,
				Viewport: &fakeViewport{size: image.Pt(320, 200)},
				Config:   cfg.Renderer,
			},
		).
		Build()

	r := Resource[ForwardRenderer](app)
	require.NotNil(t, r)
	app.Step()

	stats := r.LastFrame()
	assert.False(t, stats.Skipped)
	assert.Equal(t, 1, stats.Special)
	assert.Equal(t, 1, stats.Opaque)
	assert.Equal(t, 1, stats.Transparent)
	assert.Equal(t, 1, stats.Lights)
	assert.Equal(t, 5, stats.Draws, "special, opaque, sky, transparent and composite")

	special := dev.Draws[0]
	axis, ok := special.Uniforms["axis"].(mgl32.Vec3)
	require.True(t, ok)
	assertVec3(t, mgl32.Vec3{1, 0, 0}, axis)

	app.Shutdown()
	assert.Equal(t, 0, dev.Live())
	assert.Empty(t, dev.DoubleReleases)
	assert.Equal(t, 0, Resource[World](app).Len())
}

func TestSceneModulePanicsOnBadScene(t *testing.T) {
	fsys := demoFS(t)
	cfg, err := config.Load(fsys, "broken.yaml")
	require.NoError(t, err)
	assert.Panics(t, func() {
		NewApp().UseModules(SceneModule{Config: cfg, Assets: assets.NewCache(gfxtest.NewDevice(), fsys, nil)})
	})
}

func TestRendererConfigFromYAML(t *testing.T) {
	cfg, err := config.Load(demoFS(t), "renderer-only.yaml")
	require.NoError(t, err)
	dev := gfxtest.NewDevice()
	r := newTestRenderer(t, dev, cfg.Renderer)
	assert.Equal(t, mgl32.Vec4{0.1, 0.2, 0.3, 1}, r.clearColor)
	assert.Nil(t, r.sky)
	assert.Nil(t, r.post)
}

func TestBundledDemoSceneLoads(t *testing.T) {
	fsys := os.DirFS("scenes")
	cfg, err := config.Load(fsys, "demo.yaml")
	require.NoError(t, err)

	dev := gfxtest.NewDevice()
	cache := assets.NewCache(dev, fsys, nil)
	cfg.Strict = true
	scene, err := LoadScene(cfg, cache, nil)
	require.NoError(t, err)
	defer scene.Unload()

	r := NewForwardRenderer(dev, cache, nil)
	require.NoError(t, r.Initialize(image.Pt(1280, 720), cfg.Renderer))
	defer r.Destroy()
	r.Render(scene.World)

	stats := r.LastFrame()
	assert.Equal(t, 1, stats.Special)
	assert.Equal(t, 2, stats.Opaque)
	assert.Equal(t, 1, stats.Transparent)
	assert.Equal(t, 3, stats.Lights)
}
