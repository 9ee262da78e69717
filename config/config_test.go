package config

import (
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsDefaults(t *testing.T) {
	f := Fields{
		"near":     0.5,
		"count":    3,
		"enabled":  true,
		"name":     "cam",
		"position": []any{1.0, 2, 3.5},
		"partial":  []any{7.0},
		"bogus":    "not a number",
	}

	assert.Equal(t, float32(0.5), f.Float("near", 1))
	assert.Equal(t, float32(1), f.Float("far", 1))
	assert.Equal(t, float32(9), f.Float("bogus", 9))
	assert.Equal(t, 3, f.Int("count", 0))
	assert.True(t, f.Bool("enabled", false))
	assert.Equal(t, "cam", f.String("name", ""))
	assert.Equal(t, mgl32.Vec3{1, 2, 3.5}, f.Vec3("position", mgl32.Vec3{}))
	assert.Equal(t, mgl32.Vec3{7, 1, 1}, f.Vec3("partial", mgl32.Vec3{1, 1, 1}))
	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, f.Vec4("missing", mgl32.Vec4{0, 0, 0, 1}))
	assert.True(t, f.Has("bogus"))
	assert.False(t, f.Has("missing"))
}

func TestFieldsNested(t *testing.T) {
	f := Fields{
		"follow":     map[string]any{"distance": 4.0},
		"components": []any{map[string]any{"type": "Camera"}, "junk", Fields{"type": "Light"}},
	}
	assert.Equal(t, float32(4), f.Map("follow").Float("distance", 0))
	assert.Nil(t, f.Map("absent"))

	list := f.List("components")
	require.Len(t, list, 2)
	assert.Equal(t, "Camera", list[0].String("type", ""))
	assert.Equal(t, "Light", list[1].String("type", ""))
}

const jsonScene = `{
  "strict": true,
  "renderer": {"sky": {"texture": "textures/sky.png"}, "postprocess": {"fragment": "shaders/vignette.frag"}},
  "assets": {"materials": {"red": {"type": "tinted", "shader": "tinted", "tint": [1, 0, 0, 1]}}},
  "world": [{"name": "camera", "position": [0, 0, 5], "components": [{"type": "Camera"}]}]
}`

const yamlScene = `
strict: false
assets:
  meshes:
    ball:
      kind: sphere
      segments: [32, 16]
world:
  - name: root
    position: [1, 2, 3]
    children:
      - name: child
        scale: [2, 2, 2]
`

func TestLoadJSONAndYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"scene.json": {Data: []byte(jsonScene)},
		"scene.yaml": {Data: []byte(yamlScene)},
		"scene.toml": {Data: []byte("x = 1")},
	}

	js, err := Load(fsys, "scene.json")
	require.NoError(t, err)
	assert.True(t, js.Strict)
	require.NotNil(t, js.Renderer.Sky)
	assert.Equal(t, "textures/sky.png", js.Renderer.Sky.Texture)
	assert.Equal(t, []float32{1, 0, 0, 1}, js.Assets.Materials["red"].Tint)
	require.Len(t, js.World, 1)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, js.World[0].Vec3("position", mgl32.Vec3{}))

	ys, err := Load(fsys, "scene.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{32, 16}, ys.Assets.Meshes["ball"].Segments)
	require.Len(t, ys.World, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ys.World[0].Vec3("position", mgl32.Vec3{}))
	children := ys.World[0].List("children")
	require.Len(t, children, 1)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, children[0].Vec3("scale", mgl32.Vec3{1, 1, 1}))

	_, err = Load(fsys, "scene.toml")
	assert.Error(t, err)
	_, err = Load(fsys, "missing.json")
	assert.Error(t, err)
}

func TestRendererDefaults(t *testing.T) {
	rc := RendererConfig{
		Sky:         &SkyConfig{Texture: "sky.png"},
		Postprocess: &PostprocessConfig{Fragment: "pp.frag"},
	}.WithDefaults()

	assert.Equal(t, DefaultTexturedVertex, rc.Sky.Vertex)
	assert.Equal(t, DefaultTexturedFragment, rc.Sky.Fragment)
	assert.Equal(t, DefaultSkySegments, rc.Sky.Segments)
	assert.Equal(t, DefaultFullscreenVertex, rc.Postprocess.Vertex)
	assert.Nil(t, RendererConfig{}.WithDefaults().Sky)
}
