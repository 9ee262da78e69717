package gekko

import (
	"fmt"
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-forward/gfx"
	"github.com/gekko3d/gekko-forward/gfx/gfxtest"
)

// testLoader hands out empty programs and textures from a recording device.
type testLoader struct {
	dev      *gfxtest.Device
	failPath string
	loaded   []string
}

func (l *testLoader) LoadProgram(vertexPath, fragmentPath string) (*gfx.Program, error) {
	if vertexPath == l.failPath || fragmentPath == l.failPath {
		return nil, errors.Errorf("link %s + %s failed", vertexPath, fragmentPath)
	}
	l.loaded = append(l.loaded, vertexPath, fragmentPath)
	return gfx.NewProgram(l.dev,
		gfx.ShaderSource{Stage: gfx.StageVertex, Name: vertexPath},
		gfx.ShaderSource{Stage: gfx.StageFragment, Name: fragmentPath},
	)
}

func (l *testLoader) LoadTexture(path string, mipmaps bool) (*gfx.Texture, error) {
	if path == l.failPath {
		return nil, errors.Errorf("%s: no such file", path)
	}
	l.loaded = append(l.loaded, path)
	return gfx.NewEmptyTexture(l.dev, gfx.FormatRGBA8, image.Pt(4, 4))
}

// testResolver serves meshes and materials registered by name.
type testResolver struct {
	meshes    map[string]*gfx.Mesh
	materials map[string]*gfx.Material
}

func (r *testResolver) Mesh(name string) (*gfx.Mesh, error) {
	if m, ok := r.meshes[name]; ok {
		return m, nil
	}
	return nil, errors.Wrap(ErrMissingResource, name)
}

func (r *testResolver) Material(name string) (*gfx.Material, error) {
	if m, ok := r.materials[name]; ok {
		return m, nil
	}
	return nil, errors.Wrap(ErrMissingResource, name)
}

// sceneFixture owns a device with a plane mesh and one material of each
// kind used by the tests.
type sceneFixture struct {
	dev         *gfxtest.Device
	plane       *gfx.Mesh
	opaque      *gfx.Material
	transparent *gfx.Material
	lit         *gfx.Material
	resolver    *testResolver
}

func newSceneFixture(t *testing.T) *sceneFixture {
	t.Helper()
	dev := gfxtest.NewDevice()
	plane, err := gfx.NewPlaneMesh(dev)
	require.NoError(t, err)

	program := func(name string) *gfx.Program {
		p, err := gfx.NewProgram(dev,
			gfx.ShaderSource{Stage: gfx.StageVertex, Name: name + ".vert"},
			gfx.ShaderSource{Stage: gfx.StageFragment, Name: name + ".frag"},
		)
		require.NoError(t, err)
		return p
	}
	opaque := gfx.NewTintedMaterial(program("opaque"))
	transparent := gfx.NewTintedMaterial(program("transparent"))
	transparent.Transparent = true
	lit := gfx.NewLitMaterial(program("lit"))

	return &sceneFixture{
		dev:         dev,
		plane:       plane,
		opaque:      opaque,
		transparent: transparent,
		lit:         lit,
		resolver: &testResolver{
			meshes: map[string]*gfx.Mesh{"plane": plane},
			materials: map[string]*gfx.Material{
				"opaque":      opaque,
				"transparent": transparent,
				"lit":         lit,
			},
		},
	}
}

func (f *sceneFixture) meshEntity(w *World, parent EntityId, name string, pos [3]float32, mat *gfx.Material) *Entity {
	e := w.NewEntity(parent)
	e.Name = name
	e.Transform.Position = pos
	e.AddComponent(&MeshRendererComponent{Mesh: f.plane, Material: mat})
	return e
}

func cameraEntity(w *World, eye, lookAt [3]float32) (*Entity, *CameraComponent) {
	e := w.NewEntity(0)
	e.Name = "camera"
	cam := NewCameraComponent()
	cam.Mode = CameraDetached
	cam.Position = eye
	cam.LookAt = lookAt
	e.AddComponent(cam)
	return e, cam
}

// captureLogger records warnings and errors.
type captureLogger struct {
	warnings []string
	errors   []string
	debug    []string
}

func (l *captureLogger) DebugEnabled() bool { return true }
func (l *captureLogger) SetDebug(bool)      {}
func (l *captureLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}
func (l *captureLogger) Infof(string, ...any) {}
func (l *captureLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *captureLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
