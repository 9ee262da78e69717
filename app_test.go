package gekko

import (
	"fmt"
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gekko-forward/config"
	"github.com/gekko3d/gekko-forward/gfx/gfxtest"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	// Expect panic when trying to add the same type of resource again
	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	assert.Same(t, resource2, Resource[MockResource2](app))
}

func TestApp_ResourceMissing(t *testing.T) {
	app := NewApp()
	assert.Nil(t, Resource[MockResource1](app))
	assert.Nil(t, app.Commands().World())
}

func TestApp_SystemsRunInStageOrder(t *testing.T) {
	app := NewApp()
	var trace []string
	app.UseSystem(System(func() { trace = append(trace, "render") }).InStage(Render))
	app.UseSystem(System(func() { trace = append(trace, "prelude") }).InStage(Prelude))
	app.UseSystem(System(func() { trace = append(trace, "update") }))

	app.RunFrames(2)
	assert.Equal(t, []string{"prelude", "update", "render", "prelude", "update", "render"}, trace)
	assert.Equal(t, uint64(2), app.Frame())
}

func TestApp_UseStage(t *testing.T) {
	app := NewApp()
	physics := Stage{Name: "Physics"}
	app.UseStage(physics, AfterStage(Update))

	var trace []string
	app.UseSystem(System(func() { trace = append(trace, "physics") }).InStage(physics))
	app.UseSystem(System(func() { trace = append(trace, "post") }).InStage(PostUpdate))
	app.UseSystem(System(func() { trace = append(trace, "update") }).InStage(Update))
	app.Step()
	assert.Equal(t, []string{"update", "physics", "post"}, trace)

	assert.Panics(t, func() { app.UseStage(Stage{Name: "X"}, BeforeStage(Stage{Name: "Missing"})) })
	assert.Panics(t, func() { app.UseSystem(System(func() {}).InStage(Stage{Name: "Missing"})) })
}

func TestApp_SystemsRunEveryFrameInRegistrationOrder(t *testing.T) {
	app := NewApp()
	var trace []string
	app.UseSystem(System(func() { trace = append(trace, "a") }))
	app.UseSystem(System(func() { trace = append(trace, "b") }).InStage(Update))

	app.RunFrames(3)
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, trace)
}

func TestApp_SystemArguments(t *testing.T) {
	app := NewApp()
	app.addResources(NewMockResource1("one"))

	var got *MockResource1
	var gotCmd *Commands
	app.UseSystem(System(func(r *MockResource1, cmd *Commands) {
		got, gotCmd = r, cmd
	}))
	app.Step()
	assert.Equal(t, "one", got.name)
	require.NotNil(t, gotCmd)

	bad := NewApp()
	bad.UseSystem(System(func(r *MockResource2) {}))
	assert.Panics(t, bad.Step)

	byValue := NewApp()
	byValue.UseSystem(System(func(r MockResource1) {}))
	assert.Panics(t, byValue.Step)
}

func TestApp_RunStopsOnExit(t *testing.T) {
	app := NewApp()
	var order []int
	app.OnShutdown(func() { order = append(order, 1) })
	app.OnShutdown(func() { order = append(order, 2) })

	frames := 0
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.Exit()
		}
	}))
	app.Run(nil)

	assert.Equal(t, 3, frames)
	assert.Equal(t, []int{2, 1}, order, "hooks run in reverse")
	app.Shutdown()
	assert.Equal(t, []int{2, 1}, order, "hooks run once")

	app.RunFrames(5)
	assert.Equal(t, 3, frames, "an exiting app does not step")
}

func TestApp_RunStopsOnCondition(t *testing.T) {
	app := NewApp()
	shutdown := false
	app.OnShutdown(func() { shutdown = true })
	app.Run(func() bool { return app.Frame() == 4 })
	assert.Equal(t, uint64(4), app.Frame())
	assert.True(t, shutdown)
}

func TestApp_FlushCommandsAfterEachStage(t *testing.T) {
	w := NewWorld()
	doomed := w.NewEntity(0)
	w.NewEntity(doomed.Id())

	app := NewApp()
	app.addResources(w)
	var seen int
	app.UseSystem(System(func(cmd *Commands) { cmd.RemoveEntity(doomed.Id()) }).InStage(PreUpdate))
	app.UseSystem(System(func(world *World) { seen = world.Len() }).InStage(Update))
	app.Step()
	assert.Equal(t, 0, seen)
}

func TestLifecycleModule(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity(0)
	e.AddComponent(&LifetimeComponent{TimeLeft: 0.25})

	app := NewApp().UseModules(TimeModule{Fixed: 100 * time.Millisecond}, LifecycleModule{})
	app.addResources(w)

	app.RunFrames(2)
	assert.Equal(t, 1, w.Len())
	app.RunFrames(1)
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 300*time.Millisecond, Resource[Time](app).Elapsed)
}

func TestMovementModule(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity(0)
	m := NewMovementComponent()
	m.Type = MovementFixedDirection
	m.Forward = mgl32.Vec3{1, 0, 0}
	m.ConstantMovement = true
	m.SetSpeed(2)
	e.AddComponent(m)

	camEntity := w.NewEntity(e.Id())
	cam := NewCameraComponent()
	cam.Mode = CameraDetached
	cam.Follow = FollowSettings{Enabled: true, Distance: 3, Height: 1}
	camEntity.AddComponent(cam)

	app := NewApp().UseModules(TimeModule{Fixed: 500 * time.Millisecond}, MovementModule{})
	app.addResources(w)
	app.Step()

	assertVec3(t, mgl32.Vec3{1, 0, 0}, e.Transform.Position)
	assertVec3(t, mgl32.Vec3{1, 1, 3}, cam.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, cam.LookAt)
}

type fakeViewport struct {
	size    image.Point
	resized bool
}

func (v *fakeViewport) FramebufferSize() image.Point { return v.size }
func (v *fakeViewport) Resized() bool {
	r := v.resized
	v.resized = false
	return r
}

func TestForwardRendererModule(t *testing.T) {
	f := newSceneFixture(t)
	w := NewWorld()
	cameraEntity(w, [3]float32{0, 0, 5}, [3]float32{0, 0, 0})
	f.meshEntity(w, 0, "crate", [3]float32{}, f.opaque)

	viewport := &fakeViewport{size: image.Pt(640, 480)}
	app := NewApp()
	app.addResources(w)
	app.UseModules(ForwardRendererModule{
		Device:   f.dev,
		Loader:   &testLoader{dev: f.dev},
		Viewport: viewport,
		Config:   fullRendererConfig(),
	})
	r := Resource[ForwardRenderer](app)
	require.NotNil(t, r)

	app.Step()
	assert.Equal(t, 1, r.LastFrame().Opaque)
	assert.Equal(t, 3, r.LastFrame().Draws)

	viewport.size = image.Pt(320, 240)
	viewport.resized = true
	app.Step()
	assert.Equal(t, image.Pt(320, 240), r.Viewport())
	assert.Equal(t, [4]int32{0, 0, 320, 240}, f.dev.ViewportRec)

	live := f.dev.Live()
	app.Shutdown()
	assert.Less(t, f.dev.Live(), live)
	assert.Empty(t, f.dev.DoubleReleases)

	assert.Panics(t, func() {
		ensureSingleRenderer(app, "deferred")
	})
	assert.NotPanics(t, func() {
		ensureSingleRenderer(app, RendererForward)
	})
}

func TestForwardRendererModuleInitFailurePanics(t *testing.T) {
	dev := gfxtest.NewDevice()
	app := NewApp()
	assert.Panics(t, func() {
		app.UseModules(ForwardRendererModule{
			Device:   dev,
			Loader:   &testLoader{dev: dev},
			Viewport: &fakeViewport{size: image.Pt(1, 1)},
			Config:   config.RendererConfig{Sky: &config.SkyConfig{}},
		})
	})
	assert.Equal(t, 0, dev.Live())
}

func TestInputModulePolls(t *testing.T) {
	src := inputFunc(func(in *Input) {
		in.SetKey(KeyEscape, true)
		in.CharBuffer = append(in.CharBuffer, 'x')
	})
	app := NewApp().UseModules(InputModule{Source: src})
	in := Resource[Input](app)
	require.NotNil(t, in)
	in.CharBuffer = []rune("stale")

	app.Step()
	assert.True(t, in.Pressed[KeyEscape])
	assert.True(t, in.JustPressed[KeyEscape])
	assert.Equal(t, []rune{'x'}, in.CharBuffer)

	app.Step()
	assert.False(t, in.JustPressed[KeyEscape])
}

type inputFunc func(*Input)

func (f inputFunc) Poll(in *Input) { f(in) }

func TestInputCursorDeltas(t *testing.T) {
	in := &Input{}
	in.SetCursor(10, 10)
	assert.Zero(t, in.MouseDeltaX)

	in.MouseCaptured = true
	in.SetCursor(15, 7)
	assert.Equal(t, 5.0, in.MouseDeltaX)
	assert.Equal(t, -3.0, in.MouseDeltaY)
}

func TestAppLoggerFallsBackToNop(t *testing.T) {
	app := NewApp()
	assert.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	logger := &captureLogger{}
	app.addResources(logger)
	app.Commands().Logger().Warnf("hello %d", 1)
	assert.Equal(t, []string{"hello 1"}, logger.warnings)
}
