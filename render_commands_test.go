package gekko

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSingleOpaque(t *testing.T) {
	f := newSceneFixture(t)
	w := NewWorld()
	cameraEntity(w, [3]float32{0, 0, 5}, [3]float32{0, 0, 0})
	f.meshEntity(w, 0, "crate", [3]float32{1, 2, 3}, f.opaque)

	fc := CollectCommands(w, NewNopLogger())
	require.NotNil(t, fc.Camera)
	require.Len(t, fc.Opaque, 1)
	assert.Empty(t, fc.Transparent)
	assert.Empty(t, fc.Special)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, fc.Opaque[0].Center)
	assert.Same(t, f.plane, fc.Opaque[0].Mesh)
	assert.Same(t, f.opaque, fc.Opaque[0].Material)
}

func TestCollectFirstCameraWins(t *testing.T) {
	w := NewWorld()
	_, first := cameraEntity(w, [3]float32{0, 0, 5}, [3]float32{0, 0, 0})
	cameraEntity(w, [3]float32{0, 0, -5}, [3]float32{0, 0, 0})

	fc := CollectCommands(w, NewNopLogger())
	assert.Same(t, first, fc.Camera)
}

func TestCollectClassifiesBuckets(t *testing.T) {
	f := newSceneFixture(t)
	w := NewWorld()
	f.meshEntity(w, 0, "glass", [3]float32{0, 0, 1}, f.transparent)
	f.meshEntity(w, 0, "wall", [3]float32{0, 0, 2}, f.opaque)

	ball := w.NewEntity(0)
	ball.AddComponent(&BallComponent{})
	mv := NewMovementComponent()
	mv.Forward = mgl32.Vec3{1, 0, 0}
	mv.CurrentAngle = mgl32.Vec3{90, 0, 0}
	ball.AddComponent(mv)
	f.meshEntity(w, ball.Id(), "ball-mesh", [3]float32{}, f.lit)

	lamp := w.NewEntity(0)
	lamp.AddComponent(NewLightComponent())

	fc := CollectCommands(w, NewNopLogger())
	assert.Nil(t, fc.Camera)
	assert.Len(t, fc.Opaque, 1)
	assert.Len(t, fc.Transparent, 1)
	require.Len(t, fc.Special, 1)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, fc.Special[0].Axis)
	assert.InDelta(t, mgl32.DegToRad(90), fc.Special[0].Angle, 1e-6)
	assert.Len(t, fc.Lights, 1)
}

func TestCollectBallWithoutMovementFallsBack(t *testing.T) {
	f := newSceneFixture(t)
	w := NewWorld()
	ball := w.NewEntity(0)
	ball.Name = "ball"
	ball.AddComponent(&BallComponent{})
	f.meshEntity(w, ball.Id(), "ball-mesh", [3]float32{}, f.opaque)

	logger := &captureLogger{}
	fc := CollectCommands(w, logger)
	assert.Empty(t, fc.Special)
	assert.Len(t, fc.Opaque, 1)
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "no movement")
}

func TestCollectIsRebuiltEachFrame(t *testing.T) {
	f := newSceneFixture(t)
	w := NewWorld()
	e := f.meshEntity(w, 0, "crate", [3]float32{}, f.opaque)

	var fc FrameCommands
	fc.collect(w, NewNopLogger())
	require.Len(t, fc.Opaque, 1)

	w.Destroy(e.Id())
	fc.collect(w, NewNopLogger())
	assert.Empty(t, fc.Opaque)
}

func TestSortBackToFrontScenario(t *testing.T) {
	w := NewWorld()
	_, cam := cameraEntity(w, [3]float32{0, 0, 5}, [3]float32{0, 0, 0})
	near := RenderCommand{Center: mgl32.Vec3{0, 0, 2}}
	far := RenderCommand{Center: mgl32.Vec3{0, 0, -2}}

	cmds := []RenderCommand{near, far}
	SortBackToFront(cmds, cam.Forward())
	assert.Equal(t, []RenderCommand{far, near}, cmds)
}

func TestSortBackToFrontLawAndStability(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	forward := mgl32.Vec3{0, 0, -1}

	cmds := make([]RenderCommand, 64)
	for i := range cmds {
		// Few distinct depths so ties are common; X records input order.
		cmds[i].Center = mgl32.Vec3{float32(i), float32(rng.Intn(3)), float32(rng.Intn(5))}
	}
	input := append([]RenderCommand(nil), cmds...)
	SortBackToFront(cmds, forward)

	pos := make(map[float32]int, len(cmds))
	for i, c := range cmds {
		pos[c.Center.X()] = i
	}
	for _, a := range input {
		for _, b := range input {
			da, db := forward.Dot(a.Center), forward.Dot(b.Center)
			if da > db {
				assert.Less(t, pos[a.Center.X()], pos[b.Center.X()])
			}
			if da == db && a.Center.X() < b.Center.X() {
				assert.Less(t, pos[a.Center.X()], pos[b.Center.X()], "ties keep input order")
			}
		}
	}
}
