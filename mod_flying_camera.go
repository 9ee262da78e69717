package gekko

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/gekko-forward/config"
)

const KindFlyingCamera ComponentKind = "FlyingCamera"

type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(FlyingCameraInputSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(FlyingCameraControlSystem).
			InStage(Update),
	)
}

// FlyingCameraComponent steers the detached Camera on the same entity.
// Yaw and Pitch are in degrees.
type FlyingCameraComponent struct {
	ComponentBase
	Speed       float32
	Sensitivity float32
	Yaw         float32
	Pitch       float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2
}

func NewFlyingCameraComponent() *FlyingCameraComponent {
	return &FlyingCameraComponent{Speed: 5, Sensitivity: 0.1}
}

func (fly *FlyingCameraComponent) Kind() ComponentKind { return KindFlyingCamera }

func (fly *FlyingCameraComponent) Deserialize(f config.Fields) error {
	fly.Speed = f.Float("speed", fly.Speed)
	fly.Sensitivity = f.Float("sensitivity", fly.Sensitivity)
	fly.Yaw = f.Float("yaw", fly.Yaw)
	fly.Pitch = f.Float("pitch", fly.Pitch)
	return nil
}

func FlyingCameraInputSystem(input *Input, world *World) {
	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	for _, e := range world.Entities() {
		fly, ok := ComponentOf[*FlyingCameraComponent](e)
		if !ok {
			continue
		}
		fly.Move = mgl32.Vec3{0, 0, 0}
		if input.Pressed[KeyW] {
			fly.Move[2] += 1
		}
		if input.Pressed[KeyS] {
			fly.Move[2] -= 1
		}
		if input.Pressed[KeyA] {
			fly.Move[0] -= 1
		}
		if input.Pressed[KeyD] {
			fly.Move[0] += 1
		}
		if input.Pressed[KeySpace] {
			fly.Move[1] += 1
		}
		if input.Pressed[KeyControl] {
			fly.Move[1] -= 1
		}

		if input.MouseCaptured {
			fly.Look[0] = float32(input.MouseDeltaX)
			fly.Look[1] = float32(input.MouseDeltaY)
		} else {
			fly.Look[0] = 0
			fly.Look[1] = 0
		}
	}
}

func FlyingCameraControlSystem(world *World, time *Time) {
	dt := time.Seconds()
	if dt <= 0 {
		return
	}
	for _, e := range world.Entities() {
		fly, ok := ComponentOf[*FlyingCameraComponent](e)
		if !ok {
			continue
		}
		cam, ok := ComponentOf[*CameraComponent](e)
		if !ok || cam.Mode != CameraDetached {
			continue
		}
		fly.Steer(cam, dt)
	}
}

// Steer applies one frame of look and move intent to cam's tracked triple.
func (fly *FlyingCameraComponent) Steer(cam *CameraComponent, dt float32) {
	fly.Yaw += fly.Look[0] * fly.Sensitivity
	fly.Pitch -= fly.Look[1] * fly.Sensitivity
	fly.Pitch = mgl32.Clamp(fly.Pitch, -89, 89)

	yawRad := float64(mgl32.DegToRad(fly.Yaw))
	pitchRad := float64(mgl32.DegToRad(fly.Pitch))

	forward := mgl32.Vec3{
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(-math.Cos(yawRad) * math.Cos(pitchRad)),
	}.Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := mgl32.Vec3{0, 1, 0}

	moveDir := right.Mul(fly.Move[0]).Add(up.Mul(fly.Move[1])).Add(forward.Mul(fly.Move[2]))
	if moveDir.Len() > 0 {
		cam.Position = cam.Position.Add(moveDir.Normalize().Mul(fly.Speed * dt))
	}

	cam.LookAt = cam.Position.Add(forward)
	cam.Up = up
}
