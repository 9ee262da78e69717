package gekko

// MovementModule integrates Movement components and keeps follow cameras
// behind their owners.
type MovementModule struct{}

func (mod MovementModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(movementSystem).
			InStage(Update),
	)
	app.UseSystem(
		System(followCameraSystem).
			InStage(PostUpdate),
	)
}

func movementSystem(time *Time, world *World) {
	dt := time.Seconds()
	if dt <= 0 {
		return
	}
	updateComponents(world, KindMovement, dt)
}

func followCameraSystem(world *World) {
	for _, e := range world.Entities() {
		if cam, ok := ComponentOf[*CameraComponent](e); ok {
			cam.UpdateFollow()
		}
	}
}
