package gekko

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// World returns the scene world resource, or nil before a scene is loaded.
func (cmd *Commands) World() *World {
	return Resource[World](cmd.app)
}

// RemoveEntity defers removal of eid and its subtree to the end of the stage.
func (cmd *Commands) RemoveEntity(eid EntityId) {
	if w := cmd.World(); w != nil {
		w.MarkForRemoval(eid)
	}
}

// Exit stops App.Run after the current frame.
func (cmd *Commands) Exit() {
	cmd.app.exiting = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
