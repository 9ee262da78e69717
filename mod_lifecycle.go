package gekko

import (
	"github.com/gekko3d/gekko-forward/config"
)

const KindLifetime ComponentKind = "Lifetime"

// LifetimeComponent removes its entity after TimeLeft seconds.
type LifetimeComponent struct {
	ComponentBase
	TimeLeft float32
}

func (lt *LifetimeComponent) Kind() ComponentKind { return KindLifetime }

func (lt *LifetimeComponent) Deserialize(f config.Fields) error {
	lt.TimeLeft = f.Float("time", lt.TimeLeft)
	return nil
}

// Update marks the owner for removal once the time runs out. Removal is
// applied by World.FlushRemovals.
func (lt *LifetimeComponent) Update(dt float32) {
	if lt.owner == nil {
		return
	}
	lt.TimeLeft -= dt
	if lt.TimeLeft <= 0 {
		lt.owner.World().MarkForRemoval(lt.owner.Id())
	}
}

type LifecycleModule struct{}

func (mod LifecycleModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(lifetimeSystem).
			InStage(PostUpdate),
	)
}

func lifetimeSystem(time *Time, world *World, cmd *Commands) {
	dt := time.Seconds()
	if dt <= 0 {
		return
	}
	if n := updateComponents(world, KindLifetime, dt); n > 0 && cmd.Logger().DebugEnabled() {
		cmd.Logger().Debugf("lifecycle: ticked %d lifetimes", n)
	}
}

// updateComponents calls Update on every component of kind, in world order.
func updateComponents(world *World, kind ComponentKind, dt float32) int {
	n := 0
	for _, e := range world.Entities() {
		if u, ok := e.Component(kind).(Updater); ok {
			u.Update(dt)
			n++
		}
	}
	return n
}
