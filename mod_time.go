package gekko

import (
	"time"
)

type Time struct {
	Time    time.Time
	Dt      time.Duration
	Elapsed time.Duration

	// Fixed, when non-zero, replaces the measured frame delta.
	Fixed time.Duration
}

// Seconds is Dt in seconds.
func (t *Time) Seconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
	Fixed time.Duration
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time:  time.Now(),
		Dt:    0,
		Fixed: mod.Fixed,
	})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	if timeResource.Fixed > 0 {
		timeResource.Dt = timeResource.Fixed
	} else {
		timeResource.Dt = now.Sub(timeResource.Time)
	}
	timeResource.Elapsed += timeResource.Dt
	timeResource.Time = now
}
