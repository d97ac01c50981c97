package letterbox

import (
	"time"
)

type Time struct {
	Time time.Time
	Dt   time.Duration

	timer FrameTimer
}

// FrameTimer is implemented by platforms that measure frame time themselves.
type FrameTimer interface {
	FrameTime() time.Duration
}

// DtSeconds is Dt as float seconds, the unit motion code works in.
func (t *Time) DtSeconds() float32 {
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	t := &Time{
		Time: time.Now(),
		Dt:   0,
	}
	if host, ok := Resource[Host](app); ok {
		if ft, ok := host.Platform.(FrameTimer); ok {
			t.timer = ft
		}
	}
	cmd.AddResources(t)
	app.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	if timeResource.timer != nil {
		timeResource.Dt = timeResource.timer.FrameTime()
	} else {
		timeResource.Dt = now.Sub(timeResource.Time)
	}
	timeResource.Time = now
}
