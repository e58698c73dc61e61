// Package clock provides the frame time sources that drive timelines and
// idle gates.
//
// Times are expressed in seconds as float64. A Source is read many times per
// frame but only advanced once, by whoever owns the frame loop calling Tick.
package clock

import "time"

// Source exposes monotonic elapsed time and the duration of the last frame.
type Source interface {
	// Now returns seconds elapsed since the source was created.
	Now() float64
	// DeltaTime returns seconds between the two most recent ticks.
	DeltaTime() float64
}

// FrameSource is a Source that is advanced once per frame.
type FrameSource interface {
	Source
	Tick()
}

// Wall is a FrameSource backed by the system clock.
type Wall struct {
	now   func() time.Time
	start time.Time
	last  time.Time
	delta float64
}

// NewWall creates a Wall clock starting now.
func NewWall() *Wall {
	return newWallWith(time.Now)
}

func newWallWith(now func() time.Time) *Wall {
	w := new(Wall)
	w.now = now
	w.start = now()
	w.last = w.start
	return w
}

// Tick samples the system clock and records the frame delta.
func (w *Wall) Tick() {
	t := w.now()
	w.delta = t.Sub(w.last).Seconds()
	if w.delta < 0 {
		w.delta = 0
	}
	w.last = t
}

// Now returns seconds elapsed at the last tick.
func (w *Wall) Now() float64 {
	return w.last.Sub(w.start).Seconds()
}

// DeltaTime returns seconds between the last two ticks.
func (w *Wall) DeltaTime() float64 {
	return w.delta
}
