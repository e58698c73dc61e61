package clock

// Manual is a deterministic FrameSource. Tests and offline renders advance it
// explicitly, either by a scripted delta with Advance or by the fixed Step on
// each Tick.
type Manual struct {
	// Step is the delta applied by Tick.
	Step float64

	now   float64
	delta float64
}

// NewManual creates a Manual clock at time zero that ticks by step.
func NewManual(step float64) *Manual {
	m := new(Manual)
	m.Step = step
	return m
}

// Advance moves the clock forward by dt and makes dt the frame delta.
func (m *Manual) Advance(dt float64) {
	m.delta = dt
	m.now += dt
}

// Tick advances the clock by Step.
func (m *Manual) Tick() {
	m.Advance(m.Step)
}

// Set moves the clock to t without changing the frame delta.
func (m *Manual) Set(t float64) {
	m.now = t
}

// Now returns the current manual time.
func (m *Manual) Now() float64 {
	return m.now
}

// DeltaTime returns the last delta passed to Advance.
func (m *Manual) DeltaTime() float64 {
	return m.delta
}
