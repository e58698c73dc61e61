package effect

// Probe records every sample it is given.
type Probe struct {
	values []float64
}

// NewProbe creates an empty Probe.
func NewProbe() *Probe {
	return new(Probe)
}

// Setup implements timeline.Setupper.
func (p *Probe) Setup() error {
	if p == nil {
		return ErrNilEffect
	}
	return nil
}

// Animate implements timeline.Effect.
func (p *Probe) Animate(value float64) {
	p.values = append(p.values, value)
}

// Values returns a copy of the recorded samples.
func (p *Probe) Values() []float64 {
	out := make([]float64, len(p.values))
	copy(out, p.values)
	return out
}

// Last returns the most recent sample, or 0 if none was recorded.
func (p *Probe) Last() float64 {
	if len(p.values) == 0 {
		return 0
	}
	return p.values[len(p.values)-1]
}

// Count returns the number of recorded samples.
func (p *Probe) Count() int {
	return len(p.values)
}

// Reset discards the recorded samples.
func (p *Probe) Reset() {
	p.values = p.values[:0]
}
