package stream

import (
	"sort"
)

// Phase is a stage of the per-frame update.
type Phase int

const (
	// PhaseUpdate runs first, for logic that decides what should play.
	PhaseUpdate Phase = iota
	// PhaseLateUpdate runs after every update, for animation that overrides
	// the frame's state.
	PhaseLateUpdate
)

// A Stepper is advanced once per frame while it is active.
type Stepper interface {
	Update()
	IsActive() bool
}

type entry struct {
	stepper Stepper
	phase   Phase
	order   int
	seq     int
}

// Controller steps registered Steppers once per frame. Within a phase,
// steppers run by ascending order key, then by registration.
type Controller struct {
	entries []entry
	nextSeq int
	sorted  bool
}

// NewController creates an empty Controller.
func NewController() *Controller {
	c := new(Controller)
	c.sorted = true
	return c
}

// Register adds s to phase with the given order key. Registering a stepper
// that is already present moves it.
func (c *Controller) Register(phase Phase, order int, s Stepper) {
	c.Unregister(s)
	c.entries = append(c.entries, entry{s, phase, order, c.nextSeq})
	c.nextSeq++
	c.sorted = false
}

// Unregister removes s.
func (c *Controller) Unregister(s Stepper) {
	for i, e := range c.entries {
		if e.stepper == s {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered steppers.
func (c *Controller) Len() int {
	return len(c.entries)
}

// Step runs one frame: every active update-phase stepper, then every active
// late-update stepper.
func (c *Controller) Step() {
	if !c.sorted {
		sort.SliceStable(c.entries, func(i, j int) bool {
			a, b := c.entries[i], c.entries[j]
			if a.phase != b.phase {
				return a.phase < b.phase
			}
			if a.order != b.order {
				return a.order < b.order
			}
			return a.seq < b.seq
		})
		c.sorted = true
	}

	// Steppers may register or unregister while running, so step a snapshot.
	entries := make([]entry, len(c.entries))
	copy(entries, c.entries)
	for _, e := range entries {
		if e.stepper.IsActive() {
			e.stepper.Update()
		}
	}
}
