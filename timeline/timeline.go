// Package timeline implements a frame-driven playback state machine that
// advances time through a shaping Curve and reports each sample to an Effect.
//
// A Timeline is not safe for concurrent use. It is stepped from a single frame
// loop and its commands are expected to be issued from that same loop.
package timeline

import (
	"fmt"
	"log"

	"github.com/matt-g-everett/ledanim/clock"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/pkg/errors"
)

var (
	// ErrNoTimeSource is returned by Setup when no time source is bound.
	ErrNoTimeSource = errors.New("time source is not set")
	// ErrNoEffect is returned by Setup when no effect is bound.
	ErrNoEffect = errors.New("effect is not set")
)

// State is the playback state of a Timeline.
type State int

const (
	// Stopped means the timeline is disabled and rewound to its start.
	Stopped State = iota
	// Playing means the timeline advances on every step.
	Playing
	// Paused means the timeline is disabled at its current position.
	Paused
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Effect consumes evaluated curve samples.
//
// Animate must not panic. An effect that cannot apply the value should log
// and pause its timeline.
type Effect interface {
	Animate(value float64)
}

// Pauser is the part of a Timeline an Effect may call back into.
type Pauser interface {
	Pause()
}

// Binder is implemented by effects that need a handle on their owning
// timeline. New binds such effects automatically.
type Binder interface {
	Bind(p Pauser)
}

// Setupper is implemented by effects that validate their own targets. Setup
// must be safe to call on a nil receiver.
type Setupper interface {
	Setup() error
}

// Host is the object owning a Timeline. Its active flag is toggled as a side
// effect of playback when the matching Options are set.
type Host interface {
	SetActive(active bool)
}

// Options holds the static playback configuration.
type Options struct {
	Loop                  bool `yaml:"loop"`
	PlayOnActivate        bool `yaml:"playOnActivate"`
	ActivateHostOnPlay    bool `yaml:"activateHostOnPlay"`
	DeactivateHostOnPause bool `yaml:"deactivateHostOnPause"`
	DeactivateHostOnStop  bool `yaml:"deactivateHostOnStop"`
}

// DefaultOptions matches a timeline that starts as soon as its host is
// activated and plays once.
func DefaultOptions() Options {
	return Options{PlayOnActivate: true}
}

// Timeline owns playback time and curve evaluation.
type Timeline struct {
	Options

	curve  *Curve
	source clock.Source
	effect Effect
	host   Host

	startTime   float64
	endTime     float64
	currentTime float64
	enabled     bool
	state       State
	ready       bool
}

// New creates a stopped Timeline. A nil curve is replaced by an ease-in-out
// curve from (0,0) to (1,1). The host may be nil.
func New(curve *Curve, source clock.Source, effect Effect, host Host, opts Options) *Timeline {
	t := new(Timeline)
	t.Options = opts
	if curve == nil {
		curve = EaseInOut(0, 0, 1, 1)
	}
	t.curve = curve
	t.source = source
	t.effect = effect
	t.host = host
	t.state = Stopped

	t.updateBounds()
	t.currentTime = t.startTime

	if b, ok := effect.(Binder); ok {
		b.Bind(t)
	}

	return t
}

// Setup validates the bound collaborators. A timeline that fails setup
// refuses to be activated.
func (t *Timeline) Setup() error {
	t.ready = false
	if t.source == nil {
		log.Printf("timeline setup: %v", ErrNoTimeSource)
		return ErrNoTimeSource
	}
	if t.effect == nil {
		log.Printf("timeline setup: %v", ErrNoEffect)
		return ErrNoEffect
	}
	if s, ok := t.effect.(Setupper); ok {
		if err := s.Setup(); err != nil {
			log.Printf("timeline setup: %v", err)
			return errors.Wrap(err, "effect setup")
		}
	}
	t.ready = true
	return nil
}

// Activate is called by the host when it becomes active.
func (t *Timeline) Activate() {
	if !t.ready {
		log.Println("timeline activate: not initialized")
		if t.host != nil {
			t.host.SetActive(false)
		}
		return
	}

	if t.PlayOnActivate {
		t.Play()
	}
}

// Play continues from the current position.
func (t *Timeline) Play() {
	t.curve.PreWrap = WrapClamp
	t.curve.PostWrap = WrapClamp

	normalized := t.NormalizedTime()
	t.updateBounds()
	t.currentTime = t.timeAt(normalized)

	t.enabled = true
	t.state = Playing
	if t.ActivateHostOnPlay && t.host != nil {
		t.host.SetActive(true)
	}

	t.advance(0)
}

// Pause holds the current position.
func (t *Timeline) Pause() {
	t.enabled = false
	t.state = Paused
	if t.DeactivateHostOnPause && t.host != nil {
		t.host.SetActive(false)
	}
}

// Restart rewinds to the start and plays.
func (t *Timeline) Restart() {
	t.currentTime = t.startTime
	t.Play()
}

// Stop rewinds to the start and disables the timeline.
func (t *Timeline) Stop() {
	t.currentTime = t.startTime
	t.enabled = false
	t.state = Stopped
	if t.DeactivateHostOnStop && t.host != nil {
		t.host.SetActive(false)
	}
}

// Update advances by the time source's frame delta.
func (t *Timeline) Update() {
	if t.source == nil {
		return
	}
	t.Step(t.source.DeltaTime())
}

// Step advances playback by dt seconds and reports the resulting sample.
// It does nothing while the timeline is not enabled.
func (t *Timeline) Step(dt float64) {
	if !t.enabled {
		return
	}
	if dt < 0 {
		dt = 0
	}
	t.advance(dt)
}

func (t *Timeline) advance(dt float64) {
	if t.currentTime < t.startTime {
		t.currentTime = t.startTime
	}
	t.currentTime += dt

	if t.currentTime < t.endTime {
		t.animate(t.curve.Evaluate(t.currentTime))
	} else if t.Loop && t.endTime > t.startTime {
		t.currentTime = t.startTime + (t.currentTime - t.endTime)
		t.animate(t.curve.Evaluate(t.currentTime))
	} else if t.Loop {
		// Zero-length loop: every frame is the single sample.
		t.currentTime = t.startTime
		t.animate(t.curve.Evaluate(t.endTime))
	} else {
		t.animate(t.curve.Evaluate(t.endTime))
		t.Stop()
	}
}

func (t *Timeline) animate(value float64) {
	if t.effect != nil {
		t.effect.Animate(value)
	}
}

// NormalizedTime returns the position within [StartTime, EndTime] as a value
// in [0, 1].
func (t *Timeline) NormalizedTime() float64 {
	return util.Clamp01(util.Remap(t.startTime, t.endTime, 0, 1, t.currentTime))
}

// SetNormalizedTime moves the position to x in [0, 1]. While playing, the new
// position is evaluated and reported immediately.
func (t *Timeline) SetNormalizedTime(x float64) {
	t.currentTime = t.timeAt(x)
	if t.enabled {
		t.advance(0)
	}
}

func (t *Timeline) timeAt(normalized float64) float64 {
	return util.Clamp(util.Remap(0, 1, t.startTime, t.endTime, normalized), t.startTime, t.endTime)
}

func (t *Timeline) updateBounds() {
	t.startTime, t.endTime = t.curve.Bounds()
}

// HandleCommand runs a named command. It returns false when the name is not
// a timeline command so the caller can forward it.
func (t *Timeline) HandleCommand(name string) bool {
	switch name {
	case CommandPlay:
		t.Play()
	case CommandPause:
		t.Pause()
	case CommandRestart:
		t.Restart()
	case CommandStop:
		t.Stop()
	default:
		return false
	}
	return true
}

// Valid reports whether t is usable. A nil *Timeline stored in an interface
// is not.
func (t *Timeline) Valid() bool { return t != nil }

// State returns the playback state.
func (t *Timeline) State() State { return t.state }

// IsActive reports whether the timeline advances on each step.
func (t *Timeline) IsActive() bool { return t.enabled }

// CurrentTime returns the playback position in curve time.
func (t *Timeline) CurrentTime() float64 { return t.currentTime }

// StartTime returns the start of the playback window.
func (t *Timeline) StartTime() float64 { return t.startTime }

// EndTime returns the end of the playback window.
func (t *Timeline) EndTime() float64 { return t.endTime }

// Curve returns the shaping curve.
func (t *Timeline) Curve() *Curve { return t.curve }

// SetCurve replaces the shaping curve. The playback window follows the new
// curve from the next Play, keeping the normalized position.
func (t *Timeline) SetCurve(c *Curve) {
	if c == nil {
		c = EaseInOut(0, 0, 1, 1)
	}
	t.curve = c
}
