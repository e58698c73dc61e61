// Package idle starts a timeline once the frame rate has settled.
//
// A Gate waits until either a number of consecutive frames have rendered
// within the target frame interval, or a maximum wait has elapsed. Any slow
// frame resets the count, so playback is not started during a stutter.
package idle

import (
	"log"

	"github.com/matt-g-everett/ledanim/clock"
	"github.com/pkg/errors"
)

var (
	// ErrNoPlayer is returned when a Gate has nothing to start.
	ErrNoPlayer = errors.New("player is not set")
	// ErrNoTimeSource is returned when a Gate cannot read the time.
	ErrNoTimeSource = errors.New("time source is not set")
)

// Player is the playback control a Gate drives.
type Player interface {
	Play()
	Pause()
	Restart()
}

// Trigger records which condition started playback.
type Trigger int

const (
	// TriggerNone means the gate has not fired.
	TriggerNone Trigger = iota
	// TriggerTimeout means the maximum wait elapsed.
	TriggerTimeout
	// TriggerFrameRate means enough consecutive fast frames were seen.
	TriggerFrameRate
)

func (t Trigger) String() string {
	switch t {
	case TriggerTimeout:
		return "timeout"
	case TriggerFrameRate:
		return "framerate"
	default:
		return "none"
	}
}

// Config holds the gate thresholds.
type Config struct {
	// MaxWaitDuration is the longest the gate waits, in seconds.
	MaxWaitDuration float64 `yaml:"maxWaitDuration"`
	// TargetFrameRate is the frame rate a frame must meet to count.
	TargetFrameRate float64 `yaml:"targetFrameRate"`
	// MinFramesAboveTarget is the number of consecutive qualifying frames
	// required before playing.
	MinFramesAboveTarget int `yaml:"minFramesAboveTarget"`
}

// DefaultConfig waits up to 20 seconds for 30 consecutive frames at 30 fps.
func DefaultConfig() Config {
	return Config{
		MaxWaitDuration:      20,
		TargetFrameRate:      30,
		MinFramesAboveTarget: 30,
	}
}

// Validate checks that the thresholds are usable.
func (c Config) Validate() error {
	if c.MaxWaitDuration < 0 {
		return errors.Errorf("maxWaitDuration must not be negative, got %v", c.MaxWaitDuration)
	}
	if c.TargetFrameRate <= 0 {
		return errors.Errorf("targetFrameRate must be positive, got %v", c.TargetFrameRate)
	}
	if c.MinFramesAboveTarget < 1 {
		return errors.Errorf("minFramesAboveTarget must be at least 1, got %d", c.MinFramesAboveTarget)
	}
	return nil
}

// Gate plays a Player once the frame rate is stable.
type Gate struct {
	config Config
	source clock.Source
	player Player

	startWallTime     float64
	framesAboveTarget int
	active            bool
	trigger           Trigger
}

// NewGate creates an inactive Gate.
func NewGate(config Config, source clock.Source, player Player) *Gate {
	g := new(Gate)
	g.config = config
	g.source = source
	g.player = player
	return g
}

// Activate validates the gate, holds the player paused on its first frame and
// starts waiting. A gate that fails validation logs and stays inactive.
func (g *Gate) Activate() error {
	g.active = false
	if err := g.validate(); err != nil {
		log.Printf("idle gate: %v", err)
		return err
	}

	g.startWallTime = g.source.Now()
	g.framesAboveTarget = 0
	g.trigger = TriggerNone

	g.player.Restart()
	g.player.Pause()

	g.active = true
	return nil
}

func (g *Gate) validate() error {
	if g.player == nil {
		return ErrNoPlayer
	}
	if v, ok := g.player.(interface{ Valid() bool }); ok && !v.Valid() {
		return ErrNoPlayer
	}
	if g.source == nil {
		return ErrNoTimeSource
	}
	return errors.Wrap(g.config.Validate(), "config")
}

// Update checks the trigger conditions for the current frame.
func (g *Gate) Update() {
	if !g.active {
		return
	}

	if g.source.Now()-g.startWallTime > g.config.MaxWaitDuration {
		g.fire(TriggerTimeout)
		return
	}

	if g.source.DeltaTime() > g.TargetFrameInterval() {
		g.framesAboveTarget = 0
		return
	}

	g.framesAboveTarget++
	if g.framesAboveTarget < g.config.MinFramesAboveTarget {
		return
	}

	g.fire(TriggerFrameRate)
}

func (g *Gate) fire(trigger Trigger) {
	g.trigger = trigger
	g.active = false
	g.player.Play()
}

// TargetFrameInterval is the longest frame delta that counts as fast.
func (g *Gate) TargetFrameInterval() float64 {
	return 1 / g.config.TargetFrameRate
}

// IsActive reports whether the gate is still waiting.
func (g *Gate) IsActive() bool { return g.active }

// FramesAboveTarget returns the current run of fast frames.
func (g *Gate) FramesAboveTarget() int { return g.framesAboveTarget }

// Trigger returns the condition that fired the gate.
func (g *Gate) Trigger() Trigger { return g.trigger }

// Config returns the gate thresholds.
func (g *Gate) Config() Config { return g.config }
