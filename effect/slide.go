package effect

import (
	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/pkg/errors"
)

// Vec3 is a position.
type Vec3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// LerpUnclamped interpolates between a and b without limiting t.
func LerpUnclamped(a Vec3, b Vec3, t float64) Vec3 {
	return Vec3{
		X: util.LerpUnclamped(a.X, b.X, t),
		Y: util.LerpUnclamped(a.Y, b.Y, t),
		Z: util.LerpUnclamped(a.Z, b.Z, t),
	}
}

// PositionTarget receives slid positions.
type PositionTarget interface {
	SetPosition(p Vec3)
	Valid() bool
}

// Slide moves a target between Start and End. Samples outside [0, 1] place
// the target beyond the endpoints.
type Slide struct {
	owner

	Start Vec3
	End   Vec3

	target PositionTarget
}

// NewSlide creates a Slide writing to target.
func NewSlide(name string, target PositionTarget, start Vec3, end Vec3) *Slide {
	s := new(Slide)
	s.name = name
	s.target = target
	s.Start = start
	s.End = end
	return s
}

// Bind implements timeline.Binder.
func (s *Slide) Bind(p timeline.Pauser) {
	if s != nil {
		s.bind(p)
	}
}

// Setup checks that the target is usable.
func (s *Slide) Setup() error {
	if s == nil {
		return ErrNilEffect
	}
	if s.target == nil || !s.target.Valid() {
		return errors.Errorf("%s: position target not set", s.name)
	}
	return nil
}

// Animate implements timeline.Effect.
func (s *Slide) Animate(value float64) {
	if s.target == nil || !s.target.Valid() {
		s.fail("position target")
		return
	}

	s.target.SetPosition(LerpUnclamped(s.Start, s.End, value))
}
