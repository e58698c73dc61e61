// Package effect contains the consumers of timeline samples.
//
// Effects fail soft. When their target is no longer valid they log and pause
// the timeline that owns them instead of returning an error into the step loop.
package effect

import (
	"log"

	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/pkg/errors"
)

// ErrNilEffect is returned by Setup on a nil effect.
var ErrNilEffect = errors.New("effect is nil")

// owner is embedded by effects that pause their timeline on failure.
type owner struct {
	name  string
	pause timeline.Pauser
}

func (o *owner) bind(p timeline.Pauser) {
	o.pause = p
}

func (o *owner) fail(what string) {
	log.Printf("%s: %s invalid, pausing", o.name, what)
	if o.pause != nil {
		o.pause.Pause()
	}
}
