package scene

import (
	"log"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/effect"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/matt-g-everett/ledanim/timeline"
)

// Commands handled by a layer itself rather than its timeline.
const (
	CommandActivate   = "Activate"
	CommandDeactivate = "Deactivate"
	CommandDestroy    = "Destroy"
)

// IsCommand reports whether name is a command Dispatch understands, either
// for a timeline or for its layer.
func IsCommand(name string) bool {
	switch name {
	case CommandActivate, CommandDeactivate, CommandDestroy:
		return true
	}
	return timeline.IsCommand(name)
}

type painter interface {
	paint(l *layer, f *stream.Frame)
}

// layer is the host of one timeline. It is both the timeline's Host and the
// target of its effect, and it is the stepper registered with the controller
// so that an inactive host is not stepped.
type layer struct {
	name      string
	order     int
	active    bool
	destroyed bool

	timeline *timeline.Timeline
	painter  painter

	color    colorful.Color
	position effect.Vec3
}

// SetActive implements timeline.Host.
func (l *layer) SetActive(active bool) {
	l.active = active
}

// activate marks the host active and runs the timeline's activation hook.
func (l *layer) activate() {
	if l.active {
		return
	}
	l.active = true
	l.timeline.Activate()
}

// SetColor implements effect.ColorTarget.
func (l *layer) SetColor(c colorful.Color) {
	l.color = c
}

// SetPosition implements effect.PositionTarget.
func (l *layer) SetPosition(p effect.Vec3) {
	l.position = p
}

// Valid implements effect.ColorTarget and effect.PositionTarget.
func (l *layer) Valid() bool {
	return !l.destroyed
}

// Update implements stream.Stepper.
func (l *layer) Update() {
	l.timeline.Update()
}

// IsActive implements stream.Stepper.
func (l *layer) IsActive() bool {
	return l.active && l.timeline.IsActive()
}

func (l *layer) visible() bool {
	return l.active && !l.destroyed
}

func (l *layer) handleCommand(name string) bool {
	switch name {
	case CommandActivate:
		l.activate()
	case CommandDeactivate:
		l.SetActive(false)
	case CommandDestroy:
		log.Printf("%s: destroyed", l.name)
		l.destroyed = true
	default:
		return false
	}
	return true
}

type blendPainter struct {
	from int
	to   int
}

func (p blendPainter) paint(l *layer, f *stream.Frame) {
	f.Fill(p.from, p.to, l.color)
}

type slidePainter struct {
	width int
	color colorful.Color
}

func (p slidePainter) paint(l *layer, f *stream.Frame) {
	from := int(math.Round(l.position.X - float64(p.width)/2))
	f.Fill(from, from+p.width, p.color)
}
