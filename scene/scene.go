// Package scene composes timeline-driven layers into LED frames.
//
// A Scene owns the frame clock and the per-frame controller. Idle gates run in
// the update phase and layer timelines in the late-update phase, so a gate
// that starts playback does so before that frame's animation is applied.
package scene

import (
	"log"
	"sort"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/clock"
	"github.com/matt-g-everett/ledanim/effect"
	"github.com/matt-g-everett/ledanim/idle"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/pkg/errors"
)

// Status is a snapshot of one layer.
type Status struct {
	Name           string  `json:"name"`
	State          string  `json:"state"`
	Active         bool    `json:"active"`
	Destroyed      bool    `json:"destroyed"`
	NormalizedTime float64 `json:"normalizedTime"`
	Gated          bool    `json:"gated"`
}

// Scene is a stream.Animation built from a Config.
type Scene struct {
	pixels     int
	source     clock.FrameSource
	controller *stream.Controller

	layers []*layer
	byName map[string]*layer
	gates  map[string]*idle.Gate

	fade         float64
	fadeFrom     *stream.Frame
	fadeProgress float64
	last         *stream.Frame
	shown        []bool

	mu       sync.Mutex
	snapshot []Status
}

// New builds a scene of the given pixel count. Configuration errors are
// returned before anything is activated.
func New(config Config, pixels int, source clock.FrameSource) (*Scene, error) {
	if source == nil {
		return nil, errors.Wrap(timeline.ErrNoTimeSource, "scene")
	}

	if config.Fade < 0 {
		return nil, errors.Errorf("fade must not be negative, got %v", config.Fade)
	}

	s := new(Scene)
	s.pixels = pixels
	s.fade = config.Fade
	s.source = source
	s.controller = stream.NewController()
	s.byName = make(map[string]*layer)
	s.gates = make(map[string]*idle.Gate)

	for i, lc := range config.Layers {
		l, err := s.buildLayer(lc)
		if err != nil {
			return nil, errors.Wrapf(err, "layer %d", i)
		}
		s.layers = append(s.layers, l)
		s.byName[l.name] = l
		s.controller.Register(stream.PhaseLateUpdate, l.order, l)
	}

	// Paint in order key, then declaration order.
	sort.SliceStable(s.layers, func(i, j int) bool {
		return s.layers[i].order < s.layers[j].order
	})

	for i, gc := range config.Gates {
		l, ok := s.byName[gc.Layer]
		if !ok {
			return nil, errors.Errorf("gate %d: unknown layer %q", i, gc.Layer)
		}
		if _, dup := s.gates[gc.Layer]; dup {
			return nil, errors.Errorf("gate %d: layer %q already gated", i, gc.Layer)
		}
		if err := gc.Config.Validate(); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
		g := idle.NewGate(gc.Config, source, l.timeline)
		s.gates[gc.Layer] = g
		s.controller.Register(stream.PhaseUpdate, l.order, g)
	}

	for _, l := range s.layers {
		if l.active {
			l.active = false
			l.activate()
		}
	}
	for i, gc := range config.Gates {
		if err := s.gates[gc.Layer].Activate(); err != nil {
			return nil, errors.Wrapf(err, "gate %d", i)
		}
	}

	s.shown = make([]bool, len(s.layers))
	for i, l := range s.layers {
		s.shown[i] = l.visible()
	}

	s.refresh()
	return s, nil
}

func (s *Scene) buildLayer(lc LayerConfig) (*layer, error) {
	if lc.Name == "" {
		return nil, errors.New("name is required")
	}
	if _, dup := s.byName[lc.Name]; dup {
		return nil, errors.Errorf("duplicate name %q", lc.Name)
	}
	if lc.effects() != 1 {
		return nil, errors.Errorf("%s: exactly one of colorBlend, gradient and slide is required", lc.Name)
	}

	var curve *timeline.Curve
	if len(lc.Curve) > 0 {
		c, err := timeline.NewCurve(lc.Curve...)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: curve", lc.Name)
		}
		curve = c
	}

	l := new(layer)
	l.name = lc.Name
	l.order = lc.Order
	l.active = lc.Active

	var fx timeline.Effect
	switch {
	case lc.ColorBlend != nil:
		b, err := s.buildBlend(l, lc.ColorBlend)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: colorBlend", lc.Name)
		}
		fx = b
	case lc.Gradient != nil:
		g, err := s.buildGradient(l, lc.Gradient)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: gradient", lc.Name)
		}
		fx = g
	default:
		sl, err := s.buildSlide(l, lc.Slide)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: slide", lc.Name)
		}
		fx = sl
	}

	l.timeline = timeline.New(curve, s.source, fx, l, lc.Options)
	if err := l.timeline.Setup(); err != nil {
		return nil, errors.Wrap(err, lc.Name)
	}
	return l, nil
}

func (s *Scene) checkRange(from, to int) error {
	if from < 0 || to > s.pixels || from >= to {
		return errors.Errorf("range %d..%d outside 0..%d", from, to, s.pixels)
	}
	return nil
}

func (s *Scene) buildBlend(l *layer, c *ColorBlendConfig) (*effect.ColorBlend, error) {
	if err := s.checkRange(c.From, c.To); err != nil {
		return nil, err
	}
	lo, err := colorful.Hex(c.Min)
	if err != nil {
		return nil, errors.Wrap(err, "min")
	}
	hi, err := colorful.Hex(c.Max)
	if err != nil {
		return nil, errors.Wrap(err, "max")
	}
	space, err := effect.ParseBlendSpace(c.Space)
	if err != nil {
		return nil, err
	}

	b := effect.NewColorBlend(l.name, l, lo, hi)
	b.Space = space
	b.Clamp = c.Clamp
	if err := b.Setup(); err != nil {
		return nil, err
	}
	l.color = lo
	l.painter = blendPainter{c.From, c.To}
	return b, nil
}

func (s *Scene) buildGradient(l *layer, c *GradientConfig) (*effect.Gradient, error) {
	if err := s.checkRange(c.From, c.To); err != nil {
		return nil, err
	}

	g := effect.NewGradient(l.name, l, c.Stops, c.Chroma, c.Luminance)
	if err := g.Setup(); err != nil {
		return nil, err
	}
	l.color = g.Table.GetColor(0, c.Chroma, c.Luminance)
	l.painter = blendPainter{c.From, c.To}
	return g, nil
}

func (s *Scene) buildSlide(l *layer, c *SlideConfig) (*effect.Slide, error) {
	if c.Width <= 0 {
		return nil, errors.Errorf("width must be positive, got %d", c.Width)
	}
	color, err := colorful.Hex(c.Color)
	if err != nil {
		return nil, errors.Wrap(err, "color")
	}

	sl := effect.NewSlide(l.name, l, c.Start, c.End)
	if err := sl.Setup(); err != nil {
		return nil, err
	}
	l.position = c.Start
	l.painter = slidePainter{c.Width, color}
	return sl, nil
}

// CalculateFrame implements stream.Animation.
func (s *Scene) CalculateFrame() *stream.Frame {
	s.source.Tick()
	s.controller.Step()

	f := stream.NewFrame(s.pixels)
	changed := false
	for i, l := range s.layers {
		visible := l.visible()
		if visible != s.shown[i] {
			s.shown[i] = visible
			changed = true
		}
		if visible {
			l.painter.paint(l, f)
		}
	}

	f = s.crossFade(f, changed)
	s.last = f
	s.refresh()
	return f
}

// crossFade blends from the last streamed frame towards f while a fade is in
// progress. A layer change mid-fade starts a new fade from the blended frame.
func (s *Scene) crossFade(f *stream.Frame, changed bool) *stream.Frame {
	if s.fade <= 0 {
		return f
	}
	if changed && s.last != nil {
		s.fadeFrom = s.last
		s.fadeProgress = 0
	}
	if s.fadeFrom == nil {
		return f
	}

	s.fadeProgress += s.source.DeltaTime() / s.fade
	if s.fadeProgress >= 1 {
		s.fadeFrom = nil
		return f
	}
	return s.fadeFrom.InterpolateFrame(f, s.fadeProgress)
}

// Dispatch implements stream.Dispatcher. Timeline commands are tried first,
// then layer commands.
func (s *Scene) Dispatch(cmd stream.Command) {
	l, ok := s.byName[cmd.Animation]
	if !ok {
		log.Printf("command %s: unknown animation %q", cmd.Name, cmd.Animation)
		return
	}

	if l.timeline.HandleCommand(cmd.Name) {
		return
	}
	if l.handleCommand(cmd.Name) {
		return
	}
	log.Printf("%s: unhandled command %q", l.name, cmd.Name)
}

// Timeline returns the timeline of the named layer.
func (s *Scene) Timeline(name string) (*timeline.Timeline, bool) {
	l, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return l.timeline, true
}

// Gate returns the idle gate of the named layer.
func (s *Scene) Gate(name string) (*idle.Gate, bool) {
	g, ok := s.gates[name]
	return g, ok
}

// Status returns a copy of the layer states as of the last frame. It is safe
// for concurrent use.
func (s *Scene) Status() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Status, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

func (s *Scene) refresh() {
	snapshot := make([]Status, 0, len(s.layers))
	for _, l := range s.layers {
		g, gated := s.gates[l.name]
		snapshot = append(snapshot, Status{
			Name:           l.name,
			State:          l.timeline.State().String(),
			Active:         l.active,
			Destroyed:      l.destroyed,
			NormalizedTime: l.timeline.NormalizedTime(),
			Gated:          gated && g.IsActive(),
		})
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()
}
