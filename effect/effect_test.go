package effect

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/clock"
	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/pkg/errors"
)

type colorTarget struct {
	color   colorful.Color
	invalid bool
	sets    int
}

func (c *colorTarget) SetColor(col colorful.Color) { c.color = col; c.sets++ }
func (c *colorTarget) Valid() bool                 { return !c.invalid }

type positionTarget struct {
	pos     Vec3
	invalid bool
}

func (p *positionTarget) SetPosition(v Vec3) { p.pos = v }
func (p *positionTarget) Valid() bool        { return !p.invalid }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseBlendSpace(t *testing.T) {
	tests := []struct {
		in      string
		want    BlendSpace
		wantErr bool
	}{
		{"", BlendRgb, false},
		{"rgb", BlendRgb, false},
		{"hcl", BlendHcl, false},
		{"lab", BlendLab, false},
		{"luv", BlendLuv, false},
		{"cmyk", "", true},
	}
	for _, tt := range tests {
		got, err := ParseBlendSpace(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBlendSpace(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBlendSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestColorBlend_Rgb(t *testing.T) {
	target := &colorTarget{}
	b := NewColorBlend("blend", target, colorful.Color{R: 0, G: 0.2, B: 1}, colorful.Color{R: 1, G: 0.4, B: 0})

	b.Animate(0.5)
	want := colorful.Color{R: 0.5, G: 0.3, B: 0.5}
	if !near(target.color.R, want.R) || !near(target.color.G, want.G) || !near(target.color.B, want.B) {
		t.Errorf("blend at 0.5 = %+v, want %+v", target.color, want)
	}
}

func TestColorBlend_Overshoot(t *testing.T) {
	target := &colorTarget{}
	b := NewColorBlend("blend", target, colorful.Color{}, colorful.Color{R: 0.5, G: 0.5, B: 0.5})

	b.Animate(1.2)
	if !near(target.color.R, 0.6) {
		t.Errorf("expected unclamped blend 0.6, got %v", target.color.R)
	}

	b.Clamp = true
	b.Animate(1.2)
	if !near(target.color.R, 0.5) {
		t.Errorf("expected clamped blend 0.5, got %v", target.color.R)
	}
}

func TestColorBlend_Spaces(t *testing.T) {
	min, _ := colorful.Hex("#000005")
	max, _ := colorful.Hex("#808080")
	for _, space := range []BlendSpace{BlendRgb, BlendHcl, BlendLab, BlendLuv} {
		b := NewColorBlend("blend", &colorTarget{}, min, max)
		b.Space = space
		if got := b.Blend(0); got.DistanceRgb(min) > 1e-3 {
			t.Errorf("%s: blend(0) = %v, want %v", space, got.Hex(), min.Hex())
		}
		if got := b.Blend(1); got.DistanceRgb(max) > 1e-3 {
			t.Errorf("%s: blend(1) = %v, want %v", space, got.Hex(), max.Hex())
		}
	}
}

func TestColorBlend_InvalidTargetPausesTimeline(t *testing.T) {
	target := &colorTarget{}
	b := NewColorBlend("blend", target, colorful.Color{}, colorful.Color{R: 1})
	tl := timeline.New(timeline.Linear(0, 0, 1, 1), clock.NewManual(0), b, nil, timeline.Options{Loop: true})
	tl.Play()
	tl.Step(0.25)
	sets := target.sets

	target.invalid = true
	tl.Step(0.25)

	if tl.State() != timeline.Paused {
		t.Errorf("expected timeline paused, got %v", tl.State())
	}
	if target.sets != sets {
		t.Error("expected no write to an invalid target")
	}
	tl.Step(0.25)
	if tl.CurrentTime() != 0.5 {
		t.Errorf("expected paused timeline to hold at 0.5, got %v", tl.CurrentTime())
	}
}

func TestColorBlend_Setup(t *testing.T) {
	if err := NewColorBlend("blend", nil, colorful.Color{}, colorful.Color{}).Setup(); err == nil {
		t.Error("expected setup error without target")
	}
	if err := NewColorBlend("blend", &colorTarget{}, colorful.Color{}, colorful.Color{}).Setup(); err != nil {
		t.Errorf("unexpected setup error: %v", err)
	}
}

func TestSlide_Unclamped(t *testing.T) {
	target := &positionTarget{}
	s := NewSlide("slide", target, Vec3{X: 0, Y: 10}, Vec3{X: 100, Y: 20, Z: 4})

	s.Animate(0.5)
	if target.pos != (Vec3{X: 50, Y: 15, Z: 2}) {
		t.Errorf("slide at 0.5 = %+v", target.pos)
	}

	s.Animate(1.1)
	if !near(target.pos.X, 110) || !near(target.pos.Y, 21) {
		t.Errorf("expected overshoot beyond end, got %+v", target.pos)
	}

	s.Animate(-0.1)
	if !near(target.pos.X, -10) {
		t.Errorf("expected undershoot before start, got %+v", target.pos)
	}
}

func TestSlide_InvalidTargetPausesTimeline(t *testing.T) {
	target := &positionTarget{invalid: true}
	s := NewSlide("slide", target, Vec3{}, Vec3{X: 1})
	if err := s.Setup(); err == nil {
		t.Error("expected setup error for invalid target")
	}

	tl := timeline.New(timeline.Linear(0, 0, 1, 1), clock.NewManual(0), s, nil, timeline.Options{})
	tl.Play()
	if tl.State() != timeline.Paused {
		t.Errorf("expected timeline paused, got %v", tl.State())
	}
}

func TestSlide_WithoutOwnerDoesNotPanic(t *testing.T) {
	s := NewSlide("slide", nil, Vec3{}, Vec3{X: 1})
	s.Animate(0.5)
}

func TestProbe(t *testing.T) {
	p := NewProbe()
	if p.Last() != 0 || p.Count() != 0 {
		t.Error("expected empty probe")
	}

	tl := timeline.New(timeline.Linear(0, 0, 1, 1), clock.NewManual(0), p, nil, timeline.Options{})
	tl.Play()
	tl.Step(0.5)
	tl.Step(0.75)

	values := p.Values()
	want := []float64{0, 0.5, 1}
	if len(values) != len(want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
	for i := range want {
		if !near(values[i], want[i]) {
			t.Errorf("value[%d] = %v, want %v", i, values[i], want[i])
		}
	}
	if p.Last() != 1 || p.Count() != 3 {
		t.Errorf("unexpected last %v count %d", p.Last(), p.Count())
	}

	p.Reset()
	if p.Count() != 0 {
		t.Error("expected reset probe to be empty")
	}
}

func TestNilEffects_RefusedBySetup(t *testing.T) {
	var blend *ColorBlend
	var gradient *Gradient
	var slide *Slide
	var probe *Probe

	tests := []struct {
		name string
		fx   timeline.Effect
	}{
		{"colorBlend", blend},
		{"gradient", gradient},
		{"slide", slide},
		{"probe", probe},
	}
	for _, tt := range tests {
		tl := timeline.New(nil, clock.NewManual(0.1), tt.fx, nil, timeline.Options{PlayOnActivate: true})
		if err := tl.Setup(); !errors.Is(err, ErrNilEffect) {
			t.Errorf("%s: expected ErrNilEffect, got %v", tt.name, err)
		}
		tl.Activate()
		if tl.State() != timeline.Stopped {
			t.Errorf("%s: expected activation refused, got %v", tt.name, tl.State())
		}
	}
}
