package effect

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/clock"
	"github.com/matt-g-everett/ledanim/timeline"
)

func rainbow() []GradientStop {
	return []GradientStop{
		{Hue: 360, Pos: 1},
		{Hue: 0, Pos: 0},
		{Hue: 180, Pos: 0.5},
	}
}

func TestGradientTable_GetColor(t *testing.T) {
	g := NewGradient("g", &colorTarget{}, rainbow(), 0.5, 0.5)

	tests := []struct {
		t   float64
		hue float64
	}{
		{-1, 0},
		{0, 0},
		{0.25, 90},
		{0.5, 180},
		{0.75, 270},
		{2, 360},
	}
	for _, tt := range tests {
		want := colorful.Hcl(tt.hue, 0.5, 0.5)
		if got := g.Table.GetColor(tt.t, 0.5, 0.5); got.DistanceRgb(want) > 1e-9 {
			t.Errorf("GetColor(%v) = %v, want %v", tt.t, got.Hex(), want.Hex())
		}
	}
}

func TestGradientTable_Empty(t *testing.T) {
	var g GradientTable
	if got := g.GetColor(0.5, 0, 0); got.DistanceRgb(colorful.Hcl(0, 0, 0)) > 1e-9 {
		t.Errorf("empty table = %v", got.Hex())
	}
}

func TestGradient_Setup(t *testing.T) {
	if err := NewGradient("g", &colorTarget{}, rainbow()[:1], 1, 1).Setup(); err == nil {
		t.Error("expected error for a single stop")
	}
	if err := NewGradient("g", nil, rainbow(), 1, 1).Setup(); err == nil {
		t.Error("expected error without target")
	}
	if err := NewGradient("g", &colorTarget{}, rainbow(), 1, 1).Setup(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGradient_Animate(t *testing.T) {
	target := &colorTarget{}
	g := NewGradient("g", target, rainbow(), 0.4, 0.3)
	tl := timeline.New(timeline.Linear(0, 0, 1, 1), clock.NewManual(0), g, nil, timeline.Options{})
	tl.Play()
	tl.Step(0.5)

	want := colorful.Hcl(180, 0.4, 0.3)
	if target.color.DistanceRgb(want) > 1e-9 {
		t.Errorf("expected %v, got %v", want.Hex(), target.color.Hex())
	}

	target.invalid = true
	tl.Step(0.1)
	if tl.State() != timeline.Paused {
		t.Errorf("expected timeline paused, got %v", tl.State())
	}
}
