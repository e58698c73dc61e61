package scene

import (
	"github.com/matt-g-everett/ledanim/effect"
	"github.com/matt-g-everett/ledanim/idle"
	"github.com/matt-g-everett/ledanim/timeline"
)

// Config lists the layers and idle gates of a scene. Fade is the length in
// seconds of the cross-fade played when a layer appears or disappears; zero
// switches instantly.
type Config struct {
	Layers []LayerConfig `yaml:"layers"`
	Gates  []GateConfig  `yaml:"gates"`
	Fade   float64       `yaml:"fade"`
}

// LayerConfig describes one animated layer. Exactly one of ColorBlend,
// Gradient and Slide must be set.
type LayerConfig struct {
	Name   string `yaml:"name"`
	Order  int    `yaml:"order"`
	Active bool   `yaml:"active"`

	timeline.Options `yaml:",inline"`

	Curve      []timeline.Keyframe `yaml:"curve"`
	ColorBlend *ColorBlendConfig   `yaml:"colorBlend"`
	Gradient   *GradientConfig     `yaml:"gradient"`
	Slide      *SlideConfig        `yaml:"slide"`
}

func (lc LayerConfig) effects() int {
	n := 0
	if lc.ColorBlend != nil {
		n++
	}
	if lc.Gradient != nil {
		n++
	}
	if lc.Slide != nil {
		n++
	}
	return n
}

// ColorBlendConfig paints pixels [From, To) with a colour blended between
// Min and Max.
type ColorBlendConfig struct {
	From  int    `yaml:"from"`
	To    int    `yaml:"to"`
	Min   string `yaml:"min"`
	Max   string `yaml:"max"`
	Space string `yaml:"space"`
	Clamp bool   `yaml:"clamp"`
}

// GradientConfig paints pixels [From, To) with the hue found at the sampled
// position along Stops.
type GradientConfig struct {
	From      int                   `yaml:"from"`
	To        int                   `yaml:"to"`
	Stops     []effect.GradientStop `yaml:"stops"`
	Chroma    float64               `yaml:"chroma"`
	Luminance float64               `yaml:"luminance"`
}

// SlideConfig paints a Width pixel segment of Color centred on a position
// slid between Start and End. Only the X coordinate maps onto the strip.
type SlideConfig struct {
	Width int         `yaml:"width"`
	Color string      `yaml:"color"`
	Start effect.Vec3 `yaml:"start"`
	End   effect.Vec3 `yaml:"end"`
}

// GateConfig holds a layer's playback until the frame rate settles.
type GateConfig struct {
	Layer       string `yaml:"layer"`
	idle.Config `yaml:",inline"`
}
