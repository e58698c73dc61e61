package effect

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/pkg/errors"
)

// BlendSpace selects the colour space used to interpolate.
type BlendSpace string

const (
	// BlendRgb interpolates linearly in RGB.
	BlendRgb BlendSpace = "rgb"
	// BlendHcl interpolates hue, chroma and luminance.
	BlendHcl BlendSpace = "hcl"
	// BlendLab interpolates in CIE L*a*b*.
	BlendLab BlendSpace = "lab"
	// BlendLuv interpolates in CIE L*u*v*.
	BlendLuv BlendSpace = "luv"
)

// ParseBlendSpace returns the BlendSpace named s. An empty name is RGB.
func ParseBlendSpace(s string) (BlendSpace, error) {
	switch BlendSpace(s) {
	case "", BlendRgb:
		return BlendRgb, nil
	case BlendHcl, BlendLab, BlendLuv:
		return BlendSpace(s), nil
	}
	return "", errors.Errorf("unknown blend space %q", s)
}

// ColorTarget receives blended colours.
type ColorTarget interface {
	SetColor(c colorful.Color)
	Valid() bool
}

// ColorBlend maps a sample onto a colour between Min and Max.
type ColorBlend struct {
	owner

	// Min is the colour at sample 0.
	Min colorful.Color
	// Max is the colour at sample 1.
	Max colorful.Color
	// Space is the interpolation colour space.
	Space BlendSpace
	// Clamp limits samples to [0, 1] before blending. Without it, curves that
	// overshoot extrapolate past Min and Max.
	Clamp bool

	target ColorTarget
}

// NewColorBlend creates a ColorBlend writing to target. The name is used in
// log messages.
func NewColorBlend(name string, target ColorTarget, lo colorful.Color, hi colorful.Color) *ColorBlend {
	b := new(ColorBlend)
	b.name = name
	b.target = target
	b.Min = lo
	b.Max = hi
	b.Space = BlendRgb
	return b
}

// Bind implements timeline.Binder.
func (b *ColorBlend) Bind(p timeline.Pauser) {
	if b != nil {
		b.bind(p)
	}
}

// Setup checks that the target is usable.
func (b *ColorBlend) Setup() error {
	if b == nil {
		return ErrNilEffect
	}
	if b.target == nil || !b.target.Valid() {
		return errors.Errorf("%s: color target not set", b.name)
	}
	return nil
}

// Animate implements timeline.Effect.
func (b *ColorBlend) Animate(value float64) {
	if b.target == nil || !b.target.Valid() {
		b.fail("color target")
		return
	}

	b.target.SetColor(b.Blend(value))
}

// Blend returns the colour for a sample value.
func (b *ColorBlend) Blend(value float64) colorful.Color {
	if b.Clamp {
		value = util.Clamp01(value)
	}

	switch b.Space {
	case BlendHcl:
		return b.Min.BlendHcl(b.Max, value)
	case BlendLab:
		return b.Min.BlendLab(b.Max, value)
	case BlendLuv:
		return b.Min.BlendLuv(b.Max, value)
	default:
		return colorful.Color{
			R: util.LerpUnclamped(b.Min.R, b.Max.R, value),
			G: util.LerpUnclamped(b.Min.G, b.Max.G, value),
			B: util.LerpUnclamped(b.Min.B, b.Max.B, value),
		}
	}
}
