package effect

import (
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/timeline"
	"github.com/pkg/errors"
)

// GradientStop places a hue at a position in [0, 1] along a gradient.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// GetColor gets a colour at the specified point on the look-up table.
// Points outside the table take the hue of the nearest end stop.
func (g GradientTable) GetColor(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Hcl(0, c, l)
	}
	if t <= g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l)
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c2.Hue, c, l)
			}
			// We are in between c1 and c2. Go blend them!
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l)
		}
	}

	// Nothing found? Means we're past the last gradient keypoint.
	return colorful.Hcl(g[len(g)-1].Hue, c, l)
}

// Gradient colours its target by looking the sample up on a hue gradient.
type Gradient struct {
	owner

	Table     GradientTable
	Chroma    float64
	Luminance float64

	target ColorTarget
}

// NewGradient creates a Gradient writing to target. Stops are sorted by
// position.
func NewGradient(name string, target ColorTarget, stops []GradientStop, chroma float64, luminance float64) *Gradient {
	g := new(Gradient)
	g.name = name
	g.target = target
	g.Table = append(GradientTable(nil), stops...)
	sort.SliceStable(g.Table, func(i, j int) bool { return g.Table[i].Pos < g.Table[j].Pos })
	g.Chroma = chroma
	g.Luminance = luminance
	return g
}

// Bind implements timeline.Binder.
func (g *Gradient) Bind(p timeline.Pauser) {
	if g != nil {
		g.bind(p)
	}
}

// Setup checks that the target and table are usable.
func (g *Gradient) Setup() error {
	if g == nil {
		return ErrNilEffect
	}
	if g.target == nil || !g.target.Valid() {
		return errors.Errorf("%s: color target not set", g.name)
	}
	if len(g.Table) < 2 {
		return errors.Errorf("%s: gradient needs at least two stops", g.name)
	}
	return nil
}

// Animate implements timeline.Effect.
func (g *Gradient) Animate(value float64) {
	if g.target == nil || !g.target.Valid() {
		g.fail("color target")
		return
	}

	g.target.SetColor(g.Table.GetColor(value, g.Chroma, g.Luminance))
}
