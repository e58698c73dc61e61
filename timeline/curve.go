package timeline

import (
	"math"
	"sort"

	"github.com/fogleman/ease"
	"github.com/matt-g-everett/ledanim/util"
	"github.com/pkg/errors"
)

// WrapMode controls how a Curve is evaluated outside its key range.
type WrapMode int

const (
	// WrapClamp holds the first/last key value forever.
	WrapClamp WrapMode = iota
	// WrapLoop repeats the key range.
	WrapLoop
	// WrapPingPong repeats the key range, reversing every other cycle.
	WrapPingPong
)

func (m WrapMode) String() string {
	switch m {
	case WrapClamp:
		return "clamp"
	case WrapLoop:
		return "loop"
	case WrapPingPong:
		return "pingpong"
	default:
		return "unknown"
	}
}

// ErrUnknownEase is returned for keyframes naming an easing function that
// does not exist.
var ErrUnknownEase = errors.New("unknown ease")

// EaseLinear is the easing used when a keyframe does not name one.
const EaseLinear = "linear"

var easings = map[string]func(float64) float64{
	EaseLinear:     ease.Linear,
	"constant":     constant,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// constant holds the segment's start value until the next key.
func constant(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 0
}

// Keyframe is a point on a Curve. Ease names the easing applied on the
// segment from this key to the next one.
type Keyframe struct {
	Time  float64 `yaml:"time" json:"time"`
	Value float64 `yaml:"value" json:"value"`
	Ease  string  `yaml:"ease,omitempty" json:"ease,omitempty"`
}

type key struct {
	Keyframe
	ease func(float64) float64
}

// Curve is a piecewise function of time built from keyframes.
type Curve struct {
	PreWrap  WrapMode
	PostWrap WrapMode

	keys []key
}

// NewCurve creates a Curve from keys. Keys are sorted by time; keys sharing
// a time produce a step.
func NewCurve(keys ...Keyframe) (*Curve, error) {
	c := new(Curve)
	c.keys = make([]key, 0, len(keys))
	for i, k := range keys {
		if math.IsNaN(k.Time) || math.IsInf(k.Time, 0) || math.IsNaN(k.Value) || math.IsInf(k.Value, 0) {
			return nil, errors.Errorf("key %d: time and value must be finite", i)
		}

		name := k.Ease
		if name == "" {
			name = EaseLinear
		}
		fn, ok := easings[name]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownEase, "key %d: %q", i, k.Ease)
		}
		c.keys = append(c.keys, key{k, fn})
	}

	sort.SliceStable(c.keys, func(i, j int) bool {
		return c.keys[i].Time < c.keys[j].Time
	})

	return c, nil
}

// Linear creates a two-key curve with linear interpolation.
func Linear(t0 float64, v0 float64, t1 float64, v1 float64) *Curve {
	c, _ := NewCurve(Keyframe{Time: t0, Value: v0}, Keyframe{Time: t1, Value: v1})
	return c
}

// EaseInOut creates a two-key curve that starts and ends slowly.
func EaseInOut(t0 float64, v0 float64, t1 float64, v1 float64) *Curve {
	c, _ := NewCurve(Keyframe{Time: t0, Value: v0, Ease: "inOutQuad"}, Keyframe{Time: t1, Value: v1})
	return c
}

// Len returns the number of keys.
func (c *Curve) Len() int {
	return len(c.keys)
}

// Key returns the i-th key in time order.
func (c *Curve) Key(i int) Keyframe {
	return c.keys[i].Keyframe
}

// Bounds returns the times of the first and last key, or 0, 0 for an
// empty curve.
func (c *Curve) Bounds() (start float64, end float64) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Time, c.keys[len(c.keys)-1].Time
}

// Evaluate returns the curve value at t, applying the wrap modes outside the
// key range.
func (c *Curve) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}

	first := c.keys[0]
	last := c.keys[n-1]
	if n == 1 || first.Time == last.Time {
		if t < first.Time {
			return first.Value
		}
		return last.Value
	}

	if t < first.Time {
		t = c.wrap(c.PreWrap, t, first.Time, last.Time)
	} else if t > last.Time {
		t = c.wrap(c.PostWrap, t, first.Time, last.Time)
	}

	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	// First key strictly after t; the segment starts one before it.
	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t })
	k0 := c.keys[i-1]
	k1 := c.keys[i]
	u := (t - k0.Time) / (k1.Time - k0.Time)
	return util.LerpUnclamped(k0.Value, k1.Value, k0.ease(u))
}

func (c *Curve) wrap(mode WrapMode, t float64, start float64, end float64) float64 {
	length := end - start
	switch mode {
	case WrapLoop:
		offset := math.Mod(t-start, length)
		if offset < 0 {
			offset += length
		}
		return start + offset
	case WrapPingPong:
		offset := math.Mod(t-start, 2*length)
		if offset < 0 {
			offset += 2 * length
		}
		if offset > length {
			offset = 2*length - offset
		}
		return start + offset
	default:
		return util.Clamp(t, start, end)
	}
}
