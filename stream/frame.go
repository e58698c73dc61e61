package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxPixels is the largest frame the wire format can describe.
const MaxPixels = math.MaxUint16

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > MaxPixels {
		n = MaxPixels
	}
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// At returns pixel i.
func (f *Frame) At(i int) colorful.Color {
	return f.pixels[i]
}

// Set sets pixel i. Out of range indices are ignored.
func (f *Frame) Set(i int, c colorful.Color) {
	if i < 0 || i >= len(f.pixels) {
		return
	}
	f.pixels[i] = c
}

// Fill sets pixels [from, to) to c, clipped to the frame.
func (f *Frame) Fill(from int, to int, c colorful.Color) {
	if from < 0 {
		from = 0
	}
	if to > len(f.pixels) {
		to = len(f.pixels)
	}
	for i := from; i < to; i++ {
		f.pixels[i] = c
	}
}

// InterpolateFrame merges two frames of equal length.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := 0; i < len(f.pixels) && i < len(f2.pixels); i++ {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.pixels[i], transitionPoint)
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little endian uint16
// pixel count followed by one RGB byte triple per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
