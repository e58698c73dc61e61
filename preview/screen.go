// Package preview mirrors streamed frames onto a terminal.
package preview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matt-g-everett/ledanim/stream"
	"github.com/pkg/errors"
)

// Screen draws each pixel as one terminal cell, wrapping at the screen width.
type Screen struct {
	screen tcell.Screen
}

// NewScreen initialises the terminal.
func NewScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init screen")
	}
	return newScreenFrom(s), nil
}

func newScreenFrom(s tcell.Screen) *Screen {
	p := new(Screen)
	p.screen = s
	p.screen.HideCursor()
	p.screen.Clear()
	return p
}

// Send implements stream.Sink.
func (p *Screen) Send(f *stream.Frame) error {
	width, height := p.screen.Size()
	if width <= 0 || height <= 0 {
		return nil
	}

	p.screen.Clear()
	for i := 0; i < f.Len(); i++ {
		x, y := i%width, i/width
		if y >= height {
			break
		}
		p.screen.SetContent(x, y, ' ', nil, Style(f, i))
	}
	p.screen.Show()
	return nil
}

// Style returns the cell style for pixel i of f.
func Style(f *stream.Frame, i int) tcell.Style {
	r, g, b := f.At(i).Clamped().RGB255()
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
}

// Events blocks reading terminal input and calls quit when the user presses
// q, Escape or Ctrl-C. It returns after the screen is closed.
func (p *Screen) Events(quit func()) {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				quit()
			}
		case *tcell.EventResize:
			p.screen.Sync()
		}
	}
}

// Close restores the terminal.
func (p *Screen) Close() {
	p.screen.Fini()
}
