package preview

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/stream"
)

func TestScreen_SendWrapsPixels(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	defer sim.Fini()
	sim.SetSize(4, 3)

	p := newScreenFrom(sim)
	f := stream.NewFrame(6)
	f.Set(0, colorful.Color{R: 1})
	f.Set(5, colorful.Color{B: 1})

	if err := p.Send(f); err != nil {
		t.Fatal(err)
	}

	_, _, style, _ := sim.GetContent(0, 0)
	if style != Style(f, 0) {
		t.Errorf("pixel 0 style = %v, want %v", style, Style(f, 0))
	}
	_, _, style, _ = sim.GetContent(1, 1)
	if style != Style(f, 5) {
		t.Errorf("pixel 5 should wrap to (1,1), got style %v", style)
	}
}

func TestScreen_SendClipsToHeight(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	defer sim.Fini()
	sim.SetSize(2, 1)

	p := newScreenFrom(sim)
	if err := p.Send(stream.NewFrame(10)); err != nil {
		t.Fatal(err)
	}
}

func TestStyle_ClampsOvershoot(t *testing.T) {
	f := stream.NewFrame(1)
	f.Set(0, colorful.Color{R: 1.4, G: -0.3, B: 0.5})
	want := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 0, 128))
	if got := Style(f, 0); got != want {
		t.Errorf("Style = %v, want %v", got, want)
	}
}
