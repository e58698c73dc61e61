package clock

import (
	"math"
	"testing"
	"time"
)

func TestManual_Advance(t *testing.T) {
	m := NewManual(0)
	m.Advance(0.25)
	m.Advance(0.5)

	if m.Now() != 0.75 {
		t.Errorf("expected now 0.75, got %v", m.Now())
	}
	if m.DeltaTime() != 0.5 {
		t.Errorf("expected delta 0.5, got %v", m.DeltaTime())
	}
}

func TestManual_Tick(t *testing.T) {
	m := NewManual(0.1)
	for i := 0; i < 10; i++ {
		m.Tick()
	}
	if math.Abs(m.Now()-1.0) > 1e-9 {
		t.Errorf("expected now 1.0 after ten ticks, got %v", m.Now())
	}
	if m.DeltaTime() != 0.1 {
		t.Errorf("expected delta 0.1, got %v", m.DeltaTime())
	}
}

func TestManual_SetKeepsDelta(t *testing.T) {
	m := NewManual(0)
	m.Advance(0.2)
	m.Set(30)
	if m.Now() != 30 || m.DeltaTime() != 0.2 {
		t.Errorf("unexpected state now=%v delta=%v", m.Now(), m.DeltaTime())
	}
}

func TestWall_Tick(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	w := newWallWith(func() time.Time { return now })

	now = now.Add(40 * time.Millisecond)
	w.Tick()
	if math.Abs(w.DeltaTime()-0.04) > 1e-9 {
		t.Errorf("expected delta 0.04, got %v", w.DeltaTime())
	}

	now = now.Add(60 * time.Millisecond)
	w.Tick()
	if math.Abs(w.Now()-0.1) > 1e-9 {
		t.Errorf("expected now 0.1, got %v", w.Now())
	}
	if math.Abs(w.DeltaTime()-0.06) > 1e-9 {
		t.Errorf("expected delta 0.06, got %v", w.DeltaTime())
	}
}

func TestWall_BackwardsClockClampsDelta(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := base
	w := newWallWith(func() time.Time { return now })

	now = now.Add(-time.Second)
	w.Tick()
	if w.DeltaTime() != 0 {
		t.Errorf("expected zero delta, got %v", w.DeltaTime())
	}
}
