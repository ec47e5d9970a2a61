package layout

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBreakpoints(t *testing.T) {
	t.Run("CardWidth", func(t *testing.T) {
		tests := []struct {
			vw   int
			want int
		}{
			{0, 280}, {500, 280}, {767, 280},
			{768, 400}, {900, 400}, {1023, 400},
			{1024, 480}, {1400, 480},
		}
		for _, tt := range tests {
			if got := CardWidth(tt.vw); got != tt.want {
				t.Errorf("CardWidth(%d) = %d, want %d", tt.vw, got, tt.want)
			}
		}
	})

	t.Run("CardHeight", func(t *testing.T) {
		if got := CardHeight(500); got != 420 {
			t.Errorf("expected 420, got %d", got)
		}
		if got := CardHeight(900); got != 600 {
			t.Errorf("expected 600, got %d", got)
		}
		if got := CardHeight(1400); got != 720 {
			t.Errorf("expected 720, got %d", got)
		}
	})

	t.Run("GridWidth", func(t *testing.T) {
		if got := GridWidth(500, 0); got != 1400 {
			t.Errorf("expected 1400, got %d", got)
		}
		if got := GridWidth(1400, 3); got != 1440 {
			t.Errorf("expected 1440, got %d", got)
		}
	})

	t.Run("Rows", func(t *testing.T) {
		tests := []struct{ n, want int }{{0, 0}, {1, 1}, {5, 1}, {6, 2}, {20, 4}}
		for _, tt := range tests {
			if got := Rows(tt.n, 5); got != tt.want {
				t.Errorf("Rows(%d) = %d, want %d", tt.n, got, tt.want)
			}
		}
	})
}

func TestCellMetrics(t *testing.T) {
	m := NewCellMetrics(0, 0)
	if m.Width != 8 || m.Height != 16 {
		t.Fatalf("expected 8x16 defaults, got %+v", m)
	}

	vp := m.Viewport(120, 40)
	if vp.Width != 960 || vp.Height != 640 {
		t.Errorf("unexpected viewport %+v", vp)
	}
	if vp.CardWidth() != 400 {
		t.Errorf("expected 400px card at 960px, got %d", vp.CardWidth())
	}

	x, y := m.Point(10, 3)
	if x != 80 || y != 48 {
		t.Errorf("expected (80, 48), got (%v, %v)", x, y)
	}

	if got := m.Cols(400); got != 50 {
		t.Errorf("expected 50 cols, got %d", got)
	}
	if got := m.Lines(600); got != 38 {
		t.Errorf("expected 600/16 rounded to 38 lines, got %d", got)
	}
	if got := m.Col(-1); got != -1 {
		t.Errorf("expected negative pixel to floor to -1, got %d", got)
	}
	if got := m.Line(47); got != 2 {
		t.Errorf("expected line 2, got %d", got)
	}
}

func TestRemap(t *testing.T) {
	t.Run("Endpoints", func(t *testing.T) {
		if got := Remap(10, 10, 20, 0, 100, false); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
		if got := Remap(20, 10, 20, 0, 100, false); got != 100 {
			t.Errorf("expected 100, got %v", got)
		}
		if got := Remap(15, 10, 20, 0, -100, false); got != -50 {
			t.Errorf("expected -50, got %v", got)
		}
	})

	t.Run("Extrapolates", func(t *testing.T) {
		if got := Remap(0, 10, 20, 0, 100, false); got != -100 {
			t.Errorf("expected -100, got %v", got)
		}
		if got := Remap(30, 10, 20, 0, 100, false); got != 200 {
			t.Errorf("expected 200, got %v", got)
		}
	})

	t.Run("Clamps", func(t *testing.T) {
		if got := Remap(0, 10, 20, 0, 100, true); got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
		if got := Remap(30, 10, 20, 0, 100, true); got != 100 {
			t.Errorf("expected 100, got %v", got)
		}
	})

	t.Run("Degenerate Domain", func(t *testing.T) {
		if got := Remap(5, 0, 0, 7, 100, false); got != 7 {
			t.Errorf("expected outMin, got %v", got)
		}
	})
}

func TestTranslate(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	width, height := 2400.0, 1440.0

	t.Run("Domain Start Is Origin", func(t *testing.T) {
		off := Translate(0.12*1000, 0.10*800, vp, width, height, false)
		if !approx(off.TranslateX, 0) || !approx(off.TranslateY, 0) {
			t.Errorf("expected origin, got %+v", off)
		}
	})

	t.Run("Domain End Is Full Pan", func(t *testing.T) {
		off := Translate(0.88*1000, 0.90*800, vp, width, height, false)
		if !approx(off.TranslateX, 1000-width) {
			t.Errorf("expected %v, got %v", 1000-width, off.TranslateX)
		}
		if !approx(off.TranslateY, 800-height) {
			t.Errorf("expected %v, got %v", 800-height, off.TranslateY)
		}
	})

	t.Run("Outside Domain", func(t *testing.T) {
		off := Translate(0, 0, vp, width, height, false)
		if off.TranslateX <= 0 {
			t.Errorf("expected positive extrapolation left of the domain, got %v", off.TranslateX)
		}
		clamped := Translate(0, 0, vp, width, height, true)
		if !clamped.IsZero() {
			t.Errorf("expected clamped origin, got %+v", clamped)
		}
	})
}

func TestSpring(t *testing.T) {
	t.Run("Params", func(t *testing.T) {
		p := SpringParams{Stiffness: 16, Damping: 8, Mass: 1}
		if !approx(p.AngularFrequency(), 4) {
			t.Errorf("expected ω=4, got %v", p.AngularFrequency())
		}
		if !approx(p.DampingRatio(), 1) {
			t.Errorf("expected ζ=1, got %v", p.DampingRatio())
		}
		if !approx(SpringParams{Stiffness: 16, Damping: 8}.AngularFrequency(), 4) {
			t.Error("expected zero mass to default to 1")
		}
	})

	t.Run("Converges", func(t *testing.T) {
		s := NewSpring(60, DefaultSpringX)
		s.SetTarget(100)

		for range 600 {
			s.Step()
			if s.Settled() {
				break
			}
		}
		if !s.Settled() || s.Value() != 100 {
			t.Errorf("expected spring at rest on 100, got %v", s.Value())
		}
	})

	t.Run("Moves Toward Target", func(t *testing.T) {
		s := NewSpring(60, DefaultSpringY)
		s.SetTarget(50)
		first := s.Step()
		if first <= 0 || first >= 50 {
			t.Errorf("expected first step between 0 and 50, got %v", first)
		}
	})

	t.Run("Snap", func(t *testing.T) {
		s := NewSpring(60, DefaultSpringX)
		s.SetTarget(100)
		s.Step()
		s.Snap(3)
		if s.Value() != 3 || s.Target() != 3 || !s.Settled() {
			t.Errorf("expected spring at rest on 3, got %v -> %v", s.Value(), s.Target())
		}
	})
}

func TestParallax(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	settle := func(p *Parallax) {
		for range 2000 {
			if !p.Step() {
				return
			}
		}
	}

	t.Run("Origin Before First Move", func(t *testing.T) {
		p := NewParallax(ParallaxOpts{FPS: 60})
		p.Resize(vp)
		if !p.Offset().IsZero() || p.Tracking() {
			t.Errorf("expected untracked origin, got %+v", p.Offset())
		}
		if p.Step() {
			t.Error("expected no animation without a pointer")
		}
	})

	t.Run("First Move Eases From Origin", func(t *testing.T) {
		p := NewParallax(ParallaxOpts{FPS: 60})
		p.Resize(vp)
		p.Move(PointerOffset{Left: 880, Top: 720, Width: 2400, Height: 1440})

		if off := p.Offset(); !approx(off.TranslateX, 0) || !approx(off.TranslateY, 0) {
			t.Errorf("expected origin right after first move, got %+v", off)
		}
		if !p.Step() {
			t.Error("expected springs to be moving")
		}
		if off := p.Offset(); off.TranslateX >= 0 {
			t.Errorf("expected pan to start toward the target, got %+v", off)
		}
	})

	t.Run("Settles On Target", func(t *testing.T) {
		p := NewParallax(ParallaxOpts{FPS: 60})
		p.Resize(vp)
		p.Move(PointerOffset{Left: 880, Top: 720, Width: 2400, Height: 1440})
		settle(p)

		off := p.Offset()
		if !approx(off.TranslateX, 1000-2400) || !approx(off.TranslateY, 800-1440) {
			t.Errorf("expected full pan, got %+v", off)
		}
		if off != p.Target() {
			t.Errorf("expected offset %+v to equal target %+v", off, p.Target())
		}
	})

	t.Run("Resize Resets Offset", func(t *testing.T) {
		p := NewParallax(ParallaxOpts{FPS: 60})
		p.Resize(vp)
		p.Move(PointerOffset{Left: 500, Top: 400, Width: 2400, Height: 1440})
		settle(p)
		if p.Offset().IsZero() {
			t.Fatal("expected non-zero offset before resize")
		}

		p.Resize(Viewport{Width: 600, Height: 400})
		if !p.Offset().IsZero() {
			t.Errorf("expected (0,0) after resize, got %+v", p.Offset())
		}
		if p.Viewport().Width != 600 {
			t.Errorf("expected viewport to be recorded, got %+v", p.Viewport())
		}
	})

	t.Run("Clamp", func(t *testing.T) {
		p := NewParallax(ParallaxOpts{FPS: 60, Clamp: true})
		p.Resize(vp)
		p.Move(PointerOffset{Left: 999, Top: 799, Width: 2400, Height: 1440})
		settle(p)
		if got := p.Offset(); !approx(got.TranslateX, 1000-2400) {
			t.Errorf("expected clamped full pan, got %+v", got)
		}
	})
}
