package world

import "testing"

func TestHalfRealRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			h := Half{I: i, J: j}
			if got := h.Real().Half(); got != h {
				t.Errorf("Half%v.Real().Half() = %v", h, got)
			}
		}
	}
}

func TestHalfRectReal(t *testing.T) {
	tests := []struct {
		half HalfRect
		want RealRect
	}{
		{HalfRect{I: 0, J: 0, Height: 1, Width: 1}, RealRect{R1: 1, C1: 1, R2: 1, C2: 1}},
		{HalfRect{I: 2, J: 3, Height: 2, Width: 4}, RealRect{R1: 5, C1: 7, R2: 7, C2: 13}},
		{HalfRect{I: 1, J: 0, Height: 5, Width: 2}, RealRect{R1: 3, C1: 1, R2: 11, C2: 3}},
	}

	for _, tt := range tests {
		got := tt.half.Real()
		if got != tt.want {
			t.Errorf("%+v.Real() = %+v, want %+v", tt.half, got, tt.want)
		}
		if back := got.Half(); back != tt.half {
			t.Errorf("%+v.Half() = %+v, want %+v", got, back, tt.half)
		}
	}
}

func TestDirections(t *testing.T) {
	tests := []struct {
		dir      Direction
		dr, dc   int
		opposite Direction
		name     string
	}{
		{North, -1, 0, South, "north"},
		{South, 1, 0, North, "south"},
		{West, 0, -1, East, "west"},
		{East, 0, 1, West, "east"},
	}

	for _, tt := range tests {
		dr, dc := tt.dir.Delta()
		if dr != tt.dr || dc != tt.dc {
			t.Errorf("%s.Delta() = (%d,%d), want (%d,%d)", tt.name, dr, dc, tt.dr, tt.dc)
		}
		if got := tt.dir.Opposite(); got != tt.opposite {
			t.Errorf("%s.Opposite() = %s, want %s", tt.name, got, tt.opposite)
		}
		if got := tt.dir.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
	}
}

func TestStep(t *testing.T) {
	h := Half{I: 3, J: 4}
	if got := h.Step(East).Real(); got != (Real{R: 7, C: 11}) {
		t.Errorf("Step(East).Real() = %v", got)
	}

	p := Real{R: 5, C: 5}
	if got := p.Step(North).Step(West); got != (Real{R: 4, C: 4}) {
		t.Errorf("Step(North).Step(West) = %v", got)
	}
}
