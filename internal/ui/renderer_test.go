package ui

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

func newSimScreen(t *testing.T, w, h int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	screen, err := NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom error: %v", err)
	}
	sim.SetSize(w, h)
	return screen, sim
}

func generate(t *testing.T) *world.Dungeon {
	t.Helper()
	p := world.DefaultParams()
	p.Seed = 12345
	d, err := world.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return d
}

func TestScroll(t *testing.T) {
	tests := []struct {
		pos, total, visible int
		want                int
	}{
		{5, 39, 80, 0},
		{0, 100, 20, 0},
		{50, 100, 20, 40},
		{99, 100, 20, 80},
	}

	for _, tt := range tests {
		if got := scroll(tt.pos, tt.total, tt.visible); got != tt.want {
			t.Errorf("scroll(%d, %d, %d) = %d, want %d", tt.pos, tt.total, tt.visible, got, tt.want)
		}
	}
}

func TestRenderDrawsMap(t *testing.T) {
	d := generate(t)
	screen, sim := newSimScreen(t, 80, 45)
	defer screen.Close()

	r := NewRenderer(screen, presets.MustLoadPalette(""))
	center := d.Rooms()[0].Center()
	r.Render(d, View{Cursor: center, ShowSecrets: true, Status: "seed 12345"})

	cells, w, _ := sim.GetContents()
	at := func(x, y int) rune {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			return ' '
		}
		return runes[0]
	}

	if got := at(center.C, center.R); got != '@' {
		t.Errorf("cursor cell = %q, want '@'", got)
	}
	for _, door := range d.Doors() {
		if got := at(door.Col, door.Row); got != world.GlyphDoor {
			t.Errorf("door (%d,%d) drawn as %q", door.Row, door.Col, got)
		}
	}

	var status strings.Builder
	for x := 0; x < len("seed 12345"); x++ {
		status.WriteRune(at(x, 44))
	}
	if status.String() != "seed 12345" {
		t.Errorf("status line = %q", status.String())
	}
}

func TestInspect(t *testing.T) {
	d := generate(t)
	room := d.Rooms()[0]

	got := Inspect(d, room.Center())
	if !strings.Contains(got, "room 1") {
		t.Errorf("Inspect(room center) = %q, want room 1", got)
	}

	if len(d.Doors()) > 0 {
		door := d.Doors()[0]
		if got := Inspect(d, door.Coord()); !strings.Contains(got, door.Type()) {
			t.Errorf("Inspect(door) = %q, want %q", got, door.Type())
		}
	}
}
