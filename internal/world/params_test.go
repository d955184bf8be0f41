package world

import (
	"errors"
	"testing"
)

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *Params)
		valid  bool
	}{
		{"defaults", func(p *Params) {}, true},
		{"even rows", func(p *Params) { p.Rows = 40 }, false},
		{"even cols", func(p *Params) { p.Cols = 38 }, false},
		{"too small", func(p *Params) { p.Rows, p.Cols = 3, 3 }, false},
		{"zero room size", func(p *Params) { p.RoomMin = 0 }, false},
		{"dead ends over 100", func(p *Params) { p.RemoveDeadends = 101 }, false},
		{"negative dead ends", func(p *Params) { p.RemoveDeadends = -1 }, false},
		{"negative stairs", func(p *Params) { p.Stairs = -2 }, false},
		{"unknown layout", func(p *Params) { p.Layout = Layout(42) }, false},
		{"unknown room layout", func(p *Params) { p.RoomLayout = RoomLayout(9) }, false},
		{"unknown corridor", func(p *Params) { p.Corridor = CorridorLayout(-1) }, false},
		{"minimum grid", func(p *Params) { p.Rows, p.Cols = 5, 5 }, true},
		{"maximum grid", func(p *Params) { p.Rows, p.Cols = MaxDimension, MaxDimension }, true},
		{"too many rows", func(p *Params) { p.Rows = MaxDimension + 2 }, false},
		{"too many cols", func(p *Params) { p.Cols = 99999 }, false},
	}

	for _, tt := range tests {
		p := DefaultParams()
		tt.modify(&p)
		err := p.Validate()
		if tt.valid && err != nil {
			t.Errorf("%s: Validate() = %v, want nil", tt.name, err)
		}
		if !tt.valid && !errors.Is(err, ErrInvalidParams) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidParams", tt.name, err)
		}
	}
}

func TestParamsNormalize(t *testing.T) {
	p := DefaultParams()
	p.RoomMin, p.RoomMax = 9, 3

	got := p.Normalize()
	if got.RoomMin != 3 || got.RoomMax != 9 {
		t.Errorf("Normalize() room range = %d..%d, want 3..9", got.RoomMin, got.RoomMax)
	}

	d, err := NewDungeon(p)
	if err != nil {
		t.Fatalf("NewDungeon with swapped range: %v", err)
	}
	if d.Params().RoomMin != 3 {
		t.Errorf("dungeon kept swapped range %d..%d", d.Params().RoomMin, d.Params().RoomMax)
	}
}

func TestNewDungeonRejectsEvenGrid(t *testing.T) {
	p := DefaultParams()
	p.Rows = 40
	if _, err := NewDungeon(p); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("NewDungeon(rows=40) error = %v, want ErrInvalidParams", err)
	}
}

func TestRoomSizing(t *testing.T) {
	tests := []struct {
		min, max    int
		base, radix int
	}{
		{3, 9, 2, 4},
		{1, 3, 1, 2},
		{5, 15, 3, 6},
		{4, 4, 2, 1},
	}

	for _, tt := range tests {
		p := Params{RoomMin: tt.min, RoomMax: tt.max}
		if got := p.roomBase(); got != tt.base {
			t.Errorf("roomBase(%d..%d) = %d, want %d", tt.min, tt.max, got, tt.base)
		}
		if got := p.roomRadix(); got != tt.radix {
			t.Errorf("roomRadix(%d..%d) = %d, want %d", tt.min, tt.max, got, tt.radix)
		}
	}
}

func TestParseLayouts(t *testing.T) {
	if l, err := ParseLayout("Round"); err != nil || l != LayoutRound {
		t.Errorf("ParseLayout(Round) = %v, %v", l, err)
	}
	if _, err := ParseLayout("hexagon"); !errors.Is(err, ErrUnknownLayout) {
		t.Errorf("ParseLayout(hexagon) error = %v", err)
	}
	if l, err := ParseRoomLayout("packed"); err != nil || l != RoomsPacked {
		t.Errorf("ParseRoomLayout(packed) = %v, %v", l, err)
	}
	if l, err := ParseCorridorLayout("labyrinth"); err != nil || l.Straightness() != 0 {
		t.Errorf("ParseCorridorLayout(labyrinth) = %v, %v", l, err)
	}
	if l, _ := ParseCorridorLayout("straight"); l.Straightness() != 100 {
		t.Errorf("straight corridors Straightness() = %d", l.Straightness())
	}
}
