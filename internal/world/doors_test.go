package world

import (
	"testing"
)

// scriptedRand replays fixed draws and leaves shuffles untouched.
type scriptedRand struct {
	draws []int
	calls int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.draws[s.calls%len(s.draws)]
	s.calls++
	return v % n
}

func (s *scriptedRand) Shuffle(n int, swap func(i, j int)) {}

func newTestDungeon(t *testing.T, opts ...Option) *Dungeon {
	t.Helper()
	d, err := NewDungeon(DefaultParams(), opts...)
	if err != nil {
		t.Fatalf("NewDungeon error: %v", err)
	}
	if err := d.initCells(); err != nil {
		t.Fatalf("initCells error: %v", err)
	}
	return d
}

func TestRollDoorKind(t *testing.T) {
	tests := []struct {
		roll int
		want DoorKind
	}{
		{0, DoorKindArch},
		{14, DoorKindArch},
		{15, DoorKindOpen},
		{59, DoorKindOpen},
		{60, DoorKindLocked},
		{74, DoorKindLocked},
		{75, DoorKindTrapped},
		{89, DoorKindTrapped},
		{90, DoorKindSecret},
		{99, DoorKindSecret},
		{100, DoorKindPortcullis},
		{109, DoorKindPortcullis},
	}

	for _, tt := range tests {
		d := newTestDungeon(t, WithRand(&scriptedRand{draws: []int{tt.roll}}))
		got, err := d.rollDoorKind()
		if err != nil {
			t.Fatalf("rollDoorKind(%d) error: %v", tt.roll, err)
		}
		if got != tt.want {
			t.Errorf("rollDoorKind(%d) = %s, want %s", tt.roll, got.Key(), tt.want.Key())
		}
	}
}

func TestDoorKindNames(t *testing.T) {
	tests := []struct {
		kind DoorKind
		key  string
		name string
	}{
		{DoorKindArch, "arch", "Archway"},
		{DoorKindOpen, "open", "Unlocked Door"},
		{DoorKindLocked, "lock", "Locked Door"},
		{DoorKindTrapped, "trap", "Trapped Door"},
		{DoorKindSecret, "secret", "Secret Door"},
		{DoorKindPortcullis, "portc", "Portcullis"},
	}

	total := 0
	for _, tt := range tests {
		if got := tt.kind.Key(); got != tt.key {
			t.Errorf("Key() = %q, want %q", got, tt.key)
		}
		if got := tt.kind.Name(); got != tt.name {
			t.Errorf("Name() = %q, want %q", got, tt.name)
		}
		if got, ok := DoorKindOf(Corridor | tt.kind.Flag()); !ok || got != tt.kind {
			t.Errorf("DoorKindOf(%s) = %v, %v", tt.key, got, ok)
		}
		total += doorDefs[tt.kind].weight
	}
	if total != doorRollRange {
		t.Errorf("door weights sum to %d, want %d", total, doorRollRange)
	}
}

func TestJudgeSill(t *testing.T) {
	d := newTestDungeon(t)
	d.connect = make(map[string]int)
	room := newRoom(2, RealRect{R1: 5, C1: 5, R2: 9, C2: 9})

	lone := sill{at: Real{R: 5, C: 7}, door: Real{R: 4, C: 7}, dir: North}
	if got := d.judgeSill(room, lone); got != sillAccept {
		t.Errorf("sill into open ground = %v, want accept", got)
	}

	shared := sill{at: Real{R: 7, C: 9}, door: Real{R: 7, C: 10}, dir: East, outID: 1}
	if got := d.judgeSill(room, shared); got != sillAccept {
		t.Errorf("first sill to room 1 = %v, want accept", got)
	}
	if got := d.judgeSill(room, shared); got != sillRetry {
		t.Errorf("second sill to room 1 = %v, want retry", got)
	}
	if d.connect["1,2"] != 2 {
		t.Errorf("connection count = %d, want 2", d.connect["1,2"])
	}

	d.connect["1,2"] = room.Perimeter() + 1
	if got := d.judgeSill(room, shared); got != sillReject {
		t.Errorf("sill past the pair limit = %v, want reject", got)
	}

	d.set(lone.door, Entrance|DoorSimple)
	if got := d.judgeSill(room, lone); got != sillRetry {
		t.Errorf("sill on an existing door = %v, want retry", got)
	}
}

func TestAllocOpens(t *testing.T) {
	d := newTestDungeon(t, WithRand(&scriptedRand{draws: []int{2}}))
	room := newRoom(1, RealRect{R1: 5, C1: 5, R2: 9, C2: 9})

	// 3x3 half-space nodes: 3 doors plus a draw in [0,3).
	if got := d.allocOpens(room); got != 5 {
		t.Errorf("allocOpens = %d, want 5", got)
	}
}

func TestCheckSill(t *testing.T) {
	d := newTestDungeon(t)
	d.emplaceRoomAt(t, HalfRect{I: 2, J: 2, Height: 2, Width: 2})
	d.emplaceRoomAt(t, HalfRect{I: 2, J: 4, Height: 2, Width: 2})
	first, second := d.Room(1), d.Room(2)

	s, ok := d.checkSill(first, Real{R: 5, C: 7}, East)
	if !ok {
		t.Fatal("sill between neighbouring rooms rejected")
	}
	if s.outID != second.ID {
		t.Errorf("outID = %d, want %d", s.outID, second.ID)
	}

	if _, ok := d.checkSill(first, Real{R: 5, C: 5}, West); !ok {
		t.Error("sill into open ground rejected")
	}

	d.set(Real{R: 5, C: 3}, Blocked)
	if _, ok := d.checkSill(first, Real{R: 5, C: 5}, West); ok {
		t.Error("sill onto a blocked cell accepted")
	}
}

// emplaceRoomAt carves a room at a fixed position for tests.
func (d *Dungeon) emplaceRoomAt(t *testing.T, h HalfRect) {
	t.Helper()
	before := len(d.rooms)
	rect := h.Real()
	if !d.soundRoom(rect) {
		t.Fatalf("room %+v overlaps", h)
	}
	d.rng = &scriptedRand{draws: []int{h.Height - d.params.roomBase(), h.Width - d.params.roomBase()}}
	hint := Half{I: h.I, J: h.J}
	d.emplaceRoom(&hint)
	if len(d.rooms) != before+1 {
		t.Fatalf("room %+v not placed", h)
	}
}

// pairedRooms places room 1 with room 2 to its east and blocks every other
// side of room 1, leaving two sills, both leading into room 2.
func pairedRooms(t *testing.T) *Dungeon {
	t.Helper()
	d := newTestDungeon(t)
	d.emplaceRoomAt(t, HalfRect{I: 2, J: 2, Height: 2, Width: 2})
	d.emplaceRoomAt(t, HalfRect{I: 2, J: 4, Height: 2, Width: 2})
	for _, p := range []Real{{3, 5}, {3, 7}, {9, 5}, {9, 7}, {5, 3}, {7, 3}} {
		d.set(p, Blocked)
	}
	d.connect = make(map[string]int)
	d.rng = &scriptedRand{draws: []int{0}}
	return d
}

func TestOpenRoomSillAccounting(t *testing.T) {
	tests := []struct {
		name          string
		connections   int // Prior doors between rooms 1 and 2, 0 for none
		wantOpened    int
		wantExhausted int
		wantConnect   int
	}{
		// Budget is 2. The first sill opens, the second is a retry.
		{"first door free", 0, 1, 1, 2},
		// Retries never spend budget, so the sills run out first.
		{"retry keeps budget", 1, 0, 1, 3},
		// Rejects spend budget, so the loop ends with the budget.
		{"reject spends budget", 13, 0, 0, 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := pairedRooms(t)
			room := d.Room(1)
			if got := len(d.doorSills(room)); got != 2 {
				t.Fatalf("sills = %d, want 2", got)
			}
			if tt.connections > 0 {
				d.connect[connectKey(1, 2)] = tt.connections
			}

			if err := d.openRoom(room); err != nil {
				t.Fatalf("openRoom error: %v", err)
			}
			if got := d.report.DoorsOpened; got != tt.wantOpened {
				t.Errorf("DoorsOpened = %d, want %d", got, tt.wantOpened)
			}
			if got := d.report.SillsExhausted; got != tt.wantExhausted {
				t.Errorf("SillsExhausted = %d, want %d", got, tt.wantExhausted)
			}
			if got := d.connect[connectKey(1, 2)]; got != tt.wantConnect {
				t.Errorf("connection count = %d, want %d", got, tt.wantConnect)
			}
			if got := room.DoorCount(); got != tt.wantOpened {
				t.Errorf("room doors = %d, want %d", got, tt.wantOpened)
			}
		})
	}
}
