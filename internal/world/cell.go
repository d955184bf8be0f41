// Package world provides dungeon generation and map management.
package world

import "strings"

// Cell is a packed bit field describing one grid square.
type Cell uint32

const (
	Nothing   Cell = 0x00000000
	Blocked   Cell = 0x00000001
	RoomSpace Cell = 0x00000002
	Corridor  Cell = 0x00000004
	Perimeter Cell = 0x00000010
	Entrance  Cell = 0x00000020

	// RoomID holds the owning room's id (10 bits).
	RoomID Cell = 0x0000FFC0

	DoorArch       Cell = 0x00010000
	DoorSimple     Cell = 0x00020000
	DoorLocked     Cell = 0x00040000
	DoorTrapped    Cell = 0x00080000
	DoorSecret     Cell = 0x00100000
	DoorPortcullis Cell = 0x00200000

	StairDown Cell = 0x00400000
	StairUp   Cell = 0x00800000

	// Label holds a single debug character.
	Label Cell = 0xFF000000
)

const (
	roomIDShift = 6
	labelShift  = 24

	// MaxRoomID is the largest id the generator will issue.
	MaxRoomID = 999
)

// Composite masks used by the generation phases.
const (
	OpenSpace     = RoomSpace | Corridor
	DoorSpace     = DoorArch | DoorSimple | DoorLocked | DoorTrapped | DoorSecret | DoorPortcullis
	Stairs        = StairDown | StairUp
	EntranceSpace = Entrance | DoorSpace | Label
	BlockRoom     = Blocked | RoomSpace
	BlockCorridor = Blocked | Perimeter | Corridor
	BlockDoor     = Blocked | DoorSpace
)

// Has reports whether any bit of mask is set.
func (c Cell) Has(mask Cell) bool {
	return c&mask != 0
}

// HasAll reports whether every bit of mask is set.
func (c Cell) HasAll(mask Cell) bool {
	return c&mask == mask
}

// Without returns the cell with the bits of mask cleared.
func (c Cell) Without(mask Cell) Cell {
	return c &^ mask
}

// RoomID returns the owning room id, if the cell belongs to a room.
func (c Cell) RoomID() (int, bool) {
	id := int((c & RoomID) >> roomIDShift)
	return id, id != 0
}

// WithRoomID returns the cell tagged with the given room id.
func (c Cell) WithRoomID(id int) Cell {
	return c&^RoomID | (Cell(id)<<roomIDShift)&RoomID
}

// Label returns the debug label character, if one is set.
func (c Cell) Label() (byte, bool) {
	b := byte((c & Label) >> labelShift)
	return b, b != 0
}

// WithLabel returns the cell with its label byte replaced.
func (c Cell) WithLabel(b byte) Cell {
	return c&^Label | Cell(b)<<labelShift
}

// IsOpen reports whether the cell is walkable room or corridor space.
func (c Cell) IsOpen() bool {
	return c.Has(OpenSpace)
}

// Summary returns a compact token listing the cell's flags.
// Upper-case letters mark the primary categories; lower-case letters mark
// door and stair subtypes.
func (c Cell) Summary() string {
	if c == Nothing {
		return "_"
	}

	var b strings.Builder
	for _, f := range summaryFlags {
		if c.Has(f.mask) {
			b.WriteByte(f.token)
		}
	}
	if _, ok := c.RoomID(); ok && !c.Has(RoomSpace) {
		b.WriteByte('i')
	}
	if l, ok := c.Label(); ok {
		b.WriteByte('\'')
		b.WriteByte(l)
	}
	return b.String()
}

var summaryFlags = []struct {
	mask  Cell
	token byte
}{
	{Blocked, 'B'},
	{RoomSpace, 'R'},
	{Corridor, 'C'},
	{Perimeter, 'P'},
	{Entrance, 'E'},
	{DoorArch, 'a'},
	{DoorSimple, 'o'},
	{DoorLocked, 'x'},
	{DoorTrapped, 't'},
	{DoorSecret, 's'},
	{DoorPortcullis, 'p'},
	{StairDown, 'd'},
	{StairUp, 'u'},
}
