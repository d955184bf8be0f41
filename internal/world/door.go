package world

import "fmt"

// DoorKind is the type of an opening between a room and its surroundings.
type DoorKind int

const (
	DoorKindArch DoorKind = iota
	DoorKindOpen
	DoorKindLocked
	DoorKindTrapped
	DoorKindSecret
	DoorKindPortcullis
)

type doorDef struct {
	key    string
	name   string
	flag   Cell
	label  byte
	weight int
}

var doorDefs = map[DoorKind]doorDef{
	DoorKindArch:       {key: "arch", name: "Archway", flag: DoorArch, weight: 15},
	DoorKindOpen:       {key: "open", name: "Unlocked Door", flag: DoorSimple, label: 'o', weight: 45},
	DoorKindLocked:     {key: "lock", name: "Locked Door", flag: DoorLocked, label: 'x', weight: 15},
	DoorKindTrapped:    {key: "trap", name: "Trapped Door", flag: DoorTrapped, label: 't', weight: 15},
	DoorKindSecret:     {key: "secret", name: "Secret Door", flag: DoorSecret, label: 's', weight: 10},
	DoorKindPortcullis: {key: "portc", name: "Portcullis", flag: DoorPortcullis, label: '#', weight: 10},
}

// doorRollOrder is the order the weighted door roll walks the table in.
var doorRollOrder = [...]DoorKind{
	DoorKindArch, DoorKindOpen, DoorKindLocked,
	DoorKindTrapped, DoorKindSecret, DoorKindPortcullis,
}

// doorRollRange is the exclusive upper bound of a door roll.
const doorRollRange = 110

// Key returns the short machine name of the door kind.
func (k DoorKind) Key() string {
	return doorDefs[k].key
}

// Name returns the display name of the door kind.
func (k DoorKind) Name() string {
	return doorDefs[k].name
}

// Flag returns the cell bit marking this door kind.
func (k DoorKind) Flag() Cell {
	return doorDefs[k].flag
}

// DoorKindOf returns the kind of door flagged on a cell.
func DoorKindOf(c Cell) (DoorKind, bool) {
	for _, k := range doorRollOrder {
		if c.Has(doorDefs[k].flag) {
			return k, true
		}
	}
	return 0, false
}

// Door is an opening on a room's perimeter.
type Door struct {
	Row, Col int
	Kind     DoorKind
	Dir      Direction // Direction from the room towards the outside
	OutID    int       // Room on the far side, or 0
}

// Key returns the door's short type name.
func (d *Door) Key() string {
	return d.Kind.Key()
}

// Type returns the door's display name.
func (d *Door) Type() string {
	return d.Kind.Name()
}

// Coord returns the door cell.
func (d *Door) Coord() Real {
	return Real{R: d.Row, C: d.Col}
}

// IsHidden reports whether a player would not see the door at a glance.
func (d *Door) IsHidden() bool {
	return d.Kind == DoorKindSecret || d.Kind == DoorKindTrapped
}

// String formats the door for debug output.
func (d *Door) String() string {
	if d.OutID != 0 {
		return fmt.Sprintf("%s door at (%d,%d) %s to room %d", d.Key(), d.Row, d.Col, d.Dir, d.OutID)
	}
	return fmt.Sprintf("%s door at (%d,%d) %s", d.Key(), d.Row, d.Col, d.Dir)
}

// rollDoorKind picks a door kind using the weighted door table.
func (d *Dungeon) rollDoorKind() (DoorKind, error) {
	roll := d.rng.Intn(doorRollRange)

	cumulative := 0
	for _, k := range doorRollOrder {
		cumulative += doorDefs[k].weight
		if roll < cumulative {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: roll %d", ErrUnknownDoorType, roll)
}

// StairKind distinguishes stairs leading down from stairs leading up.
type StairKind int

const (
	StairKindDown StairKind = iota
	StairKindUp
)

// Key returns "down" or "up".
func (k StairKind) Key() string {
	if k == StairKindUp {
		return "up"
	}
	return "down"
}

// Stair is a staircase at the end of a corridor.
type Stair struct {
	Row, Col         int
	NextRow, NextCol int // The corridor cell the stair is entered from
	Kind             StairKind
}

// Coord returns the stair cell.
func (s Stair) Coord() Real {
	return Real{R: s.Row, C: s.Col}
}

// Next returns the corridor cell leading onto the stair.
func (s Stair) Next() Real {
	return Real{R: s.NextRow, C: s.NextCol}
}

func (k StairKind) flag() Cell {
	if k == StairKindUp {
		return StairUp
	}
	return StairDown
}

func (k StairKind) label() byte {
	if k == StairKindUp {
		return 'u'
	}
	return 'd'
}
