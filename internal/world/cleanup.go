package world

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// removeDeadends collapses a percentage of corridor dead ends.
func (d *Dungeon) removeDeadends() error {
	p := d.params.RemoveDeadends
	if p <= 0 {
		return nil
	}
	all := p >= 100

	for i := 0; i < d.halfRows; i++ {
		for j := 0; j < d.halfCols; j++ {
			at := Half{I: i, J: j}.Real()
			c := d.at(at)
			if !c.Has(OpenSpace) || c.Has(Stairs) {
				continue
			}
			if !all && d.rng.Intn(100) >= p {
				continue
			}
			d.collapse(at)
		}
	}

	d.log.WithField("collapsed", d.report.CellsCollapsed).Debug("dead ends removed")
	return nil
}

// collapse erases p if it closes off a corridor and follows the corridor
// back until it reaches a junction or a stair.
func (d *Dungeon) collapse(p Real) {
	if c := d.at(p); !c.Has(OpenSpace) || c.Has(Stairs) {
		return
	}

	for _, dir := range templateOrder {
		t := closeEnds[dir]
		if !d.matchTemplate(p, t) {
			continue
		}
		for _, o := range t.close {
			q := p.add(o)
			if d.at(q).Has(OpenSpace) {
				d.report.CellsCollapsed++
			}
			d.set(q, Nothing)
		}
		d.collapse(p.add(t.recurse))
	}
}

// fixDoors drops doors no longer reachable, links doors between rooms
// into both rooms' lists and builds the dungeon-wide door list.
func (d *Dungeon) fixDoors() error {
	seen := mapset.New[Real]()
	var kept []*Door

	for _, room := range d.rooms {
		for _, dir := range shuffleBase {
			doors, ok := room.Doors[dir]
			if !ok {
				continue
			}

			var shiny []*Door
			for _, door := range doors {
				at := door.Coord()
				if !d.at(at).Has(OpenSpace) {
					d.sealDoor(door)
					continue
				}
				if seen.Has(at) {
					return fmt.Errorf("%w: (%d,%d) in room %d", ErrDuplicateDoor, at.R, at.C, room.ID)
				}
				seen.Put(at)
				shiny = append(shiny, door)
			}

			if len(shiny) == 0 {
				delete(room.Doors, dir)
				continue
			}
			room.Doors[dir] = shiny
			kept = append(kept, shiny...)
		}
	}

	for _, door := range kept {
		if door.OutID == 0 {
			continue
		}
		out := d.Room(door.OutID)
		if out == nil {
			return fmt.Errorf("door at (%d,%d) leads to missing room %d", door.Row, door.Col, door.OutID)
		}
		back := door.Dir.Opposite()
		out.Doors[back] = append(out.Doors[back], door)
	}

	d.doors = kept
	d.report.DoorsKept = len(kept)
	d.dropBuriedStairs()

	d.log.WithFields(logrus.Fields{
		"opened": d.report.DoorsOpened,
		"kept":   d.report.DoorsKept,
	}).Debug("doors fixed")
	return nil
}

// sealDoor removes the traces of a door that was never connected.
func (d *Dungeon) sealDoor(door *Door) {
	at := door.Coord()
	c := d.at(at)
	if c.Has(DoorSpace) {
		d.set(at, c.Without(EntranceSpace)|Perimeter)
	}

	for _, p := range []Real{at.Step(door.Dir.Opposite()), at.Step(door.Dir)} {
		if c := d.at(p); c.Has(Entrance) && !c.Has(Corridor) {
			d.set(p, c.Without(Entrance))
		}
	}
}

// dropBuriedStairs forgets stairs whose cell no longer carries its flag.
// collapse stops at stairs, so this only fires if a phase breaks that rule.
func (d *Dungeon) dropBuriedStairs() {
	stairs := d.stairs[:0]
	for _, s := range d.stairs {
		if d.at(s.Coord()).Has(s.Kind.flag()) {
			stairs = append(stairs, s)
			continue
		}
		d.log.WithFields(logrus.Fields{"row": s.Row, "col": s.Col}).Warn("stair lost to dead end removal")
	}
	d.stairs = stairs
	d.report.StairsPlaced = len(d.stairs)
}

// emptyBlocks clears the layout mask.
func (d *Dungeon) emptyBlocks() error {
	for r := range d.cells {
		for c := range d.cells[r] {
			if d.cells[r][c].Has(Blocked) {
				d.cells[r][c] = Nothing
			}
		}
	}
	return nil
}
