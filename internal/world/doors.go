package world

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// sill is a candidate door position on a room's edge.
type sill struct {
	at    Real // Room cell the door is entered from
	door  Real
	dir   Direction
	outID int
}

// sillDecision is the outcome of judging a drawn sill.
type sillDecision int

const (
	sillAccept sillDecision = iota
	// sillRetry consumes the sill but not the room's door budget.
	sillRetry
	// sillReject consumes both the sill and one unit of budget.
	sillReject
)

// openRooms cuts doors into every room in id order.
func (d *Dungeon) openRooms() error {
	d.connect = make(map[string]int)
	defer func() { d.connect = nil }()

	for _, room := range d.rooms {
		if err := d.openRoom(room); err != nil {
			return err
		}
	}

	d.log.WithFields(logrus.Fields{
		"opened":    d.report.DoorsOpened,
		"exhausted": d.report.SillsExhausted,
	}).Debug("doors opened")
	return nil
}

// openRoom draws sills for one room until its door budget is spent.
func (d *Dungeon) openRoom(room *Room) error {
	sills := d.doorSills(room)
	if len(sills) == 0 {
		return nil
	}
	budget := d.allocOpens(room)

	for opened := 0; opened < budget; {
		if len(sills) == 0 {
			d.report.SillsExhausted++
			d.log.WithFields(logrus.Fields{
				"room":   room.ID,
				"opened": opened,
				"budget": budget,
			}).Warn("room ran out of door sills")
			break
		}

		idx := d.rng.Intn(len(sills))
		s := sills[idx]
		sills = append(sills[:idx], sills[idx+1:]...)

		switch d.judgeSill(room, s) {
		case sillRetry:
			continue
		case sillReject:
			opened++
			continue
		}

		if err := d.openDoor(room, s); err != nil {
			return err
		}
		opened++
	}
	return nil
}

// allocOpens returns the number of doors a room should receive.
func (d *Dungeon) allocOpens(room *Room) int {
	h := (room.South-room.North)/2 + 1
	w := (room.East-room.West)/2 + 1
	side := int(math.Sqrt(float64(w * h)))
	return side + d.randInt(side)
}

// doorSills lists candidate door positions on each side of the room
// that is far enough from the grid edge, in shuffled order.
func (d *Dungeon) doorSills(room *Room) []sill {
	var sills []sill
	add := func(at Real, dir Direction) {
		if s, ok := d.checkSill(room, at, dir); ok {
			sills = append(sills, s)
		}
	}

	if room.North >= 3 {
		for c := room.West; c <= room.East; c += 2 {
			add(Real{R: room.North, C: c}, North)
		}
	}
	if room.South <= d.rows-3 {
		for c := room.West; c <= room.East; c += 2 {
			add(Real{R: room.South, C: c}, South)
		}
	}
	if room.West >= 3 {
		for r := room.North; r <= room.South; r += 2 {
			add(Real{R: r, C: room.West}, West)
		}
	}
	if room.East <= d.cols-3 {
		for r := room.North; r <= room.South; r += 2 {
			add(Real{R: r, C: room.East}, East)
		}
	}

	d.rng.Shuffle(len(sills), func(i, j int) {
		sills[i], sills[j] = sills[j], sills[i]
	})
	return sills
}

// checkSill validates the door and far-side cells one and two steps out.
func (d *Dungeon) checkSill(room *Room, at Real, dir Direction) (sill, bool) {
	door := at.Step(dir)
	if !d.inBounds(door) {
		return sill{}, false
	}
	dc := d.at(door)
	if !dc.Has(Perimeter) || dc.Has(BlockDoor) {
		return sill{}, false
	}

	out := door.Step(dir)
	if !d.inBounds(out) {
		return sill{}, false
	}
	oc := d.at(out)
	if oc.Has(Blocked) {
		return sill{}, false
	}

	s := sill{at: at, door: door, dir: dir}
	if oc.Has(RoomSpace) {
		id, _ := oc.RoomID()
		if id == room.ID {
			return sill{}, false
		}
		s.outID = id
	}
	return s, true
}

// judgeSill decides whether a drawn sill becomes a door. Each pair of
// rooms gets one door for free; further doors between the same pair are
// retried until the pair's count exceeds the room's perimeter.
func (d *Dungeon) judgeSill(room *Room, s sill) sillDecision {
	if d.at(s.door).Has(DoorSpace) {
		return sillRetry
	}
	if s.outID == 0 {
		return sillAccept
	}

	key := connectKey(room.ID, s.outID)
	count, seen := d.connect[key]
	switch {
	case !seen:
		d.connect[key] = 1
		return sillAccept
	case count > room.Perimeter():
		return sillReject
	default:
		d.connect[key] = count + 1
		return sillRetry
	}
}

func connectKey(a, b int) string {
	return fmt.Sprintf("%d,%d", min(a, b), max(a, b))
}

// openDoor carves the sill, door and far-side cells and records the door.
func (d *Dungeon) openDoor(room *Room, s sill) error {
	p := s.at
	for n := 0; n < 3; n++ {
		if d.inBounds(p) {
			d.set(p, d.at(p).Without(Perimeter)|Entrance)
		}
		p = p.Step(s.dir)
	}

	kind, err := d.rollDoorKind()
	if err != nil {
		return err
	}

	c := d.at(s.door) | kind.Flag()
	if label := doorDefs[kind].label; label != 0 {
		c = c.WithLabel(label)
	}
	d.set(s.door, c)

	room.Doors[s.dir] = append(room.Doors[s.dir], &Door{
		Row:   s.door.R,
		Col:   s.door.C,
		Kind:  kind,
		Dir:   s.dir,
		OutID: s.outID,
	})
	d.report.DoorsOpened++
	return nil
}
