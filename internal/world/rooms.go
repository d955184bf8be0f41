package world

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

// emplaceRooms places rooms using the configured strategy.
func (d *Dungeon) emplaceRooms() error {
	switch d.params.RoomLayout {
	case RoomsPacked:
		d.packRooms()
	case RoomsScattered:
		d.scatterRooms()
	default:
		return fmt.Errorf("%w: room layout %d", ErrUnknownLayout, d.params.RoomLayout)
	}

	d.log.WithFields(logrus.Fields{
		"layout":   d.params.RoomLayout.String(),
		"attempts": d.report.RoomAttempts,
		"placed":   d.report.RoomsPlaced,
	}).Debug("rooms placed")
	return nil
}

// packRooms offers every free half-space node as a room origin.
// Nodes on the first row and column are skipped half the time.
func (d *Dungeon) packRooms() {
	for i := 0; i < d.halfRows; i++ {
		for j := 0; j < d.halfCols; j++ {
			h := Half{I: i, J: j}
			if d.at(h.Real()).Has(RoomSpace) {
				continue
			}
			if (i == 0 || j == 0) && d.rng.Intn(2) != 0 {
				continue
			}
			d.emplaceRoom(&h)
		}
	}
}

// scatterRooms makes a fixed number of unhinted placement attempts.
func (d *Dungeon) scatterRooms() {
	attempts := (d.rows * d.cols) / (d.params.RoomMax * d.params.RoomMax)
	for n := 0; n < attempts; n++ {
		d.emplaceRoom(nil)
	}
}

// emplaceRoom attempts to place one room, optionally anchored at hint.
// A rejected attempt leaves the grid untouched.
func (d *Dungeon) emplaceRoom(hint *Half) {
	if len(d.rooms) >= MaxRoomID {
		return
	}
	d.report.RoomAttempts++

	rect := d.roomProto(hint).Real()
	if rect.R1 < 1 || rect.R2 > d.maxRow() || rect.C1 < 1 || rect.C2 > d.maxCol() {
		return
	}
	if !d.soundRoom(rect) {
		return
	}

	id := len(d.rooms) + 1
	rect.Each(func(p Real) {
		c := d.at(p)
		if c.Has(Entrance) {
			c = c.Without(EntranceSpace)
		} else if c.Has(Perimeter) {
			c = c.Without(Perimeter)
		}
		d.set(p, (c | RoomSpace).WithRoomID(id))
	})

	d.rooms = append(d.rooms, newRoom(id, rect))
	d.report.RoomsPlaced++

	for r := rect.R1 - 1; r <= rect.R2+1; r++ {
		d.markPerimeter(Real{R: r, C: rect.C1 - 1})
		d.markPerimeter(Real{R: r, C: rect.C2 + 1})
	}
	for c := rect.C1 - 1; c <= rect.C2+1; c++ {
		d.markPerimeter(Real{R: rect.R1 - 1, C: c})
		d.markPerimeter(Real{R: rect.R2 + 1, C: c})
	}
}

// roomProto draws a room size and, when unhinted, its origin.
func (d *Dungeon) roomProto(hint *Half) HalfRect {
	base := d.params.roomBase()
	radix := d.params.roomRadix()

	var proto HalfRect
	if hint == nil {
		proto.Height = d.randInt(radix) + base
		proto.Width = d.randInt(radix) + base
		proto.I = d.randInt(d.halfRows - proto.Height)
		proto.J = d.randInt(d.halfCols - proto.Width)
		return proto
	}

	proto.I, proto.J = hint.I, hint.J
	proto.Height = d.randInt(hintedRadix(radix, base, hint.I, d.halfRows)) + base
	proto.Width = d.randInt(hintedRadix(radix, base, hint.J, d.halfCols)) + base
	return proto
}

// hintedRadix limits the size range so an anchored room fits the grid.
func hintedRadix(radix, base, at, extent int) int {
	room := max(0, extent-base-at)
	return min(radix, room)
}

// soundRoom reports whether rect is free of blocked cells and other rooms.
func (d *Dungeon) soundRoom(rect RealRect) bool {
	hits := 0
	for r := rect.R1; r <= rect.R2; r++ {
		for c := rect.C1; c <= rect.C2; c++ {
			cell := d.cells[r][c]
			if cell.Has(Blocked) {
				return false
			}
			if cell.Has(RoomSpace) {
				hits++
			}
		}
	}
	return hits == 0
}

func (d *Dungeon) markPerimeter(p Real) {
	if !d.inBounds(p) {
		return
	}
	c := d.at(p)
	if c.Has(RoomSpace | Entrance) {
		return
	}
	d.set(p, c|Perimeter)
}

// labelRooms writes each room's id into the label bytes of its middle row.
func (d *Dungeon) labelRooms() error {
	for _, room := range d.rooms {
		label := strconv.Itoa(room.ID)
		r := (room.North + room.South) / 2
		c := (room.West+room.East-len(label))/2 + 1

		for n := 0; n < len(label); n++ {
			p := Real{R: r, C: c + n}
			if !d.inBounds(p) {
				break
			}
			d.set(p, d.at(p).WithLabel(label[n]))
		}
	}
	return nil
}
