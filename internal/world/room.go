package world

// Room represents a rectangular room in the dungeon.
// Coordinates are inclusive real-space bounds.
type Room struct {
	ID int

	Row, Col int // Top-left corner
	North    int
	South    int
	West     int
	East     int

	Height, Width int

	// Doors lists the room's openings by the side they sit on.
	// A door between two rooms appears in both rooms' lists.
	Doors map[Direction][]*Door
}

func newRoom(id int, rect RealRect) *Room {
	return &Room{
		ID:     id,
		Row:    rect.R1,
		Col:    rect.C1,
		North:  rect.R1,
		South:  rect.R2,
		West:   rect.C1,
		East:   rect.C2,
		Height: rect.R2 - rect.R1 + 1,
		Width:  rect.C2 - rect.C1 + 1,
		Doors:  make(map[Direction][]*Door),
	}
}

// Perimeter returns the length of the room's outline.
func (r *Room) Perimeter() int {
	return 2 * (r.Height + r.Width)
}

// Bounds returns the room's rectangle.
func (r *Room) Bounds() RealRect {
	return RealRect{R1: r.North, C1: r.West, R2: r.South, C2: r.East}
}

// Center returns the cell nearest the middle of the room.
func (r *Room) Center() Real {
	return Real{R: (r.North + r.South) / 2, C: (r.West + r.East) / 2}
}

// Contains returns true if the given cell is inside the room.
func (r *Room) Contains(p Real) bool {
	return r.Bounds().Contains(p)
}

// DoorCount returns the number of doors on all sides.
func (r *Room) DoorCount() int {
	n := 0
	for _, list := range r.Doors {
		n += len(list)
	}
	return n
}
