// Package analysis inspects finished dungeons for connectivity and
// structural problems.
package analysis

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"github.com/samdwyer/donjon/internal/world"
)

// Region is a set of open cells reachable from one another.
type Region struct {
	Cells   int
	RoomIDs []int
}

// Connectivity groups the open cells of d into regions, largest first.
func Connectivity(d *world.Dungeon) []Region {
	visited := mapset.New[world.Real]()
	var regions []Region

	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			start := world.Real{R: r, C: c}
			if visited.Has(start) || !d.CellAt(start).IsOpen() {
				continue
			}
			regions = append(regions, flood(d, start, visited))
		}
	}

	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Cells > regions[j].Cells
	})
	return regions
}

// flood collects the region containing start.
func flood(d *world.Dungeon, start world.Real, visited mapset.Set[world.Real]) Region {
	rooms := mapset.New[int]()
	pending := queue.New[world.Real]()
	pending.Enqueue(start)
	visited.Put(start)

	var region Region
	for !pending.Empty() {
		p := pending.Dequeue()
		region.Cells++

		if id, ok := d.CellAt(p).RoomID(); ok && d.CellAt(p).Has(world.RoomSpace) {
			rooms.Put(id)
		}

		for _, dir := range []world.Direction{world.North, world.South, world.West, world.East} {
			next := p.Step(dir)
			if visited.Has(next) || !d.CellAt(next).IsOpen() {
				continue
			}
			visited.Put(next)
			pending.Enqueue(next)
		}
	}

	rooms.Each(func(id int) {
		region.RoomIDs = append(region.RoomIDs, id)
	})
	sort.Ints(region.RoomIDs)
	return region
}

// DetachedRooms returns the ids of rooms outside the largest region.
func DetachedRooms(d *world.Dungeon) []int {
	regions := Connectivity(d)
	if len(regions) <= 1 {
		return nil
	}

	var detached []int
	for _, region := range regions[1:] {
		detached = append(detached, region.RoomIDs...)
	}
	sort.Ints(detached)
	return detached
}

// DoorProblem describes a door that breaks a structural rule.
type DoorProblem struct {
	Row, Col int
	Reason   string
}

func (p DoorProblem) String() string {
	return fmt.Sprintf("(%d,%d): %s", p.Row, p.Col, p.Reason)
}

// CheckDoors verifies that door flags and door records agree and that
// every door leads from a room into a corridor or joins two corridors.
func CheckDoors(d *world.Dungeon) []DoorProblem {
	var problems []DoorProblem

	listed := mapset.New[world.Real]()
	for _, door := range d.Doors() {
		at := door.Coord()
		if listed.Has(at) {
			problems = append(problems, DoorProblem{door.Row, door.Col, "listed twice"})
			continue
		}
		listed.Put(at)

		if !d.CellAt(at).Has(world.DoorSpace) {
			problems = append(problems, DoorProblem{door.Row, door.Col, "record without door cell"})
		}
		if reason := neighbourProblem(d, at); reason != "" {
			problems = append(problems, DoorProblem{door.Row, door.Col, reason})
		}
	}

	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			at := world.Real{R: r, C: c}
			if d.CellAt(at).Has(world.DoorSpace) && !listed.Has(at) {
				problems = append(problems, DoorProblem{r, c, "door cell without record"})
			}
		}
	}
	return problems
}

func neighbourProblem(d *world.Dungeon, at world.Real) string {
	var rooms, corridors int
	for _, dir := range []world.Direction{world.North, world.South, world.West, world.East} {
		n := d.CellAt(at.Step(dir))
		if n.Has(world.RoomSpace) {
			rooms++
		}
		if n.Has(world.Corridor) {
			corridors++
		}
	}

	switch {
	case rooms == 0 && corridors == 0:
		return "no room or corridor neighbours"
	case rooms > 0 && corridors == 0:
		return "room door opens onto nothing"
	case rooms == 0 && corridors != 2:
		return fmt.Sprintf("corridor door has %d corridor neighbours", corridors)
	}
	return ""
}

// Summary counts cells by the category they are drawn as.
type Summary struct {
	Room      int `json:"room"`
	Corridor  int `json:"corridor"`
	Door      int `json:"door"`
	Stair     int `json:"stair"`
	Perimeter int `json:"perimeter"`
	Entrance  int `json:"entrance"`
	Empty     int `json:"empty"`
}

// Summarize tallies every cell of d.
func Summarize(d *world.Dungeon) Summary {
	var s Summary
	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			cell := d.Cell(r, c)
			switch {
			case cell.Has(world.DoorSpace):
				s.Door++
			case cell.Has(world.Stairs):
				s.Stair++
			case cell.Has(world.RoomSpace):
				s.Room++
			case cell.Has(world.Corridor):
				s.Corridor++
			case cell.Has(world.Entrance):
				s.Entrance++
			case cell.Has(world.Perimeter):
				s.Perimeter++
			default:
				s.Empty++
			}
		}
	}
	return s
}

// Total returns the number of cells counted.
func (s Summary) Total() int {
	return s.Room + s.Corridor + s.Door + s.Stair + s.Perimeter + s.Entrance + s.Empty
}
