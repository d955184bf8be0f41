package world

type offset struct {
	dr, dc int
}

// tunnelTemplate describes the neighbourhood of a corridor end relative
// to the cell under test.
type tunnelTemplate struct {
	walled   []offset // Must not be open space
	corridor []offset // Must be plain corridor
	close    []offset // Erased when collapsing
	recurse  offset   // Next cell to collapse
	next     offset   // Corridor cell leading onto a stair
}

var stairEnds = map[Direction]tunnelTemplate{
	North: {
		walled:   []offset{{1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}},
		corridor: []offset{{0, 0}, {1, 0}, {2, 0}},
		next:     offset{1, 0},
	},
	South: {
		walled:   []offset{{-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}},
		corridor: []offset{{0, 0}, {-1, 0}, {-2, 0}},
		next:     offset{-1, 0},
	},
	West: {
		walled:   []offset{{-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}},
		corridor: []offset{{0, 0}, {0, 1}, {0, 2}},
		next:     offset{0, 1},
	},
	East: {
		walled:   []offset{{-1, -1}, {-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}},
		corridor: []offset{{0, 0}, {0, -1}, {0, -2}},
		next:     offset{0, -1},
	},
}

var closeEnds = map[Direction]tunnelTemplate{
	North: {
		walled:  []offset{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}},
		close:   []offset{{0, 0}},
		recurse: offset{-1, 0},
	},
	South: {
		walled:  []offset{{0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1}},
		close:   []offset{{0, 0}},
		recurse: offset{1, 0},
	},
	West: {
		walled:  []offset{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}},
		close:   []offset{{0, 0}},
		recurse: offset{0, -1},
	},
	East: {
		walled:  []offset{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}},
		close:   []offset{{0, 0}},
		recurse: offset{0, 1},
	},
}

func (p Real) add(o offset) Real {
	return p.Offset(o.dr, o.dc)
}

// matchTemplate checks the corridor and walled offsets of t around p.
// Offsets outside the grid count as walled.
func (d *Dungeon) matchTemplate(p Real, t tunnelTemplate) bool {
	for _, o := range t.corridor {
		q := p.add(o)
		if !d.inBounds(q) || d.at(q) != Corridor {
			return false
		}
	}
	for _, o := range t.walled {
		if d.at(p.add(o)).Has(OpenSpace) {
			return false
		}
	}
	return true
}
