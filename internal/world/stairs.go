package world

import "github.com/sirupsen/logrus"

// emplaceStairs puts the requested number of stairs on corridor dead ends.
// The first stair leads down, the second up, the rest are drawn at random.
func (d *Dungeon) emplaceStairs() error {
	n := d.params.Stairs
	if n <= 0 {
		return nil
	}
	d.report.StairsRequested = n

	candidates := d.stairEnds()
	d.report.StairCandidates = len(candidates)

	for i := 0; i < n; i++ {
		if len(candidates) == 0 {
			break
		}
		idx := d.rng.Intn(len(candidates))
		stair := candidates[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)

		kind := StairKind(i)
		if i >= 2 {
			kind = StairKind(d.rng.Intn(2))
		}
		stair.Kind = kind

		p := stair.Coord()
		d.set(p, (d.at(p) | kind.flag()).WithLabel(kind.label()))
		d.stairs = append(d.stairs, stair)
	}
	d.report.StairsPlaced = len(d.stairs)

	if len(d.stairs) < n {
		d.log.WithFields(logrus.Fields{
			"requested":  n,
			"placed":     len(d.stairs),
			"candidates": d.report.StairCandidates,
		}).Warn("not enough corridor ends for stairs")
	}
	return nil
}

// stairEnds finds every half-space node sitting at the closed end of a
// straight corridor.
func (d *Dungeon) stairEnds() []Stair {
	var ends []Stair
	for i := 0; i < d.halfRows; i++ {
		for j := 0; j < d.halfCols; j++ {
			p := Half{I: i, J: j}.Real()
			if d.at(p) != Corridor {
				continue
			}

			for _, dir := range templateOrder {
				t := stairEnds[dir]
				if !d.matchTemplate(p, t) {
					continue
				}
				next := p.add(t.next)
				ends = append(ends, Stair{Row: p.R, Col: p.C, NextRow: next.R, NextCol: next.C})
				break
			}
		}
	}
	return ends
}
