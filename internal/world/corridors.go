package world

import "github.com/zyedidia/generic/stack"

// tunnelFrame is one node on the tunnelling stack.
type tunnelFrame struct {
	at   Half
	dirs []Direction
	next int
}

// corridors tunnels from every interior half-space node not yet carved.
func (d *Dungeon) corridors() error {
	for i := 1; i < d.halfRows; i++ {
		for j := 1; j < d.halfCols; j++ {
			h := Half{I: i, J: j}
			if d.at(h.Real()).Has(Corridor) {
				continue
			}
			d.tunnel(h)
		}
	}
	return nil
}

// tunnel runs a depth-first carve from start. Each node tries its
// directions in order, descending into the first tunnel it can open
// and resuming with the next direction once that branch is exhausted.
func (d *Dungeon) tunnel(start Half) {
	frames := stack.New[*tunnelFrame]()
	frames.Push(&tunnelFrame{at: start, dirs: d.tunnelDirs(nil)})

	for frames.Size() > 0 {
		f := frames.Peek()
		if f.next >= len(f.dirs) {
			frames.Pop()
			continue
		}

		dir := f.dirs[f.next]
		f.next++
		if d.openTunnel(f.at, dir) {
			frames.Push(&tunnelFrame{at: f.at.Step(dir), dirs: d.tunnelDirs(&dir)})
		}
	}
}

// tunnelDirs shuffles the four directions, sometimes putting the
// previous heading first.
func (d *Dungeon) tunnelDirs(last *Direction) []Direction {
	dirs := make([]Direction, 0, len(shuffleBase)+1)
	dirs = append(dirs, shuffleBase[:]...)
	d.rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	p := d.params.Corridor.Straightness()
	if last != nil && p > 0 && d.rng.Intn(100) < p {
		dirs = append([]Direction{*last}, dirs...)
	}
	return dirs
}

// openTunnel carves from node at to its neighbour in dir if the span is clear.
func (d *Dungeon) openTunnel(at Half, dir Direction) bool {
	this := at.Real()
	next := at.Step(dir).Real()
	mid := Real{R: (this.R + next.R) / 2, C: (this.C + next.C) / 2}

	if !d.soundTunnel(mid, next) {
		return false
	}
	d.delveTunnel(this, next)
	return true
}

// soundTunnel reports whether the cells from mid to next can be carved.
func (d *Dungeon) soundTunnel(mid, next Real) bool {
	if !d.inBounds(next) {
		return false
	}

	span := spanRect(mid, next)
	for r := span.R1; r <= span.R2; r++ {
		for c := span.C1; c <= span.C2; c++ {
			if d.cells[r][c].Has(BlockCorridor) {
				return false
			}
		}
	}
	return true
}

func (d *Dungeon) delveTunnel(this, next Real) {
	spanRect(this, next).Each(func(p Real) {
		d.set(p, d.at(p).Without(Entrance)|Corridor)
	})
}
