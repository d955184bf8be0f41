package world

import "math"

var layoutMasks = map[Layout][3][3]bool{
	LayoutBox: {
		{true, true, true},
		{true, false, true},
		{true, true, true},
	},
	LayoutCross: {
		{false, true, false},
		{true, true, true},
		{false, true, false},
	},
}

// initCells allocates an empty grid and blocks out the layout mask.
func (d *Dungeon) initCells() error {
	d.cells = make([][]Cell, d.rows)
	for r := range d.cells {
		d.cells[r] = make([]Cell, d.cols)
	}

	switch d.params.Layout {
	case LayoutNone:
	case LayoutBox, LayoutCross:
		d.maskCells(layoutMasks[d.params.Layout])
	case LayoutRound:
		d.roundMask()
	default:
		return ErrUnknownLayout
	}
	return nil
}

// maskCells scales the 3x3 mask over the grid, blocking unset regions.
func (d *Dungeon) maskCells(mask [3][3]bool) {
	rx := float64(len(mask)) / float64(d.rows+1)
	cx := float64(len(mask[0])) / float64(d.cols+1)

	for r := 0; r < d.rows; r++ {
		for c := 0; c < d.cols; c++ {
			if !mask[int(float64(r)*rx)][int(float64(c)*cx)] {
				d.cells[r][c] = Blocked
			}
		}
	}
}

// roundMask blocks every cell outside the inscribed circle.
func (d *Dungeon) roundMask() {
	centerR := d.rows / 2
	centerC := d.cols / 2

	for r := 0; r < d.rows; r++ {
		for c := 0; c < d.cols; c++ {
			dist := math.Hypot(float64(r-centerR), float64(c-centerC))
			if dist > float64(centerC) {
				d.cells[r][c] = Blocked
			}
		}
	}
}
