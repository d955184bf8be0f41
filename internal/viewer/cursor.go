package viewer

import "github.com/samdwyer/donjon/internal/world"

// Cursor marks the cell being inspected.
type Cursor struct {
	R, C int
}

// NewCursor creates a cursor at the given cell.
func NewCursor(at world.Real) *Cursor {
	return &Cursor{R: at.R, C: at.C}
}

// Move updates the cursor position by the given delta, staying inside
// a rows x cols grid.
func (c *Cursor) Move(dr, dc, rows, cols int) {
	c.R = clamp(c.R+dr, 0, rows-1)
	c.C = clamp(c.C+dc, 0, cols-1)
}

// Position returns the cursor cell.
func (c *Cursor) Position() world.Real {
	return world.Real{R: c.R, C: c.C}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
