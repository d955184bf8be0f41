package world

// Half is a node in half-space, the coarse grid rooms and corridors are
// aligned to. Node (I, J) sits on real cell (2I+1, 2J+1).
type Half struct {
	I, J int
}

// Real converts the node to its real-space cell.
func (h Half) Real() Real {
	return Real{R: 2*h.I + 1, C: 2*h.J + 1}
}

// Step returns the neighbouring node in the given direction.
func (h Half) Step(d Direction) Half {
	di, dj := d.Delta()
	return Half{I: h.I + di, J: h.J + dj}
}

// Real is a cell position in the full grid.
type Real struct {
	R, C int
}

// Half converts the cell to the half-space node containing it.
func (p Real) Half() Half {
	return Half{I: p.R / 2, J: p.C / 2}
}

// Step returns the adjacent cell in the given direction.
func (p Real) Step(d Direction) Real {
	dr, dc := d.Delta()
	return Real{R: p.R + dr, C: p.C + dc}
}

// Offset returns the cell displaced by (dr, dc).
func (p Real) Offset(dr, dc int) Real {
	return Real{R: p.R + dr, C: p.C + dc}
}

// HalfRect is a rectangle of half-space nodes.
type HalfRect struct {
	I, J          int
	Height, Width int
}

// Real converts the rectangle to the real-space cells it covers.
func (h HalfRect) Real() RealRect {
	return RealRect{
		R1: 2*h.I + 1,
		C1: 2*h.J + 1,
		R2: 2*(h.I+h.Height) - 1,
		C2: 2*(h.J+h.Width) - 1,
	}
}

// RealRect is an inclusive rectangle of real-space cells.
type RealRect struct {
	R1, C1, R2, C2 int
}

// Half converts an odd-aligned rectangle back to half-space.
func (r RealRect) Half() HalfRect {
	return HalfRect{
		I:      r.R1 / 2,
		J:      r.C1 / 2,
		Height: (r.R2-r.R1)/2 + 1,
		Width:  (r.C2-r.C1)/2 + 1,
	}
}

// Contains reports whether p lies inside the rectangle.
func (r RealRect) Contains(p Real) bool {
	return p.R >= r.R1 && p.R <= r.R2 && p.C >= r.C1 && p.C <= r.C2
}

// Each calls fn for every cell of the rectangle in row-major order.
func (r RealRect) Each(fn func(p Real)) {
	for row := r.R1; row <= r.R2; row++ {
		for col := r.C1; col <= r.C2; col++ {
			fn(Real{R: row, C: col})
		}
	}
}

// spanRect returns the inclusive rectangle spanning a and b in any order.
func spanRect(a, b Real) RealRect {
	return RealRect{
		R1: min(a.R, b.R),
		C1: min(a.C, b.C),
		R2: max(a.R, b.R),
		C2: max(a.C, b.C),
	}
}
