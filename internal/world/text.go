package world

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Glyph categories of the text dump, in priority order.
const (
	GlyphDoor         = 'D'
	GlyphOrphanDoor   = 'd'
	GlyphStairUp      = '^'
	GlyphStairDown    = 'v'
	GlyphRoom         = '.'
	GlyphCorridor     = '+'
	GlyphEntrance     = 'E'
	GlyphBlocked      = 'x'
	GlyphPerimeter    = '#'
	GlyphNothing      = ' '
	GlyphUnrecognised = '?'
)

// TextOptions controls the text dump.
type TextOptions struct {
	// Ruler adds a column header and row number prefixes.
	Ruler bool
}

// Glyph returns the dump character for cell p.
func (d *Dungeon) Glyph(p Real) rune {
	return glyphFor(d.CellAt(p), d.DoorAt(p) != nil)
}

func glyphFor(c Cell, listed bool) rune {
	switch {
	case c.Has(DoorSpace) && listed:
		return GlyphDoor
	case c.Has(DoorSpace):
		return GlyphOrphanDoor
	case c.Has(StairUp):
		return GlyphStairUp
	case c.Has(StairDown):
		return GlyphStairDown
	case c.Has(RoomSpace):
		return GlyphRoom
	case c.Has(Corridor):
		return GlyphCorridor
	case c.Has(Entrance):
		return GlyphEntrance
	case c.Has(Blocked):
		return GlyphBlocked
	case c.Has(Perimeter):
		return GlyphPerimeter
	case c.Without(Label|RoomID) == Nothing:
		return GlyphNothing
	default:
		return GlyphUnrecognised
	}
}

// WriteText writes one glyph per cell, one line per row.
func (d *Dungeon) WriteText(w io.Writer, opts TextOptions) error {
	bw := bufio.NewWriter(w)

	doorAt := make(map[Real]bool, len(d.doors))
	for _, door := range d.doors {
		doorAt[door.Coord()] = true
	}

	if opts.Ruler {
		bw.WriteString("       ")
		for c := 0; c < d.cols; c++ {
			fmt.Fprintf(bw, "%d", c%10)
		}
		bw.WriteString("\n")
	}

	for r := 0; r < d.rows; r++ {
		if opts.Ruler {
			fmt.Fprintf(bw, "%4d:: [", r)
		}
		for c := 0; c < d.cols; c++ {
			p := Real{R: r, C: c}
			bw.WriteRune(glyphFor(d.cells[r][c], doorAt[p]))
		}
		if opts.Ruler {
			bw.WriteString("]")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// Text returns the dump without a ruler.
func (d *Dungeon) Text() string {
	var b strings.Builder
	_ = d.WriteText(&b, TextOptions{})
	return b.String()
}

// Describe writes a plain summary of the run's parameters and records.
func (d *Dungeon) Describe(w io.Writer) error {
	bw := bufio.NewWriter(w)
	p := d.params

	fmt.Fprintf(bw, "seed %d, %dx%d, layout %s\n", p.Seed, p.Rows, p.Cols, p.Layout)
	fmt.Fprintf(bw, "rooms %d..%d %s, corridors %s, dead ends %d%%, stairs %d\n",
		p.RoomMin, p.RoomMax, p.RoomLayout, p.Corridor, p.RemoveDeadends, p.Stairs)

	fmt.Fprintf(bw, "rooms: %d\n", len(d.rooms))
	for _, room := range d.rooms {
		fmt.Fprintf(bw, "  #%d (%d,%d)-(%d,%d) %dx%d doors %d\n",
			room.ID, room.North, room.West, room.South, room.East,
			room.Height, room.Width, room.DoorCount())
	}

	doors := append([]*Door(nil), d.doors...)
	sort.Slice(doors, func(i, j int) bool {
		if doors[i].Row != doors[j].Row {
			return doors[i].Row < doors[j].Row
		}
		return doors[i].Col < doors[j].Col
	})
	fmt.Fprintf(bw, "doors: %d\n", len(doors))
	for _, door := range doors {
		fmt.Fprintf(bw, "  (%d,%d) %-6s %-5s out %d %s\n",
			door.Row, door.Col, door.Key(), door.Dir, door.OutID, door.Type())
	}

	fmt.Fprintf(bw, "stairs: %d\n", len(d.stairs))
	for _, s := range d.stairs {
		fmt.Fprintf(bw, "  (%d,%d) %s from (%d,%d)\n", s.Row, s.Col, s.Kind.Key(), s.NextRow, s.NextCol)
	}
	return bw.Flush()
}
