// Package report formats dungeons for people: a localized description
// and an ANSI-colored map.
package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/donjon/internal/analysis"
	"github.com/samdwyer/donjon/internal/locale"
	"github.com/samdwyer/donjon/internal/world"
)

// Colors used by the map dump.
var (
	ColorRoom      = color.Style{color.FgLightWhite}
	ColorCorridor  = color.Style{color.FgWhite}
	ColorDoor      = color.Style{color.FgYellow, color.OpBold}
	ColorHidden    = color.Style{color.FgRed, color.OpBold}
	ColorStair     = color.Style{color.FgCyan, color.OpBold}
	ColorPerimeter = color.Style{color.FgGray}
	ColorLabel     = color.Style{color.FgMagenta}
	ColorHeading   = color.Style{color.FgGreen, color.OpBold}
)

// Describe writes a localized summary of the dungeon, its doors and stairs,
// followed by connectivity findings.
func Describe(w io.Writer, d *world.Dungeon, cat *locale.Catalog) error {
	bw := bufio.NewWriter(w)
	p := d.Params()

	heading := func(msgid string) string {
		return ColorHeading.Sprint(cat.Get(msgid))
	}

	fmt.Fprintf(bw, "%s: %d\n", heading("Seed"), p.Seed)
	fmt.Fprintf(bw, "%s: %dx%d (%s, %s, %s)\n", heading("Size"), p.Rows, p.Cols, p.Layout, p.RoomLayout, p.Corridor)

	fmt.Fprintf(bw, "%s: %d\n", heading("Rooms"), d.RoomCount())
	for _, room := range d.Rooms() {
		fmt.Fprintf(bw, "  %3d  %2dx%-2d at (%d,%d)\n", room.ID, room.Height, room.Width, room.North, room.West)
	}

	doors := append([]*world.Door(nil), d.Doors()...)
	sort.Slice(doors, func(i, j int) bool {
		if doors[i].Row != doors[j].Row {
			return doors[i].Row < doors[j].Row
		}
		return doors[i].Col < doors[j].Col
	})
	fmt.Fprintf(bw, "%s: %d\n", heading("Doors"), len(doors))
	for _, door := range doors {
		fmt.Fprintf(bw, "  (%d,%d) %s", door.Row, door.Col, cat.Get(door.Type()))
		if door.OutID != 0 {
			fmt.Fprintf(bw, " %s %d", cat.Get("to room"), door.OutID)
		}
		bw.WriteString("\n")
	}

	fmt.Fprintf(bw, "%s: %d\n", heading("Stairs"), len(d.Stairs()))
	for _, s := range d.Stairs() {
		fmt.Fprintf(bw, "  (%d,%d) %s\n", s.Row, s.Col, cat.Get(s.Kind.Key()))
	}

	regions := analysis.Connectivity(d)
	fmt.Fprintf(bw, "%s: %d\n", heading("Regions"), len(regions))
	fmt.Fprintf(bw, "%s: %s\n", heading("Detached rooms"), joinInts(analysis.DetachedRooms(d), cat))
	fmt.Fprintf(bw, "%s: %d\n", heading("Dead end cells removed"), d.Report().CellsCollapsed)

	if problems := analysis.CheckDoors(d); len(problems) > 0 {
		fmt.Fprintf(bw, "%s: %d\n", heading("Door problems"), len(problems))
		for _, problem := range problems {
			fmt.Fprintf(bw, "  %v\n", problem)
		}
	}
	return bw.Flush()
}

func joinInts(ids []int, cat *locale.Catalog) string {
	if len(ids) == 0 {
		return cat.Get("none")
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, ", ")
}

// MapOptions controls the colored map.
type MapOptions struct {
	// ShowHidden draws trapped and secret doors as doors rather than walls.
	ShowHidden bool
	// Labels draws room numbers and door/stair labels.
	Labels bool
}

// WriteMap writes the dungeon one glyph per cell with ANSI colors.
func WriteMap(w io.Writer, d *world.Dungeon, opts MapOptions) error {
	bw := bufio.NewWriter(w)

	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			bw.WriteString(cellString(d, world.Real{R: r, C: c}, opts))
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

func cellString(d *world.Dungeon, p world.Real, opts MapOptions) string {
	cell := d.CellAt(p)
	glyph := string(d.Glyph(p))

	if opts.Labels && !cell.Has(world.DoorSpace|world.Stairs) {
		if l, ok := cell.Label(); ok {
			return ColorLabel.Sprint(string(l))
		}
	}

	switch {
	case cell.Has(world.DoorSpace):
		if door := d.DoorAt(p); door != nil && door.IsHidden() {
			if !opts.ShowHidden {
				return ColorPerimeter.Sprint(string(world.GlyphPerimeter))
			}
			return ColorHidden.Sprint(glyph)
		}
		return ColorDoor.Sprint(glyph)
	case cell.Has(world.Stairs):
		return ColorStair.Sprint(glyph)
	case cell.Has(world.RoomSpace):
		return ColorRoom.Sprint(glyph)
	case cell.Has(world.Corridor):
		return ColorCorridor.Sprint(glyph)
	case cell.Has(world.Perimeter):
		return ColorPerimeter.Sprint(glyph)
	default:
		return glyph
	}
}
