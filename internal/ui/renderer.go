package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

// View is what the renderer needs to know beyond the dungeon itself.
type View struct {
	Cursor      world.Real
	ShowSecrets bool
	ShowLabels  bool
	ShowLegend  bool
	Status      string
}

// Renderer handles drawing dungeons to the screen.
type Renderer struct {
	screen *Screen
	styles styles
}

type styles struct {
	wall, room, corridor, door, hidden, stair, label, cursor, status tcell.Style
}

// NewRenderer creates a renderer drawing with the given palette.
func NewRenderer(screen *Screen, pal presets.Palette) *Renderer {
	base := tcell.StyleDefault.Background(pal.Fill)
	return &Renderer{
		screen: screen,
		styles: styles{
			wall:     base.Foreground(pal.Wall),
			room:     base.Foreground(pal.Open),
			corridor: base.Foreground(pal.Corridor),
			door:     base.Foreground(pal.Door).Background(pal.Open).Bold(true),
			hidden:   base.Foreground(pal.Label).Bold(true),
			stair:    base.Foreground(pal.Stair).Background(pal.Open).Bold(true),
			label:    base.Foreground(pal.Label),
			cursor:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
			status:   tcell.StyleDefault.Foreground(tcell.ColorWhite),
		},
	}
}

// Render draws the dungeon scrolled to keep the cursor visible, then the
// status line.
func (r *Renderer) Render(d *world.Dungeon, v View) {
	r.screen.Clear()

	w, h := r.screen.Size()
	mapH := h - 2
	if mapH < 1 {
		mapH = 1
	}
	offR := scroll(v.Cursor.R, d.Rows(), mapH)
	offC := scroll(v.Cursor.C, d.Cols(), w)

	for y := 0; y < mapH && offR+y < d.Rows(); y++ {
		for x := 0; x < w && offC+x < d.Cols(); x++ {
			p := world.Real{R: offR + y, C: offC + x}
			ch, style := r.cellAppearance(d, p, v)
			r.screen.SetContent(x, y, ch, style)
		}
	}

	if cx, cy := v.Cursor.C-offC, v.Cursor.R-offR; cx >= 0 && cx < w && cy >= 0 && cy < mapH {
		r.screen.SetContent(cx, cy, '@', r.styles.cursor)
	}

	r.screen.DrawText(0, h-2, Inspect(d, v.Cursor), r.styles.status)
	r.screen.DrawText(0, h-1, v.Status, r.styles.status)

	if v.ShowLegend {
		r.drawLegend()
	}
	r.screen.Show()
}

// scroll returns the first visible index that keeps pos on screen.
func scroll(pos, total, visible int) int {
	if total <= visible {
		return 0
	}
	off := pos - visible/2
	if off < 0 {
		return 0
	}
	if off > total-visible {
		return total - visible
	}
	return off
}

// cellAppearance returns the rune and style for a map cell.
func (r *Renderer) cellAppearance(d *world.Dungeon, p world.Real, v View) (rune, tcell.Style) {
	cell := d.CellAt(p)

	if cell.Has(world.DoorSpace) {
		door := d.DoorAt(p)
		if door != nil && door.IsHidden() {
			if !v.ShowSecrets {
				return world.GlyphPerimeter, r.styles.wall
			}
			return d.Glyph(p), r.styles.hidden
		}
		return d.Glyph(p), r.styles.door
	}

	if v.ShowLabels && !cell.Has(world.Stairs) {
		if l, ok := cell.Label(); ok {
			return rune(l), r.styles.label
		}
	}

	glyph := d.Glyph(p)
	switch {
	case cell.Has(world.Stairs):
		return glyph, r.styles.stair
	case cell.Has(world.RoomSpace):
		return glyph, r.styles.room
	case cell.Has(world.Corridor):
		return glyph, r.styles.corridor
	case cell.Has(world.Perimeter | world.Entrance):
		return glyph, r.styles.wall
	default:
		return ' ', tcell.StyleDefault
	}
}

var legend = []string{
	" .  room        +  corridor ",
	" D  door        #  wall     ",
	" v  stair down  ^  stair up ",
	" arrows move    n/p seed    ",
	" r random  s secrets  l labels",
	" ? legend       q quit      ",
}

func (r *Renderer) drawLegend() {
	for i, line := range legend {
		r.screen.DrawText(1, 1+i, line, r.styles.status.Reverse(true))
	}
}

// Inspect describes the cell at p for the status line.
func Inspect(d *world.Dungeon, p world.Real) string {
	cell := d.CellAt(p)
	text := fmt.Sprintf("(%d,%d) %s", p.R, p.C, cell.Summary())

	if room := d.RoomAt(p); room != nil {
		text += fmt.Sprintf(" room %d %dx%d", room.ID, room.Height, room.Width)
	}
	if door := d.DoorAt(p); door != nil {
		text += " " + door.Type()
		if door.OutID != 0 {
			text += fmt.Sprintf(" to room %d", door.OutID)
		}
	}
	for _, s := range d.Stairs() {
		if s.Coord() == p {
			text += " stairs " + s.Kind.Key()
		}
	}
	return text
}
