package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/samdwyer/donjon/internal/analysis"
	"github.com/samdwyer/donjon/internal/locale"
	"github.com/samdwyer/donjon/internal/render"
	"github.com/samdwyer/donjon/internal/report"
	"github.com/samdwyer/donjon/internal/world"
)

type jsonDungeon struct {
	Seed       int64            `json:"seed"`
	Rows       int              `json:"rows"`
	Cols       int              `json:"cols"`
	Layout     string           `json:"layout"`
	RoomLayout string           `json:"roomLayout"`
	Corridor   string           `json:"corridor"`
	Map        []string         `json:"map"`
	Rooms      []jsonRoom       `json:"rooms"`
	Doors      []jsonDoor       `json:"doors"`
	Stairs     []jsonStair      `json:"stairs"`
	Report     world.Report     `json:"report"`
	Regions    int              `json:"regions"`
	Cells      analysis.Summary `json:"cells"`
}

type jsonRoom struct {
	ID     int `json:"id"`
	Row    int `json:"row"`
	Col    int `json:"col"`
	Height int `json:"height"`
	Width  int `json:"width"`
	Doors  int `json:"doors"`
}

type jsonDoor struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Key   string `json:"key"`
	Type  string `json:"type"`
	Dir   string `json:"dir"`
	OutID int    `json:"outId,omitempty"`
}

type jsonStair struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	NextRow int    `json:"nextRow"`
	NextCol int    `json:"nextCol"`
	Key     string `json:"key"`
}

func newJSONDungeon(d *world.Dungeon) jsonDungeon {
	p := d.Params()
	out := jsonDungeon{
		Seed:       p.Seed,
		Rows:       d.Rows(),
		Cols:       d.Cols(),
		Layout:     p.Layout.String(),
		RoomLayout: p.RoomLayout.String(),
		Corridor:   p.Corridor.String(),
		Report:     d.Report(),
		Regions:    len(analysis.Connectivity(d)),
		Cells:      analysis.Summarize(d),
	}

	for r := 0; r < d.Rows(); r++ {
		row := make([]rune, d.Cols())
		for c := range row {
			row[c] = d.Glyph(world.Real{R: r, C: c})
		}
		out.Map = append(out.Map, string(row))
	}
	for _, room := range d.Rooms() {
		out.Rooms = append(out.Rooms, jsonRoom{
			ID: room.ID, Row: room.Row, Col: room.Col,
			Height: room.Height, Width: room.Width,
			Doors: room.DoorCount(),
		})
	}
	for _, door := range d.Doors() {
		out.Doors = append(out.Doors, jsonDoor{
			Row: door.Row, Col: door.Col,
			Key: door.Key(), Type: door.Type(),
			Dir: door.Dir.String(), OutID: door.OutID,
		})
	}
	for _, s := range d.Stairs() {
		out.Stairs = append(out.Stairs, jsonStair{
			Row: s.Row, Col: s.Col,
			NextRow: s.NextRow, NextCol: s.NextCol,
			Key: s.Kind.Key(),
		})
	}
	return out
}

// write renders d to w in the chosen format.
func write(w io.Writer, d *world.Dungeon, o options) error {
	switch o.format {
	case formatColor:
		return report.WriteMap(w, d, report.MapOptions{ShowHidden: o.secrets, Labels: o.labels})
	case formatDescribe:
		cat, err := locale.Load(o.lang)
		if err != nil {
			return err
		}
		return report.Describe(w, d, cat)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newJSONDungeon(d))
	case formatPNG:
		opts := render.DefaultOptions()
		opts.CellSize = o.cellSize
		opts.ShowSecrets = o.secrets
		return render.WritePNG(w, d, opts)
	case formatText, "":
		return d.WriteText(w, world.TextOptions{})
	default:
		return fmt.Errorf("%w %q", errBadFormat, o.format)
	}
}

// checkDungeon reports structural problems and returns how many it found.
func checkDungeon(w io.Writer, d *world.Dungeon) int {
	problems := analysis.CheckDoors(d)
	for _, p := range problems {
		fmt.Fprintf(w, "door %s\n", p)
	}
	if detached := analysis.DetachedRooms(d); len(detached) > 0 {
		fmt.Fprintf(w, "detached rooms: %v\n", detached)
	}
	return len(problems)
}
