package world

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/donjon/internal/telemetry"
)

// Report counts what a generation run attempted and achieved.
type Report struct {
	RoomAttempts    int
	RoomsPlaced     int
	DoorsOpened     int
	DoorsKept       int
	SillsExhausted  int // Rooms that ran out of sills before their door budget
	StairCandidates int
	StairsRequested int
	StairsPlaced    int
	CellsCollapsed  int
}

// Dungeon holds the grid and records of one generation run.
type Dungeon struct {
	params   Params
	rows     int
	cols     int
	halfRows int
	halfCols int

	cells  [][]Cell
	rooms  []*Room // Indexed by id-1
	doors  []*Door
	stairs []Stair
	report Report

	rng Rand
	log logrus.FieldLogger

	connect   map[string]int
	generated bool
}

// Option configures a Dungeon before generation.
type Option func(*Dungeon)

// WithRand replaces the seeded stream with r.
func WithRand(r Rand) Option {
	return func(d *Dungeon) {
		d.rng = r
	}
}

// WithLogger sets the logger phases report to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dungeon) {
		d.log = l
	}
}

// NewDungeon validates the parameters and prepares an empty run.
func NewDungeon(p Params, opts ...Option) (*Dungeon, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := &Dungeon{
		params:   p,
		rows:     p.Rows,
		cols:     p.Cols,
		halfRows: p.Rows / 2,
		halfCols: p.Cols / 2,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		d.rng = NewRand(p.Seed)
	}
	if d.log == nil {
		d.log = discardLogger()
	}
	return d, nil
}

// Generate builds a dungeon from p in one call.
func Generate(ctx context.Context, p Params, opts ...Option) (*Dungeon, error) {
	d, err := NewDungeon(p, opts...)
	if err != nil {
		return nil, err
	}
	if err := d.Generate(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Generate runs every phase once. A dungeon whose generation failed
// must be discarded.
func (d *Dungeon) Generate(ctx context.Context) error {
	if d.generated {
		return ErrAlreadyGenerated
	}
	d.generated = true

	tracer := telemetry.Tracer("world")
	ctx, span := tracer.Start(ctx, "dungeon.generate")
	defer span.End()

	startTime := time.Now()

	phases := []struct {
		name string
		run  func() error
	}{
		{"cells", d.initCells},
		{"rooms", d.emplaceRooms},
		{"doors", d.openRooms},
		{"labels", d.labelRooms},
		{"corridors", d.corridors},
		{"stairs", d.emplaceStairs},
		{"deadends", d.removeDeadends},
		{"fixdoors", d.fixDoors},
		{"blocks", d.emptyBlocks},
	}

	for _, phase := range phases {
		_, phaseSpan := tracer.Start(ctx, "dungeon."+phase.name)
		err := phase.run()
		phaseSpan.End()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return fmt.Errorf("%s phase: %w", phase.name, err)
		}
		d.log.WithField("phase", phase.name).Debug("phase complete")
	}

	span.SetAttributes(
		attribute.Int64("dungeon.seed", d.params.Seed),
		attribute.Int("dungeon.rows", d.rows),
		attribute.Int("dungeon.cols", d.cols),
		attribute.Int("dungeon.room_count", len(d.rooms)),
		attribute.Int("dungeon.door_count", len(d.doors)),
		attribute.Int("dungeon.stair_count", len(d.stairs)),
		attribute.Int("dungeon.cells_collapsed", d.report.CellsCollapsed),
		attribute.Int64("dungeon.generation_ms", time.Since(startTime).Milliseconds()),
	)

	d.log.WithFields(logrus.Fields{
		"seed":   d.params.Seed,
		"rooms":  len(d.rooms),
		"doors":  len(d.doors),
		"stairs": len(d.stairs),
	}).Info("dungeon generated")

	return nil
}

// Params returns the normalized parameters of the run.
func (d *Dungeon) Params() Params {
	return d.params
}

// Rows returns the grid height.
func (d *Dungeon) Rows() int { return d.rows }

// Cols returns the grid width.
func (d *Dungeon) Cols() int { return d.cols }

// HalfRows returns the number of half-space rows.
func (d *Dungeon) HalfRows() int { return d.halfRows }

// HalfCols returns the number of half-space columns.
func (d *Dungeon) HalfCols() int { return d.halfCols }

// Cell returns the cell at the given position, or Nothing outside the grid.
func (d *Dungeon) Cell(r, c int) Cell {
	if r < 0 || r >= d.rows || c < 0 || c >= d.cols || d.cells == nil {
		return Nothing
	}
	return d.cells[r][c]
}

// CellAt returns the cell at p, or Nothing outside the grid.
func (d *Dungeon) CellAt(p Real) Cell {
	return d.Cell(p.R, p.C)
}

// Grid returns a copy of the cell grid.
func (d *Dungeon) Grid() [][]Cell {
	grid := make([][]Cell, len(d.cells))
	for r := range d.cells {
		grid[r] = append([]Cell(nil), d.cells[r]...)
	}
	return grid
}

// Rooms returns the rooms in ascending id order. The slice and the rooms are
// the dungeon's own; callers must not modify them.
func (d *Dungeon) Rooms() []*Room {
	return d.rooms
}

// RoomCount returns the number of rooms placed.
func (d *Dungeon) RoomCount() int {
	return len(d.rooms)
}

// Room returns the room with the given id, or nil.
func (d *Dungeon) Room(id int) *Room {
	if id < 1 || id > len(d.rooms) {
		return nil
	}
	return d.rooms[id-1]
}

// RoomAt returns the room containing p, or nil.
func (d *Dungeon) RoomAt(p Real) *Room {
	c := d.CellAt(p)
	if !c.Has(RoomSpace) {
		return nil
	}
	id, _ := c.RoomID()
	return d.Room(id)
}

// Doors returns the consolidated door list. Like Rooms, the result is shared
// with the dungeon and must be treated as read-only.
func (d *Dungeon) Doors() []*Door {
	return d.doors
}

// DoorAt returns the door on cell p, or nil.
func (d *Dungeon) DoorAt(p Real) *Door {
	for _, door := range d.doors {
		if door.Coord() == p {
			return door
		}
	}
	return nil
}

// Stairs returns the placed stairs.
func (d *Dungeon) Stairs() []Stair {
	return d.stairs
}

// Report returns the run's counters.
func (d *Dungeon) Report() Report {
	return d.report
}

func (d *Dungeon) inBounds(p Real) bool {
	return p.R >= 0 && p.R < d.rows && p.C >= 0 && p.C < d.cols
}

func (d *Dungeon) at(p Real) Cell {
	if !d.inBounds(p) {
		return Nothing
	}
	return d.cells[p.R][p.C]
}

func (d *Dungeon) set(p Real, c Cell) {
	d.cells[p.R][p.C] = c
}

func (d *Dungeon) maxRow() int { return d.rows - 1 }

func (d *Dungeon) maxCol() int { return d.cols - 1 }

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
