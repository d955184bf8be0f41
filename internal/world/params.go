package world

import (
	"fmt"
	"strings"
)

// Default dungeon parameters.
const (
	DefaultRows           = 39
	DefaultCols           = 39
	DefaultRoomMin        = 3
	DefaultRoomMax        = 9
	DefaultRemoveDeadends = 50
	DefaultStairs         = 2

	// MinDimension is the smallest accepted row or column count.
	MinDimension = 5
	// MaxDimension is the largest accepted row or column count.
	MaxDimension = 1001
)

// Layout selects the mask applied to the grid before rooms are placed.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutBox
	LayoutCross
	LayoutRound
)

var layoutNames = map[Layout]string{
	LayoutNone:  "none",
	LayoutBox:   "box",
	LayoutCross: "cross",
	LayoutRound: "round",
}

// String returns the layout name.
func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return "unknown"
}

// ParseLayout parses a layout name.
func ParseLayout(s string) (Layout, error) {
	for l, name := range layoutNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return LayoutNone, fmt.Errorf("%w: dungeon layout %q", ErrUnknownLayout, s)
}

// RoomLayout selects the room placement strategy.
type RoomLayout int

const (
	RoomsScattered RoomLayout = iota
	RoomsPacked
)

// String returns the room layout name.
func (l RoomLayout) String() string {
	switch l {
	case RoomsScattered:
		return "scattered"
	case RoomsPacked:
		return "packed"
	default:
		return "unknown"
	}
}

// ParseRoomLayout parses a room layout name.
func ParseRoomLayout(s string) (RoomLayout, error) {
	switch strings.ToLower(s) {
	case "scattered", "scatter":
		return RoomsScattered, nil
	case "packed", "dense":
		return RoomsPacked, nil
	}
	return RoomsScattered, fmt.Errorf("%w: room layout %q", ErrUnknownLayout, s)
}

// CorridorLayout controls how often a tunnel keeps its previous heading.
type CorridorLayout int

const (
	CorridorLabyrinth CorridorLayout = iota
	CorridorBent
	CorridorStraight
)

// Straightness returns the percent chance of continuing straight.
func (l CorridorLayout) Straightness() int {
	switch l {
	case CorridorBent:
		return 50
	case CorridorStraight:
		return 100
	default:
		return 0
	}
}

// String returns the corridor layout name.
func (l CorridorLayout) String() string {
	switch l {
	case CorridorLabyrinth:
		return "labyrinth"
	case CorridorBent:
		return "bent"
	case CorridorStraight:
		return "straight"
	default:
		return "unknown"
	}
}

// ParseCorridorLayout parses a corridor layout name.
func ParseCorridorLayout(s string) (CorridorLayout, error) {
	switch strings.ToLower(s) {
	case "labyrinth", "maze":
		return CorridorLabyrinth, nil
	case "bent", "errant":
		return CorridorBent, nil
	case "straight":
		return CorridorStraight, nil
	}
	return CorridorBent, fmt.Errorf("%w: corridor layout %q", ErrUnknownLayout, s)
}

// Params holds the inputs of a generation run.
type Params struct {
	Seed int64

	// Rows and Cols must both be odd.
	Rows int
	Cols int

	Layout Layout

	// RoomMin and RoomMax bound room extents in real-space cells.
	RoomMin    int
	RoomMax    int
	RoomLayout RoomLayout

	Corridor CorridorLayout

	// RemoveDeadends is the percentage of dead ends to collapse.
	RemoveDeadends int

	// Stairs is the number of stairs to place. Zero skips the phase.
	Stairs int
}

// DefaultParams returns the standard 39x39 scattered dungeon.
func DefaultParams() Params {
	return Params{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		Layout:         LayoutNone,
		RoomMin:        DefaultRoomMin,
		RoomMax:        DefaultRoomMax,
		RoomLayout:     RoomsScattered,
		Corridor:       CorridorBent,
		RemoveDeadends: DefaultRemoveDeadends,
		Stairs:         DefaultStairs,
	}
}

// Normalize swaps an inverted room size range.
func (p Params) Normalize() Params {
	if p.RoomMin > p.RoomMax {
		p.RoomMin, p.RoomMax = p.RoomMax, p.RoomMin
	}
	return p
}

// Validate checks the parameters, returning an error wrapping
// ErrInvalidParams for the first problem found.
func (p Params) Validate() error {
	switch {
	case p.Rows < MinDimension || p.Cols < MinDimension:
		return fmt.Errorf("%w: dimensions %dx%d below minimum %d", ErrInvalidParams, p.Rows, p.Cols, MinDimension)
	case p.Rows > MaxDimension || p.Cols > MaxDimension:
		return fmt.Errorf("%w: dimensions %dx%d above maximum %d", ErrInvalidParams, p.Rows, p.Cols, MaxDimension)
	case p.Rows%2 == 0 || p.Cols%2 == 0:
		return fmt.Errorf("%w: dimensions %dx%d must be odd", ErrInvalidParams, p.Rows, p.Cols)
	case p.RoomMin < 1 || p.RoomMax < 1:
		return fmt.Errorf("%w: room size %d..%d must be positive", ErrInvalidParams, p.RoomMin, p.RoomMax)
	case p.RemoveDeadends < 0 || p.RemoveDeadends > 100:
		return fmt.Errorf("%w: dead end removal %d%% outside 0..100", ErrInvalidParams, p.RemoveDeadends)
	case p.Stairs < 0:
		return fmt.Errorf("%w: negative stair count %d", ErrInvalidParams, p.Stairs)
	}

	if _, ok := layoutNames[p.Layout]; !ok {
		return fmt.Errorf("%w: %w: dungeon layout %d", ErrInvalidParams, ErrUnknownLayout, p.Layout)
	}
	if p.RoomLayout.String() == "unknown" {
		return fmt.Errorf("%w: %w: room layout %d", ErrInvalidParams, ErrUnknownLayout, p.RoomLayout)
	}
	if p.Corridor.String() == "unknown" {
		return fmt.Errorf("%w: %w: corridor layout %d", ErrInvalidParams, ErrUnknownLayout, p.Corridor)
	}
	return nil
}

// roomBase is the minimum room extent in half-space.
func (p Params) roomBase() int {
	return (p.RoomMin + 1) / 2
}

// roomRadix is the number of extra half-space sizes a room may draw.
func (p Params) roomRadix() int {
	return (p.RoomMax-p.RoomMin)/2 + 1
}
