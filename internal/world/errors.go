package world

import "errors"

var (
	// ErrInvalidParams is returned when generation parameters are rejected.
	ErrInvalidParams = errors.New("invalid dungeon parameters")

	// ErrUnknownLayout is returned for an unrecognised layout name.
	ErrUnknownLayout = errors.New("unknown layout")

	// ErrDuplicateDoor is returned when two door records share a cell.
	ErrDuplicateDoor = errors.New("duplicate door coordinate")

	// ErrUnknownDoorType is returned when a door roll maps to no door type.
	ErrUnknownDoorType = errors.New("unknown door type")

	// ErrAlreadyGenerated is returned when Generate runs twice on one dungeon.
	ErrAlreadyGenerated = errors.New("dungeon already generated")
)
