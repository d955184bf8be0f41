// Package viewer provides the interactive dungeon browser.
package viewer

// State represents what the viewer is currently showing.
type State int

const (
	// StateMap is the default mode: the map with an inspect cursor.
	StateMap State = iota
	// StateLegend overlays the key bindings and glyph legend.
	StateLegend
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateMap:
		return "map"
	case StateLegend:
		return "legend"
	default:
		return "unknown"
	}
}
