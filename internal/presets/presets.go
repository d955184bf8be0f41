package presets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/donjon/internal/world"
)

// DefaultPreset is the preset used when none is named.
const DefaultPreset = "default"

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetDef is a named set of generation parameters as stored in JSON.
type PresetDef struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	Layout         string `json:"layout"`
	RoomMin        int    `json:"roomMin"`
	RoomMax        int    `json:"roomMax"`
	RoomLayout     string `json:"roomLayout"`
	Corridor       string `json:"corridor"`
	RemoveDeadends int    `json:"removeDeadends"`
	Stairs         int    `json:"stairs"`
}

// Params converts the preset to generation parameters for a seed.
func (p PresetDef) Params(seed int64) (world.Params, error) {
	layout, err := world.ParseLayout(p.Layout)
	if err != nil {
		return world.Params{}, fmt.Errorf("preset %s: %w", p.ID, err)
	}
	roomLayout, err := world.ParseRoomLayout(p.RoomLayout)
	if err != nil {
		return world.Params{}, fmt.Errorf("preset %s: %w", p.ID, err)
	}
	corridor, err := world.ParseCorridorLayout(p.Corridor)
	if err != nil {
		return world.Params{}, fmt.Errorf("preset %s: %w", p.ID, err)
	}

	return world.Params{
		Seed:           seed,
		Rows:           p.Rows,
		Cols:           p.Cols,
		Layout:         layout,
		RoomMin:        p.RoomMin,
		RoomMax:        p.RoomMax,
		RoomLayout:     roomLayout,
		Corridor:       corridor,
		RemoveDeadends: p.RemoveDeadends,
		Stairs:         p.Stairs,
	}, nil
}

// LoadPresets loads the embedded presets.json.
func LoadPresets() ([]PresetDef, error) {
	return Load[[]PresetDef]("presets.json")
}

// PresetRegistry holds loaded presets and provides lookup by id.
type PresetRegistry struct {
	presets map[string]*PresetDef
	all     []PresetDef
}

// NewPresetRegistry creates a registry from loaded preset definitions.
func NewPresetRegistry(presets []PresetDef) *PresetRegistry {
	registry := &PresetRegistry{
		presets: make(map[string]*PresetDef),
		all:     presets,
	}
	for i := range presets {
		registry.presets[presets[i].ID] = &presets[i]
	}
	return registry
}

// LoadPresetRegistry loads and creates a registry from the embedded presets.json.
func LoadPresetRegistry() (*PresetRegistry, error) {
	presets, err := LoadPresets()
	if err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, errors.New("no presets loaded from presets.json")
	}
	return NewPresetRegistry(presets), nil
}

// MustLoadPresetRegistry loads a registry, panicking on error.
func MustLoadPresetRegistry() *PresetRegistry {
	registry, err := LoadPresetRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// With returns a registry holding r's presets plus extra. An extra preset
// replaces a registered one with the same id.
func (r *PresetRegistry) With(extra []PresetDef) *PresetRegistry {
	merged := make([]PresetDef, 0, len(r.all)+len(extra))
	replaced := make(map[string]bool, len(extra))
	for _, p := range extra {
		replaced[p.ID] = true
	}
	for _, p := range r.all {
		if !replaced[p.ID] {
			merged = append(merged, p)
		}
	}
	return NewPresetRegistry(append(merged, extra...))
}

// LoadPresetFile adds the presets of a JSON file on disk to r.
func (r *PresetRegistry) LoadPresetFile(path string) (*PresetRegistry, error) {
	extra, err := LoadFile[[]PresetDef](path)
	if err != nil {
		return nil, fmt.Errorf("preset file: %w", err)
	}
	for _, p := range extra {
		if _, err := p.Params(1); err != nil {
			return nil, err
		}
	}
	return r.With(extra), nil
}

// GetByID returns the preset with the given id, or nil if not found.
func (r *PresetRegistry) GetByID(id string) *PresetDef {
	return r.presets[id]
}

// Params resolves a preset name to parameters. An empty name selects
// DefaultPreset.
func (r *PresetRegistry) Params(id string, seed int64) (world.Params, error) {
	if id == "" {
		id = DefaultPreset
	}
	preset := r.GetByID(id)
	if preset == nil {
		return world.Params{}, fmt.Errorf("%w: %q", ErrUnknownPreset, id)
	}
	return preset.Params(seed)
}

// Names returns the registered preset ids in sorted order.
func (r *PresetRegistry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for id := range r.presets {
		names = append(names, id)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of presets in the registry.
func (r *PresetRegistry) Count() int {
	return len(r.all)
}
