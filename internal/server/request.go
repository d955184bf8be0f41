package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

// ErrBadRequest is returned for malformed session commands.
var ErrBadRequest = errors.New("bad request")

// MaxDimension caps the rows and cols a session may ask for.
const MaxDimension = 201

// Request is a parsed session command.
type Request struct {
	Preset string
	Seed   int64
	Rows   int
	Cols   int
}

// ParseRequest reads key=value tokens. Unset keys keep their zero value;
// a zero seed is replaced by the caller.
func ParseRequest(args []string) (Request, error) {
	req := Request{Preset: presets.DefaultPreset}

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || value == "" {
			return Request{}, fmt.Errorf("%w: %q is not key=value", ErrBadRequest, arg)
		}

		var err error
		switch strings.ToLower(key) {
		case "preset":
			req.Preset = value
		case "seed":
			req.Seed, err = strconv.ParseInt(value, 10, 64)
		case "rows":
			req.Rows, err = strconv.Atoi(value)
		case "cols":
			req.Cols, err = strconv.Atoi(value)
		default:
			return Request{}, fmt.Errorf("%w: unknown key %q", ErrBadRequest, key)
		}
		if err != nil {
			return Request{}, fmt.Errorf("%w: %s: %w", ErrBadRequest, key, err)
		}
	}
	if req.Rows > MaxDimension || req.Cols > MaxDimension {
		return Request{}, fmt.Errorf("%w: %dx%d above maximum %d", ErrBadRequest, req.Rows, req.Cols, MaxDimension)
	}
	return req, nil
}

// Params resolves the request against a preset registry.
func (r Request) Params(reg *presets.PresetRegistry) (world.Params, error) {
	p, err := reg.Params(r.Preset, r.Seed)
	if err != nil {
		return world.Params{}, err
	}
	if r.Rows > 0 {
		p.Rows = r.Rows
	}
	if r.Cols > 0 {
		p.Cols = r.Cols
	}
	return p, nil
}
