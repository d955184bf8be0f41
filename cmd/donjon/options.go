package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/render"
	"github.com/samdwyer/donjon/internal/world"
)

// Output formats accepted by -format.
const (
	formatText     = "text"
	formatColor    = "color"
	formatDescribe = "describe"
	formatJSON     = "json"
	formatPNG      = "png"
)

var errBadFormat = errors.New("unknown format")

// options is everything the command line and environment decide.
type options struct {
	preset      string
	presetsFile string
	seed        int64

	rows, cols       int
	layout           string
	roomMin, roomMax int
	roomLayout       string
	corridor         string
	deadends         int
	stairs           int

	format   string
	out      string
	cellSize int
	secrets  bool
	labels   bool
	lang     string
	logLevel logrus.Level

	check   bool
	view    bool
	serve   string
	hostKey string

	// set records which generation flags were given explicitly.
	set map[string]bool
}

// parseOptions reads flags from args with defaults from getenv.
func parseOptions(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("donjon", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// flag reports its own errors; the rest are printed here.
	fail := func(err error) (options, error) {
		fmt.Fprintf(stderr, "donjon: %v\n", err)
		return o, err
	}

	envSeed, err := envInt64(getenv, "DONJON_SEED")
	if err != nil {
		return fail(err)
	}
	preset := getenv("DONJON_PRESET")
	if preset == "" {
		preset = presets.DefaultPreset
	}
	level := getenv("DONJON_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	lang := getenv("DONJON_LANG")
	if lang == "" {
		lang = "en"
	}

	fs.Int64Var(&o.seed, "seed", envSeed, "random seed (0 picks one from the clock)")
	fs.StringVar(&o.preset, "preset", preset, "named parameter preset")
	fs.StringVar(&o.presetsFile, "presets", "", "JSON file of extra presets")
	fs.IntVar(&o.rows, "rows", 0, "dungeon rows, odd")
	fs.IntVar(&o.cols, "cols", 0, "dungeon columns, odd")
	fs.StringVar(&o.layout, "layout", "", "dungeon mask: none, box, cross, round")
	fs.IntVar(&o.roomMin, "room-min", 0, "minimum room size")
	fs.IntVar(&o.roomMax, "room-max", 0, "maximum room size")
	fs.StringVar(&o.roomLayout, "room-layout", "", "room placement: packed, scattered")
	fs.StringVar(&o.corridor, "corridor", "", "corridor style: labyrinth, bent, straight")
	fs.IntVar(&o.deadends, "deadends", 0, "percentage of dead ends to remove")
	fs.IntVar(&o.stairs, "stairs", 0, "number of stairs")

	fs.StringVar(&o.format, "format", "", "output: text, color, describe, json, png")
	fs.StringVar(&o.out, "out", "", "output file (default stdout)")
	fs.IntVar(&o.cellSize, "cell-size", render.DefaultCellSize, "png pixels per cell")
	fs.BoolVar(&o.secrets, "secrets", false, "reveal trapped and secret doors")
	fs.BoolVar(&o.labels, "labels", false, "show room numbers and door labels in the color map")
	fs.StringVar(&o.lang, "lang", lang, "report language")
	fs.StringVar(&level, "log-level", level, "log level")

	fs.BoolVar(&o.check, "check", false, "verify door structure and exit non-zero on problems")
	fs.BoolVar(&o.view, "view", false, "browse dungeons interactively")
	fs.StringVar(&o.serve, "serve", "", "serve dungeons over SSH on this address")
	fs.StringVar(&o.hostKey, "host-key", "", "SSH host key file")

	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return fail(fmt.Errorf("unexpected arguments: %v", fs.Args()))
	}

	o.logLevel, err = logrus.ParseLevel(level)
	if err != nil {
		return fail(err)
	}
	switch o.format {
	case "", formatText, formatColor, formatDescribe, formatJSON, formatPNG:
	default:
		return fail(fmt.Errorf("%w %q", errBadFormat, o.format))
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

func envInt64(getenv func(string) string, key string) (int64, error) {
	v := getenv(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// registry loads the embedded presets and any -presets file.
func (o options) registry() (*presets.PresetRegistry, error) {
	reg, err := presets.LoadPresetRegistry()
	if err != nil || o.presetsFile == "" {
		return reg, err
	}
	return reg.LoadPresetFile(o.presetsFile)
}

// params starts from the preset and applies explicit flags on top.
func (o options) params(reg *presets.PresetRegistry, now func() time.Time) (world.Params, error) {
	seed := o.seed
	if seed == 0 {
		seed = now().UnixNano()
	}

	p, err := reg.Params(o.preset, seed)
	if err != nil {
		return world.Params{}, err
	}

	if o.set["rows"] {
		p.Rows = o.rows
	}
	if o.set["cols"] {
		p.Cols = o.cols
	}
	if o.set["room-min"] {
		p.RoomMin = o.roomMin
	}
	if o.set["room-max"] {
		p.RoomMax = o.roomMax
	}
	if o.set["deadends"] {
		p.RemoveDeadends = o.deadends
	}
	if o.set["stairs"] {
		p.Stairs = o.stairs
	}
	if o.set["layout"] {
		if p.Layout, err = world.ParseLayout(o.layout); err != nil {
			return world.Params{}, err
		}
	}
	if o.set["room-layout"] {
		if p.RoomLayout, err = world.ParseRoomLayout(o.roomLayout); err != nil {
			return world.Params{}, err
		}
	}
	if o.set["corridor"] {
		if p.Corridor, err = world.ParseCorridorLayout(o.corridor); err != nil {
			return world.Params{}, err
		}
	}
	return p, nil
}
