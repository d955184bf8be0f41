package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestParseOptionsDefaults(t *testing.T) {
	o, err := parseOptions(nil, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("parseOptions error: %v", err)
	}
	if o.preset != presets.DefaultPreset || o.seed != 0 || o.lang != "en" || o.logLevel != logrus.InfoLevel {
		t.Errorf("defaults = preset %q seed %d lang %q level %v", o.preset, o.seed, o.lang, o.logLevel)
	}
	if len(o.set) != 0 {
		t.Errorf("set = %v, want empty", o.set)
	}
}

func TestParseOptionsEnvironment(t *testing.T) {
	vars := map[string]string{
		"DONJON_SEED":      "77",
		"DONJON_PRESET":    "packed",
		"DONJON_LOG_LEVEL": "debug",
		"DONJON_LANG":      "de",
	}

	o, err := parseOptions(nil, env(vars), io.Discard)
	if err != nil {
		t.Fatalf("parseOptions error: %v", err)
	}
	if o.seed != 77 || o.preset != "packed" || o.lang != "de" || o.logLevel != logrus.DebugLevel {
		t.Errorf("env options = seed %d preset %q lang %q level %v", o.seed, o.preset, o.lang, o.logLevel)
	}

	o, err = parseOptions([]string{"-seed", "5"}, env(vars), io.Discard)
	if err != nil {
		t.Fatalf("parseOptions error: %v", err)
	}
	if o.seed != 5 {
		t.Errorf("flag seed = %d, want 5 over environment", o.seed)
	}
}

func TestParseOptionsErrors(t *testing.T) {
	tests := []struct {
		args []string
		vars map[string]string
	}{
		{[]string{"-format", "svg"}, nil},
		{[]string{"-log-level", "loud"}, nil},
		{[]string{"-rows", "x"}, nil},
		{[]string{"extra"}, nil},
		{nil, map[string]string{"DONJON_SEED": "seedy"}},
	}
	for _, tt := range tests {
		var stderr bytes.Buffer
		if _, err := parseOptions(tt.args, env(tt.vars), &stderr); err == nil {
			t.Errorf("parseOptions(%q, %v) succeeded, want error", tt.args, tt.vars)
		}
		if stderr.Len() == 0 {
			t.Errorf("parseOptions(%q, %v) wrote nothing to stderr", tt.args, tt.vars)
		}
	}

	_, err := parseOptions([]string{"-format", "svg"}, env(nil), io.Discard)
	if !errors.Is(err, errBadFormat) {
		t.Errorf("bad format error = %v, want errBadFormat", err)
	}
}

func TestOptionsParams(t *testing.T) {
	reg := presets.MustLoadPresetRegistry()
	fixed := func() time.Time { return time.Unix(0, 4242) }

	base, err := reg.Params(presets.DefaultPreset, 1)
	if err != nil {
		t.Fatalf("preset error: %v", err)
	}

	tests := []struct {
		name  string
		args  []string
		check func(p world.Params) bool
	}{
		{"preset only", []string{"-seed", "1"}, func(p world.Params) bool {
			return p == base
		}},
		{"clock seed", nil, func(p world.Params) bool {
			return p.Seed == 4242
		}},
		{"dimensions", []string{"-rows", "21", "-cols", "51"}, func(p world.Params) bool {
			return p.Rows == 21 && p.Cols == 51 && p.RoomMax == base.RoomMax
		}},
		{"zero dead ends is explicit", []string{"-deadends", "0"}, func(p world.Params) bool {
			return p.RemoveDeadends == 0
		}},
		{"layouts", []string{"-layout", "cross", "-room-layout", "packed", "-corridor", "straight"}, func(p world.Params) bool {
			return p.Layout == world.LayoutCross && p.RoomLayout == world.RoomsPacked && p.Corridor == world.CorridorStraight
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := parseOptions(tt.args, env(nil), io.Discard)
			if err != nil {
				t.Fatalf("parseOptions error: %v", err)
			}
			p, err := o.params(reg, fixed)
			if err != nil {
				t.Fatalf("params error: %v", err)
			}
			if !tt.check(p) {
				t.Errorf("params = %+v", p)
			}
		})
	}
}

func TestOptionsParamsErrors(t *testing.T) {
	reg := presets.MustLoadPresetRegistry()
	tests := [][]string{
		{"-preset", "nowhere"},
		{"-layout", "hexagon"},
		{"-corridor", "wiggly"},
	}
	for _, args := range tests {
		o, err := parseOptions(args, env(nil), io.Discard)
		if err != nil {
			t.Fatalf("parseOptions(%q) error: %v", args, err)
		}
		if _, err := o.params(reg, time.Now); err == nil {
			t.Errorf("params for %q succeeded, want error", args)
		}
	}
}

func TestOptionsRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	content := `[{"id":"closet","rows":11,"cols":11,"layout":"none","roomMin":3,"roomMax":3,"roomLayout":"scattered","corridor":"bent","removeDeadends":0,"stairs":0}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := parseOptions([]string{"-presets", path, "-preset", "closet", "-seed", "3"}, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("parseOptions error: %v", err)
	}
	reg, err := o.registry()
	if err != nil {
		t.Fatalf("registry error: %v", err)
	}
	p, err := o.params(reg, time.Now)
	if err != nil {
		t.Fatalf("params error: %v", err)
	}
	if p.Rows != 11 || p.Seed != 3 {
		t.Errorf("closet params = %+v", p)
	}
}

func generate(t *testing.T, seed int64) *world.Dungeon {
	t.Helper()
	p := world.DefaultParams()
	p.Seed = seed
	d, err := world.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	return d
}

func TestWriteFormats(t *testing.T) {
	d := generate(t, 12345)

	var text bytes.Buffer
	if err := write(&text, d, options{format: formatText}); err != nil {
		t.Fatalf("text error: %v", err)
	}
	if text.String() != d.Text() {
		t.Error("text format differs from the dungeon dump")
	}

	var js bytes.Buffer
	if err := write(&js, d, options{format: formatJSON}); err != nil {
		t.Fatalf("json error: %v", err)
	}
	var decoded jsonDungeon
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("json output does not decode: %v", err)
	}
	if got := decoded.Cells.Total(); got != d.Rows()*d.Cols() {
		t.Errorf("json cells total %d, want %d", got, d.Rows()*d.Cols())
	}
	if decoded.Seed != 12345 || len(decoded.Map) != d.Rows() || len(decoded.Rooms) != d.RoomCount() || len(decoded.Doors) != len(d.Doors()) {
		t.Errorf("json = seed %d, %d map rows, %d rooms, %d doors", decoded.Seed, len(decoded.Map), len(decoded.Rooms), len(decoded.Doors))
	}

	var img bytes.Buffer
	if err := write(&img, d, options{format: formatPNG, cellSize: 4}); err != nil {
		t.Fatalf("png error: %v", err)
	}
	cfg, err := png.DecodeConfig(&img)
	if err != nil {
		t.Fatalf("png output does not decode: %v", err)
	}
	if cfg.Width != d.Cols()*4 || cfg.Height != d.Rows()*4 {
		t.Errorf("png size = %dx%d, want %dx%d", cfg.Width, cfg.Height, d.Cols()*4, d.Rows()*4)
	}

	var desc bytes.Buffer
	if err := write(&desc, d, options{format: formatDescribe, lang: "en"}); err != nil {
		t.Fatalf("describe error: %v", err)
	}
	if !strings.Contains(desc.String(), "12345") {
		t.Error("description does not mention the seed")
	}
}

func TestParseOptionsLabels(t *testing.T) {
	o, err := parseOptions([]string{"-labels", "-secrets"}, env(nil), io.Discard)
	if err != nil {
		t.Fatalf("parseOptions error: %v", err)
	}
	if !o.labels || !o.secrets {
		t.Errorf("labels = %v secrets = %v, want both set", o.labels, o.secrets)
	}

	d := generate(t, 12345)
	var plain, labelled bytes.Buffer
	if err := write(&plain, d, options{format: formatColor}); err != nil {
		t.Fatalf("color error: %v", err)
	}
	if err := write(&labelled, d, options{format: formatColor, labels: true}); err != nil {
		t.Fatalf("color error: %v", err)
	}
	if plain.String() == labelled.String() {
		t.Error("-labels did not change the color map")
	}
}

func TestWriteFile(t *testing.T) {
	d := generate(t, 12345)
	path := filepath.Join(t.TempDir(), "dungeon.txt")
	if err := writeFile(path, d, options{format: formatText}); err != nil {
		t.Fatalf("writeFile error: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != d.Text() {
		t.Error("file output differs from the dungeon dump")
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "dungeon.txt")
	if err := writeFile(missing, d, options{format: formatText}); err == nil {
		t.Error("writeFile into a missing directory succeeded")
	}
}

func TestCheckDungeon(t *testing.T) {
	d := generate(t, 34392)
	var buf bytes.Buffer
	if n := checkDungeon(&buf, d); n != 0 {
		t.Errorf("checkDungeon found %d problems:\n%s", n, buf.String())
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		o    options
		want string
	}{
		{options{}, "generate"},
		{options{view: true}, "view"},
		{options{serve: ":2222", view: true}, "serve"},
	}
	for _, tt := range tests {
		if got := mode(tt.o); got != tt.want {
			t.Errorf("mode(%+v) = %q, want %q", tt.o, got, tt.want)
		}
	}
}
