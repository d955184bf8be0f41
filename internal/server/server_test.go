package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		args    []string
		want    Request
		wantErr bool
	}{
		{nil, Request{Preset: presets.DefaultPreset}, false},
		{[]string{"seed=42"}, Request{Preset: presets.DefaultPreset, Seed: 42}, false},
		{[]string{"preset=packed", "rows=21", "COLS=31"}, Request{Preset: "packed", Rows: 21, Cols: 31}, false},
		{[]string{"seed"}, Request{}, true},
		{[]string{"seed="}, Request{}, true},
		{[]string{"seed=abc"}, Request{}, true},
		{[]string{"colour=red"}, Request{}, true},
		{[]string{"rows=99999", "cols=99999"}, Request{}, true},
		{[]string{"cols=203"}, Request{}, true},
		{[]string{"rows=201"}, Request{Preset: presets.DefaultPreset, Rows: 201}, false},
	}

	for _, tt := range tests {
		got, err := ParseRequest(tt.args)
		if tt.wantErr {
			if !errors.Is(err, ErrBadRequest) {
				t.Errorf("ParseRequest(%q) error = %v, want ErrBadRequest", tt.args, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRequest(%q) error: %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRequest(%q) = %+v, want %+v", tt.args, got, tt.want)
		}
	}
}

func TestRequestParams(t *testing.T) {
	reg := presets.MustLoadPresetRegistry()

	p, err := Request{Preset: "default", Seed: 9, Rows: 25}.Params(reg)
	if err != nil {
		t.Fatalf("Params error: %v", err)
	}
	base, _ := reg.Params("default", 9)
	if p.Rows != 25 || p.Cols != base.Cols || p.Seed != 9 {
		t.Errorf("Params = rows %d cols %d seed %d, want 25 %d 9", p.Rows, p.Cols, p.Seed, base.Cols)
	}

	if _, err := (Request{Preset: "nowhere"}).Params(reg); !errors.Is(err, presets.ErrUnknownPreset) {
		t.Errorf("unknown preset error = %v, want ErrUnknownPreset", err)
	}
}

func newTestServer() *SSHServer {
	log := logrus.New()
	log.SetOutput(io.Discard)
	s := NewSSHServer("", "", presets.MustLoadPresetRegistry(), log)
	s.now = func() time.Time { return time.Unix(0, 777) }
	return s
}

func TestServeWritesTextDump(t *testing.T) {
	s := newTestServer()
	var buf bytes.Buffer

	if err := s.serve(context.Background(), &buf, []string{"seed=12345"}, false); err != nil {
		t.Fatalf("serve error: %v", err)
	}

	p, _ := presets.MustLoadPresetRegistry().Params(presets.DefaultPreset, 12345)
	d, err := world.Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	header, body, _ := strings.Cut(buf.String(), "\n")
	if !strings.Contains(header, "seed 12345") {
		t.Errorf("header = %q, want seed 12345", header)
	}
	if body != d.Text() {
		t.Error("served map differs from a local generation with the same seed")
	}
}

func TestServeDefaultsSeed(t *testing.T) {
	s := newTestServer()
	var buf bytes.Buffer

	if err := s.serve(context.Background(), &buf, nil, false); err != nil {
		t.Fatalf("serve error: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "seed 777 ") {
		t.Errorf("output starts %q, want clock seed 777", strings.SplitN(buf.String(), "\n", 2)[0])
	}
}

func TestServeRejectsBadInput(t *testing.T) {
	s := newTestServer()
	tests := [][]string{
		{"rows"},
		{"preset=missing"},
		{"rows=2"},
		{"rows=99999", "cols=99999"},
	}
	for _, args := range tests {
		var buf bytes.Buffer
		if err := s.serve(context.Background(), &buf, args, false); err == nil {
			t.Errorf("serve(%q) succeeded, want error", args)
		}
	}
}
