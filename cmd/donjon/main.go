// Package main is the entry point for donjon.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/server"
	"github.com/samdwyer/donjon/internal/telemetry"
	"github.com/samdwyer/donjon/internal/viewer"
	"github.com/samdwyer/donjon/internal/world"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		log.Debugf("Note: .env file not loaded: %v", err)
	}

	o, err := parseOptions(args, os.Getenv, os.Stderr)
	if err != nil {
		return 2
	}
	log.SetLevel(o.logLevel)

	setupOTelEnv()

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{Mode: mode(o)})
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, continuing without tracing")
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.WithError(err).Error("telemetry shutdown")
			}
		}()
	}

	reg, err := o.registry()
	if err != nil {
		log.WithError(err).Error("loading presets")
		return 1
	}

	if o.serve != "" {
		srv := server.NewSSHServer(o.serve, o.hostKey, reg, log)
		if err := srv.Start(); err != nil {
			log.WithError(err).Error("SSH server stopped")
			return 1
		}
		return 0
	}

	p, err := o.params(reg, time.Now)
	if err != nil {
		log.WithError(err).Error("invalid parameters")
		return 1
	}

	if o.view {
		return runViewer(ctx, p, o, log)
	}

	d, err := world.Generate(ctx, p, world.WithLogger(log))
	if err != nil {
		log.WithError(err).Error("generation failed")
		return 1
	}

	if o.check {
		if n := checkDungeon(os.Stdout, d); n > 0 {
			log.WithField("problems", n).Error("door check failed")
			return 1
		}
		return 0
	}

	return emit(d, o, log)
}

func mode(o options) string {
	switch {
	case o.serve != "":
		return "serve"
	case o.view:
		return "view"
	default:
		return "generate"
	}
}

func runViewer(ctx context.Context, p world.Params, o options, log *logrus.Logger) int {
	// The viewer owns the terminal; keep log lines off it.
	log.SetOutput(io.Discard)

	v, err := viewer.New(viewer.Config{
		Params:      p,
		Palette:     presets.MustLoadPalette(presets.DefaultStyle),
		Logger:      log,
		ShowSecrets: o.secrets,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize viewer: %v\n", err)
		return 1
	}
	if err := v.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
		return 1
	}
	return 0
}

// emit writes the dungeon to -out or stdout.
func emit(d *world.Dungeon, o options, log *logrus.Logger) int {
	if o.out == "" {
		o.format = terminalFormat(o.format, d, log)
		if err := write(os.Stdout, d, o); err != nil {
			log.WithError(err).Error("writing dungeon")
			return 1
		}
		return 0
	}

	if err := writeFile(o.out, d, o); err != nil {
		log.WithError(err).Error("writing dungeon")
		return 1
	}
	return 0
}

// writeFile writes d to path, reporting a failed close as a failed write.
func writeFile(path string, d *world.Dungeon, o options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(f, d, o); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// terminalFormat picks color for an interactive stdout when no format was
// asked for, and warns when the map will wrap.
func terminalFormat(format string, d *world.Dungeon, log *logrus.Logger) string {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return format
	}
	if width, _, err := term.GetSize(fd); err == nil && width < d.Cols() {
		log.WithFields(logrus.Fields{"width": width, "cols": d.Cols()}).Warn("terminal narrower than the map")
	}
	if format == "" {
		return formatColor
	}
	return format
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_DONJON_API_KEY")
	if apiKey == "" {
		return
	}
	dataset := os.Getenv("HONEYCOMB_DONJON_DATASET")
	if dataset == "" {
		dataset = "donjon"
	}
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
		fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
}
