package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/donjon/internal/telemetry"
	"github.com/samdwyer/donjon/internal/ui"
	"github.com/samdwyer/donjon/internal/world"
)

// Viewer holds the interactive session state.
type Viewer struct {
	screen   *ui.Screen
	renderer *ui.Renderer
	log      logrus.FieldLogger

	params  world.Params
	dungeon *world.Dungeon
	cursor  *Cursor

	state       State
	showSecrets bool
	showLabels  bool
	message     string
	running     bool
}

// New creates a viewer on the terminal.
func New(cfg Config) (*Viewer, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return newViewer(screen, cfg), nil
}

func newViewer(screen *ui.Screen, cfg Config) *Viewer {
	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Viewer{
		screen:      screen,
		renderer:    ui.NewRenderer(screen, cfg.Palette),
		log:         log,
		params:      cfg.Params,
		state:       StateMap,
		showSecrets: cfg.ShowSecrets,
		running:     true,
	}
}

// Run executes the main loop until the user quits.
func (v *Viewer) Run(ctx context.Context) error {
	if err := v.regenerate(ctx); err != nil {
		v.screen.Close()
		return err
	}

	for v.running {
		v.renderer.Render(v.dungeon, v.view())
		v.handleInput(ctx)
	}

	v.screen.Close()
	return nil
}

func (v *Viewer) view() ui.View {
	return ui.View{
		Cursor:      v.cursor.Position(),
		ShowSecrets: v.showSecrets,
		ShowLabels:  v.showLabels,
		ShowLegend:  v.state == StateLegend,
		Status:      v.message,
	}
}

// regenerate builds the dungeon for the current parameters and puts the
// cursor in the first room.
func (v *Viewer) regenerate(ctx context.Context) error {
	tracer := telemetry.Tracer("viewer")
	ctx, span := tracer.Start(ctx, "viewer.regenerate")
	defer span.End()

	d, err := world.Generate(ctx, v.params, world.WithLogger(v.log))
	if err != nil {
		return fmt.Errorf("generate seed %d: %w", v.params.Seed, err)
	}
	v.dungeon = d

	start := world.Real{R: d.Rows() / 2, C: d.Cols() / 2}
	if rooms := d.Rooms(); len(rooms) > 0 {
		start = rooms[0].Center()
	}
	v.cursor = NewCursor(start)

	span.SetAttributes(
		attribute.Int64("dungeon.seed", v.params.Seed),
		attribute.Int("dungeon.rooms", d.RoomCount()),
		attribute.Int("cursor.row", start.R),
		attribute.Int("cursor.col", start.C),
	)

	v.message = fmt.Sprintf("seed %d  rooms %d  doors %d  stairs %d  (? for help)",
		v.params.Seed, d.RoomCount(), len(d.Doors()), len(d.Stairs()))
	return nil
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	ev := v.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		v.screen.Sync()
	case nil:
		// Screen finalized underneath us.
		v.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (v *Viewer) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if v.state == StateLegend {
			v.state = StateMap
			return
		}
		v.running = false

	case tcell.KeyUp:
		v.moveCursor(-1, 0)
	case tcell.KeyDown:
		v.moveCursor(1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'n':
			v.reseed(ctx, v.params.Seed+1)
		case 'p':
			v.reseed(ctx, v.params.Seed-1)
		case 'r':
			v.reseed(ctx, time.Now().UnixNano())
		case 's':
			v.showSecrets = !v.showSecrets
		case 'l':
			v.showLabels = !v.showLabels
		case '?':
			if v.state == StateLegend {
				v.state = StateMap
			} else {
				v.state = StateLegend
			}
		}
	}
}

func (v *Viewer) moveCursor(dr, dc int) {
	v.cursor.Move(dr, dc, v.dungeon.Rows(), v.dungeon.Cols())
}

func (v *Viewer) reseed(ctx context.Context, seed int64) {
	previous := v.params.Seed
	v.params.Seed = seed
	if err := v.regenerate(ctx); err != nil {
		v.log.WithError(err).Error("regeneration failed")
		v.params.Seed = previous
		v.message = err.Error()
	}
}
