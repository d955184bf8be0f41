// Package render draws dungeons as raster images.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/world"
)

// DefaultCellSize is the edge length of one cell in pixels.
const DefaultCellSize = 18

// Options controls image rendering.
type Options struct {
	CellSize int
	Palette  presets.Palette

	// ShowSecrets draws trapped and secret doors instead of plain wall.
	ShowSecrets bool
}

// DefaultOptions returns the standard style at the default cell size.
func DefaultOptions() Options {
	return Options{
		CellSize: DefaultCellSize,
		Palette:  presets.MustLoadPalette(presets.DefaultStyle),
	}
}

type canvas struct {
	img  *image.RGBA
	size int
	pal  struct {
		fill, open, grid, wall, door, stair, label color.RGBA
	}
}

// Render draws d into a new image, one square per cell.
func Render(d *world.Dungeon, opts Options) *image.RGBA {
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}

	cv := &canvas{
		img:  image.NewRGBA(image.Rect(0, 0, d.Cols()*opts.CellSize, d.Rows()*opts.CellSize)),
		size: opts.CellSize,
	}
	cv.pal.fill = presets.RGBA(opts.Palette.Fill)
	cv.pal.open = presets.RGBA(opts.Palette.Open)
	cv.pal.grid = presets.RGBA(opts.Palette.Grid)
	cv.pal.wall = presets.RGBA(opts.Palette.Wall)
	cv.pal.door = presets.RGBA(opts.Palette.Door)
	cv.pal.stair = presets.RGBA(opts.Palette.Stair)
	cv.pal.label = presets.RGBA(opts.Palette.Label)

	draw.Draw(cv.img, cv.img.Bounds(), &image.Uniform{C: cv.pal.fill}, image.Point{}, draw.Src)

	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			if d.Cell(r, c).IsOpen() {
				cv.openCell(r, c)
			}
		}
	}
	for r := 0; r < d.Rows(); r++ {
		for c := 0; c < d.Cols(); c++ {
			if d.Cell(r, c).IsOpen() {
				cv.walls(d, r, c)
			}
		}
	}

	for _, door := range d.Doors() {
		if door.IsHidden() && !opts.ShowSecrets {
			cv.sealed(door)
			continue
		}
		cv.door(door)
	}
	for _, s := range d.Stairs() {
		cv.stair(s)
	}
	return cv.img
}

// WritePNG renders d and encodes it as PNG.
func WritePNG(w io.Writer, d *world.Dungeon, opts Options) error {
	return png.Encode(w, Render(d, opts))
}

// cellRect returns the pixel bounds of cell (r, c).
func (cv *canvas) cellRect(r, c int) image.Rectangle {
	return image.Rect(c*cv.size, r*cv.size, (c+1)*cv.size, (r+1)*cv.size)
}

func (cv *canvas) fill(rect image.Rectangle, col color.RGBA) {
	draw.Draw(cv.img, rect, &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (cv *canvas) openCell(r, c int) {
	rect := cv.cellRect(r, c)
	cv.fill(rect, cv.pal.open)

	for x := rect.Min.X; x < rect.Max.X; x++ {
		cv.img.SetRGBA(x, rect.Min.Y, cv.pal.grid)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		cv.img.SetRGBA(rect.Min.X, y, cv.pal.grid)
	}
}

// walls outlines the sides of an open cell that face closed cells.
func (cv *canvas) walls(d *world.Dungeon, r, c int) {
	rect := cv.cellRect(r, c)
	p := world.Real{R: r, C: c}

	for _, dir := range []world.Direction{world.North, world.South, world.West, world.East} {
		if d.CellAt(p.Step(dir)).IsOpen() {
			continue
		}
		cv.fill(edge(rect, dir, 2), cv.pal.wall)
	}
}

// edge returns the strip of width w along the dir side of rect.
func edge(rect image.Rectangle, dir world.Direction, w int) image.Rectangle {
	switch dir {
	case world.North:
		return image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+w)
	case world.South:
		return image.Rect(rect.Min.X, rect.Max.Y-w, rect.Max.X, rect.Max.Y)
	case world.West:
		return image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+w, rect.Max.Y)
	default:
		return image.Rect(rect.Max.X-w, rect.Min.Y, rect.Max.X, rect.Max.Y)
	}
}

// door draws a door symbol across its passage.
func (cv *canvas) door(door *world.Door) {
	rect := cv.cellRect(door.Row, door.Col)
	vertical := door.Dir == world.North || door.Dir == world.South
	s := cv.size
	q := s / 4

	// Leaf spans the passage; jambs sit against the walls.
	var leaf image.Rectangle
	var jambs [2]image.Rectangle
	if vertical {
		leaf = image.Rect(rect.Min.X+q, rect.Min.Y+s/2-q/2, rect.Max.X-q, rect.Min.Y+s/2+q/2+1)
		jambs[0] = image.Rect(rect.Min.X, rect.Min.Y+s/2-1, rect.Min.X+q, rect.Min.Y+s/2+1)
		jambs[1] = image.Rect(rect.Max.X-q, rect.Min.Y+s/2-1, rect.Max.X, rect.Min.Y+s/2+1)
	} else {
		leaf = image.Rect(rect.Min.X+s/2-q/2, rect.Min.Y+q, rect.Min.X+s/2+q/2+1, rect.Max.Y-q)
		jambs[0] = image.Rect(rect.Min.X+s/2-1, rect.Min.Y, rect.Min.X+s/2+1, rect.Min.Y+q)
		jambs[1] = image.Rect(rect.Min.X+s/2-1, rect.Max.Y-q, rect.Min.X+s/2+1, rect.Max.Y)
	}

	cv.fill(jambs[0], cv.pal.wall)
	cv.fill(jambs[1], cv.pal.wall)

	switch door.Kind {
	case world.DoorKindArch:
	case world.DoorKindOpen:
		cv.outline(leaf, cv.pal.door)
	case world.DoorKindLocked:
		cv.fill(leaf, cv.pal.door)
	case world.DoorKindTrapped:
		cv.outline(leaf, cv.pal.door)
		center := image.Rect(leaf.Min.X+leaf.Dx()/2-1, leaf.Min.Y+leaf.Dy()/2-1, leaf.Min.X+leaf.Dx()/2+1, leaf.Min.Y+leaf.Dy()/2+1)
		cv.fill(center, cv.pal.label)
	case world.DoorKindSecret:
		cv.outline(leaf, cv.pal.label)
	case world.DoorKindPortcullis:
		cv.dotted(leaf, vertical, cv.pal.door)
	}
}

// sealed draws a hidden door as the wall it pretends to be.
func (cv *canvas) sealed(door *world.Door) {
	rect := cv.cellRect(door.Row, door.Col)
	vertical := door.Dir == world.North || door.Dir == world.South

	var band image.Rectangle
	if vertical {
		band = image.Rect(rect.Min.X, rect.Min.Y+cv.size/2-1, rect.Max.X, rect.Min.Y+cv.size/2+1)
	} else {
		band = image.Rect(rect.Min.X+cv.size/2-1, rect.Min.Y, rect.Min.X+cv.size/2+1, rect.Max.Y)
	}
	cv.fill(band, cv.pal.wall)
}

func (cv *canvas) outline(rect image.Rectangle, col color.RGBA) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		cv.img.SetRGBA(x, rect.Min.Y, col)
		cv.img.SetRGBA(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		cv.img.SetRGBA(rect.Min.X, y, col)
		cv.img.SetRGBA(rect.Max.X-1, y, col)
	}
}

func (cv *canvas) dotted(rect image.Rectangle, vertical bool, col color.RGBA) {
	if vertical {
		y := rect.Min.Y + rect.Dy()/2
		for x := rect.Min.X; x < rect.Max.X; x += 3 {
			cv.fill(image.Rect(x, y-1, x+2, y+1), col)
		}
		return
	}
	x := rect.Min.X + rect.Dx()/2
	for y := rect.Min.Y; y < rect.Max.Y; y += 3 {
		cv.fill(image.Rect(x-1, y, x+1, y+2), col)
	}
}

// stair draws treads across the stair cell. Down stairs narrow away from
// the corridor they are entered from; up stairs widen.
func (cv *canvas) stair(s world.Stair) {
	rect := cv.cellRect(s.Row, s.Col)
	dr := s.Row - s.NextRow
	dc := s.Col - s.NextCol
	treads := 4
	step := cv.size / (treads + 1)
	if step < 1 {
		step = 1
	}

	for i := 1; i <= treads; i++ {
		width := cv.size * (treads + 1 - i) / (treads + 1)
		if s.Kind == world.StairKindUp {
			width = cv.size * i / (treads + 1)
		}
		half := width / 2
		offset := i * step

		var tread image.Rectangle
		switch {
		case dr < 0:
			y := rect.Max.Y - offset
			tread = image.Rect(rect.Min.X+cv.size/2-half, y, rect.Min.X+cv.size/2+half, y+1)
		case dr > 0:
			y := rect.Min.Y + offset
			tread = image.Rect(rect.Min.X+cv.size/2-half, y, rect.Min.X+cv.size/2+half, y+1)
		case dc < 0:
			x := rect.Max.X - offset
			tread = image.Rect(x, rect.Min.Y+cv.size/2-half, x+1, rect.Min.Y+cv.size/2+half)
		default:
			x := rect.Min.X + offset
			tread = image.Rect(x, rect.Min.Y+cv.size/2-half, x+1, rect.Min.Y+cv.size/2+half)
		}
		cv.fill(tread, cv.pal.stair)
	}
}
