package ui

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"throng/internal/enemy"
	"throng/internal/game"
	"throng/internal/pet"
	"throng/internal/spawn"
	"throng/internal/world"
)

const (
	cellWidth     = 2 // terminal columns per arena cell, wide enough for one emoji
	emptyCell     = "  "
	minArenaRows  = 6
	minArenaCols  = 10
	defaultWidth  = 80
	defaultHeight = 24
)

// Arena maps world coordinates onto a grid of terminal cells.
type Arena struct {
	Cols   int
	Rows   int
	Bounds world.Bounds
}

// newArena sizes the grid to what is left of the terminal after the
// surrounding panels.
func newArena(termWidth, termHeight int, b world.Bounds) Arena {
	if termWidth <= 0 || termHeight <= 0 {
		termWidth, termHeight = defaultWidth, defaultHeight
	}
	return Arena{
		Cols:   max((termWidth-2)/cellWidth, minArenaCols),
		Rows:   max(termHeight-chromeRows, minArenaRows),
		Bounds: b,
	}
}

// Cell returns the grid cell containing p, clamped into the grid.
func (a Arena) Cell(p r2.Vec) (x, y int) {
	x = int(p.X / a.Bounds.Width * float64(a.Cols))
	y = int(p.Y / a.Bounds.Height * float64(a.Rows))
	return min(max(x, 0), a.Cols-1), min(max(y, 0), a.Rows-1)
}

// Point returns the world position at the center of cell (x, y).
func (a Arena) Point(x, y int) r2.Vec {
	return r2.Vec{
		X: (float64(x) + 0.5) * a.Bounds.Width / float64(a.Cols),
		Y: (float64(y) + 0.5) * a.Bounds.Height / float64(a.Rows),
	}
}

// PointAt converts a terminal position to a world position. It reports false
// when the position is outside the arena.
func (a Arena) PointAt(termX, termY int) (r2.Vec, bool) {
	x := (termX - arenaLeft) / cellWidth
	y := termY - arenaTop
	if termX < arenaLeft || x >= a.Cols || y < 0 || y >= a.Rows {
		return r2.Vec{}, false
	}
	return a.Point(x, y), true
}

// Render draws the session's world. Later layers overwrite earlier ones, so
// the pet is always on top.
func (a Arena) Render(s *game.Session) string {
	grid := make([][]string, a.Rows)
	for y := range grid {
		grid[y] = make([]string, a.Cols)
		for x := range grid[y] {
			grid[y][x] = emptyCell
		}
	}
	place := func(p r2.Vec, glyph string) {
		x, y := a.Cell(p)
		grid[y][x] = glyph
	}

	for _, f := range s.Fruits() {
		if f.Visible() {
			place(f.Position(), f.Kind().Glyph())
		}
	}
	s.Pool().Each(func(_ spawn.Handle, e *enemy.Enemy) {
		if glyph := enemyGlyph(e); glyph != "" {
			place(e.Position(), glyph)
		}
	})
	place(s.Pet().Position(), petGlyph(s.Pet()))

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteString(cell)
		}
	}
	return b.String()
}

// petGlyph picks the pet's arena icon from what it is doing or, when idle,
// its most pressing need.
func petGlyph(p *pet.Pet) string {
	switch p.State() {
	case pet.Dead:
		return pet.StatusEmojiDead
	case pet.Sleeping:
		return pet.StatusEmojiSleeping
	case pet.Eating:
		return pet.StatusEmojiEating
	case pet.Playing:
		return pet.StatusEmojiPlaying
	case pet.Blinking:
		return pet.StatusEmojiBlinking
	}

	n := p.Needs()
	if n.Lowest() < pet.LowStatThreshold {
		switch n.Lowest() {
		case n.Hunger:
			return pet.StatusEmojiHungry
		case n.Happiness:
			return pet.StatusEmojiSad
		default:
			return pet.StatusEmojiTired
		}
	}
	return pet.StatusEmojiHappy
}

func enemyGlyph(e *enemy.Enemy) string {
	switch e.State() {
	case enemy.Hurt:
		return "💥"
	case enemy.Death:
		if e.DeathAnimationFinished() {
			return ""
		}
		return "💨"
	default:
		return "👾"
	}
}
