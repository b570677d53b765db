package tui

import (
	"math"

	"github.com/sarchlab/monstercatch/game"
)

// Rect is a block of terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell is inside the rectangle.
func (r Rect) Contains(col, row int) bool {
	return col >= r.X && col < r.X+r.Width &&
		row >= r.Y && row < r.Y+r.Height
}

// Layout maps arena pixels onto the board cells of the terminal. Row 0 holds
// the scoreboard; the board and its border fill the rest.
type Layout struct {
	Arena game.Arena
	Board Rect
}

// NewLayout fits the arena to a screen of the given size.
func NewLayout(arena game.Arena, screenWidth, screenHeight int) Layout {
	return Layout{
		Arena: arena,
		Board: Rect{
			X:      1,
			Y:      2,
			Width:  max(1, screenWidth-2),
			Height: max(1, screenHeight-3),
		},
	}
}

// Cell returns the board cell that holds the arena point (x, y).
func (l Layout) Cell(x, y float64) (col, row int) {
	col = l.Board.X + scale(x, l.Arena.Width, l.Board.Width, math.Floor)
	row = l.Board.Y + scale(y, l.Arena.Height, l.Board.Height, math.Floor)

	return col, row
}

// Footprint returns every cell the entity at p overlaps.
func (l Layout) Footprint(p game.Position) Rect {
	size := l.Arena.EntitySize
	left, top := l.Cell(p.X, p.Y)

	right := l.Board.X +
		scale(p.X+size, l.Arena.Width, l.Board.Width, ceilBefore)
	bottom := l.Board.Y +
		scale(p.Y+size, l.Arena.Height, l.Board.Height, ceilBefore)

	return Rect{
		X:      left,
		Y:      top,
		Width:  max(right-left+1, 1),
		Height: max(bottom-top+1, 1),
	}
}

// Center returns the cell where an entity at p draws its glyph.
func (l Layout) Center(p game.Position) (col, row int) {
	half := l.Arena.EntitySize / 2
	return l.Cell(p.X+half, p.Y+half)
}

// scale maps v in [0, from] to a cell index in [0, to).
func scale(v, from float64, to int, round func(float64) float64) int {
	if from <= 0 {
		return 0
	}

	i := int(round(v * float64(to) / from))

	return min(max(i, 0), to-1)
}

// ceilBefore returns the index of the last cell an exclusive end touches.
func ceilBefore(f float64) float64 {
	return math.Ceil(f) - 1
}
