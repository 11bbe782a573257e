package game

import (
	"fmt"

	"sumzero/geom"
)

// CellState is the content of one board cell. Owner values double as
// player ids.
type CellState int

const (
	Empty CellState = iota
	OwnerA
	OwnerB
	// Unusable marks cells carved out of non-rectangular boards. They are
	// permanently unplayable and never counted toward budget.
	Unusable
)

// Board is a rows x cols grid of cell states. Grid is indexed [y][x].
// Mutating operations return a fresh board and leave the receiver alone.
type Board struct {
	Rows int           `json:"rows"`
	Cols int           `json:"cols"`
	Grid [][]CellState `json:"grid"`
}

// NewBoard returns an all-empty rectangular board.
func NewBoard(rows, cols int) *Board {
	grid := make([][]CellState, rows)
	for y := range grid {
		grid[y] = make([]CellState, cols)
	}
	return &Board{Rows: rows, Cols: cols, Grid: grid}
}

// InBounds reports whether (x, y) is on the grid.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.Cols && y >= 0 && y < b.Rows
}

// At returns the state of (x, y). Out-of-bounds reads as Unusable so the
// caller never confuses off-board with empty.
func (b *Board) At(x, y int) CellState {
	if !b.InBounds(x, y) {
		return Unusable
	}
	return b.Grid[y][x]
}

// CellsAreEmpty reports whether every cell is in bounds and empty.
func (b *Board) CellsAreEmpty(cells []geom.Cell) bool {
	for _, c := range cells {
		if b.At(c.X, c.Y) != Empty {
			return false
		}
	}
	return true
}

// UsableCells counts cells that are not carved out, regardless of
// occupancy.
func (b *Board) UsableCells() int {
	n := 0
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.Grid[y][x] != Unusable {
				n++
			}
		}
	}
	return n
}

// Place returns a new board with the given cells set to owner. This is a
// final guard, not the primary validator: callers pre-validate through
// the placement checks, and a precondition failure here means they did
// not.
func (b *Board) Place(cells []geom.Cell, owner CellState) (*Board, error) {
	if owner != OwnerA && owner != OwnerB {
		return nil, fmt.Errorf("%w: cannot place for owner %d", ErrInvalidMove, owner)
	}
	if !b.CellsAreEmpty(cells) {
		return nil, fmt.Errorf("%w: occupied or out of bounds", ErrInvalidMove)
	}
	nb := b.Copy()
	for _, c := range cells {
		nb.Grid[c.Y][c.X] = owner
	}
	return nb, nil
}

// Copy deep-copies the grid.
func (b *Board) Copy() *Board {
	grid := make([][]CellState, b.Rows)
	for y := range grid {
		grid[y] = make([]CellState, b.Cols)
		copy(grid[y], b.Grid[y])
	}
	return &Board{Rows: b.Rows, Cols: b.Cols, Grid: grid}
}

// owned reports whether the cell belongs to the given player.
func (b *Board) owned(x, y, player int) bool {
	return b.At(x, y) == CellState(player)
}

// OwnedCells lists the cells currently held by a player in scan order.
func (b *Board) OwnedCells(player int) []geom.Cell {
	var out []geom.Cell
	for y := 0; y < b.Rows; y++ {
		for x := 0; x < b.Cols; x++ {
			if b.Grid[y][x] == CellState(player) {
				out = append(out, geom.Cell{X: x, Y: y})
			}
		}
	}
	return out
}

// Named board shapes. Carved cells become Unusable at construction and
// stay that way for the whole game.
const (
	ShapeRect    = ""
	ShapePlus    = "plus"
	ShapeDiamond = "diamond"
)

// NewShapedBoard builds a board with a named non-rectangular outline.
func NewShapedBoard(rows, cols int, shape string) (*Board, error) {
	b := NewBoard(rows, cols)
	switch shape {
	case ShapeRect:
		return b, nil
	case ShapePlus:
		// Carve the four corner quadrants, leaving a plus of roughly a
		// third of each dimension.
		armW := cols / 3
		armH := rows / 3
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				inVertical := x >= armW && x < cols-armW
				inHorizontal := y >= armH && y < rows-armH
				if !inVertical && !inHorizontal {
					b.Grid[y][x] = Unusable
				}
			}
		}
		return b, nil
	case ShapeDiamond:
		// Keep cells within manhattan distance of the center.
		cy := float64(rows-1) / 2
		cx := float64(cols-1) / 2
		limit := cy
		if cx < cy {
			limit = cx
		}
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				dx := float64(x) - cx
				dy := float64(y) - cy
				if dx < 0 {
					dx = -dx
				}
				if dy < 0 {
					dy = -dy
				}
				if dx+dy > limit+0.5 {
					b.Grid[y][x] = Unusable
				}
			}
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: unknown board shape %q", ErrMalformedState, shape)
	}
}
