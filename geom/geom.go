// Package geom holds the pure coordinate math for piece shapes: applying
// grid isometries, translating to board positions and measuring bounds.
package geom

import (
	"errors"
	"fmt"
	"sort"
)

// Cell is a grid coordinate. X grows rightward, Y grows downward; [0,0]
// is the top-left corner of the board.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rotation is a counter-clockwise rotation in degrees.
type Rotation int

const (
	Rot0   Rotation = 0
	Rot90  Rotation = 90
	Rot180 Rotation = 180
	Rot270 Rotation = 270
)

// Transform is one of the 8 symmetries of the square grid: an optional
// flip across the vertical axis followed by a rotation.
type Transform struct {
	Rotation Rotation `json:"rotation"`
	FlipX    bool     `json:"flipX"`
}

// ErrInvalidTransform marks a transform whose rotation is not one of the
// four right angles.
var ErrInvalidTransform = errors.New("invalid transform")

// Validate reports whether the transform is well-formed. Rotations outside
// {0, 90, 180, 270} are rejected, never coerced.
func (t Transform) Validate() error {
	switch t.Rotation {
	case Rot0, Rot90, Rot180, Rot270:
		return nil
	default:
		return fmt.Errorf("%w: rotation %d", ErrInvalidTransform, t.Rotation)
	}
}

// Identity is the no-op transform.
var Identity = Transform{Rotation: Rot0, FlipX: false}

// Apply returns the cells under the given transform, renormalized so the
// minimum x and y are both 0. Flip happens before rotation. The input is
// never modified.
func Apply(cells []Cell, t Transform) ([]Cell, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out := make([]Cell, len(cells))
	copy(out, cells)

	if t.FlipX {
		for i := range out {
			out[i].X = -out[i].X
		}
	}
	turns := int(t.Rotation) / 90
	for k := 0; k < turns; k++ {
		for i := range out {
			out[i].X, out[i].Y = -out[i].Y, out[i].X
		}
	}
	return Normalize(out), nil
}

// Normalize translates cells so the minimum x and y are 0 and sorts them
// into row-major order, giving every congruent cell set one canonical form.
func Normalize(cells []Cell) []Cell {
	if len(cells) == 0 {
		return cells
	}
	minX, minY := cells[0].X, cells[0].Y
	for _, c := range cells[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
	}
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{X: c.X - minX, Y: c.Y - minY}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Absolute translates relative cells by the anchor, elementwise.
func Absolute(cells []Cell, anchor Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{X: c.X + anchor.X, Y: c.Y + anchor.Y}
	}
	return out
}

// Bounds returns the bounding-box size of a cell set: width = max x + 1,
// height = max y + 1. Callers pass normalized cells.
func Bounds(cells []Cell) (width, height int) {
	for _, c := range cells {
		if c.X+1 > width {
			width = c.X + 1
		}
		if c.Y+1 > height {
			height = c.Y + 1
		}
	}
	return width, height
}

// Key flattens a cell set to a compact comparable string, used to dedupe
// orientations that land on the same cells.
func Key(cells []Cell) string {
	norm := Normalize(cells)
	b := make([]byte, 0, len(norm)*4)
	for _, c := range norm {
		b = append(b, byte('0'+c.X), ',', byte('0'+c.Y), ';')
	}
	return string(b)
}

// Equal reports whether two cell sets cover exactly the same cells,
// ignoring order.
func Equal(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	na, nb := Normalize(a), Normalize(b)
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

// SameCells is like Equal but compares absolute positions without
// normalizing, for checking a move's derived cells.
func SameCells(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	sa := append([]Cell(nil), a...)
	sb := append([]Cell(nil), b...)
	less := func(s []Cell) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].Y != s[j].Y {
				return s[i].Y < s[j].Y
			}
			return s[i].X < s[j].X
		}
	}
	sort.Slice(sa, less(sa))
	sort.Slice(sb, less(sb))
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}

// AllTransforms lists the 8 grid isometries in a fixed order.
func AllTransforms() []Transform {
	ts := make([]Transform, 0, 8)
	for _, flip := range []bool{false, true} {
		for _, rot := range []Rotation{Rot0, Rot90, Rot180, Rot270} {
			ts = append(ts, Transform{Rotation: rot, FlipX: flip})
		}
	}
	return ts
}
