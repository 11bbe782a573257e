// Package catalog defines the 19 canonical polyominoes and the
// precomputed orientation sets that make exhaustive placement search
// tractable.
package catalog

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"sumzero/geom"
)

// Piece is one catalog entry. Cells are normalized (min x = min y = 0)
// and the cost of a piece equals its cell count.
type Piece struct {
	ID    string
	Cells []geom.Cell
	Cost  int
	// Orientations holds the deduplicated results of the 8 grid
	// isometries, each normalized. Between 1 (the square) and 8 entries.
	Orientations []Orientation
}

// Orientation is one unique oriented form of a piece together with the
// first transform that produces it.
type Orientation struct {
	Transform geom.Transform
	Cells     []geom.Cell
	Width     int
	Height    int
}

// GLOBAL DATA: the canonical shapes. Coordinates are x,y with y growing
// downward, matching the board.
var shapeData = map[string][]geom.Cell{
	// Tetrominoes
	"I4": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}},
	"O4": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	"T4": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}},
	"S4": {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	"Z4": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	"L4": {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	"J4": {{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}},
	// Pentominoes
	"I5": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}},
	"L5": {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 1, Y: 3}},
	"P5": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 2}},
	"N5": {{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}},
	"T5": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}},
	"U5": {{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	"V5": {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	"W5": {{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	"X5": {{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}},
	"Y5": {{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}},
	"Z5": {{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	"F5": {{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}},
}

// Catalog is the read-only piece table. Build one with New and pass it by
// reference; there is no ambient global instance.
type Catalog struct {
	pieces map[string]*Piece
	ids    []string
}

// New builds the catalog and precomputes every piece's unique
// orientations.
func New() *Catalog {
	c := &Catalog{pieces: make(map[string]*Piece, len(shapeData))}
	for id, cells := range shapeData {
		norm := geom.Normalize(cells)
		p := &Piece{
			ID:           id,
			Cells:        norm,
			Cost:         len(norm),
			Orientations: uniqueOrientations(norm),
		}
		c.pieces[id] = p
	}
	c.ids = maps.Keys(c.pieces)
	slices.Sort(c.ids)
	return c
}

// uniqueOrientations applies all 8 isometries and keeps one copy of each
// distinct cell set, tagged with the first transform that produced it.
func uniqueOrientations(cells []geom.Cell) []Orientation {
	seen := make(map[string]bool, 8)
	var out []Orientation
	for _, t := range geom.AllTransforms() {
		oriented, err := geom.Apply(cells, t)
		if err != nil {
			// AllTransforms only yields valid transforms.
			panic(err)
		}
		k := geom.Key(oriented)
		if seen[k] {
			continue
		}
		seen[k] = true
		w, h := geom.Bounds(oriented)
		out = append(out, Orientation{Transform: t, Cells: oriented, Width: w, Height: h})
	}
	return out
}

// Piece returns the catalog entry for id.
func (c *Catalog) Piece(id string) (*Piece, bool) {
	p, ok := c.pieces[id]
	return p, ok
}

// Cost returns the budget cost of a piece, or 0 for an unknown id.
func (c *Catalog) Cost(id string) int {
	if p, ok := c.pieces[id]; ok {
		return p.Cost
	}
	return 0
}

// IDs returns all piece ids in stable sorted order.
func (c *Catalog) IDs() []string {
	return slices.Clone(c.ids)
}

// IDsBySize returns the ids of pieces with the given cell count, sorted.
func (c *Catalog) IDsBySize(size int) []string {
	var out []string
	for _, id := range c.ids {
		if c.pieces[id].Cost == size {
			out = append(out, id)
		}
	}
	return out
}

// Orientation returns the cells of a piece under the given transform,
// for replaying saved moves.
func (c *Catalog) Orientation(id string, t geom.Transform) ([]geom.Cell, error) {
	p, ok := c.pieces[id]
	if !ok {
		return nil, fmt.Errorf("unknown piece %q", id)
	}
	return geom.Apply(p.Cells, t)
}
