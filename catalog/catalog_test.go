package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sumzero/geom"
)

func TestCatalogHas19Pieces(t *testing.T) {
	c := New()
	ids := c.IDs()
	require.Len(t, ids, 19)
	require.Len(t, c.IDsBySize(4), 7, "seven tetrominoes")
	require.Len(t, c.IDsBySize(5), 12, "twelve pentominoes")
}

func TestCostEqualsCellCount(t *testing.T) {
	c := New()
	for _, id := range c.IDs() {
		p, ok := c.Piece(id)
		require.True(t, ok)
		require.Equal(t, len(p.Cells), p.Cost, "piece %s", id)
		require.Equal(t, p.Cost, c.Cost(id))
	}
}

func TestShapesAreNormalizedAndConnected(t *testing.T) {
	c := New()
	for _, id := range c.IDs() {
		p, _ := c.Piece(id)

		minX, minY := p.Cells[0].X, p.Cells[0].Y
		for _, cell := range p.Cells {
			if cell.X < minX {
				minX = cell.X
			}
			if cell.Y < minY {
				minY = cell.Y
			}
		}
		require.Zero(t, minX, "piece %s min x", id)
		require.Zero(t, minY, "piece %s min y", id)

		// 4-neighbor connectivity via worklist from the first cell.
		occupied := make(map[geom.Cell]bool, len(p.Cells))
		for _, cell := range p.Cells {
			occupied[cell] = true
		}
		visited := map[geom.Cell]bool{p.Cells[0]: true}
		queue := []geom.Cell{p.Cells[0]}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range []geom.Cell{
				{X: cur.X + 1, Y: cur.Y}, {X: cur.X - 1, Y: cur.Y},
				{X: cur.X, Y: cur.Y + 1}, {X: cur.X, Y: cur.Y - 1},
			} {
				if occupied[n] && !visited[n] {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}
		require.Len(t, visited, len(p.Cells), "piece %s must be 4-connected", id)
	}
}

func TestOrientationCounts(t *testing.T) {
	c := New()

	expected := map[string]int{
		"O4": 1, // full symmetry
		"X5": 1, // full symmetry
		"I4": 2,
		"I5": 2,
		"T4": 4,
	}
	for id, want := range expected {
		p, _ := c.Piece(id)
		require.Len(t, p.Orientations, want, "piece %s", id)
	}

	for _, id := range c.IDs() {
		p, _ := c.Piece(id)
		n := len(p.Orientations)
		require.GreaterOrEqual(t, n, 1, "piece %s", id)
		require.LessOrEqual(t, n, 8, "piece %s", id)
	}
}

func TestOrientationsAreDistinct(t *testing.T) {
	c := New()
	for _, id := range c.IDs() {
		p, _ := c.Piece(id)
		seen := make(map[string]bool)
		for _, o := range p.Orientations {
			k := geom.Key(o.Cells)
			require.False(t, seen[k], "piece %s has duplicate orientation %s", id, k)
			seen[k] = true

			w, h := geom.Bounds(o.Cells)
			require.Equal(t, o.Width, w, "piece %s cached width", id)
			require.Equal(t, o.Height, h, "piece %s cached height", id)

			derived, err := geom.Apply(p.Cells, o.Transform)
			require.NoError(t, err)
			require.True(t, geom.Equal(o.Cells, derived),
				"piece %s orientation must match its recorded transform", id)
		}
	}
}

func TestOrientationLookup(t *testing.T) {
	c := New()
	cells, err := c.Orientation("T4", geom.Transform{Rotation: geom.Rot90})
	require.NoError(t, err)
	p, _ := c.Piece("T4")
	require.Len(t, cells, p.Cost)

	_, err = c.Orientation("Q9", geom.Identity)
	require.Error(t, err)
}
