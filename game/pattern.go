package game

import (
	"fmt"
	"sort"

	"sumzero/geom"
)

// PatternKind tags the variant of a scoring pattern.
type PatternKind string

const (
	LinePattern      PatternKind = "line"
	FullLinePattern  PatternKind = "fullLine"
	RectanglePattern PatternKind = "rectangle"
	SquarePattern    PatternKind = "square"
	TerritoryPattern PatternKind = "territory"
)

// Pattern is one recognized scoring configuration. Each kind carries its
// own parameters; all kinds share points, cells and the cell-count
// priority used for overlap tie-breaking.
type Pattern struct {
	Kind    PatternKind `json:"kind"`
	Length  int         `json:"length,omitempty"`  // line, fullLine
	Width   int         `json:"width,omitempty"`   // rectangle, square
	Height  int         `json:"height,omitempty"`  // rectangle, square
	Subtype string      `json:"subtype,omitempty"` // fullLine row/col, territory region
	Points  int         `json:"points"`
	Cells   []geom.Cell `json:"cells"`
}

// ID is a stable identifier for history entries, unique per pattern
// instance on a given board.
func (p Pattern) ID() string {
	anchor := geom.Cell{}
	if len(p.Cells) > 0 {
		anchor = p.Cells[0]
	}
	switch p.Kind {
	case LinePattern:
		return fmt.Sprintf("line-%d@%d,%d", p.Length, anchor.X, anchor.Y)
	case FullLinePattern:
		return fmt.Sprintf("full-%s-%d@%d,%d", p.Subtype, p.Length, anchor.X, anchor.Y)
	case RectanglePattern:
		return fmt.Sprintf("rect-%dx%d@%d,%d", p.Width, p.Height, anchor.X, anchor.Y)
	case SquarePattern:
		return fmt.Sprintf("square-%dx%d@%d,%d", p.Width, p.Height, anchor.X, anchor.Y)
	case TerritoryPattern:
		return fmt.Sprintf("territory-%s", p.Subtype)
	default:
		return string(p.Kind)
	}
}

// Reference point values. These are pinned: saved games depend on them,
// so rebalancing means a save-format version bump.
const (
	minLineLen      = 4
	maxRectDim      = 6
	cornerPoints    = 10
	edgePoints      = 12
	center4x4Points = 15
	center5x5Points = 20
)

func linePoints(n int) int     { return 2*n - 4 }
func fullLinePoints(n int) int { return 2 * n }
func rectPoints(w, h int) int  { return w * h }
func squarePoints(n int) int   { return n*n + 2*n }

// RecognizePatterns scans one player's occupied cells for every
// candidate scoring pattern on the current board: maximal lines, filled
// rectangles and squares, and territory control. Candidates may overlap;
// ResolveOverlaps picks the scored subset.
func RecognizePatterns(b *Board, player int) []Pattern {
	var out []Pattern
	out = append(out, lineCandidates(b, player)...)
	out = append(out, rectangleCandidates(b, player)...)
	out = append(out, territoryCandidates(b, player)...)
	return out
}

// lineCandidates finds maximal same-owner runs of at least minLineLen in
// the four principal directions. A run of length n yields exactly one
// candidate, not its sub-runs. Runs spanning the board's exact width or
// height are classified as full rows/columns instead, at a higher value.
func lineCandidates(b *Board, player int) []Pattern {
	dirs := []struct{ dx, dy int }{
		{1, 0},  // horizontal
		{0, 1},  // vertical
		{1, 1},  // diagonal
		{1, -1}, // anti-diagonal
	}

	var out []Pattern
	for _, d := range dirs {
		for y := 0; y < b.Rows; y++ {
			for x := 0; x < b.Cols; x++ {
				if !b.owned(x, y, player) {
					continue
				}
				// Only start at the head of a maximal run.
				if b.owned(x-d.dx, y-d.dy, player) {
					continue
				}
				cells := []geom.Cell{{X: x, Y: y}}
				nx, ny := x+d.dx, y+d.dy
				for b.owned(nx, ny, player) {
					cells = append(cells, geom.Cell{X: nx, Y: ny})
					nx += d.dx
					ny += d.dy
				}
				n := len(cells)
				if n < minLineLen {
					continue
				}
				switch {
				case d.dx == 1 && d.dy == 0 && n == b.Cols:
					out = append(out, Pattern{
						Kind: FullLinePattern, Length: n, Subtype: "row",
						Points: fullLinePoints(n), Cells: cells,
					})
				case d.dx == 0 && d.dy == 1 && n == b.Rows:
					out = append(out, Pattern{
						Kind: FullLinePattern, Length: n, Subtype: "col",
						Points: fullLinePoints(n), Cells: cells,
					})
				default:
					out = append(out, Pattern{
						Kind: LinePattern, Length: n,
						Points: linePoints(n), Cells: cells,
					})
				}
			}
		}
	}
	return out
}

// rectangleCandidates finds every completely filled axis-aligned
// rectangle from 2x2 up to maxRectDim per side. Equal sides classify as
// squares at a higher value. Larger shapes are not specially classified.
func rectangleCandidates(b *Board, player int) []Pattern {
	var out []Pattern
	for h := 2; h <= maxRectDim && h <= b.Rows; h++ {
		for w := 2; w <= maxRectDim && w <= b.Cols; w++ {
			for y := 0; y+h <= b.Rows; y++ {
				for x := 0; x+w <= b.Cols; x++ {
					if !rectFilled(b, x, y, w, h, player) {
						continue
					}
					cells := make([]geom.Cell, 0, w*h)
					for yy := y; yy < y+h; yy++ {
						for xx := x; xx < x+w; xx++ {
							cells = append(cells, geom.Cell{X: xx, Y: yy})
						}
					}
					if w == h {
						out = append(out, Pattern{
							Kind: SquarePattern, Width: w, Height: h,
							Points: squarePoints(w), Cells: cells,
						})
					} else {
						out = append(out, Pattern{
							Kind: RectanglePattern, Width: w, Height: h,
							Points: rectPoints(w, h), Cells: cells,
						})
					}
				}
			}
		}
	}
	return out
}

func rectFilled(b *Board, x, y, w, h, player int) bool {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if !b.owned(xx, yy, player) {
				return false
			}
		}
	}
	return true
}

// territoryCandidates checks the fixed control regions: the four 3x3
// corner blocks (at least 7 of 9 cells), the four full edges (at least
// 80%), and the centered 4x4 or 5x5 block (at least 75%). Thresholds and
// values are fixed, not configurable. The candidate's cells are the
// player's cells inside the region.
func territoryCandidates(b *Board, player int) []Pattern {
	var out []Pattern

	// Corner control.
	if b.Rows >= 3 && b.Cols >= 3 {
		corners := []struct {
			name string
			x, y int
		}{
			{"corner-nw", 0, 0},
			{"corner-ne", b.Cols - 3, 0},
			{"corner-sw", 0, b.Rows - 3},
			{"corner-se", b.Cols - 3, b.Rows - 3},
		}
		for _, c := range corners {
			cells := ownedInBlock(b, c.x, c.y, 3, 3, player)
			if len(cells) >= 7 {
				out = append(out, Pattern{
					Kind: TerritoryPattern, Subtype: c.name,
					Points: cornerPoints, Cells: cells,
				})
			}
		}
	}

	// Edge control: at least 80% of a full board edge.
	edges := []struct {
		name       string
		x, y, w, h int
	}{
		{"edge-top", 0, 0, b.Cols, 1},
		{"edge-bottom", 0, b.Rows - 1, b.Cols, 1},
		{"edge-left", 0, 0, 1, b.Rows},
		{"edge-right", b.Cols - 1, 0, 1, b.Rows},
	}
	for _, e := range edges {
		total := e.w * e.h
		cells := ownedInBlock(b, e.x, e.y, e.w, e.h, player)
		if len(cells)*5 >= total*4 {
			out = append(out, Pattern{
				Kind: TerritoryPattern, Subtype: e.name,
				Points: edgePoints, Cells: cells,
			})
		}
	}

	// Center dominance: 4x4 block on even-sized boards, 5x5 on odd.
	block := 5
	points := center5x5Points
	if b.Rows%2 == 0 && b.Cols%2 == 0 {
		block = 4
		points = center4x4Points
	}
	if b.Rows >= block && b.Cols >= block {
		x0 := (b.Cols - block) / 2
		y0 := (b.Rows - block) / 2
		cells := ownedInBlock(b, x0, y0, block, block, player)
		if len(cells)*4 >= block*block*3 {
			out = append(out, Pattern{
				Kind: TerritoryPattern, Subtype: fmt.Sprintf("center-%dx%d", block, block),
				Points: points, Cells: cells,
			})
		}
	}
	return out
}

func ownedInBlock(b *Board, x, y, w, h, player int) []geom.Cell {
	var cells []geom.Cell
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if b.owned(xx, yy, player) {
				cells = append(cells, geom.Cell{X: xx, Y: yy})
			}
		}
	}
	return cells
}

// ResolveOverlaps selects the scored subset of candidates: sort by
// points descending, then cell count descending, then id for a total
// deterministic order, and accept each pattern only if none of its cells
// were claimed by an earlier accepted one. Rejected candidates score
// nothing. A cell contributes to at most one pattern per pass.
func ResolveOverlaps(candidates []Pattern) []Pattern {
	ordered := make([]Pattern, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Points != ordered[j].Points {
			return ordered[i].Points > ordered[j].Points
		}
		if len(ordered[i].Cells) != len(ordered[j].Cells) {
			return len(ordered[i].Cells) > len(ordered[j].Cells)
		}
		return ordered[i].ID() < ordered[j].ID()
	})

	claimed := make(map[geom.Cell]bool)
	var accepted []Pattern
	for _, p := range ordered {
		conflict := false
		for _, c := range p.Cells {
			if claimed[c] {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		for _, c := range p.Cells {
			claimed[c] = true
		}
		accepted = append(accepted, p)
	}
	return accepted
}

// touchesAny reports whether the pattern covers at least one of the
// given cells.
func (p Pattern) touchesAny(cells []geom.Cell) bool {
	set := make(map[geom.Cell]bool, len(cells))
	for _, c := range cells {
		set[c] = true
	}
	for _, c := range p.Cells {
		if set[c] {
			return true
		}
	}
	return false
}
