package game

import (
	"fmt"

	"golang.org/x/exp/slices"

	"sumzero/geom"
)

// DefaultMoveLimit bounds LegalMoves enumeration. A performance knob,
// not a rules constraint; use HasLegalMove to answer "any move at all".
const DefaultMoveLimit = 2000

// Move is a fixed-shape placement record. Cells are derived from
// (PieceID, Transform, Anchor) and checked against that derivation on
// validation, never trusted from the caller.
type Move struct {
	Player    int            `json:"player"`
	PieceID   string         `json:"pieceId"`
	Transform geom.Transform `json:"transform"`
	Anchor    geom.Cell      `json:"anchor"`
	Cells     []geom.Cell    `json:"cells"`
}

// NewMove looks up the piece, applies the transform and computes the
// absolute cells.
func (gs *GameState) NewMove(player int, pieceID string, t geom.Transform, anchor geom.Cell) (Move, error) {
	piece, ok := gs.catalog.Piece(pieceID)
	if !ok {
		return Move{}, fmt.Errorf("%w: %q", ErrUnknownPiece, pieceID)
	}
	oriented, err := geom.Apply(piece.Cells, t)
	if err != nil {
		return Move{}, err
	}
	return Move{
		Player:    player,
		PieceID:   pieceID,
		Transform: t,
		Anchor:    anchor,
		Cells:     geom.Absolute(oriented, anchor),
	}, nil
}

// IsLegal reports whether the oriented cells anchored at anchor land
// entirely on empty, in-bounds board cells. There is no adjacency or
// spacing rule beyond that.
func (gs *GameState) IsLegal(oriented []geom.Cell, anchor geom.Cell) bool {
	return gs.Board.CellsAreEmpty(geom.Absolute(oriented, anchor))
}

// HasLegalMove reports whether the player can place anything at all.
// It walks pieces, precomputed orientations and bounding-box-fitting
// anchors, and returns on the first hit rather than enumerating.
func (gs *GameState) HasLegalMove(player int) bool {
	p, ok := gs.Players[player]
	if !ok {
		return false
	}
	for pieceID, count := range p.Arsenal {
		if count <= 0 {
			continue
		}
		piece, ok := gs.catalog.Piece(pieceID)
		if !ok {
			continue
		}
		for _, o := range piece.Orientations {
			for y := 0; y+o.Height <= gs.Board.Rows; y++ {
				for x := 0; x+o.Width <= gs.Board.Cols; x++ {
					if gs.IsLegal(o.Cells, geom.Cell{X: x, Y: y}) {
						return true
					}
				}
			}
		}
	}
	return false
}

// LegalMoves enumerates up to limit legal placements for the player.
// limit <= 0 selects DefaultMoveLimit. Enumeration order is the stable
// catalog/orientation/scan order, but callers must not read meaning into
// a truncated result.
func (gs *GameState) LegalMoves(player int, limit int) []Move {
	if limit <= 0 {
		limit = DefaultMoveLimit
	}
	p, ok := gs.Players[player]
	if !ok {
		return nil
	}

	ownedIDs := make([]string, 0, len(p.Arsenal))
	for pieceID, count := range p.Arsenal {
		if count > 0 {
			ownedIDs = append(ownedIDs, pieceID)
		}
	}
	slices.Sort(ownedIDs)

	var moves []Move
	for _, pieceID := range ownedIDs {
		piece, ok := gs.catalog.Piece(pieceID)
		if !ok {
			continue
		}
		for _, o := range piece.Orientations {
			for y := 0; y+o.Height <= gs.Board.Rows; y++ {
				for x := 0; x+o.Width <= gs.Board.Cols; x++ {
					anchor := geom.Cell{X: x, Y: y}
					if !gs.IsLegal(o.Cells, anchor) {
						continue
					}
					moves = append(moves, Move{
						Player:    player,
						PieceID:   pieceID,
						Transform: o.Transform,
						Anchor:    anchor,
						Cells:     geom.Absolute(o.Cells, anchor),
					})
					if len(moves) >= limit {
						return moves
					}
				}
			}
		}
	}
	return moves
}

// ValidateMove checks a move end to end: the player owns the piece, the
// piece exists, the supplied cells match a fresh derivation from
// (piece, transform, anchor), and the derived cells are legal on the
// current board. Any single failure invalidates the move.
func (gs *GameState) ValidateMove(move Move) error {
	p, ok := gs.Players[move.Player]
	if !ok || !p.Owns(move.PieceID) {
		return fmt.Errorf("%w: player %d does not own %q", ErrInvalidMove, move.Player, move.PieceID)
	}
	piece, ok := gs.catalog.Piece(move.PieceID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPiece, move.PieceID)
	}
	oriented, err := geom.Apply(piece.Cells, move.Transform)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	derived := geom.Absolute(oriented, move.Anchor)
	if !geom.SameCells(derived, move.Cells) {
		return fmt.Errorf("%w: cells do not match piece, transform and anchor", ErrInvalidMove)
	}
	if !gs.Board.CellsAreEmpty(derived) {
		return fmt.Errorf("%w: cells occupied or out of bounds", ErrInvalidMove)
	}
	return nil
}

// commit re-validates and applies a move: board cells claimed, one copy
// leaves the arsenal, the move joins history. Validation repeats here
// even for pre-validated moves, since state may have moved on since the
// caller checked.
func (gs *GameState) commit(move Move) error {
	if err := gs.ValidateMove(move); err != nil {
		return err
	}
	board, err := gs.Board.Place(move.Cells, CellState(move.Player))
	if err != nil {
		return err
	}
	gs.Board = board
	gs.Players[move.Player].removePiece(move.PieceID)
	gs.History = append(gs.History, move)
	return nil
}

// PlacePiece is the placement-phase action: commit the move, award any
// newly formed patterns, hand the turn over and run the start-of-turn
// check (which may skip a blocked opponent or end the game).
func (gs *GameState) PlacePiece(move Move) (*GameState, error) {
	if err := gs.checkActor(move.Player, PlacementPhase); err != nil {
		return nil, err
	}
	ng := gs.clone()
	if err := ng.commit(move); err != nil {
		return nil, err
	}
	ng.awardPoints(move.Player, move.Cells, len(ng.History)-1)
	ng.CurrentPlayer = Opponent(move.Player)
	ng.startOfTurn()
	return ng, nil
}
