package game

import "fmt"

// CanAfford reports whether the player's budget covers the piece's cost.
func (gs *GameState) CanAfford(player int, pieceID string) bool {
	p, ok := gs.Players[player]
	if !ok {
		return false
	}
	cost := gs.catalog.Cost(pieceID)
	return cost > 0 && p.Budget >= cost
}

// BuyPiece purchases one copy of a piece for the acting player. On
// success the cost leaves the budget, the stock depletes (unless
// unlimited), the arsenal grows, both players' pass flags clear, and the
// turn alternates. Nothing is applied on failure.
func (gs *GameState) BuyPiece(player int, pieceID string) (*GameState, error) {
	if err := gs.checkActor(player, DraftPhase); err != nil {
		return nil, err
	}
	piece, ok := gs.catalog.Piece(pieceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPiece, pieceID)
	}
	if !gs.Stock.Available(pieceID) {
		return nil, fmt.Errorf("%w: piece %q not in stock", ErrInvalidPurchase, pieceID)
	}
	if !gs.CanAfford(player, pieceID) {
		return nil, fmt.Errorf("%w: piece %q costs %d, player %d has %d",
			ErrInvalidPurchase, pieceID, piece.Cost, player, gs.Players[player].Budget)
	}

	ng := gs.clone()
	ng.Players[player].Budget -= piece.Cost
	ng.Stock.take(pieceID)
	ng.Players[player].addPiece(pieceID)
	ng.Draft = DraftState{Passed: map[int]bool{}}
	ng.CurrentPlayer = Opponent(player)
	if ng.DraftOver() {
		ng.enterPlacement()
	}
	return ng, nil
}

// PassDraft records a pass for the acting player and alternates the
// turn. Two consecutive passes end the draft.
func (gs *GameState) PassDraft(player int) (*GameState, error) {
	if err := gs.checkActor(player, DraftPhase); err != nil {
		return nil, err
	}
	ng := gs.clone()
	ng.Draft.Passed[player] = true
	if ng.Draft.Passed[Opponent(player)] {
		ng.Draft.ConsecutivePasses = 2
	} else {
		ng.Draft.ConsecutivePasses = 1
	}
	ng.CurrentPlayer = Opponent(player)
	if ng.DraftOver() {
		ng.enterPlacement()
	}
	return ng, nil
}

// DraftOver reports whether the draft has terminated: both players
// passed consecutively, or no player can afford any piece still in
// stock.
func (gs *GameState) DraftOver() bool {
	if gs.Draft.ConsecutivePasses >= 2 {
		return true
	}
	for pieceID := range gs.Stock {
		if !gs.Stock.Available(pieceID) {
			continue
		}
		if gs.CanAfford(1, pieceID) || gs.CanAfford(2, pieceID) {
			return false
		}
	}
	return true
}
