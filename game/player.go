package game

import "golang.org/x/exp/maps"

// Player is one side of the game. Arsenal maps piece id to the number of
// copies owned and not yet placed; zero-count entries are dropped.
type Player struct {
	ID      int            `json:"id"`
	Budget  int            `json:"budget"`
	Arsenal map[string]int `json:"arsenal"`
}

func newPlayer(id, budget int) *Player {
	return &Player{ID: id, Budget: budget, Arsenal: map[string]int{}}
}

func (p *Player) copy() *Player {
	return &Player{ID: p.ID, Budget: p.Budget, Arsenal: maps.Clone(p.Arsenal)}
}

// Owns reports whether the player holds at least one copy of the piece.
func (p *Player) Owns(pieceID string) bool {
	return p.Arsenal[pieceID] > 0
}

// RemainingPieces is the total count across the arsenal, the second
// tie-break at game end.
func (p *Player) RemainingPieces() int {
	n := 0
	for _, count := range p.Arsenal {
		n += count
	}
	return n
}

func (p *Player) addPiece(pieceID string) {
	p.Arsenal[pieceID]++
}

func (p *Player) removePiece(pieceID string) {
	p.Arsenal[pieceID]--
	if p.Arsenal[pieceID] <= 0 {
		delete(p.Arsenal, pieceID)
	}
}

// UnlimitedStock is the sentinel for pieces that never deplete.
const UnlimitedStock = -1

// Stock tracks the shared draft pool: piece id to remaining copies, with
// UnlimitedStock meaning no cap.
type Stock map[string]int

// Available reports whether at least one copy of the piece can still be
// bought.
func (s Stock) Available(pieceID string) bool {
	count, ok := s[pieceID]
	return ok && (count == UnlimitedStock || count > 0)
}

// take depletes one copy. Unlimited entries never deplete.
func (s Stock) take(pieceID string) {
	if count, ok := s[pieceID]; ok && count != UnlimitedStock {
		s[pieceID] = count - 1
	}
}
