package game

import (
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"sumzero/geom"
)

// ScoreEvent is one history entry: a pattern accepted and awarded after
// a move. Timestamps are Unix milliseconds and purely informational.
type ScoreEvent struct {
	Turn      int         `json:"turn"`
	Player    int         `json:"player"`
	MoveIndex int         `json:"moveIndex"`
	PatternID string      `json:"patternId"`
	Points    int         `json:"points"`
	Cells     []geom.Cell `json:"cells"`
	Timestamp int64       `json:"timestamp"`
}

// Highlight is the transient presentation hint for the most valuable
// pattern of the latest scoring pass. It expires and never feeds back
// into rules or score.
type Highlight struct {
	Pattern   Pattern `json:"pattern"`
	ExpiresAt int64   `json:"expiresAt"`
}

// highlightDuration is how long the UI gets to show the last pattern.
const highlightDuration = 3 * time.Second

// ScoringState is the per-game scoring ledger.
type ScoringState struct {
	Scores    map[int]int  `json:"scores"`
	History   []ScoreEvent `json:"history"`
	Highlight *Highlight   `json:"highlight,omitempty"`
}

func newScoringState() ScoringState {
	return ScoringState{Scores: map[int]int{1: 0, 2: 0}}
}

func (s ScoringState) copy() ScoringState {
	ns := ScoringState{
		Scores:  maps.Clone(s.Scores),
		History: slices.Clone(s.History),
	}
	if s.Highlight != nil {
		h := *s.Highlight
		ns.Highlight = &h
	}
	return ns
}

// awardPoints runs the recognizer on the mover's full cell set, resolves
// overlaps, and awards only the accepted patterns that touch the new
// move's cells. Patterns made entirely of previously placed cells were
// either scored when they formed or lost an earlier overlap resolution;
// they are not re-awarded. Returns the points earned and the awarded
// patterns. Called on an already-cloned state.
func (gs *GameState) awardPoints(player int, newCells []geom.Cell, moveIndex int) (int, []Pattern) {
	candidates := RecognizePatterns(gs.Board, player)
	accepted := ResolveOverlaps(candidates)

	now := gs.now().UnixMilli()
	turn := len(gs.History)
	earned := 0
	var awarded []Pattern
	for _, p := range accepted {
		if !p.touchesAny(newCells) {
			continue
		}
		earned += p.Points
		awarded = append(awarded, p)
		gs.Scoring.History = append(gs.Scoring.History, ScoreEvent{
			Turn:      turn,
			Player:    player,
			MoveIndex: moveIndex,
			PatternID: p.ID(),
			Points:    p.Points,
			Cells:     p.Cells,
			Timestamp: now,
		})
	}
	gs.Scoring.Scores[player] += earned

	if len(awarded) > 0 {
		best := awarded[0]
		for _, p := range awarded[1:] {
			if p.Points > best.Points {
				best = p
			}
		}
		gs.Scoring.Highlight = &Highlight{
			Pattern:   best,
			ExpiresAt: now + highlightDuration.Milliseconds(),
		}
	}
	return earned, awarded
}

// finish ends the game: phase GAME_OVER and the winner decided by score,
// then fewer remaining arsenal pieces, then player 1 by fixed default.
// The player-1 default is documented product behavior, kept pending
// confirmation that the first-player tie advantage is intended.
func (gs *GameState) finish() {
	gs.Phase = GameOverPhase
	gs.Winner = gs.decideWinner()
}

func (gs *GameState) decideWinner() int {
	s1, s2 := gs.Scoring.Scores[1], gs.Scoring.Scores[2]
	if s1 != s2 {
		if s1 > s2 {
			return 1
		}
		return 2
	}
	r1 := gs.Players[1].RemainingPieces()
	r2 := gs.Players[2].RemainingPieces()
	if r1 != r2 {
		if r1 < r2 {
			return 1
		}
		return 2
	}
	return 1
}

// GameEnded reports whether neither player has a legal move, and if so
// who wins. A single blocked player does not end the game; their turn is
// skipped instead.
func (gs *GameState) GameEnded() (ended bool, winner int) {
	if gs.Phase == GameOverPhase {
		return true, gs.Winner
	}
	if gs.HasLegalMove(1) || gs.HasLegalMove(2) {
		return false, 0
	}
	return true, gs.decideWinner()
}
