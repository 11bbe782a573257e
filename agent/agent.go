// Package agent holds baseline computer opponents. An agent's contract
// with the engine is narrow: given a state, pick an action from the
// legal set or pass. Scoring heuristics are tunable presentation logic,
// not rules; both baselines here only exercise the engine's
// move-enumeration and status surfaces.
package agent

import (
	"fmt"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"

	"sumzero/game"
)

// DraftAction is what an agent wants to do on its draft turn.
type DraftAction struct {
	Pass    bool
	PieceID string
}

// Agent picks one action per turn. Implementations must return a legal
// choice; the engine rejects anything else and does not retry for them.
type Agent interface {
	// ChooseDraft returns a buy or a pass for the agent's draft turn.
	ChooseDraft(gs *game.GameState, player int) DraftAction
	// ChooseMove returns a placement from the legal set. ok is false
	// when the agent has no legal move and the engine should let the
	// turn-skip logic handle it.
	ChooseMove(gs *game.GameState, player int) (game.Move, bool)
}

// Random buys affordable pieces and places uniformly at random. Useful
// as a smoke-test opponent and as the floor for anything smarter.
type Random struct {
	rng *rand.Rand
}

// NewRandom seeds a random agent. The seed only shapes the agent's own
// choices; the rules engine stays deterministic for a fixed action
// sequence.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (a *Random) ChooseDraft(gs *game.GameState, player int) DraftAction {
	ids := affordable(gs, player)
	if len(ids) == 0 {
		return DraftAction{Pass: true}
	}
	return DraftAction{PieceID: ids[a.rng.Intn(len(ids))]}
}

func (a *Random) ChooseMove(gs *game.GameState, player int) (game.Move, bool) {
	moves := gs.LegalMoves(player, 0)
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[a.rng.Intn(len(moves))], true
}

// Greedy drafts the biggest affordable piece and plays the legal move
// with the highest immediate score, breaking ties randomly.
type Greedy struct {
	rng *rand.Rand
}

func NewGreedy(seed uint64) *Greedy {
	return &Greedy{rng: rand.New(rand.NewSource(seed))}
}

func (a *Greedy) ChooseDraft(gs *game.GameState, player int) DraftAction {
	ids := affordable(gs, player)
	if len(ids) == 0 {
		return DraftAction{Pass: true}
	}
	cat := gs.Catalog()
	best := ids[0]
	for _, id := range ids[1:] {
		if cat.Cost(id) > cat.Cost(best) {
			best = id
		}
	}
	return DraftAction{PieceID: best}
}

func (a *Greedy) ChooseMove(gs *game.GameState, player int) (game.Move, bool) {
	moves := gs.LegalMoves(player, 0)
	if len(moves) == 0 {
		return game.Move{}, false
	}

	bestScore := -1
	var best []game.Move
	for _, m := range moves {
		next, err := gs.PlacePiece(m)
		if err != nil {
			// LegalMoves produced it, so this cannot happen.
			panic(fmt.Sprintf("legal move rejected: %v", err))
		}
		gained := next.Scoring.Scores[player] - gs.Scoring.Scores[player]
		switch {
		case gained > bestScore:
			bestScore = gained
			best = []game.Move{m}
		case gained == bestScore:
			best = append(best, m)
		}
	}
	return best[a.rng.Intn(len(best))], true
}

func affordable(gs *game.GameState, player int) []string {
	var ids []string
	for id := range gs.Stock {
		if gs.Stock.Available(id) && gs.CanAfford(player, id) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
