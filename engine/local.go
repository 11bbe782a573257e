// Package engine drives complete local games between two agents. It
// owns no rules: every action goes through the game state's own
// operations and anything rejected there is surfaced, not patched up.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"sumzero/agent"
	"sumzero/catalog"
	"sumzero/game"
)

// MaxActions caps a single game. A legal game on a bounded board always
// terminates well before this; the cap turns a misbehaving agent into a
// loud error instead of a hang.
const MaxActions = 10000

// Engine runs one game to completion between two agents.
type Engine struct {
	State  *game.GameState
	Agents map[int]agent.Agent
}

// New sets up a fresh game for the given config and agents.
func New(cat *catalog.Catalog, cfg game.Config, player1, player2 agent.Agent) (*Engine, error) {
	state, err := game.NewGameState(cat, cfg)
	if err != nil {
		return nil, err
	}
	return &Engine{
		State:  state,
		Agents: map[int]agent.Agent{1: player1, 2: player2},
	}, nil
}

// Run executes the draft and placement phases until the game is over,
// returning the terminal state. Agent mistakes (illegal choices) abort
// the run; the engine never substitutes a move on an agent's behalf.
func (e *Engine) Run() (*game.GameState, error) {
	log.Info().
		Int("rows", e.State.Config.Rows).
		Int("cols", e.State.Config.Cols).
		Str("stock", e.State.Config.StockMode).
		Msg("game started")

	for actions := 0; ; actions++ {
		if actions >= MaxActions {
			return nil, fmt.Errorf("engine: no game end after %d actions", MaxActions)
		}

		st := e.State.Status()
		if st.IsGameOver {
			log.Info().
				Int("winner", st.Winner).
				Int("score1", st.Scores[1]).
				Int("score2", st.Scores[2]).
				Int("turns", st.TurnNumber-1).
				Msg("game over")
			return e.State, nil
		}

		player := st.CurrentPlayer
		actor := e.Agents[player]

		switch st.Phase {
		case game.DraftPhase:
			next, err := e.draftTurn(actor, player)
			if err != nil {
				return nil, err
			}
			e.State = next
		case game.PlacementPhase:
			next, err := e.placementTurn(actor, player)
			if err != nil {
				return nil, err
			}
			e.State = next
		default:
			return nil, fmt.Errorf("engine: unexpected phase %d", st.Phase)
		}
	}
}

func (e *Engine) draftTurn(actor agent.Agent, player int) (*game.GameState, error) {
	action := actor.ChooseDraft(e.State, player)
	if action.Pass {
		log.Debug().Int("player", player).Msg("draft pass")
		return e.State.PassDraft(player)
	}
	log.Debug().Int("player", player).Str("piece", action.PieceID).Msg("draft buy")
	return e.State.BuyPiece(player, action.PieceID)
}

func (e *Engine) placementTurn(actor agent.Agent, player int) (*game.GameState, error) {
	move, ok := actor.ChooseMove(e.State, player)
	if !ok {
		// The state machine skips blocked players on its own, so an
		// agent asked to move always has at least one legal move.
		return nil, fmt.Errorf("engine: player %d reported no move on its turn", player)
	}
	before := e.State.Scoring.Scores[player]
	next, err := e.State.PlacePiece(move)
	if err != nil {
		return nil, fmt.Errorf("engine: player %d played an illegal move: %w", player, err)
	}
	log.Debug().
		Int("player", player).
		Str("piece", move.PieceID).
		Int("x", move.Anchor.X).
		Int("y", move.Anchor.Y).
		Int("points", next.Scoring.Scores[player]-before).
		Msg("placement")
	return next, nil
}
