package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sumzero/catalog"
	"sumzero/game"
)

func draftState(t *testing.T) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(catalog.New(), game.DefaultConfig())
	require.NoError(t, err)
	return gs
}

func TestRandomDraftChoosesAffordablePiece(t *testing.T) {
	gs := draftState(t)
	a := NewRandom(1)

	action := a.ChooseDraft(gs, 1)
	require.False(t, action.Pass)
	require.True(t, gs.CanAfford(1, action.PieceID))
	require.True(t, gs.Stock.Available(action.PieceID))

	_, err := gs.BuyPiece(1, action.PieceID)
	require.NoError(t, err, "the chosen draft action must be accepted by the engine")
}

func TestRandomPassesWhenBroke(t *testing.T) {
	gs := draftState(t)
	gs.Players[1].Budget = 0

	action := NewRandom(1).ChooseDraft(gs, 1)
	require.True(t, action.Pass)
}

func TestRandomMoveIsLegal(t *testing.T) {
	gs := draftState(t)
	gs.Phase = game.PlacementPhase
	gs.Players[1].Arsenal["W5"] = 1

	move, ok := NewRandom(7).ChooseMove(gs, 1)
	require.True(t, ok)
	require.NoError(t, gs.ValidateMove(move))
}

func TestRandomReportsNoMove(t *testing.T) {
	gs := draftState(t)
	gs.Phase = game.PlacementPhase

	_, ok := NewRandom(7).ChooseMove(gs, 1)
	require.False(t, ok, "empty arsenal means no legal move")
}

func TestGreedyDraftsBiggestPiece(t *testing.T) {
	gs := draftState(t)
	action := NewGreedy(1).ChooseDraft(gs, 1)
	require.False(t, action.Pass)
	require.Equal(t, 5, gs.Catalog().Cost(action.PieceID), "pentominoes before tetrominoes")
}

func TestGreedyPicksScoringMove(t *testing.T) {
	gs := draftState(t)
	gs.Phase = game.PlacementPhase
	gs.Players[1].Arsenal["I4"] = 1
	// Three in a row on the board; completing the line scores, anything
	// else does not.
	for x := 0; x < 3; x++ {
		gs.Board.Grid[2][x] = game.OwnerA
	}

	move, ok := NewGreedy(3).ChooseMove(gs, 1)
	require.True(t, ok)

	next, err := gs.PlacePiece(move)
	require.NoError(t, err)
	require.Greater(t, next.Scoring.Scores[1], 0, "greedy must find the scoring placement")
}

func TestSameSeedSameChoices(t *testing.T) {
	gs := draftState(t)
	gs.Phase = game.PlacementPhase
	gs.Players[1].Arsenal["T4"] = 1

	m1, ok1 := NewRandom(42).ChooseMove(gs, 1)
	m2, ok2 := NewRandom(42).ChooseMove(gs, 1)
	require.True(t, ok1)
	require.True(t, ok2)
	require.Equal(t, m1, m2)
}
