package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sumzero/catalog"
)

func newTestGame(t *testing.T, cfg Config) *GameState {
	t.Helper()
	gs, err := NewGameState(catalog.New(), cfg)
	require.NoError(t, err)
	return gs
}

func TestStartingBudgetFormula(t *testing.T) {
	cases := []struct {
		rows, cols int
		want       int
	}{
		{8, 8, 33},
		{14, 14, 99},
		{6, 6, 19},
	}
	for _, tc := range cases {
		gs := newTestGame(t, Config{
			Rows: tc.rows, Cols: tc.cols,
			StockMode: StockSingleton, Tetrominoes: true, Pentominoes: true,
		})
		require.Equal(t, tc.want, gs.Players[1].Budget, "%dx%d board", tc.rows, tc.cols)
		require.Equal(t, tc.want, gs.Players[2].Budget)
	}
}

func TestNewGameStartsInDraft(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())
	require.Equal(t, DraftPhase, gs.Phase)
	require.Equal(t, 1, gs.CurrentPlayer)
	require.Len(t, gs.Stock, 19, "all piece sizes enabled")
}

func TestStockRespectsPieceSizeToggles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pentominoes = false
	gs := newTestGame(t, cfg)
	require.Len(t, gs.Stock, 7, "tetrominoes only")
	for id := range gs.Stock {
		require.Equal(t, 4, gs.catalog.Cost(id))
	}
}

func TestBuyPiece(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())

	ng, err := gs.BuyPiece(1, "T4")
	require.NoError(t, err)

	require.Equal(t, 29, ng.Players[1].Budget, "cost 4 deducted from 33")
	require.Equal(t, 0, ng.Stock["T4"], "singleton stock depletes")
	require.Equal(t, 1, ng.Players[1].Arsenal["T4"])
	require.Equal(t, 2, ng.CurrentPlayer, "turn alternates after a buy")

	// Original state untouched.
	require.Equal(t, 33, gs.Players[1].Budget)
	require.Equal(t, 1, gs.Stock["T4"])
}

func TestBuyPieceUnlimitedStock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StockMode = StockUnlimited
	gs := newTestGame(t, cfg)

	ng, err := gs.BuyPiece(1, "O4")
	require.NoError(t, err)
	require.Equal(t, UnlimitedStock, ng.Stock["O4"], "unlimited stock never depletes")
}

func TestBuyPieceFailures(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())

	t.Run("out of turn", func(t *testing.T) {
		_, err := gs.BuyPiece(2, "T4")
		require.ErrorIs(t, err, ErrWrongTurn)
	})

	t.Run("unknown piece", func(t *testing.T) {
		_, err := gs.BuyPiece(1, "Q7")
		require.ErrorIs(t, err, ErrUnknownPiece)
	})

	t.Run("depleted stock", func(t *testing.T) {
		ng, err := gs.BuyPiece(1, "T4")
		require.NoError(t, err)
		ng, err = ng.BuyPiece(2, "T4")
		require.ErrorIs(t, err, ErrInvalidPurchase)
		require.Nil(t, ng)
	})

	t.Run("over budget", func(t *testing.T) {
		broke := gs.clone()
		broke.Players[1].Budget = 3
		_, err := broke.BuyPiece(1, "T4")
		require.ErrorIs(t, err, ErrInvalidPurchase)
	})
}

func TestBuyResetsPassFlags(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())

	ng, err := gs.PassDraft(1)
	require.NoError(t, err)
	require.True(t, ng.Draft.Passed[1])
	require.Equal(t, 1, ng.Draft.ConsecutivePasses)

	ng, err = ng.BuyPiece(2, "O4")
	require.NoError(t, err)
	require.False(t, ng.Draft.Passed[1], "a purchase clears both pass flags")
	require.False(t, ng.Draft.Passed[2])
	require.Zero(t, ng.Draft.ConsecutivePasses)
}

func TestDraftEndsOnConsecutivePasses(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())

	ng, err := gs.BuyPiece(1, "I4")
	require.NoError(t, err)
	ng, err = ng.BuyPiece(2, "O4")
	require.NoError(t, err)

	ng, err = ng.PassDraft(1)
	require.NoError(t, err)
	require.Equal(t, DraftPhase, ng.Phase, "one pass does not end the draft")

	ng, err = ng.PassDraft(2)
	require.NoError(t, err)
	require.Equal(t, PlacementPhase, ng.Phase)
	require.Equal(t, 1, ng.CurrentPlayer, "placement starts with player 1")
}

func TestDraftEndsWhenNobodyCanAfford(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())
	gs.Players[1].Budget = 3
	gs.Players[1].Arsenal["T4"] = 1 // so placement has something to do
	gs.Players[2].Budget = 2

	require.True(t, gs.DraftOver(), "no passes needed when nobody can afford any piece")
}

func TestDraftNotOverWhileOneCanAfford(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())
	gs.Players[1].Budget = 0
	gs.Players[2].Budget = 4
	require.False(t, gs.DraftOver())
}

func TestDraftActionsRejectedOutsideDraftPhase(t *testing.T) {
	gs := newTestGame(t, DefaultConfig())
	gs.Phase = PlacementPhase

	_, err := gs.BuyPiece(1, "T4")
	require.ErrorIs(t, err, ErrWrongPhase)
	_, err = gs.PassDraft(1)
	require.ErrorIs(t, err, ErrWrongPhase)
}
