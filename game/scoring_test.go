package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sumzero/geom"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAwardPointsOnNewPattern(t *testing.T) {
	gs := placementGame(t, DefaultConfig(), map[string]int{"I4": 1}, nil)
	gs = gs.WithClock(fixedClock(time.UnixMilli(1_000_000)))
	// Three in a row already; the I4 placed below makes a column of... no,
	// place the I4 to extend the row to 7: (0,2)..(2,2) exist, I4 adds 3..6.
	fill(gs.Board, 1, row(2, 0, 2)...)

	move, err := gs.NewMove(1, "I4", geom.Identity, geom.Cell{X: 3, Y: 2})
	require.NoError(t, err)
	ng, err := gs.PlacePiece(move)
	require.NoError(t, err)

	require.Equal(t, linePoints(7), ng.Scoring.Scores[1], "a 7-line forms across old and new cells")
	require.Len(t, ng.Scoring.History, 1)

	event := ng.Scoring.History[0]
	require.Equal(t, 1, event.Player)
	require.Equal(t, linePoints(7), event.Points)
	require.Len(t, event.Cells, 7)
	require.Equal(t, int64(1_000_000), event.Timestamp)

	require.NotNil(t, ng.Scoring.Highlight)
	require.Equal(t, event.PatternID, ng.Scoring.Highlight.Pattern.ID())
	require.Greater(t, ng.Scoring.Highlight.ExpiresAt, event.Timestamp)
}

func TestNoPointsForPatternlessMove(t *testing.T) {
	gs := placementGame(t, DefaultConfig(), map[string]int{"T4": 1}, nil)

	move, err := gs.NewMove(1, "T4", geom.Identity, geom.Cell{X: 0, Y: 0})
	require.NoError(t, err)
	ng, err := gs.PlacePiece(move)
	require.NoError(t, err)

	require.Zero(t, ng.Scoring.Scores[1], "a lone T forms no qualifying pattern")
	require.Empty(t, ng.Scoring.History)
	require.Nil(t, ng.Scoring.Highlight)
}

func TestOldPatternsNotReawarded(t *testing.T) {
	cfg := DefaultConfig()
	gs := placementGame(t, cfg, map[string]int{"I4": 1, "O4": 1}, nil)
	gs.CurrentPlayer = 1

	// First move: I4 completes nothing (empty board).
	m1, err := gs.NewMove(1, "I4", geom.Identity, geom.Cell{X: 0, Y: 0})
	require.NoError(t, err)
	s1, err := gs.PlacePiece(m1)
	require.NoError(t, err)
	require.Equal(t, linePoints(4), s1.Scoring.Scores[1], "the I4 itself is a 4-line")

	// Player 2 has no pieces, so the turn skips back to player 1.
	require.Equal(t, 1, s1.CurrentPlayer)

	// Second move far away: the old 4-line is accepted again in the scan
	// but touches no new cell, so it must not be re-awarded.
	m2, err := s1.NewMove(1, "O4", geom.Identity, geom.Cell{X: 6, Y: 6})
	require.NoError(t, err)
	s2, err := s1.PlacePiece(m2)
	require.NoError(t, err)

	require.Equal(t, linePoints(4)+squarePoints(2), s2.Scoring.Scores[1],
		"only the new square scores; the old line is not re-awarded")
	require.Len(t, s2.Scoring.History, 2)
}

func TestGameEndedTieBreaks(t *testing.T) {
	base := func(t *testing.T) *GameState {
		cfg := DefaultConfig()
		cfg.Rows, cfg.Cols = 4, 4
		gs := placementGame(t, cfg, nil, nil)
		// Full board: nobody can ever move.
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				gs.Board.Grid[y][x] = Unusable
			}
		}
		return gs
	}

	t.Run("higher score wins", func(t *testing.T) {
		gs := base(t)
		gs.Scoring.Scores[1] = 5
		gs.Scoring.Scores[2] = 9
		ended, winner := gs.GameEnded()
		require.True(t, ended)
		require.Equal(t, 2, winner)
	})

	t.Run("score tie falls to fewer remaining pieces", func(t *testing.T) {
		gs := base(t)
		gs.Players[1].Arsenal["T4"] = 2
		gs.Players[2].Arsenal["I5"] = 1
		ended, winner := gs.GameEnded()
		require.True(t, ended)
		require.Equal(t, 2, winner)
	})

	t.Run("exact tie defaults to player 1", func(t *testing.T) {
		gs := base(t)
		ended, winner := gs.GameEnded()
		require.True(t, ended)
		require.Equal(t, 1, winner, "documented fixed default")
	})

	t.Run("game continues while one player can move", func(t *testing.T) {
		gs := base(t)
		gs.Board.Grid[0][0] = Empty
		gs.Board.Grid[0][1] = Empty
		gs.Board.Grid[1][0] = Empty
		gs.Board.Grid[1][1] = Empty
		gs.Players[1].Arsenal["O4"] = 1
		ended, winner := gs.GameEnded()
		require.False(t, ended)
		require.Zero(t, winner)
	})
}

func TestDeterministicReplay(t *testing.T) {
	// The same action sequence from the same seed state produces
	// identical states, scores and history.
	run := func() *GameState {
		gs := placementGame(t, DefaultConfig(),
			map[string]int{"I4": 1, "O4": 1}, map[string]int{"T4": 1})
		gs = gs.WithClock(fixedClock(time.UnixMilli(42)))

		m1, err := gs.NewMove(1, "I4", geom.Identity, geom.Cell{X: 0, Y: 0})
		require.NoError(t, err)
		gs, err = gs.PlacePiece(m1)
		require.NoError(t, err)

		m2, err := gs.NewMove(2, "T4", geom.Transform{Rotation: geom.Rot90}, geom.Cell{X: 5, Y: 5})
		require.NoError(t, err)
		gs, err = gs.PlacePiece(m2)
		require.NoError(t, err)
		return gs
	}

	a, b := run(), run()
	docA, err := Save(a)
	require.NoError(t, err)
	docB, err := Save(b)
	require.NoError(t, err)
	require.Equal(t, string(docA), string(docB), "replays must be bit-identical")
}
