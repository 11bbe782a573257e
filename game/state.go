package game

import (
	"fmt"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"sumzero/catalog"
)

type Phase int

const (
	SetupPhase Phase = iota
	DraftPhase
	PlacementPhase
	GameOverPhase
)

// SaveVersion is the current save-format schema version.
const SaveVersion = 2

// DraftState is the draft-phase bookkeeping: per-player pass flags and
// the consecutive-pass counter. Any purchase resets all of it.
type DraftState struct {
	Passed            map[int]bool `json:"passed"`
	ConsecutivePasses int          `json:"consecutivePasses"`
}

func (d DraftState) copy() DraftState {
	return DraftState{Passed: maps.Clone(d.Passed), ConsecutivePasses: d.ConsecutivePasses}
}

// GameState is the root aggregate: everything that changes during a game.
// Operations never mutate the receiver; each accepted action returns a
// new value built by copying only the substructures it touches.
type GameState struct {
	Version       int             `json:"version"`
	Phase         Phase           `json:"phase"`
	Config        Config          `json:"config"`
	Board         *Board          `json:"board"`
	Players       map[int]*Player `json:"players"`
	Stock         Stock           `json:"stock"`
	CurrentPlayer int             `json:"currentPlayer"`
	Draft         DraftState      `json:"draft"`
	Scoring       ScoringState    `json:"scoring"`
	History       []Move          `json:"history"`
	Winner        int             `json:"winner"` // 0 until game over

	catalog *catalog.Catalog
	clock   func() time.Time
}

// NewGameState builds the initial state: board and stock from config,
// budgets from the board size, and an immediate SETUP -> DRAFT
// transition with player 1 to act.
func NewGameState(cat *catalog.Catalog, cfg Config) (*GameState, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	board, err := NewShapedBoard(cfg.Rows, cfg.Cols, cfg.Shape)
	if err != nil {
		return nil, err
	}

	budget := StartingBudget(board)
	stock := Stock{}
	initial := 1
	if cfg.StockMode == StockUnlimited {
		initial = UnlimitedStock
	}
	if cfg.Tetrominoes {
		for _, id := range cat.IDsBySize(4) {
			stock[id] = initial
		}
	}
	if cfg.Pentominoes {
		for _, id := range cat.IDsBySize(5) {
			stock[id] = initial
		}
	}

	gs := &GameState{
		Version: SaveVersion,
		Phase:   DraftPhase,
		Config:  cfg,
		Board:   board,
		Players: map[int]*Player{
			1: newPlayer(1, budget),
			2: newPlayer(2, budget),
		},
		Stock:         stock,
		CurrentPlayer: 1,
		Draft:         DraftState{Passed: map[int]bool{}},
		Scoring:       newScoringState(),
		catalog:       cat,
		clock:         time.Now,
	}
	return gs, nil
}

// Catalog returns the piece table this state was built against.
func (gs *GameState) Catalog() *catalog.Catalog {
	return gs.catalog
}

// WithClock returns a state whose scoring timestamps come from the given
// function. Rule outcomes never depend on the clock; this exists so
// tests and replays are reproducible.
func (gs *GameState) WithClock(now func() time.Time) *GameState {
	ng := gs.clone()
	ng.clock = now
	return ng
}

func (gs *GameState) now() time.Time {
	if gs.clock == nil {
		return time.Now()
	}
	return gs.clock()
}

// clone copies the state envelope and every small mutable substructure.
// The board is shared: Board.Place already returns a fresh grid, so the
// grid is only copied by the one action that writes to it.
func (gs *GameState) clone() *GameState {
	ng := *gs
	ng.Players = map[int]*Player{
		1: gs.Players[1].copy(),
		2: gs.Players[2].copy(),
	}
	ng.Stock = maps.Clone(gs.Stock)
	ng.Draft = gs.Draft.copy()
	ng.Scoring = gs.Scoring.copy()
	ng.History = slices.Clone(gs.History)
	return &ng
}

// Opponent returns the other player's id.
func Opponent(player int) int {
	if player == 1 {
		return 2
	}
	return 1
}

func (gs *GameState) checkActor(player int, phase Phase) error {
	if gs.Phase != phase {
		return fmt.Errorf("%w: phase %d, action needs phase %d", ErrWrongPhase, gs.Phase, phase)
	}
	if player != gs.CurrentPlayer {
		return fmt.Errorf("%w: player %d acted on player %d's turn", ErrWrongTurn, player, gs.CurrentPlayer)
	}
	return nil
}

// enterPlacement transitions DRAFT -> PLACEMENT. Player 1 starts, and
// the start-of-turn check runs immediately so an already-blocked player
// is skipped (or the game ends) before anyone is asked to move.
func (gs *GameState) enterPlacement() {
	gs.Phase = PlacementPhase
	gs.CurrentPlayer = 1
	gs.startOfTurn()
}

// startOfTurn skips a blocked current player when the opponent can still
// move, and ends the game when neither can. Repeated skips across
// opponent moves are expected, not a bug.
func (gs *GameState) startOfTurn() {
	if gs.HasLegalMove(gs.CurrentPlayer) {
		return
	}
	if gs.HasLegalMove(Opponent(gs.CurrentPlayer)) {
		gs.CurrentPlayer = Opponent(gs.CurrentPlayer)
		return
	}
	gs.finish()
}

// TurnNumber is the number of accepted placement moves so far plus one.
func (gs *GameState) TurnNumber() int {
	return len(gs.History) + 1
}

// Status is the read-only summary handed to UI and agents.
type Status struct {
	Phase         Phase       `json:"phase"`
	CurrentPlayer int         `json:"currentPlayer"`
	Winner        int         `json:"winner"`
	TurnNumber    int         `json:"turnNumber"`
	Scores        map[int]int `json:"scores"`
	IsGameOver    bool        `json:"isGameOver"`
}

// Status reports the current phase, player, scores and winner.
func (gs *GameState) Status() Status {
	return Status{
		Phase:         gs.Phase,
		CurrentPlayer: gs.CurrentPlayer,
		Winner:        gs.Winner,
		TurnNumber:    gs.TurnNumber(),
		Scores:        maps.Clone(gs.Scoring.Scores),
		IsGameOver:    gs.Phase == GameOverPhase,
	}
}
