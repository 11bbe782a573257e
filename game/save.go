package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"sumzero/catalog"
)

// Save serializes the complete game state to a single JSON document.
// Save and Load round-trip exactly.
func Save(gs *GameState) ([]byte, error) {
	return json.Marshal(gs)
}

// Load parses a saved document, migrating older schema versions forward
// before validation. A failed load returns ErrMalformedState and never a
// partially valid state.
func Load(cat *catalog.Catalog, data []byte) (*GameState, error) {
	var probe struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if probe.Version == nil {
		return nil, fmt.Errorf("%w: missing version", ErrMalformedState)
	}

	var gs *GameState
	switch *probe.Version {
	case 1:
		migrated, err := migrateV1(data)
		if err != nil {
			return nil, err
		}
		gs = migrated
	case SaveVersion:
		gs = &GameState{}
		if err := json.Unmarshal(data, gs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported save version %d", ErrMalformedState, *probe.Version)
	}

	if err := validateLoaded(gs, cat); err != nil {
		return nil, err
	}
	gs.catalog = cat
	gs.clock = time.Now
	return gs, nil
}

// Version 1 documents carried the arsenal as a repeated-id array and
// predate the scoring sub-state.
type playerV1 struct {
	ID      int      `json:"id"`
	Budget  int      `json:"budget"`
	Arsenal []string `json:"arsenal"`
}

type docV1 struct {
	Version       int                 `json:"version"`
	Phase         Phase               `json:"phase"`
	Config        Config              `json:"config"`
	Board         *Board              `json:"board"`
	Players       map[string]playerV1 `json:"players"`
	Stock         Stock               `json:"stock"`
	CurrentPlayer int                 `json:"currentPlayer"`
	Draft         *DraftState         `json:"draft"`
	History       []Move              `json:"history"`
	Winner        int                 `json:"winner"`
}

// migrateV1 upgrades a v1 document field by field: the arsenal array
// collapses into a count map, and the absent scoring sub-state
// initializes to zero/empty. The upgrade is deterministic; structural
// validation runs afterwards, not here.
func migrateV1(data []byte) (*GameState, error) {
	var doc docV1
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	gs := &GameState{
		Version:       SaveVersion,
		Phase:         doc.Phase,
		Config:        doc.Config,
		Board:         doc.Board,
		Stock:         doc.Stock,
		CurrentPlayer: doc.CurrentPlayer,
		History:       doc.History,
		Winner:        doc.Winner,
		Scoring:       newScoringState(),
	}

	if doc.Players != nil {
		gs.Players = make(map[int]*Player, len(doc.Players))
		for key, pv := range doc.Players {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("%w: player key %q", ErrMalformedState, key)
			}
			arsenal := make(map[string]int, len(pv.Arsenal))
			for _, pieceID := range pv.Arsenal {
				arsenal[pieceID]++
			}
			gs.Players[id] = &Player{ID: pv.ID, Budget: pv.Budget, Arsenal: arsenal}
		}
	}

	if doc.Draft != nil {
		gs.Draft = *doc.Draft
	}
	if gs.Draft.Passed == nil {
		gs.Draft.Passed = map[int]bool{}
	}
	return gs, nil
}

// validateLoaded runs the structural and semantic checks on a migrated
// document before it becomes a usable state.
func validateLoaded(gs *GameState, cat *catalog.Catalog) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrMalformedState, fmt.Sprintf(format, args...))
	}

	if gs.Version != SaveVersion {
		return fail("version %d after migration", gs.Version)
	}
	if gs.Phase < SetupPhase || gs.Phase > GameOverPhase {
		return fail("invalid phase %d", gs.Phase)
	}
	if gs.Board == nil {
		return fail("missing board")
	}
	if err := gs.Config.validate(); err != nil {
		return err
	}
	if gs.Board.Rows != gs.Config.Rows || gs.Board.Cols != gs.Config.Cols {
		return fail("board %dx%d does not match config %dx%d",
			gs.Board.Rows, gs.Board.Cols, gs.Config.Rows, gs.Config.Cols)
	}
	if len(gs.Board.Grid) != gs.Board.Rows {
		return fail("grid has %d rows, declared %d", len(gs.Board.Grid), gs.Board.Rows)
	}
	for y, row := range gs.Board.Grid {
		if len(row) != gs.Board.Cols {
			return fail("grid row %d has %d cells, declared %d", y, len(row), gs.Board.Cols)
		}
		for x, cell := range row {
			if cell < Empty || cell > Unusable {
				return fail("grid cell %d,%d has state %d", x, y, cell)
			}
		}
	}

	if gs.Players == nil {
		return fail("missing players")
	}
	for _, id := range []int{1, 2} {
		p, ok := gs.Players[id]
		if !ok || p == nil {
			return fail("missing player %d", id)
		}
		if p.ID != id {
			return fail("player %d has id %d", id, p.ID)
		}
		if p.Budget < 0 {
			return fail("player %d has negative budget %d", id, p.Budget)
		}
		for pieceID, count := range p.Arsenal {
			if count < 0 {
				return fail("player %d has %d of %q", id, count, pieceID)
			}
			if _, known := cat.Piece(pieceID); !known {
				return fail("player %d owns unknown piece %q", id, pieceID)
			}
		}
	}
	if len(gs.Players) != 2 {
		return fail("expected 2 players, got %d", len(gs.Players))
	}

	if gs.Stock == nil {
		return fail("missing stock")
	}
	for pieceID, count := range gs.Stock {
		if count < UnlimitedStock {
			return fail("stock of %q is %d", pieceID, count)
		}
		if _, known := cat.Piece(pieceID); !known {
			return fail("stock lists unknown piece %q", pieceID)
		}
	}

	if gs.CurrentPlayer != 1 && gs.CurrentPlayer != 2 {
		return fail("current player %d", gs.CurrentPlayer)
	}
	if gs.Draft.Passed == nil {
		return fail("missing draft pass flags")
	}
	if gs.Draft.ConsecutivePasses < 0 || gs.Draft.ConsecutivePasses > 2 {
		return fail("consecutive passes %d", gs.Draft.ConsecutivePasses)
	}
	if gs.Scoring.Scores == nil {
		return fail("missing scores")
	}
	for _, id := range []int{1, 2} {
		if gs.Scoring.Scores[id] < 0 {
			return fail("player %d has negative score", id)
		}
	}
	switch gs.Winner {
	case 0, 1, 2:
	default:
		return fail("winner %d", gs.Winner)
	}
	if gs.Phase == GameOverPhase && gs.Winner == 0 {
		return fail("game over without a winner")
	}
	return nil
}
