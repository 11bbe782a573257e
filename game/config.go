package game

import "fmt"

// Stock modes recognized at game creation.
const (
	StockSingleton = "singleton"
	StockUnlimited = "unlimited"
)

// Board size limits accepted at creation and on load.
const (
	MinBoardDim = 4
	MaxBoardDim = 32
)

// Config is the game creation configuration. The zero value is not
// valid; use DefaultConfig as a starting point.
type Config struct {
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	Shape       string `json:"shape"`
	StockMode   string `json:"stockMode"`
	Tetrominoes bool   `json:"tetrominoes"`
	Pentominoes bool   `json:"pentominoes"`
}

// DefaultConfig is a plain 8x8 game with every piece available once.
func DefaultConfig() Config {
	return Config{
		Rows:        8,
		Cols:        8,
		StockMode:   StockSingleton,
		Tetrominoes: true,
		Pentominoes: true,
	}
}

func (c Config) validate() error {
	if c.Rows < MinBoardDim || c.Rows > MaxBoardDim ||
		c.Cols < MinBoardDim || c.Cols > MaxBoardDim {
		return fmt.Errorf("%w: board %dx%d outside %d..%d",
			ErrMalformedState, c.Rows, c.Cols, MinBoardDim, MaxBoardDim)
	}
	switch c.Shape {
	case ShapeRect, ShapePlus, ShapeDiamond:
	default:
		return fmt.Errorf("%w: unknown board shape %q", ErrMalformedState, c.Shape)
	}
	switch c.StockMode {
	case StockSingleton, StockUnlimited:
	default:
		return fmt.Errorf("%w: unknown stock mode %q", ErrMalformedState, c.StockMode)
	}
	if !c.Tetrominoes && !c.Pentominoes {
		return fmt.Errorf("%w: no piece sizes enabled", ErrMalformedState)
	}
	return nil
}

// StartingBudget is floor(usable cells / 2) + 1. On a rectangular board
// that is floor(R*C/2)+1; carved cells do not count.
func StartingBudget(b *Board) int {
	return b.UsableCells()/2 + 1
}
