package game

import "errors"

// Rules violations are reported synchronously to the caller as one of
// these kinds, wrapped with context. State is never partially applied on
// failure; nothing is retried internally.
var (
	ErrUnknownPiece    = errors.New("unknown piece")
	ErrInvalidPurchase = errors.New("invalid purchase")
	ErrInvalidMove     = errors.New("invalid move")
	ErrWrongPhase      = errors.New("wrong phase")
	ErrWrongTurn       = errors.New("wrong turn")
	ErrMalformedState  = errors.New("malformed state")
)
