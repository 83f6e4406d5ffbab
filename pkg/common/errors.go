package common

import "errors"

var (
	// ErrInvalidState means the caller asked for a move on a board that has no
	// legal moves but is not reported terminal by the game.
	ErrInvalidState = errors.New("invalid state: no legal moves on a non-terminal board")
	ErrGameOver     = errors.New("game over")
	ErrInvalidDepth = errors.New("invalid depth")
)
