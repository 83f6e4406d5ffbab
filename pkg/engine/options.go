package engine

import (
	"github.com/rs/zerolog"
)

type Options struct {
	Hash             int // megabytes, 0 disables the transposition table
	AlphaBeta        bool
	MoveOrdering     bool
	ProgressMinNodes int
	Logger           zerolog.Logger
}

type Option func(*Options)

func NewOptions() Options {
	return Options{
		Hash:             16,
		AlphaBeta:        true,
		MoveOrdering:     true,
		ProgressMinNodes: 0,
		Logger:           zerolog.Nop(),
	}
}

func WithHash(megabytes int) Option {
	return func(o *Options) {
		o.Hash = megabytes
	}
}

// WithAlphaBeta(false) turns the search into plain minimax over the full tree.
func WithAlphaBeta(enabled bool) Option {
	return func(o *Options) {
		o.AlphaBeta = enabled
	}
}

// WithMoveOrdering toggles killer, history and hash move ordering.
// Static ordering supplied by the game is always used.
func WithMoveOrdering(enabled bool) Option {
	return func(o *Options) {
		o.MoveOrdering = enabled
	}
}

func WithProgressMinNodes(nodes int) Option {
	return func(o *Options) {
		o.ProgressMinNodes = nodes
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
