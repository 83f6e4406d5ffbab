package engine

import (
	. "github.com/ChizhovVadim/CounterGames/pkg/common"
)

// iterativeDeepening searches depth 1, 2, ... and keeps the main line of the
// last completed depth. An iteration cut by the time manager is discarded.
func (e *Engine[B, M]) iterativeDeepening(b B, side Side) (err error) {
	var ml = e.rootMoves(b, side)
	var fallback, fallbackScore = e.fallbackMove(b, side, ml)
	e.mainLine = mainLine[M]{
		depth: 0,
		score: fallbackScore,
		moves: []M{fallback},
	}
	e.rootHint = some(fallback)
	if len(ml) <= 1 {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			_, err = catchSearchPanic(r)
		}
	}()

	for depth := 1; depth <= maxHeight; depth++ {
		if e.timeManager.IsDone() {
			return nil
		}
		e.leafReached = false
		var score = e.alphaBeta(b, side, -valueInfinity, valueInfinity, depth, 0)
		e.onIterationComplete(depth, score)
		if !e.leafReached {
			// the whole game tree fits into this depth
			return nil
		}
	}
	return nil
}
