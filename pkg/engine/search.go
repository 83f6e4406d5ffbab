package engine

import (
	"errors"
	"fmt"

	. "github.com/ChizhovVadim/CounterGames/pkg/common"
)

var errSearchTimeout = errors.New("search timeout")

// catchSearchPanic turns the values used to unwind the recursion back into results.
func catchSearchPanic(r interface{}) (timeout bool, err error) {
	if r == errSearchTimeout {
		return true, nil
	}
	if e, ok := r.(error); ok && errors.Is(e, ErrInvalidState) {
		return false, e
	}
	panic(r)
}

// main search method
func (e *Engine[B, M]) alphaBeta(b B, side Side, alpha, beta, depth, height int) int {
	e.clearPV(height)
	e.incNodes()

	var outcome = e.game.Terminal(b)
	if outcome.IsTerminal() {
		return terminalValue(outcome, side, height)
	}
	if depth <= 0 || height >= maxHeight {
		e.leafReached = true
		return e.evaluate(b, side)
	}

	var rootNode = height == 0
	var options = &e.Options

	// transposition table
	var (
		key    uint64
		ttMove optMove[M]
	)
	if e.transTable != nil {
		key = e.hasher.Key(b, side)
		var ttDepth, ttValue, ttBound, move, ttHorizon, ttHit = e.transTable.Read(key)
		if ttHit {
			ttMove = move
			ttValue = valueFromTT(ttValue, height)
			if !rootNode && options.AlphaBeta && ttDepth >= depth {
				if ttBound == boundExact ||
					ttBound == boundLower && ttValue >= beta ||
					ttBound == boundUpper && ttValue <= alpha {
					if ttHorizon {
						e.leafReached = true
					}
					return ttValue
				}
			}
		}
	}
	if rootNode && !ttMove.ok {
		ttMove = e.rootHint
	}

	if height+2 < stackSize {
		e.stack[height+2].killer1 = optMove[M]{}
		e.stack[height+2].killer2 = optMove[M]{}
	}

	var ml = e.genMoves(b, side, height, ttMove)
	if len(ml) == 0 {
		panic(fmt.Errorf("%w: height %v", ErrInvalidState, height))
	}

	// leafReached is collected per subtree for the transposition table
	var parentLeafReached = e.leafReached
	e.leafReached = false

	var searched = e.stack[height].searched[:0]
	var bestMove optMove[M]
	var best = -valueInfinity
	var oldAlpha = alpha

	for i := range ml {
		var move = ml[i].Move
		var score int
		if options.AlphaBeta {
			score = e.searchChild(b, move, side, -beta, -alpha, depth-1, height)
		} else {
			score = e.searchChild(b, move, side, -valueInfinity, valueInfinity, depth-1, height)
		}
		searched = append(searched, move)

		if score > best {
			best = score
			bestMove = some(move)
		}
		if score > alpha {
			alpha = score
			e.assignPV(height, move)
			if options.AlphaBeta && alpha >= beta {
				break
			}
		}
	}
	e.stack[height].searched = searched
	var horizon = e.leafReached
	e.leafReached = parentLeafReached || horizon

	if options.MoveOrdering && alpha > oldAlpha && bestMove.ok {
		e.history.Update(side, searched, bestMove.move, depth)
		e.updateKiller(bestMove.move, height)
	}

	if e.transTable != nil {
		var ttBound = 0
		if best > oldAlpha {
			ttBound |= boundLower
		}
		if best < beta {
			ttBound |= boundUpper
		}
		if !(rootNode && ttBound == boundUpper) {
			e.transTable.Update(key, depth, valueToTT(best, height), ttBound, bestMove, horizon)
		}
	}

	return best
}

// searchChild makes the move, searches the child with the already negated
// window and takes the move back on every exit path, including timeouts.
func (e *Engine[B, M]) searchChild(b B, move M, side Side, childAlpha, childBeta, depth, height int) int {
	if e.mutator != nil {
		var undo = e.mutator.Make(b, move, side)
		defer undo()
		return -e.alphaBeta(b, side.Opponent(), childAlpha, childBeta, depth, height+1)
	}
	var child = e.game.Apply(b, move, side)
	return -e.alphaBeta(child, side.Opponent(), childAlpha, childBeta, depth, height+1)
}

func (e *Engine[B, M]) evaluate(b B, side Side) int {
	return clampHeuristic(e.game.Heuristic(b, side))
}

func (e *Engine[B, M]) incNodes() {
	e.nodes++
	if e.timeManager != nil && e.nodes&63 == 0 {
		e.timeManager.OnNodesChanged(int(e.nodes))
		if e.timeManager.IsDone() {
			panic(errSearchTimeout)
		}
	}
}

// fallbackMove looks one ply ahead without searching: an immediate win is
// taken at once, moves that allow an immediate win of the opponent come last,
// the rest are ranked by static value.
func (e *Engine[B, M]) fallbackMove(b B, side Side, ml []M) (M, int) {
	var bestMove = ml[0]
	var best = -valueInfinity
	for _, move := range ml {
		var score = e.fallbackValue(b, move, side)
		if score > best {
			best = score
			bestMove = move
			if score >= valueWin {
				break
			}
		}
	}
	return bestMove, best
}

func (e *Engine[B, M]) fallbackValue(b B, move M, side Side) int {
	e.nodes++
	if e.mutator != nil {
		var undo = e.mutator.Make(b, move, side)
		defer undo()
		return e.childFallbackValue(b, side)
	}
	return e.childFallbackValue(e.game.Apply(b, move, side), side)
}

func (e *Engine[B, M]) childFallbackValue(child B, side Side) int {
	var opponent = side.Opponent()
	var outcome = e.game.Terminal(child)
	if outcome.IsTerminal() {
		return -terminalValue(outcome, opponent, 1)
	}
	for _, reply := range e.game.LegalMoves(child, opponent) {
		if e.isImmediateWin(child, reply, opponent) {
			return lossIn(2)
		}
	}
	return -e.evaluate(child, opponent)
}

func (e *Engine[B, M]) isImmediateWin(b B, move M, side Side) bool {
	e.nodes++
	if e.mutator != nil {
		var undo = e.mutator.Make(b, move, side)
		defer undo()
		return e.game.Terminal(b) == WinFor(side)
	}
	return e.game.Terminal(e.game.Apply(b, move, side)) == WinFor(side)
}
