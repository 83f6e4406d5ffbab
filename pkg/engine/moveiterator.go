package engine

import . "github.com/ChizhovVadim/CounterGames/pkg/common"

const (
	sortTableKeyImportant = 1 << 20
	staticOrderWeight     = 1024
)

type orderedMove[M comparable] struct {
	Move M
	Key  int32
}

// genMoves returns the legal moves of b ordered for search.
// The result lives in the frame buffer of the given height.
func (e *Engine[B, M]) genMoves(b B, side Side, height int, transMove optMove[M]) []orderedMove[M] {
	var frame = &e.stack[height]
	var ml = e.game.LegalMoves(b, side)
	var buffer = frame.moveList[:0]
	var dynamic = e.Options.MoveOrdering
	for _, m := range ml {
		var score int
		if dynamic && transMove.is(m) {
			score = sortTableKeyImportant + 2000
		} else if dynamic && frame.killer1.is(m) {
			score = sortTableKeyImportant + 1
		} else if dynamic && frame.killer2.is(m) {
			score = sortTableKeyImportant
		} else {
			if e.orderer != nil {
				score = staticOrderWeight * e.orderer.OrderKey(b, m, side)
			}
			if dynamic {
				score += e.history.ReadTotal(side, m)
			}
		}
		buffer = append(buffer, orderedMove[M]{Move: m, Key: int32(score)})
	}
	sortMoves(buffer)
	frame.moveList = buffer
	return buffer
}

func sortMoves[M comparable](moves []orderedMove[M]) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}

func isSorted[M comparable](moves []orderedMove[M]) bool {
	for i := 1; i < len(moves); i++ {
		if moves[i-1].Key < moves[i].Key {
			return false
		}
	}
	return true
}
