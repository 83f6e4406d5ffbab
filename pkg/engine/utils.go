package engine

import (
	. "github.com/ChizhovVadim/CounterGames/pkg/common"
)

const (
	stackSize     = 128
	maxHeight     = stackSize - 1
	valueDraw     = 0
	valueMate     = 30000
	valueInfinity = valueMate + 1
	valueWin      = valueMate - 2*maxHeight
	valueLoss     = -valueWin
)

// Faster wins and slower losses score better: the distance is measured in plies from the root.
func winIn(height int) int {
	return valueMate - height
}

func lossIn(height int) int {
	return -valueMate + height
}

func terminalValue(outcome Outcome, side Side, height int) int {
	if outcome.Kind == OutcomeWin {
		if outcome.Winner == side {
			return winIn(height)
		}
		return lossIn(height)
	}
	return valueDraw
}

func clampHeuristic(v int) int {
	return Max(valueLoss+1, Min(valueWin-1, v))
}

func valueToTT(v, height int) int {
	if v >= valueWin {
		return v + height
	}

	if v <= valueLoss {
		return v - height
	}

	return v
}

func valueFromTT(v, height int) int {
	if v >= valueWin {
		return v - height
	}

	if v <= valueLoss {
		return v + height
	}

	return v
}

func newScore(v int) Score {
	if v >= valueWin {
		return Score{Value: v, WinIn: valueMate - v}
	} else if v <= valueLoss {
		return Score{Value: v, WinIn: -(valueMate + v)}
	}
	return Score{Value: v}
}

// IsWinScore reports whether v is a proven win for the side it was computed for.
func IsWinScore(v int) bool {
	return v >= valueWin
}

// IsLossScore reports whether v is a proven loss for the side it was computed for.
func IsLossScore(v int) bool {
	return v <= valueLoss
}

type optMove[M comparable] struct {
	move M
	ok   bool
}

func some[M comparable](m M) optMove[M] {
	return optMove[M]{move: m, ok: true}
}

func (o optMove[M]) is(m M) bool {
	return o.ok && o.move == m
}
