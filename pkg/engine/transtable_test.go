package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	. "github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/games/tictactoe"
)

func TestTransTable(t *testing.T) {
	var tt = newTransTable[int](1)
	require.Equal(t, 1, tt.Size())

	var _, _, _, _, _, ok = tt.Read(42)
	require.False(t, ok)

	tt.Update(42, 10, 150, boundLower, some(7), true)
	depth, score, bound, move, horizon, ok := tt.Read(42)
	require.True(t, ok)
	require.Equal(t, 10, depth)
	require.Equal(t, 150, score)
	require.Equal(t, boundLower, bound)
	require.True(t, move.is(7))
	require.True(t, horizon)

	// a much shallower bound does not replace a deep entry
	tt.Update(42, 0, -5, boundUpper, optMove[int]{}, false)
	depth, score, _, _, _, _ = tt.Read(42)
	require.Equal(t, 10, depth)
	require.Equal(t, 150, score)

	tt.Update(42, 0, -5, boundExact, optMove[int]{}, false)
	_, score, bound, move, _, _ = tt.Read(42)
	require.Equal(t, -5, score)
	require.Equal(t, boundExact, bound)
	require.False(t, move.ok)

	tt.Clear()
	_, _, _, _, _, ok = tt.Read(42)
	require.False(t, ok)
}

func TestMateDistanceInTransTable(t *testing.T) {
	// a win 5 plies from the root stored at height 2 is a win in 3 from that node
	var v = winIn(5)
	var stored = valueToTT(v, 2)
	require.Equal(t, winIn(3), stored)
	require.Equal(t, v, valueFromTT(stored, 2))
	require.Equal(t, winIn(4), valueFromTT(stored, 1))

	require.Equal(t, lossIn(3), valueToTT(lossIn(5), 2))
	require.Equal(t, 12, valueToTT(12, 7))
}

func TestGenMovesOrder(t *testing.T) {
	var eng = NewEngine[tictactoe.Board, tictactoe.Move](tictactoe.Game{})
	var ml = eng.genMoves(tictactoe.Board{}, First, 0, optMove[tictactoe.Move]{})
	require.Len(t, ml, tictactoe.Size)
	require.True(t, isSorted(ml))
	require.Equal(t, tictactoe.Move(4), ml[0].Move)

	ml = eng.genMoves(tictactoe.Board{}, First, 0, some(tictactoe.Move(7)))
	require.True(t, isSorted(ml))
	require.Equal(t, tictactoe.Move(7), ml[0].Move)
	require.Equal(t, tictactoe.Move(4), ml[1].Move)

	eng.Options.MoveOrdering = false
	ml = eng.genMoves(tictactoe.Board{}, First, 0, some(tictactoe.Move(7)))
	require.Equal(t, tictactoe.Move(4), ml[0].Move)
}

func TestHistoryUpdate(t *testing.T) {
	var h historyService[int]
	h.Update(First, []int{1, 2, 3}, 2, 4)
	require.Less(t, h.ReadTotal(First, 1), 0)
	require.Greater(t, h.ReadTotal(First, 2), 0)
	require.Equal(t, 0, h.ReadTotal(First, 3))
	require.Equal(t, 0, h.ReadTotal(Second, 2))
	h.Clear()
	require.Equal(t, 0, h.ReadTotal(First, 2))
}
