package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

func TestTerminal(t *testing.T) {
	var game = Game{}
	var tests = []struct {
		name    string
		board   string
		outcome common.Outcome
	}{
		{"empty", ".........", common.Outcome{}},
		{"row", "XXX/OO./...", common.WinFor(common.First)},
		{"column", "OX./OX./O.X", common.WinFor(common.Second)},
		{"diagonal", "X.O/.XO/..X", common.WinFor(common.First)},
		{"anti diagonal", "XXO/XO./O..", common.WinFor(common.Second)},
		{"draw", "XOX/XOO/OXX", common.DrawOutcome()},
		{"open", "XOX/XOO/OX.", common.Outcome{}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var b, err = game.ParseBoard(test.board)
			require.NoError(t, err)
			require.Equal(t, test.outcome, game.Terminal(b))
			if test.outcome.IsTerminal() {
				require.Empty(t, game.LegalMoves(b, b.SideToMove()))
			} else {
				require.NotEmpty(t, game.LegalMoves(b, b.SideToMove()))
			}
		})
	}
}

func TestParseBoard(t *testing.T) {
	var game = Game{}
	var b, err = game.ParseBoard("x-o 0__ ...")
	require.NoError(t, err)
	require.Equal(t, "X.OO.....", game.FormatBoard(b))

	for _, s := range []string{"", "XX", "..........", "XX.A....."} {
		_, err = game.ParseBoard(s)
		require.Error(t, err, s)
	}
}

func TestParseMove(t *testing.T) {
	var game = Game{}
	var b, _ = game.ParseBoard("X........")
	var m, err = game.ParseMove(b, "4")
	require.NoError(t, err)
	require.Equal(t, Move(4), m)
	require.Equal(t, "4", game.FormatMove(m))

	for _, s := range []string{"0", "9", "-1", "x"} {
		_, err = game.ParseMove(b, s)
		require.Error(t, err, s)
	}
}

func TestApplyCopies(t *testing.T) {
	var game = Game{}
	var b Board
	var child = game.Apply(b, 4, common.First)
	require.Equal(t, Board{}, b)
	require.Equal(t, X, child[4])
	require.Equal(t, common.Second, child.SideToMove())
}

func TestKeyIsUnique(t *testing.T) {
	var game = Game{}
	var keys = make(map[uint64]Board)
	var walk func(b Board, side common.Side)
	walk = func(b Board, side common.Side) {
		var key = game.Key(b, side)
		if other, ok := keys[key]; ok {
			require.Equal(t, other, b)
			return
		}
		keys[key] = b
		for _, m := range game.LegalMoves(b, side) {
			walk(game.Apply(b, m, side), side.Opponent())
		}
	}
	walk(Board{}, common.First)
	// positions reachable in legal play
	require.Equal(t, 5478, len(keys))
}

func TestHeuristic(t *testing.T) {
	var game = Game{}
	require.Equal(t, 0, game.Heuristic(Board{}, common.First))
	var b, _ = game.ParseBoard("....X....")
	require.Greater(t, game.Heuristic(b, common.First), 0)
	require.Equal(t, game.Heuristic(b, common.First), -game.Heuristic(b, common.Second))
	require.Greater(t, game.OrderKey(b, 0, common.Second), game.OrderKey(b, 1, common.Second))
}
