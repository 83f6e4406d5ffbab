package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/games/connect4"
	"github.com/ChizhovVadim/CounterGames/pkg/games/tictactoe"
)

func parseTicTacToe(t *testing.T, s string) tictactoe.Board {
	t.Helper()
	var b, err = tictactoe.Game{}.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func parseConnect4(t *testing.T, s string) *connect4.Board {
	t.Helper()
	var b, err = connect4.Game{}.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func newTicTacToeEngine(options ...Option) *Engine[tictactoe.Board, tictactoe.Move] {
	return NewEngine[tictactoe.Board, tictactoe.Move](tictactoe.Game{}, options...)
}

func newConnect4Engine(options ...Option) *Engine[*connect4.Board, connect4.Move] {
	return NewEngine[*connect4.Board, connect4.Move](connect4.Game{}, options...)
}

func TestSingleLegalMove(t *testing.T) {
	var b = parseTicTacToe(t, "XOXXOOOX.")
	var eng = newTicTacToeEngine()

	for _, depth := range []int{0, 1, 3} {
		var move, _, err = eng.SearchDepth(b, First, depth)
		require.NoError(t, err)
		require.Equal(t, tictactoe.Move(8), move)
	}

	var si, err = eng.Search(context.Background(), SearchParams[tictactoe.Board, tictactoe.Move]{
		Board:  b,
		Side:   First,
		Limits: LimitsType{MoveTime: 1000},
	})
	require.NoError(t, err)
	require.Equal(t, []tictactoe.Move{8}, si.MainLine)
}

func TestImmediateWin(t *testing.T) {
	var b = parseTicTacToe(t, "XX.......")
	var eng = newTicTacToeEngine()

	var move, score, err = eng.SearchDepth(b, First, 1)
	require.NoError(t, err)
	require.Equal(t, tictactoe.Move(2), move)
	require.True(t, IsWinScore(score))
	require.Equal(t, winIn(1), score)

	// the fallback before the first iteration takes the win too
	move, _, err = eng.SearchDepth(b, First, 0)
	require.NoError(t, err)
	require.Equal(t, tictactoe.Move(2), move)

	si, err := eng.Search(context.Background(), SearchParams[tictactoe.Board, tictactoe.Move]{
		Board:  b,
		Side:   First,
		Limits: LimitsType{Depth: 5},
	})
	require.NoError(t, err)
	var best, ok = si.BestMove()
	require.True(t, ok)
	require.Equal(t, tictactoe.Move(2), best)
	require.Equal(t, 1, si.Score.WinIn)
	require.False(t, si.Cancelled)
}

func TestBlockThreat(t *testing.T) {
	var b = parseTicTacToe(t, "OO..X....")
	var eng = newTicTacToeEngine()
	var move, score, err = eng.SearchDepth(b, First, 2)
	require.NoError(t, err)
	require.Equal(t, tictactoe.Move(2), move)
	require.False(t, IsLossScore(score))
}

func TestFasterWinPreferred(t *testing.T) {
	// 6 wins at once and also blocks the diagonal of O
	var b = parseTicTacToe(t, "X.OXO....")
	var eng = newTicTacToeEngine()
	var move, score, err = eng.SearchDepth(b, First, 5)
	require.NoError(t, err)
	require.Equal(t, tictactoe.Move(6), move)
	require.Equal(t, winIn(1), score)
}

// reachableBoards returns the non-terminal boards reachable from the empty board in at most plies moves.
func reachableBoards(plies int) []tictactoe.Board {
	var game = tictactoe.Game{}
	var result []tictactoe.Board
	var seen = make(map[tictactoe.Board]bool)
	var walk func(b tictactoe.Board, side Side, left int)
	walk = func(b tictactoe.Board, side Side, left int) {
		if seen[b] || game.Terminal(b).IsTerminal() {
			return
		}
		seen[b] = true
		result = append(result, b)
		if left == 0 {
			return
		}
		for _, m := range game.LegalMoves(b, side) {
			walk(game.Apply(b, m, side), side.Opponent(), left-1)
		}
	}
	walk(tictactoe.Board{}, First, plies)
	return result
}

func TestPruningKeepsBestMove(t *testing.T) {
	var boards = reachableBoards(3)
	require.NotEmpty(t, boards)
	var pruned = newTicTacToeEngine(WithHash(0), WithMoveOrdering(false))
	var full = newTicTacToeEngine(WithHash(0), WithMoveOrdering(false), WithAlphaBeta(false))
	for _, b := range boards {
		var side = b.SideToMove()
		for depth := 1; depth <= 4; depth++ {

			var move1, score1, err1 = pruned.SearchDepth(b, side, depth)
			require.NoError(t, err1)
			var move2, score2, err2 = full.SearchDepth(b, side, depth)
			require.NoError(t, err2)

			require.Equal(t, move2, move1, "board %v depth %v", b, depth)
			require.Equal(t, score2, score1, "board %v depth %v", b, depth)
			require.LessOrEqual(t, pruned.Nodes(), full.Nodes())
		}
	}
}

func TestTransTableKeepsScore(t *testing.T) {
	var withTT = newTicTacToeEngine(WithHash(1))
	var withoutTT = newTicTacToeEngine(WithHash(0))
	for _, b := range reachableBoards(2) {
		var side = b.SideToMove()
		for depth := 1; depth <= 5; depth++ {
			withTT.Clear()

			var score1, err1 = withTT.Evaluate(b, side, depth)
			require.NoError(t, err1)
			var score2, err2 = withoutTT.Evaluate(b, side, depth)
			require.NoError(t, err2)
			require.Equal(t, score2, score1, "board %v depth %v", b, depth)
		}
	}
}

func TestEvaluateSymmetry(t *testing.T) {
	var eng = newTicTacToeEngine()

	var score, err = eng.Evaluate(tictactoe.Board{}, First, 0)
	require.NoError(t, err)
	require.Equal(t, 0, score)

	for _, b := range reachableBoards(4) {
		var first, err1 = eng.Evaluate(b, First, 0)
		require.NoError(t, err1)
		var second, err2 = eng.Evaluate(b, Second, 0)
		require.NoError(t, err2)
		require.Equal(t, first, -second, "board %v", b)
	}
}

func TestSolvedGameIsDraw(t *testing.T) {
	var eng = newTicTacToeEngine()
	var score, err = eng.Evaluate(tictactoe.Board{}, First, 9)
	require.NoError(t, err)
	require.Equal(t, 0, score)
}

func TestSelfPlayDraw(t *testing.T) {
	var game = tictactoe.Game{}
	var eng = newTicTacToeEngine()
	var b tictactoe.Board
	var side = First
	for !game.Terminal(b).IsTerminal() {
		var si, err = eng.Search(context.Background(), SearchParams[tictactoe.Board, tictactoe.Move]{
			Board: b,
			Side:  side,
		})
		require.NoError(t, err)
		require.False(t, si.Cancelled)
		var move, ok = si.BestMove()
		require.True(t, ok)
		require.Contains(t, game.LegalMoves(b, side), move)
		b = game.Apply(b, move, side)
		side = side.Opponent()
	}
	require.Equal(t, DrawOutcome(), game.Terminal(b))
}

func TestZeroTime(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()

	var eng = newTicTacToeEngine()
	var si, err = eng.Search(ctx, SearchParams[tictactoe.Board, tictactoe.Move]{
		Board: tictactoe.Board{},
		Side:  First,
	})
	require.NoError(t, err)
	require.True(t, si.Cancelled)
	require.Equal(t, 0, si.Depth)
	var move, ok = si.BestMove()
	require.True(t, ok)
	require.Contains(t, tictactoe.Game{}.LegalMoves(tictactoe.Board{}, First), move)

	// the fallback blocks an immediate threat
	si, err = eng.Search(ctx, SearchParams[tictactoe.Board, tictactoe.Move]{
		Board: parseTicTacToe(t, "OO..X...."),
		Side:  First,
	})
	require.NoError(t, err)
	require.True(t, si.Cancelled)
	require.Equal(t, []tictactoe.Move{2}, si.MainLine)

	var game = connect4.Game{}
	var b = connect4.NewBoard()
	var before = game.FormatBoard(b)
	deadline, cancelDeadline := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelDeadline()
	si4, err := newConnect4Engine().Search(deadline, SearchParams[*connect4.Board, connect4.Move]{
		Board: b,
		Side:  First,
	})
	require.NoError(t, err)
	require.True(t, si4.Cancelled)
	require.Len(t, si4.MainLine, 1)
	require.Equal(t, before, game.FormatBoard(b))
}

func TestDepthLimit(t *testing.T) {
	var eng = newConnect4Engine()
	var depths []int
	var si, err = eng.Search(context.Background(), SearchParams[*connect4.Board, connect4.Move]{
		Board:  connect4.NewBoard(),
		Side:   First,
		Limits: LimitsType{Depth: 4},
		Progress: func(si SearchInfo[connect4.Move]) {
			depths = append(depths, si.Depth)
		},
	})
	require.NoError(t, err)
	require.False(t, si.Cancelled)
	require.Equal(t, 4, si.Depth)
	require.Equal(t, []int{1, 2, 3, 4}, depths)
	require.NotEmpty(t, si.MainLine)
}

func TestNodeLimit(t *testing.T) {
	var eng = newConnect4Engine()
	var si, err = eng.Search(context.Background(), SearchParams[*connect4.Board, connect4.Move]{
		Board:  connect4.NewBoard(),
		Side:   First,
		Limits: LimitsType{Nodes: 1000},
	})
	require.NoError(t, err)
	require.True(t, si.Cancelled)
	require.NotEmpty(t, si.MainLine)
	require.Less(t, eng.Nodes(), int64(1100))
}

func TestMutableBoardRestored(t *testing.T) {
	var game = connect4.Game{}
	var b = parseConnect4(t, "......./......./......./...o.../..xo.../..xxo..")
	var side = b.SideToMove()
	var before = *b
	var key = game.Key(b, side)

	var eng = newConnect4Engine()
	var _, _, err = eng.SearchDepth(b, side, 6)
	require.NoError(t, err)
	require.Equal(t, before, *b)

	_, err = eng.Search(context.Background(), SearchParams[*connect4.Board, connect4.Move]{
		Board:  b,
		Side:   side,
		Limits: LimitsType{MoveTime: 30},
	})
	require.NoError(t, err)
	require.Equal(t, before, *b)
	require.Equal(t, key, game.Key(b, side))
}

func TestMutableBoardRestoredAfterNodeLimit(t *testing.T) {
	var game = connect4.Game{}
	var b = parseConnect4(t, "......./......./......./...o.../..xo.../..xxo..")
	var side = b.SideToMove()
	var before = *b
	var key = game.Key(b, side)

	var eng = newConnect4Engine()
	for _, nodes := range []int{5000, 6500, 8000} {
		eng.Clear()
		var si, err = eng.Search(context.Background(), SearchParams[*connect4.Board, connect4.Move]{
			Board:  b,
			Side:   side,
			Limits: LimitsType{Nodes: nodes},
		})
		require.NoError(t, err)
		require.True(t, si.Cancelled)
		require.NotEmpty(t, si.MainLine)
		require.Equal(t, before, *b)
		require.Equal(t, key, game.Key(b, side))
	}
}

func TestConnect4ImmediateWin(t *testing.T) {
	var b = parseConnect4(t, "......./......./......./x....../x.....o/x.....o")
	var eng = newConnect4Engine()
	var si, err = eng.Search(context.Background(), SearchParams[*connect4.Board, connect4.Move]{
		Board:  b,
		Side:   Second,
		Limits: LimitsType{Depth: 4},
	})
	require.NoError(t, err)
	// second must block the vertical three
	require.Equal(t, connect4.Move(0), si.MainLine[0])

	b = parseConnect4(t, "......./......./......./x....../x.....o/x....oo")
	move, score, err := eng.SearchDepth(b, First, 3)
	require.NoError(t, err)
	require.Equal(t, connect4.Move(0), move)
	require.Equal(t, winIn(1), score)
}

type noMovesGame struct {
	rootMoves int
}

func (g noMovesGame) LegalMoves(b int, side Side) []int {
	if b < g.rootMoves {
		return []int{1, 2}
	}
	return nil
}

func (noMovesGame) Apply(b int, m int, side Side) int {
	return b + m
}

func (noMovesGame) Terminal(b int) Outcome {
	return Outcome{}
}

func (noMovesGame) Heuristic(b int, side Side) int {
	return 0
}

func TestErrors(t *testing.T) {
	var eng = newTicTacToeEngine()

	var _, _, err = eng.SearchDepth(parseTicTacToe(t, "XOXXOOOXX"), First, 2)
	require.True(t, errors.Is(err, ErrGameOver))

	_, _, err = eng.SearchDepth(parseTicTacToe(t, "XXX.OO..."), Second, 2)
	require.True(t, errors.Is(err, ErrGameOver))

	_, _, err = eng.SearchDepth(tictactoe.Board{}, First, -1)
	require.True(t, errors.Is(err, ErrInvalidDepth))

	_, err = eng.Evaluate(tictactoe.Board{}, SideNone, 1)
	require.True(t, errors.Is(err, ErrInvalidState))

	var stub = NewEngine[int, int](noMovesGame{rootMoves: 0})
	_, err = stub.Search(context.Background(), SearchParams[int, int]{Side: First})
	require.True(t, errors.Is(err, ErrInvalidState))

	// the contract violation is found inside the tree
	stub = NewEngine[int, int](noMovesGame{rootMoves: 1})
	_, _, err = stub.SearchDepth(0, First, 3)
	require.True(t, errors.Is(err, ErrInvalidState))
	_, err = stub.Search(context.Background(), SearchParams[int, int]{Side: First})
	require.True(t, errors.Is(err, ErrInvalidState))
}

func TestClampedHeuristic(t *testing.T) {
	require.Equal(t, valueWin-1, clampHeuristic(1<<20))
	require.Equal(t, valueLoss+1, clampHeuristic(-(1 << 20)))
	require.Equal(t, 17, clampHeuristic(17))
	require.Less(t, valueWin, winIn(maxHeight))
}

func TestNewScore(t *testing.T) {
	require.Equal(t, Score{Value: winIn(3), WinIn: 3}, newScore(winIn(3)))
	require.Equal(t, Score{Value: lossIn(4), WinIn: -4}, newScore(lossIn(4)))
	require.Equal(t, Score{Value: 25}, newScore(25))
	require.Equal(t, "win 3", newScore(winIn(3)).String())
	require.Equal(t, "value 25", newScore(25).String())
}
