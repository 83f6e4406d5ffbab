package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

// SearchInfo is common.SearchInfo with the moves already written in game notation.
type SearchInfo struct {
	Score     common.Score
	Depth     int
	Nodes     int64
	Time      time.Duration
	MainLine  []string
	Cancelled bool
}

type Engine interface {
	Prepare()
	Clear()
	// SetPosition sets the board to search. An empty board means the initial position.
	SetPosition(board, side string, moves []string) error
	Search(ctx context.Context, limits common.LimitsType, progress func(SearchInfo)) (SearchInfo, error)
}

type Searcher[B any, M comparable] interface {
	Prepare()
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams[B, M]) (common.SearchInfo[M], error)
}

// Adapter binds a generic engine to the text protocol.
type Adapter[B any, M comparable] struct {
	engine       Searcher[B, M]
	game         common.Game[B, M]
	notation     common.Notation[B, M]
	initialBoard string
	board        B
	side         common.Side
}

func NewAdapter[B any, M comparable](
	engine Searcher[B, M],
	game common.Game[B, M],
	notation common.Notation[B, M],
	initialBoard string,
) (*Adapter[B, M], error) {
	var a = &Adapter[B, M]{
		engine:       engine,
		game:         game,
		notation:     notation,
		initialBoard: initialBoard,
	}
	if err := a.SetPosition("", "", nil); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter[B, M]) Prepare() {
	a.engine.Prepare()
}

func (a *Adapter[B, M]) Clear() {
	a.engine.Clear()
}

func (a *Adapter[B, M]) Board() (B, common.Side) {
	return a.board, a.side
}

func (a *Adapter[B, M]) SetPosition(board, side string, moves []string) error {
	var s = common.First
	if board == "" {
		board = a.initialBoard
	} else {
		var err error
		s, err = common.ParseSide(side)
		if err != nil {
			return err
		}
	}
	var b, err = a.notation.ParseBoard(board)
	if err != nil {
		return err
	}
	for _, smove := range moves {
		if a.game.Terminal(b).IsTerminal() {
			return fmt.Errorf("move %v after the game is over", smove)
		}
		var move, err = a.notation.ParseMove(b, smove)
		if err != nil {
			return err
		}
		b = a.game.Apply(b, move, s)
		s = s.Opponent()
	}
	a.board = b
	a.side = s
	return nil
}

func (a *Adapter[B, M]) Search(ctx context.Context, limits common.LimitsType,
	progress func(SearchInfo)) (SearchInfo, error) {
	var params = common.SearchParams[B, M]{
		Board:  a.board,
		Side:   a.side,
		Limits: limits,
	}
	if progress != nil {
		params.Progress = func(si common.SearchInfo[M]) {
			progress(a.searchInfo(si))
		}
	}
	var si, err = a.engine.Search(ctx, params)
	if err != nil {
		return SearchInfo{}, err
	}
	return a.searchInfo(si), nil
}

func (a *Adapter[B, M]) searchInfo(si common.SearchInfo[M]) SearchInfo {
	var mainLine = make([]string, len(si.MainLine))
	for i, m := range si.MainLine {
		mainLine[i] = a.notation.FormatMove(m)
	}
	return SearchInfo{
		Score:     si.Score,
		Depth:     si.Depth,
		Nodes:     si.Nodes,
		Time:      si.Time,
		MainLine:  mainLine,
		Cancelled: si.Cancelled,
	}
}
