package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	. "github.com/ChizhovVadim/CounterGames/pkg/common"
)

// Engine searches game trees of one game. It is not safe for concurrent use;
// run one engine per goroutine.
type Engine[B any, M comparable] struct {
	Options     Options
	game        Game[B, M]
	mutator     Mutator[B, M]
	orderer     Orderer[B, M]
	hasher      Hasher[B]
	timeManager timeManager
	transTable  *transTable[M]
	history     historyService[M]
	stack       [stackSize]frame[M]
	rootHint    optMove[M]
	leafReached bool
	progress    func(SearchInfo[M])
	mainLine    mainLine[M]
	start       time.Time
	nodes       int64
}

type frame[M comparable] struct {
	moveList []orderedMove[M]
	searched []M
	pv       pv[M]
	killer1  optMove[M]
	killer2  optMove[M]
}

type pv[M comparable] struct {
	items [stackSize]M
	size  int
}

type mainLine[M comparable] struct {
	moves []M
	score int
	depth int
}

func NewEngine[B any, M comparable](game Game[B, M], options ...Option) *Engine[B, M] {
	var e = &Engine[B, M]{
		Options: NewOptions(),
		game:    game,
	}
	for _, option := range options {
		option(&e.Options)
	}
	if mutator, ok := game.(Mutator[B, M]); ok {
		e.mutator = mutator
	}
	if orderer, ok := game.(Orderer[B, M]); ok {
		e.orderer = orderer
	}
	if hasher, ok := game.(Hasher[B]); ok {
		e.hasher = hasher
	}
	return e
}

func (e *Engine[B, M]) Prepare() {
	if e.hasher == nil || e.Options.Hash <= 0 {
		e.transTable = nil
		return
	}
	if e.transTable == nil || e.transTable.Size() != e.Options.Hash {
		if e.transTable != nil {
			e.transTable = nil
			runtime.GC()
		}
		e.transTable = newTransTable[M](e.Options.Hash)
	}
}

func (e *Engine[B, M]) Clear() {
	if e.transTable != nil {
		e.transTable.Clear()
	}
	e.history.Clear()
	for i := range e.stack {
		e.stack[i].killer1 = optMove[M]{}
		e.stack[i].killer2 = optMove[M]{}
	}
}

// Nodes returns the number of positions visited by the last search.
func (e *Engine[B, M]) Nodes() int64 {
	return e.nodes
}

// Search runs iterative deepening until the limits are reached or ctx is done.
// It reports the main line of the deepest completed iteration. Running out of
// time is not an error: SearchInfo.Cancelled is set instead.
func (e *Engine[B, M]) Search(ctx context.Context, searchParams SearchParams[B, M]) (SearchInfo[M], error) {
	e.start = time.Now()
	e.Prepare()
	var b, side = searchParams.Board, searchParams.Side
	if err := e.checkRoot(b, side); err != nil {
		return SearchInfo[M]{}, err
	}
	var tm = newSimpleTimeManager(ctx, e.start, searchParams.Limits)
	e.timeManager = tm
	defer func() {
		tm.Close()
		e.timeManager = nil
		e.progress = nil
	}()
	if e.transTable != nil {
		e.transTable.IncDate()
	}
	e.nodes = 0
	e.progress = searchParams.Progress
	var err = e.iterativeDeepening(b, side)
	if err != nil {
		return SearchInfo[M]{}, err
	}
	var result = e.currentSearchResult()
	result.Cancelled = tm.Interrupted()
	return result, nil
}

// SearchDepth runs a single fixed depth negamax search without time limits.
// Depth 0 picks the move with the best static value one ply ahead.
func (e *Engine[B, M]) SearchDepth(b B, side Side, depth int) (move M, score int, err error) {
	if depth < 0 {
		err = fmt.Errorf("%w: %v", ErrInvalidDepth, depth)
		return
	}
	e.Prepare()
	if err = e.checkRoot(b, side); err != nil {
		return
	}
	e.timeManager = nil
	e.rootHint = optMove[M]{}
	e.nodes = 0
	if e.transTable != nil {
		e.transTable.IncDate()
	}
	if depth == 0 {
		move, score = e.fallbackMove(b, side, e.rootMoves(b, side))
		return
	}
	defer func() {
		if r := recover(); r != nil {
			_, err = catchSearchPanic(r)
		}
	}()
	score = e.alphaBeta(b, side, -valueInfinity, valueInfinity, depth, 0)
	move = e.stack[0].pv.items[0]
	return
}

// Evaluate returns the negamax value of b for side at the given depth.
// Terminal boards are valued directly.
func (e *Engine[B, M]) Evaluate(b B, side Side, depth int) (score int, err error) {
	if depth < 0 {
		err = fmt.Errorf("%w: %v", ErrInvalidDepth, depth)
		return
	}
	if side != First && side != Second {
		err = fmt.Errorf("%w: side %v", ErrInvalidState, side)
		return
	}
	e.Prepare()
	e.timeManager = nil
	e.rootHint = optMove[M]{}
	e.nodes = 0
	defer func() {
		if r := recover(); r != nil {
			_, err = catchSearchPanic(r)
		}
	}()
	score = e.alphaBeta(b, side, -valueInfinity, valueInfinity, depth, 0)
	return
}

func (e *Engine[B, M]) checkRoot(b B, side Side) error {
	if side != First && side != Second {
		return fmt.Errorf("%w: side %v", ErrInvalidState, side)
	}
	var outcome = e.game.Terminal(b)
	if outcome.IsTerminal() {
		return fmt.Errorf("%w: %v", ErrGameOver, outcome)
	}
	if len(e.game.LegalMoves(b, side)) == 0 {
		return ErrInvalidState
	}
	return nil
}

// rootMoves returns the legal moves of b in static order.
func (e *Engine[B, M]) rootMoves(b B, side Side) []M {
	var ordered = e.genMoves(b, side, 0, optMove[M]{})
	var result = make([]M, len(ordered))
	for i := range ordered {
		result[i] = ordered[i].Move
	}
	return result
}

func (e *Engine[B, M]) currentSearchResult() SearchInfo[M] {
	return SearchInfo[M]{
		Depth:    e.mainLine.depth,
		MainLine: cloneMoves(e.mainLine.moves),
		Score:    newScore(e.mainLine.score),
		Nodes:    e.nodes,
		Time:     time.Since(e.start),
	}
}

func (e *Engine[B, M]) onIterationComplete(depth, score int) {
	var moves = e.stack[0].pv.toSlice()
	if len(moves) == 0 {
		moves = e.mainLine.moves
	}
	e.mainLine = mainLine[M]{
		depth: depth,
		score: score,
		moves: moves,
	}
	e.rootHint = some(moves[0])
	e.Options.Logger.Debug().
		Int("depth", depth).
		Int("score", score).
		Int64("nodes", e.nodes).
		Dur("time", time.Since(e.start)).
		Msg("iteration complete")
	e.timeManager.OnIterationComplete(depth, score)
	if e.progress != nil && e.nodes >= int64(e.Options.ProgressMinNodes) {
		e.progress(e.currentSearchResult())
	}
}

func (e *Engine[B, M]) clearPV(height int) {
	e.stack[height].pv.size = 0
}

func (e *Engine[B, M]) assignPV(height int, m M) {
	var child *pv[M]
	if height+1 < stackSize {
		child = &e.stack[height+1].pv
	}
	e.stack[height].pv.assign(m, child)
}

func (pv *pv[M]) assign(m M, child *pv[M]) {
	pv.size = 1
	pv.items[0] = m
	if child != nil && child.size > 0 {
		var n = Min(child.size, len(pv.items)-1)
		pv.size += n
		copy(pv.items[1:], child.items[:n])
	}
}

func (pv *pv[M]) toSlice() []M {
	var result = make([]M, pv.size)
	copy(result, pv.items[:pv.size])
	return result
}

func cloneMoves[M comparable](ml []M) []M {
	var result = make([]M, len(ml))
	copy(result, ml)
	return result
}
