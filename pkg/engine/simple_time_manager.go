package engine

import (
	"context"
	"time"

	. "github.com/ChizhovVadim/CounterGames/pkg/common"
)

type timeManager interface {
	IsDone() bool
	Interrupted() bool
	OnNodesChanged(nodes int)
	OnIterationComplete(depth, score int)
	Close()
}

type simpleTimeManager struct {
	ctx       context.Context
	start     time.Time
	limits    LimitsType
	softLimit time.Duration
	hardLimit time.Duration
	completed bool
	cancel    context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	limits LimitsType) *simpleTimeManager {

	var tm = &simpleTimeManager{
		start:  start,
		limits: limits,
	}

	if limits.MoveTime > 0 {
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
		tm.softLimit = tm.hardLimit / 2
	}

	var cancel context.CancelFunc
	if tm.hardLimit != 0 {
		ctx, cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	tm.ctx = ctx
	tm.cancel = cancel
	return tm
}

func (tm *simpleTimeManager) IsDone() bool {
	select {
	case <-tm.ctx.Done():
		return true
	default:
		return false
	}
}

// Interrupted reports whether the search was stopped by the deadline,
// the node limit or the caller rather than by reaching its goal.
func (tm *simpleTimeManager) Interrupted() bool {
	return tm.IsDone() && !tm.completed
}

func (tm *simpleTimeManager) OnNodesChanged(nodes int) {
	if tm.limits.Nodes > 0 && nodes >= tm.limits.Nodes {
		tm.cancel()
	}
}

func (tm *simpleTimeManager) OnIterationComplete(depth, score int) {
	if tm.limits.Infinite {
		return
	}
	if tm.limits.Depth != 0 && depth >= tm.limits.Depth {
		tm.complete()
		return
	}
	// a win or loss inside the horizon can not be improved by searching deeper
	if score >= winIn(depth) || score <= lossIn(depth) {
		tm.complete()
		return
	}
	if tm.softLimit != 0 &&
		time.Since(tm.start) >= tm.softLimit {
		tm.complete()
		return
	}
}

func (tm *simpleTimeManager) complete() {
	if !tm.IsDone() {
		tm.completed = true
	}
	tm.cancel()
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}
