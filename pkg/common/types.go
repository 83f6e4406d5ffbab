package common

import (
	"fmt"
	"time"
)

type LimitsType struct {
	Infinite bool
	Depth    int
	Nodes    int
	MoveTime int // milliseconds
}

type SearchParams[B any, M comparable] struct {
	Board    B
	Side     Side
	Limits   LimitsType
	Progress func(SearchInfo[M])
}

// Score is the search result reported to callers.
// WinIn > 0 means a forced win in WinIn plies, WinIn < 0 a forced loss.
type Score struct {
	Value int
	WinIn int
}

func (s Score) String() string {
	if s.WinIn > 0 {
		return fmt.Sprintf("win %v", s.WinIn)
	}
	if s.WinIn < 0 {
		return fmt.Sprintf("loss %v", -s.WinIn)
	}
	return fmt.Sprintf("value %v", s.Value)
}

type SearchInfo[M comparable] struct {
	Score     Score
	Depth     int
	Nodes     int64
	Time      time.Duration
	MainLine  []M
	Cancelled bool
}

func (si SearchInfo[M]) BestMove() (M, bool) {
	if len(si.MainLine) == 0 {
		var empty M
		return empty, false
	}
	return si.MainLine[0], true
}
