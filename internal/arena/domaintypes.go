package arena

import (
	"context"
	"time"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

const (
	gameResultDraw = iota
	gameResultFirstWins
	gameResultSecondWins
)

type IEngine[B any, M comparable] interface {
	Clear()
	Search(ctx context.Context, searchParams common.SearchParams[B, M]) (common.SearchInfo[M], error)
}

type TimeControl struct {
	FixedDepth int
	FixedNodes int
	FixedTime  time.Duration
}

func (tc TimeControl) limits() common.LimitsType {
	return common.LimitsType{
		Depth:    tc.FixedDepth,
		Nodes:    tc.FixedNodes,
		MoveTime: int(tc.FixedTime / time.Millisecond),
	}
}

type gameInfo[M comparable] struct {
	opening        []M
	engineAIsFirst bool
	gameNumber     int
}

type gameResult[M comparable] struct {
	gameInfo gameInfo[M]
	moves    []M
	comment  string
	result   int
}

func gameResultString(v int) string {
	switch v {
	case gameResultFirstWins:
		return "1-0"
	case gameResultSecondWins:
		return "0-1"
	case gameResultDraw:
		return "1/2-1/2"
	}
	return ""
}
