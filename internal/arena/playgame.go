package arena

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

// Game describes the rules the arena needs to referee a match.
type Game[B any, M comparable] struct {
	Rules    common.Game[B, M]
	NewBoard func() B
}

func playGame[B any, M comparable](
	ctx context.Context,
	logger zerolog.Logger,
	game Game[B, M],
	engineA, engineB IEngine[B, M],
	tcA, tcB TimeControl,
	info gameInfo[M],
) (gameResult[M], error) {

	logger.Debug().Int("game", info.gameNumber).Msg("started game")

	engineA.Clear()
	engineB.Clear()

	var b = game.NewBoard()
	var side = common.First
	var moves []M
	for _, move := range info.opening {
		b = game.Rules.Apply(b, move, side)
		side = side.Opponent()
		moves = append(moves, move)
	}

	for {
		var outcome = game.Rules.Terminal(b)
		if outcome.IsTerminal() {
			var result = gameResultDraw
			var comment = "draw"
			if outcome.Kind == common.OutcomeWin {
				comment = fmt.Sprintf("%v wins", outcome.Winner)
				if outcome.Winner == common.First {
					result = gameResultFirstWins
				} else {
					result = gameResultSecondWins
				}
			}
			return gameResult[M]{gameInfo: info, moves: moves, comment: comment, result: result}, nil
		}
		var ml = game.Rules.LegalMoves(b, side)

		var eng IEngine[B, M]
		var tc TimeControl
		if (side == common.First) == info.engineAIsFirst {
			eng, tc = engineA, tcA
		} else {
			eng, tc = engineB, tcB
		}
		var searchResult, err = eng.Search(ctx, common.SearchParams[B, M]{
			Board:  b,
			Side:   side,
			Limits: tc.limits(),
		})
		if err != nil {
			return gameResult[M]{}, fmt.Errorf("game %v ply %v: %w", info.gameNumber, len(moves), err)
		}
		var bestMove, ok = searchResult.BestMove()
		if !ok || !containsMove(ml, bestMove) {
			return gameResult[M]{}, fmt.Errorf("game %v: bad move %v", info.gameNumber, bestMove)
		}
		b = game.Rules.Apply(b, bestMove, side)
		side = side.Opponent()
		moves = append(moves, bestMove)
	}
}

func containsMove[M comparable](ml []M, move M) bool {
	for i := range ml {
		if ml[i] == move {
			return true
		}
	}
	return false
}
