package arena

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
)

const maxOpeningAttempts = 100

// loadOpenings sends every opening twice, once for each colour of engine A.
func loadOpenings[B any, M comparable](
	ctx context.Context,
	game Game[B, M],
	games int,
	openingPlies int,
	seed uint64,
	gameInfos chan<- gameInfo[M],
) error {

	var rnd = rand.New(rand.NewSource(seed))

	for i := 0; 2*i < games; i++ {
		var opening = randomOpening(game, openingPlies, rnd)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo[M]{opening: opening, engineAIsFirst: true, gameNumber: 1 + 2*i}:
		}
		if 2*i+1 >= games {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameInfos <- gameInfo[M]{opening: opening, engineAIsFirst: false, gameNumber: 1 + 2*i + 1}:
		}
	}

	return nil
}

// randomOpening plays up to plies random moves that do not end the game.
func randomOpening[B any, M comparable](game Game[B, M], plies int, rnd *rand.Rand) []M {
	for attempt := 0; attempt < maxOpeningAttempts; attempt++ {
		var b = game.NewBoard()
		var side = common.First
		var moves []M
		for len(moves) < plies {
			var ml = game.Rules.LegalMoves(b, side)
			if len(ml) == 0 {
				break
			}
			var move = ml[rnd.Intn(len(ml))]
			b = game.Rules.Apply(b, move, side)
			side = side.Opponent()
			moves = append(moves, move)
		}
		if !game.Rules.Terminal(b).IsTerminal() {
			return moves
		}
	}
	return nil
}
