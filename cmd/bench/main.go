package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/engine"
	"github.com/ChizhovVadim/CounterGames/pkg/games/connect4"
	"github.com/ChizhovVadim/CounterGames/pkg/games/tictactoe"
)

type Config struct {
	Game      string
	Depth     int
	Positions int
	Plies     int
	Seed      uint64
	Hash      int
	Compare   bool
}

var config Config

func main() {
	flag.StringVar(&config.Game, "game", "connect4", "game to benchmark: tictactoe or connect4")
	flag.IntVar(&config.Depth, "depth", 8, "search depth")
	flag.IntVar(&config.Positions, "positions", 20, "number of random positions")
	flag.IntVar(&config.Plies, "plies", 6, "random plies played to reach each position")
	flag.Uint64Var(&config.Seed, "seed", 1, "random seed of positions")
	flag.IntVar(&config.Hash, "hash", 16, "transposition table size in megabytes")
	flag.BoolVar(&config.Compare, "compare", false, "also search without pruning and check the moves agree")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()

	var err = run(logger)
	if err != nil {
		logger.Error().Err(err).Msg("benchmark failed")
		os.Exit(1)
	}
}

func run(logger zerolog.Logger) error {
	switch config.Game {
	case "tictactoe", "ttt":
		return benchmark[tictactoe.Board, tictactoe.Move](logger, tictactoe.Game{},
			func() tictactoe.Board { return tictactoe.Board{} })
	case "connect4", "c4":
		return benchmark[*connect4.Board, connect4.Move](logger, connect4.Game{}, connect4.NewBoard)
	}
	return fmt.Errorf("bad game %v", config.Game)
}

type position[B any] struct {
	board B
	side  common.Side
}

func benchmark[B any, M comparable](
	logger zerolog.Logger,
	game common.Game[B, M],
	newBoard func() B,
) error {
	logger.Info().Interface("config", config).Msg("benchmark started")
	defer logger.Info().Msg("benchmark finished")

	var positions = randomPositions(game, newBoard)
	var eng = engine.NewEngine(game, engine.WithHash(config.Hash))
	var full *engine.Engine[B, M]
	if config.Compare {
		full = engine.NewEngine(game, engine.WithHash(0), engine.WithMoveOrdering(false), engine.WithAlphaBeta(false))
	}

	var start = time.Now()
	var nodes, fullNodes int64
	for i, p := range positions {
		eng.Clear()
		var move, score, err = eng.SearchDepth(p.board, p.side, config.Depth)
		if err != nil {
			return err
		}
		nodes += eng.Nodes()
		if full != nil {
			var pruned = engine.NewEngine(game, engine.WithHash(0), engine.WithMoveOrdering(false))
			prunedMove, prunedScore, err := pruned.SearchDepth(p.board, p.side, config.Depth)
			if err != nil {
				return err
			}
			fullMove, fullScore, err := full.SearchDepth(p.board, p.side, config.Depth)
			if err != nil {
				return err
			}
			fullNodes += full.Nodes()
			if fullMove != prunedMove || fullScore != prunedScore {
				return fmt.Errorf("position %v: pruned search chose %v (%v), full search %v (%v)",
					i, prunedMove, prunedScore, fullMove, fullScore)
			}
		}
		logger.Debug().Int("position", i).Interface("move", move).Int("score", score).Send()
	}
	var elapsed = time.Since(start)
	fmt.Println("Time", elapsed)
	fmt.Println("Nodes", nodes)
	fmt.Println("kNPS", nodes/(elapsed.Milliseconds()+1))
	if config.Compare {
		fmt.Println("Full tree nodes", fullNodes)
	}
	return nil
}

func randomPositions[B any, M comparable](game common.Game[B, M], newBoard func() B) []position[B] {
	var rnd = rand.New(rand.NewSource(config.Seed))
	var result []position[B]
	for len(result) < config.Positions {
		var b = newBoard()
		var side = common.First
		for i := 0; i < config.Plies; i++ {
			var ml = game.LegalMoves(b, side)
			if len(ml) == 0 {
				break
			}
			b = game.Apply(b, ml[rnd.Intn(len(ml))], side)
			side = side.Opponent()
		}
		if !game.Terminal(b).IsTerminal() {
			result = append(result, position[B]{board: b, side: side})
		}
	}
	return result
}
