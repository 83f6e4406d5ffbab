package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterGames/internal/arena"
	"github.com/ChizhovVadim/CounterGames/pkg/common"
	"github.com/ChizhovVadim/CounterGames/pkg/engine"
	"github.com/ChizhovVadim/CounterGames/pkg/games/connect4"
	"github.com/ChizhovVadim/CounterGames/pkg/games/tictactoe"
)

type Config struct {
	Game         string
	Games        int
	Concurrency  int
	DepthA       int
	DepthB       int
	MoveTimeA    int
	MoveTimeB    int
	HashA        int
	HashB        int
	OpeningPlies int
	Seed         uint64
}

var config Config

func main() {
	flag.StringVar(&config.Game, "game", "connect4", "game to play: tictactoe or connect4")
	flag.IntVar(&config.Games, "games", 100, "number of games")
	flag.IntVar(&config.Concurrency, "concurrency", 4, "number of games played at once")
	flag.IntVar(&config.DepthA, "deptha", 0, "depth limit of engine A")
	flag.IntVar(&config.DepthB, "depthb", 0, "depth limit of engine B")
	flag.IntVar(&config.MoveTimeA, "movetimea", 100, "move time of engine A in milliseconds")
	flag.IntVar(&config.MoveTimeB, "movetimeb", 100, "move time of engine B in milliseconds")
	flag.IntVar(&config.HashA, "hasha", 16, "hash size of engine A in megabytes")
	flag.IntVar(&config.HashB, "hashb", 16, "hash size of engine B in megabytes")
	flag.IntVar(&config.OpeningPlies, "openingplies", 2, "random plies before the engines take over")
	flag.Uint64Var(&config.Seed, "seed", uint64(time.Now().UnixNano()), "random seed of openings")
	flag.Parse()

	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().
		Timestamp().
		Logger()

	logger.Info().Interface("config", config).Send()

	if err := run(context.Background(), logger); err != nil {
		logger.Error().Err(err).Msg("arena failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, logger zerolog.Logger) error {
	var st arena.GameStatistics
	var err error
	switch config.Game {
	case "tictactoe", "ttt":
		var game = tictactoe.Game{}
		st, err = arena.Run(ctx, newConfig[tictactoe.Board, tictactoe.Move](logger, game,
			func() tictactoe.Board { return tictactoe.Board{} }))
	case "connect4", "c4":
		var game = connect4.Game{}
		st, err = arena.Run(ctx, newConfig[*connect4.Board, connect4.Move](logger, game,
			connect4.NewBoard))
	default:
		return fmt.Errorf("bad game %v", config.Game)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Score: %v - %v - %v  [%.3f]\n", st.Wins, st.Losses, st.Draws, st.WinningFraction)
	fmt.Printf("Elo difference: %.1f +/- %.1f, LOS: %.1f %%\n", st.EloDifference, st.EloMargin, st.LOS*100)
	return nil
}

func newConfig[B any, M comparable](
	logger zerolog.Logger,
	game common.Game[B, M],
	newBoard func() B,
) arena.Config[B, M] {
	var newEngine = func(hash int) func() arena.IEngine[B, M] {
		return func() arena.IEngine[B, M] {
			var eng = engine.NewEngine(game, engine.WithHash(hash))
			eng.Prepare()
			return eng
		}
	}
	return arena.Config[B, M]{
		Game:       arena.Game[B, M]{Rules: game, NewBoard: newBoard},
		NewEngineA: newEngine(config.HashA),
		NewEngineB: newEngine(config.HashB),
		TimeControlA: arena.TimeControl{
			FixedDepth: config.DepthA,
			FixedTime:  time.Duration(config.MoveTimeA) * time.Millisecond,
		},
		TimeControlB: arena.TimeControl{
			FixedDepth: config.DepthB,
			FixedTime:  time.Duration(config.MoveTimeB) * time.Millisecond,
		},
		Games:        config.Games,
		Concurrency:  config.Concurrency,
		OpeningPlies: config.OpeningPlies,
		Seed:         config.Seed,
		Logger:       logger,
	}
}
