package arena

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Config[B any, M comparable] struct {
	Game         Game[B, M]
	NewEngineA   func() IEngine[B, M]
	NewEngineB   func() IEngine[B, M]
	TimeControlA TimeControl
	TimeControlB TimeControl
	Games        int
	Concurrency  int
	OpeningPlies int
	Seed         uint64
	Logger       zerolog.Logger
}

// Run plays the match between engine A and engine B and returns the
// statistics from engine A's point of view.
func Run[B any, M comparable](ctx context.Context, config Config[B, M]) (GameStatistics, error) {
	var logger = config.Logger
	logger.Info().Msg("arena started")
	defer logger.Info().Msg("arena finished")

	var gameConcurrency = config.Concurrency
	if gameConcurrency <= 0 {
		gameConcurrency = 1
	}

	logger.Info().
		Int("NumCPU", runtime.NumCPU()).
		Int("GOMAXPROCS", runtime.GOMAXPROCS(0)).
		Int("gameConcurrency", gameConcurrency).
		Interface("timeControlA", config.TimeControlA).
		Interface("timeControlB", config.TimeControlB).
		Send()

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo[M])
	var gameResults = make(chan gameResult[M])

	g.Go(func() error {
		defer close(gameInfos)
		return loadOpenings[B, M](ctx, config.Game, config.Games, config.OpeningPlies, config.Seed, gameInfos)
	})

	var st GameStatistics
	g.Go(func() error {
		var err error
		st, err = showResults[M](ctx, logger, gameResults)
		return err
	})

	var wg = &sync.WaitGroup{}

	for i := 0; i < gameConcurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames[B, M](ctx, logger, config, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	if err := g.Wait(); err != nil {
		return GameStatistics{}, err
	}
	return st, nil
}

func playGames[B any, M comparable](
	ctx context.Context,
	logger zerolog.Logger,
	config Config[B, M],
	gameInfos <-chan gameInfo[M],
	gameResults chan<- gameResult[M],
) error {
	var engineA = config.NewEngineA()
	var engineB = config.NewEngineB()
	for gameInfo := range gameInfos {
		var res, err = playGame(ctx, logger, config.Game, engineA, engineB,
			config.TimeControlA, config.TimeControlB, gameInfo)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- res:
		}
	}
	return nil
}
